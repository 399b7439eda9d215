package dashboard

import "crm-service/internal/pkg/types"

// Stats are the six headline figures on the dashboard.
type Stats struct {
	TotalClients           int64       `json:"totalClients"`
	TotalJobs              int64       `json:"totalJobs"`
	TotalRevenue           types.Money `json:"totalRevenue"`
	ActiveLeads            int64       `json:"activeLeads"`
	CompletedJobsThisMonth int64       `json:"completedJobsThisMonth"`
	PendingBookings        int64       `json:"pendingBookings"`
}

// DBInfo is the operator view of the database.
type DBInfo struct {
	DatabaseURL string           `json:"databaseUrl"`
	TableCounts map[string]int64 `json:"tableCounts"`
}
