// internal/repository/postgres/stats_repo.go
package postgres

import (
	"context"
	"fmt"

	"crm-service/internal/domain/dashboard"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Tables reported by the database info endpoint.
var countedTables = []string{"users", "clients", "leads", "jobs", "bookings", "messages", "services", "follow_ups"}

type StatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// DashboardStats runs the six aggregate queries in one batch. Any failure
// fails the whole result.
func (r *StatsRepository) DashboardStats(ctx context.Context) (*dashboard.Stats, error) {
	var stats dashboard.Stats
	batch := &pgx.Batch{}

	queue := func(query string, dest any) {
		batch.Queue(query).QueryRow(func(row pgx.Row) error {
			return row.Scan(dest)
		})
	}

	queue(`SELECT COUNT(*) FROM clients WHERE status = 'active'`, &stats.TotalClients)
	queue(`SELECT COUNT(*) FROM jobs`, &stats.TotalJobs)
	queue(`SELECT COALESCE(SUM(cost), 0) FROM jobs WHERE status = 'completed'`, &stats.TotalRevenue)
	queue(`SELECT COUNT(*) FROM leads WHERE status IN ('new', 'contacted', 'proposal')`, &stats.ActiveLeads)
	queue(`SELECT COUNT(*) FROM jobs WHERE status = 'completed' AND completed_at >= date_trunc('month', NOW())`, &stats.CompletedJobsThisMonth)
	queue(`SELECT COUNT(*) FROM bookings WHERE status = 'pending'`, &stats.PendingBookings)

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}

	return &stats, nil
}

// TableCounts returns the row count of every application table.
func (r *StatsRepository) TableCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(countedTables))
	batch := &pgx.Batch{}

	for _, table := range countedTables {
		table := table
		batch.Queue(`SELECT COUNT(*) FROM ` + pgx.Identifier{table}.Sanitize()).QueryRow(func(row pgx.Row) error {
			var n int64
			if err := row.Scan(&n); err != nil {
				return err
			}
			counts[table] = n
			return nil
		})
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("failed to count tables: %w", err)
	}

	return counts, nil
}

// Ping checks the pool can reach the database.
func (r *StatsRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
