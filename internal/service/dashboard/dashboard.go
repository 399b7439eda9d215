// internal/service/dashboard/dashboard.go
package dashboard

import (
	"context"
	"fmt"

	"crm-service/internal/domain/dashboard"
	xerrors "crm-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const msgUnavailable = "Dashboard statistics are temporarily unavailable"

type StatsRepository interface {
	DashboardStats(ctx context.Context) (*dashboard.Stats, error)
	TableCounts(ctx context.Context) (map[string]int64, error)
}

type DashboardService struct {
	repo        StatsRepository
	databaseSet bool
	logger      *zap.Logger
}

func NewDashboardService(repo StatsRepository, databaseURL string, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, databaseSet: databaseURL != "", logger: logger}
}

// Stats returns the six headline figures. A failed aggregate is reported as
// unavailable rather than as zeros.
func (s *DashboardService) Stats(ctx context.Context) (*dashboard.Stats, error) {
	stats, err := s.repo.DashboardStats(ctx)
	if err != nil {
		s.logger.Error("failed to compute dashboard stats", zap.Error(err))
		return nil, xerrors.Unavailable(msgUnavailable, err)
	}
	return stats, nil
}

// DBInfo reports whether a database is configured and the row count of each
// table. The connection string itself is never returned.
func (s *DashboardService) DBInfo(ctx context.Context) (*dashboard.DBInfo, error) {
	counts, err := s.repo.TableCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tables: %w", err)
	}

	info := &dashboard.DBInfo{DatabaseURL: "NOT SET", TableCounts: counts}
	if s.databaseSet {
		info.DatabaseURL = "SET"
	}
	return info, nil
}
