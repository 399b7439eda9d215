package dashboard

import (
	"context"
	"testing"

	"crm-service/internal/domain/dashboard"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubStats struct {
	stats  *dashboard.Stats
	counts map[string]int64
	err    error
}

func (s stubStats) DashboardStats(context.Context) (*dashboard.Stats, error) {
	return s.stats, s.err
}

func (s stubStats) TableCounts(context.Context) (map[string]int64, error) {
	return s.counts, s.err
}

func TestStats_FailureIsUnavailable(t *testing.T) {
	svc := NewDashboardService(stubStats{err: assert.AnError}, "postgres://x", zap.NewNop())

	_, err := svc.Stats(context.Background())

	appErr, ok := xerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, xerrors.KindUnavailable, appErr.Kind)
	assert.Equal(t, "Dashboard statistics are temporarily unavailable", appErr.Message)
}

func TestStats_Success(t *testing.T) {
	want := &dashboard.Stats{TotalClients: 3, TotalRevenue: 420.5}
	svc := NewDashboardService(stubStats{stats: want}, "postgres://x", zap.NewNop())

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDBInfo_HidesURL(t *testing.T) {
	counts := map[string]int64{"clients": 5}

	info, err := NewDashboardService(stubStats{counts: counts}, "postgres://secret", zap.NewNop()).DBInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SET", info.DatabaseURL)
	assert.Equal(t, counts, info.TableCounts)

	info, err = NewDashboardService(stubStats{counts: counts}, "", zap.NewNop()).DBInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "NOT SET", info.DatabaseURL)
}
