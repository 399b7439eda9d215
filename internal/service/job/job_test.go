package job

import (
	"context"
	"testing"
	"time"

	"crm-service/internal/domain/job"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockJobRepo struct{ mock.Mock }

func (m *mockJobRepo) Create(ctx context.Context, j *job.Job) error {
	return m.Called(ctx, j).Error(0)
}

func (m *mockJobRepo) FindByID(ctx context.Context, id string) (*job.Job, error) {
	args := m.Called(ctx, id)
	j, _ := args.Get(0).(*job.Job)
	return j, args.Error(1)
}

func (m *mockJobRepo) List(ctx context.Context, f *job.JobListFilters) ([]job.Job, error) {
	args := m.Called(ctx, f)
	j, _ := args.Get(0).([]job.Job)
	return j, args.Error(1)
}

func (m *mockJobRepo) Update(ctx context.Context, id string, req *job.UpdateJobRequest) (*job.Job, error) {
	args := m.Called(ctx, id, req)
	j, _ := args.Get(0).(*job.Job)
	return j, args.Error(1)
}

func (m *mockJobRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newJobRequest(status string) *job.CreateJobRequest {
	date := types.Date{Time: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	est := types.Int(120)
	cost := types.Money(180)
	return &job.CreateJobRequest{
		ClientID:          "2b7e1a0c-0000-4000-8000-000000000001",
		Service:           "Deep clean",
		Address:           "1 Main St",
		ScheduledDate:     &date,
		ScheduledTime:     "09:00",
		EstimatedDuration: &est,
		Status:            status,
		Cost:              &cost,
	}
}

func TestCreateJob_CompletedStampsCompletedAt(t *testing.T) {
	repo := &mockJobRepo{}
	svc := NewJobService(repo, zap.NewNop())
	fixed := time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	j, err := svc.CreateJob(context.Background(), newJobRequest(job.StatusCompleted))
	require.NoError(t, err)
	require.NotNil(t, j.CompletedAt)
	assert.Equal(t, fixed, *j.CompletedAt)

	j, err = svc.CreateJob(context.Background(), newJobRequest(job.StatusInProgress))
	require.NoError(t, err)
	assert.Nil(t, j.CompletedAt)

	j, err = svc.CreateJob(context.Background(), newJobRequest(""))
	require.NoError(t, err)
	assert.Equal(t, job.StatusScheduled, j.Status)
	assert.Nil(t, j.CompletedAt)
	assert.Equal(t, []string{}, j.Materials)
}

func TestListJobs_DateRangeIsInclusive(t *testing.T) {
	repo := &mockJobRepo{}
	svc := NewJobService(repo, zap.NewNop())

	var got *job.JobListFilters
	repo.On("List", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(*job.JobListFilters) }).
		Return([]job.Job{}, nil)

	_, err := svc.ListJobs(context.Background(), &job.JobListFilters{StartDate: "2024-03-01", EndDate: "2024-03-31"})
	require.NoError(t, err)

	require.NotNil(t, got.From)
	require.NotNil(t, got.To)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *got.From)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), *got.To)
}

func TestListJobs_InvalidDate(t *testing.T) {
	repo := &mockJobRepo{}
	svc := NewJobService(repo, zap.NewNop())

	_, err := svc.ListJobs(context.Background(), &job.JobListFilters{StartDate: "yesterday", EndDate: "2024-03-31"})

	appErr, ok := xerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, xerrors.KindValidation, appErr.Kind)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "startDate", appErr.Details[0].Field)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListJobs_SingleBoundIsIgnored(t *testing.T) {
	repo := &mockJobRepo{}
	svc := NewJobService(repo, zap.NewNop())
	repo.On("List", mock.Anything, mock.MatchedBy(func(f *job.JobListFilters) bool {
		return f.From == nil && f.To == nil
	})).Return([]job.Job{}, nil)

	_, err := svc.ListJobs(context.Background(), &job.JobListFilters{StartDate: "2024-03-01"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateAndDelete_NotFound(t *testing.T) {
	repo := &mockJobRepo{}
	svc := NewJobService(repo, zap.NewNop())
	repo.On("Update", mock.Anything, "x", mock.Anything).Return(nil, xerrors.ErrNotFound)
	repo.On("Delete", mock.Anything, "x").Return(xerrors.ErrNotFound)

	_, err := svc.UpdateJob(context.Background(), "x", &job.UpdateJobRequest{})
	assert.Equal(t, xerrors.KindNotFound, xerrors.KindOf(err))

	err = svc.DeleteJob(context.Background(), "x")
	appErr, ok := xerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Job not found", appErr.Message)
}
