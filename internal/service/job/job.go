// internal/service/job/job.go
package job

import (
	"context"
	"strings"
	"time"

	"crm-service/internal/domain/job"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/types"

	"go.uber.org/zap"
)

const msgNotFound = "Job not found"

type JobRepository interface {
	Create(ctx context.Context, j *job.Job) error
	FindByID(ctx context.Context, id string) (*job.Job, error)
	List(ctx context.Context, filters *job.JobListFilters) ([]job.Job, error)
	Update(ctx context.Context, id string, req *job.UpdateJobRequest) (*job.Job, error)
	Delete(ctx context.Context, id string) error
}

type JobService struct {
	repo   JobRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewJobService(repo JobRepository, logger *zap.Logger) *JobService {
	return &JobService{repo: repo, now: time.Now, logger: logger}
}

func (s *JobService) CreateJob(ctx context.Context, req *job.CreateJobRequest) (*job.Job, error) {
	j := req.ToJob(s.now().UTC())
	if err := s.repo.Create(ctx, j); err != nil {
		s.logger.Error("failed to create job", zap.Error(err))
		return nil, err
	}

	s.logger.Info("job created",
		zap.String("job_id", j.ID),
		zap.String("client_id", j.ClientID),
		zap.String("status", j.Status),
	)
	return j, nil
}

func (s *JobService) GetJob(ctx context.Context, id string) (*job.Job, error) {
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}
	return j, nil
}

// ListJobs resolves the startDate/endDate strings into a schedule window.
// The end date is inclusive: a bare date covers the whole day.
func (s *JobService) ListJobs(ctx context.Context, filters *job.JobListFilters) ([]job.Job, error) {
	if filters.StartDate != "" || filters.EndDate != "" {
		var details []xerrors.FieldError

		start, ok := types.ParseDate(filters.StartDate)
		if filters.StartDate != "" && !ok {
			details = append(details, xerrors.FieldError{Field: "startDate", Message: "Invalid date"})
		}
		end, endOK := types.ParseDate(filters.EndDate)
		if filters.EndDate != "" && !endOK {
			details = append(details, xerrors.FieldError{Field: "endDate", Message: "Invalid date"})
		}
		if len(details) > 0 {
			return nil, xerrors.Validation("Invalid query parameters", details...)
		}

		if filters.StartDate != "" && filters.EndDate != "" {
			if isDateOnly(filters.EndDate) {
				_, end = types.DayRange(end)
			} else {
				end = end.Add(time.Microsecond)
			}
			filters.From = &start
			filters.To = &end
		}
	}

	return s.repo.List(ctx, filters)
}

// UpdateJob applies a partial update. Status transitions settle completedAt
// in the repository.
func (s *JobService) UpdateJob(ctx context.Context, id string, req *job.UpdateJobRequest) (*job.Job, error) {
	j, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}

	if req.Status != nil {
		s.logger.Info("job status changed", zap.String("job_id", id), zap.String("status", j.Status))
	}
	return j, nil
}

func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return xerrors.NotFoundAs(err, msgNotFound)
	}

	s.logger.Info("job deleted", zap.String("job_id", id))
	return nil
}

func isDateOnly(s string) bool {
	return len(strings.TrimSpace(s)) == len(time.DateOnly)
}
