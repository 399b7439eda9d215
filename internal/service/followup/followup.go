// internal/service/followup/followup.go
package followup

import (
	"context"
	"time"

	"crm-service/internal/domain/followup"
	xerrors "crm-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const msgNotFound = "Follow-up not found"

type FollowUpRepository interface {
	Create(ctx context.Context, f *followup.FollowUp) error
	FindByID(ctx context.Context, id string) (*followup.FollowUp, error)
	List(ctx context.Context, filters *followup.FollowUpListFilters) ([]followup.FollowUp, error)
	Update(ctx context.Context, id string, req *followup.UpdateFollowUpRequest) (*followup.FollowUp, error)
	Delete(ctx context.Context, id string) error
}

type FollowUpService struct {
	repo   FollowUpRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewFollowUpService(repo FollowUpRepository, logger *zap.Logger) *FollowUpService {
	return &FollowUpService{repo: repo, now: time.Now, logger: logger}
}

// CreateFollowUp records actorID as creator and, unless another user is
// named, as assignee.
func (s *FollowUpService) CreateFollowUp(ctx context.Context, actorID string, req *followup.CreateFollowUpRequest) (*followup.FollowUp, error) {
	f := req.ToFollowUp(actorID, s.now().UTC())
	if err := s.repo.Create(ctx, f); err != nil {
		s.logger.Error("failed to create follow-up", zap.Error(err))
		return nil, err
	}

	s.logger.Info("follow-up scheduled",
		zap.String("follow_up_id", f.ID),
		zap.String("client_id", f.ClientID),
		zap.Time("scheduled_date", f.ScheduledDate),
	)
	return f, nil
}

func (s *FollowUpService) GetFollowUp(ctx context.Context, id string) (*followup.FollowUp, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}
	return f, nil
}

func (s *FollowUpService) ListFollowUps(ctx context.Context, filters *followup.FollowUpListFilters) ([]followup.FollowUp, error) {
	return s.repo.List(ctx, filters)
}

func (s *FollowUpService) UpdateFollowUp(ctx context.Context, actorID, id string, req *followup.UpdateFollowUpRequest) (*followup.FollowUp, error) {
	req.ActorID = actorID
	f, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}
	return f, nil
}

func (s *FollowUpService) DeleteFollowUp(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return xerrors.NotFoundAs(err, msgNotFound)
	}
	return nil
}
