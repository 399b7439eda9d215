// internal/service/lead/lead.go
package lead

import (
	"context"
	"errors"
	"fmt"

	"crm-service/internal/domain/client"
	"crm-service/internal/domain/lead"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	msgNotFound         = "Lead not found"
	msgAlreadyConverted = "Lead has already been converted"
)

type LeadRepository interface {
	Create(ctx context.Context, l *lead.Lead) error
	FindByID(ctx context.Context, id string) (*lead.Lead, error)
	List(ctx context.Context, filters *lead.LeadListFilters) ([]lead.Lead, error)
	Update(ctx context.Context, id string, req *lead.UpdateLeadRequest) (*lead.Lead, error)
	Delete(ctx context.Context, id string) error

	FindByIDForUpdateWithTx(ctx context.Context, tx pgx.Tx, id string) (*lead.Lead, error)
	MarkConvertedWithTx(ctx context.Context, tx pgx.Tx, id, clientID string) (*lead.Lead, error)
}

type ClientWriter interface {
	CreateWithTx(ctx context.Context, tx pgx.Tx, c *client.Client) error
}

type Transactor interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
}

type LeadService struct {
	db      Transactor
	leads   LeadRepository
	clients ClientWriter
	logger  *zap.Logger
}

func NewLeadService(db Transactor, leads LeadRepository, clients ClientWriter, logger *zap.Logger) *LeadService {
	return &LeadService{db: db, leads: leads, clients: clients, logger: logger}
}

func (s *LeadService) CreateLead(ctx context.Context, req *lead.CreateLeadRequest) (*lead.Lead, error) {
	l := req.ToLead()
	if err := s.leads.Create(ctx, l); err != nil {
		s.logger.Error("failed to create lead", zap.Error(err))
		return nil, err
	}

	s.logger.Info("lead created",
		zap.String("lead_id", l.ID),
		zap.String("source", l.Source),
		zap.String("value", l.Value.String()),
	)
	return l, nil
}

func (s *LeadService) GetLead(ctx context.Context, id string) (*lead.Lead, error) {
	l, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}
	return l, nil
}

func (s *LeadService) ListLeads(ctx context.Context, filters *lead.LeadListFilters) ([]lead.Lead, error) {
	return s.leads.List(ctx, filters)
}

func (s *LeadService) UpdateLead(ctx context.Context, id string, req *lead.UpdateLeadRequest) (*lead.Lead, error) {
	l, err := s.leads.Update(ctx, id, req)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}
	return l, nil
}

func (s *LeadService) DeleteLead(ctx context.Context, id string) error {
	if err := s.leads.Delete(ctx, id); err != nil {
		return xerrors.NotFoundAs(err, msgNotFound)
	}

	s.logger.Info("lead deleted", zap.String("lead_id", id))
	return nil
}

// ConvertLead turns a lead into a client. Creating the client and marking the
// lead won happen in one transaction; the lead row is locked so concurrent
// conversions of the same lead cannot both succeed.
func (s *LeadService) ConvertLead(ctx context.Context, id string) (*lead.ConversionResult, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	l, err := s.leads.FindByIDForUpdateWithTx(ctx, tx, id)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}
	if l.Converted() {
		return nil, xerrors.Validation(msgAlreadyConverted)
	}

	c := l.NewClient()
	if err := s.clients.CreateWithTx(ctx, tx, c); err != nil {
		s.logger.Error("failed to create client from lead", zap.String("lead_id", id), zap.Error(err))
		return nil, err
	}

	converted, err := s.leads.MarkConvertedWithTx(ctx, tx, id, c.ID)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.Validation(msgAlreadyConverted)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit conversion: %w", err)
	}

	s.logger.Info("lead converted",
		zap.String("lead_id", id),
		zap.String("client_id", c.ID),
	)

	return &lead.ConversionResult{Lead: converted, Client: c}, nil
}
