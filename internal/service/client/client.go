// internal/service/client/client.go
package client

import (
	"context"

	"crm-service/internal/domain/client"
	xerrors "crm-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const msgNotFound = "Client not found"

type ClientRepository interface {
	Create(ctx context.Context, c *client.Client) error
	FindByID(ctx context.Context, id string) (*client.Client, error)
	List(ctx context.Context, filters *client.ClientListFilters) ([]client.Client, error)
	Update(ctx context.Context, id string, req *client.UpdateClientRequest) (*client.Client, error)
	Delete(ctx context.Context, id string) error
}

type ClientService struct {
	repo   ClientRepository
	logger *zap.Logger
}

func NewClientService(repo ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{repo: repo, logger: logger}
}

func (s *ClientService) CreateClient(ctx context.Context, req *client.CreateClientRequest) (*client.Client, error) {
	c := req.ToClient()
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create client", zap.Error(err))
		return nil, err
	}

	s.logger.Info("client created", zap.String("client_id", c.ID), zap.String("name", c.Name))
	return c, nil
}

func (s *ClientService) GetClient(ctx context.Context, id string) (*client.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}
	return c, nil
}

func (s *ClientService) ListClients(ctx context.Context, filters *client.ClientListFilters) ([]client.Client, error) {
	return s.repo.List(ctx, filters)
}

func (s *ClientService) UpdateClient(ctx context.Context, id string, req *client.UpdateClientRequest) (*client.Client, error) {
	c, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}

	s.logger.Info("client updated", zap.String("client_id", id))
	return c, nil
}

// DeleteClient removes the client together with its jobs, bookings, messages
// and follow-ups.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return xerrors.NotFoundAs(err, msgNotFound)
	}

	s.logger.Info("client deleted", zap.String("client_id", id))
	return nil
}
