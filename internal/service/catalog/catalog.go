// internal/service/catalog/catalog.go
package catalog

import (
	"context"

	"crm-service/internal/domain/catalog"
	xerrors "crm-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const msgNotFound = "Service not found"

type CatalogRepository interface {
	Create(ctx context.Context, svc *catalog.Service) error
	FindByID(ctx context.Context, id string) (*catalog.Service, error)
	List(ctx context.Context, filters *catalog.ServiceListFilters) ([]catalog.Service, error)
	Update(ctx context.Context, id string, req *catalog.UpdateServiceRequest) (*catalog.Service, error)
	Delete(ctx context.Context, id string) error
}

// CatalogService manages the offered services price list.
type CatalogService struct {
	repo   CatalogRepository
	logger *zap.Logger
}

func NewCatalogService(repo CatalogRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

func (s *CatalogService) CreateService(ctx context.Context, req *catalog.CreateServiceRequest) (*catalog.Service, error) {
	svc := req.ToService()
	if err := s.repo.Create(ctx, svc); err != nil {
		s.logger.Error("failed to create service", zap.Error(err))
		return nil, err
	}

	s.logger.Info("service created", zap.String("service_id", svc.ID), zap.String("name", svc.Name))
	return svc, nil
}

func (s *CatalogService) GetService(ctx context.Context, id string) (*catalog.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}
	return svc, nil
}

func (s *CatalogService) ListServices(ctx context.Context, filters *catalog.ServiceListFilters) ([]catalog.Service, error) {
	return s.repo.List(ctx, filters)
}

func (s *CatalogService) UpdateService(ctx context.Context, id string, req *catalog.UpdateServiceRequest) (*catalog.Service, error) {
	svc, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, xerrors.NotFoundAs(err, msgNotFound)
	}
	return svc, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return xerrors.NotFoundAs(err, msgNotFound)
	}

	s.logger.Info("service deleted", zap.String("service_id", id))
	return nil
}
