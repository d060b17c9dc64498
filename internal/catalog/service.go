package catalog

import (
	"context"
	"errors"

	"github.com/blessing250/New-Chogmo/internal/metrics"
)

var ErrInvalidServiceType = errors.New("invalid service type")

type Service interface {
	CreateDefinition(ctx context.Context, req CreatePackageRequest) (*ServicePackage, error)
	UpdateDefinition(ctx context.Context, id int, req UpdatePackageRequest) (*ServicePackage, error)
	DeactivateDefinition(ctx context.Context, id int) error
	ListDefinitions(ctx context.Context, onlyActive bool) ([]ServicePackage, error)
	Purchase(ctx context.Context, memberID, packageID int) (*PackageInstance, error)
	ListActiveInstances(ctx context.Context, memberID int) ([]InstanceWithPackage, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateDefinition(ctx context.Context, req CreatePackageRequest) (*ServicePackage, error) {
	if !req.Type.Valid() {
		return nil, ErrInvalidServiceType
	}
	return s.repo.CreateDefinition(ctx, req)
}

func (s *service) UpdateDefinition(ctx context.Context, id int, req UpdatePackageRequest) (*ServicePackage, error) {
	if !req.Type.Valid() {
		return nil, ErrInvalidServiceType
	}
	return s.repo.UpdateDefinition(ctx, id, req)
}

func (s *service) DeactivateDefinition(ctx context.Context, id int) error {
	return s.repo.DeactivateDefinition(ctx, id)
}

func (s *service) ListDefinitions(ctx context.Context, onlyActive bool) ([]ServicePackage, error) {
	return s.repo.ListDefinitions(ctx, onlyActive)
}

func (s *service) Purchase(ctx context.Context, memberID, packageID int) (*PackageInstance, error) {
	def, err := s.repo.GetDefinitionByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if !def.IsActive {
		return nil, ErrPackageNotFound
	}

	inst, err := s.repo.Purchase(ctx, memberID, packageID)
	if err != nil {
		return nil, err
	}

	metrics.RecordPackagePurchase(string(def.Type))
	return inst, nil
}

func (s *service) ListActiveInstances(ctx context.Context, memberID int) ([]InstanceWithPackage, error) {
	return s.repo.ListActiveInstances(ctx, memberID)
}
