package catalog

import "context"

type Repository interface {
	CreateDefinition(ctx context.Context, req CreatePackageRequest) (*ServicePackage, error)
	UpdateDefinition(ctx context.Context, id int, req UpdatePackageRequest) (*ServicePackage, error)
	DeactivateDefinition(ctx context.Context, id int) error
	GetDefinitionByID(ctx context.Context, id int) (*ServicePackage, error)
	ListDefinitions(ctx context.Context, onlyActive bool) ([]ServicePackage, error)

	Purchase(ctx context.Context, memberID, packageID int) (*PackageInstance, error)
	GetInstanceByID(ctx context.Context, id int) (*InstanceWithPackage, error)
	ListActiveInstances(ctx context.Context, memberID int) ([]InstanceWithPackage, error)
	CountActiveInstances(ctx context.Context) (int, error)
	// ConsumeSession decrements one session iff the instance still has
	// sessions left and has not expired. Exactly one of two concurrent calls
	// on a one-session instance wins.
	ConsumeSession(ctx context.Context, instanceID int) error
}
