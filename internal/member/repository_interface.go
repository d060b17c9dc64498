package member

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, name, email, phone, passwordHash, qrCode string, role Role) (*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	FindByID(ctx context.Context, id int) (*Member, error)
	FindByQRCode(ctx context.Context, qrCode string) (*Member, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListAll(ctx context.Context) ([]Member, error)
	UpdateProfile(ctx context.Context, id int, name, email, phone string) (*Member, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	// ApplyUpgrade grants a membership tier and marks the backing payment as
	// applied in a single transaction, so a duplicate provider callback can
	// never grant the same payment twice.
	ApplyUpgrade(ctx context.Context, memberID int, tier Tier, expiry time.Time, paymentID int) (*Member, error)
}
