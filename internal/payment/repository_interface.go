package payment

import "context"

type Repository interface {
	Create(ctx context.Context, memberID int, amount int64, currency, method, txRef string, status Status) (*Payment, error)
	FindByTxRef(ctx context.Context, txRef string) (*Payment, error)
	SetStatus(ctx context.Context, id int, from, to Status) error
	ListByMember(ctx context.Context, memberID int) ([]Payment, error)
	ListAll(ctx context.Context) ([]Payment, error)
}
