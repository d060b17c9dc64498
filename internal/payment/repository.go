package payment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrTerminalStatus  = errors.New("payment is already in a terminal status")
	ErrDuplicateTxRef  = errors.New("tx_ref already recorded")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, memberID int, amount int64, currency, method, txRef string, status Status) (*Payment, error) {
	query := `
		INSERT INTO payments (member_id, amount, currency, status, method, tx_ref)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, member_id, amount, currency, status, method, tx_ref, applied, created_at
	`

	var p Payment
	err := r.db.GetContext(ctx, &p, query, memberID, amount, currency, status, method, txRef)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTxRef
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) FindByTxRef(ctx context.Context, txRef string) (*Payment, error) {
	query := `
		SELECT id, member_id, amount, currency, status, method, tx_ref, applied, created_at
		FROM payments
		WHERE tx_ref = $1
	`

	var p Payment
	err := r.db.GetContext(ctx, &p, query, txRef)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	return &p, nil
}

// SetStatus transitions a payment from one status to another. The transition
// only applies when the current status matches; completed/failed/refunded rows
// are never reopened.
func (r *repository) SetStatus(ctx context.Context, id int, from, to Status) error {
	query := `
		UPDATE payments
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	result, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTerminalStatus
	}

	return nil
}

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]Payment, error) {
	query := `
		SELECT id, member_id, amount, currency, status, method, tx_ref, applied, created_at
		FROM payments
		WHERE member_id = $1
		ORDER BY created_at DESC
	`

	var payments []Payment
	err := r.db.SelectContext(ctx, &payments, query, memberID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Payment, error) {
	query := `
		SELECT id, member_id, amount, currency, status, method, tx_ref, applied, created_at
		FROM payments
		ORDER BY created_at DESC
	`

	var payments []Payment
	err := r.db.SelectContext(ctx, &payments, query)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// unique_violation
		return pqErr.Code == "23505"
	}
	return false
}
