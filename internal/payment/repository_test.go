package payment

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var paymentRows = []string{
	"id", "member_id", "amount", "currency", "status", "method", "tx_ref", "applied", "created_at",
}

func TestRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`INSERT INTO payments.*`).
		WithArgs(1, int64(300), "RWF", StatusCompleted, "card", "tx-1").
		WillReturnRows(sqlmock.NewRows(paymentRows).
			AddRow(1, 1, 300, "RWF", "completed", "card", "tx-1", false, time.Now()))

	p, err := repo.Create(context.Background(), 1, 300, "RWF", "card", "tx-1", StatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, "tx-1", p.TxRef)
	assert.False(t, p.Applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreate_DuplicateTxRef(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`INSERT INTO payments.*`).
		WithArgs(1, int64(300), "RWF", StatusCompleted, "card", "tx-1").
		WillReturnError(&pq.Error{Code: "23505"})

	p, err := repo.Create(context.Background(), 1, 300, "RWF", "card", "tx-1", StatusCompleted)
	assert.ErrorIs(t, err, ErrDuplicateTxRef)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindByTxRef_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`SELECT .* FROM payments.*WHERE tx_ref = \$1.*`).
		WithArgs("tx-missing").
		WillReturnRows(sqlmock.NewRows(paymentRows))

	p, err := repo.FindByTxRef(context.Background(), "tx-missing")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositorySetStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectExec(`UPDATE payments.*`).
		WithArgs(StatusCompleted, 1, StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.SetStatus(context.Background(), 1, StatusPending, StatusCompleted)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositorySetStatus_Terminal(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectExec(`UPDATE payments.*`).
		WithArgs(StatusRefunded, 1, StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.SetStatus(context.Background(), 1, StatusPending, StatusRefunded)
	assert.ErrorIs(t, err, ErrTerminalStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListByMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`SELECT .* FROM payments.*WHERE member_id = \$1.*`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(paymentRows).
			AddRow(1, 1, 300, "RWF", "completed", "card", "tx-1", true, time.Now()).
			AddRow(2, 1, 100, "RWF", "completed", "card", "tx-2", true, time.Now()))

	payments, err := repo.ListByMember(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
