package member

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var memberRows = []string{
	"id", "name", "email", "phone", "password_hash", "role",
	"qr_code", "membership_tier", "membership_expiry", "created_at",
}

func TestRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`INSERT INTO members.*`).
		WithArgs("Alice", "alice@example.com", "+250780000001", "hash", RoleMember, "qr-1").
		WillReturnRows(sqlmock.NewRows(memberRows).
			AddRow(1, "Alice", "alice@example.com", "+250780000001", "hash", "member", "qr-1", "none", nil, time.Now()))

	m, err := repo.Create(context.Background(), "Alice", "alice@example.com", "+250780000001", "hash", "qr-1", RoleMember)
	assert.NoError(t, err)
	assert.Equal(t, 1, m.ID)
	assert.Equal(t, TierNone, m.MembershipTier)
	assert.Nil(t, m.MembershipExpiry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindByQRCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`SELECT .* FROM members WHERE qr_code = \$1`).
		WithArgs("qr-1").
		WillReturnRows(sqlmock.NewRows(memberRows).
			AddRow(1, "Alice", "alice@example.com", "", "hash", "member", "qr-1", "monthly", time.Now().Add(time.Hour), time.Now()))

	m, err := repo.FindByQRCode(context.Background(), "qr-1")
	assert.NoError(t, err)
	assert.Equal(t, "qr-1", m.QRCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindByQRCode_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`SELECT .* FROM members WHERE qr_code = \$1`).
		WithArgs("qr-missing").
		WillReturnRows(sqlmock.NewRows(memberRows))

	m, err := repo.FindByQRCode(context.Background(), "qr-missing")
	assert.ErrorIs(t, err, ErrMemberNotFound)
	assert.Nil(t, m)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryEmailExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`SELECT EXISTS.*`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "alice@example.com")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryApplyUpgrade(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	expiry := time.Now().AddDate(0, 0, 30)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE payments SET applied = true WHERE id = \$1 AND applied = false`).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`UPDATE members.*RETURNING.*`).
		WithArgs(TierMonthly, expiry, 1).
		WillReturnRows(sqlmock.NewRows(memberRows).
			AddRow(1, "Alice", "alice@example.com", "", "hash", "member", "qr-1", "monthly", expiry, time.Now()))
	mock.ExpectCommit()

	m, err := repo.ApplyUpgrade(context.Background(), 1, TierMonthly, expiry, 10)
	assert.NoError(t, err)
	assert.Equal(t, TierMonthly, m.MembershipTier)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryApplyUpgrade_PaymentAlreadyUsed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE payments SET applied = true WHERE id = \$1 AND applied = false`).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	m, err := repo.ApplyUpgrade(context.Background(), 1, TierMonthly, time.Now(), 10)
	assert.ErrorIs(t, err, ErrPaymentAlreadyUsed)
	assert.Nil(t, m)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`UPDATE members\s+SET name = \$1, email = \$2, phone = \$3\s+WHERE id = \$4\s+RETURNING`).
		WithArgs("Alice", "alice@example.com", "+250780000099", 1).
		WillReturnRows(sqlmock.NewRows(memberRows).
			AddRow(1, "Alice", "alice@example.com", "+250780000099", "hash", "member", "qr-1", "monthly", time.Now().Add(time.Hour), time.Now()))

	m, err := repo.UpdateProfile(context.Background(), 1, "Alice", "alice@example.com", "+250780000099")
	assert.NoError(t, err)
	assert.Equal(t, "+250780000099", m.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateProfile_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`UPDATE members\s+SET name = \$1, email = \$2, phone = \$3`).
		WithArgs("Alice", "taken@example.com", "+250780000001", 1).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err = repo.UpdateProfile(context.Background(), 1, "Alice", "taken@example.com", "+250780000001")
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdatePassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectExec(`UPDATE members SET password_hash = \$1 WHERE id = \$2`).
		WithArgs("new-hash", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdatePassword(context.Background(), 1, "new-hash")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdatePassword_UnknownMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectExec(`UPDATE members SET password_hash = \$1 WHERE id = \$2`).
		WithArgs("new-hash", 42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdatePassword(context.Background(), 42, "new-hash")
	assert.ErrorIs(t, err, ErrMemberNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
