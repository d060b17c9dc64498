package reports

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestRepositoryGetStats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{
		"total_members", "paid_members", "today_bookings",
		"today_checkins", "active_packages", "monthly_revenue",
	}).AddRow(42, 17, 5, 9, 23, int64(8400))

	mock.ExpectQuery(`SELECT \(SELECT COUNT\(\*\) FROM members WHERE role = 'member'\) AS total_members`).
		WillReturnRows(rows)

	stats, err := repo.GetStats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 42, stats.TotalMembers)
	assert.Equal(t, 17, stats.PaidMembers)
	assert.Equal(t, 9, stats.TodayCheckIns)
	assert.Equal(t, int64(8400), stats.MonthlyRevenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetRevenueByTier(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"tier", "payments", "total"}).
		AddRow("monthly", 12, int64(3600)).
		AddRow("weekly", 4, int64(800))

	mock.ExpectQuery(`SELECT m\.membership_tier AS tier, COUNT\(p\.\*\) AS payments`).
		WithArgs(from, to).
		WillReturnRows(rows)

	revenue, err := repo.GetRevenueByTier(context.Background(), from, to)

	assert.NoError(t, err)
	require.Len(t, revenue, 2)
	assert.Equal(t, "monthly", revenue[0].Tier)
	assert.Equal(t, int64(3600), revenue[0].Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListAttendanceRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{
		"member_name", "member_email", "service_type", "check_in_time", "session_used",
	}).AddRow("Alice Uwase", "alice@example.com", "gym", time.Now(), true)

	mock.ExpectQuery(`SELECT m\.name AS member_name, m\.email AS member_email`).
		WillReturnRows(rows)

	attendance, err := repo.ListAttendanceRows(context.Background())

	assert.NoError(t, err)
	require.Len(t, attendance, 1)
	assert.Equal(t, "Alice Uwase", attendance[0].MemberName)
	assert.True(t, attendance[0].SessionUsed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListPaymentRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{
		"member_name", "amount", "currency", "status", "tx_ref", "created_at",
	}).AddRow("Bob Mugisha", int64(300), "RWF", "completed", "tx-001", time.Now())

	mock.ExpectQuery(`SELECT m\.name AS member_name, p\.amount, p\.currency`).
		WillReturnRows(rows)

	payments, err := repo.ListPaymentRows(context.Background())

	assert.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(300), payments[0].Amount)
	assert.Equal(t, "tx-001", payments[0].TxRef)
	assert.NoError(t, mock.ExpectationsWereMet())
}
