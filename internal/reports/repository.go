package reports

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Stats struct {
	TotalMembers   int   `db:"total_members" json:"total_members"`
	PaidMembers    int   `db:"paid_members" json:"paid_members"`
	TodayBookings  int   `db:"today_bookings" json:"today_bookings"`
	TodayCheckIns  int   `db:"today_checkins" json:"today_checkins"`
	ActivePackages int   `db:"active_packages" json:"active_packages"`
	MonthlyRevenue int64 `db:"monthly_revenue" json:"monthly_revenue"`
}

type RevenueByTier struct {
	Tier     string `db:"tier" json:"tier"`
	Payments int    `db:"payments" json:"payments"`
	Total    int64  `db:"total" json:"total"`
}

type AttendanceRow struct {
	MemberName  string    `db:"member_name"`
	MemberEmail string    `db:"member_email"`
	ServiceType string    `db:"service_type"`
	CheckInTime time.Time `db:"check_in_time"`
	SessionUsed bool      `db:"session_used"`
}

type PaymentRow struct {
	MemberName string    `db:"member_name"`
	Amount     int64     `db:"amount"`
	Currency   string    `db:"currency"`
	Status     string    `db:"status"`
	TxRef      string    `db:"tx_ref"`
	CreatedAt  time.Time `db:"created_at"`
}

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	query := `
SELECT
  (SELECT COUNT(*) FROM members WHERE role = 'member') AS total_members,
  (SELECT COUNT(*) FROM members
     WHERE membership_expiry IS NOT NULL AND membership_expiry >= NOW()) AS paid_members,
  (SELECT COUNT(*) FROM appointments WHERE date = CURRENT_DATE) AS today_bookings,
  (SELECT COUNT(*) FROM attendance_logs
     WHERE check_in_time >= date_trunc('day', NOW()) AND session_used = true) AS today_checkins,
  (SELECT COUNT(*) FROM package_instances
     WHERE remaining_sessions > 0 AND expiry_date >= NOW()) AS active_packages,
  (SELECT COALESCE(SUM(amount), 0) FROM payments
     WHERE status = 'completed'
       AND created_at >= date_trunc('month', NOW())) AS monthly_revenue
`

	var stats Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *Repository) GetRevenueByTier(ctx context.Context, from, to time.Time) ([]RevenueByTier, error) {
	query := `
SELECT
  m.membership_tier        AS tier,
  COUNT(p.*)               AS payments,
  COALESCE(SUM(p.amount), 0) AS total
FROM payments p
JOIN members m ON p.member_id = m.id
WHERE p.status = 'completed'
  AND p.created_at BETWEEN $1 AND $2
GROUP BY m.membership_tier
ORDER BY total DESC
`

	var revenue []RevenueByTier
	if err := r.db.SelectContext(ctx, &revenue, query, from, to); err != nil {
		return nil, err
	}
	return revenue, nil
}

func (r *Repository) ListAttendanceRows(ctx context.Context) ([]AttendanceRow, error) {
	query := `
SELECT
  m.name  AS member_name,
  m.email AS member_email,
  al.service_type,
  al.check_in_time,
  al.session_used
FROM attendance_logs al
JOIN members m ON al.member_id = m.id
ORDER BY al.check_in_time DESC
`

	var rows []AttendanceRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) ListPaymentRows(ctx context.Context) ([]PaymentRow, error) {
	query := `
SELECT
  m.name AS member_name,
  p.amount,
  p.currency,
  p.status,
  p.tx_ref,
  p.created_at
FROM payments p
JOIN members m ON p.member_id = m.id
ORDER BY p.created_at DESC
`

	var rows []PaymentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	return rows, nil
}
