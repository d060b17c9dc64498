package appointment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/blessing250/New-Chogmo/internal/catalog"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidTransition   = errors.New("appointment is not pending")
)

const appointmentSelect = `
	SELECT
		a.id, a.member_id, a.service_type, a.date, a.time_slot, a.status,
		a.notes, a.created_at,
		array_agg(ap.package_id ORDER BY ap.package_id) AS package_ids
	FROM appointments a
	JOIN appointment_packages ap ON ap.appointment_id = a.id
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, memberID int, packageIDs []int, serviceType catalog.ServiceType, date time.Time, timeSlot, notes string) (*Appointment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var a Appointment
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO appointments (member_id, service_type, date, time_slot, status, notes)
		VALUES ($1, $2, $3, $4, 'pending', $5)
		RETURNING id, member_id, service_type, date, time_slot, status, notes, created_at
	`, memberID, serviceType, date, timeSlot, notes).StructScan(&a)
	if err != nil {
		return nil, err
	}

	for _, pkgID := range packageIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO appointment_packages (appointment_id, package_id) VALUES ($1, $2)`,
			a.ID, pkgID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	a.PackageIDs = make(pq.Int64Array, len(packageIDs))
	for i, id := range packageIDs {
		a.PackageIDs[i] = int64(id)
	}

	return &a, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Appointment, error) {
	query := appointmentSelect + `
		WHERE a.id = $1
		GROUP BY a.id
	`

	var a Appointment
	err := r.db.GetContext(ctx, &a, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (r *repository) ListUpcomingByMember(ctx context.Context, memberID int) ([]Appointment, error) {
	query := appointmentSelect + `
		WHERE a.member_id = $1
		  AND a.date >= CURRENT_DATE
		  AND a.status IN ('pending', 'confirmed')
		GROUP BY a.id
		ORDER BY a.date ASC, a.time_slot ASC
	`

	var appointments []Appointment
	err := r.db.SelectContext(ctx, &appointments, query, memberID)
	if err != nil {
		return nil, err
	}

	return appointments, nil
}

const appointmentWithMemberSelect = `
	SELECT
		a.id, a.member_id, a.service_type, a.date, a.time_slot, a.status,
		a.notes, a.created_at,
		array_agg(ap.package_id ORDER BY ap.package_id) AS package_ids,
		m.name AS member_name,
		m.email AS member_email
	FROM appointments a
	JOIN appointment_packages ap ON ap.appointment_id = a.id
	JOIN members m ON a.member_id = m.id
`

func (r *repository) ListAll(ctx context.Context) ([]AppointmentWithMember, error) {
	query := appointmentWithMemberSelect + `
		GROUP BY a.id, m.name, m.email
		ORDER BY a.date DESC, a.time_slot DESC
	`

	var appointments []AppointmentWithMember
	err := r.db.SelectContext(ctx, &appointments, query)
	if err != nil {
		return nil, err
	}

	return appointments, nil
}

func (r *repository) ListToday(ctx context.Context) ([]AppointmentWithMember, error) {
	query := appointmentWithMemberSelect + `
		WHERE a.date = CURRENT_DATE
		GROUP BY a.id, m.name, m.email
		ORDER BY a.time_slot ASC
	`

	var appointments []AppointmentWithMember
	err := r.db.SelectContext(ctx, &appointments, query)
	if err != nil {
		return nil, err
	}

	return appointments, nil
}

func (r *repository) CountToday(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM appointments WHERE date = CURRENT_DATE`)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) SetStatusFromPending(ctx context.Context, id int, to Status) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET status = $1
		WHERE id = $2 AND status = 'pending'
	`, to, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrInvalidTransition
	}

	return nil
}
