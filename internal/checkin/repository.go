package checkin

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/blessing250/New-Chogmo/internal/catalog"
)

const logColumns = `id, member_id, package_instance_id, service_type, check_in_time, session_used`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) AppendLog(ctx context.Context, memberID int, instanceID *int, serviceType catalog.ServiceType, sessionUsed bool) (*AttendanceLog, error) {
	query := `
		INSERT INTO attendance_logs (member_id, package_instance_id, service_type, session_used)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + logColumns

	var logRow AttendanceLog
	err := r.db.GetContext(ctx, &logRow, query, memberID, instanceID, serviceType, sessionUsed)
	if err != nil {
		return nil, err
	}

	return &logRow, nil
}

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]AttendanceLog, error) {
	query := `
		SELECT ` + logColumns + `
		FROM attendance_logs
		WHERE member_id = $1
		ORDER BY check_in_time DESC
	`

	var logs []AttendanceLog
	err := r.db.SelectContext(ctx, &logs, query, memberID)
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *repository) ListAll(ctx context.Context, limit, offset int) ([]AttendanceLog, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT ` + logColumns + `
		FROM attendance_logs
		ORDER BY check_in_time DESC
		LIMIT $1 OFFSET $2
	`

	var logs []AttendanceLog
	err := r.db.SelectContext(ctx, &logs, query, limit, offset)
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *repository) CountToday(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM attendance_logs
		WHERE check_in_time >= date_trunc('day', NOW())
		  AND session_used = true
	`)
	if err != nil {
		return 0, err
	}

	return count, nil
}
