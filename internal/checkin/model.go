package checkin

import (
	"time"

	"github.com/blessing250/New-Chogmo/internal/catalog"
)

// AttendanceLog is append-only. One row per resolved check-in attempt,
// successful or not; unresolved scans leave no trace.
type AttendanceLog struct {
	ID                int                 `db:"id" json:"id"`
	MemberID          int                 `db:"member_id" json:"member_id"`
	PackageInstanceID *int                `db:"package_instance_id" json:"package_instance_id,omitempty"`
	ServiceType       catalog.ServiceType `db:"service_type" json:"service_type"`
	CheckInTime       time.Time           `db:"check_in_time" json:"check_in_time"`
	SessionUsed       bool                `db:"session_used" json:"session_used"`
}

type CheckInRequest struct {
	// QRCode is the opaque payload decoded from the member's code, or pasted
	// manually by the operator. Both paths carry the same identifier.
	QRCode string `json:"qr_code" binding:"required"`
	// PackageInstanceID selects an instance explicitly; when omitted,
	// ServiceType picks one, and with neither set the single usable instance
	// is taken.
	PackageInstanceID *int                `json:"package_instance_id,omitempty"`
	ServiceType       catalog.ServiceType `json:"service_type,omitempty"`
}

type CheckInResult struct {
	MemberID          int            `json:"member_id"`
	MemberName        string         `json:"member_name"`
	Attendance        *AttendanceLog `json:"attendance"`
	RemainingSessions int            `json:"remaining_sessions"`
}
