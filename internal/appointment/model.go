package appointment

import (
	"time"

	"github.com/lib/pq"

	"github.com/blessing250/New-Chogmo/internal/catalog"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

type Appointment struct {
	ID          int                 `db:"id" json:"id"`
	MemberID    int                 `db:"member_id" json:"member_id"`
	PackageIDs  pq.Int64Array       `db:"package_ids" json:"package_ids"`
	ServiceType catalog.ServiceType `db:"service_type" json:"service_type"`
	Date        time.Time           `db:"date" json:"date"`
	TimeSlot    string              `db:"time_slot" json:"time_slot"`
	Status      Status              `db:"status" json:"status"`
	Notes       string              `db:"notes" json:"notes"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
}

type AppointmentWithMember struct {
	Appointment
	MemberName  string `db:"member_name" json:"member_name"`
	MemberEmail string `db:"member_email" json:"member_email"`
}

type BookRequest struct {
	PackageIDs []int  `json:"service_package_ids" binding:"required,min=1"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Notes      string `json:"notes"`
}

type SetStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}
