package appointment

import (
	"context"
	"time"

	"github.com/blessing250/New-Chogmo/internal/catalog"
)

type Repository interface {
	Create(ctx context.Context, memberID int, packageIDs []int, serviceType catalog.ServiceType, date time.Time, timeSlot, notes string) (*Appointment, error)
	GetByID(ctx context.Context, id int) (*Appointment, error)
	ListUpcomingByMember(ctx context.Context, memberID int) ([]Appointment, error)
	ListAll(ctx context.Context) ([]AppointmentWithMember, error)
	ListToday(ctx context.Context) ([]AppointmentWithMember, error)
	CountToday(ctx context.Context) (int, error)
	// SetStatusFromPending transitions pending -> to; any other current status
	// leaves the row untouched and reports ErrInvalidTransition.
	SetStatusFromPending(ctx context.Context, id int, to Status) error
}
