package checkin

import (
	"context"

	"github.com/blessing250/New-Chogmo/internal/catalog"
)

type Repository interface {
	AppendLog(ctx context.Context, memberID int, instanceID *int, serviceType catalog.ServiceType, sessionUsed bool) (*AttendanceLog, error)
	ListByMember(ctx context.Context, memberID int) ([]AttendanceLog, error)
	ListAll(ctx context.Context, limit, offset int) ([]AttendanceLog, error)
	CountToday(ctx context.Context) (int, error)
}
