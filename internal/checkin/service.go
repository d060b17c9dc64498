package checkin

import (
	"context"
	"errors"
	"strings"

	"github.com/blessing250/New-Chogmo/internal/catalog"
	"github.com/blessing250/New-Chogmo/internal/logger"
	"github.com/blessing250/New-Chogmo/internal/member"
	"github.com/blessing250/New-Chogmo/internal/metrics"
)

var (
	ErrUnknownMember = errors.New("unknown member")

	// ErrNoSessionsAvailable is a business fact, not a transient error: the
	// attempt is logged for audit and must not be retried automatically.
	ErrNoSessionsAvailable = errors.New("no sessions available")
)

type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (*CheckInResult, error)
	ListByMember(ctx context.Context, memberID int) ([]AttendanceLog, error)
	ListAll(ctx context.Context, limit, offset int) ([]AttendanceLog, error)
}

type service struct {
	repo        Repository
	memberRepo  member.Repository
	catalogRepo catalog.Repository
}

func NewService(repo Repository, memberRepo member.Repository, catalogRepo catalog.Repository) Service {
	return &service{
		repo:        repo,
		memberRepo:  memberRepo,
		catalogRepo: catalogRepo,
	}
}

// CheckIn walks the attempt through resolve, evaluate, commit. A scan that
// resolves to no member writes nothing; a resolved member without a usable
// session is logged with session_used=false; a committed check-in decrements
// exactly one session and logs session_used=true.
func (s *service) CheckIn(ctx context.Context, req CheckInRequest) (*CheckInResult, error) {
	m, err := s.memberRepo.FindByQRCode(ctx, strings.TrimSpace(req.QRCode))
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			metrics.RecordCheckIn("unknown_member", string(req.ServiceType))
			return nil, ErrUnknownMember
		}
		return nil, err
	}

	instances, err := s.catalogRepo.ListActiveInstances(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	inst := selectInstance(instances, req)
	if inst == nil {
		return nil, s.reject(ctx, m, nil, req.ServiceType)
	}

	if err := s.catalogRepo.ConsumeSession(ctx, inst.ID); err != nil {
		if errors.Is(err, catalog.ErrNoSessionsLeft) {
			// Lost the last session to a concurrent check-in.
			return nil, s.reject(ctx, m, inst, req.ServiceType)
		}
		return nil, err
	}

	logRow, err := s.repo.AppendLog(ctx, m.ID, &inst.ID, inst.ServiceType, true)
	if err != nil {
		// The session is spent; surface the attendance gap rather than hide it.
		logger.Error("session consumed but attendance append failed",
			"member_id", m.ID, "instance_id", inst.ID, "error", err)
		return nil, err
	}

	metrics.RecordCheckIn("committed", string(inst.ServiceType))
	logger.Infof("Check-in committed: member=%d instance=%d remaining=%d",
		m.ID, inst.ID, inst.RemainingSessions-1)

	return &CheckInResult{
		MemberID:          m.ID,
		MemberName:        m.Name,
		Attendance:        logRow,
		RemainingSessions: inst.RemainingSessions - 1,
	}, nil
}

// reject audits a failed attempt. Only an instance resolved from the member's
// own active list is recorded; a requested id that did not resolve stays out
// of the log so the row can never reference a foreign or nonexistent instance.
func (s *service) reject(ctx context.Context, m *member.Member, inst *catalog.InstanceWithPackage, requested catalog.ServiceType) error {
	var instanceID *int
	serviceType := requested
	if inst != nil {
		instanceID = &inst.ID
		serviceType = inst.ServiceType
	}
	if serviceType == "" {
		serviceType = catalog.TypeGym
	}

	if _, err := s.repo.AppendLog(ctx, m.ID, instanceID, serviceType, false); err != nil {
		logger.Error("failed to log rejected check-in", "member_id", m.ID, "error", err)
	}

	metrics.RecordCheckIn("no_sessions", string(serviceType))
	return ErrNoSessionsAvailable
}

// selectInstance applies the instance policy: an operator-selected instance
// wins, then the requested service type, then the sole usable instance.
func selectInstance(instances []catalog.InstanceWithPackage, req CheckInRequest) *catalog.InstanceWithPackage {
	if req.PackageInstanceID != nil {
		for i := range instances {
			if instances[i].ID == *req.PackageInstanceID {
				return &instances[i]
			}
		}
		return nil
	}

	if req.ServiceType != "" {
		for i := range instances {
			if instances[i].ServiceType == req.ServiceType {
				return &instances[i]
			}
		}
		return nil
	}

	if len(instances) > 0 {
		return &instances[0]
	}
	return nil
}

func (s *service) ListByMember(ctx context.Context, memberID int) ([]AttendanceLog, error) {
	return s.repo.ListByMember(ctx, memberID)
}

func (s *service) ListAll(ctx context.Context, limit, offset int) ([]AttendanceLog, error) {
	return s.repo.ListAll(ctx, limit, offset)
}
