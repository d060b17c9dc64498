package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/blessing250/New-Chogmo/internal/catalog"
	"github.com/blessing250/New-Chogmo/internal/email"
	"github.com/blessing250/New-Chogmo/internal/logger"
	"github.com/blessing250/New-Chogmo/internal/member"
	"github.com/blessing250/New-Chogmo/internal/metrics"
)

var (
	ErrInvalidDate   = errors.New("invalid or past date")
	ErrInvalidStatus = errors.New("status must be confirmed or cancelled")
)

type Service interface {
	Book(ctx context.Context, memberID int, req BookRequest) (*Appointment, error)
	ListUpcomingByMember(ctx context.Context, memberID int) ([]Appointment, error)
	ListAll(ctx context.Context) ([]AppointmentWithMember, error)
	ListToday(ctx context.Context) ([]AppointmentWithMember, error)
	SetStatus(ctx context.Context, id int, to Status) (*Appointment, error)
}

type service struct {
	repo        Repository
	catalogRepo catalog.Repository
	memberRepo  member.Repository
	email       *email.Service
}

func NewService(repo Repository, catalogRepo catalog.Repository, memberRepo member.Repository, emailService *email.Service) Service {
	return &service{
		repo:        repo,
		catalogRepo: catalogRepo,
		memberRepo:  memberRepo,
		email:       emailService,
	}
}

func (s *service) Book(ctx context.Context, memberID int, req BookRequest) (*Appointment, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if date.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, ErrInvalidDate
	}

	// Every referenced package must exist; the first one sets the service type.
	var serviceType catalog.ServiceType
	for i, pkgID := range req.PackageIDs {
		def, err := s.catalogRepo.GetDefinitionByID(ctx, pkgID)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			serviceType = def.Type
		}
	}

	a, err := s.repo.Create(ctx, memberID, req.PackageIDs, serviceType, date, req.Time, req.Notes)
	if err != nil {
		return nil, err
	}

	metrics.RecordAppointment(string(StatusPending))
	return a, nil
}

func (s *service) ListUpcomingByMember(ctx context.Context, memberID int) ([]Appointment, error) {
	return s.repo.ListUpcomingByMember(ctx, memberID)
}

func (s *service) ListAll(ctx context.Context) ([]AppointmentWithMember, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) ListToday(ctx context.Context) ([]AppointmentWithMember, error) {
	return s.repo.ListToday(ctx)
}

func (s *service) SetStatus(ctx context.Context, id int, to Status) (*Appointment, error) {
	if to != StatusConfirmed && to != StatusCancelled {
		return nil, ErrInvalidStatus
	}

	if err := s.repo.SetStatusFromPending(ctx, id, to); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.RecordAppointment(string(to))

	if s.email != nil && to == StatusConfirmed {
		if m, err := s.memberRepo.FindByID(ctx, a.MemberID); err == nil {
			s.email.SendAppointmentConfirmation(ctx, m.Email, m.Name,
				string(a.ServiceType), a.TimeSlot, a.Date)
		} else {
			logger.Error("failed to load member for confirmation email",
				"appointment_id", a.ID, "error", err)
		}
	}

	return a, nil
}
