package member

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blessing250/New-Chogmo/internal/auth"
	"github.com/blessing250/New-Chogmo/internal/email"
	"github.com/blessing250/New-Chogmo/internal/logger"
	"github.com/blessing250/New-Chogmo/internal/metrics"
	"github.com/blessing250/New-Chogmo/internal/payment"
)

const (
	Currency = "RWF"

	methodCard = "card"
)

var (
	ErrEmailExists         = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnknownTier         = errors.New("unknown membership tier")
	ErrAmountMismatch      = errors.New("paid amount does not match tier price")
	ErrPaymentNotConfirmed = errors.New("payment not confirmed by provider")
	ErrTxRefForeign        = errors.New("tx_ref belongs to another member")

	// ErrPaidNotUpgraded means the provider confirmed the charge but the
	// membership grant did not land. Money has moved; the caller must not
	// present this as an ordinary failure.
	ErrPaidNotUpgraded = errors.New("payment confirmed but membership upgrade failed")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Member, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*Member, string, string, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *Member, error)
	GetByID(ctx context.Context, memberID int) (*Member, error)
	ListAll(ctx context.Context) ([]Member, error)
	UpdateProfile(ctx context.Context, memberID int, req UpdateProfileRequest) (*Member, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
	Notify(ctx context.Context, email, subject, text string) error
	Upgrade(ctx context.Context, memberID int, tier Tier, txRef string) (*Member, error)
}

type service struct {
	repo      Repository
	payments  payment.Repository
	gateway   payment.Gateway
	email     *email.Service
	jwtSecret string
}

func NewService(repo Repository, payments payment.Repository, gateway payment.Gateway, emailService *email.Service, jwtSecret string) Service {
	return &service{
		repo:      repo,
		payments:  payments,
		gateway:   gateway,
		email:     emailService,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Member, string, string, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	// The QR payload is an opaque identifier minted once per member. Whatever
	// renders or scans it only ever sees this string.
	qrCode := uuid.NewString()

	m, err := s.repo.Create(ctx, req.Name, req.Email, req.Phone, passwordHash, qrCode, RoleMember)
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		m.ID,
		m.Email,
		string(m.Role),
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	m.MembershipStatus = m.EvaluateStatus(time.Now())
	return m, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Member, string, string, error) {
	m, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(m.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		m.ID,
		m.Email,
		string(m.Role),
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	m.MembershipStatus = m.EvaluateStatus(time.Now())
	return m, accessToken, refreshToken, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *Member, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	m, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, ErrMemberNotFound
	}

	newAccessToken, err := auth.GenerateAccessToken(m.ID, m.Email, string(m.Role), s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	m.MembershipStatus = m.EvaluateStatus(time.Now())
	return newAccessToken, m, nil
}

func (s *service) GetByID(ctx context.Context, memberID int) (*Member, error) {
	m, err := s.repo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	m.MembershipStatus = m.EvaluateStatus(time.Now())
	return m, nil
}

func (s *service) ListAll(ctx context.Context) ([]Member, error) {
	members, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range members {
		members[i].MembershipStatus = members[i].EvaluateStatus(now)
	}

	return members, nil
}

// UpdateProfile applies a partial edit to the member's own record. Blank
// fields keep their stored value.
func (s *service) UpdateProfile(ctx context.Context, memberID int, req UpdateProfileRequest) (*Member, error) {
	current, err := s.repo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = current.Name
	}
	emailAddr := req.Email
	if emailAddr == "" {
		emailAddr = current.Email
	}
	phone := req.Phone
	if phone == "" {
		phone = current.Phone
	}

	m, err := s.repo.UpdateProfile(ctx, memberID, name, emailAddr, phone)
	if err != nil {
		return nil, err
	}

	m.MembershipStatus = m.EvaluateStatus(time.Now())
	return m, nil
}

func (s *service) ResetPassword(ctx context.Context, email, newPassword string) error {
	m, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, m.ID, passwordHash); err != nil {
		return err
	}

	logger.Infof("Password reset: member=%d", m.ID)
	return nil
}

// Notify queues a one-off email to a registered member.
func (s *service) Notify(ctx context.Context, email, subject, text string) error {
	m, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if s.email == nil {
		return errors.New("email service unavailable")
	}

	return s.email.Send(ctx, m.Email, m.Name, subject, text)
}

// Upgrade grants a membership tier after verifying the payment with the
// provider. Safe to call repeatedly with the same tx_ref: a confirmed payment
// is granted at most once.
func (s *service) Upgrade(ctx context.Context, memberID int, tier Tier, txRef string) (*Member, error) {
	plan, ok := PlanFor(tier)
	if !ok {
		return nil, ErrUnknownTier
	}

	p, err := s.payments.FindByTxRef(ctx, txRef)
	if err != nil && !errors.Is(err, payment.ErrPaymentNotFound) {
		return nil, err
	}

	if p != nil {
		if p.MemberID != memberID {
			return nil, ErrTxRefForeign
		}
		if p.Status != payment.StatusCompleted {
			return nil, ErrPaymentNotConfirmed
		}
		if p.Applied {
			// Duplicate delivery of the provider callback.
			return s.GetByID(ctx, memberID)
		}
		// A previous attempt recorded the payment but died before the grant.
		return s.grant(ctx, memberID, plan, p.ID)
	}

	vt, err := s.gateway.VerifyTransaction(ctx, txRef)
	if err != nil {
		return nil, fmt.Errorf("verify transaction %s: %w", txRef, err)
	}
	if vt.Status != payment.ProviderSuccessful {
		return nil, ErrPaymentNotConfirmed
	}
	if vt.Amount != plan.PriceRWF || vt.Currency != Currency {
		return nil, ErrAmountMismatch
	}

	rec, err := s.payments.Create(ctx, memberID, vt.Amount, Currency, methodCard, txRef, payment.StatusCompleted)
	if err != nil {
		if errors.Is(err, payment.ErrDuplicateTxRef) {
			// Lost a race with a concurrent delivery of the same callback.
			return s.Upgrade(ctx, memberID, tier, txRef)
		}
		logger.Error("payment confirmed but not recorded", "tx_ref", txRef, "error", err)
		return nil, ErrPaidNotUpgraded
	}
	metrics.RecordPayment(string(payment.StatusCompleted))

	return s.grant(ctx, memberID, plan, rec.ID)
}

func (s *service) grant(ctx context.Context, memberID int, plan Plan, paymentID int) (*Member, error) {
	expiry := time.Now().AddDate(0, 0, plan.DurationDays)

	m, err := s.repo.ApplyUpgrade(ctx, memberID, plan.Tier, expiry, paymentID)
	if err != nil {
		if errors.Is(err, ErrPaymentAlreadyUsed) {
			return s.GetByID(ctx, memberID)
		}
		logger.Error("membership grant failed after confirmed payment",
			"member_id", memberID, "payment_id", paymentID, "error", err)
		return nil, ErrPaidNotUpgraded
	}

	metrics.RecordUpgrade(string(plan.Tier))
	logger.Infof("Membership upgraded: member=%d tier=%s", memberID, plan.Tier)

	if s.email != nil {
		s.email.SendPaymentReceipt(ctx, m.Email, m.Name, plan.Name, plan.PriceRWF, Currency, expiry)
	}

	m.MembershipStatus = m.EvaluateStatus(time.Now())
	return m, nil
}
