package member

import "time"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

type Tier string

const (
	TierNone     Tier = "none"
	TierDaily    Tier = "daily"
	TierWeekly   Tier = "weekly"
	TierMonthly  Tier = "monthly"
	TierAnnually Tier = "annually"
)

func (t Tier) Valid() bool {
	switch t {
	case TierNone, TierDaily, TierWeekly, TierMonthly, TierAnnually:
		return true
	}
	return false
}

type MembershipStatus string

const (
	StatusPaid    MembershipStatus = "paid"
	StatusNotPaid MembershipStatus = "not_paid"
)

type Member struct {
	ID               int              `db:"id" json:"id"`
	Name             string           `db:"name" json:"name"`
	Email            string           `db:"email" json:"email"`
	Phone            string           `db:"phone" json:"phone"`
	PasswordHash     string           `db:"password_hash" json:"-"`
	Role             Role             `db:"role" json:"role"`
	QRCode           string           `db:"qr_code" json:"qr_code"`
	MembershipTier   Tier             `db:"membership_tier" json:"membership_tier"`
	MembershipExpiry *time.Time       `db:"membership_expiry" json:"membership_expiry,omitempty"`
	MembershipStatus MembershipStatus `db:"-" json:"membership_status"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
}

// EvaluateStatus derives paid/not_paid from the expiry at the given instant.
// The status is never stored; it is recomputed lazily on every read.
func (m *Member) EvaluateStatus(now time.Time) MembershipStatus {
	if m.MembershipExpiry != nil && !now.After(*m.MembershipExpiry) {
		return StatusPaid
	}
	return StatusNotPaid
}

type Plan struct {
	Tier         Tier   `json:"tier"`
	Name         string `json:"name"`
	PriceRWF     int64  `json:"price_rwf"`
	DurationDays int    `json:"duration_days"`
}

func Plans() []Plan {
	return []Plan{
		{Tier: TierDaily, Name: "Daily Pass", PriceRWF: 100, DurationDays: 1},
		{Tier: TierWeekly, Name: "Weekly Pass", PriceRWF: 200, DurationDays: 7},
		{Tier: TierMonthly, Name: "Monthly Pass", PriceRWF: 300, DurationDays: 30},
		{Tier: TierAnnually, Name: "Annual Pass", PriceRWF: 400, DurationDays: 365},
	}
}

func PlanFor(t Tier) (Plan, bool) {
	for _, p := range Plans() {
		if p.Tier == t {
			return p, true
		}
	}
	return Plan{}, false
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         Member `json:"user"`
}

// UpdateProfileRequest carries a partial profile edit; blank fields keep
// their current value.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type NotifyRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

type UpgradeRequest struct {
	Tier  Tier   `json:"tier" binding:"required"`
	TxRef string `json:"tx_ref" binding:"required"`
}

type UpgradeResponse struct {
	Member *Member `json:"member"`
}
