package catalog

import "time"

type ServiceType string

const (
	TypeGym     ServiceType = "gym"
	TypeSauna   ServiceType = "sauna"
	TypeMassage ServiceType = "massage"
)

func (t ServiceType) Valid() bool {
	switch t {
	case TypeGym, TypeSauna, TypeMassage:
		return true
	}
	return false
}

// ServicePackage is a catalog definition. Purchased instances copy its session
// count and duration at purchase time, so later edits never touch them.
type ServicePackage struct {
	ID           int         `db:"id" json:"id"`
	Name         string      `db:"name" json:"name"`
	Type         ServiceType `db:"type" json:"type"`
	DurationDays int         `db:"duration_days" json:"duration_days"`
	Sessions     int         `db:"sessions" json:"sessions"`
	Price        int64       `db:"price" json:"price"`
	Description  string      `db:"description" json:"description"`
	IsActive     bool        `db:"is_active" json:"is_active"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

type PackageInstance struct {
	ID                int       `db:"id" json:"id"`
	MemberID          int       `db:"member_id" json:"member_id"`
	PackageID         int       `db:"package_id" json:"package_id"`
	RemainingSessions int       `db:"remaining_sessions" json:"remaining_sessions"`
	TotalSessions     int       `db:"total_sessions" json:"total_sessions"`
	PurchaseDate      time.Time `db:"purchase_date" json:"purchase_date"`
	ExpiryDate        time.Time `db:"expiry_date" json:"expiry_date"`
}

// Usable reports whether a session can still be redeemed from this instance.
func (p *PackageInstance) Usable(now time.Time) bool {
	return p.RemainingSessions > 0 && !now.After(p.ExpiryDate)
}

type InstanceWithPackage struct {
	PackageInstance
	PackageName string      `db:"package_name" json:"package_name"`
	ServiceType ServiceType `db:"service_type" json:"service_type"`
}

type CreatePackageRequest struct {
	Name         string      `json:"name" binding:"required"`
	Type         ServiceType `json:"type" binding:"required"`
	DurationDays int         `json:"duration_days" binding:"required,min=1"`
	Sessions     int         `json:"sessions" binding:"required,min=1"`
	Price        int64       `json:"price" binding:"required,min=1"`
	Description  string      `json:"description"`
}

type UpdatePackageRequest struct {
	Name         string      `json:"name" binding:"required"`
	Type         ServiceType `json:"type" binding:"required"`
	DurationDays int         `json:"duration_days" binding:"required,min=1"`
	Sessions     int         `json:"sessions" binding:"required,min=1"`
	Price        int64       `json:"price" binding:"required,min=1"`
	Description  string      `json:"description"`
	IsActive     *bool       `json:"is_active"`
}
