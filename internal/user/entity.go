// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// User is the sole entity: SuperAdmin, Admin and plain User accounts all
// live in one table, discriminated by Role. An Admin's ManagedBy points
// at the SuperAdmin that owns it.
type User struct {
	ID                string     `db:"id"`
	FirstName         string     `db:"first_name"`
	MiddleName        string     `db:"middle_name"`
	LastName          string     `db:"last_name"`
	Email             string     `db:"email"`
	Phone             string     `db:"phone"`
	PasswordHash      string     `db:"password_hash"`
	Address           string     `db:"address"`
	PartyName         string     `db:"party_name"`
	Role              string     `db:"role"`
	SubscriptionModel *string    `db:"subscription_model"`
	ProfileImageID    string     `db:"profile_image_id"`
	ProfileImageURL   string     `db:"profile_image_url"`
	ManagedBy         *string    `db:"managed_by"`
	IsActive          bool       `db:"is_active"`
	IsVerified        bool       `db:"is_verified"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ManagedByID returns the owning SuperAdmin's id or "".
func (u *User) ManagedByID() string {
	if u.ManagedBy == nil {
		return ""
	}
	return *u.ManagedBy
}

const (
	RoleUser       = "User"
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "SuperAdmin"
)

const (
	SubscriptionMonthly   = "Monthly"
	SubscriptionQuarterly = "Quarterly"
	SubscriptionYearly    = "Yearly"
)

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin || role == RoleSuperAdmin
}

func ValidSubscription(model string) bool {
	return model == SubscriptionMonthly ||
		model == SubscriptionQuarterly ||
		model == SubscriptionYearly
}
