// Package auth provides authentication and authorization domain logic.
package auth

import (
	"context"
	"regexp"
	"time"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Role is the closed set of user roles.
type Role string

const (
	RoleStaff      Role = "STAFF"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// Capability names a single permitted action group. Checks happen
// server-side per request; the client hides nothing.
const (
	CapLedgerWrite      = "ledger:write"
	CapDocumentsWrite   = "documents:write"
	CapReportsView      = "reports:view"
	CapAdjustmentsWrite = "adjustments:write"
	CapMasterData       = "masterdata:manage"
	CapSettings         = "settings:manage"
	CapUsersManage      = "users:manage"
	CapOfficesManage    = "offices:manage"
)

// roleCapabilities is the static role-to-capability mapping. Each role
// includes everything below it.
var roleCapabilities = map[Role][]string{
	RoleStaff: {
		CapLedgerWrite,
		CapDocumentsWrite,
		CapReportsView,
	},
	RoleAdmin: {
		CapLedgerWrite,
		CapDocumentsWrite,
		CapReportsView,
		CapAdjustmentsWrite,
		CapMasterData,
		CapSettings,
		CapUsersManage,
	},
	RoleSuperAdmin: {
		CapLedgerWrite,
		CapDocumentsWrite,
		CapReportsView,
		CapAdjustmentsWrite,
		CapMasterData,
		CapSettings,
		CapUsersManage,
		CapOfficesManage,
	},
}

// CapabilitiesFor returns the capability set of a role.
func CapabilitiesFor(role Role) []string {
	caps := roleCapabilities[role]
	out := make([]string, len(caps))
	copy(out, caps)
	return out
}

// IsValidRole reports whether the role belongs to the closed set.
func IsValidRole(r Role) bool {
	_, ok := roleCapabilities[r]
	return ok
}

// User represents a system user bound to one office.
type User struct {
	ID           id.ID      `db:"id" json:"id"`
	OfficeID     id.ID      `db:"office_id" json:"officeId"`
	Email        string     `db:"email" json:"email"`
	Name         string     `db:"name" json:"name"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         Role       `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
	Version      int        `db:"version" json:"version"`
}

// NewUser creates a user bound to an office.
func NewUser(officeID id.ID, email, name, passwordHash string, role Role) *User {
	now := time.Now().UTC()
	return &User{
		ID:           id.New(),
		OfficeID:     officeID,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	}
}

// Validate checks user invariants.
func (u *User) Validate(ctx context.Context) error {
	if u.Email == "" || !emailRE.MatchString(u.Email) {
		return apperror.NewValidation("valid email is required").
			WithDetail("field", "email")
	}
	if id.IsNil(u.OfficeID) {
		return apperror.NewValidation("office is required").
			WithDetail("field", "officeId")
	}
	if !IsValidRole(u.Role) {
		return apperror.NewValidation("invalid role").
			WithDetail("field", "role").
			WithDetail("value", string(u.Role))
	}
	return nil
}

// CanLogin checks whether the account may authenticate.
func (u *User) CanLogin() error {
	if !u.Active {
		return apperror.NewForbidden("account is disabled")
	}
	return nil
}

// RecordLogin stamps a successful login.
func (u *User) RecordLogin() {
	now := time.Now().UTC()
	u.LastLoginAt = &now
}
