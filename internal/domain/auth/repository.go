package auth

import (
	"context"

	"oilbook/internal/core/id"
)

// UserRepository defines persistence for users.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id id.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	SetActive(ctx context.Context, id id.ID, active bool) error
	ListByOffice(ctx context.Context, officeID id.ID) ([]*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
