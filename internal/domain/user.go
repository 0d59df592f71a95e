package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role names a permission level. The set is open-ended; only Admin carries
// extra privileges.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// IsAdmin reports whether the role is the administrator role.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User represents a registered identity. PasswordHash is never the plaintext.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// UserRepository defines persistence operations for users.
// Username and email uniqueness is enforced by the implementation.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	// Search matches term as a substring of username or email.
	Search(ctx context.Context, term string) ([]User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	// Update persists username, email, role and password hash.
	Update(ctx context.Context, user *User) error
}
