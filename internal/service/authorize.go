package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/msomdec/tankermade/internal/domain"
)

// Actor is the authenticated identity issuing a request.
type Actor struct {
	ID   uuid.UUID
	Role domain.Role
}

// ActorFromClaims builds an Actor from validated token claims.
func ActorFromClaims(c *Claims) (Actor, error) {
	id, err := c.UserID()
	if err != nil {
		return Actor{}, domain.ErrUnauthenticated
	}
	return Actor{ID: id, Role: c.Role}, nil
}

// ProfileUpdate is a requested change to a user. Nil fields are left unchanged.
type ProfileUpdate struct {
	TargetID uuid.UUID
	Username *string
	Email    *string
	Password *string
	Role     *domain.Role
}

// AuthorizeProfileUpdate decides whether actor may apply update to existing.
// existing must already be resolved; the caller reports a missing target.
// Rules are checked in order and the first failure wins.
func AuthorizeProfileUpdate(actor Actor, existing *domain.User, update ProfileUpdate) error {
	if actor.Role.IsAdmin() {
		return nil
	}
	if update.Role != nil && *update.Role != existing.Role {
		return fmt.Errorf("%w: role change requires Admin", domain.ErrUnauthorized)
	}
	if update.TargetID != actor.ID {
		return fmt.Errorf("%w: can only modify own profile", domain.ErrUnauthorized)
	}
	return nil
}

// AuthorizeProfileRead decides whether actor may view target. Admins may
// view anyone, other roles only themselves.
func AuthorizeProfileRead(actor Actor, target *domain.User) error {
	if actor.Role.IsAdmin() || target.ID == actor.ID {
		return nil
	}
	return fmt.Errorf("%w: can only view own profile", domain.ErrUnauthorized)
}
