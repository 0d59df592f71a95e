package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"github.com/msomdec/tankermade/internal/domain"
)

// UserService handles profile reads and role-gated profile updates.
type UserService struct {
	users  domain.UserRepository
	hasher *PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository, hasher *PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, strings.ToLower(email))
}

// Search returns users whose username or email contains term.
// An empty term lists everyone.
func (s *UserService) Search(ctx context.Context, term string) ([]domain.User, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.users.List(ctx)
	}
	return s.users.Search(ctx, term)
}

func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return exists(s.users.GetByUsername(ctx, username))
}

func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	return exists(s.GetByEmail(ctx, email))
}

// Get returns the user with id if actor may view it. A missing user is
// reported as ErrNotFound before the read rule runs.
func (s *UserService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeProfileRead(actor, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies update on behalf of actor. A missing target is reported as
// ErrNotFound before any authorization rule runs.
func (s *UserService) Update(ctx context.Context, actor Actor, update ProfileUpdate) (*domain.User, error) {
	existing, err := s.users.GetByID(ctx, update.TargetID)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeProfileUpdate(actor, existing, update); err != nil {
		return nil, err
	}

	update = normalizeProfileUpdate(update)
	if err := validateProfileUpdate(update); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	updated := *existing
	if update.Username != nil {
		updated.Username = *update.Username
	}
	if update.Email != nil {
		updated.Email = *update.Email
	}
	if update.Role != nil {
		updated.Role = *update.Role
	}
	if update.Password != nil {
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}

	if err := s.users.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &updated, nil
}

func normalizeProfileUpdate(u ProfileUpdate) ProfileUpdate {
	if u.Username != nil {
		username := strings.TrimSpace(*u.Username)
		u.Username = &username
	}
	if u.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*u.Email))
		u.Email = &email
	}
	return u
}

func validateProfileUpdate(u ProfileUpdate) error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Username, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&u.Email, validation.NilOrNotEmpty, validation.Length(3, 255), is.Email),
		validation.Field(&u.Password, validation.NilOrNotEmpty, validation.Length(6, 100)),
		validation.Field(&u.Role, validation.NilOrNotEmpty, validation.Length(1, 50)),
	)
}

func exists(_ *domain.User, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return false, err
}
