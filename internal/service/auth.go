package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"github.com/msomdec/tankermade/internal/domain"
)

// RegisterInput carries a self-registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	// Role defaults to domain.RoleUser. Other roles are granted by an Admin.
	Role domain.Role
}

func (in RegisterInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Email, validation.Required, validation.Length(3, 255), is.Email),
		validation.Field(&in.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(&in.Role, validation.In(domain.RoleUser)),
	)
}

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService handles user registration, login, and token checks.
type AuthService struct {
	users  domain.UserRepository
	lookup *UserService
	hasher *PasswordHasher
	tokens *TokenIssuer
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, hasher *PasswordHasher, tokens *TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		lookup: NewUserService(users, hasher),
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// Register creates a new user account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.Role == "" {
		in.Role = domain.RoleUser
	}

	if err := s.ensureUnique(ctx, in.Username, in.Email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		Role:         in.Role,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user)
}

// EnsureAdmin creates an Admin account from in unless an Admin with that
// username already exists. It reports whether an account was created. A
// non-Admin account holding the username is an error.
func (s *AuthService) EnsureAdmin(ctx context.Context, in RegisterInput) (bool, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = ""
	if err := in.validate(); err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	existing, err := s.lookup.GetByUsername(ctx, in.Username)
	switch {
	case err == nil && existing.Role.IsAdmin():
		return false, nil
	case err == nil:
		return false, fmt.Errorf("%w: %q exists without Admin role", domain.ErrInvalidInput, in.Username)
	case !errors.Is(err, domain.ErrNotFound):
		return false, fmt.Errorf("check username: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return false, err
	}
	user := &domain.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		Role:         domain.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}

// Login verifies credentials, records the login time and signs a token.
// An unknown username and a wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.lookup.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Spend the same bcrypt work as a real comparison.
			s.hasher.Verify(password, s.fallbackHash())
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLoginAt = &now

	return s.issue(user)
}

// Authenticate validates a bearer token and returns its claims.
func (s *AuthService) Authenticate(token string) (*Claims, error) {
	return s.tokens.Validate(token)
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.lookup.GetByID(ctx, id)
}

func (s *AuthService) ensureUnique(ctx context.Context, username, email string) error {
	taken, err := s.lookup.UsernameExists(ctx, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		return domain.ErrDuplicateUsername
	}

	taken, err = s.lookup.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return domain.ErrDuplicateEmail
	}
	return nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash(uuid.NewString())
	})
	return s.dummyHash
}
