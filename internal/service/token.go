package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msomdec/tankermade/internal/domain"
)

// TokenConfig configures token signing and validation.
type TokenConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	Expiration time.Duration
}

// Claims is the payload of a session token. The subject holds the user ID.
type Claims struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenIssuer mints and validates HS256 session tokens. It holds no state
// besides its configuration and is safe for concurrent use.
type TokenIssuer struct {
	secret     []byte
	issuer     string
	audience   string
	expiration time.Duration
	now        func() time.Time
}

// NewTokenIssuer creates a TokenIssuer from cfg.
func NewTokenIssuer(cfg TokenConfig) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		expiration: cfg.Expiration,
		now:        time.Now,
	}
}

// WithClock returns a copy of the issuer that reads time from now.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	c := *t
	c.now = now
	return &c
}

// Generate signs a token for user and returns it with its expiry time.
func (t *TokenIssuer) Generate(user *domain.User) (string, time.Time, error) {
	// NumericDate has second precision; keep the returned expiry in step.
	issuedAt := t.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(t.expiration)

	claims := &Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses tokenString and checks signature, issuer, audience and
// expiry with no leeway. Every failure is reported as domain.ErrUnauthenticated.
func (t *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		slog.Debug("token rejected", "reason", err)
		return nil, domain.ErrUnauthenticated
	}
	if !token.Valid {
		return nil, domain.ErrUnauthenticated
	}

	if _, err := claims.UserID(); err != nil {
		slog.Debug("token rejected", "reason", "subject is not a user id")
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}
