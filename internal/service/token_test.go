package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/tankermade/internal/domain"
	"github.com/msomdec/tankermade/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

var testNow = time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)

func testTokenConfig() service.TokenConfig {
	return service.TokenConfig{
		Secret:     testJWTSecret,
		Issuer:     "tankermade",
		Audience:   "tankermade-client",
		Expiration: 60 * time.Minute,
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func testUser(role domain.Role) *domain.User {
	return &domain.User{
		ID:       uuid.MustParse("0b8f2a64-3c1e-4d5a-9e7f-112233445566"),
		Username: "alice",
		Email:    "alice@x.io",
		Role:     role,
	}
}

func TestTokenIssuer_GenerateAndValidate(t *testing.T) {
	issuer := service.NewTokenIssuer(testTokenConfig()).WithClock(fixedClock(testNow))
	user := testUser(domain.RoleAdmin)

	token, expiresAt, err := issuer.Generate(user)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(time.Hour), expiresAt)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "tankermade", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"tankermade-client"}, claims.Audience)
	assert.Equal(t, testNow, claims.IssuedAt.Time.UTC())
	assert.Equal(t, expiresAt, claims.ExpiresAt.Time.UTC())
	_, err = uuid.Parse(claims.ID)
	assert.NoError(t, err, "jti should be a uuid")
}

func TestTokenIssuer_UniqueTokenIDs(t *testing.T) {
	issuer := service.NewTokenIssuer(testTokenConfig()).WithClock(fixedClock(testNow))
	user := testUser(domain.RoleUser)

	first, _, err := issuer.Generate(user)
	require.NoError(t, err)
	second, _, err := issuer.Generate(user)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestTokenIssuer_ExpiryHasNoLeeway(t *testing.T) {
	issuer := service.NewTokenIssuer(testTokenConfig()).WithClock(fixedClock(testNow))
	token, expiresAt, err := issuer.Generate(testUser(domain.RoleUser))
	require.NoError(t, err)

	_, err = issuer.WithClock(fixedClock(expiresAt.Add(-time.Second))).Validate(token)
	assert.NoError(t, err, "one second before expiry is valid")

	_, err = issuer.WithClock(fixedClock(expiresAt)).Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated, "expiry instant is invalid")

	_, err = issuer.WithClock(fixedClock(expiresAt.Add(time.Second))).Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenIssuer_NegativeExpirationIsImmediatelyInvalid(t *testing.T) {
	cfg := testTokenConfig()
	cfg.Expiration = -time.Minute
	issuer := service.NewTokenIssuer(cfg).WithClock(fixedClock(testNow))

	token, _, err := issuer.Generate(testUser(domain.RoleUser))
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenIssuer_RejectsForeignTokens(t *testing.T) {
	issuer := service.NewTokenIssuer(testTokenConfig()).WithClock(fixedClock(testNow))

	mint := func(mutate func(*service.TokenConfig)) string {
		cfg := testTokenConfig()
		mutate(&cfg)
		token, _, err := service.NewTokenIssuer(cfg).WithClock(fixedClock(testNow)).Generate(testUser(domain.RoleUser))
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", mint(func(c *service.TokenConfig) { c.Secret = "another-secret-key-for-unit-tests-98765" })},
		{"wrong issuer", mint(func(c *service.TokenConfig) { c.Issuer = "someone-else" })},
		{"wrong audience", mint(func(c *service.TokenConfig) { c.Audience = "other-client" })},
		{"empty", ""},
		{"garbage", "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Validate(tt.token)
			assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		})
	}
}

func TestTokenIssuer_RejectsTamperedPayload(t *testing.T) {
	issuer := service.NewTokenIssuer(testTokenConfig()).WithClock(fixedClock(testNow))
	token, _, err := issuer.Generate(testUser(domain.RoleUser))
	require.NoError(t, err)

	// Re-sign an escalated payload under a different key and splice its body
	// onto the original signature.
	forged := &service.Claims{
		Username: "alice",
		Role:     domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   testUser(domain.RoleUser).ID.String(),
			Issuer:    "tankermade",
			Audience:  jwt.ClaimStrings{"tankermade-client"},
			ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
		},
	}
	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, forged).SignedString([]byte("x"))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	tampered := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = issuer.Validate(tampered)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenIssuer_RejectsUnsignedToken(t *testing.T) {
	issuer := service.NewTokenIssuer(testTokenConfig()).WithClock(fixedClock(testNow))

	claims := &service.Claims{
		Username: "alice",
		Role:     domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    "tankermade",
			Audience:  jwt.ClaimStrings{"tankermade-client"},
			ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenIssuer_RejectsMissingExpiryAndBadSubject(t *testing.T) {
	issuer := service.NewTokenIssuer(testTokenConfig()).WithClock(fixedClock(testNow))

	sign := func(c *service.Claims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testJWTSecret))
		require.NoError(t, err)
		return token
	}
	registered := jwt.RegisteredClaims{
		Subject:  uuid.NewString(),
		Issuer:   "tankermade",
		Audience: jwt.ClaimStrings{"tankermade-client"},
	}

	noExpiry := sign(&service.Claims{Username: "alice", Role: domain.RoleUser, RegisteredClaims: registered})
	_, err := issuer.Validate(noExpiry)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	registered.ExpiresAt = jwt.NewNumericDate(testNow.Add(time.Hour))
	registered.Subject = "alice"
	badSubject := sign(&service.Claims{Username: "alice", Role: domain.RoleUser, RegisteredClaims: registered})
	_, err = issuer.Validate(badSubject)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
