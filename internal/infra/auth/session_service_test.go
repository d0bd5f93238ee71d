package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velo/config"
	"velo/internal/domain/entity"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.Session.Secret = secret

	return cfg
}

func TestSessionService_IssueAndVerify(t *testing.T) {
	svc, err := NewSessionService(testConfig("test_session_secret_long_enough"))
	require.NoError(t, err)

	token, err := svc.Issue(entity.Identity{Email: "owner@example.com", Name: "Site Owner"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, "Site Owner", claims.Name)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), claims.ExpiresAt, time.Minute)
}

func TestSessionService_VerifyFailsUnderDifferentSecret(t *testing.T) {
	issuer, err := NewSessionService(testConfig("secret-one"))
	require.NoError(t, err)
	verifier, err := NewSessionService(testConfig("secret-two"))
	require.NoError(t, err)

	token, err := issuer.Issue(entity.Identity{Email: "owner@example.com"})
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestSessionService_VerifyFailsAfterExpiry(t *testing.T) {
	secret := "shared-secret"
	svc, err := NewSessionService(testConfig(secret))
	require.NoError(t, err)

	// Sign an already-expired credential with the correct secret.
	expired := sessionClaims{
		Email: "owner@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-9 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte(secret))
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestSessionService_VerifyRejectsMissingExpiry(t *testing.T) {
	secret := "shared-secret"
	svc, err := NewSessionService(testConfig(secret))
	require.NoError(t, err)

	noExp := sessionClaims{Email: "owner@example.com"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noExp).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestSessionService_VerifyRejectsGarbage(t *testing.T) {
	svc, err := NewSessionService(testConfig("shared-secret"))
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		_, err := svc.Verify(token)
		assert.Error(t, err, "token %q should not verify", token)
	}
}

func TestSessionService_IssueRequiresEmail(t *testing.T) {
	svc, err := NewSessionService(testConfig("shared-secret"))
	require.NoError(t, err)

	_, err = svc.Issue(entity.Identity{Name: "No Email"})
	assert.Error(t, err)
}

func TestNewSessionService_RequiresSecret(t *testing.T) {
	_, err := NewSessionService(testConfig(""))
	assert.Error(t, err)
}

func TestSessionCookies(t *testing.T) {
	c := NewSessionCookie("tok")
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 28800, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)

	cleared := ClearSessionCookie()
	assert.Equal(t, CookieName, cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
