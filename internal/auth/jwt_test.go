// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/agencyhub/internal/config"
	"github.com/angelamos/agencyhub/internal/core"
)

func newTestManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "jwt.key")
	publicPath := filepath.Join(dir, "jwt.pub")
	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    privatePath,
		PublicKeyPath:     publicPath,
		Issuer:            "agencyhub-test",
		Audience:          "agencyhub-api",
		AccessTokenExpire: expire,
	})
	require.NoError(t, err)

	return manager
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := newTestManager(t, time.Minute)

	signed, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID:       "user-1",
		Email:        "owner@northwind.example",
		Role:         "AGENCY_OWNER",
		AgencyID:     "agency-1",
		TokenVersion: 3,
	})
	require.NoError(t, err)

	claims, err := manager.VerifyAccessToken(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "owner@northwind.example", claims.Email)
	assert.Equal(t, "AGENCY_OWNER", claims.Role)
	assert.Equal(t, "agency-1", claims.AgencyID)
	assert.Equal(t, 3, claims.TokenVersion)
}

func TestAccessTokenToleratesMissingAgency(t *testing.T) {
	manager := newTestManager(t, time.Minute)

	signed, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID:       "user-2",
		Email:        "new@user.example",
		Role:         "SUBACCOUNT_USER",
		TokenVersion: 1,
	})
	require.NoError(t, err)

	claims, err := manager.VerifyAccessToken(context.Background(), signed)
	require.NoError(t, err)
	assert.Empty(t, claims.AgencyID)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager := newTestManager(t, -time.Minute)

	signed, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID:       "user-1",
		Email:        "owner@northwind.example",
		Role:         "AGENCY_OWNER",
		TokenVersion: 1,
	})
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(context.Background(), signed)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer := newTestManager(t, time.Minute)
	verifier := newTestManager(t, time.Minute)

	signed, err := issuer.CreateAccessToken(AccessTokenClaims{
		UserID:       "user-1",
		Email:        "owner@northwind.example",
		Role:         "AGENCY_OWNER",
		TokenVersion: 1,
	})
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(context.Background(), signed)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	manager := newTestManager(t, time.Minute)

	_, err := manager.VerifyAccessToken(
		context.Background(), "not.a.token",
	)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWKSHandlerServesPublicKey(t *testing.T) {
	manager := newTestManager(t, time.Minute)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/.well-known/jwks.json", nil)
	manager.GetJWKSHandler()(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `"keys"`)
	assert.Contains(t, rec.Body.String(), `"EC"`)
	// the private key never leaves the process
	assert.NotContains(t, rec.Body.String(), `"d"`)
}
