package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "onboardiq-test",
		Expiration: 15 * time.Minute,
	})
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, []string{RoleAdmin, RoleOperator})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, []string{RoleAdmin, RoleOperator}, claims.Roles)
	assert.Equal(t, "onboardiq-test", claims.Issuer)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestNewJWTService_RequiresKeyMaterial(t *testing.T) {
	_, err := NewJWTService(JWTConfig{Issuer: "x"})
	assert.Error(t, err)
}

func TestValidateToken_Rejections(t *testing.T) {
	good := newTestJWTService(t)

	expired, err := NewJWTService(JWTConfig{Secret: "test-secret-key-for-unit-tests", Issuer: "onboardiq-test", Expiration: -time.Hour})
	require.NoError(t, err)
	otherSecret, err := NewJWTService(JWTConfig{Secret: "another-secret", Issuer: "onboardiq-test", Expiration: time.Hour})
	require.NoError(t, err)
	otherIssuer, err := NewJWTService(JWTConfig{Secret: "test-secret-key-for-unit-tests", Issuer: "someone-else", Expiration: time.Hour})
	require.NoError(t, err)

	tests := []struct {
		name   string
		issuer *JWTService
	}{
		{"expired", expired},
		{"wrong signature", otherSecret},
		{"wrong issuer", otherIssuer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.issuer.GenerateToken(uuid.New(), []string{RoleCustomer})
			require.NoError(t, err)
			_, err = good.ValidateToken(token)
			assert.Error(t, err)
		})
	}

	_, err = good.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestRSAModes(t *testing.T) {
	privPEM, pubPEM, err := GenerateKeyPair()
	require.NoError(t, err)

	issuer, err := NewJWTService(JWTConfig{PrivateKeyPEM: string(privPEM), Issuer: "onboardiq", Expiration: time.Hour})
	require.NoError(t, err)
	validator, err := NewJWTService(JWTConfig{PublicKeyPEM: string(pubPEM), Issuer: "onboardiq"})
	require.NoError(t, err)

	token, err := issuer.GenerateToken(uuid.New(), []string{RoleAuditor})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.HasRole(RoleAuditor))

	_, err = validator.GenerateToken(uuid.New(), nil)
	assert.ErrorIs(t, err, ErrValidationOnly)
	assert.Equal(t, "RS256", issuer.Method())
	assert.Equal(t, "RS256", validator.Method())

	hmac := newTestJWTService(t)
	hmacToken, err := hmac.GenerateToken(uuid.New(), nil)
	require.NoError(t, err)
	_, err = validator.ValidateToken(hmacToken)
	assert.Error(t, err, "an RSA validator must reject HMAC tokens")
	assert.Equal(t, "HS256", hmac.Method())
}

func TestHasRole(t *testing.T) {
	claims := Claims{Roles: []string{RoleAdmin, RoleAuditor}}

	assert.True(t, claims.HasRole(RoleAdmin))
	assert.True(t, claims.HasRole(RoleAuditor))
	assert.False(t, claims.HasRole(RoleCustomer))
	assert.True(t, claims.HasAnyRole(RoleCustomer, RoleAuditor))
	assert.False(t, claims.HasAnyRole(RoleCustomer, RoleAPIClient))
	assert.False(t, claims.HasAnyRole())
}

func TestClaimsFromContext(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)

	expected := &Claims{UserID: uuid.New(), Roles: []string{RoleOperator}}
	got, ok := ClaimsFromContext(ContextWithClaims(context.Background(), expected))
	require.True(t, ok)
	assert.Equal(t, expected, got)
}
