package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablereservation/internal/domain"
)

func TestJWTProvider_IssueAndVerify(t *testing.T) {
	p := NewJWTProvider("test-secret")

	token, err := p.Issue("member-123", "m@example.com", domain.RoleOwner, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	memberID, err := p.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "member-123", memberID)
}

func TestJWTProvider_Claims(t *testing.T) {
	secret := "test-secret"
	p := NewJWTProvider(secret)

	token, err := p.Issue("member-123", "m@example.com", domain.RoleCustomer, time.Hour)
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "member-123", claims.Subject)
	assert.Equal(t, "m@example.com", claims.Email)
	assert.Equal(t, "CUSTOMER", claims.Role)
}

func TestJWTProvider_VerifyRejectsBadTokens(t *testing.T) {
	p := NewJWTProvider("test-secret")

	_, err := p.Verify("not-a-token")
	assert.Error(t, err)

	other := NewJWTProvider("other-secret")
	token, err := other.Issue("member-123", "m@example.com", domain.RoleCustomer, time.Hour)
	require.NoError(t, err)
	_, err = p.Verify(token)
	assert.Error(t, err)
}

func TestJWTProvider_VerifyRejectsExpired(t *testing.T) {
	p := NewJWTProvider("test-secret")
	token, err := p.Issue("member-123", "m@example.com", domain.RoleCustomer, -time.Minute)
	require.NoError(t, err)
	_, err = p.Verify(token)
	assert.Error(t, err)
}
