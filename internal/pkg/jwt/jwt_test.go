package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) Service {
	t.Helper()
	svc, err := NewJWTService("test-secret", "15m", "24h", false)
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_InvalidDuration(t *testing.T) {
	_, err := NewJWTService("s", "soon", "24h", false)
	assert.Error(t, err)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	svc := newService(t)
	empID := "emp-1"

	token, exp, err := svc.GenerateAccessToken(AccessClaims{
		UserID:     "user-1",
		Email:      "jane@example.com",
		EmployeeID: &empID,
		Role:       user.RoleEmployee,
		SessionID:  "sess-1",
	})
	require.NoError(t, err)
	assert.NotZero(t, exp)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	c, err := ClaimsFromMap(claims)
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UserID)
	assert.Equal(t, "sess-1", c.SessionID)
	assert.Equal(t, user.RoleEmployee, c.Role)
	require.NotNil(t, c.EmployeeID)
	assert.Equal(t, "emp-1", *c.EmployeeID)
}

func TestClaimsFromMap_RejectsOtherTypes(t *testing.T) {
	_, err := ClaimsFromMap(map[string]interface{}{"type": "refresh", "user_id": "u", "sid": "s", "role": "admin"})
	assert.ErrorIs(t, err, ErrInvalidClaims)

	_, err = ClaimsFromMap(map[string]interface{}{"type": "access", "user_id": "u", "sid": "s", "role": "owner"})
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	svc := newService(t)

	a, _, err := svc.GenerateRefreshToken("user-1", "sess-1")
	require.NoError(t, err)
	b, _, err := svc.GenerateRefreshToken("user-1", "sess-1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	userID, sid, err := svc.ParseRefreshToken(a)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "sess-1", sid)

	sse, _, err := svc.GenerateSSEToken("user-1")
	require.NoError(t, err)
	_, _, err = svc.ParseRefreshToken(sse)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestSSEToken(t *testing.T) {
	svc := newService(t)

	token, expiresIn, err := svc.GenerateSSEToken("user-9")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-9", userID)

	refresh, _, err := svc.GenerateRefreshToken("user-9", "s")
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(refresh)
	assert.Error(t, err)

	_, err = svc.ValidateSSEToken("garbage")
	assert.Error(t, err)
}
