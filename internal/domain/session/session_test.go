package session

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	id := Identity{UserID: "u1", Role: user.RoleAdmin, Employee: &employee.Employee{ID: "e1"}}
	got, ok := FromContext(WithIdentity(context.Background(), id))
	require.True(t, ok)
	assert.True(t, got.IsAdmin())
	require.NotNil(t, got.EmployeeID())
	assert.Equal(t, "e1", *got.EmployeeID())
}

func TestIdentity_EmployeeIDNil(t *testing.T) {
	assert.Nil(t, Identity{UserID: "u1"}.EmployeeID())
}
