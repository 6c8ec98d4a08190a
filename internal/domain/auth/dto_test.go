package auth

import (
	"errors"
	"testing"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRequest_Validate(t *testing.T) {
	req := LoginRequest{Email: "  Jane@Example.COM ", Password: "secret123"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "jane@example.com", req.Email)

	req = LoginRequest{Email: "nope", Password: "short"}
	err := req.Validate()
	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	m := errs.ToMap()
	assert.Equal(t, "email must be a valid email address", m["email"])
	assert.Equal(t, "password must be at least 8 characters long", m["password"])
}

func TestRegisterRequest_Validate(t *testing.T) {
	req := RegisterRequest{Email: "a@b.co", Password: "password1", ConfirmPassword: "password1"}
	require.NoError(t, req.Validate())
	assert.Equal(t, user.RoleEmployee, req.Role)

	req = RegisterRequest{Email: "a@b.co", Password: "password1", ConfirmPassword: "password2", Role: "owner"}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not match")
	assert.Contains(t, err.Error(), "role must be one of")
}
