package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("123e4567-e89b-12d3-a456-426614174000"))
	assert.True(t, IsValidUUID("0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B"))
	assert.False(t, IsValidUUID("0188d0f27b8c7b4a8a2b6b8b8b8b8b8b"))
	assert.False(t, IsValidUUID("g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidPhoneNumber(t *testing.T) {
	assert.True(t, IsValidPhoneNumber("+1 555-010-9999"))
	assert.True(t, IsValidPhoneNumber("081234567890"))
	assert.False(t, IsValidPhoneNumber("12ab"))
	assert.False(t, IsValidPhoneNumber("123"))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2024-01-10")
	assert.True(t, ok)
	_, ok = IsValidDate("10/01/2024")
	assert.False(t, ok)
}

func TestValidationErrors_ErrAndMap(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.Add("email", "email is required")
	errs.Add("name", "name is required")

	err := errs.Err()
	require.Error(t, err)
	assert.Equal(t, "email: email is required; name: name is required", err.Error())
	assert.Equal(t, map[string]string{
		"email": "email is required",
		"name":  "name is required",
	}, errs.ToMap())
}

type sample struct {
	Email  string   `json:"email" validate:"required,email"`
	Status string   `json:"status" validate:"oneof=Active Probation Terminated"`
	Tags   []string `json:"tags" validate:"min=1"`
	Skip   string   `json:"-"`
}

func TestStruct(t *testing.T) {
	err := Struct(sample{Email: "a@b.co", Status: "Active", Tags: []string{"x"}})
	assert.NoError(t, err)

	err = Struct(sample{Email: "nope", Status: "Retired"})
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	m := verrs.ToMap()
	assert.Equal(t, "email must be a valid email address", m["email"])
	assert.Equal(t, "status must be one of: Active, Probation, Terminated", m["status"])
	assert.Equal(t, "tags must contain at least 1 item(s)", m["tags"])
}
