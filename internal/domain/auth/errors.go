package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrRoleNotAllowed      = errors.New("account role is not allowed to sign in")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrSessionInvalid      = errors.New("session is no longer valid")
	ErrOAuthDisabled       = errors.New("google sign-in is not configured")
	ErrOAuthStateMismatch  = errors.New("oauth state mismatch")
	ErrOAuthEmailNotFound  = errors.New("no account is registered for this google email")
)
