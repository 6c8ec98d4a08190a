package auth

import (
	"context"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (user.User, error)
	Login(ctx context.Context, req LoginRequest, track SessionTrackingRequest) (TokenResponse, error)
	GoogleRedirectURL(userAgent string) (url string, state string, err error)
	LoginWithGoogle(ctx context.Context, req GoogleCallbackRequest, track SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)

	// ValidateSession returns the session's user while its refresh token is
	// neither revoked nor expired.
	ValidateSession(ctx context.Context, userID string, sessionID string) (user.User, error)
	// RevokeSession ends one session and announces it on the event hub.
	RevokeSession(ctx context.Context, userID string, sessionID string) error
	// RevokeAllSessions ends every session of the user.
	RevokeAllSessions(ctx context.Context, userID string) error
	// ChangeRole updates the user's role; live sessions reload it.
	ChangeRole(ctx context.Context, userID string, req ChangeRoleRequest) error
}
