package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/ems-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	withTx    postgresql.TxRunner
	users     user.UserRepository
	employees employee.EmployeeRepository
	jwt.Service
	postgresql.JWTRepository
	google oauth.GoogleService
	hub    *sse.Hub
}

// NewAuthService wires the identity service. google may be nil when Google
// sign-in is not configured.
func NewAuthService(withTx postgresql.TxRunner, userRepository user.UserRepository, employeeRepository employee.EmployeeRepository, jwtService jwt.Service, jwtRepository postgresql.JWTRepository, google oauth.GoogleService, hub *sse.Hub) auth.AuthService {
	return &AuthServiceImpl{
		withTx:        withTx,
		users:         userRepository,
		employees:     employeeRepository,
		Service:       jwtService,
		JWTRepository: jwtRepository,
		google:        google,
		hub:           hub,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (user.User, error) {
	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.users.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: &hashed,
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return user.User{}, err
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := a.resolveEmployee(ctx, created); err != nil {
		slog.Warn("Failed to link employee on register", "user_id", created.ID, "error", err)
	}
	return created, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, track auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.startSession(ctx, userData, track)
}

// GoogleRedirectURL implements auth.AuthService.
func (a *AuthServiceImpl) GoogleRedirectURL(userAgent string) (string, string, error) {
	if a.google == nil {
		return "", "", auth.ErrOAuthDisabled
	}
	state, err := a.google.GenerateState(userAgent)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return a.google.RedirectURL(state), state, nil
}

// LoginWithGoogle implements auth.AuthService. Only accounts that already
// exist can sign in with Google.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, req auth.GoogleCallbackRequest, track auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if a.google == nil {
		return auth.TokenResponse{}, auth.ErrOAuthDisabled
	}
	if !a.google.VerifyState(req.State, track.UserAgent) {
		return auth.TokenResponse{}, auth.ErrOAuthStateMismatch
	}

	token, err := a.google.VerifyToken(ctx, req.Code)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to exchange google code: %w", err)
	}
	info, err := a.google.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to fetch google account: %w", err)
	}

	userData, err := a.users.LinkGoogleAccount(ctx, info.GoogleID, info.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrOAuthEmailNotFound
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to link google account: %w", err)
	}

	return a.startSession(ctx, userData, track)
}

// startSession issues the token pair of a new session, stores the refresh
// token and announces the sign-in.
func (a *AuthServiceImpl) startSession(ctx context.Context, userData user.User, track auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if !userData.Role.Valid() {
		return auth.TokenResponse{}, auth.ErrRoleNotAllowed
	}

	employeeID, err := a.resolveEmployee(ctx, userData)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	tokenResponse := auth.TokenResponse{
		SessionID:  uuid.NewString(),
		UserID:     userData.ID,
		Role:       userData.Role,
		EmployeeID: employeeID,
	}

	err = a.withTx(ctx, func(txCtx context.Context) error {
		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.GenerateAccessToken(jwt.AccessClaims{
			UserID:     userData.ID,
			Email:      userData.Email,
			EmployeeID: employeeID,
			Role:       userData.Role,
			SessionID:  tokenResponse.SessionID,
		})
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.GenerateRefreshToken(userData.ID, tokenResponse.SessionID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}
		if err := a.CreateRefreshToken(txCtx, userData.ID, tokenResponse.SessionID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, track); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	a.hub.Publish(sse.AuthTopic(userData.ID), sse.Event{Name: sse.EventSignedIn, SessionID: tokenResponse.SessionID})
	return tokenResponse, nil
}

// resolveEmployee finds the employee linked to the user, falling back to an
// unlinked employee with the same email which is then linked. A user
// without an employee row yields nil.
func (a *AuthServiceImpl) resolveEmployee(ctx context.Context, userData user.User) (*string, error) {
	emp, err := a.employees.GetByUserID(ctx, userData.ID)
	if err == nil {
		return &emp.ID, nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return nil, fmt.Errorf("failed to get employee by user: %w", err)
	}

	emp, err = a.employees.GetByEmail(ctx, userData.Email)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by email: %w", err)
	}
	if emp.UserID != nil {
		return nil, nil
	}

	if err := a.employees.LinkUser(ctx, emp.ID, userData.ID); err != nil {
		return nil, fmt.Errorf("failed to link employee: %w", err)
	}
	slog.Info("Linked employee to user by email", "employee_id", emp.ID, "user_id", userData.ID)
	return &emp.ID, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	userID, sessionID, err := a.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !userData.Role.Valid() {
		return auth.AccessTokenResponse{}, auth.ErrRoleNotAllowed
	}

	var employeeID *string
	if emp, err := a.employees.GetByUserID(ctx, userID); err == nil {
		employeeID = &emp.ID
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get employee by user: %w", err)
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.GenerateAccessToken(jwt.AccessClaims{
		UserID:     userData.ID,
		Email:      userData.Email,
		EmployeeID: employeeID,
		Role:       userData.Role,
		SessionID:  sessionID,
	})
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return resp, nil
}

// ValidateSession implements auth.AuthService.
func (a *AuthServiceImpl) ValidateSession(ctx context.Context, userID string, sessionID string) (user.User, error) {
	active, err := a.IsSessionActive(ctx, userID, sessionID)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to check session: %w", err)
	}
	if !active {
		return user.User{}, auth.ErrSessionInvalid
	}

	userData, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, auth.ErrSessionInvalid
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return userData, nil
}

// RevokeSession implements auth.AuthService.
func (a *AuthServiceImpl) RevokeSession(ctx context.Context, userID string, sessionID string) error {
	if _, err := a.JWTRepository.RevokeSession(ctx, userID, sessionID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	a.hub.Publish(sse.AuthTopic(userID), sse.Event{Name: sse.EventSignedOut, SessionID: sessionID})
	return nil
}

// RevokeAllSessions implements auth.AuthService.
func (a *AuthServiceImpl) RevokeAllSessions(ctx context.Context, userID string) error {
	if _, err := a.JWTRepository.RevokeAllSessions(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	a.hub.Publish(sse.AuthTopic(userID), sse.Event{Name: sse.EventSignedOut})
	return nil
}

// ChangeRole implements auth.AuthService. The signed_in event makes every
// live session of the user reload its identity.
func (a *AuthServiceImpl) ChangeRole(ctx context.Context, userID string, req auth.ChangeRoleRequest) error {
	if err := a.users.UpdateRole(ctx, userID, req.Role); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to update role: %w", err)
	}
	a.hub.Publish(sse.AuthTopic(userID), sse.Event{Name: sse.EventSignedIn})
	return nil
}
