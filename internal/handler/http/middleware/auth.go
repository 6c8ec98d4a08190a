package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// RequireSession resolves the session named by the token's sid claim and
// places its identity in the request context. Must run after AuthRequired.
func RequireSession(registry session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, rawClaims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			claims, err := jwt.ClaimsFromMap(rawClaims)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			provider, err := registry.Open(r.Context(), claims.UserID, claims.SessionID)
			if err != nil {
				slog.Warn("Session rejected", "user_id", claims.UserID, "session_id", claims.SessionID, "error", err)
				response.Unauthorized(w, session.ErrNotAuthenticated.Error())
				return
			}

			state := provider.Current()
			if !state.Authenticated || state.Identity == nil {
				response.Unauthorized(w, session.ErrNotAuthenticated.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithIdentity(r.Context(), *state.Identity)))
		})
	}
}
