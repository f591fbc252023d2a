package middleware

import (
	"context"
	"net/http"
	"strings"

	"aligniq/internal/service"
)

type contextKey string

const RepIDKey contextKey = "repId"

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireRep validates a rep JWT from the Authorization header
func (m *AuthMiddleware) RequireRep(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateRepToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), RepIDKey, claims.RepID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AttachRep resolves a rep identity when a token is present but lets the
// request through anonymously otherwise. Used on the conversation-start
// route, which serves both the rep-led and surgeon-alone flows.
func (m *AuthMiddleware) AttachRep(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token != "" {
			if claims, err := m.authSvc.ValidateRepToken(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), RepIDKey, claims.RepID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetRepID extracts the rep ID from the request context
func GetRepID(ctx context.Context) string {
	if v, ok := ctx.Value(RepIDKey).(string); ok {
		return v
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
