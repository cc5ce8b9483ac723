package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// TokenUser is what we resolve from a bearer token & inject into r.Context().
type TokenUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*TokenUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*TokenUser)
	return u, ok
}

// WithTestUser returns a copy of r with u injected into the request context.
// Handler tests use it to exercise protected endpoints without minting tokens.
func WithTestUser(r *http.Request, u *TokenUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *TokenUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Bearer-token middleware                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// UserFetcher resolves the user record behind a validated token subject.
// Returning (nil, nil) means the subject no longer exists.
type UserFetcher func(ctx context.Context, id string) (*TokenUser, error)

// Middleware authenticates requests from the Authorization header.
type Middleware struct {
	Tokens *TokenManager
	Fetch  UserFetcher
	Log    *zap.Logger
}

// RequireToken ensures the request carries a valid bearer token for an
// existing user, and injects that user into the request context.
// API callers always get a JSON 401; there is no login page to redirect to.
func (m *Middleware) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			respond.Unauthorized(w, "Unauthorized")
			return
		}

		claims, err := m.Tokens.Validate(raw)
		if err != nil {
			respond.Unauthorized(w, "Unauthorized")
			return
		}

		u, err := m.Fetch(r.Context(), claims.Subject)
		if err != nil {
			m.Log.Error("auth: fetching token user", zap.Error(err))
			respond.ServerError(w)
			return
		}
		if u == nil {
			respond.Unauthorized(w, "Unauthorized")
			return
		}

		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireRole ensures the context user has one of the allowed roles.
// Mount after RequireToken.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				respond.Unauthorized(w, "Unauthorized")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				respond.Forbidden(w, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
