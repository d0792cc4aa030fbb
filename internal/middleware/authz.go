package middleware

import (
	"context"
	"net/http"

	"go-blog-app/internal/data"
	"go-blog-app/internal/session"

	"github.com/casbin/casbin/v2"
)

// sessionUserKey is the session entry holding the signed-in user's openId.
const sessionUserKey = "user_open_id"

// UserLoader resolves a session subject to a user row.
type UserLoader interface {
	GetByOpenID(ctx context.Context, openID string) (*data.User, error)
}

// Authorizer creates a new middleware for authorization. It resolves the
// session to a user, stores UserInfo in the request context, and enforces
// the Casbin policy against the user's role.
func Authorizer(e *casbin.Enforcer, sm session.Manager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userInfo := &UserInfo{Role: RoleAnonymous}

			if openID := sm.GetString(r.Context(), sessionUserKey); openID != "" {
				user, err := users.GetByOpenID(r.Context(), openID)
				if err != nil {
					writeError(w, http.StatusInternalServerError, "Authorization error")
					return
				}
				if user != nil {
					userInfo = &UserInfo{ID: user.ID, OpenID: user.OpenID, Role: user.Role}
				}
			}

			// Add user info to the request context for downstream handlers.
			r = r.WithContext(SetUserInfo(r.Context(), userInfo))

			// Use Casbin to enforce the policy against the resolved role.
			allowed, err := e.Enforce(userInfo.Role, r.URL.Path, r.Method)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Authorization error")
				return
			}

			if !allowed {
				// Unauthenticated callers get 401 so clients know to start
				// the login flow; signed-in callers lacking the role get 403.
				if !userInfo.IsAuthenticated() {
					writeError(w, http.StatusUnauthorized, "Authentication required")
					return
				}
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
