package authorization

import (
	"net/http"

	"github.com/casbin/casbin"
	"github.com/sirupsen/logrus"
	"stayvista_service/domain"
	errs "stayvista_service/errors"
)

// CasbinMiddleware enforces the route policy against the caller's current
// stored role, never against the role baked into the token. The effective
// role is:
//
//	anonymous     - no valid session cookie
//	authenticated - valid session, no record in the users collection
//	guest/host/admin - valid session, role read from the stored record
//
// A caller whose record was deleted or whose role changed is re-evaluated
// on the very next request. Rejections are 401 without a session and 403
// with one.
func CasbinMiddleware(enforcer *casbin.Enforcer, users domain.UserStore, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
			role := domain.RoleAnonymous

			claims, authenticated := ClaimsFromContext(h.Context())
			if authenticated {
				role = domain.RoleAuthenticated
				user, err := users.GetByEmail(h.Context(), claims.Email)
				if err == nil && user != nil && user.Role != "" {
					role = user.Role
				}
			}

			allowed, err := enforcer.EnforceSafe(string(role), h.URL.Path, h.Method)
			if err != nil {
				logger.Errorf("enforce error on %s %s: %s", h.Method, h.URL.Path, err)
				http.Error(rw, errs.BadAccess, http.StatusForbidden)
				return
			}

			if !allowed {
				if !authenticated {
					logger.Warnf("unauthenticated access attempt on %s %s", h.Method, h.URL.Path)
					http.Error(rw, errs.UnauthorizedAccess, http.StatusUnauthorized)
					return
				}
				logger.Warnf("forbidden access attempt by %s on %s %s", claims.Email, h.Method, h.URL.Path)
				http.Error(rw, errs.BadAccess, http.StatusForbidden)
				return
			}

			next.ServeHTTP(rw, h)
		})
	}
}
