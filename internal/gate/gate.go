// Package gate decides which screens a session may reach.
package gate

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/patilpriyadarshini/migration-repo-sub001/internal/auth"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/contextutil"
	"github.com/patilpriyadarshini/migration-repo-sub001/logging"
)

type Category int

const (
	Public Category = iota
	Authenticated
	Admin
)

const (
	LOGIN_PATH      = "/login"
	USER_MENU_PATH  = "/menu"
	ADMIN_MENU_PATH = "/admin"
)

func (c Category) String() string {
	switch c {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	}
	return "unknown"
}

type requirement struct {
	session bool
	role    auth.Role
}

// policy maps each route category to what the session must satisfy.
var policy = map[Category]requirement{
	Public:        {},
	Authenticated: {session: true},
	Admin:         {session: true, role: auth.RoleAdmin},
}

type Decision struct {
	Allowed  bool
	Redirect string
}

// Check is the single authorization decision for a navigation. Unknown
// categories are treated as admin-only.
func Check(session *auth.Session, category Category) Decision {
	req, ok := policy[category]
	if !ok {
		req = policy[Admin]
	}
	if req.session && session == nil {
		return Decision{Redirect: LOGIN_PATH}
	}
	if req.role != "" && session.Role != req.role {
		return Decision{Redirect: USER_MENU_PATH}
	}
	return Decision{Allowed: true}
}

// Landing is where a freshly signed-in session goes.
func Landing(role auth.Role) string {
	if role == auth.RoleAdmin {
		return ADMIN_MENU_PATH
	}
	return USER_MENU_PATH
}

// Guard redirects requests the policy does not allow. The session must have
// been put in the request context by the session middleware.
func Guard(category Category, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := Check(contextutil.SessionFromContext(r.Context()), category)
		if !decision.Allowed {
			logging.Logger.WithFields(logrus.Fields{
				"trace_id": contextutil.TraceIDFromContext(r.Context()),
				"path":     r.URL.Path,
				"category": category.String(),
				"redirect": decision.Redirect,
			}).Debug("navigation blocked")
			http.Redirect(w, r, decision.Redirect, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
