// Package api is the HTTP surface of the admin front end. Screen routes are
// registered from a single table together with the gate category that
// protects them.
package api

import (
	"net/http"
	"strings"

	"github.com/0xcafe-io/iz"
	"github.com/sirupsen/logrus"

	appErrors "github.com/patilpriyadarshini/migration-repo-sub001/errors"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/auth"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/console"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/contextutil"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/gate"
	"github.com/patilpriyadarshini/migration-repo-sub001/logging"
)

type Api struct {
	Console  *console.Console
	Sessions *auth.SessionStore
}

func NewApi(c *console.Console, sessions *auth.SessionStore) *Api {
	return &Api{
		Console:  c,
		Sessions: sessions,
	}
}

type route struct {
	pattern  string
	category gate.Category
	handler  http.Handler
}

func (api *Api) routes() []route {
	return []route{
		// SESSION.
		{"GET " + gate.LOGIN_PATH, gate.Public, iz.Bind(api.LoginScreenHandler)},
		{"POST /ui/login", gate.Public, http.HandlerFunc(api.LoginHandler)},
		{"POST /ui/logout", gate.Authenticated, http.HandlerFunc(api.LogoutHandler)},
		{"GET /ui/session", gate.Authenticated, iz.Bind(api.SessionHandler)},

		// MENUS.
		{"GET " + gate.USER_MENU_PATH, gate.Authenticated, iz.Bind(api.MenuHandler)},
		{"GET " + gate.ADMIN_MENU_PATH, gate.Admin, iz.Bind(api.MenuHandler)},

		// ACCOUNTS.
		{"GET /ui/accounts/{id}", gate.Authenticated, iz.Bind(api.SearchAccountHandler)},
		{"PUT /ui/accounts/{id}", gate.Authenticated, iz.Bind(api.UpdateAccountHandler)},

		// CARDS.
		{"GET /ui/cards", gate.Authenticated, iz.Bind(api.ListCardsHandler)},
		{"GET /ui/cards/{cardNumber}", gate.Authenticated, iz.Bind(api.SearchCardHandler)},
		{"PUT /ui/cards/{cardNumber}", gate.Authenticated, iz.Bind(api.UpdateCardHandler)},

		// TRANSACTIONS.
		{"GET /ui/transactions", gate.Authenticated, iz.Bind(api.ListTransactionsHandler)},
		{"GET /ui/transactions/{id}", gate.Authenticated, iz.Bind(api.ViewTransactionHandler)},
		{"POST /ui/transactions", gate.Authenticated, iz.Bind(api.CreateTransactionHandler)},

		// BILL PAYMENT AND REPORTS.
		{"POST /ui/bill-payment", gate.Authenticated, iz.Bind(api.PayBillHandler)},
		{"POST /ui/reports", gate.Authenticated, iz.Bind(api.GenerateReportHandler)},

		// USER ADMINISTRATION.
		{"GET /ui/admin/users", gate.Admin, iz.Bind(api.ListUsersHandler)},
		{"GET /ui/admin/users/{id}", gate.Admin, iz.Bind(api.LoadUserHandler)},
		{"POST /ui/admin/users", gate.Admin, iz.Bind(api.CreateUserHandler)},
		{"PUT /ui/admin/users/{id}", gate.Admin, iz.Bind(api.UpdateUserHandler)},
		{"DELETE /ui/admin/users/{id}", gate.Admin, iz.Bind(api.DeleteUserHandler)},
	}
}

// Handler wires every route behind its gate and the session middleware.
func (api *Api) Handler() http.Handler {
	server := http.NewServeMux()
	for _, rt := range api.routes() {
		server.Handle(rt.pattern, gate.Guard(rt.category, rt.handler))
	}
	return api.WithSession(server)
}

// WithSession puts the trace id and the signed-in session, if any, into the
// request context.
func (api *Api) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := api.Sessions.Load(r)
		ctx := contextutil.WithTraceID(r.Context(), r.Header.Get(HEADER_REQUEST_ID))
		if session != nil {
			ctx = contextutil.WithSession(ctx, session)
		}
		w.Header().Set(HEADER_REQUEST_ID, contextutil.TraceIDFromContext(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoginHandler writes the session cookie, so it works on the raw
// ResponseWriter. Both JSON and urlencoded forms are accepted.
func (api *Api) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input map[string]any
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			writeJSON(w, 400, console.Screen{Message: "invalid login form"})
			return
		}
		input = queryForm(r.PostForm)
	} else {
		form, err := readForm(r.Header, r.Body)
		if err != nil {
			writeJSON(w, httpStatusFromError(err), console.Screen{Message: appErrors.MessageOf(err)})
			return
		}
		input = form
	}

	screen, session := api.Console.Login(r.Context(), input)
	if session == nil {
		writeJSON(w, screenStatus(screen), screen)
		return
	}

	if err := api.Sessions.Save(w, r, *session); err != nil {
		logging.Logger.WithFields(logrus.Fields{
			"trace_id": contextutil.TraceIDFromContext(r.Context()),
			"user_id":  session.UserID,
		}).Errorf("failed to save session: %v", err)
		writeJSON(w, 500, console.Screen{Message: "Unable to start a session, please try again"})
		return
	}
	writeJSON(w, 200, screen)
}

func (api *Api) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	screen := api.Console.Logout(r.Context())
	if err := api.Sessions.Clear(w, r); err != nil {
		logging.Logger.WithFields(logrus.Fields{
			"trace_id": contextutil.TraceIDFromContext(r.Context()),
		}).Errorf("failed to clear session: %v", err)
		writeJSON(w, 500, console.Screen{Message: "Unable to sign out, please try again"})
		return
	}
	writeJSON(w, 200, screen)
}
