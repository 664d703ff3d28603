// Package stubapi serves the CardDemo REST contract over the in-memory store.
// It stands in for the real backend in local development and end-to-end
// tests.
package stubapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/0xcafe-io/iz"
	"github.com/sirupsen/logrus"

	appErrors "github.com/patilpriyadarshini/migration-repo-sub001/errors"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/carddemo"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/storage"
	"github.com/patilpriyadarshini/migration-repo-sub001/logging"
)

const (
	HEADER_REQUEST_ID = "X-Request-Id"
	HEADER_USER_TYPE  = "X-User-Type"
	ADMIN_USER_TYPE   = "A"
)

type StubApi struct {
	Store *storage.InMemoryStorage
}

func NewStubApi(store *storage.InMemoryStorage) *StubApi {
	return &StubApi{Store: store}
}

// Handler returns the mux with every backend route registered.
func (api *StubApi) Handler() http.Handler {
	server := http.NewServeMux()

	// AUTH ENDPOINTS.
	server.HandleFunc("POST /api/auth/login", iz.Bind(api.LoginHandler))

	// ACCOUNT ENDPOINTS.
	server.HandleFunc("GET /api/accounts/{id}", iz.Bind(api.GetAccountHandler))
	server.HandleFunc("PUT /api/accounts/{id}", iz.Bind(api.UpdateAccountHandler))

	// CARD ENDPOINTS.
	server.HandleFunc("GET /api/cards", iz.Bind(api.GetCardsHandler))
	server.HandleFunc("GET /api/cards/{cardNumber}", iz.Bind(api.GetCardHandler))
	server.HandleFunc("PUT /api/cards/{cardNumber}", iz.Bind(api.UpdateCardHandler))

	// TRANSACTION ENDPOINTS.
	server.HandleFunc("GET /api/transactions", iz.Bind(api.GetTransactionsHandler))
	server.HandleFunc("GET /api/transactions/{id}", iz.Bind(api.GetTransactionByIdHandler))
	server.HandleFunc("POST /api/transactions", iz.Bind(api.SaveTransactionHandler))

	// BILL PAYMENT AND REPORTS.
	server.HandleFunc("POST /api/bill-payment", iz.Bind(api.PayBillHandler))
	server.HandleFunc("POST /api/reports/{type}", iz.Bind(api.GenerateReportHandler))

	// ADMIN USER ENDPOINTS.
	server.HandleFunc("GET /api/admin/users", iz.Bind(api.adminOnly(api.GetUsersHandler)))
	server.HandleFunc("GET /api/admin/users/{id}", iz.Bind(api.adminOnly(api.GetUserHandler)))
	server.HandleFunc("POST /api/admin/users", iz.Bind(api.adminOnly(api.SaveUserHandler)))
	server.HandleFunc("PUT /api/admin/users/{id}", iz.Bind(api.adminOnly(api.UpdateUserHandler)))
	server.HandleFunc("DELETE /api/admin/users/{id}", iz.Bind(api.adminOnly(api.DeleteUserHandler)))

	server.HandleFunc("GET /api/health", iz.Bind(api.HealthHandler))

	return server
}

func (api *StubApi) adminOnly(next func(r *iz.Request) iz.Responder) func(r *iz.Request) iz.Responder {
	return func(r *iz.Request) iz.Responder {
		if r.Header.Get(HEADER_USER_TYPE) != ADMIN_USER_TYPE {
			return respondError(r, appErrors.New(appErrors.ErrAccessDenied, "Admin access required"))
		}
		return next(r)
	}
}

func httpStatusFromError(err error) int {
	switch {
	case errors.Is(err, appErrors.NotFound):
		return 404 // not found
	case errors.Is(err, appErrors.InvalidInput), errors.Is(err, appErrors.Rejected):
		return 400 // bad request
	case errors.Is(err, appErrors.Auth):
		return 401 // unauthorized
	case errors.Is(err, appErrors.AccessDenied):
		return 403 // access denied
	case errors.Is(err, appErrors.Conflict):
		return 409 // conflict
	default:
		return 500 //internal error
	}
}

func respondError(r *iz.Request, err error) iz.Responder {
	status := httpStatusFromError(err)
	msg := appErrors.MessageOf(err)
	if status == 500 || msg == "" {
		msg = "internal server error"
	}
	entry := logging.Logger.WithFields(logrus.Fields{
		"trace_id": r.Header.Get(HEADER_REQUEST_ID),
		"method":   r.Method,
		"path":     r.URL.Path,
		"status":   status,
	})
	if status == 500 {
		entry.Errorf("stub request failed: %v", err)
	} else {
		entry.Debugf("stub request rejected: %v", err)
	}
	return iz.Respond().Status(status).JSON(carddemo.MessageResponse{Message: msg})
}

func decodeBody(r *iz.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return appErrors.New(appErrors.ErrInvalidInput, fmt.Sprintf("invalid request body: %s", err.Error()))
	}
	return nil
}

func pageParams(r *iz.Request) (int, int, error) {
	params := r.URL.Query()
	page, size := 0, carddemo.DEFAULT_PAGE_SIZE
	if p := params.Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > carddemo.MAX_PAGE {
			return 0, 0, appErrors.New(appErrors.ErrInvalidInput, fmt.Sprintf("page must be between 0 and %d", carddemo.MAX_PAGE))
		}
		page = n
	}
	if s := params.Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return 0, 0, appErrors.New(appErrors.ErrInvalidInput, "size must be a positive integer")
		}
		size = n
	}
	return page, size, nil
}

func (api *StubApi) HealthHandler(r *iz.Request) iz.Responder {
	return iz.Respond().Status(200).JSON(map[string]string{
		"status":  "UP",
		"storage": api.Store.GetStorageType(),
	})
}
