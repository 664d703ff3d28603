package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	appErrors "github.com/patilpriyadarshini/migration-repo-sub001/errors"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/console"
)

const HEADER_REQUEST_ID = "X-Request-Id"

type SessionResponse struct {
	UserID   string `json:"userId"`
	UserType string `json:"userType"`
	Landing  string `json:"landing"`
}

type MenuOption struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

type Menu struct {
	Title   string       `json:"title"`
	UserID  string       `json:"userId,omitempty"`
	Options []MenuOption `json:"options"`
}

var userMenuOptions = []MenuOption{
	{Label: "Account View / Update", Path: "/ui/accounts/{id}"},
	{Label: "Credit Card List", Path: "/ui/cards"},
	{Label: "Credit Card View / Update", Path: "/ui/cards/{cardNumber}"},
	{Label: "Transaction List", Path: "/ui/transactions"},
	{Label: "Transaction View", Path: "/ui/transactions/{id}"},
	{Label: "Transaction Add", Path: "/ui/transactions"},
	{Label: "Bill Payment", Path: "/ui/bill-payment"},
	{Label: "Transaction Reports", Path: "/ui/reports"},
}

var adminMenuOptions = []MenuOption{
	{Label: "User List", Path: "/ui/admin/users"},
	{Label: "User Add", Path: "/ui/admin/users"},
	{Label: "User Update", Path: "/ui/admin/users/{id}"},
	{Label: "User Delete", Path: "/ui/admin/users/{id}"},
}

var loginScreen = Menu{
	Title:   "Sign in to CardDemo",
	Options: []MenuOption{{Label: "Sign in", Path: "/ui/login"}},
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
	case errors.Is(err, appErrors.Busy):
		return 429 // too many requests
	case errors.Is(err, appErrors.Unavailable):
		return 502 // bad gateway
	default:
		return 500 //internal error
	}
}

// screenStatus is 400 for field errors, the error's status for a failed
// call and 200 otherwise.
func screenStatus(screen console.Screen) int {
	if len(screen.FieldErrors) > 0 {
		return 400
	}
	if screen.Err != nil {
		return httpStatusFromError(screen.Err)
	}
	return 200
}

// readForm decodes a JSON object body. An empty body is an empty form.
func readForm(header http.Header, body io.Reader) (map[string]any, error) {
	form := map[string]any{}
	if body == nil {
		return form, nil
	}
	if ct := header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return nil, appErrors.New(appErrors.ErrInvalidInput, fmt.Sprintf("unsupported content type: %s", ct))
	}
	decoder := json.NewDecoder(body)
	decoder.UseNumber()
	if err := decoder.Decode(&form); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, appErrors.New(appErrors.ErrInvalidInput, fmt.Sprintf("invalid request body: %s", err.Error()))
	}
	return form, nil
}

// queryForm takes the first value of each query parameter.
func queryForm(params url.Values) map[string]any {
	form := make(map[string]any, len(params))
	for key, values := range params {
		if len(values) > 0 {
			form[key] = values[0]
		}
	}
	return form
}

func menuFor(userID string, admin bool) Menu {
	if admin {
		return Menu{Title: "Admin Menu", UserID: userID, Options: adminMenuOptions}
	}
	return Menu{Title: "Main Menu", UserID: userID, Options: userMenuOptions}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
