package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/patilpriyadarshini/migration-repo-sub001/internal/auth"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/carddemo"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/client"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/console"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/gate"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/storage"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/stubapi"
)

type screenBody struct {
	Values      map[string]any     `json:"values"`
	FieldErrors map[string]string  `json:"fieldErrors"`
	Message     string             `json:"message"`
	Kind        string             `json:"kind"`
	Data        json.RawMessage    `json:"data"`
	Page        *carddemo.PageInfo `json:"page"`
	Redirect    string             `json:"redirect"`
}

type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newBrowser(t *testing.T) *browser {
	t.Helper()

	store := storage.NewInMemoryStorage()
	require.NoError(t, storage.Seed(store))
	backend := httptest.NewServer(stubapi.NewStubApi(store).Handler())
	t.Cleanup(backend.Close)

	sessions := auth.NewSessionStore([]byte("test-session-secret-0123456789abc"), false)
	service := console.New(client.New(backend.URL, 2*time.Second))
	front := httptest.NewServer(NewApi(service, sessions).Handler())
	t.Cleanup(front.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: front.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) do(method string, path string, body any) (*http.Response, screenBody) {
	b.t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(b.t, err)
	}
	req, err := http.NewRequest(method, b.base+path, bytes.NewReader(payload))
	require.NoError(b.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	var screen screenBody
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(b.t, json.NewDecoder(resp.Body).Decode(&screen))
	}
	return resp, screen
}

func (b *browser) login(userID string, password string) screenBody {
	b.t.Helper()
	resp, screen := b.do(http.MethodPost, "/ui/login", map[string]string{"userId": userID, "password": password})
	require.Equal(b.t, 200, resp.StatusCode, screen.Message)
	return screen
}

func TestAdminLoginLandsOnAdminMenu(t *testing.T) {
	b := newBrowser(t)

	screen := b.login("ADMIN001", "admin123")
	require.Equal(t, gate.ADMIN_MENU_PATH, screen.Redirect)

	var login carddemo.LoginResponse
	require.NoError(t, json.Unmarshal(screen.Data, &login))
	require.Equal(t, "A", login.UserType)

	resp, _ := b.do(http.MethodGet, "/ui/session", nil)
	require.Equal(t, 200, resp.StatusCode)

	resp, _ = b.do(http.MethodGet, gate.ADMIN_MENU_PATH, nil)
	require.Equal(t, 200, resp.StatusCode)
}

func TestUserIsKeptOffAdminScreens(t *testing.T) {
	b := newBrowser(t)

	screen := b.login("USER0001", "user0001")
	require.Equal(t, gate.USER_MENU_PATH, screen.Redirect)

	resp, _ := b.do(http.MethodGet, "/ui/admin/users", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, gate.USER_MENU_PATH, resp.Header.Get("Location"))
}

func TestLoggedOutIsSentToLogin(t *testing.T) {
	b := newBrowser(t)

	resp, _ := b.do(http.MethodGet, "/ui/accounts/12345678901", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, gate.LOGIN_PATH, resp.Header.Get("Location"))

	resp, _ = b.do(http.MethodGet, gate.LOGIN_PATH, nil)
	require.Equal(t, 200, resp.StatusCode)
}

func TestLoginFailures(t *testing.T) {
	b := newBrowser(t)

	resp, screen := b.do(http.MethodPost, "/ui/login", map[string]string{"userId": "ADMIN001", "password": "wrongpwd"})
	require.Equal(t, 401, resp.StatusCode)
	require.Equal(t, "Invalid user ID or password", screen.Message)

	resp, screen = b.do(http.MethodPost, "/ui/login", map[string]string{"userId": "ADM", "password": ""})
	require.Equal(t, 400, resp.StatusCode)
	require.Len(t, screen.FieldErrors, 2)

	resp, _ = b.do(http.MethodGet, "/ui/session", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestAccountSearchPopulatesForm(t *testing.T) {
	b := newBrowser(t)
	b.login("USER0001", "user0001")

	resp, screen := b.do(http.MethodGet, "/ui/accounts/12345678901", nil)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "1500.00", screen.Values["acctCurrBal"])
	require.Equal(t, "Alice", screen.Values["customerFirstName"])
	require.Equal(t, "123-45-6789", screen.Values["customerSsn"])
}

func TestAccountNotFoundShowsServerMessage(t *testing.T) {
	b := newBrowser(t)
	b.login("USER0001", "user0001")

	resp, screen := b.do(http.MethodGet, "/ui/accounts/99999999999", nil)
	require.Equal(t, 404, resp.StatusCode)
	require.Equal(t, "Account not found: 99999999999", screen.Message)
	require.Equal(t, "error", screen.Kind)
}

func TestAccountUpdateRoundTrip(t *testing.T) {
	b := newBrowser(t)
	b.login("USER0001", "user0001")

	_, loaded := b.do(http.MethodGet, "/ui/accounts/12345678901", nil)
	form := loaded.Values
	form["acctCreditLimit"] = "6500.00"
	form["customerAddrLine2"] = "Suite 9"

	resp, saved := b.do(http.MethodPut, "/ui/accounts/12345678901", form)
	require.Equal(t, 200, resp.StatusCode, saved.Message)
	require.Equal(t, "success", saved.Kind)
	require.Equal(t, form, saved.Values)

	resp, again := b.do(http.MethodPut, "/ui/accounts/12345678901", form)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, saved.Values, again.Values)

	_, reloaded := b.do(http.MethodGet, "/ui/accounts/12345678901", nil)
	require.Equal(t, "6500.00", reloaded.Values["acctCreditLimit"])

	form["customerFicoCreditScore"] = "900"
	resp, invalid := b.do(http.MethodPut, "/ui/accounts/12345678901", form)
	require.Equal(t, 400, resp.StatusCode)
	require.Contains(t, invalid.FieldErrors, "customerFicoCreditScore")
}

func TestTransactionListPaginates(t *testing.T) {
	b := newBrowser(t)
	b.login("USER0001", "user0001")

	_, screen := b.do(http.MethodGet, "/ui/transactions?page=1&size=5", nil)
	require.NotNil(t, screen.Page)
	require.Equal(t, 3, screen.Page.TotalPages)
	require.True(t, screen.Page.HasNext)
	require.True(t, screen.Page.HasPrevious)

	_, screen = b.do(http.MethodGet, "/ui/transactions?page=2&size=5", nil)
	require.False(t, screen.Page.HasNext)
}

func TestAdminManagesUsers(t *testing.T) {
	b := newBrowser(t)
	b.login("ADMIN001", "admin123")

	resp, created := b.do(http.MethodPost, "/ui/admin/users", map[string]string{
		"userId": "USER0002", "firstName": "Bob", "lastName": "Jones", "password": "secret12", "userType": "U",
	})
	require.Equal(t, 201, resp.StatusCode, created.Message)

	resp, dup := b.do(http.MethodPost, "/ui/admin/users", map[string]string{
		"userId": "USER0002", "firstName": "Bob", "lastName": "Jones", "password": "secret12", "userType": "U",
	})
	require.Equal(t, 409, resp.StatusCode)
	require.Equal(t, "User ID already exists: USER0002", dup.Message)

	resp, deleted := b.do(http.MethodDelete, "/ui/admin/users/USER0002", nil)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "User USER0002 has been deleted", deleted.Message)
}

func TestLogoutClearsSession(t *testing.T) {
	b := newBrowser(t)
	b.login("ADMIN001", "admin123")

	resp, screen := b.do(http.MethodPost, "/ui/logout", nil)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, gate.LOGIN_PATH, screen.Redirect)

	resp, _ = b.do(http.MethodGet, "/ui/session", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}
