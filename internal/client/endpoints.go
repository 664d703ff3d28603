package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/patilpriyadarshini/migration-repo-sub001/internal/carddemo"
)

func pageQuery(query url.Values, page int, size int) url.Values {
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	} else {
		query.Set("page", "0")
	}
	if size <= 0 {
		size = carddemo.DEFAULT_PAGE_SIZE
	}
	query.Set("size", strconv.Itoa(size))
	return query
}

func (c *Client) Login(ctx context.Context, req carddemo.LoginRequest) (carddemo.LoginResponse, error) {
	var resp carddemo.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &resp)
	return resp, err
}

func (c *Client) GetAccount(ctx context.Context, acctID int64) (carddemo.Account, error) {
	var acct carddemo.Account
	err := c.do(ctx, http.MethodGet, "/api/accounts/"+strconv.FormatInt(acctID, 10), nil, nil, &acct)
	return acct, err
}

func (c *Client) UpdateAccount(ctx context.Context, acctID int64, acct carddemo.Account) (carddemo.Account, error) {
	var updated carddemo.Account
	err := c.do(ctx, http.MethodPut, "/api/accounts/"+strconv.FormatInt(acctID, 10), nil, acct, &updated)
	return updated, err
}

func (c *Client) ListCards(ctx context.Context, filter carddemo.CardFilter) (carddemo.Page[carddemo.Card], error) {
	query := url.Values{}
	if filter.AccountID != "" {
		query.Set("accountId", filter.AccountID)
	}
	if filter.CardNumber != "" {
		query.Set("cardNumber", filter.CardNumber)
	}
	var page carddemo.Page[carddemo.Card]
	err := c.do(ctx, http.MethodGet, "/api/cards", pageQuery(query, filter.Page, filter.Size), nil, &page)
	return page, err
}

func (c *Client) GetCard(ctx context.Context, cardNumber string) (carddemo.Card, error) {
	var card carddemo.Card
	err := c.do(ctx, http.MethodGet, "/api/cards/"+url.PathEscape(cardNumber), nil, nil, &card)
	return card, err
}

func (c *Client) UpdateCard(ctx context.Context, cardNumber string, card carddemo.Card) (carddemo.Card, error) {
	var updated carddemo.Card
	err := c.do(ctx, http.MethodPut, "/api/cards/"+url.PathEscape(cardNumber), nil, card, &updated)
	return updated, err
}

func (c *Client) ListTransactions(ctx context.Context, filter carddemo.TransactionFilter) (carddemo.Page[carddemo.Transaction], error) {
	query := url.Values{}
	if filter.TransactionID != "" {
		query.Set("transactionId", filter.TransactionID)
	}
	var page carddemo.Page[carddemo.Transaction]
	err := c.do(ctx, http.MethodGet, "/api/transactions", pageQuery(query, filter.Page, filter.Size), nil, &page)
	return page, err
}

func (c *Client) GetTransaction(ctx context.Context, tranID string) (carddemo.Transaction, error) {
	var tran carddemo.Transaction
	err := c.do(ctx, http.MethodGet, "/api/transactions/"+url.PathEscape(tranID), nil, nil, &tran)
	return tran, err
}

func (c *Client) CreateTransaction(ctx context.Context, req carddemo.TransactionCreateRequest) (carddemo.Transaction, error) {
	var tran carddemo.Transaction
	err := c.do(ctx, http.MethodPost, "/api/transactions", nil, req, &tran)
	return tran, err
}

func (c *Client) PayBill(ctx context.Context, req carddemo.BillPaymentRequest) (carddemo.BillPaymentResponse, error) {
	var resp carddemo.BillPaymentResponse
	err := c.do(ctx, http.MethodPost, "/api/bill-payment", nil, req, &resp)
	return resp, err
}

// GenerateReport posts to /api/reports/{monthly|yearly|custom}. The backend
// answers with the report id and its status; completion is not polled.
func (c *Client) GenerateReport(ctx context.Context, req carddemo.ReportRequest) (carddemo.ReportResponse, error) {
	var resp carddemo.ReportResponse
	err := c.do(ctx, http.MethodPost, "/api/reports/"+url.PathEscape(req.ReportType), nil, req, &resp)
	return resp, err
}

func (c *Client) ListUsers(ctx context.Context, filter carddemo.UserFilter) (carddemo.Page[carddemo.User], error) {
	query := url.Values{}
	if filter.UserID != "" {
		query.Set("userId", filter.UserID)
	}
	var page carddemo.Page[carddemo.User]
	err := c.do(ctx, http.MethodGet, "/api/admin/users", pageQuery(query, filter.Page, filter.Size), nil, &page)
	return page, err
}

func (c *Client) GetUser(ctx context.Context, userID string) (carddemo.User, error) {
	var user carddemo.User
	err := c.do(ctx, http.MethodGet, "/api/admin/users/"+url.PathEscape(userID), nil, nil, &user)
	return user, err
}

func (c *Client) CreateUser(ctx context.Context, req carddemo.UserCreateRequest) (carddemo.User, error) {
	var user carddemo.User
	err := c.do(ctx, http.MethodPost, "/api/admin/users", nil, req, &user)
	return user, err
}

func (c *Client) UpdateUser(ctx context.Context, userID string, req carddemo.UserUpdateRequest) (carddemo.User, error) {
	var user carddemo.User
	err := c.do(ctx, http.MethodPut, "/api/admin/users/"+url.PathEscape(userID), nil, req, &user)
	return user, err
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/users/"+url.PathEscape(userID), nil, nil, nil)
}
