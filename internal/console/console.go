// Package console holds the screen operations of the CardDemo admin front
// end. Every operation validates its form, calls the backend at most once and
// returns the Screen to render.
package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	appErrors "github.com/patilpriyadarshini/migration-repo-sub001/errors"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/auth"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/carddemo"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/contextutil"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/editor"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/gate"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/schema"
	"github.com/patilpriyadarshini/migration-repo-sub001/logging"
)

const (
	MSG_LOGIN_FAILED = "Invalid user ID or password"
	MSG_SIGNED_OUT   = "You have been signed out"
	MSG_DELETE_SELF  = "You cannot delete the user you are signed in as"
)

type Backend interface {
	Login(ctx context.Context, req carddemo.LoginRequest) (carddemo.LoginResponse, error)
	GetAccount(ctx context.Context, acctID int64) (carddemo.Account, error)
	UpdateAccount(ctx context.Context, acctID int64, acct carddemo.Account) (carddemo.Account, error)
	ListCards(ctx context.Context, filter carddemo.CardFilter) (carddemo.Page[carddemo.Card], error)
	GetCard(ctx context.Context, cardNumber string) (carddemo.Card, error)
	UpdateCard(ctx context.Context, cardNumber string, card carddemo.Card) (carddemo.Card, error)
	ListTransactions(ctx context.Context, filter carddemo.TransactionFilter) (carddemo.Page[carddemo.Transaction], error)
	GetTransaction(ctx context.Context, tranID string) (carddemo.Transaction, error)
	CreateTransaction(ctx context.Context, req carddemo.TransactionCreateRequest) (carddemo.Transaction, error)
	PayBill(ctx context.Context, req carddemo.BillPaymentRequest) (carddemo.BillPaymentResponse, error)
	GenerateReport(ctx context.Context, req carddemo.ReportRequest) (carddemo.ReportResponse, error)
	ListUsers(ctx context.Context, filter carddemo.UserFilter) (carddemo.Page[carddemo.User], error)
	GetUser(ctx context.Context, userID string) (carddemo.User, error)
	CreateUser(ctx context.Context, req carddemo.UserCreateRequest) (carddemo.User, error)
	UpdateUser(ctx context.Context, userID string, req carddemo.UserUpdateRequest) (carddemo.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// Screen is the state a screen renders after an operation.
type Screen struct {
	Values      map[string]any     `json:"values,omitempty"`
	FieldErrors map[string]string  `json:"fieldErrors,omitempty"`
	Message     string             `json:"message,omitempty"`
	Kind        editor.MessageKind `json:"kind,omitempty"`
	Data        any                `json:"data,omitempty"`
	Page        *carddemo.PageInfo `json:"page,omitempty"`
	Redirect    string             `json:"redirect,omitempty"`
	Err         error              `json:"-"`
}

type Console struct {
	backend  Backend
	accounts *editor.Editor[carddemo.Account, carddemo.Account]
	cards    *editor.Editor[carddemo.Card, carddemo.Card]
	users    *editor.Editor[carddemo.User, carddemo.UserUpdateRequest]
	inflight sync.Map
}

func New(backend Backend) *Console {
	c := &Console{backend: backend}

	c.accounts = &editor.Editor[carddemo.Account, carddemo.Account]{
		Name:         "account update",
		SearchSchema: schema.AccountSearch,
		IDField:      "accountId",
		Fetch: func(ctx context.Context, id string) (carddemo.Account, error) {
			acctID, err := carddemo.ParseAccountID(id)
			if err != nil {
				return carddemo.Account{}, err
			}
			return backend.GetAccount(ctx, acctID)
		},
		Form:   accountForm,
		Schema: schema.AccountUpdate,
		Submit: func(ctx context.Context, id string, acct carddemo.Account) (carddemo.Account, error) {
			acctID, err := carddemo.ParseAccountID(id)
			if err != nil {
				return carddemo.Account{}, err
			}
			if acct.AcctID != acctID {
				return carddemo.Account{}, appErrors.New(appErrors.ErrInvalidInput, "Account ID cannot be changed")
			}
			return backend.UpdateAccount(ctx, acctID, acct)
		},
		SuccessMessage: "Account updated successfully",
	}

	c.cards = &editor.Editor[carddemo.Card, carddemo.Card]{
		Name:         "card update",
		SearchSchema: schema.CardSearch,
		IDField:      "cardNumber",
		Fetch:        backend.GetCard,
		Form:         cardForm,
		Schema:       schema.CardUpdate,
		Submit: func(ctx context.Context, id string, card carddemo.Card) (carddemo.Card, error) {
			if card.CardNum != id {
				return carddemo.Card{}, appErrors.New(appErrors.ErrInvalidInput, "Card number cannot be changed")
			}
			return backend.UpdateCard(ctx, id, card)
		},
		SuccessMessage: "Card updated successfully",
	}

	c.users = &editor.Editor[carddemo.User, carddemo.UserUpdateRequest]{
		Name:           "user update",
		SearchSchema:   schema.UserSearch,
		IDField:        "userId",
		Fetch:          backend.GetUser,
		Form:           userForm,
		Schema:         schema.UserUpdate,
		Submit:         backend.UpdateUser,
		SuccessMessage: "User updated successfully",
	}

	return c
}

// --- AUTH --- //

// Login returns the session to persist on success. The password is never
// echoed back into the form values.
func (c *Console) Login(ctx context.Context, input map[string]any) (Screen, *auth.Session) {
	values := map[string]any{"userId": input["userId"]}

	var req carddemo.LoginRequest
	if screen, ok := decodeForm(schema.Login, input, values, &req); !ok {
		return screen, nil
	}

	resp, err := c.backend.Login(ctx, req)
	if err != nil {
		if appErrors.CodeOf(err) == appErrors.ErrAuth && appErrors.MessageOf(err) == "" {
			err = appErrors.New(appErrors.ErrAuth, MSG_LOGIN_FAILED)
		}
		return failed(ctx, "login", values, err), nil
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = MSG_LOGIN_FAILED
		}
		return failed(ctx, "login", values, appErrors.New(appErrors.ErrAuth, msg)), nil
	}

	role, err := auth.ParseRole(resp.UserType)
	if err != nil {
		return failed(ctx, "login", values, fmt.Errorf("login returned unknown user type %q", resp.UserType)), nil
	}

	session := &auth.Session{UserID: resp.UserID, Role: role}
	logging.Logger.WithFields(logrus.Fields{
		"trace_id":  contextutil.TraceIDFromContext(ctx),
		"user_id":   session.UserID,
		"user_type": role.String(),
	}).Info("user signed in")

	return Screen{
		Values:   values,
		Message:  resp.Message,
		Kind:     editor.KindSuccess,
		Data:     resp,
		Redirect: gate.Landing(role),
	}, session
}

func (c *Console) Logout(ctx context.Context) Screen {
	if session := contextutil.SessionFromContext(ctx); session != nil {
		logging.Logger.WithFields(logrus.Fields{
			"trace_id": contextutil.TraceIDFromContext(ctx),
			"user_id":  session.UserID,
		}).Info("user signed out")
	}
	return Screen{Message: MSG_SIGNED_OUT, Kind: editor.KindSuccess, Redirect: gate.LOGIN_PATH}
}

// --- ACCOUNTS --- //

func (c *Console) SearchAccount(ctx context.Context, accountID string) Screen {
	return fromState(c.accounts.Load(ctx, accountID))
}

func (c *Console) UpdateAccount(ctx context.Context, accountID string, input map[string]any) Screen {
	return fromState(c.accounts.Save(ctx, accountID, input))
}

// --- CARDS --- //

func (c *Console) ListCards(ctx context.Context, input map[string]any) Screen {
	values, errs := schema.CardFilter.Validate(input)
	if errs != nil {
		return Screen{Values: input, FieldErrors: errs}
	}

	filter := carddemo.CardFilter{
		CardNumber: stringValue(values, "cardNumber"),
		Page:       intValue(values, "page", 0),
		Size:       intValue(values, "size", carddemo.DEFAULT_PAGE_SIZE),
	}
	if id, ok := values["accountId"].(int64); ok {
		filter.AccountID = carddemo.FormatAccountID(id)
	}

	page, err := c.backend.ListCards(ctx, filter)
	if err != nil {
		return failed(ctx, "card list", input, err)
	}
	return listScreen(input, page)
}

func (c *Console) SearchCard(ctx context.Context, cardNumber string) Screen {
	return fromState(c.cards.Load(ctx, cardNumber))
}

func (c *Console) UpdateCard(ctx context.Context, cardNumber string, input map[string]any) Screen {
	return fromState(c.cards.Save(ctx, cardNumber, input))
}

// --- TRANSACTIONS --- //

func (c *Console) ListTransactions(ctx context.Context, input map[string]any) Screen {
	values, errs := schema.TransactionSearch.Validate(input)
	if errs != nil {
		return Screen{Values: input, FieldErrors: errs}
	}

	page, err := c.backend.ListTransactions(ctx, carddemo.TransactionFilter{
		TransactionID: stringValue(values, "transactionId"),
		Page:          intValue(values, "page", 0),
		Size:          intValue(values, "size", carddemo.DEFAULT_PAGE_SIZE),
	})
	if err != nil {
		return failed(ctx, "transaction list", input, err)
	}
	return listScreen(input, page)
}

func (c *Console) ViewTransaction(ctx context.Context, transactionID string) Screen {
	input := map[string]any{"transactionId": transactionID}
	values, errs := schema.TransactionView.Validate(input)
	if errs != nil {
		return Screen{Values: input, FieldErrors: errs}
	}

	t, err := c.backend.GetTransaction(ctx, stringValue(values, "transactionId"))
	if err != nil {
		return failed(ctx, "transaction view", input, err)
	}
	return Screen{Values: input, Data: t}
}

func (c *Console) CreateTransaction(ctx context.Context, input map[string]any) Screen {
	var req carddemo.TransactionCreateRequest
	if screen, ok := decodeForm(schema.TransactionCreate, input, input, &req); !ok {
		return screen
	}

	var created carddemo.Transaction
	err := c.exclusive(ctx, "transaction create", func() error {
		var err error
		created, err = c.backend.CreateTransaction(ctx, req)
		return err
	})
	if err != nil {
		return failed(ctx, "transaction create", input, err)
	}
	return Screen{
		Message: fmt.Sprintf("Transaction created with ID %s", created.TranID),
		Kind:    editor.KindSuccess,
		Data:    created,
	}
}

// --- BILL PAYMENT --- //

func (c *Console) PayBill(ctx context.Context, input map[string]any) Screen {
	var req carddemo.BillPaymentRequest
	if screen, ok := decodeForm(schema.BillPayment, input, input, &req); !ok {
		return screen
	}

	var resp carddemo.BillPaymentResponse
	err := c.exclusive(ctx, "bill payment", func() error {
		var err error
		resp, err = c.backend.PayBill(ctx, req)
		return err
	})
	if err != nil {
		return failed(ctx, "bill payment", input, err)
	}

	msg := resp.Message
	if msg == "" {
		msg = fmt.Sprintf("Payment of %s received. New balance is %s", carddemo.FormatMoney(resp.PaymentAmount), carddemo.FormatMoney(resp.NewBalance))
	}
	return Screen{
		Values: map[string]any{
			"acctId":          carddemo.FormatAccountID(resp.AcctID),
			"previousBalance": carddemo.FormatMoney(resp.PreviousBalance),
			"paymentAmount":   carddemo.FormatMoney(resp.PaymentAmount),
			"newBalance":      carddemo.FormatMoney(resp.NewBalance),
		},
		Message: msg,
		Kind:    editor.KindSuccess,
		Data:    resp,
	}
}

// --- REPORTS --- //

// GenerateReport treats the backend call as synchronous: the returned id and
// status are shown as they are.
func (c *Console) GenerateReport(ctx context.Context, input map[string]any) Screen {
	var req carddemo.ReportRequest
	if screen, ok := decodeForm(schema.ReportRequest, input, input, &req); !ok {
		return screen
	}

	var resp carddemo.ReportResponse
	err := c.exclusive(ctx, "report", func() error {
		var err error
		resp, err = c.backend.GenerateReport(ctx, req)
		return err
	})
	if err != nil {
		return failed(ctx, "report", input, err)
	}

	msg := resp.Message
	if msg == "" {
		msg = fmt.Sprintf("Report %s is %s", resp.ReportID, resp.Status)
	}
	return Screen{Values: input, Message: msg, Kind: editor.KindSuccess, Data: resp}
}

// --- USERS --- //

func (c *Console) ListUsers(ctx context.Context, input map[string]any) Screen {
	values, errs := schema.UserFilter.Validate(input)
	if errs != nil {
		return Screen{Values: input, FieldErrors: errs}
	}

	page, err := c.backend.ListUsers(ctx, carddemo.UserFilter{
		UserID: stringValue(values, "userId"),
		Page:   intValue(values, "page", 0),
		Size:   intValue(values, "size", carddemo.DEFAULT_PAGE_SIZE),
	})
	if err != nil {
		return failed(ctx, "user list", input, err)
	}
	return listScreen(input, page)
}

func (c *Console) LoadUser(ctx context.Context, userID string) Screen {
	return fromState(c.users.Load(ctx, userID))
}

func (c *Console) UpdateUser(ctx context.Context, userID string, input map[string]any) Screen {
	screen := fromState(c.users.Save(ctx, userID, input))
	if screen.Values != nil {
		delete(screen.Values, "password")
	}
	return screen
}

func (c *Console) CreateUser(ctx context.Context, input map[string]any) Screen {
	values := withoutPassword(input)

	var req carddemo.UserCreateRequest
	if screen, ok := decodeForm(schema.UserCreate, input, values, &req); !ok {
		return screen
	}

	var created carddemo.User
	err := c.exclusive(ctx, "user create", func() error {
		var err error
		created, err = c.backend.CreateUser(ctx, req)
		return err
	})
	if err != nil {
		return failed(ctx, "user create", values, err)
	}
	return Screen{
		Values:  userForm(created),
		Message: fmt.Sprintf("User %s has been added", created.UserID),
		Kind:    editor.KindSuccess,
		Data:    created,
	}
}

func (c *Console) DeleteUser(ctx context.Context, userID string) Screen {
	input := map[string]any{"userId": userID}
	if _, errs := schema.UserSearch.Validate(input); errs != nil {
		return Screen{Values: input, FieldErrors: errs}
	}
	if session := contextutil.SessionFromContext(ctx); session != nil && session.UserID == userID {
		return failed(ctx, "user delete", input, appErrors.New(appErrors.ErrRejected, MSG_DELETE_SELF))
	}

	err := c.exclusive(ctx, "user delete", func() error {
		return c.backend.DeleteUser(ctx, userID)
	})
	if err != nil {
		return failed(ctx, "user delete", input, err)
	}
	return Screen{Message: fmt.Sprintf("User %s has been deleted", userID), Kind: editor.KindSuccess}
}

// exclusive runs fn unless the same user already has the same form in
// flight.
func (c *Console) exclusive(ctx context.Context, form string, fn func() error) error {
	key := form
	if session := contextutil.SessionFromContext(ctx); session != nil {
		key = session.UserID + "|" + form
	}
	if _, busy := c.inflight.LoadOrStore(key, struct{}{}); busy {
		return appErrors.New(appErrors.ErrBusy, editor.MSG_BUSY)
	}
	defer c.inflight.Delete(key)
	return fn()
}

// --- HELPERS --- //

func decodeForm(s schema.Schema, input map[string]any, values map[string]any, out any) (Screen, bool) {
	err := s.Decode(input, out)
	if err == nil {
		return Screen{}, true
	}
	var errs schema.Errors
	if errors.As(err, &errs) {
		return Screen{Values: values, FieldErrors: errs}, false
	}
	return Screen{Values: values, Message: editor.ScreenMessage(err), Kind: editor.KindError, Err: err}, false
}

func failed(ctx context.Context, operation string, values map[string]any, err error) Screen {
	logging.Logger.WithFields(logrus.Fields{
		"trace_id":  contextutil.TraceIDFromContext(ctx),
		"operation": operation,
		"code":      appErrors.CodeOf(err),
	}).Warnf("%s failed: %v", operation, err)
	return Screen{Values: values, Message: editor.ScreenMessage(err), Kind: editor.KindError, Err: err}
}

func fromState[T any](state editor.State[T]) Screen {
	screen := Screen{
		Values:      state.Values,
		FieldErrors: state.FieldErrors,
		Message:     state.Message,
		Kind:        state.Kind,
		Err:         state.Err,
	}
	if state.Entity != nil {
		screen.Data = *state.Entity
	}
	return screen
}

func listScreen[T any](input map[string]any, page carddemo.Page[T]) Screen {
	info := page.Info()
	content := page.Content
	if content == nil {
		content = []T{}
	}
	return Screen{Values: input, Data: content, Page: &info}
}

func withoutPassword(input map[string]any) map[string]any {
	values := make(map[string]any, len(input))
	for k, v := range input {
		if k != "password" {
			values[k] = v
		}
	}
	return values
}

func stringValue(values map[string]any, key string) string {
	s, _ := values[key].(string)
	return s
}

func intValue(values map[string]any, key string, fallback int) int {
	if n, ok := values[key].(int64); ok {
		return int(n)
	}
	return fallback
}

// --- FORMS --- //

func accountForm(acct carddemo.Account) map[string]any {
	form := map[string]any{
		"acctId":                   carddemo.FormatAccountID(acct.AcctID),
		"acctActiveStatus":         acct.AcctActiveStatus,
		"acctCurrBal":              carddemo.FormatMoney(acct.AcctCurrBal),
		"acctCreditLimit":          carddemo.FormatMoney(acct.AcctCreditLimit),
		"acctCashCreditLimit":      carddemo.FormatMoney(acct.AcctCashCreditLimit),
		"acctOpenDate":             acct.AcctOpenDate,
		"acctExpirationDate":       acct.AcctExpirationDate,
		"acctReissueDate":          acct.AcctReissueDate,
		"acctCurrCycCredit":        carddemo.FormatMoney(acct.AcctCurrCycCredit),
		"acctCurrCycDebit":         carddemo.FormatMoney(acct.AcctCurrCycDebit),
		"acctGroupId":              acct.AcctGroupID,
		"customerId":               "",
		"customerFirstName":        acct.CustomerFirstName,
		"customerMiddleName":       acct.CustomerMiddleName,
		"customerLastName":         acct.CustomerLastName,
		"customerAddrLine1":        acct.CustomerAddrLine1,
		"customerAddrLine2":        acct.CustomerAddrLine2,
		"customerAddrLine3":        acct.CustomerAddrLine3,
		"customerAddrStateCd":      acct.CustomerAddrStateCd,
		"customerAddrCountryCd":    acct.CustomerAddrCountryCd,
		"customerAddrZip":          acct.CustomerAddrZip,
		"customerPhoneNum1":        acct.CustomerPhoneNum1,
		"customerPhoneNum2":        acct.CustomerPhoneNum2,
		"customerSsn":              carddemo.FormatSSN(acct.CustomerSsn),
		"customerGovtIssuedId":     acct.CustomerGovtIssuedID,
		"customerDob":              acct.CustomerDob,
		"customerEftAccountId":     acct.CustomerEftAccountID,
		"customerPriCardHolderInd": acct.CustomerPriCardHolderInd,
		"customerFicoCreditScore":  "",
	}
	if acct.CustomerID != 0 {
		form["customerId"] = strconv.FormatInt(acct.CustomerID, 10)
	}
	if acct.CustomerFicoCreditScore != 0 {
		form["customerFicoCreditScore"] = strconv.Itoa(acct.CustomerFicoCreditScore)
	}
	return form
}

func cardForm(card carddemo.Card) map[string]any {
	return map[string]any{
		"cardNum":     card.CardNum,
		"acctId":      carddemo.FormatAccountID(card.AcctID),
		"cardName":    card.CardName,
		"cardStatus":  card.CardStatus,
		"expiryMonth": strconv.Itoa(card.ExpiryMonth),
		"expiryYear":  strconv.Itoa(card.ExpiryYear),
	}
}

func userForm(user carddemo.User) map[string]any {
	return map[string]any{
		"userId":    user.UserID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"userType":  user.UserType,
	}
}
