// Package storage holds the in-memory CardDemo data set served by the stub
// backend.
package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/patilpriyadarshini/migration-repo-sub001/errors"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/carddemo"
)

const (
	BILL_PAYMENT_TYPE_CD  = "02"
	BILL_PAYMENT_CAT_CD   = "0002"
	BILL_PAYMENT_SOURCE   = "POS TERM"
	BILL_PAYMENT_DESC     = "BILL PAYMENT - ONLINE"
	BILL_PAYMENT_MERCHANT = "999999999"
	TRANSACTION_ID_DIGITS = 16
)

type InMemoryStorage struct {
	mu           sync.RWMutex
	accounts     map[int64]carddemo.Account
	cards        map[string]carddemo.Card
	transactions []carddemo.Transaction
	users        map[string]dbUser
	reports      map[string]carddemo.ReportResponse
	lastTranID   int64
	now          func() time.Time
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		accounts: make(map[int64]carddemo.Account),
		cards:    make(map[string]carddemo.Card),
		users:    make(map[string]dbUser),
		reports:  make(map[string]carddemo.ReportResponse),
		now:      time.Now,
	}
}

func (inMem *InMemoryStorage) GetStorageType() string {
	return "inmemory"
}

func notFound(format string, args ...any) error {
	return appErrors.ErrorResponse{Code: appErrors.ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...any) error {
	return appErrors.ErrorResponse{Code: appErrors.ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// --- USERS --- //

func (inMem *InMemoryStorage) SaveUser(user carddemo.User, passwordPlain string) error {
	hashed, err := hashPassword(passwordPlain)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	if _, exists := inMem.users[user.UserID]; exists {
		return appErrors.ErrorResponse{Code: appErrors.ErrConflict, Message: fmt.Sprintf("User ID already exists: %s", user.UserID)}
	}
	inMem.users[user.UserID] = dbUser{User: user, PasswordHashed: hashed}
	return nil
}

func (inMem *InMemoryStorage) ValidateUser(userID string, passwordPlain string) (carddemo.User, error) {
	inMem.mu.RLock()
	stored, ok := inMem.users[userID]
	inMem.mu.RUnlock()

	if !ok || !passwordMatches(stored.PasswordHashed, passwordPlain) {
		return carddemo.User{}, appErrors.ErrorResponse{Code: appErrors.ErrAuth, Message: "Invalid user ID or password"}
	}
	return stored.User, nil
}

func (inMem *InMemoryStorage) GetUser(userID string) (carddemo.User, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()
	stored, ok := inMem.users[userID]
	if !ok {
		return carddemo.User{}, notFound("User not found: %s", userID)
	}
	return stored.User, nil
}

func (inMem *InMemoryStorage) GetUsers(userIDPrefix string) []carddemo.User {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()
	result := []carddemo.User{}
	for id, stored := range inMem.users {
		if strings.HasPrefix(id, userIDPrefix) {
			result = append(result, stored.User)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result
}

func (inMem *InMemoryStorage) UpdateUser(userID string, fields carddemo.UserUpdateRequest) (carddemo.User, error) {
	var hashed string
	if fields.Password != "" {
		var err error
		if hashed, err = hashPassword(fields.Password); err != nil {
			return carddemo.User{}, fmt.Errorf("failed to update user: %w", err)
		}
	}

	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	stored, ok := inMem.users[userID]
	if !ok {
		return carddemo.User{}, notFound("User not found: %s", userID)
	}
	stored.User.FirstName = fields.FirstName
	stored.User.LastName = fields.LastName
	stored.User.UserType = fields.UserType
	if hashed != "" {
		stored.PasswordHashed = hashed
	}
	inMem.users[userID] = stored
	return stored.User, nil
}

func (inMem *InMemoryStorage) DeleteUser(userID string) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	if _, ok := inMem.users[userID]; !ok {
		return notFound("User not found: %s", userID)
	}
	delete(inMem.users, userID)
	return nil
}

// --- ACCOUNTS --- //

func (inMem *InMemoryStorage) SaveAccount(acct carddemo.Account) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	inMem.accounts[acct.AcctID] = acct
}

func (inMem *InMemoryStorage) GetAccount(acctID int64) (carddemo.Account, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()
	acct, ok := inMem.accounts[acctID]
	if !ok {
		return carddemo.Account{}, notFound("Account not found: %s", carddemo.FormatAccountID(acctID))
	}
	return acct, nil
}

func (inMem *InMemoryStorage) UpdateAccount(acctID int64, acct carddemo.Account) (carddemo.Account, error) {
	if acct.AcctID != acctID {
		return carddemo.Account{}, invalid("Account ID in body does not match path")
	}
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	if _, ok := inMem.accounts[acctID]; !ok {
		return carddemo.Account{}, notFound("Account not found: %s", carddemo.FormatAccountID(acctID))
	}
	inMem.accounts[acctID] = acct
	return acct, nil
}

// --- CARDS --- //

func (inMem *InMemoryStorage) SaveCard(card carddemo.Card) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	inMem.cards[card.CardNum] = card
}

func (inMem *InMemoryStorage) GetCard(cardNum string) (carddemo.Card, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()
	card, ok := inMem.cards[cardNum]
	if !ok {
		return carddemo.Card{}, notFound("Card not found: %s", cardNum)
	}
	return card, nil
}

// GetCards filters by account and/or card number; zero values match all.
func (inMem *InMemoryStorage) GetCards(acctID int64, cardNum string) []carddemo.Card {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()
	result := []carddemo.Card{}
	for _, card := range inMem.cards {
		if acctID != 0 && card.AcctID != acctID {
			continue
		}
		if cardNum != "" && card.CardNum != cardNum {
			continue
		}
		result = append(result, card)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CardNum < result[j].CardNum })
	return result
}

func (inMem *InMemoryStorage) UpdateCard(cardNum string, card carddemo.Card) (carddemo.Card, error) {
	if card.CardNum != cardNum {
		return carddemo.Card{}, invalid("Card number in body does not match path")
	}
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	stored, ok := inMem.cards[cardNum]
	if !ok {
		return carddemo.Card{}, notFound("Card not found: %s", cardNum)
	}
	if stored.AcctID != card.AcctID {
		return carddemo.Card{}, invalid("Card %s does not belong to account %s", cardNum, carddemo.FormatAccountID(card.AcctID))
	}
	inMem.cards[cardNum] = card
	return card, nil
}

// --- TRANSACTIONS --- //

func (inMem *InMemoryStorage) nextTranIDLocked() string {
	inMem.lastTranID++
	return fmt.Sprintf("%0*d", TRANSACTION_ID_DIGITS, inMem.lastTranID)
}

func (inMem *InMemoryStorage) SaveTransaction(req carddemo.TransactionCreateRequest) (carddemo.Transaction, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	if _, ok := inMem.cards[req.CardNum]; !ok {
		return carddemo.Transaction{}, invalid("Card not found: %s", req.CardNum)
	}
	t := carddemo.Transaction{
		TranID:       inMem.nextTranIDLocked(),
		CardNum:      req.CardNum,
		TranTypeCd:   req.TranTypeCd,
		TranCatCd:    req.TranCatCd,
		TranSource:   req.TranSource,
		TranDesc:     req.TranDesc,
		TranAmt:      req.TranAmt,
		TranOrigTs:   req.TranOrigTs,
		TranProcTs:   req.TranProcTs,
		MerchantID:   req.MerchantID,
		MerchantName: req.MerchantName,
		MerchantCity: req.MerchantCity,
		MerchantZip:  req.MerchantZip,
	}
	inMem.transactions = append(inMem.transactions, t)
	return t, nil
}

func (inMem *InMemoryStorage) GetTransactionById(tranID string) (carddemo.Transaction, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()
	for _, t := range inMem.transactions {
		if t.TranID == tranID {
			return t, nil
		}
	}
	return carddemo.Transaction{}, notFound("Transaction not found: %s", tranID)
}

// GetTransactions returns transactions whose id starts with tranIDPrefix,
// oldest first.
func (inMem *InMemoryStorage) GetTransactions(tranIDPrefix string) []carddemo.Transaction {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()
	result := []carddemo.Transaction{}
	for _, t := range inMem.transactions {
		if strings.HasPrefix(t.TranID, tranIDPrefix) {
			result = append(result, t)
		}
	}
	return result
}

// --- BILL PAYMENT --- //

// PayBill debits the account balance and records the payment against the
// account's first card.
func (inMem *InMemoryStorage) PayBill(req carddemo.BillPaymentRequest) (carddemo.BillPaymentResponse, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	acct, ok := inMem.accounts[req.AcctID]
	if !ok {
		return carddemo.BillPaymentResponse{}, notFound("Account not found: %s", carddemo.FormatAccountID(req.AcctID))
	}
	if !acct.AcctCurrBal.IsPositive() {
		return carddemo.BillPaymentResponse{}, invalid("You have nothing to pay")
	}
	if !req.PaymentAmount.IsPositive() {
		return carddemo.BillPaymentResponse{}, invalid("Payment amount must be positive")
	}
	if req.PaymentAmount.GreaterThan(acct.AcctCurrBal) {
		return carddemo.BillPaymentResponse{}, invalid("Payment amount exceeds current balance of %s", carddemo.FormatMoney(acct.AcctCurrBal))
	}

	var cardNum string
	for num, card := range inMem.cards {
		if card.AcctID == acct.AcctID && (cardNum == "" || num < cardNum) {
			cardNum = num
		}
	}
	if cardNum == "" {
		return carddemo.BillPaymentResponse{}, invalid("No card found for account %s", carddemo.FormatAccountID(acct.AcctID))
	}

	previous := acct.AcctCurrBal
	acct.AcctCurrBal = previous.Sub(req.PaymentAmount)
	inMem.accounts[acct.AcctID] = acct

	ts := inMem.now().Format("2006-01-02 15:04:05")
	t := carddemo.Transaction{
		TranID:       inMem.nextTranIDLocked(),
		CardNum:      cardNum,
		TranTypeCd:   BILL_PAYMENT_TYPE_CD,
		TranCatCd:    BILL_PAYMENT_CAT_CD,
		TranSource:   BILL_PAYMENT_SOURCE,
		TranDesc:     BILL_PAYMENT_DESC,
		TranAmt:      req.PaymentAmount,
		TranOrigTs:   ts,
		TranProcTs:   ts,
		MerchantID:   BILL_PAYMENT_MERCHANT,
		MerchantName: "BILL PAYMENT",
		MerchantCity: "N/A",
		MerchantZip:  "N/A",
	}
	inMem.transactions = append(inMem.transactions, t)

	return carddemo.BillPaymentResponse{
		AcctID:          acct.AcctID,
		PreviousBalance: previous,
		PaymentAmount:   req.PaymentAmount,
		NewBalance:      acct.AcctCurrBal,
		TranID:          t.TranID,
		Message:         fmt.Sprintf("Payment successful. Your transaction ID is %s.", t.TranID),
	}, nil
}

// --- REPORTS --- //

// SaveReport records a report request. Reports complete synchronously.
func (inMem *InMemoryStorage) SaveReport(req carddemo.ReportRequest) carddemo.ReportResponse {
	name := req.ReportType
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	report := carddemo.ReportResponse{
		ReportID:    uuid.NewString(),
		ReportType:  req.ReportType,
		Status:      "COMPLETED",
		Message:     fmt.Sprintf("%s report generated", name),
		RequestedAt: inMem.now().UTC().Format(time.RFC3339),
	}
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	inMem.reports[report.ReportID] = report
	return report
}
