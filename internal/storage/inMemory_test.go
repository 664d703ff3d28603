package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appErrors "github.com/patilpriyadarshini/migration-repo-sub001/errors"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/carddemo"
)

func seeded(t *testing.T) *InMemoryStorage {
	t.Helper()
	store := NewInMemoryStorage()
	store.now = func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) }
	require.NoError(t, Seed(store))
	return store
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := hashPassword("admin123")
	require.NoError(t, err)
	require.NotEqual(t, "admin123", hashed)

	require.True(t, passwordMatches(hashed, "admin123"))
	require.False(t, passwordMatches(hashed, "admin124"))
	require.False(t, passwordMatches("", "admin123"))

	_, err = hashPassword("")
	require.Error(t, err)
}

func TestValidateUser(t *testing.T) {
	store := seeded(t)

	admin, err := store.ValidateUser("ADMIN001", "admin123")
	require.NoError(t, err)
	require.Equal(t, "A", admin.UserType)

	_, err = store.ValidateUser("ADMIN001", "wrongpwd")
	require.True(t, errors.Is(err, appErrors.Auth))

	_, err = store.ValidateUser("NOBODY01", "admin123")
	require.True(t, errors.Is(err, appErrors.Auth))
}

func TestUserLifecycle(t *testing.T) {
	store := seeded(t)

	err := store.SaveUser(carddemo.User{UserID: "USER0001"}, "whatever")
	require.True(t, errors.Is(err, appErrors.Conflict))

	require.NoError(t, store.SaveUser(carddemo.User{UserID: "USER0002", FirstName: "Bob", LastName: "Jones", UserType: "U"}, "secret12"))
	require.Len(t, store.GetUsers("USER"), 2)

	updated, err := store.UpdateUser("USER0002", carddemo.UserUpdateRequest{FirstName: "Robert", LastName: "Jones", UserType: "U", Password: "newpass1"})
	require.NoError(t, err)
	require.Equal(t, "Robert", updated.FirstName)

	_, err = store.ValidateUser("USER0002", "secret12")
	require.Error(t, err)
	_, err = store.ValidateUser("USER0002", "newpass1")
	require.NoError(t, err)

	// a blank password leaves the stored one alone
	_, err = store.UpdateUser("USER0002", carddemo.UserUpdateRequest{FirstName: "Rob", LastName: "Jones", UserType: "U"})
	require.NoError(t, err)
	_, err = store.ValidateUser("USER0002", "newpass1")
	require.NoError(t, err)

	require.NoError(t, store.DeleteUser("USER0002"))
	_, err = store.GetUser("USER0002")
	require.True(t, errors.Is(err, appErrors.NotFound))
	require.True(t, errors.Is(store.DeleteUser("USER0002"), appErrors.NotFound))
}

func TestAccounts(t *testing.T) {
	store := seeded(t)

	acct, err := store.GetAccount(DEMO_ACCOUNT_ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", acct.CustomerFirstName)
	require.Equal(t, "1500.00", carddemo.FormatMoney(acct.AcctCurrBal))

	_, err = store.GetAccount(99999999999)
	require.Equal(t, "Account not found: 99999999999", appErrors.MessageOf(err))

	acct.AcctCreditLimit = decimal.RequireFromString("7500.00")
	updated, err := store.UpdateAccount(DEMO_ACCOUNT_ID, acct)
	require.NoError(t, err)
	require.Equal(t, acct, updated)

	_, err = store.UpdateAccount(98765432109, acct)
	require.True(t, errors.Is(err, appErrors.InvalidInput))
}

func TestCards(t *testing.T) {
	store := seeded(t)

	require.Len(t, store.GetCards(DEMO_ACCOUNT_ID, ""), 2)
	require.Len(t, store.GetCards(0, "5555555555554444"), 1)
	require.Len(t, store.GetCards(0, ""), 3)

	card, err := store.GetCard(DEMO_CARD_NUM)
	require.NoError(t, err)

	card.CardStatus = "N"
	_, err = store.UpdateCard(DEMO_CARD_NUM, card)
	require.NoError(t, err)

	card.AcctID = 98765432109
	_, err = store.UpdateCard(DEMO_CARD_NUM, card)
	require.True(t, errors.Is(err, appErrors.InvalidInput))
}

func TestTransactions(t *testing.T) {
	store := seeded(t)

	all := store.GetTransactions("")
	require.Len(t, all, 12)
	require.Equal(t, "0000000000000001", all[0].TranID)

	t1, err := store.GetTransactionById("0000000000000012")
	require.NoError(t, err)
	require.Equal(t, DEMO_CARD_NUM, t1.CardNum)

	require.Len(t, store.GetTransactions("000000000000001"), 3)

	_, err = store.SaveTransaction(carddemo.TransactionCreateRequest{CardNum: "4999999999999999"})
	require.True(t, errors.Is(err, appErrors.InvalidInput))
}

func TestPayBill(t *testing.T) {
	store := seeded(t)

	resp, err := store.PayBill(carddemo.BillPaymentRequest{AcctID: DEMO_ACCOUNT_ID, PaymentAmount: decimal.RequireFromString("500.00")})
	require.NoError(t, err)
	require.Equal(t, "1500.00", carddemo.FormatMoney(resp.PreviousBalance))
	require.Equal(t, "1000.00", carddemo.FormatMoney(resp.NewBalance))
	require.Equal(t, "0000000000000013", resp.TranID)

	payment, err := store.GetTransactionById(resp.TranID)
	require.NoError(t, err)
	require.Equal(t, BILL_PAYMENT_TYPE_CD, payment.TranTypeCd)
	require.Equal(t, "2024-06-01 12:00:00", payment.TranOrigTs)

	_, err = store.PayBill(carddemo.BillPaymentRequest{AcctID: DEMO_ACCOUNT_ID, PaymentAmount: decimal.RequireFromString("1000.01")})
	require.True(t, errors.Is(err, appErrors.InvalidInput))

	_, err = store.PayBill(carddemo.BillPaymentRequest{AcctID: 98765432109, PaymentAmount: decimal.RequireFromString("1.00")})
	require.Equal(t, "You have nothing to pay", appErrors.MessageOf(err))

	_, err = store.PayBill(carddemo.BillPaymentRequest{AcctID: 11111111111, PaymentAmount: decimal.RequireFromString("1.00")})
	require.True(t, errors.Is(err, appErrors.NotFound))
}

func TestSaveReport(t *testing.T) {
	store := seeded(t)

	report := store.SaveReport(carddemo.ReportRequest{ReportType: "monthly"})
	require.Len(t, report.ReportID, 36)
	require.Equal(t, "COMPLETED", report.Status)
	require.Equal(t, "Monthly report generated", report.Message)
	require.Equal(t, "2024-06-01T12:00:00Z", report.RequestedAt)
}
