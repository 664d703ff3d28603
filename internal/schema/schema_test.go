package schema

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patilpriyadarshini/migration-repo-sub001/internal/carddemo"
)

func validAccountForm() map[string]any {
	return map[string]any{
		"acctId":                   "12345678901",
		"acctActiveStatus":         "Y",
		"acctCurrBal":              "1500.00",
		"acctCreditLimit":          "5000.00",
		"acctCashCreditLimit":      "1000.00",
		"acctOpenDate":             "2020-01-15",
		"acctExpirationDate":       "2028-01-31",
		"acctReissueDate":          "2024-01-15",
		"acctCurrCycCredit":        "0.00",
		"acctCurrCycDebit":         "250.50",
		"acctGroupId":              "GOLD",
		"customerId":               "100000001",
		"customerFirstName":        "Alice",
		"customerLastName":         "Smith",
		"customerAddrLine1":        "1 Main St",
		"customerAddrLine3":        "Springfield",
		"customerAddrStateCd":      "il",
		"customerAddrCountryCd":    "USA",
		"customerAddrZip":          "62701",
		"customerPhoneNum1":        "(217)555-0100",
		"customerSsn":              "123456789",
		"customerDob":              "1985-04-12",
		"customerPriCardHolderInd": "y",
		"customerFicoCreditScore":  "720",
	}
}

func with(form map[string]any, key string, value any) map[string]any {
	copied := make(map[string]any, len(form))
	for k, v := range form {
		copied[k] = v
	}
	copied[key] = value
	return copied
}

func TestLoginSchema(t *testing.T) {
	tests := []struct {
		name       string
		input      map[string]any
		wantErrors map[string]string
	}{
		{
			name:  "Success - both exactly 8",
			input: map[string]any{"userId": "ADMIN001", "password": "admin123"},
		},
		{
			name:       "Fail - user id short",
			input:      map[string]any{"userId": "ADMIN", "password": "admin123"},
			wantErrors: map[string]string{"userId": MSG_USER_ID},
		},
		{
			name:       "Fail - password long",
			input:      map[string]any{"userId": "ADMIN001", "password": "admin1234"},
			wantErrors: map[string]string{"password": MSG_PASSWORD},
		},
		{
			name:  "Fail - both short reports both",
			input: map[string]any{"userId": "abc", "password": "xyz"},
			wantErrors: map[string]string{
				"userId":   MSG_USER_ID,
				"password": MSG_PASSWORD,
			},
		},
		{
			name:  "Fail - both empty",
			input: map[string]any{"userId": "  ", "password": nil},
			wantErrors: map[string]string{
				"userId":   "User ID is required",
				"password": "Password is required",
			},
		},
		{
			name:  "Success - password keeps surrounding spaces",
			input: map[string]any{"userId": "ADMIN001", "password": " abc1234"},
		},
		{
			name:       "Fail - password padded past 8",
			input:      map[string]any{"userId": "ADMIN001", "password": "abc12345 "},
			wantErrors: map[string]string{"password": MSG_PASSWORD},
		},
		{
			name:       "Fail - missing key",
			input:      map[string]any{"password": "admin123"},
			wantErrors: map[string]string{"userId": "User ID is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, errs := Login.Validate(tt.input)
			if tt.wantErrors == nil {
				require.Nil(t, errs)
				require.NotNil(t, values)
				return
			}
			require.Nil(t, values)
			require.Equal(t, Errors(tt.wantErrors), errs)
		})
	}
}

func TestAccountSearchSchema(t *testing.T) {
	for _, id := range []string{"1234567890", "123456789012", "1234567890a", "abcdefghijk", "1234-567890"} {
		t.Run("reject "+id, func(t *testing.T) {
			_, errs := AccountSearch.Validate(map[string]any{"accountId": id})
			require.Equal(t, Errors{"accountId": "Account ID must be exactly 11 digits"}, errs)
		})
	}

	for _, id := range []string{"12345678901", "00000000001", "00000000000"} {
		t.Run("accept "+id, func(t *testing.T) {
			values, errs := AccountSearch.Validate(map[string]any{"accountId": id})
			require.Nil(t, errs)
			require.Contains(t, values, "accountId")
		})
	}

	values, errs := AccountSearch.Validate(map[string]any{"accountId": json.Number("12345678901")})
	require.Nil(t, errs)
	require.Equal(t, int64(12345678901), values["accountId"])
}

func TestRequiredPrecedesPattern(t *testing.T) {
	_, errs := AccountSearch.Validate(map[string]any{"accountId": ""})
	require.Equal(t, "Account ID is required", errs["accountId"])
}

func TestAccountUpdateAcceptsAndCoerces(t *testing.T) {
	values, errs := AccountUpdate.Validate(validAccountForm())
	require.Nil(t, errs)

	require.Equal(t, int64(12345678901), values["acctId"])
	require.Equal(t, "IL", values["customerAddrStateCd"])
	require.Equal(t, "Y", values["customerPriCardHolderInd"])
	require.Equal(t, "123-45-6789", values["customerSsn"])
	require.Equal(t, int64(720), values["customerFicoCreditScore"])
	require.True(t, values["acctCurrBal"].(decimal.Decimal).Equal(decimal.RequireFromString("1500")))
	require.NotContains(t, values, "customerMiddleName")
}

func TestAccountUpdateCollectsAllErrors(t *testing.T) {
	form := validAccountForm()
	form["acctActiveStatus"] = "X"
	form["customerFicoCreditScore"] = "900"
	form["customerSsn"] = "12-345"
	form["acctCurrBal"] = "100000000.00"
	form["customerFirstName"] = ""
	form["acctOpenDate"] = "2020-13-01"

	_, errs := AccountUpdate.Validate(form)
	require.Equal(t, Errors{
		"acctActiveStatus":        "Account status must be Y or N",
		"customerFicoCreditScore": MSG_FICO,
		"customerSsn":             MSG_SSN,
		"acctCurrBal":             "Current balance must be between -99999999.99 and 99999999.99",
		"customerFirstName":       "First name is required",
		"acctOpenDate":            "Open date must be a valid date (YYYY-MM-DD)",
	}, errs)
}

func TestMoneyBounds(t *testing.T) {
	tests := []struct {
		amount string
		ok     bool
	}{
		{amount: "99999999.99", ok: true},
		{amount: "-99999999.99", ok: true},
		{amount: "0", ok: true},
		{amount: "12.5", ok: true},
		{amount: "100000000", ok: false},
		{amount: "-100000000.00", ok: false},
		{amount: "1.234", ok: false},
		{amount: "ten", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			_, errs := AccountUpdate.Validate(with(validAccountForm(), "acctCreditLimit", tt.amount))
			if tt.ok {
				require.Nil(t, errs)
			} else {
				require.Contains(t, errs, "acctCreditLimit")
				require.Len(t, errs, 1)
			}
		})
	}
}

func TestFicoBounds(t *testing.T) {
	for score, ok := range map[string]bool{"299": false, "300": true, "850": true, "851": false, "7x0": false} {
		_, errs := AccountUpdate.Validate(with(validAccountForm(), "customerFicoCreditScore", score))
		if ok {
			assert.Nil(t, errs, score)
		} else {
			assert.Equal(t, MSG_FICO, errs["customerFicoCreditScore"], score)
		}
	}
}

func TestDecodeAccount(t *testing.T) {
	var acct carddemo.Account
	require.NoError(t, AccountUpdate.Decode(validAccountForm(), &acct))

	require.Equal(t, int64(12345678901), acct.AcctID)
	require.Equal(t, int64(100000001), acct.CustomerID)
	require.Equal(t, "Alice", acct.CustomerFirstName)
	require.Equal(t, "123-45-6789", acct.CustomerSsn)
	require.Equal(t, 720, acct.CustomerFicoCreditScore)
	require.Equal(t, "250.50", carddemo.FormatMoney(acct.AcctCurrCycDebit))
}

func TestDecodeReturnsErrors(t *testing.T) {
	var req carddemo.LoginRequest
	err := Login.Decode(map[string]any{"userId": "x"}, &req)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	require.Equal(t, []string{"password", "userId"}, errs.Fields())
	require.Empty(t, req.UserID)
}

func TestCardUpdateSchema(t *testing.T) {
	valid := map[string]any{
		"cardNum":     "4111111111111111",
		"acctId":      "12345678901",
		"cardName":    "Alice Smith",
		"cardStatus":  "n",
		"expiryMonth": 12,
		"expiryYear":  float64(2027),
	}

	var card carddemo.Card
	require.NoError(t, CardUpdate.Decode(valid, &card))
	require.Equal(t, "N", card.CardStatus)
	require.Equal(t, 12, card.ExpiryMonth)
	require.Equal(t, 2027, card.ExpiryYear)

	_, errs := CardUpdate.Validate(with(with(valid, "cardNum", "41111111"), "expiryMonth", "13"))
	require.Equal(t, MSG_CARD_NUMBER, errs["cardNum"])
	require.Equal(t, "Expiry month must be between 1 and 12", errs["expiryMonth"])

	_, errs = CardUpdate.Validate(with(valid, "cardName", "Alice 2"))
	require.Equal(t, "Name on card can only contain letters and spaces", errs["cardName"])
}

func TestUserSchemas(t *testing.T) {
	valid := map[string]any{"userId": "USER0002", "firstName": "Bob", "lastName": "Jones", "password": "passw0rd", "userType": "u"}

	var req carddemo.UserCreateRequest
	require.NoError(t, UserCreate.Decode(valid, &req))
	require.Equal(t, "U", req.UserType)

	_, errs := UserCreate.Validate(with(valid, "userType", "X"))
	require.Equal(t, Errors{"userType": MSG_USER_TYPE}, errs)

	update := map[string]any{"firstName": "Bob", "lastName": "Jones", "userType": "A"}
	var upd carddemo.UserUpdateRequest
	require.NoError(t, UserUpdate.Decode(update, &upd))
	require.Empty(t, upd.Password)

	_, errs = UserUpdate.Validate(with(update, "password", "short"))
	require.Equal(t, Errors{"password": MSG_PASSWORD}, errs)

	var spaced carddemo.UserCreateRequest
	require.NoError(t, UserCreate.Decode(with(valid, "password", "pass 12 "), &spaced))
	require.Equal(t, "pass 12 ", spaced.Password)

	_, errs = UserFilter.Validate(map[string]any{"userId": "USER00001"})
	require.Equal(t, Errors{"userId": "User ID must be at most 8 characters"}, errs)
}

func TestPageFieldsBounded(t *testing.T) {
	_, errs := CardFilter.Validate(map[string]any{"page": "2305843009213693952", "size": "4"})
	require.Contains(t, errs, "page")

	values, errs := CardFilter.Validate(map[string]any{"page": strconv.Itoa(carddemo.MAX_PAGE), "size": "4"})
	require.Nil(t, errs)
	require.Equal(t, int64(carddemo.MAX_PAGE), values["page"])
}

func TestTransactionCreateSchema(t *testing.T) {
	valid := map[string]any{
		"cardNum":      "4111111111111111",
		"tranTypeCd":   "01",
		"tranCatCd":    "0001",
		"tranSource":   "POS TERM",
		"tranDesc":     "Groceries",
		"tranAmt":      "42.10",
		"tranOrigTs":   "2024-03-01 10:00:00",
		"tranProcTs":   "2024-03-01T10:05:00",
		"merchantId":   "123456789",
		"merchantName": "Corner Shop",
		"merchantCity": "Springfield",
		"merchantZip":  "62701",
	}

	var req carddemo.TransactionCreateRequest
	require.NoError(t, TransactionCreate.Decode(valid, &req))
	require.Equal(t, "2024-03-01 10:05:00", req.TranProcTs)

	_, errs := TransactionCreate.Validate(with(valid, "tranProcTs", "2024-02-28 09:00:00"))
	require.Equal(t, Errors{"tranProcTs": "Processing timestamp cannot be before origination timestamp"}, errs)

	require.NoError(t, TransactionCreate.Decode(with(valid, "tranProcTs", "2024-03-01T12:05:00+02:00"), &req))
	require.Equal(t, "2024-03-01 10:05:00", req.TranProcTs)

	_, errs = TransactionCreate.Validate(with(valid, "tranAmt", "abc"))
	require.Equal(t, "Amount must be a number", errs["tranAmt"])
}

func TestReportRequestSchema(t *testing.T) {
	tests := []struct {
		name       string
		input      map[string]any
		wantErrors Errors
	}{
		{name: "monthly", input: map[string]any{"reportType": "Monthly"}},
		{name: "custom range", input: map[string]any{"reportType": "custom", "startDate": "2024-01-01", "endDate": "2024-01-31"}},
		{name: "custom same day", input: map[string]any{"reportType": "custom", "startDate": "2024-01-01", "endDate": "2024-01-01"}},
		{name: "unknown type", input: map[string]any{"reportType": "weekly"}, wantErrors: Errors{"reportType": "Report type must be one of monthly, yearly, custom"}},
		{name: "custom without start", input: map[string]any{"reportType": "custom", "endDate": "2024-01-31"}, wantErrors: Errors{"startDate": "Start date is required for custom reports"}},
		{name: "custom without dates", input: map[string]any{"reportType": "custom"}, wantErrors: Errors{
			"startDate": "Start date is required for custom reports",
			"endDate":   "End date is required for custom reports",
		}},
		{name: "custom without end", input: map[string]any{"reportType": "custom", "startDate": "2024-01-01"}, wantErrors: Errors{"endDate": "End date is required for custom reports"}},
		{name: "custom reversed", input: map[string]any{"reportType": "custom", "startDate": "2024-02-01", "endDate": "2024-01-31"}, wantErrors: Errors{"endDate": "End date cannot be before start date"}},
		{name: "custom bad start", input: map[string]any{"reportType": "custom", "startDate": "01/02/2024", "endDate": "2024-01-31"}, wantErrors: Errors{"startDate": "Start date must be a valid date (YYYY-MM-DD)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := ReportRequest.Validate(tt.input)
			require.Equal(t, tt.wantErrors, errs)
		})
	}
}

func TestBillPaymentSchema(t *testing.T) {
	var req carddemo.BillPaymentRequest
	require.NoError(t, BillPayment.Decode(map[string]any{"acctId": "12345678901", "paymentAmount": "100.00"}, &req))
	require.Equal(t, int64(12345678901), req.AcctID)

	_, errs := BillPayment.Validate(map[string]any{"acctId": "12345678901", "paymentAmount": "0"})
	require.Equal(t, "Payment amount must be between 0.01 and 99999999.99", errs["paymentAmount"])
}

func TestValidateRejectsCompositeValues(t *testing.T) {
	_, errs := Login.Validate(map[string]any{"userId": []string{"ADMIN001"}, "password": "admin123"})
	require.Equal(t, Errors{"userId": MSG_USER_ID}, errs)
}

func TestValidateIsDeterministic(t *testing.T) {
	form := with(with(validAccountForm(), "acctId", "1"), "customerSsn", "x")
	_, first := AccountUpdate.Validate(form)
	for i := 0; i < 20; i++ {
		_, again := AccountUpdate.Validate(form)
		require.Equal(t, first, again)
	}
	require.True(t, strings.HasPrefix(first.Error(), "validation failed: acctId:"))
}
