package schema

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/patilpriyadarshini/migration-repo-sub001/internal/carddemo"
)

var (
	accountIDRegex  = regexp.MustCompile(`^\d{11}$`)
	cardNumberRegex = regexp.MustCompile(`^\d{16}$`)
	ssnRegex        = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
	phoneRegex      = regexp.MustCompile(`^\(\d{3}\)\d{3}-\d{4}$`)
	stateRegex      = regexp.MustCompile(`^[A-Z]{2}$`)
	countryRegex    = regexp.MustCompile(`^[A-Z]{3}$`)
	zipRegex        = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	nameRegex       = regexp.MustCompile(`^[A-Za-z][A-Za-z '.-]*$`)
	cardNameRegex   = regexp.MustCompile(`^[A-Za-z ]+$`)
	digitsRegex     = regexp.MustCompile(`^\d+$`)
	typeCodeRegex   = regexp.MustCompile(`^\d{2}$`)
	categoryRegex   = regexp.MustCompile(`^\d{4}$`)
	merchantIDRegex = regexp.MustCompile(`^\d{9}$`)
)

const (
	MSG_ACCOUNT_ID  = "Account ID must be exactly 11 digits"
	MSG_CARD_NUMBER = "Card number must be exactly 16 digits"
	MSG_USER_ID     = "User ID must be exactly 8 characters"
	MSG_PASSWORD    = "Password must be exactly 8 characters"
	MSG_USER_TYPE   = "User type must be A (admin) or U (user)"
	MSG_YES_NO      = "must be Y or N"
	MSG_SSN         = "SSN must be in the format NNN-NN-NNNN"
	MSG_FICO        = "FICO score must be between 300 and 850"
)

const (
	REPORT_MONTHLY = "monthly"
	REPORT_YEARLY  = "yearly"
	REPORT_CUSTOM  = "custom"
)

func upper(s string) string {
	return strings.ToUpper(s)
}

func lower(s string) string {
	return strings.ToLower(s)
}

func accountIDField(name string, required bool) Field {
	return Field{Name: name, Label: "Account ID", Required: required, Kind: Integer, Pattern: accountIDRegex, Message: MSG_ACCOUNT_ID}
}

func cardNumberField(name string, required bool) Field {
	return Field{Name: name, Label: "Card number", Required: required, Pattern: cardNumberRegex, Message: MSG_CARD_NUMBER}
}

func yesNoField(name string, label string) Field {
	return Field{Name: name, Label: label, Required: true, Kind: Enum, Values: []string{"Y", "N"}, Normalize: upper, Message: label + " " + MSG_YES_NO}
}

func moneyField(name string, label string) Field {
	return Field{Name: name, Label: label, Required: true, Kind: Money}
}

func pageFields() []Field {
	return []Field{
		{Name: "page", Label: "Page", Kind: Integer, Min: bound("0"), Max: bound(strconv.Itoa(carddemo.MAX_PAGE))},
		{Name: "size", Label: "Page size", Kind: Integer, Min: bound("1"), Max: bound("100")},
	}
}

var Login = Schema{
	Name: "login",
	Fields: []Field{
		{Name: "userId", Label: "User ID", Required: true, Length: carddemo.USER_ID_LENGTH, Message: MSG_USER_ID},
		{Name: "password", Label: "Password", Required: true, Length: carddemo.PASSWORD_LENGTH, Message: MSG_PASSWORD, Raw: true},
	},
}

var AccountSearch = Schema{
	Name:   "account search",
	Fields: []Field{accountIDField("accountId", true)},
}

var AccountUpdate = Schema{
	Name: "account update",
	Fields: []Field{
		accountIDField("acctId", true),
		yesNoField("acctActiveStatus", "Account status"),
		moneyField("acctCurrBal", "Current balance"),
		moneyField("acctCreditLimit", "Credit limit"),
		moneyField("acctCashCreditLimit", "Cash credit limit"),
		{Name: "acctOpenDate", Label: "Open date", Required: true, Kind: Date},
		{Name: "acctExpirationDate", Label: "Expiration date", Required: true, Kind: Date},
		{Name: "acctReissueDate", Label: "Reissue date", Required: true, Kind: Date},
		moneyField("acctCurrCycCredit", "Current cycle credit"),
		moneyField("acctCurrCycDebit", "Current cycle debit"),
		{Name: "acctGroupId", Label: "Group ID", MaxLen: 10},

		{Name: "customerId", Label: "Customer ID", Required: true, Kind: Integer, MaxLen: 9, Pattern: digitsRegex},
		{Name: "customerFirstName", Label: "First name", Required: true, MaxLen: 25, Pattern: nameRegex},
		{Name: "customerMiddleName", Label: "Middle name", MaxLen: 25, Pattern: nameRegex},
		{Name: "customerLastName", Label: "Last name", Required: true, MaxLen: 25, Pattern: nameRegex},
		{Name: "customerAddrLine1", Label: "Address line 1", Required: true, MaxLen: 50},
		{Name: "customerAddrLine2", Label: "Address line 2", MaxLen: 50},
		{Name: "customerAddrLine3", Label: "City", Required: true, MaxLen: 50},
		{Name: "customerAddrStateCd", Label: "State", Required: true, Pattern: stateRegex, Normalize: upper, Message: "State must be a 2-letter code"},
		{Name: "customerAddrCountryCd", Label: "Country", Required: true, Pattern: countryRegex, Normalize: upper, Message: "Country must be a 3-letter code"},
		{Name: "customerAddrZip", Label: "ZIP code", Required: true, Pattern: zipRegex, Message: "ZIP code must be NNNNN or NNNNN-NNNN"},
		{Name: "customerPhoneNum1", Label: "Phone 1", Required: true, Pattern: phoneRegex, Message: "Phone 1 must be in the format (NNN)NNN-NNNN"},
		{Name: "customerPhoneNum2", Label: "Phone 2", Pattern: phoneRegex, Message: "Phone 2 must be in the format (NNN)NNN-NNNN"},
		{Name: "customerSsn", Label: "SSN", Required: true, Pattern: ssnRegex, Normalize: carddemo.FormatSSN, Message: MSG_SSN},
		{Name: "customerGovtIssuedId", Label: "Government issued ID", MaxLen: 20},
		{Name: "customerDob", Label: "Date of birth", Required: true, Kind: Date},
		{Name: "customerEftAccountId", Label: "EFT account ID", MaxLen: 10, Pattern: digitsRegex},
		yesNoField("customerPriCardHolderInd", "Primary card holder"),
		{Name: "customerFicoCreditScore", Label: "FICO score", Required: true, Kind: Integer, Min: bound("300"), Max: bound("850"), Message: MSG_FICO},
	},
}

var CardSearch = Schema{
	Name:   "card search",
	Fields: []Field{cardNumberField("cardNumber", true)},
}

var CardFilter = Schema{
	Name: "card filter",
	Fields: append([]Field{
		accountIDField("accountId", false),
		cardNumberField("cardNumber", false),
	}, pageFields()...),
}

var CardUpdate = Schema{
	Name: "card update",
	Fields: []Field{
		cardNumberField("cardNum", true),
		accountIDField("acctId", true),
		{Name: "cardName", Label: "Name on card", Required: true, MaxLen: 50, Pattern: cardNameRegex, Message: "Name on card can only contain letters and spaces"},
		yesNoField("cardStatus", "Card status"),
		{Name: "expiryMonth", Label: "Expiry month", Required: true, Kind: Integer, Min: bound("1"), Max: bound("12")},
		{Name: "expiryYear", Label: "Expiry year", Required: true, Kind: Integer, Min: bound("1950"), Max: bound("2099")},
	},
}

var TransactionSearch = Schema{
	Name: "transaction search",
	Fields: append([]Field{
		{Name: "transactionId", Label: "Transaction ID", MaxLen: 16, Pattern: digitsRegex, Message: "Transaction ID must be up to 16 digits"},
	}, pageFields()...),
}

var TransactionView = Schema{
	Name: "transaction view",
	Fields: []Field{
		{Name: "transactionId", Label: "Transaction ID", Required: true, MaxLen: 16, Pattern: digitsRegex, Message: "Transaction ID must be up to 16 digits"},
	},
}

var TransactionCreate = Schema{
	Name: "transaction create",
	Fields: []Field{
		cardNumberField("cardNum", true),
		{Name: "tranTypeCd", Label: "Type code", Required: true, Pattern: typeCodeRegex, Message: "Type code must be 2 digits"},
		{Name: "tranCatCd", Label: "Category code", Required: true, Pattern: categoryRegex, Message: "Category code must be 4 digits"},
		{Name: "tranSource", Label: "Source", Required: true, MaxLen: 10},
		{Name: "tranDesc", Label: "Description", Required: true, MaxLen: 100},
		moneyField("tranAmt", "Amount"),
		{Name: "tranOrigTs", Label: "Origination timestamp", Required: true, Kind: Timestamp},
		{Name: "tranProcTs", Label: "Processing timestamp", Required: true, Kind: Timestamp},
		{Name: "merchantId", Label: "Merchant ID", Required: true, Pattern: merchantIDRegex, Message: "Merchant ID must be 9 digits"},
		{Name: "merchantName", Label: "Merchant name", Required: true, MaxLen: 50},
		{Name: "merchantCity", Label: "Merchant city", Required: true, MaxLen: 50},
		{Name: "merchantZip", Label: "Merchant ZIP", Required: true, MaxLen: 10},
	},
	Checks: []Check{processedAfterOrigination},
}

var BillPayment = Schema{
	Name: "bill payment",
	Fields: []Field{
		accountIDField("acctId", true),
		{Name: "paymentAmount", Label: "Payment amount", Required: true, Kind: Money, Min: bound("0.01")},
	},
}

var ReportRequest = Schema{
	Name: "report request",
	Fields: []Field{
		{Name: "reportType", Label: "Report type", Required: true, Kind: Enum, Values: []string{REPORT_MONTHLY, REPORT_YEARLY, REPORT_CUSTOM}, Normalize: lower},
		{Name: "startDate", Label: "Start date", Kind: Date},
		{Name: "endDate", Label: "End date", Kind: Date},
	},
	Checks: []Check{customReportRange},
}

var UserSearch = Schema{
	Name: "user search",
	Fields: []Field{
		{Name: "userId", Label: "User ID", Required: true, Length: carddemo.USER_ID_LENGTH, Message: MSG_USER_ID},
	},
}

var UserFilter = Schema{
	Name: "user filter",
	Fields: append([]Field{
		{Name: "userId", Label: "User ID", MaxLen: carddemo.USER_ID_LENGTH},
	}, pageFields()...),
}

var UserCreate = Schema{
	Name: "user create",
	Fields: []Field{
		{Name: "userId", Label: "User ID", Required: true, Length: carddemo.USER_ID_LENGTH, Message: MSG_USER_ID},
		{Name: "firstName", Label: "First name", Required: true, MaxLen: 20},
		{Name: "lastName", Label: "Last name", Required: true, MaxLen: 20},
		{Name: "password", Label: "Password", Required: true, Length: carddemo.PASSWORD_LENGTH, Message: MSG_PASSWORD, Raw: true},
		{Name: "userType", Label: "User type", Required: true, Kind: Enum, Values: []string{"A", "U"}, Normalize: upper, Message: MSG_USER_TYPE},
	},
}

// UserUpdate leaves the password optional: an empty password keeps the
// stored one.
var UserUpdate = Schema{
	Name: "user update",
	Fields: []Field{
		{Name: "firstName", Label: "First name", Required: true, MaxLen: 20},
		{Name: "lastName", Label: "Last name", Required: true, MaxLen: 20},
		{Name: "password", Label: "Password", Length: carddemo.PASSWORD_LENGTH, Message: MSG_PASSWORD, Raw: true},
		{Name: "userType", Label: "User type", Required: true, Kind: Enum, Values: []string{"A", "U"}, Normalize: upper, Message: MSG_USER_TYPE},
	},
}

func customReportRange(values map[string]any) Errors {
	if values["reportType"] != REPORT_CUSTOM {
		return nil
	}
	errs := Errors{}
	start, hasStart := values["startDate"].(string)
	if !hasStart {
		errs["startDate"] = "Start date is required for custom reports"
	}
	end, hasEnd := values["endDate"].(string)
	if !hasEnd {
		errs["endDate"] = "End date is required for custom reports"
	}
	// DATE_LAYOUT sorts lexically.
	if hasStart && hasEnd && end < start {
		errs["endDate"] = "End date cannot be before start date"
	}
	return errs
}

func processedAfterOrigination(values map[string]any) Errors {
	orig, hasOrig := values["tranOrigTs"].(string)
	proc, hasProc := values["tranProcTs"].(string)
	if !hasOrig || !hasProc || proc >= orig {
		return nil
	}
	return Errors{"tranProcTs": "Processing timestamp cannot be before origination timestamp"}
}
