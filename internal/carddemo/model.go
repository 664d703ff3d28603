package carddemo

import (
	"github.com/shopspring/decimal"
)

// REQUESTS START:
type LoginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type TransactionCreateRequest struct {
	CardNum      string          `json:"cardNum"`
	TranTypeCd   string          `json:"tranTypeCd"`
	TranCatCd    string          `json:"tranCatCd"`
	TranSource   string          `json:"tranSource"`
	TranDesc     string          `json:"tranDesc"`
	TranAmt      decimal.Decimal `json:"tranAmt"`
	TranOrigTs   string          `json:"tranOrigTs"`
	TranProcTs   string          `json:"tranProcTs"`
	MerchantID   string          `json:"merchantId"`
	MerchantName string          `json:"merchantName"`
	MerchantCity string          `json:"merchantCity"`
	MerchantZip  string          `json:"merchantZip"`
}

type BillPaymentRequest struct {
	AcctID        int64           `json:"acctId"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
}

type ReportRequest struct {
	ReportType string `json:"reportType"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
}

type UserCreateRequest struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
	UserType  string `json:"userType"`
}

type UserUpdateRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password,omitempty"`
	UserType  string `json:"userType"`
}

type CardFilter struct {
	AccountID  string
	CardNumber string
	Page       int
	Size       int
}

type TransactionFilter struct {
	TransactionID string
	Page          int
	Size          int
}

type UserFilter struct {
	UserID string
	Page   int
	Size   int
}

// REQUESTS END:

// MODELS:

// Account carries the account record and its customer. Customer fields are
// optional on read and required on update.
type Account struct {
	AcctID              int64           `json:"acctId"`
	AcctActiveStatus    string          `json:"acctActiveStatus"`
	AcctCurrBal         decimal.Decimal `json:"acctCurrBal"`
	AcctCreditLimit     decimal.Decimal `json:"acctCreditLimit"`
	AcctCashCreditLimit decimal.Decimal `json:"acctCashCreditLimit"`
	AcctOpenDate        string          `json:"acctOpenDate"`
	AcctExpirationDate  string          `json:"acctExpirationDate"`
	AcctReissueDate     string          `json:"acctReissueDate"`
	AcctCurrCycCredit   decimal.Decimal `json:"acctCurrCycCredit"`
	AcctCurrCycDebit    decimal.Decimal `json:"acctCurrCycDebit"`
	AcctGroupID         string          `json:"acctGroupId,omitempty"`

	CustomerID               int64  `json:"customerId,omitempty"`
	CustomerFirstName        string `json:"customerFirstName,omitempty"`
	CustomerMiddleName       string `json:"customerMiddleName,omitempty"`
	CustomerLastName         string `json:"customerLastName,omitempty"`
	CustomerAddrLine1        string `json:"customerAddrLine1,omitempty"`
	CustomerAddrLine2        string `json:"customerAddrLine2,omitempty"`
	CustomerAddrLine3        string `json:"customerAddrLine3,omitempty"`
	CustomerAddrStateCd      string `json:"customerAddrStateCd,omitempty"`
	CustomerAddrCountryCd    string `json:"customerAddrCountryCd,omitempty"`
	CustomerAddrZip          string `json:"customerAddrZip,omitempty"`
	CustomerPhoneNum1        string `json:"customerPhoneNum1,omitempty"`
	CustomerPhoneNum2        string `json:"customerPhoneNum2,omitempty"`
	CustomerSsn              string `json:"customerSsn,omitempty"`
	CustomerGovtIssuedID     string `json:"customerGovtIssuedId,omitempty"`
	CustomerDob              string `json:"customerDob,omitempty"`
	CustomerEftAccountID     string `json:"customerEftAccountId,omitempty"`
	CustomerPriCardHolderInd string `json:"customerPriCardHolderInd,omitempty"`
	CustomerFicoCreditScore  int    `json:"customerFicoCreditScore,omitempty"`
}

type Card struct {
	CardNum     string `json:"cardNum"`
	AcctID      int64  `json:"acctId"`
	CardName    string `json:"cardName"`
	CardStatus  string `json:"cardStatus"`
	ExpiryMonth int    `json:"expiryMonth"`
	ExpiryYear  int    `json:"expiryYear"`
}

// Transaction is immutable once created.
type Transaction struct {
	TranID       string          `json:"tranId"`
	CardNum      string          `json:"cardNum"`
	TranTypeCd   string          `json:"tranTypeCd"`
	TranCatCd    string          `json:"tranCatCd"`
	TranSource   string          `json:"tranSource"`
	TranDesc     string          `json:"tranDesc"`
	TranAmt      decimal.Decimal `json:"tranAmt"`
	TranOrigTs   string          `json:"tranOrigTs"`
	TranProcTs   string          `json:"tranProcTs"`
	MerchantID   string          `json:"merchantId"`
	MerchantName string          `json:"merchantName"`
	MerchantCity string          `json:"merchantCity"`
	MerchantZip  string          `json:"merchantZip"`
}

// User never carries a password on read.
type User struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserType  string `json:"userType"`
}

// RESPONSES:
type LoginResponse struct {
	UserID   string `json:"userId"`
	UserType string `json:"userType"`
	Success  bool   `json:"success"`
	Message  string `json:"message"`
}

type BillPaymentResponse struct {
	AcctID          int64           `json:"acctId"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	PaymentAmount   decimal.Decimal `json:"paymentAmount"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	TranID          string          `json:"tranId,omitempty"`
	Message         string          `json:"message,omitempty"`
}

type ReportResponse struct {
	ReportID    string `json:"reportId"`
	ReportType  string `json:"reportType"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	RequestedAt string `json:"requestedAt,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
