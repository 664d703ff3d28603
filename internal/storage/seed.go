package storage

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/patilpriyadarshini/migration-repo-sub001/internal/carddemo"
)

const (
	DEMO_ACCOUNT_ID = 12345678901
	DEMO_CARD_NUM   = "4111111111111111"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Seed loads the demo data set: one admin, one regular user, two accounts
// with cards and a page-spanning transaction history.
func Seed(inMem *InMemoryStorage) error {
	users := []struct {
		user     carddemo.User
		password string
	}{
		{carddemo.User{UserID: "ADMIN001", FirstName: "Margaret", LastName: "Admin", UserType: "A"}, "admin123"},
		{carddemo.User{UserID: "USER0001", FirstName: "John", LastName: "Clerk", UserType: "U"}, "user0001"},
	}
	for _, u := range users {
		if err := inMem.SaveUser(u.user, u.password); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.user.UserID, err)
		}
	}

	inMem.SaveAccount(carddemo.Account{
		AcctID:                   DEMO_ACCOUNT_ID,
		AcctActiveStatus:         "Y",
		AcctCurrBal:              money("1500.00"),
		AcctCreditLimit:          money("5000.00"),
		AcctCashCreditLimit:      money("1000.00"),
		AcctOpenDate:             "2020-01-15",
		AcctExpirationDate:       "2028-01-31",
		AcctReissueDate:          "2024-01-15",
		AcctCurrCycCredit:        money("250.00"),
		AcctCurrCycDebit:         money("100.50"),
		AcctGroupID:              "DEFAULT",
		CustomerID:               100000001,
		CustomerFirstName:        "Alice",
		CustomerMiddleName:       "Marie",
		CustomerLastName:         "Smith",
		CustomerAddrLine1:        "123 Main St",
		CustomerAddrLine2:        "Apt 4B",
		CustomerAddrLine3:        "Springfield",
		CustomerAddrStateCd:      "IL",
		CustomerAddrCountryCd:    "USA",
		CustomerAddrZip:          "62701",
		CustomerPhoneNum1:        "(217)555-0100",
		CustomerSsn:              "123456789",
		CustomerGovtIssuedID:     "IL-D1234567",
		CustomerDob:              "1985-06-15",
		CustomerEftAccountID:     "0012345678",
		CustomerPriCardHolderInd: "Y",
		CustomerFicoCreditScore:  720,
	})
	inMem.SaveAccount(carddemo.Account{
		AcctID:                   98765432109,
		AcctActiveStatus:         "Y",
		AcctCurrBal:              money("0.00"),
		AcctCreditLimit:          money("2500.00"),
		AcctCashCreditLimit:      money("500.00"),
		AcctOpenDate:             "2022-03-01",
		AcctExpirationDate:       "2027-03-31",
		AcctReissueDate:          "2025-03-01",
		AcctCurrCycCredit:        money("0.00"),
		AcctCurrCycDebit:         money("0.00"),
		CustomerID:               100000002,
		CustomerFirstName:        "Bob",
		CustomerLastName:         "Brown",
		CustomerAddrLine1:        "9 Elm Rd",
		CustomerAddrLine3:        "Austin",
		CustomerAddrStateCd:      "TX",
		CustomerAddrCountryCd:    "USA",
		CustomerAddrZip:          "73301-0001",
		CustomerPhoneNum1:        "(512)555-0199",
		CustomerSsn:              "987654321",
		CustomerDob:              "1990-11-02",
		CustomerPriCardHolderInd: "Y",
		CustomerFicoCreditScore:  680,
	})

	inMem.SaveCard(carddemo.Card{CardNum: DEMO_CARD_NUM, AcctID: DEMO_ACCOUNT_ID, CardName: "ALICE M SMITH", CardStatus: "Y", ExpiryMonth: 12, ExpiryYear: 2027})
	inMem.SaveCard(carddemo.Card{CardNum: "4000056655665556", AcctID: DEMO_ACCOUNT_ID, CardName: "ALICE M SMITH", CardStatus: "N", ExpiryMonth: 6, ExpiryYear: 2025})
	inMem.SaveCard(carddemo.Card{CardNum: "5555555555554444", AcctID: 98765432109, CardName: "BOB BROWN", CardStatus: "Y", ExpiryMonth: 3, ExpiryYear: 2027})

	merchants := []string{"CORNER CAFE", "FUEL STOP", "BOOK NOOK", "GROCERY MART"}
	start := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		ts := start.Add(time.Duration(i) * 26 * time.Hour)
		_, err := inMem.SaveTransaction(carddemo.TransactionCreateRequest{
			CardNum:      DEMO_CARD_NUM,
			TranTypeCd:   "01",
			TranCatCd:    "0001",
			TranSource:   "POS TERM",
			TranDesc:     fmt.Sprintf("Purchase at %s", merchants[i%len(merchants)]),
			TranAmt:      decimal.New(int64(1250+i*375), -2),
			TranOrigTs:   ts.Format("2006-01-02 15:04:05"),
			TranProcTs:   ts.Add(5 * time.Minute).Format("2006-01-02 15:04:05"),
			MerchantID:   fmt.Sprintf("%09d", 100000000+i%len(merchants)),
			MerchantName: merchants[i%len(merchants)],
			MerchantCity: "Springfield",
			MerchantZip:  "62701",
		})
		if err != nil {
			return fmt.Errorf("failed to seed transaction: %w", err)
		}
	}
	return nil
}
