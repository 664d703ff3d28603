package carddemo

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	ACCOUNT_ID_LENGTH  = 11
	CARD_NUMBER_LENGTH = 16
	USER_ID_LENGTH     = 8
	PASSWORD_LENGTH    = 8
)

// FormatSSN renders a 9-digit SSN as NNN-NN-NNNN. Non-digits are ignored;
// input that does not hold exactly 9 digits is returned unchanged.
func FormatSSN(ssn string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r <= '9' {
			return r
		}
		return -1
	}, ssn)
	if len(digits) != 9 {
		return ssn
	}
	return digits[:3] + "-" + digits[3:5] + "-" + digits[5:]
}

func FormatAccountID(id int64) string {
	return fmt.Sprintf("%0*d", ACCOUNT_ID_LENGTH, id)
}

func ParseAccountID(id string) (int64, error) {
	id = strings.TrimSpace(id)
	if len(id) != ACCOUNT_ID_LENGTH {
		return 0, fmt.Errorf("account id must be exactly %d digits: %q", ACCOUNT_ID_LENGTH, id)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("account id must be exactly %d digits: %q", ACCOUNT_ID_LENGTH, id)
		}
	}
	return strconv.ParseInt(id, 10, 64)
}

func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
