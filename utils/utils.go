package utils

import (
	// Go Internal Packages
	"fmt"
	"strconv"
	"strings"
)

// CurrencyPrefix is the canonical currency marker every amount string carries.
const CurrencyPrefix = "RWF"

// FormatAmount renders a numeric amount in the canonical "RWF <integer>" form.
func FormatAmount(value int64) string {
	return CurrencyPrefix + " " + strconv.FormatInt(value, 10)
}

// ParseAmount extracts the numeric value from an amount string by stripping
// every non-digit character ("RWF 1,000" -> 1000). An amount with no digits
// at all is rejected.
func ParseAmount(s string) (int64, error) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, fmt.Errorf("amount %q contains no digits", s)
	}
	value, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q out of range", s)
	}
	return value, nil
}

// IsMomoPayCode reports whether a recipient is a 4-6 digit merchant code
// rather than a full phone number.
func IsMomoPayCode(recipient string) bool {
	if len(recipient) < 4 || len(recipient) > 6 {
		return false
	}
	for _, r := range recipient {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
