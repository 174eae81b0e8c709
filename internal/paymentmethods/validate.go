package paymentmethods

import (
	"strconv"
	"strings"
	"time"
)

// luhnValid runs the Luhn checksum over a card number with 13 to 19 digits.
func luhnValid(number string) bool {
	digits := digitsOnly(number)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// expiryValid accepts MM/YY where the month-end lies in the future.
func expiryValid(expiry string, now time.Time) bool {
	parts := strings.Split(strings.TrimSpace(expiry), "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	year += 2000

	endOfMonth := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return now.Before(endOfMonth)
}
