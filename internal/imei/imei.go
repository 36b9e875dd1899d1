// Package imei validates device identifiers: a 15-digit string whose
// last digit is a Luhn (mod-10) check digit.
package imei

import "errors"

var (
	// ErrFormat means the input is not exactly 15 ASCII digits.
	ErrFormat = errors.New("imei must be exactly 15 digits")
	// ErrChecksum means the Luhn check digit does not match.
	ErrChecksum = errors.New("imei checksum is invalid")
)

// Validate checks format first, then the Luhn checksum. It is a pure
// function with no external state.
func Validate(s string) error {
	if len(s) != 15 {
		return ErrFormat
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return ErrFormat
		}
	}

	check := int(s[14] - '0')

	// Walk the first 14 digits right to left, doubling every other
	// digit starting with the one closest to the check digit.
	sum := 0
	for i := 0; i < 14; i++ {
		d := int(s[13-i] - '0')
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}

	if (sum+check)%10 != 0 {
		return ErrChecksum
	}
	return nil
}
