package utils

import (
	"fmt"
	"regexp"
)

var nonDigits = regexp.MustCompile(`\D`)

// ValidatePhoneNumber reports whether the input is a ten-digit US phone
// number after stripping formatting characters.
func ValidatePhoneNumber(phoneNumber string) bool {
	cleaned := nonDigits.ReplaceAllString(phoneNumber, "")
	return len(cleaned) == 10
}

// FormatPhoneNumber formats a phone number as (XXX) XXX-XXXX for display.
// Inputs that are not ten digits are returned unchanged.
func FormatPhoneNumber(phoneNumber string) string {
	cleaned := nonDigits.ReplaceAllString(phoneNumber, "")
	if len(cleaned) != 10 {
		return phoneNumber
	}
	return fmt.Sprintf("(%s) %s-%s", cleaned[0:3], cleaned[3:6], cleaned[6:10])
}

// NormalizePhoneNumber strips formatting for database storage.
func NormalizePhoneNumber(phoneNumber string) string {
	return nonDigits.ReplaceAllString(phoneNumber, "")
}
