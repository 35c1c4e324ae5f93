package customer

import "regexp"

var phonePattern = regexp.MustCompile(`^\+40\d{9}$`)

// ValidatePhone reports whether phone is +40 followed by exactly nine digits.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
