package validation

import "regexp"

var specialChar = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

// HasSpecialChar reports whether s holds at least one punctuation character
// accepted by the admin password policy.
func HasSpecialChar(s string) bool {
	return specialChar.MatchString(s)
}
