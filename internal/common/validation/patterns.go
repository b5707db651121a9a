package validation

import "regexp"

var (
	// at least: non-space run, "@", non-space run, ".", non-space run
	emailShapeRegex = regexp.MustCompile(`\S+@\S+\.\S+`)
	digitsRegex     = regexp.MustCompile(`^\d+$`)
	urlRegex        = regexp.MustCompile(`^(ftp|http|https)://[^ "]+$`)
)

// IsEmailShape reports whether s loosely looks like an email address. The match is
// unanchored: "x a@b.c y" passes.
func IsEmailShape(s string) bool {
	return emailShapeRegex.MatchString(s)
}

// IsDigits reports whether s is one or more ASCII decimal digits.
func IsDigits(s string) bool {
	return digitsRegex.MatchString(s)
}

// IsURL reports whether s is an ftp, http or https URL without spaces or quotes.
func IsURL(s string) bool {
	return urlRegex.MatchString(s)
}
