package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reDigits = regexp.MustCompile(`^[0-9]{1,20}$`)
	reExt    = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)
)

// Email trims and lower-cases an address; accounts are matched case-insensitively.
func Email(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a resource identifier (uuid or ObjectID hex).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable person name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Text validates a required free-text field of at most max bytes.
func Text(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > max {
		return "", false
	}
	return s, true
}

// ContactNo accepts an empty number or a run of digits. Spaces, dashes and
// a leading "+" are not digits and are rejected rather than stripped.
func ContactNo(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, reDigits.MatchString(s)
}

// Password enforces the length window bcrypt can hash without truncation.
func Password(s string) bool {
	l := len(s)
	return l >= 8 && l <= 72
}

// Ext returns a safe lower-case file extension, or "" when the name has none
// or it contains anything unusual.
func Ext(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return ""
	}
	ext := strings.ToLower(filename[i:])
	if !reExt.MatchString(ext) {
		return ""
	}
	return ext
}
