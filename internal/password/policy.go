package password

import (
	"strings"
	"unicode/utf8"
)

// SpecialChars is the set of characters that satisfies the
// special-character rule.
const SpecialChars = "@$!%*?&"

// PolicyError describes the first policy rule a password violates.
// The message is user-facing.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string { return e.Reason }

// Validate checks password against the registration policy. Rules are
// checked in a fixed order and the first violation wins, so the user
// gets a single actionable message. Returns nil when all rules pass.
func Validate(password string) error {
	switch {
	case utf8.RuneCountInString(password) < 8:
		return &PolicyError{Reason: "password must be at least 8 characters long"}
	case utf8.RuneCountInString(password) > MaxLength:
		return &PolicyError{Reason: "password must be at most 128 characters long"}
	case !containsRange(password, 'A', 'Z'):
		return &PolicyError{Reason: "password must contain at least one uppercase letter"}
	case !containsRange(password, 'a', 'z'):
		return &PolicyError{Reason: "password must contain at least one lowercase letter"}
	case !containsRange(password, '0', '9'):
		return &PolicyError{Reason: "password must contain at least one digit"}
	case !strings.ContainsAny(password, SpecialChars):
		return &PolicyError{Reason: "password must contain at least one special character (@$!%*?&)"}
	}
	return nil
}

func containsRange(s string, lo, hi rune) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r >= lo && r <= hi })
}
