package validation

import (
	"regexp"
	"strings"
	"unicode"

	apperrors "flightdesk/internal/errors"
)

// emailPattern: no whitespace or @ on either side, at least one dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PasswordSpecials is the fixed set of characters accepted for the special-character rule.
const PasswordSpecials = "@$!%*?&"

const passwordMinLength = 8

// Rule is one password strength requirement.
type Rule string

const (
	RuleMinLength Rule = "at least 8 characters"
	RuleUpper     Rule = "an upper-case letter"
	RuleLower     Rule = "a lower-case letter"
	RuleDigit     Rule = "a digit"
	RuleSpecial   Rule = "a special character (" + PasswordSpecials + ")"
)

// PasswordRules lists every rule in reporting order.
var PasswordRules = []Rule{RuleMinLength, RuleUpper, RuleLower, RuleDigit, RuleSpecial}

const (
	MsgEmailInvalid        = "Please enter a valid email address"
	MsgCredentialsRequired = "Email and password are required"
	MsgAllFieldsRequired   = "All fields are required"
)

func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidatePassword evaluates the five rules independently and returns
// every unmet one, in PasswordRules order.
func ValidatePassword(p string) []Rule {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(PasswordSpecials, r):
			hasSpecial = true
		}
	}

	met := map[Rule]bool{
		RuleMinLength: len([]rune(p)) >= passwordMinLength,
		RuleUpper:     hasUpper,
		RuleLower:     hasLower,
		RuleDigit:     hasDigit,
		RuleSpecial:   hasSpecial,
	}

	var unmet []Rule
	for _, rule := range PasswordRules {
		if !met[rule] {
			unmet = append(unmet, rule)
		}
	}
	return unmet
}

// PasswordError is nil for a strong password, otherwise a ValidationError
// naming every unmet rule.
func PasswordError(p string) error {
	unmet := ValidatePassword(p)
	if len(unmet) == 0 {
		return nil
	}
	problems := make([]string, len(unmet))
	for i, r := range unmet {
		problems[i] = "Password must contain " + string(r)
	}
	return apperrors.NewValidationError(problems...)
}

// Required reports whether every value is non-blank.
func Required(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
