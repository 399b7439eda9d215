package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	xerrors "crm-service/internal/pkg/errors"
)

// PasswordSymbols lists the special characters a password must draw from.
const PasswordSymbols = "@$!%*?&"

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Email reports whether s looks like an email address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// PasswordProblems lists every policy rule the password violates, in a
// stable order. An empty result means the password is acceptable.
func PasswordProblems(password string) []string {
	var problems []string
	if utf8.RuneCountInString(password) < minPasswordLength {
		problems = append(problems, "Password must be at least 8 characters long")
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}

	if !lower {
		problems = append(problems, "Password must contain at least one lowercase letter")
	}
	if !upper {
		problems = append(problems, "Password must contain at least one uppercase letter")
	}
	if !digit {
		problems = append(problems, "Password must contain at least one number")
	}
	if !symbol {
		problems = append(problems, "Password must contain at least one special character (@$!%*?&)")
	}
	return problems
}

// Registration is the set of fields checked before an account is created.
type Registration struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Check validates a registration and returns an error whose message is the
// first failing rule. Every failing rule is listed in the details.
func (r Registration) Check() *xerrors.Error {
	var details []xerrors.FieldError
	add := func(field, msg string) {
		details = append(details, xerrors.FieldError{Field: field, Message: msg})
	}

	if strings.TrimSpace(r.Username) == "" {
		add("username", "Username is required")
	}
	if !Email(strings.TrimSpace(r.Email)) {
		add("email", "Valid email is required")
	}
	for _, p := range PasswordProblems(r.Password) {
		add("password", p)
	}
	if strings.TrimSpace(r.FirstName) == "" {
		add("firstName", "First name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		add("lastName", "Last name is required")
	}

	if len(details) == 0 {
		return nil
	}
	return xerrors.Validation(details[0].Message, details...)
}
