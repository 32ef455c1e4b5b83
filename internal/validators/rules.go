package validators

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const minPasswordLength = 7

// emailRule rejects addresses longer than RFC 5321 allows.
const emailRule = "required,max=254,email"

var validate = validator.New(validator.WithRequiredStructEnabled())

// NormalizeEmail trims and lowercases an address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkName returns a message when a trimmed name is unacceptable.
func checkName(name string) string {
	if strings.TrimSpace(name) == "" {
		return MsgRequired
	}
	return ""
}

// checkEmail expects a normalized address.
func checkEmail(email string) string {
	if email == "" {
		return MsgRequired
	}
	if !isValidEmail(email) {
		return MsgInvalidEmail
	}
	return ""
}

// checkPassword applies the plaintext policy to a trimmed password.
func checkPassword(password string) string {
	password = strings.TrimSpace(password)
	if password == "" {
		return MsgRequired
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return MsgPasswordShort
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return MsgPasswordContent
	}
	return ""
}

func checkDescription(description string) string {
	if strings.TrimSpace(description) == "" {
		return MsgEmpty
	}
	return ""
}

func isValidEmail(email string) bool {
	return validate.Var(email, emailRule) == nil
}
