// Package validate checks registration and login form input. Violations
// are collected, not short-circuited, so every message reaches the user
// in a single response.
package validate

import (
	"regexp"
	"strings"
	"unicode"
)

const specialCharacters = `!@#$%^&*(),.?":{}|<>`

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegistrationForm holds trimmed registration input.
type RegistrationForm struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

func NewRegistrationForm(username, email, password, passwordConfirm string) RegistrationForm {
	return RegistrationForm{
		Username:        strings.TrimSpace(username),
		Email:           strings.TrimSpace(email),
		Password:        password,
		PasswordConfirm: passwordConfirm,
	}
}

// Validate returns every violated rule's message.
func (f RegistrationForm) Validate() []string {
	var errs []string

	if len(f.Username) < 3 || len(f.Username) > 25 {
		errs = append(errs, "Username must have minimum 3 and maximum 25 characters")
	}
	if !emailPattern.MatchString(f.Email) {
		errs = append(errs, "Invalid email format")
	}
	if len(f.Password) < 8 {
		errs = append(errs, "Password must be at least 8 characters")
	}
	if !containsDigit(f.Password) {
		errs = append(errs, "Password must contain a number")
	}
	if !strings.ContainsAny(f.Password, specialCharacters) {
		errs = append(errs, "Password must contain a special character")
	}
	if f.PasswordConfirm != f.Password {
		errs = append(errs, "Passwords do not match")
	}

	return errs
}

// LoginForm holds trimmed login input.
type LoginForm struct {
	Username string
	Password string
}

func NewLoginForm(username, password string) LoginForm {
	return LoginForm{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
	}
}

func (f LoginForm) Validate() []string {
	var errs []string

	if f.Username == "" {
		errs = append(errs, "Username is required")
	}
	if f.Password == "" {
		errs = append(errs, "Password is required")
	}

	return errs
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
