package crypto

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// SpecialCharacters is the set accepted by the password policy's special-character rule.
const SpecialCharacters = `!@#$%^&*(),.?":{}|<>`

// MaxPasswordBytes is the longest input bcrypt will hash.
const MaxPasswordBytes = 72

// PasswordPolicy describes the rules a new password must satisfy.
type PasswordPolicy struct {
	MinLength int
	MaxLength int
}

var DefaultPasswordPolicy = PasswordPolicy{MinLength: 8, MaxLength: 50}

// Validate returns one message per broken rule, in a stable order. An empty result means
// the password is acceptable.
func (p PasswordPolicy) Validate(password string) []string {
	var problems []string
	n := len([]rune(password))
	if n < p.MinLength {
		problems = append(problems, fmt.Sprintf("Password must be at least %d characters long", p.MinLength))
	}
	if n > p.MaxLength {
		problems = append(problems, fmt.Sprintf("Password must be at most %d characters long", p.MaxLength))
	}
	if len(password) > MaxPasswordBytes {
		problems = append(problems, fmt.Sprintf("Password must be at most %d bytes long", MaxPasswordBytes))
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(SpecialCharacters, r):
			special = true
		}
	}
	if !lower {
		problems = append(problems, "Password must contain at least one lowercase letter")
	}
	if !upper {
		problems = append(problems, "Password must contain at least one uppercase letter")
	}
	if !digit {
		problems = append(problems, "Password must contain at least one digit")
	}
	if !special {
		problems = append(problems, "Password must contain at least one special character ("+SpecialCharacters+")")
	}
	return problems
}

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
