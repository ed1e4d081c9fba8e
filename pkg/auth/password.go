package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Credentials is the single admin account.
type Credentials struct {
	Email        string
	PasswordHash string
}

// Check reports whether email and password match. The e-mail comparison is
// case-insensitive. An unset hash never matches.
func (c Credentials) Check(email, password string) bool {
	if c.Email == "" || c.PasswordHash == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(email))),
		[]byte(strings.ToLower(c.Email)),
	) == 1
	// Always run bcrypt so timing does not reveal whether the e-mail matched.
	passOK := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
	return emailOK && passOK
}
