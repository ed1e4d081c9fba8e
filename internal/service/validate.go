package service

import (
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	maxMessageLength = 5000
	maxNameLength    = 200
)

var (
	urgencies        = []string{"low", "normal", "high", "urgent"}
	preferredContact = []string{"email", "phone", "whatsapp"}
	meetingTypes     = []string{"in_person", "video", "phone"}
)

// validEmail accepts a bare address only ("a@b.co"), not "Name <a@b.co>".
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}

// requireName checks a required, length-bounded name.
func requireName(name string) error {
	if name == "" {
		return invalid("name", "name_required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return invalid("name", "name_too_long")
	}
	return nil
}

// requireEmail checks a required e-mail address.
func requireEmail(addr string) error {
	if addr == "" {
		return invalid("email", "email_required")
	}
	if !validEmail(addr) {
		return invalid("email", "invalid_email")
	}
	return nil
}

// defaulted returns value, or def when value is empty, and reports whether
// the result is one of allowed.
func defaulted(value, def string, allowed []string) (string, bool) {
	if value == "" {
		value = def
	}
	return value, slices.Contains(allowed, value)
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
