package availability

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Token matches chat messages against the shutdown trigger phrase.
// A zero Token never matches.
type Token struct {
	plain []byte
	hash  []byte
}

// NewToken builds a matcher from a plain phrase or a bcrypt hash of the
// normalized phrase. The hash wins when both are set.
func NewToken(plain, hash string) Token {
	if hash = strings.TrimSpace(hash); hash != "" {
		return Token{hash: []byte(hash)}
	}
	if p := Normalize(plain); p != "" {
		return Token{plain: []byte(p)}
	}
	return Token{}
}

// Normalize trims surrounding whitespace and lowercases.
func Normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (t Token) Enabled() bool { return len(t.plain) > 0 || len(t.hash) > 0 }

func (t Token) Matches(message string) bool {
	msg := Normalize(message)
	if msg == "" {
		return false
	}
	switch {
	case len(t.hash) > 0:
		return bcrypt.CompareHashAndPassword(t.hash, []byte(msg)) == nil
	case len(t.plain) > 0:
		return subtle.ConstantTimeCompare(t.plain, []byte(msg)) == 1
	}
	return false
}

// HashToken returns the bcrypt hash to put into SHUTDOWN_TOKEN_HASH.
func HashToken(phrase string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(Normalize(phrase)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
