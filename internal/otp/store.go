// Package otp manages the pending one-time verification codes generated at
// signup and consumed at verification. The Store interface keeps the backing
// storage injectable: the in-process map matches the original behavior of
// the product (codes lost on restart), while the Redis store survives
// restarts and gives codes a bounded lifetime.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
)

// CodeLength is the number of characters in an issued code.
const CodeLength = 6

// ErrCodeMismatch is returned by Verify when no code is pending for the
// email or the submitted code does not exactly match. The two cases are
// deliberately indistinguishable to the caller.
var ErrCodeMismatch = errors.New("invalid or unknown verification code")

// Store issues and consumes one-time verification codes keyed by email.
// At most one code is pending per email; issuing again overwrites the
// previous one. A successful Verify consumes the entry, so a second
// attempt with the same code fails.
type Store interface {
	// Issue generates a fresh code for the email, replacing any pending
	// one, and returns it.
	Issue(ctx context.Context, email string) (string, error)
	// Verify checks the submitted code against the pending one. On match
	// the entry is deleted; otherwise ErrCodeMismatch is returned.
	Verify(ctx context.Context, email, code string) error
}

// codeAlphabet holds the characters codes are drawn from: lowercase
// letters and digits, no special characters.
const codeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// generateCode returns a CodeLength-character random string over
// codeAlphabet using crypto/rand.
func generateCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
