package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "trainapp-test-secret"

func TestAccessTokenRoundtrip(t *testing.T) {
	tests := []struct {
		name   string
		userID uint64
		role   string
	}{
		{name: "user role", userID: 42, role: "user"},
		{name: "admin role", userID: 1, role: "admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := NewAccessToken(testSecret, tt.userID, tt.role, 120)
			if err != nil {
				t.Fatalf("NewAccessToken: %v", err)
			}
			ident, err := ParseAccessToken(testSecret, tok.Token)
			if err != nil {
				t.Fatalf("ParseAccessToken: %v", err)
			}
			if ident.UserID != tt.userID || ident.Role != tt.role {
				t.Fatalf("identity = %+v, want {%d %s}", ident, tt.userID, tt.role)
			}
		})
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 7, "user", -1) // already past expiry
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := ParseAccessToken(testSecret, tok.Token); err != ErrTokenExpired {
		t.Fatalf("ParseAccessToken = %v, want ErrTokenExpired", err)
	}
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 7, "user", 120)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	tests := []struct {
		name   string
		secret string
		raw    string
	}{
		{name: "not a jwt", secret: testSecret, raw: "not-a-token"},
		{name: "empty", secret: testSecret, raw: ""},
		{name: "wrong secret", secret: "other-secret", raw: tok.Token},
		{name: "tampered payload", secret: testSecret, raw: tok.Token[:len(tok.Token)-4] + "aaaa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAccessToken(tt.secret, tt.raw); err != ErrTokenInvalid {
				t.Fatalf("ParseAccessToken = %v, want ErrTokenInvalid", err)
			}
		})
	}
}

func TestParseAccessTokenRejectsMissingClaims(t *testing.T) {
	// A correctly signed token without sub/role claims must not yield an
	// identity.
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"foo": "bar"}).
		SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAccessToken(testSecret, raw); err != ErrTokenInvalid {
		t.Fatalf("ParseAccessToken = %v, want ErrTokenInvalid", err)
	}
}
