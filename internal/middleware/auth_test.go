package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/railwatch/train-issue-service/internal/utils"
)

const testSecret = "trainapp-test-secret"

// run sends a request through the given middleware chain into a handler
// that records the context values stored by JWTAuth.
func run(t *testing.T, authHeader string, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler chain: %v", err)
	}
	return rec, c
}

func TestJWTAuthMissingToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "bare token without scheme", header: "sometoken"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := run(t, tt.header, JWTAuth(testSecret))
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	rec, _ := run(t, "Bearer garbage", JWTAuth(testSecret))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 5, "user", -1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec, _ := run(t, "Bearer "+tok.Token, JWTAuth(testSecret))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestJWTAuthStoresIdentity(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "admin", 120)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec, c := run(t, "Bearer "+tok.Token, JWTAuth(testSecret))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got, ok := c.Get("user_id").(uint64); !ok || got != 42 {
		t.Fatalf("user_id = %v, want uint64 42", c.Get("user_id"))
	}
	if got, ok := c.Get("role").(string); !ok || got != "admin" {
		t.Fatalf("role = %v, want admin", c.Get("role"))
	}
}

func TestRequireRoleAdminGate(t *testing.T) {
	issue := func(role string) string {
		tok, err := utils.NewAccessToken(testSecret, 1, role, 120)
		if err != nil {
			t.Fatalf("NewAccessToken: %v", err)
		}
		return "Bearer " + tok.Token
	}
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "admin passes", header: issue("admin"), want: http.StatusOK},
		{name: "user denied", header: issue("user"), want: http.StatusForbidden},
		{name: "empty role denied", header: issue(""), want: http.StatusForbidden},
		{name: "near-miss role denied", header: issue("Admin"), want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := run(t, tt.header, JWTAuth(testSecret), RequireRole("admin"))
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequireRoleWithoutAuthContext(t *testing.T) {
	// RequireRole alone, with nothing stored in the context, must deny.
	rec, _ := run(t, "", RequireRole("admin"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
