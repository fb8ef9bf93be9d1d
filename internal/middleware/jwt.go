package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"errors"   // errors.Is for expiry discrimination
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/railwatch/train-issue-service/internal/utils" // token parsing
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject and role into the request context. The
// provided secret must match the one used when issuing tokens. A missing
// token answers 401; a token that fails validation (forged, malformed or
// expired) answers 403. Handlers behind this middleware read the
// authenticated principal via c.Get("user_id") (uint64) and
// c.Get("role") (string).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Access Denied"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			ident, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					return c.JSON(http.StatusForbidden, echo.Map{"message": "Token Expired"})
				}
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Invalid Token"})
			}

			c.Set("user_id", ident.UserID)
			c.Set("role", ident.Role)
			return next(c)
		}
	}
}
