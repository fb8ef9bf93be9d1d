package handler

import (
	"context"      // provides context with cancellation for DB calls
	"database/sql" // SQL database interactions
	"log"          // operational log; the only delivery channel for OTPs
	"net/http"     // HTTP status codes and primitives
	"regexp"       // email shape validation
	"strings"      // string manipulation utilities
	"time"         // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/railwatch/train-issue-service/internal/config"              // app configuration
	"github.com/railwatch/train-issue-service/internal/otp"                 // one-time-code store
	"github.com/railwatch/train-issue-service/internal/queue"               // broker event payloads
	"github.com/railwatch/train-issue-service/internal/repository"          // DB repositories
	queue_publisher "github.com/railwatch/train-issue-service/internal/service" // best-effort event publishing
	"github.com/railwatch/train-issue-service/internal/utils"               // helper functions (hashing, token issuing)
)

// emailShape is the same permissive pattern the frontend validates with:
// something, an @, something, a dot, something.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthHandler bundles dependencies for signup, OTP verification and signin.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Codes otp.Store
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, codes otp.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Codes: codes}
}

// ----- DTOs -----

type signupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}
type verifyOTPReq struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}
type signinReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup: create an unactivated user and issue a verification code.
// Duplicate email or phone answer 400. The code is written to the
// operational log and published to the notification queue; no real mail
// delivery is integrated.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "errorMessage": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "errorMessage": "name, email, password and phone are required"})
	}
	if !emailShape.MatchString(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "errorMessage": "Please fill a valid email address"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Pre-checks give precise error messages; the unique keys in the
	// schema remain the guard against concurrent duplicate signups.
	if exists, err := h.Users.ExistsByEmail(ctx, req.Email); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "errorMessage": err.Error()})
	} else if exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "errorMessage": "Email ID already exists"})
	}
	if exists, err := h.Users.ExistsByPhone(ctx, req.Phone); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "errorMessage": err.Error()})
	} else if exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "errorMessage": "Phone number already exists"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "errorMessage": err.Error()})
	}

	if _, err := h.Users.Create(ctx, req.Name, req.Email, req.Phone, hash); err != nil {
		switch err {
		case repository.ErrEmailExists:
			return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "errorMessage": "Email ID already exists"})
		case repository.ErrPhoneExists:
			return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "errorMessage": "Phone number already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "errorMessage": err.Error()})
		}
	}

	code, err := h.Codes.Issue(ctx, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "errorMessage": err.Error()})
	}
	log.Printf("Generated OTP for %s: %s", req.Email, code)
	// Best effort: broker trouble must not fail the signup.
	_ = queue_publisher.PublishOTPIssued(ctx, queue.OTPIssuedEvent{
		Email:    req.Email,
		Code:     code,
		IssuedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "message": "OTP sent. Please verify it."})
}

// VerifyOTP: consume the pending code for the email. A match deletes the
// entry, so the same code cannot verify twice.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Codes.Verify(ctx, email, strings.TrimSpace(req.OTP)); err != nil {
		if err == otp.ErrCodeMismatch {
			return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "Invalid OTP."})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "success", "message": "OTP verified successfully. You can now log in."})
}

// Signin: verify credentials and return a fresh access token with the
// user's id and role. Unknown email and wrong password are
// indistinguishable to the caller.
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid credentials"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": err.Error()})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"token":  access.Token,
		"userId": u.ID,
		"role":   u.Role,
	})
}
