package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework for routing
	"github.com/redis/go-redis/v9"

	"github.com/railwatch/train-issue-service/internal/config"
	"github.com/railwatch/train-issue-service/internal/handler"
	"github.com/railwatch/train-issue-service/internal/middleware"
	"github.com/railwatch/train-issue-service/internal/model"
)

// RegisterRoutes wires every endpoint of the service onto the Echo
// instance. Route groups, outermost first:
//
//   - public: health, signup/verify/signin (rate limited) and contact
//   - authenticated: report submission and the reporter's own listing
//   - admin: user and report management
//
// The legacy PUT /api/reports/:id/status path predates the /admin tree
// and performed the same status update without any auth; it is kept as an
// alias but registered under the admin gate. Likewise GET /api/user-reports
// used to read its identity off an unauthenticated request and now sits
// behind the JWT middleware.
func RegisterRoutes(e *echo.Echo, cfg config.Config, rdb *redis.Client,
	auth *handler.AuthHandler, reports *handler.ReportHandler, admin *handler.AdminHandler) {

	e.GET("/healthz", handler.Health)

	// Unauthenticated auth endpoints, rate limited per client IP.
	limited := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
	e.POST("/signup", auth.Signup, limited)
	e.POST("/verify-otp", auth.VerifyOTP, limited)
	e.POST("/signin", auth.Signin, limited)

	e.POST("/contact", handler.Contact)

	// Any authenticated user.
	authed := e.Group("", middleware.JWTAuth(cfg.JWTSecret))
	authed.POST("/report", reports.Create)
	authed.GET("/api/user-reports", reports.MyReports)

	// Admin only. RequireRole runs after JWTAuth has stored the role.
	adm := e.Group("", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(model.RoleAdmin))
	adm.GET("/admin/users", admin.ListUsers)
	adm.GET("/admin/reports", admin.ListReports)
	adm.PUT("/admin/reports/:id", admin.UpdateReportStatus)
	adm.DELETE("/admin/users/:id", admin.DeleteUser)
	adm.DELETE("/admin/reports/:reportId", admin.DeleteReport)
	// Legacy alias for the status update, same handler and gate.
	adm.PUT("/api/reports/:id/status", admin.UpdateReportStatus)
}
