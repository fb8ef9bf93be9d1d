// Package handler defines HTTP handlers; this file implements the
// admin-only management surface: listing users and reports, updating a
// report's status and deleting users or reports. All routes here sit
// behind the JWT middleware plus the admin role gate.
package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/railwatch/train-issue-service/internal/repository"
)

// AdminHandler bundles the repositories used by admin operations.
type AdminHandler struct {
	Users   *repository.UserRepo
	Reports *repository.ReportRepo
}

func NewAdminHandler(users *repository.UserRepo, reports *repository.ReportRepo) *AdminHandler {
	return &AdminHandler{Users: users, Reports: reports}
}

// reporterPart is the joined reporter info on admin report listings.
// Pointers stay nil for orphaned reports whose user was deleted.
type reporterPart struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type adminReportResp struct {
	reportResp
	Reporter reporterPart `json:"reporter"`
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// ListUsers handles GET /admin/users: contact details for every user,
// never password hashes.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve users"})
	}
	return c.JSON(http.StatusOK, users)
}

// ListReports handles GET /admin/reports: every report enriched with the
// reporter's name and email.
func (h *AdminHandler) ListReports(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reports, err := h.Reports.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve reports"})
	}
	out := make([]adminReportResp, 0, len(reports))
	for _, r := range reports {
		out = append(out, adminReportResp{
			reportResp: toReportResp(r.Report),
			Reporter:   reporterPart{Name: r.ReporterName, Email: r.ReporterEmail},
		})
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateReportStatus handles PUT /admin/reports/:id (and its legacy alias
// PUT /api/reports/:id/status). The supplied status overwrites the stored
// one unconditionally; no closed set of values is enforced.
func (h *AdminHandler) UpdateReportStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "status required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rep, err := h.Reports.UpdateStatus(ctx, id, strings.TrimSpace(req.Status))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Report not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update report status"})
	}
	return c.JSON(http.StatusOK, toReportResp(rep))
}

// DeleteUser handles DELETE /admin/users/:id. Reports submitted by the
// user are kept; their user reference dangles.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}

// DeleteReport handles DELETE /admin/reports/:reportId and returns the
// removed record.
func (h *AdminHandler) DeleteReport(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("reportId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rep, err := h.Reports.Delete(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Report not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete report"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Report deleted successfully",
		"report":  toReportResp(rep),
	})
}
