package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/railwatch/train-issue-service/internal/model"
	"github.com/railwatch/train-issue-service/internal/repository"
)

// ReportHandler serves report submission and the reporter's own listing.
type ReportHandler struct {
	Reports *repository.ReportRepo
}

func NewReportHandler(reports *repository.ReportRepo) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

type reportReq struct {
	TrainName    string `json:"trainName"`
	TrainNumber  string `json:"trainNumber"`
	CoachNumber  string `json:"coachNumber"`
	Issue        string `json:"issue"`
	Time         string `json:"time"`
	Location     string `json:"location"`
	TrainDetails string `json:"trainDetails"`
}

// missingReportFields returns the names of mandatory fields that are
// absent or blank. trainDetails is the only optional field.
func missingReportFields(req reportReq) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"trainName", req.TrainName},
		{"trainNumber", req.TrainNumber},
		{"coachNumber", req.CoachNumber},
		{"issue", req.Issue},
		{"time", req.Time},
		{"location", req.Location},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Create handles POST /report. The report is owned by the token subject
// and starts in status "Pending".
func (h *ReportHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Access Denied"})
	}

	var req reportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if missing := missingReportFields(req); len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Please provide all required fields."})
	}

	rep := model.Report{
		TrainName:   strings.TrimSpace(req.TrainName),
		TrainNumber: strings.TrimSpace(req.TrainNumber),
		CoachNumber: strings.TrimSpace(req.CoachNumber),
		Issue:       strings.TrimSpace(req.Issue),
		Time:        strings.TrimSpace(req.Time),
		Location:    strings.TrimSpace(req.Location),
		UserID:      userID,
	}
	if d := strings.TrimSpace(req.TrainDetails); d != "" {
		rep.TrainDetails = &d
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	created, err := h.Reports.Create(ctx, &rep)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to submit report. Please try again."})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Report submitted successfully",
		"report":  toReportResp(created),
	})
}

// MyReports handles GET /api/user-reports, listing the reports owned by
// the authenticated user.
func (h *ReportHandler) MyReports(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Access Denied"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reports, err := h.Reports.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error fetching reports"})
	}
	out := make([]reportResp, 0, len(reports))
	for _, r := range reports {
		out = append(out, toReportResp(r))
	}
	return c.JSON(http.StatusOK, out)
}
