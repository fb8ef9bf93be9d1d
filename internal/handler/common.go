package handler // handler defines http handlers

import (
	"errors"  // sentinel value used in getUserID
	"strconv" // string-to-numeric conversion
	"time"    // timestamp formatting for responses

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/railwatch/train-issue-service/internal/model"
)

// getUserID extracts the user_id stored by the JWT middleware from the
// echo context and converts it to uint64. The middleware stores a uint64,
// but the other shapes are accepted for robustness against alternative
// token parsers.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// reportResp is the JSON projection of a report shared by the user and
// admin endpoints. Field names match what the frontend already consumes.
type reportResp struct {
	ID           uint64  `json:"id"`
	TrainName    string  `json:"trainName"`
	TrainNumber  string  `json:"trainNumber"`
	CoachNumber  string  `json:"coachNumber"`
	Issue        string  `json:"issue"`
	Time         string  `json:"time"`
	Location     string  `json:"location"`
	TrainDetails *string `json:"trainDetails,omitempty"`
	Status       string  `json:"status"`
	UserID       uint64  `json:"userId"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

func toReportResp(r model.Report) reportResp {
	return reportResp{
		ID:           r.ID,
		TrainName:    r.TrainName,
		TrainNumber:  r.TrainNumber,
		CoachNumber:  r.CoachNumber,
		Issue:        r.Issue,
		Time:         r.Time,
		Location:     r.Location,
		TrainDetails: r.TrainDetails,
		Status:       r.Status,
		UserID:       r.UserID,
		CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
