package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/railwatch/train-issue-service/internal/queue"
	queue_publisher "github.com/railwatch/train-issue-service/internal/service"
)

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Contact handles POST /contact. The service keeps no contact state: the
// submission is logged and forwarded to the contact.message queue for
// whatever downstream picks it up. Publishing is best effort.
func Contact(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "All fields are required."})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "All fields are required."})
	}

	log.Printf("Contact Us Submission: name=%q email=%s message=%q", req.Name, req.Email, req.Message)
	_ = queue_publisher.PublishContactMessage(c.Request().Context(), queue.ContactMessageEvent{
		Name:       req.Name,
		Email:      req.Email,
		Message:    req.Message,
		ReceivedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Thank you for contacting us! We will get back to you shortly.",
	})
}
