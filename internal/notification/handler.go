package notification

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoticeHandler handles HTTP requests for notices.
type NoticeHandler struct {
	service *NoticeService
}

// NewNoticeHandler creates a new NoticeHandler.
func NewNoticeHandler(service *NoticeService) *NoticeHandler {
	return &NoticeHandler{service: service}
}

// ScheduleNoticeRequest represents the request to schedule a notice.
type ScheduleNoticeRequest struct {
	Subject     string    `json:"subject"`     // Email subject
	Message     string    `json:"message"`     // The email body to send
	SendTime    time.Time `json:"send_time"`   // When to send the email
	Departments []string  `json:"departments"` // Target department slugs, empty = all
}

// ScheduleNotice allows admins to schedule a new email notice.
func (h *NoticeHandler) ScheduleNotice(c echo.Context) error {
	var req ScheduleNoticeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if req.SendTime.Before(time.Now()) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Send time must be in the future"})
	}
	if req.Subject == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Subject and message are required"})
	}

	notice := &Notice{
		Subject:     req.Subject,
		Message:     req.Message,
		SendTime:    req.SendTime,
		Departments: req.Departments,
	}

	err := h.service.ScheduleNotice(context.Background(), notice)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to schedule notice"})
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "Notice scheduled successfully"})
}

// ListNotices returns notices, optionally filtered by department.
func (h *NoticeHandler) ListNotices(c echo.Context) error {
	department := c.QueryParam("department")
	notices, err := h.service.ListNotices(context.Background(), department)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch notices"})
	}
	return c.JSON(http.StatusOK, notices)
}

// DeleteNotice deletes a notice by ID.
func (h *NoticeHandler) DeleteNotice(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid notice ID"})
	}

	if err := h.service.DeleteNotice(context.Background(), id); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Notice deleted"})
}
