package timetable

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// TimetableHandler handles HTTP requests for timetable operations.
type TimetableHandler struct {
	service *TimetableService
}

// NewTimetableHandler creates a new TimetableHandler.
func NewTimetableHandler(service *TimetableService) *TimetableHandler {
	return &TimetableHandler{service: service}
}

// GenerateTimetableRequest represents the request to generate a timetable.
type GenerateTimetableRequest struct {
	StartDate string `json:"start_date"` // First exam day (YYYY-MM-DD)
	EndDate   string `json:"end_date"`   // Last exam day (YYYY-MM-DD)
}

// GenerateTimetable allows admins to generate the exam timetable.
func (h *TimetableHandler) GenerateTimetable(c echo.Context) error {
	var req GenerateTimetableRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if req.StartDate == "" || req.EndDate == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please select a start date and end date"})
	}

	count, err := h.service.GenerateTimetable(context.Background(), req.StartDate, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Time table generated",
		"rows":    count,
	})
}

// GetTimetable returns the scheduled exams for a date and period.
func (h *TimetableHandler) GetTimetable(c echo.Context) error {
	date := c.QueryParam("date")
	period := Period(c.QueryParam("period"))
	if date == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Date is required"})
	}
	if period != PeriodAM && period != PeriodPM {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Period must be AM or PM"})
	}

	exams, err := h.service.GetTimetable(context.Background(), date, period)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch timetable"})
	}
	return c.JSON(http.StatusOK, exams)
}

// GetExamDates returns the distinct dates with a generated timetable.
func (h *TimetableHandler) GetExamDates(c echo.Context) error {
	dates, err := h.service.GetExamDates(context.Background())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch exam dates"})
	}
	return c.JSON(http.StatusOK, dates)
}

// ClearTimetable deletes the generated timetable so it can be regenerated.
func (h *TimetableHandler) ClearTimetable(c echo.Context) error {
	if err := h.service.ClearTimetable(context.Background()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to clear timetable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Timetable cleared"})
}
