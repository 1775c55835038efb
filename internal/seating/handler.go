package seating

import (
	"context"
	"errors"
	"net/http"

	"ExamTimetabler/internal/timetable"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeatingHandler handles HTTP requests for seating operations.
type SeatingHandler struct {
	service *SeatingService
}

// NewSeatingHandler creates a new SeatingHandler.
func NewSeatingHandler(service *SeatingService) *SeatingHandler {
	return &SeatingHandler{service: service}
}

// GenerateSeatingRequest represents the request to allocate seats for one
// hall sitting.
type GenerateSeatingRequest struct {
	Date   string `json:"date"`    // Sitting date (YYYY-MM-DD)
	Period string `json:"period"`  // AM or PM
	HallID string `json:"hall_id"` // Hall to allocate
}

// ManualAssignRequest represents a manual seat override.
type ManualAssignRequest struct {
	Date       string `json:"date"`        // Sitting date (YYYY-MM-DD)
	Period     string `json:"period"`      // AM or PM
	HallID     string `json:"hall_id"`     // Hall the student sits in
	StudentID  string `json:"student_id"`  // Student to seat
	SeatNumber int    `json:"seat_number"` // Target seat, 1-based
}

func parsePeriod(raw string) (timetable.Period, bool) {
	p := timetable.Period(raw)
	return p, p == timetable.PeriodAM || p == timetable.PeriodPM
}

// GenerateSeating allocates seats for every student in a hall sitting.
func (h *SeatingHandler) GenerateSeating(c echo.Context) error {
	var req GenerateSeatingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	period, ok := parsePeriod(req.Period)
	if !ok || req.Date == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Date and period (AM/PM) are required"})
	}
	hallID, err := primitive.ObjectIDFromHex(req.HallID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid hall ID"})
	}

	summary, err := h.service.GenerateSeating(context.Background(), req.Date, period, hallID)
	if err != nil {
		if errors.Is(err, ErrTooManyStudents) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, summary)
}

// GetArrangement returns the seat records of one hall sitting.
func (h *SeatingHandler) GetArrangement(c echo.Context) error {
	period, ok := parsePeriod(c.QueryParam("period"))
	date := c.QueryParam("date")
	if !ok || date == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Date and period (AM/PM) are required"})
	}
	hallID, err := primitive.ObjectIDFromHex(c.QueryParam("hall_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid hall ID"})
	}

	records, err := h.service.GetArrangement(context.Background(), date, period, hallID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch arrangement"})
	}
	return c.JSON(http.StatusOK, records)
}

// ManualAssign lets an administrator seat an unplaced student directly.
func (h *SeatingHandler) ManualAssign(c echo.Context) error {
	var req ManualAssignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	period, ok := parsePeriod(req.Period)
	if !ok || req.Date == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Date and period (AM/PM) are required"})
	}
	hallID, err := primitive.ObjectIDFromHex(req.HallID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid hall ID"})
	}
	studentID, err := primitive.ObjectIDFromHex(req.StudentID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid student ID"})
	}

	err = h.service.ManualAssign(context.Background(), req.Date, period, hallID, studentID, req.SeatNumber)
	if err != nil {
		if errors.Is(err, ErrSeatOutOfRange) || errors.Is(err, ErrSeatOccupied) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Seat assigned"})
}
