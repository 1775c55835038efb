package distribution

import (
	"context"
	"errors"
	"net/http"

	"ExamTimetabler/internal/timetable"

	"github.com/labstack/echo/v4"
)

// DistributionHandler handles HTTP requests for distribution operations.
type DistributionHandler struct {
	service *DistributionService
}

// NewDistributionHandler creates a new DistributionHandler.
func NewDistributionHandler(service *DistributionService) *DistributionHandler {
	return &DistributionHandler{service: service}
}

// GenerateDistributionRequest represents the request to distribute one sitting.
type GenerateDistributionRequest struct {
	Date   string `json:"date"`   // Sitting date (YYYY-MM-DD)
	Period string `json:"period"` // AM or PM
}

func parsePeriod(raw string) (timetable.Period, bool) {
	p := timetable.Period(raw)
	return p, p == timetable.PeriodAM || p == timetable.PeriodPM
}

// GenerateDistribution allows admins to distribute scheduled classes into halls.
func (h *DistributionHandler) GenerateDistribution(c echo.Context) error {
	var req GenerateDistributionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	period, ok := parsePeriod(req.Period)
	if !ok || req.Date == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Date and period (AM/PM) are required"})
	}

	stats, err := h.service.GenerateDistribution(context.Background(), req.Date, period)
	if err != nil {
		if errors.Is(err, ErrCapacityExceeded) || errors.Is(err, ErrNoSuitableHall) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, stats)
}

// GetDistributions returns the stored distributions for a sitting.
func (h *DistributionHandler) GetDistributions(c echo.Context) error {
	period, ok := parsePeriod(c.QueryParam("period"))
	date := c.QueryParam("date")
	if !ok || date == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Date and period (AM/PM) are required"})
	}

	distributions, err := h.service.GetDistributions(context.Background(), date, period)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch distributions"})
	}
	return c.JSON(http.StatusOK, distributions)
}

// ClearDistribution removes the stored distributions for a sitting.
func (h *DistributionHandler) ClearDistribution(c echo.Context) error {
	period, ok := parsePeriod(c.QueryParam("period"))
	date := c.QueryParam("date")
	if !ok || date == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Date and period (AM/PM) are required"})
	}

	if err := h.service.ClearDistribution(context.Background(), date, period); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to clear distributions"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Distributions cleared"})
}

// GetStatistics returns summary statistics for a sitting's distribution.
func (h *DistributionHandler) GetStatistics(c echo.Context) error {
	period, ok := parsePeriod(c.QueryParam("period"))
	date := c.QueryParam("date")
	if !ok || date == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Date and period (AM/PM) are required"})
	}

	stats, err := h.service.GetStatistics(context.Background(), date, period)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to compute statistics"})
	}
	return c.JSON(http.StatusOK, stats)
}
