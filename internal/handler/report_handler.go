package handler

import (
	"net/http"
	"strconv"
	"time"

	"inventory-service/internal/service"

	"github.com/labstack/echo/v4"
)

// ReportHandler exposes the read-only report endpoints
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler creates a report handler
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Purchases summarizes the account's orders within a period given by
// start_date and end_date query parameters (YYYY-MM-DD)
func (h *ReportHandler) Purchases(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	start, err := time.Parse("2006-01-02", c.QueryParam("start_date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	end, err := time.Parse("2006-01-02", c.QueryParam("end_date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be YYYY-MM-DD"})
	}
	// Make the end date inclusive
	end = end.Add(24*time.Hour - time.Nanosecond)

	rows, err := h.reports.PurchasesByPeriod(userID, start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// TopProducts lists the most purchased products across completed orders
func (h *ReportHandler) TopProducts(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	limit := 5
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = parsed
	}

	rows, err := h.reports.TopProducts(userID, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// StockSummary aggregates ledger totals and the per-category breakdown
func (h *ReportHandler) StockSummary(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	summary, err := h.reports.StockSummary(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// OrdersByStatus summarizes the account's orders grouped by status
func (h *ReportHandler) OrdersByStatus(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	rows, err := h.reports.OrdersByStatus(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
