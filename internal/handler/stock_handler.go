package handler

import (
	"net/http"
	"strconv"

	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StockHandler exposes the stock ledger endpoints
type StockHandler struct {
	stock *service.StockService
}

// NewStockHandler creates a stock handler
func NewStockHandler(stock *service.StockService) *StockHandler {
	return &StockHandler{stock: stock}
}

type stockUpdateRequest struct {
	Quantity *int `json:"quantity"`
}

// List retrieves the full stock ledger for the account
func (h *StockHandler) List(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	rows, err := h.stock.List(userID)
	if err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Stock retrieved", zap.Int("count", len(rows)))
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// Update overwrites a product's absolute quantity. The response reports a
// low-stock advisory and whether the write actually happened.
func (h *StockHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	productID, ok := pathID(c, "product_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	prometheus.RecordOperation("stock", "update")

	var req stockUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Quantity == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity is required"})
	}

	result, err := h.stock.Set(userID, productID, *req.Quantity)
	if err != nil {
		return respondError(c, err)
	}

	message := "stock updated successfully"
	if !result.Changed {
		message = "stock unchanged, quantity is the same"
	}
	if result.LowStock {
		prometheus.LowStockAlertsCounter.Inc()
		log.Warn("Low stock advisory",
			zap.Uint("product_id", productID),
			zap.Int("quantity", result.Quantity))
	}

	log.Info("Stock update processed",
		zap.Uint("product_id", productID),
		zap.Int("quantity", result.Quantity),
		zap.Bool("changed", result.Changed))
	return c.JSON(http.StatusOK, echo.Map{
		"message":   message,
		"data":      result,
		"low_stock": result.LowStock,
	})
}

// LowStock retrieves products at or below the threshold. An empty result is
// reported explicitly, not as an error.
func (h *StockHandler) LowStock(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	threshold := h.stock.Threshold()
	if raw := c.QueryParam("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid threshold"})
		}
		threshold = parsed
	}

	rows, err := h.stock.LowStock(userID, threshold)
	if err != nil {
		return respondError(c, err)
	}

	if len(rows) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"message":   "no products at or below threshold",
			"threshold": threshold,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":      rows,
		"threshold": threshold,
		"count":     len(rows),
	})
}

// Statistics retrieves aggregate counters over the ledger
func (h *StockHandler) Statistics(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	stats, err := h.stock.Statistics(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
