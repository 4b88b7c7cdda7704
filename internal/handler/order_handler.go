package handler

import (
	"net/http"
	"time"

	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OrderHandler exposes the purchase-order workflow endpoints
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler creates an order handler
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	Products []service.OrderLineInput `json:"products"`
}

type completeOrderRequest struct {
	ReceivedDate string `json:"received_date"`
}

// List retrieves the account's orders, excluding deleted ones unless a
// status filter asks for them
func (h *OrderHandler) List(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.List(userID, c.QueryParam("status"))
	if err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Orders retrieved", zap.Int("count", len(orders)))
	return c.JSON(http.StatusOK, echo.Map{"data": orders})
}

// Get retrieves a single order with its line items
func (h *OrderHandler) Get(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	order, err := h.orders.Get(userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// Create places a new pending order
func (h *OrderHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	prometheus.RecordOperation("order", "create")

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("order_create")(time.Now())
	orderID, err := h.orders.Create(userID, req.Products)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Order created",
		zap.Uint("order_id", orderID),
		zap.Int("lines", len(req.Products)))
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "order created successfully",
		"order_id": orderID,
	})
}

// Complete transitions a pending order to completed, applying its stock
// increments
func (h *OrderHandler) Complete(c echo.Context) error {
	log := logger.FromContext(c)
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	prometheus.RecordOperation("order", "complete")

	var req completeOrderRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var receivedDate *time.Time
	if req.ReceivedDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ReceivedDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "received_date must be YYYY-MM-DD"})
		}
		receivedDate = &parsed
	}

	defer prometheus.TrackDBOperation("order_complete")(time.Now())
	if err := h.orders.Complete(userID, id, receivedDate); err != nil {
		return respondError(c, err)
	}

	prometheus.OrdersCompletedCounter.Inc()
	log.Info("Order completed", zap.Uint("order_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "order completed and stock updated successfully"})
}

// Delete marks a pending order as deleted
func (h *OrderHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	prometheus.RecordOperation("order", "delete")

	if err := h.orders.Delete(userID, id); err != nil {
		return respondError(c, err)
	}

	log.Info("Order deleted", zap.Uint("order_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "order deleted successfully"})
}
