package service

import (
	"errors"
	"time"

	"inventory-service/internal/apperr"
	"inventory-service/internal/model"

	"gorm.io/gorm"
)

// OrderService governs the purchase-order lifecycle and the stock increment
// that accompanies completion. Orders move pending -> completed or
// pending -> deleted; both end states are terminal.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates an order service backed by db
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// OrderLineInput is one (product, quantity) pair of an order request
type OrderLineInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// OrderSummary is one row of an order listing
type OrderSummary struct {
	ID           uint       `json:"id"`
	OrderDate    time.Time  `json:"order_date"`
	ReceivedDate *time.Time `json:"received_date,omitempty"`
	Status       string     `json:"status"`
	ProductCount int        `json:"product_count"`
}

// OrderDetailLine is an order line joined with product identity
type OrderDetailLine struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// OrderDetail is a full order with its line items
type OrderDetail struct {
	ID           uint              `json:"id"`
	OrderDate    time.Time         `json:"order_date"`
	ReceivedDate *time.Time        `json:"received_date,omitempty"`
	Status       string            `json:"status"`
	Lines        []OrderDetailLine `json:"lines"`
}

// Create inserts a pending order with its line items as one transaction.
// Every referenced product must exist under the account; otherwise nothing is
// inserted.
func (s *OrderService) Create(userID uint, lines []OrderLineInput) (uint, error) {
	if len(lines) == 0 {
		return 0, apperr.New(apperr.Validation, "order must contain at least one line item")
	}
	for _, l := range lines {
		if l.ProductID == 0 {
			return 0, apperr.New(apperr.Validation, "line item product_id is required")
		}
		if l.Quantity <= 0 {
			return 0, apperr.New(apperr.Validation, "line item quantity must be a positive integer")
		}
	}

	var orderID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, l := range lines {
			var count int64
			if err := tx.Model(&model.Product{}).
				Where("id = ? AND user_id = ?", l.ProductID, userID).
				Count(&count).Error; err != nil {
				return apperr.Wrap(apperr.Integrity, "failed to verify product", err)
			}
			if count == 0 {
				return apperr.Newf(apperr.NotFound, "product %d not found", l.ProductID)
			}
		}

		order := model.PurchaseOrder{
			UserID:    userID,
			OrderDate: time.Now(),
			Status:    model.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to create order", err)
		}

		for _, l := range lines {
			line := model.OrderLine{
				OrderID:   order.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
			}
			if err := tx.Create(&line).Error; err != nil {
				return apperr.Wrap(apperr.Integrity, "failed to create order line", err)
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// Complete transitions a pending order to completed and increments the stock
// ledger by each line's quantity, all in one transaction. Increments are
// evaluated at the store so that concurrent completions compose. Any failure
// leaves the order and the ledger untouched.
func (s *OrderService) Complete(userID, orderID uint, receivedDate *time.Time) error {
	received := time.Now()
	if receivedDate != nil {
		received = *receivedDate
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var order model.PurchaseOrder
		if err := tx.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "order not found")
			}
			return apperr.Wrap(apperr.Integrity, "failed to load order", err)
		}

		switch order.Status {
		case model.OrderStatusPending:
		case model.OrderStatusCompleted:
			return apperr.New(apperr.Conflict, "order is already completed")
		default:
			return apperr.New(apperr.Conflict, "only pending orders can be completed")
		}

		var lines []model.OrderLine
		if err := tx.Where("order_id = ?", order.ID).Find(&lines).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to load order lines", err)
		}
		// A pending order with no lines is a data-integrity fault, not a
		// silent success.
		if len(lines) == 0 {
			return apperr.New(apperr.Integrity, "pending order has no line items")
		}

		for _, l := range lines {
			res := tx.Model(&model.StockEntry{}).
				Where("product_id = ? AND user_id = ?", l.ProductID, userID).
				Update("quantity", gorm.Expr("quantity + ?", l.Quantity))
			if res.Error != nil {
				return apperr.Wrap(apperr.Integrity, "failed to update stock", res.Error)
			}
			if res.RowsAffected == 0 {
				return apperr.Newf(apperr.Integrity, "product %d has no stock entry", l.ProductID)
			}
		}

		if err := tx.Model(&order).Updates(map[string]interface{}{
			"status":        model.OrderStatusCompleted,
			"received_date": received,
		}).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to complete order", err)
		}
		return nil
	})
}

// Delete marks a pending order as deleted. Completed orders are immutable
// history and cannot be deleted. Line items are retained for audit.
func (s *OrderService) Delete(userID, orderID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order model.PurchaseOrder
		if err := tx.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "order not found")
			}
			return apperr.Wrap(apperr.Integrity, "failed to load order", err)
		}

		if order.Status != model.OrderStatusPending {
			return apperr.New(apperr.Conflict, "only pending orders can be deleted")
		}

		if err := tx.Model(&order).Update("status", model.OrderStatusDeleted).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to delete order", err)
		}
		return nil
	})
}

// List returns the account's orders newest first. Deleted orders are excluded
// unless explicitly requested through the status filter.
func (s *OrderService) List(userID uint, status string) ([]OrderSummary, error) {
	query := s.db.Model(&model.PurchaseOrder{}).
		Select("purchase_orders.id, purchase_orders.order_date, purchase_orders.received_date, purchase_orders.status, COUNT(order_lines.id) AS product_count").
		Joins("LEFT JOIN order_lines ON order_lines.order_id = purchase_orders.id").
		Where("purchase_orders.user_id = ?", userID)

	if status != "" {
		query = query.Where("purchase_orders.status = ?", status)
	} else {
		query = query.Where("purchase_orders.status <> ?", model.OrderStatusDeleted)
	}

	var orders []OrderSummary
	err := query.
		Group("purchase_orders.id, purchase_orders.order_date, purchase_orders.received_date, purchase_orders.status").
		Order("purchase_orders.order_date DESC, purchase_orders.id DESC").
		Scan(&orders).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to list orders", err)
	}
	return orders, nil
}

// Get returns a single order with its line items joined with product identity
func (s *OrderService) Get(userID, orderID uint) (*OrderDetail, error) {
	var order model.PurchaseOrder
	if err := s.db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return nil, apperr.Wrap(apperr.Integrity, "failed to load order", err)
	}

	var lines []OrderDetailLine
	err := s.db.Model(&model.OrderLine{}).
		Select("order_lines.product_id, COALESCE(products.name, '') AS product_name, order_lines.quantity").
		Joins("LEFT JOIN products ON products.id = order_lines.product_id").
		Where("order_lines.order_id = ?", order.ID).
		Order("order_lines.id").
		Scan(&lines).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to load order lines", err)
	}

	return &OrderDetail{
		ID:           order.ID,
		OrderDate:    order.OrderDate,
		ReceivedDate: order.ReceivedDate,
		Status:       order.Status,
		Lines:        lines,
	}, nil
}
