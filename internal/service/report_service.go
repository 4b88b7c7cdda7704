package service

import (
	"time"

	"inventory-service/internal/apperr"
	"inventory-service/internal/model"

	"gorm.io/gorm"
)

// ReportService builds read-only aggregations over the store. It holds no
// invariants of its own.
type ReportService struct {
	db        *gorm.DB
	threshold int
}

// NewReportService creates a report service with the configured low-stock
// threshold (0 falls back to the default)
func NewReportService(db *gorm.DB, lowStockThreshold int) *ReportService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &ReportService{db: db, threshold: lowStockThreshold}
}

// PurchaseSummary aggregates one order within a reporting period
type PurchaseSummary struct {
	OrderID       uint      `json:"order_id"`
	OrderDate     time.Time `json:"order_date"`
	Status        string    `json:"status"`
	TotalProducts int64     `json:"total_products"`
	TotalItems    int64     `json:"total_items"`
	TotalAmount   float64   `json:"total_amount"`
}

// TopProduct aggregates completed-order volume for one product
type TopProduct struct {
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"`
	TotalQuantity int64   `json:"total_quantity"`
	TimesOrdered  int64   `json:"times_ordered"`
	UnitPrice     float64 `json:"unit_price"`
	TotalSpent    float64 `json:"total_spent"`
}

// CategoryBreakdown is one category bucket of the stock summary
type CategoryBreakdown struct {
	Category string `json:"category"`
	Products int64  `json:"products"`
	Units    int64  `json:"units"`
}

// StockSummary summarizes the whole ledger including inventory value
type StockSummary struct {
	TotalProducts int64               `json:"total_products"`
	TotalUnits    int64               `json:"total_units"`
	TotalValue    float64             `json:"total_value"`
	LowStockCount int64               `json:"low_stock_count"`
	OutOfStock    int64               `json:"out_of_stock"`
	ByCategory    []CategoryBreakdown `json:"by_category"`
}

// StatusCount aggregates orders sharing a status
type StatusCount struct {
	Status      string  `json:"status"`
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

// PurchasesByPeriod summarizes non-deleted orders placed between start and
// end, newest first
func (s *ReportService) PurchasesByPeriod(userID uint, start, end time.Time) ([]PurchaseSummary, error) {
	var rows []PurchaseSummary
	err := s.db.Model(&model.PurchaseOrder{}).
		Select("purchase_orders.id AS order_id, purchase_orders.order_date, purchase_orders.status, "+
			"COUNT(order_lines.product_id) AS total_products, "+
			"SUM(order_lines.quantity) AS total_items, "+
			"SUM(order_lines.quantity * products.price) AS total_amount").
		Joins("JOIN order_lines ON order_lines.order_id = purchase_orders.id").
		Joins("JOIN products ON products.id = order_lines.product_id").
		Where("purchase_orders.user_id = ? AND purchase_orders.order_date BETWEEN ? AND ? AND purchase_orders.status <> ?",
			userID, start, end, model.OrderStatusDeleted).
		Group("purchase_orders.id, purchase_orders.order_date, purchase_orders.status").
		Order("purchase_orders.order_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to build purchases summary", err)
	}
	return rows, nil
}

// TopProducts returns the most purchased products across completed orders
func (s *ReportService) TopProducts(userID uint, limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}

	var rows []TopProduct
	err := s.db.Model(&model.OrderLine{}).
		Select("products.id AS product_id, products.name AS product_name, "+
			"SUM(order_lines.quantity) AS total_quantity, "+
			"COUNT(DISTINCT purchase_orders.id) AS times_ordered, "+
			"products.price AS unit_price, "+
			"SUM(order_lines.quantity * products.price) AS total_spent").
		Joins("JOIN products ON products.id = order_lines.product_id").
		Joins("JOIN purchase_orders ON purchase_orders.id = order_lines.order_id").
		Where("purchase_orders.user_id = ? AND purchase_orders.status = ?", userID, model.OrderStatusCompleted).
		Group("products.id, products.name, products.price").
		Order("total_quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to build top products", err)
	}
	return rows, nil
}

// StockSummary aggregates ledger totals, inventory value and a per-category
// breakdown with an explicit bucket for uncategorized products
func (s *ReportService) StockSummary(userID uint) (*StockSummary, error) {
	summary := &StockSummary{}

	if err := s.db.Model(&model.StockEntry{}).
		Where("user_id = ?", userID).
		Count(&summary.TotalProducts).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to count stock entries", err)
	}

	var totals struct {
		Units *int64
		Value *float64
	}
	err := s.db.Model(&model.StockEntry{}).
		Select("SUM(stock_entries.quantity) AS units, SUM(stock_entries.quantity * products.price) AS value").
		Joins("JOIN products ON products.id = stock_entries.product_id").
		Where("stock_entries.user_id = ?", userID).
		Scan(&totals).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to sum inventory", err)
	}
	if totals.Units != nil {
		summary.TotalUnits = *totals.Units
	}
	if totals.Value != nil {
		summary.TotalValue = *totals.Value
	}

	if err := s.db.Model(&model.StockEntry{}).
		Where("user_id = ? AND quantity <= ?", userID, s.threshold).
		Count(&summary.LowStockCount).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to count low stock", err)
	}
	if err := s.db.Model(&model.StockEntry{}).
		Where("user_id = ? AND quantity = 0", userID).
		Count(&summary.OutOfStock).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to count out of stock", err)
	}

	err = s.db.Model(&model.Product{}).
		Select("COALESCE(product_categories.name, 'uncategorized') AS category, "+
			"COUNT(products.id) AS products, "+
			"SUM(stock_entries.quantity) AS units").
		Joins("LEFT JOIN product_categories ON product_categories.id = products.category_id").
		Joins("JOIN stock_entries ON stock_entries.product_id = products.id").
		Where("products.user_id = ?", userID).
		Group("product_categories.name").
		Order("products DESC").
		Scan(&summary.ByCategory).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to build category breakdown", err)
	}

	return summary, nil
}

// OrdersByStatus returns order counts and amounts grouped by status
func (s *ReportService) OrdersByStatus(userID uint) ([]StatusCount, error) {
	var rows []StatusCount
	err := s.db.Model(&model.PurchaseOrder{}).
		Select("purchase_orders.status, COUNT(DISTINCT purchase_orders.id) AS count, "+
			"COALESCE(SUM(order_lines.quantity * products.price), 0) AS total_amount").
		Joins("LEFT JOIN order_lines ON order_lines.order_id = purchase_orders.id").
		Joins("LEFT JOIN products ON products.id = order_lines.product_id").
		Where("purchase_orders.user_id = ?", userID).
		Group("purchase_orders.status").
		Order("purchase_orders.status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to build status summary", err)
	}
	return rows, nil
}
