package service

import (
	"errors"

	"inventory-service/internal/apperr"
	"inventory-service/internal/model"

	"gorm.io/gorm"
)

// DefaultLowStockThreshold is the quantity at or below which a product is
// flagged as low stock when no threshold is configured
const DefaultLowStockThreshold = 5

// StockService maintains the per-product quantity-on-hand ledger. Absolute
// overwrites happen here (manual recounts); additive increments belong to the
// order workflow.
type StockService struct {
	db        *gorm.DB
	threshold int
}

// NewStockService creates a stock service with the configured low-stock
// threshold (0 falls back to the default)
func NewStockService(db *gorm.DB, lowStockThreshold int) *StockService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &StockService{db: db, threshold: lowStockThreshold}
}

// StockRow is one ledger row joined with product identity
type StockRow struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	LowStock    bool   `json:"low_stock"`
}

// SetResult reports the outcome of an absolute stock write
type SetResult struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
	Changed   bool `json:"changed"`
	LowStock  bool `json:"low_stock"`
}

// Statistics summarizes the state of an account's ledger
type Statistics struct {
	TotalProducts     int64 `json:"total_products"`
	TotalUnits        int64 `json:"total_units"`
	LowStockCount     int64 `json:"low_stock_count"`
	OutOfStock        int64 `json:"out_of_stock"`
	LowStockThreshold int   `json:"low_stock_threshold"`
}

// Set overwrites a product's quantity. Setting the current quantity again is
// reported as unchanged without a write. The result carries a low-stock
// advisory when the new quantity is at or below the threshold; the advisory
// never blocks the write.
func (s *StockService) Set(userID, productID uint, quantity int) (*SetResult, error) {
	if quantity < 0 {
		return nil, apperr.New(apperr.Validation, "quantity cannot be negative")
	}

	var entry model.StockEntry
	if err := s.db.Where("product_id = ? AND user_id = ?", productID, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, apperr.Wrap(apperr.Integrity, "failed to load stock entry", err)
	}

	result := &SetResult{
		ProductID: productID,
		Quantity:  quantity,
		LowStock:  quantity <= s.threshold,
	}
	if entry.Quantity == quantity {
		return result, nil
	}

	if err := s.db.Model(&entry).Update("quantity", quantity).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to update stock", err)
	}
	result.Changed = true
	return result, nil
}

// LowStock returns the products at or below threshold, ascending by quantity
// then name. An empty slice means no products qualify; that is not an error.
func (s *StockService) LowStock(userID uint, threshold int) ([]StockRow, error) {
	if threshold <= 0 {
		threshold = s.threshold
	}

	var rows []StockRow
	err := s.db.Model(&model.StockEntry{}).
		Select("stock_entries.product_id, products.name AS product_name, stock_entries.quantity").
		Joins("JOIN products ON products.id = stock_entries.product_id").
		Where("stock_entries.quantity <= ? AND stock_entries.user_id = ?", threshold, userID).
		Order("stock_entries.quantity ASC, products.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to query low stock", err)
	}
	for i := range rows {
		rows[i].LowStock = true
	}
	return rows, nil
}

// List returns the account's full ledger joined with product names
func (s *StockService) List(userID uint) ([]StockRow, error) {
	var rows []StockRow
	err := s.db.Model(&model.StockEntry{}).
		Select("stock_entries.product_id, products.name AS product_name, stock_entries.quantity").
		Joins("JOIN products ON products.id = stock_entries.product_id").
		Where("stock_entries.user_id = ?", userID).
		Order("products.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to list stock", err)
	}
	for i := range rows {
		rows[i].LowStock = rows[i].Quantity <= s.threshold
	}
	return rows, nil
}

// Threshold returns the configured low-stock threshold
func (s *StockService) Threshold() int {
	return s.threshold
}

// Statistics returns counts and totals over the account's ledger
func (s *StockService) Statistics(userID uint) (*Statistics, error) {
	stats := &Statistics{LowStockThreshold: s.threshold}

	if err := s.db.Model(&model.StockEntry{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to count stock entries", err)
	}

	var totalUnits *int64
	if err := s.db.Model(&model.StockEntry{}).
		Select("SUM(quantity)").
		Where("user_id = ?", userID).
		Scan(&totalUnits).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to sum stock units", err)
	}
	if totalUnits != nil {
		stats.TotalUnits = *totalUnits
	}

	if err := s.db.Model(&model.StockEntry{}).
		Where("user_id = ? AND quantity <= ?", userID, s.threshold).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to count low stock", err)
	}

	if err := s.db.Model(&model.StockEntry{}).
		Where("user_id = ? AND quantity = 0", userID).
		Count(&stats.OutOfStock).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to count out of stock", err)
	}

	return stats, nil
}
