package model

import "time"

// StockEntry is the per-product quantity-on-hand ledger row. Exactly one
// entry exists per product per account; it is created with the product and
// removed with it.
type StockEntry struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_product_stock"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_user_product_stock"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
