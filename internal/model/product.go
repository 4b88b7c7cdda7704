package model

import "time"

// Product represents the product master data. Name is unique per account.
// Products are hard-deleted so the stock ledger row and supplier links can be
// removed in the same transaction.
type Product struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_product_name"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:idx_user_product_name"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"not null"`
	CategoryID  *uint     `json:"category_id" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductCategory represents product categories. Deleting a category keeps
// its products and nulls their category reference.
type ProductCategory struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_category_name"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_user_category_name"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
