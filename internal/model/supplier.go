package model

import "time"

// Supplier represents a supplier. Name, phone and email are each unique per
// account.
type Supplier struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_supplier_name;uniqueIndex:idx_user_supplier_phone;uniqueIndex:idx_user_supplier_email"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_user_supplier_name"`
	Phone     string    `json:"phone" gorm:"type:varchar(20);not null;uniqueIndex:idx_user_supplier_phone"`
	Email     string    `json:"email" gorm:"type:varchar(100);not null;uniqueIndex:idx_user_supplier_email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierProduct associates suppliers with the products they provide,
// scoped by the owning account
type SupplierProduct struct {
	ID         uint `json:"id" gorm:"primarykey"`
	UserID     uint `json:"user_id" gorm:"index;not null"`
	SupplierID uint `json:"supplier_id" gorm:"not null;uniqueIndex:idx_supplier_product"`
	ProductID  uint `json:"product_id" gorm:"not null;uniqueIndex:idx_supplier_product"`
}
