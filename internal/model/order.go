package model

import "time"

// Purchase order statuses. Orders start pending; completed and deleted are
// terminal.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusDeleted   = "deleted"
)

// PurchaseOrder represents a purchase order owned by an account. Deleted
// orders keep their rows and line items for audit; only the status changes.
type PurchaseOrder struct {
	ID           uint        `json:"id" gorm:"primarykey"`
	UserID       uint        `json:"user_id" gorm:"index;not null"`
	OrderDate    time.Time   `json:"order_date" gorm:"not null"`
	ReceivedDate *time.Time  `json:"received_date,omitempty"`
	Status       string      `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Lines        []OrderLine `json:"lines,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// OrderLine is one product line of a purchase order
type OrderLine struct {
	ID        uint `json:"id" gorm:"primarykey"`
	OrderID   uint `json:"order_id" gorm:"index;not null"`
	ProductID uint `json:"product_id" gorm:"index;not null"`
	Quantity  int  `json:"quantity" gorm:"not null"`
}
