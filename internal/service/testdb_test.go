package service

import (
	"testing"

	"inventory-service/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema migrated.
// The connection pool is pinned to one connection so every query sees the
// same in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.ProductCategory{},
		&model.Product{},
		&model.StockEntry{},
		&model.PurchaseOrder{},
		&model.OrderLine{},
		&model.Supplier{},
		&model.SupplierProduct{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

// mustCreateProduct seeds a product (with its zero stock entry) through the
// product service so tests exercise the same path production does.
func mustCreateProduct(t *testing.T, db *gorm.DB, userID uint, name string, price float64) *model.Product {
	t.Helper()
	p, err := NewProductService(db).Create(userID, ProductInput{Name: name, Price: price})
	if err != nil {
		t.Fatalf("failed to seed product %q: %v", name, err)
	}
	return p
}

func stockQuantity(t *testing.T, db *gorm.DB, userID, productID uint) int {
	t.Helper()
	var entry model.StockEntry
	if err := db.Where("product_id = ? AND user_id = ?", productID, userID).First(&entry).Error; err != nil {
		t.Fatalf("failed to load stock entry for product %d: %v", productID, err)
	}
	return entry.Quantity
}
