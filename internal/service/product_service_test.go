package service

import (
	"testing"

	"inventory-service/internal/apperr"
	"inventory-service/internal/model"
)

func TestProductCreate(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db)

	p, err := products.Create(1, ProductInput{Name: "  Widget  ", Description: "a widget", Price: 9.99})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Name != "Widget" {
		t.Errorf("name = %q, want trimmed %q", p.Name, "Widget")
	}
	// Every product gets a ledger row at zero
	if got := stockQuantity(t, db, 1, p.ID); got != 0 {
		t.Errorf("initial stock = %d, want 0", got)
	}
}

func TestProductCreateValidation(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db)

	cases := []struct {
		name string
		in   ProductInput
	}{
		{"empty name", ProductInput{Name: "   ", Price: 1}},
		{"zero price", ProductInput{Name: "Widget", Price: 0}},
		{"negative price", ProductInput{Name: "Widget", Price: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := products.Create(1, tc.in); !apperr.IsKind(err, apperr.Validation) {
				t.Fatalf("error = %v, want validation", err)
			}
		})
	}
}

func TestProductDuplicateName(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db)

	mustCreateProduct(t, db, 1, "Widget", 9.99)
	if _, err := products.Create(1, ProductInput{Name: "Widget", Price: 5}); !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("duplicate error = %v, want conflict", err)
	}

	// Same name under another account is fine
	if _, err := products.Create(2, ProductInput{Name: "Widget", Price: 5}); err != nil {
		t.Fatalf("other account create: %v", err)
	}
}

func TestProductUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db)

	missing := uint(99)
	_, err := products.Create(1, ProductInput{Name: "Widget", Price: 9.99, CategoryID: &missing})
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
	// The failed create must not leave a product or a ledger row behind
	var count int64
	db.Model(&model.Product{}).Count(&count)
	if count != 0 {
		t.Errorf("products persisted: %d", count)
	}
	db.Model(&model.StockEntry{}).Count(&count)
	if count != 0 {
		t.Errorf("stock entries persisted: %d", count)
	}

	// A category owned by another account is equally not found
	cat, err := NewCategoryService(db).Create(2, CategoryInput{Name: "Tools"})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	_, err = products.Create(1, ProductInput{Name: "Widget", Price: 9.99, CategoryID: &cat.ID})
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("cross-account category error = %v, want not found", err)
	}
}

func TestProductUpdate(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db)

	p := mustCreateProduct(t, db, 1, "Widget", 9.99)
	other := mustCreateProduct(t, db, 1, "Gadget", 4.50)

	// Renaming onto another product's name conflicts
	_, err := products.Update(1, p.ID, ProductInput{Name: "Gadget", Price: 9.99})
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("rename conflict error = %v, want conflict", err)
	}

	// Keeping its own name is not a conflict
	updated, err := products.Update(1, p.ID, ProductInput{Name: "Widget", Description: "updated", Price: 12.50})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != 12.50 || updated.Description != "updated" {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := products.Update(1, other.ID+100, ProductInput{Name: "X", Price: 1}); !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("unknown id error = %v, want not found", err)
	}
}

func TestProductDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db)
	suppliers := NewSupplierService(db)

	p := mustCreateProduct(t, db, 1, "Widget", 9.99)
	sup, err := suppliers.Create(1, SupplierInput{Name: "Acme", Phone: "555-0100", Email: "sales@acme.test"})
	if err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	if err := suppliers.AddProduct(1, sup.ID, p.ID); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	orders := NewOrderService(db)
	orderID, err := orders.Create(1, []OrderLineInput{{ProductID: p.ID, Quantity: 2}})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}

	if err := products.Delete(1, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var count int64
	db.Model(&model.StockEntry{}).Where("product_id = ?", p.ID).Count(&count)
	if count != 0 {
		t.Error("stock entry survived product deletion")
	}
	db.Model(&model.SupplierProduct{}).Where("product_id = ?", p.ID).Count(&count)
	if count != 0 {
		t.Error("supplier association survived product deletion")
	}
	// Historical order lines stay
	db.Model(&model.OrderLine{}).Where("product_id = ?", p.ID).Count(&count)
	if count != 1 {
		t.Errorf("order lines = %d, want 1 retained", count)
	}
	// Completing the now-dangling order fails as an integrity fault
	if err := orders.Complete(1, orderID, nil); !apperr.IsKind(err, apperr.Integrity) {
		t.Errorf("complete after product deletion error = %v, want integrity", err)
	}
}

func TestProductList(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db)
	categories := NewCategoryService(db)

	cat, err := categories.Create(1, CategoryInput{Name: "Hardware"})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	if _, err := products.Create(1, ProductInput{Name: "Bolt", Price: 0.5, CategoryID: &cat.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	anvil := mustCreateProduct(t, db, 1, "Anvil", 100)
	if _, err := NewStockService(db, 5).Set(1, anvil.ID, 7); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mustCreateProduct(t, db, 2, "Other", 1) // different account

	rows, err := products.List(1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(rows), rows)
	}
	if rows[0].Name != "Anvil" || rows[0].StockQuantity != 7 || rows[0].CategoryName != "" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Name != "Bolt" || rows[1].CategoryName != "Hardware" {
		t.Errorf("row 1 = %+v", rows[1])
	}
}

func TestProductListByCategory(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db)
	categories := NewCategoryService(db)

	cat, err := categories.Create(1, CategoryInput{Name: "Hardware"})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	if _, err := products.Create(1, ProductInput{Name: "Bolt", Price: 0.5, CategoryID: &cat.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	mustCreateProduct(t, db, 1, "Anvil", 100)

	inCat, err := products.ListByCategory(1, cat.ID)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(inCat) != 1 || inCat[0].Name != "Bolt" {
		t.Errorf("category products = %+v", inCat)
	}

	// Category id 0 selects the uncategorized bucket
	uncat, err := products.ListByCategory(1, 0)
	if err != nil {
		t.Fatalf("ListByCategory 0: %v", err)
	}
	if len(uncat) != 1 || uncat[0].Name != "Anvil" {
		t.Errorf("uncategorized products = %+v", uncat)
	}
}
