package service

import (
	"testing"
	"time"

	"inventory-service/internal/apperr"
	"inventory-service/internal/model"
)

func TestOrderLifecycle(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)

	widget := mustCreateProduct(t, db, 1, "Widget", 9.99)
	if got := stockQuantity(t, db, 1, widget.ID); got != 0 {
		t.Fatalf("new product stock = %d, want 0", got)
	}

	orderID, err := orders.Create(1, []OrderLineInput{{ProductID: widget.ID, Quantity: 3}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Pending order must not touch the ledger
	if got := stockQuantity(t, db, 1, widget.ID); got != 0 {
		t.Fatalf("stock after create = %d, want 0", got)
	}

	if err := orders.Complete(1, orderID, nil); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got := stockQuantity(t, db, 1, widget.ID); got != 3 {
		t.Fatalf("stock after complete = %d, want 3", got)
	}

	detail, err := orders.Get(1, orderID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.Status != model.OrderStatusCompleted {
		t.Errorf("status = %q, want %q", detail.Status, model.OrderStatusCompleted)
	}
	if detail.ReceivedDate == nil {
		t.Error("received date not set on completion")
	}
	if len(detail.Lines) != 1 || detail.Lines[0].ProductName != "Widget" || detail.Lines[0].Quantity != 3 {
		t.Errorf("unexpected lines: %+v", detail.Lines)
	}
}

func TestOrderCompleteTwice(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	widget := mustCreateProduct(t, db, 1, "Widget", 9.99)

	orderID, err := orders.Create(1, []OrderLineInput{{ProductID: widget.ID, Quantity: 5}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := orders.Complete(1, orderID, nil); err != nil {
		t.Fatalf("first Complete: %v", err)
	}

	err = orders.Complete(1, orderID, nil)
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("second Complete error = %v, want conflict", err)
	}
	// The failed second attempt must not increment again
	if got := stockQuantity(t, db, 1, widget.ID); got != 5 {
		t.Errorf("stock = %d, want 5", got)
	}
}

func TestOrderCreateValidation(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	widget := mustCreateProduct(t, db, 1, "Widget", 9.99)

	cases := []struct {
		name  string
		lines []OrderLineInput
	}{
		{"empty", nil},
		{"zero quantity", []OrderLineInput{{ProductID: widget.ID, Quantity: 0}}},
		{"negative quantity", []OrderLineInput{{ProductID: widget.ID, Quantity: -2}}},
		{"missing product id", []OrderLineInput{{Quantity: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := orders.Create(1, tc.lines)
			if !apperr.IsKind(err, apperr.Validation) {
				t.Fatalf("error = %v, want validation", err)
			}
		})
	}

	// Unknown product rolls the whole order back
	_, err := orders.Create(1, []OrderLineInput{
		{ProductID: widget.ID, Quantity: 1},
		{ProductID: 9999, Quantity: 1},
	})
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
	var count int64
	db.Model(&model.PurchaseOrder{}).Count(&count)
	if count != 0 {
		t.Errorf("orders persisted after failed create: %d", count)
	}
}

func TestOrderDelete(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	widget := mustCreateProduct(t, db, 1, "Widget", 9.99)

	pendingID, err := orders.Create(1, []OrderLineInput{{ProductID: widget.ID, Quantity: 2}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	completedID, err := orders.Create(1, []OrderLineInput{{ProductID: widget.ID, Quantity: 4}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := orders.Complete(1, completedID, nil); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	// Completed orders are immutable history
	if err := orders.Delete(1, completedID); !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("delete completed error = %v, want conflict", err)
	}

	if err := orders.Delete(1, pendingID); err != nil {
		t.Fatalf("Delete pending: %v", err)
	}
	// Deleted order cannot be completed afterwards
	if err := orders.Complete(1, pendingID, nil); !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("complete deleted error = %v, want conflict", err)
	}
	// Its stock was never touched
	if got := stockQuantity(t, db, 1, widget.ID); got != 4 {
		t.Errorf("stock = %d, want 4", got)
	}

	// Default listing hides deleted orders
	list, err := orders.List(1, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != completedID {
		t.Errorf("default list = %+v, want only completed order %d", list, completedID)
	}
	if list[0].ProductCount != 1 {
		t.Errorf("product count = %d, want 1", list[0].ProductCount)
	}

	deleted, err := orders.List(1, model.OrderStatusDeleted)
	if err != nil {
		t.Fatalf("List deleted: %v", err)
	}
	if len(deleted) != 1 || deleted[0].ID != pendingID {
		t.Errorf("deleted list = %+v, want order %d", deleted, pendingID)
	}
}

func TestOrderCompleteWithoutLines(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)

	// Forge a lineless pending order directly; the service refuses to create
	// one, but the completion path still has to reject it.
	order := model.PurchaseOrder{UserID: 1, OrderDate: time.Now(), Status: model.OrderStatusPending}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}

	err := orders.Complete(1, order.ID, nil)
	if !apperr.IsKind(err, apperr.Integrity) {
		t.Fatalf("error = %v, want integrity", err)
	}

	var reloaded model.PurchaseOrder
	db.First(&reloaded, order.ID)
	if reloaded.Status != model.OrderStatusPending {
		t.Errorf("status = %q, want pending after failed completion", reloaded.Status)
	}
}

func TestOrderCompleteExplicitReceivedDate(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	widget := mustCreateProduct(t, db, 1, "Widget", 9.99)

	orderID, err := orders.Create(1, []OrderLineInput{{ProductID: widget.ID, Quantity: 1}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	received := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if err := orders.Complete(1, orderID, &received); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	detail, err := orders.Get(1, orderID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.ReceivedDate == nil || !detail.ReceivedDate.Equal(received) {
		t.Errorf("received date = %v, want %v", detail.ReceivedDate, received)
	}
}

func TestOrderAccountIsolation(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	widget := mustCreateProduct(t, db, 1, "Widget", 9.99)

	orderID, err := orders.Create(1, []OrderLineInput{{ProductID: widget.ID, Quantity: 2}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Another account must see nothing, not a permission error
	if _, err := orders.Get(2, orderID); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("cross-account Get error = %v, want not found", err)
	}
	if err := orders.Complete(2, orderID, nil); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("cross-account Complete error = %v, want not found", err)
	}
	if err := orders.Delete(2, orderID); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("cross-account Delete error = %v, want not found", err)
	}

	// Account 2 cannot order account 1's product either
	if _, err := orders.Create(2, []OrderLineInput{{ProductID: widget.ID, Quantity: 1}}); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("cross-account Create error = %v, want not found", err)
	}
}
