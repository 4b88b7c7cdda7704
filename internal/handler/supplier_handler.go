package handler

import (
	"net/http"

	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SupplierHandler exposes the supplier CRUD and association endpoints
type SupplierHandler struct {
	suppliers *service.SupplierService
}

// NewSupplierHandler creates a supplier handler
func NewSupplierHandler(suppliers *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

// List retrieves all suppliers for the account
func (h *SupplierHandler) List(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	suppliers, err := h.suppliers.List(userID)
	if err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Suppliers retrieved", zap.Int("count", len(suppliers)))
	return c.JSON(http.StatusOK, echo.Map{"data": suppliers})
}

// Get retrieves a single supplier by ID
func (h *SupplierHandler) Get(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supplier id"})
	}

	supplier, err := h.suppliers.Get(userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

// Create adds a new supplier
func (h *SupplierHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	prometheus.RecordOperation("supplier", "create")

	var req service.SupplierInput
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	supplier, err := h.suppliers.Create(userID, req)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Supplier created",
		zap.Uint("supplier_id", supplier.ID),
		zap.String("name", supplier.Name))
	return c.JSON(http.StatusCreated, supplier)
}

// Update modifies an existing supplier
func (h *SupplierHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supplier id"})
	}
	prometheus.RecordOperation("supplier", "update")

	var req service.SupplierInput
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	supplier, err := h.suppliers.Update(userID, id, req)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Supplier updated", zap.Uint("supplier_id", supplier.ID))
	return c.JSON(http.StatusOK, supplier)
}

// Delete removes a supplier and its product associations
func (h *SupplierHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supplier id"})
	}
	prometheus.RecordOperation("supplier", "delete")

	if err := h.suppliers.Delete(userID, id); err != nil {
		return respondError(c, err)
	}

	log.Info("Supplier deleted", zap.Uint("supplier_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "supplier deleted successfully"})
}

// AddProduct associates a product with a supplier
func (h *SupplierHandler) AddProduct(c echo.Context) error {
	log := logger.FromContext(c)
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	supplierID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supplier id"})
	}
	productID, ok := pathID(c, "product_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	if err := h.suppliers.AddProduct(userID, supplierID, productID); err != nil {
		return respondError(c, err)
	}

	log.Info("Product associated with supplier",
		zap.Uint("supplier_id", supplierID),
		zap.Uint("product_id", productID))
	return c.JSON(http.StatusCreated, echo.Map{"message": "product associated successfully"})
}

// RemoveProduct removes a supplier-product association
func (h *SupplierHandler) RemoveProduct(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	supplierID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supplier id"})
	}
	productID, ok := pathID(c, "product_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	if err := h.suppliers.RemoveProduct(userID, supplierID, productID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "association removed successfully"})
}

// Products lists the products associated with a supplier
func (h *SupplierHandler) Products(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	supplierID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supplier id"})
	}

	products, err := h.suppliers.ProductsBySupplier(userID, supplierID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": products})
}

// ByProduct lists the suppliers associated with a product
func (h *SupplierHandler) ByProduct(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	productID, ok := pathID(c, "product_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	suppliers, err := h.suppliers.SuppliersByProduct(userID, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": suppliers})
}
