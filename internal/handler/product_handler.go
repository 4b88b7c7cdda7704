package handler

import (
	"net/http"

	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductHandler exposes the product CRUD endpoints
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler creates a product handler
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles retrieving all products with category names and stock levels
func (h *ProductHandler) List(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	rows, err := h.products.List(userID)
	if err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Products retrieved", zap.Int("count", len(rows)))
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// ListByCategory handles retrieving products filtered by category, with
// category id 0 selecting uncategorized products
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	// Category 0 means uncategorized, so a zero id is allowed here
	id, ok := pathID(c, "category_id")
	if !ok && c.Param("category_id") != "0" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	products, err := h.products.ListByCategory(userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": products})
}

// Get handles retrieving a single product by ID
func (h *ProductHandler) Get(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	product, err := h.products.Get(userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles creating a new product along with its stock entry
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	prometheus.RecordOperation("product", "create")

	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	product, err := h.products.Create(userID, req)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusCreated, product)
}

// Update handles updating an existing product
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	prometheus.RecordOperation("product", "update")

	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	product, err := h.products.Update(userID, id, req)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Product updated",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// Delete handles deleting a product and its stock entry
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	prometheus.RecordOperation("product", "delete")

	if err := h.products.Delete(userID, id); err != nil {
		return respondError(c, err)
	}

	log.Info("Product deleted", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}
