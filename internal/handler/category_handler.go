package handler

import (
	"net/http"

	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CategoryHandler exposes the category CRUD endpoints
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler creates a category handler
func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List retrieves all categories with their product counts
func (h *CategoryHandler) List(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}

	rows, err := h.categories.List(userID)
	if err != nil {
		return respondError(c, err)
	}

	logger.FromContext(c).Info("Categories retrieved", zap.Int("count", len(rows)))
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// Get retrieves a specific category by ID
func (h *CategoryHandler) Get(c echo.Context) error {
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	category, err := h.categories.Get(userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// Create adds a new category
func (h *CategoryHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	prometheus.RecordOperation("category", "create")

	var req service.CategoryInput
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	category, err := h.categories.Create(userID, req)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// Update modifies an existing category
func (h *CategoryHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}
	prometheus.RecordOperation("category", "update")

	var req service.CategoryInput
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	category, err := h.categories.Update(userID, id, req)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Category updated",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusOK, category)
}

// Delete removes a category, detaching its products first
func (h *CategoryHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	userID, err := accountID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}
	prometheus.RecordOperation("category", "delete")

	if err := h.categories.Delete(userID, id); err != nil {
		return respondError(c, err)
	}

	log.Info("Category deleted", zap.Uint("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted successfully"})
}
