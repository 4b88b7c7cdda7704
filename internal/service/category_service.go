package service

import (
	"errors"
	"strings"

	"inventory-service/internal/apperr"
	"inventory-service/internal/model"

	"gorm.io/gorm"
)

// CategoryService manages product categories. Deleting a category keeps its
// products: their category reference is nulled before the category row goes.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a category service backed by db
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// CategoryInput carries the caller-settable category fields
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryRow is a category with its product count
type CategoryRow struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ProductCount int    `json:"product_count"`
}

// Create inserts a category with a per-account unique name
func (s *CategoryService) Create(userID uint, in CategoryInput) (*model.ProductCategory, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.New(apperr.Validation, "category name is required")
	}

	var count int64
	if err := s.db.Model(&model.ProductCategory{}).
		Where("name = ? AND user_id = ?", name, userID).
		Count(&count).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to check category name", err)
	}
	if count > 0 {
		return nil, apperr.New(apperr.Conflict, "a category with this name already exists")
	}

	category := model.ProductCategory{
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to create category", err)
	}
	return &category, nil
}

// Update modifies a category name/description with the same uniqueness check
func (s *CategoryService) Update(userID, categoryID uint, in CategoryInput) (*model.ProductCategory, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.New(apperr.Validation, "category name is required")
	}

	var category model.ProductCategory
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "category not found")
		}
		return nil, apperr.Wrap(apperr.Integrity, "failed to load category", err)
	}

	var count int64
	if err := s.db.Model(&model.ProductCategory{}).
		Where("name = ? AND user_id = ? AND id <> ?", name, userID, categoryID).
		Count(&count).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to check category name", err)
	}
	if count > 0 {
		return nil, apperr.New(apperr.Conflict, "a category with this name already exists")
	}

	category.Name = name
	category.Description = strings.TrimSpace(in.Description)
	if err := s.db.Save(&category).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to update category", err)
	}
	return &category, nil
}

// Delete nulls the category reference on every product in the category, then
// removes the category row, as one transaction. The reassignment runs first
// so stores with immediate referential integrity never see a dangling
// reference.
func (s *CategoryService) Delete(userID, categoryID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category model.ProductCategory
		if err := tx.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "category not found")
			}
			return apperr.Wrap(apperr.Integrity, "failed to load category", err)
		}

		if err := tx.Model(&model.Product{}).
			Where("category_id = ? AND user_id = ?", categoryID, userID).
			Update("category_id", nil).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to detach products", err)
		}

		if err := tx.Delete(&category).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to delete category", err)
		}
		return nil
	})
}

// Get returns a single category
func (s *CategoryService) Get(userID, categoryID uint) (*model.ProductCategory, error) {
	var category model.ProductCategory
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "category not found")
		}
		return nil, apperr.Wrap(apperr.Integrity, "failed to load category", err)
	}
	return &category, nil
}

// List returns the account's categories with product counts, ordered by name
func (s *CategoryService) List(userID uint) ([]CategoryRow, error) {
	var rows []CategoryRow
	err := s.db.Model(&model.ProductCategory{}).
		Select("product_categories.id, product_categories.name, product_categories.description, " +
			"COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.category_id = product_categories.id").
		Where("product_categories.user_id = ?", userID).
		Group("product_categories.id, product_categories.name, product_categories.description").
		Order("product_categories.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to list categories", err)
	}
	return rows, nil
}
