package service

import (
	"errors"
	"strings"

	"inventory-service/internal/apperr"
	"inventory-service/internal/model"

	"gorm.io/gorm"
)

// ProductService manages product master data. Creating a product provisions
// its stock ledger row; deleting one removes the ledger row and supplier
// links in the same transaction.
type ProductService struct {
	db *gorm.DB
}

// NewProductService creates a product service backed by db
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// ProductInput carries the caller-settable product fields
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  *uint   `json:"category_id"`
}

// ProductRow is a product joined with its category name and stock quantity
type ProductRow struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	CategoryID    *uint   `json:"category_id"`
	CategoryName  string  `json:"category_name"`
	StockQuantity int     `json:"stock_quantity"`
}

func (in *ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.New(apperr.Validation, "product name is required")
	}
	if in.Price <= 0 {
		return apperr.New(apperr.Validation, "product price must be positive")
	}
	return nil
}

// Create inserts a product and its zero-quantity stock entry as one
// transaction. The name must be unique within the account and a referenced
// category must exist under it.
func (s *ProductService) Create(userID uint, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	var product model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Product{}).
			Where("name = ? AND user_id = ?", name, userID).
			Count(&count).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to check product name", err)
		}
		if count > 0 {
			return apperr.New(apperr.Conflict, "a product with this name already exists")
		}

		if in.CategoryID != nil {
			if err := requireCategory(tx, userID, *in.CategoryID); err != nil {
				return err
			}
		}

		product = model.Product{
			UserID:      userID,
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			Price:       in.Price,
			CategoryID:  in.CategoryID,
		}
		if err := tx.Create(&product).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to create product", err)
		}

		entry := model.StockEntry{UserID: userID, ProductID: product.ID, Quantity: 0}
		if err := tx.Create(&entry).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to create stock entry", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Update modifies an existing product with the same checks as Create
func (s *ProductService) Update(userID, productID uint, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	var product model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", productID, userID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "product not found")
			}
			return apperr.Wrap(apperr.Integrity, "failed to load product", err)
		}

		var count int64
		if err := tx.Model(&model.Product{}).
			Where("name = ? AND user_id = ? AND id <> ?", name, userID, productID).
			Count(&count).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to check product name", err)
		}
		if count > 0 {
			return apperr.New(apperr.Conflict, "a product with this name already exists")
		}

		if in.CategoryID != nil {
			if err := requireCategory(tx, userID, *in.CategoryID); err != nil {
				return err
			}
		}

		product.Name = name
		product.Description = strings.TrimSpace(in.Description)
		product.Price = in.Price
		product.CategoryID = in.CategoryID
		if err := tx.Save(&product).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to update product", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product together with its stock entry and supplier
// associations. Historical order lines stay for audit.
func (s *ProductService) Delete(userID, productID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Where("id = ? AND user_id = ?", productID, userID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "product not found")
			}
			return apperr.Wrap(apperr.Integrity, "failed to load product", err)
		}

		if err := tx.Where("product_id = ? AND user_id = ?", productID, userID).
			Delete(&model.SupplierProduct{}).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to remove supplier associations", err)
		}
		if err := tx.Where("product_id = ? AND user_id = ?", productID, userID).
			Delete(&model.StockEntry{}).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to remove stock entry", err)
		}
		if err := tx.Delete(&product).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to delete product", err)
		}
		return nil
	})
}

// Get returns a single product
func (s *ProductService) Get(userID, productID uint) (*model.Product, error) {
	var product model.Product
	if err := s.db.Where("id = ? AND user_id = ?", productID, userID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, apperr.Wrap(apperr.Integrity, "failed to load product", err)
	}
	return &product, nil
}

// List returns the account's products joined with category names and stock
// quantities, ordered by name
func (s *ProductService) List(userID uint) ([]ProductRow, error) {
	var rows []ProductRow
	err := s.db.Model(&model.Product{}).
		Select("products.id, products.name, products.description, products.price, products.category_id, " +
			"COALESCE(product_categories.name, '') AS category_name, " +
			"COALESCE(stock_entries.quantity, 0) AS stock_quantity").
		Joins("LEFT JOIN product_categories ON product_categories.id = products.category_id").
		Joins("LEFT JOIN stock_entries ON stock_entries.product_id = products.id").
		Where("products.user_id = ?", userID).
		Order("products.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to list products", err)
	}
	return rows, nil
}

// ListByCategory returns the account's products in a category. Category id 0
// selects uncategorized products.
func (s *ProductService) ListByCategory(userID, categoryID uint) ([]model.Product, error) {
	query := s.db.Where("user_id = ?", userID)
	if categoryID == 0 {
		query = query.Where("category_id IS NULL")
	} else {
		query = query.Where("category_id = ?", categoryID)
	}

	var products []model.Product
	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to list products", err)
	}
	return products, nil
}

func requireCategory(tx *gorm.DB, userID, categoryID uint) error {
	var count int64
	if err := tx.Model(&model.ProductCategory{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error; err != nil {
		return apperr.Wrap(apperr.Integrity, "failed to verify category", err)
	}
	if count == 0 {
		return apperr.New(apperr.NotFound, "category not found")
	}
	return nil
}
