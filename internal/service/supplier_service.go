package service

import (
	"errors"
	"regexp"
	"strings"

	"inventory-service/internal/apperr"
	"inventory-service/internal/model"

	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SupplierService manages suppliers and their product associations
type SupplierService struct {
	db *gorm.DB
}

// NewSupplierService creates a supplier service backed by db
func NewSupplierService(db *gorm.DB) *SupplierService {
	return &SupplierService{db: db}
}

// SupplierInput carries the caller-settable supplier fields
type SupplierInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (in *SupplierInput) normalize() (name, phone, email string, err error) {
	name = strings.TrimSpace(in.Name)
	phone = strings.TrimSpace(in.Phone)
	email = strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" {
		return "", "", "", apperr.New(apperr.Validation, "supplier name is required")
	}
	if phone == "" {
		return "", "", "", apperr.New(apperr.Validation, "supplier phone is required")
	}
	if !emailPattern.MatchString(email) {
		return "", "", "", apperr.New(apperr.Validation, "supplier email format is invalid")
	}
	return name, phone, email, nil
}

// checkUnique enforces the per-account uniqueness of name, phone and email.
// excludeID skips the supplier being updated.
func (s *SupplierService) checkUnique(tx *gorm.DB, userID uint, name, phone, email string, excludeID uint) error {
	type check struct {
		column  string
		value   string
		message string
	}
	checks := []check{
		{"name", name, "a supplier with this name already exists"},
		{"phone", phone, "this phone number is already registered"},
		{"email", email, "this email address is already registered"},
	}

	for _, ch := range checks {
		query := tx.Model(&model.Supplier{}).
			Where(ch.column+" = ? AND user_id = ?", ch.value, userID)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to check supplier uniqueness", err)
		}
		if count > 0 {
			return apperr.New(apperr.Conflict, ch.message)
		}
	}
	return nil
}

// Create inserts a supplier after validating the email format and the
// per-account uniqueness of name, phone and email
func (s *SupplierService) Create(userID uint, in SupplierInput) (*model.Supplier, error) {
	name, phone, email, err := in.normalize()
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(s.db, userID, name, phone, email, 0); err != nil {
		return nil, err
	}

	supplier := model.Supplier{UserID: userID, Name: name, Phone: phone, Email: email}
	if err := s.db.Create(&supplier).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to create supplier", err)
	}
	return &supplier, nil
}

// Update modifies a supplier with the same validation and uniqueness checks
func (s *SupplierService) Update(userID, supplierID uint, in SupplierInput) (*model.Supplier, error) {
	name, phone, email, err := in.normalize()
	if err != nil {
		return nil, err
	}

	var supplier model.Supplier
	if err := s.db.Where("id = ? AND user_id = ?", supplierID, userID).First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "supplier not found")
		}
		return nil, apperr.Wrap(apperr.Integrity, "failed to load supplier", err)
	}

	if err := s.checkUnique(s.db, userID, name, phone, email, supplierID); err != nil {
		return nil, err
	}

	supplier.Name = name
	supplier.Phone = phone
	supplier.Email = email
	if err := s.db.Save(&supplier).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to update supplier", err)
	}
	return &supplier, nil
}

// Delete removes a supplier together with its product associations
func (s *SupplierService) Delete(userID, supplierID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var supplier model.Supplier
		if err := tx.Where("id = ? AND user_id = ?", supplierID, userID).First(&supplier).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "supplier not found")
			}
			return apperr.Wrap(apperr.Integrity, "failed to load supplier", err)
		}

		if err := tx.Where("supplier_id = ? AND user_id = ?", supplierID, userID).
			Delete(&model.SupplierProduct{}).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to remove product associations", err)
		}
		if err := tx.Delete(&supplier).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to delete supplier", err)
		}
		return nil
	})
}

// Get returns a single supplier
func (s *SupplierService) Get(userID, supplierID uint) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := s.db.Where("id = ? AND user_id = ?", supplierID, userID).First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "supplier not found")
		}
		return nil, apperr.Wrap(apperr.Integrity, "failed to load supplier", err)
	}
	return &supplier, nil
}

// List returns the account's suppliers ordered by name
func (s *SupplierService) List(userID uint) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&suppliers).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to list suppliers", err)
	}
	return suppliers, nil
}

// AddProduct associates a product with a supplier. Both must exist under the
// account; the association must not already exist.
func (s *SupplierService) AddProduct(userID, supplierID, productID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Supplier{}).
			Where("id = ? AND user_id = ?", supplierID, userID).
			Count(&count).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to verify supplier", err)
		}
		if count == 0 {
			return apperr.New(apperr.NotFound, "supplier not found")
		}

		if err := tx.Model(&model.Product{}).
			Where("id = ? AND user_id = ?", productID, userID).
			Count(&count).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to verify product", err)
		}
		if count == 0 {
			return apperr.New(apperr.NotFound, "product not found")
		}

		if err := tx.Model(&model.SupplierProduct{}).
			Where("supplier_id = ? AND product_id = ? AND user_id = ?", supplierID, productID, userID).
			Count(&count).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to check association", err)
		}
		if count > 0 {
			return apperr.New(apperr.Conflict, "product is already associated with this supplier")
		}

		assoc := model.SupplierProduct{UserID: userID, SupplierID: supplierID, ProductID: productID}
		if err := tx.Create(&assoc).Error; err != nil {
			return apperr.Wrap(apperr.Integrity, "failed to associate product", err)
		}
		return nil
	})
}

// RemoveProduct removes a supplier-product association
func (s *SupplierService) RemoveProduct(userID, supplierID, productID uint) error {
	res := s.db.Where("supplier_id = ? AND product_id = ? AND user_id = ?", supplierID, productID, userID).
		Delete(&model.SupplierProduct{})
	if res.Error != nil {
		return apperr.Wrap(apperr.Integrity, "failed to remove association", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "association not found")
	}
	return nil
}

// SuppliersByProduct returns suppliers associated with a product, ordered by
// name. The product must exist under the account.
func (s *SupplierService) SuppliersByProduct(userID, productID uint) ([]model.Supplier, error) {
	var count int64
	if err := s.db.Model(&model.Product{}).
		Where("id = ? AND user_id = ?", productID, userID).
		Count(&count).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to verify product", err)
	}
	if count == 0 {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}

	var suppliers []model.Supplier
	err := s.db.Model(&model.Supplier{}).
		Joins("JOIN supplier_products ON supplier_products.supplier_id = suppliers.id").
		Where("supplier_products.product_id = ? AND suppliers.user_id = ?", productID, userID).
		Order("suppliers.name ASC").
		Find(&suppliers).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to list suppliers", err)
	}
	return suppliers, nil
}

// ProductsBySupplier returns products associated with a supplier, ordered by
// name. The supplier must exist under the account.
func (s *SupplierService) ProductsBySupplier(userID, supplierID uint) ([]model.Product, error) {
	var count int64
	if err := s.db.Model(&model.Supplier{}).
		Where("id = ? AND user_id = ?", supplierID, userID).
		Count(&count).Error; err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to verify supplier", err)
	}
	if count == 0 {
		return nil, apperr.New(apperr.NotFound, "supplier not found")
	}

	var products []model.Product
	err := s.db.Model(&model.Product{}).
		Joins("JOIN supplier_products ON supplier_products.product_id = products.id").
		Where("supplier_products.supplier_id = ? AND products.user_id = ?", supplierID, userID).
		Order("products.name ASC").
		Find(&products).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Integrity, "failed to list products", err)
	}
	return products, nil
}
