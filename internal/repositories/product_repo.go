package repositories

import (
	"shop/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product with its category and images resolved.
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	// Create fails with models.ErrReference when the category is missing and
	// models.ErrUniqueness when the category already has a product of that name.
	Create(product *models.Product) error
	// Delete removes the product together with all of its images.
	Delete(id string) error
}
