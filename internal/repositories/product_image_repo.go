package repositories

import "shop/internal/models"

// ProductImageRepository defines the interface for product image data access.
type ProductImageRepository interface {
	GetByID(id string) (*models.ProductImage, error)
	// ListByProduct returns the product's images, newest first.
	ListByProduct(productID string) ([]models.ProductImage, error)
	Create(image *models.ProductImage) error
	Delete(id string) error
}
