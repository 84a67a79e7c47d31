package repositories

import "shop/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	Create(category *models.Category) error
	// Delete fails with models.ErrReferentialIntegrity while products reference the category.
	Delete(id string) error
}
