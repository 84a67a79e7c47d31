package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shop/internal/models"
)

// GORMProductImageRepository is a GORM implementation of ProductImageRepository.
type GORMProductImageRepository struct {
	db *gorm.DB
}

// NewGORMProductImageRepository creates a new instance of GORMProductImageRepository.
func NewGORMProductImageRepository(db *gorm.DB) *GORMProductImageRepository {
	return &GORMProductImageRepository{
		db: db,
	}
}

// GetByID retrieves a single image by its ID.
func (r *GORMProductImageRepository) GetByID(id string) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := r.db.First(&image, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("image with ID %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get image by ID %s: %w", id, err)
	}
	return &image, nil
}

// ListByProduct retrieves the images of a product, newest first.
func (r *GORMProductImageRepository) ListByProduct(productID string) ([]models.ProductImage, error) {
	images := []models.ProductImage{}
	if err := r.db.Where("product_id = ?", productID).Order(newestFirst).Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to get images of product %s: %w", productID, err)
	}
	return images, nil
}

// Create attaches a new image to an existing product.
func (r *GORMProductImageRepository) Create(image *models.ProductImage) error {
	if image.ID == "" {
		image.ID = uuid.New().String()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var products int64
		if err := tx.Model(&models.Product{}).Where("id = ?", image.ProductID).Count(&products).Error; err != nil {
			return fmt.Errorf("failed to check product %s: %w", image.ProductID, err)
		}
		if products == 0 {
			return fmt.Errorf("product with ID %s: %w", image.ProductID, models.ErrReference)
		}
		if err := tx.Create(image).Error; err != nil {
			return translateError("failed to create image", err, models.ErrReference)
		}
		return nil
	})
}

// Delete deletes an image by its ID.
func (r *GORMProductImageRepository) Delete(id string) error {
	res := r.db.Delete(&models.ProductImage{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("image with ID %s not found for deletion: %w", id, models.ErrNotFound)
	}
	return nil
}
