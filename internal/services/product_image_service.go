package services

import (
	"errors"
	"fmt"

	"shop/internal/models"
	"shop/internal/repositories"
	"shop/internal/storage"
)

// ProductImageService handles business logic related to product images.
type ProductImageService struct {
	repo  repositories.ProductImageRepository
	files ImageStore
	settings
}

// NewProductImageService creates a new ProductImageService.
func NewProductImageService(repo repositories.ProductImageRepository, files ImageStore, opts ...Option) *ProductImageService {
	return &ProductImageService{
		repo:     repo,
		files:    files,
		settings: newSettings(opts),
	}
}

// GetImageByID retrieves a single image by its ID.
func (s *ProductImageService) GetImageByID(id string) (*models.ProductImage, error) {
	return s.repo.GetByID(id)
}

// CreateImage stores data as a new image of the product.
func (s *ProductImageService) CreateImage(productID, filename string, data []byte) (*models.ProductImage, error) {
	rel, err := s.files.SaveProductImage(filename, data)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyFile) || errors.Is(err, storage.ErrNotAnImage) {
			return nil, fmt.Errorf("invalid image %q: %w: %v", filename, models.ErrValidation, err)
		}
		return nil, fmt.Errorf("failed to store image %q: %w", filename, err)
	}

	image := &models.ProductImage{
		ProductID: productID,
		Image:     rel,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(image); err != nil {
		removeFile(s.files, *image)
		return nil, err
	}
	s.publish("product_image.created", image.ID, image)
	return image, nil
}

// DeleteImage deletes an image and its file.
func (s *ProductImageService) DeleteImage(id string) error {
	image, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	removeFile(s.files, *image)
	s.publish("product_image.deleted", id, nil)
	return nil
}
