package services

import (
	"fmt"
	"log"

	"shop/internal/models"
	"shop/internal/repositories"
)

// ImageStore keeps the files behind product images.
type ImageStore interface {
	SaveProductImage(filename string, data []byte) (string, error)
	Remove(path string) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	images repositories.ProductImageRepository
	files  ImageStore
	settings
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, images repositories.ProductImageRepository, files ImageStore, opts ...Option) *ProductService {
	return &ProductService{
		repo:     repo,
		images:   images,
		files:    files,
		settings: newSettings(opts),
	}
}

// GetAllProducts retrieves all products with their categories and images.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a product in an existing category.
func (s *ProductService) CreateProduct(categoryID, name string, price int64) (*models.Product, error) {
	product := &models.Product{
		CategoryID: categoryID,
		Name:       name,
		Price:      price,
		CreatedAt:  s.now(),
	}
	if err := validateStruct(product); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	log.Printf("Created product %s (%s) in category %s", product.Name, product.ID, product.CategoryID)
	s.publish("product.created", product.ID, map[string]any{
		"category_id": product.CategoryID,
		"name":        product.Name,
		"price":       product.Price,
	})
	return product, nil
}

// Images returns the images of a product, newest first. Unknown products
// have no images.
func (s *ProductService) Images(productID string) ([]models.ProductImage, error) {
	return s.images.ListByProduct(productID)
}

// DeleteProduct deletes a product together with its images and their files.
func (s *ProductService) DeleteProduct(id string) error {
	images, err := s.images.ListByProduct(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	for _, img := range images {
		removeFile(s.files, img)
	}
	s.publish("product.deleted", id, nil)
	return nil
}

func removeFile(files ImageStore, img models.ProductImage) {
	if files == nil {
		return
	}
	if err := files.Remove(img.Image); err != nil {
		log.Printf("Warning: failed to remove file %s of image %s: %v", img.Image, img.ID, err)
	}
}
