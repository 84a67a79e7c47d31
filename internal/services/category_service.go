package services

import (
	"fmt"
	"log"

	"shop/internal/models"
	"shop/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
	settings
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository, opts ...Option) *CategoryService {
	return &CategoryService{
		repo:     repo,
		settings: newSettings(opts),
	}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	return s.repo.GetAll()
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(id string) (*models.Category, error) {
	return s.repo.GetByID(id)
}

// CreateCategory creates a category stamped with the current time.
func (s *CategoryService) CreateCategory(name string) (*models.Category, error) {
	category := &models.Category{
		Name:      name,
		CreatedAt: s.now(),
	}
	if err := validateStruct(category); err != nil {
		return nil, fmt.Errorf("invalid category: %w", err)
	}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	log.Printf("Created category %s (%s)", category.Name, category.ID)
	s.publish("category.created", category.ID, category)
	return category, nil
}

// DeleteCategory deletes a category that no product references.
func (s *CategoryService) DeleteCategory(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish("category.deleted", id, nil)
	return nil
}
