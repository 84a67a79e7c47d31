package repositories

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"shop/internal/models"
)

// MemoryStore is an in-memory catalog. Its three repository views share one
// lock so cross-entity checks (references, cascades) are atomic.
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[string]models.Category
	products   map[string]models.Product
	images     map[string]models.ProductImage
}

// NewMemoryStore creates a new, empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories: make(map[string]models.Category),
		products:   make(map[string]models.Product),
		images:     make(map[string]models.ProductImage),
	}
}

// Categories returns the CategoryRepository view of the store.
func (s *MemoryStore) Categories() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{store: s}
}

// Products returns the ProductRepository view of the store.
func (s *MemoryStore) Products() *MemoryProductRepository {
	return &MemoryProductRepository{store: s}
}

// Images returns the ProductImageRepository view of the store.
func (s *MemoryStore) Images() *MemoryProductImageRepository {
	return &MemoryProductImageRepository{store: s}
}

// imagesOf must be called with the lock held.
func (s *MemoryStore) imagesOf(productID string) []models.ProductImage {
	images := []models.ProductImage{}
	for _, img := range s.images {
		if img.ProductID == productID {
			images = append(images, img)
		}
	}
	sort.Slice(images, func(i, j int) bool {
		if !images[i].CreatedAt.Equal(images[j].CreatedAt) {
			return images[i].CreatedAt.After(images[j].CreatedAt)
		}
		return images[i].ID > images[j].ID
	})
	return images
}

// resolve must be called with the lock held.
func (s *MemoryStore) resolve(p models.Product) models.Product {
	if c, ok := s.categories[p.CategoryID]; ok {
		p.Category = &c
	}
	p.Images = s.imagesOf(p.ID)
	return p
}

// MemoryCategoryRepository is an in-memory implementation of CategoryRepository.
type MemoryCategoryRepository struct {
	store *MemoryStore
}

// GetAll returns all categories.
func (r *MemoryCategoryRepository) GetAll() ([]models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	categoryList := make([]models.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		categoryList = append(categoryList, c)
	}
	return categoryList, nil
}

// GetByID returns a category by its ID.
func (r *MemoryCategoryRepository) GetByID(id string) (*models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	category, ok := r.store.categories[id]
	if !ok {
		return nil, fmt.Errorf("category with ID %s: %w", id, models.ErrNotFound)
	}
	return &category, nil
}

// Create adds a new category.
func (r *MemoryCategoryRepository) Create(category *models.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if _, ok := r.store.categories[category.ID]; ok {
		return fmt.Errorf("category with ID %s: %w", category.ID, models.ErrUniqueness)
	}
	r.store.categories[category.ID] = *category
	return nil
}

// Delete removes a category by its ID unless a product still references it.
func (r *MemoryCategoryRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[id]; !ok {
		return fmt.Errorf("category with ID %s not found for deletion: %w", id, models.ErrNotFound)
	}
	for _, p := range r.store.products {
		if p.CategoryID == id {
			return fmt.Errorf("category %s is used by product %s: %w", id, p.ID, models.ErrReferentialIntegrity)
		}
	}
	delete(r.store.categories, id)
	return nil
}

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	store *MemoryStore
}

// GetAll returns all products.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		productList = append(productList, r.store.resolve(p))
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, models.ErrNotFound)
	}
	product = r.store.resolve(product)
	return &product, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	category, ok := r.store.categories[product.CategoryID]
	if !ok {
		return fmt.Errorf("category with ID %s: %w", product.CategoryID, models.ErrReference)
	}
	for _, p := range r.store.products {
		if p.CategoryID == product.CategoryID && p.Name == product.Name {
			return fmt.Errorf("product %q in category %s: %w", product.Name, category.Name, models.ErrUniqueness)
		}
	}

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	stored := *product
	stored.Category = nil
	stored.Images = nil
	r.store.products[product.ID] = stored

	product.Category = &category
	product.Images = []models.ProductImage{}
	return nil
}

// Delete removes a product and its images.
func (r *MemoryProductRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[id]; !ok {
		return fmt.Errorf("product with ID %s not found for deletion: %w", id, models.ErrNotFound)
	}
	for imageID, img := range r.store.images {
		if img.ProductID == id {
			delete(r.store.images, imageID)
		}
	}
	delete(r.store.products, id)
	return nil
}

// MemoryProductImageRepository is an in-memory implementation of ProductImageRepository.
type MemoryProductImageRepository struct {
	store *MemoryStore
}

// GetByID returns an image by its ID.
func (r *MemoryProductImageRepository) GetByID(id string) (*models.ProductImage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	image, ok := r.store.images[id]
	if !ok {
		return nil, fmt.Errorf("image with ID %s: %w", id, models.ErrNotFound)
	}
	return &image, nil
}

// ListByProduct returns the images of a product, newest first.
func (r *MemoryProductImageRepository) ListByProduct(productID string) ([]models.ProductImage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.imagesOf(productID), nil
}

// Create attaches a new image to an existing product.
func (r *MemoryProductImageRepository) Create(image *models.ProductImage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[image.ProductID]; !ok {
		return fmt.Errorf("product with ID %s: %w", image.ProductID, models.ErrReference)
	}
	if image.ID == "" {
		image.ID = uuid.New().String()
	}
	r.store.images[image.ID] = *image
	return nil
}

// Delete removes an image by its ID.
func (r *MemoryProductImageRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.images[id]; !ok {
		return fmt.Errorf("image with ID %s not found for deletion: %w", id, models.ErrNotFound)
	}
	delete(r.store.images, id)
	return nil
}
