package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shop/internal/services"
)

// ListingHandler serves the storefront page listing every product.
type ListingHandler struct {
	service *services.ProductService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(service *services.ProductService) *ListingHandler {
	return &ListingHandler{
		service: service,
	}
}

// RegisterRoutes registers the storefront routes with the Fiber app.
func (h *ListingHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleIndex)
}

// HandleIndex renders all products with their categories and images.
func (h *ListingHandler) HandleIndex(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, "Could not retrieve products", err)
	}
	return c.Render("index", fiber.Map{
		"Products": products,
	})
}
