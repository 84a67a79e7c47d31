package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"shop/internal/services"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: service,
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)
}

// HandleGetCategories lists all categories.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		return respondError(c, "Could not retrieve categories", err)
	}
	return c.JSON(categories)
}

// HandleGetCategoryByID retrieves a single category.
func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryByID(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve category", err)
	}
	return c.JSON(category)
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req createCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	category, err := h.service.CreateCategory(req.Name)
	if err != nil {
		return respondError(c, "Could not create category", err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleDeleteCategory deletes a category that no product uses.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteCategory(id); err != nil {
		return respondError(c, "Could not delete category", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Category %s deleted successfully", id),
	})
}
