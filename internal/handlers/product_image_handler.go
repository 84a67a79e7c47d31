package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"shop/internal/services"
)

// ProductImageHandler handles HTTP requests for product images.
type ProductImageHandler struct {
	service *services.ProductImageService
}

// NewProductImageHandler creates a new ProductImageHandler.
func NewProductImageHandler(service *services.ProductImageService) *ProductImageHandler {
	return &ProductImageHandler{
		service: service,
	}
}

// RegisterRoutes registers the image routes with the Fiber app.
func (h *ProductImageHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/products/:id/images", h.HandleUploadImage)
	router.Get("/images/:id", h.HandleGetImageByID)
	router.Delete("/images/:id", h.HandleDeleteImage)
}

// HandleUploadImage stores the multipart "image" field as a new product image.
func (h *ProductImageHandler) HandleUploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Failed to get uploaded file",
			"error":   err.Error(),
		})
	}

	src, err := file.Open()
	if err != nil {
		return respondError(c, "Failed to read uploaded file", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return respondError(c, "Failed to read uploaded file", err)
	}

	image, err := h.service.CreateImage(c.Params("id"), file.Filename, data)
	if err != nil {
		return respondError(c, "Could not create image", err)
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}

// HandleGetImageByID retrieves a single image record.
func (h *ProductImageHandler) HandleGetImageByID(c *fiber.Ctx) error {
	image, err := h.service.GetImageByID(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve image", err)
	}
	return c.JSON(image)
}

// HandleDeleteImage deletes an image and its file.
func (h *ProductImageHandler) HandleDeleteImage(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteImage(id); err != nil {
		return respondError(c, "Could not delete image", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Image %s deleted successfully", id),
	})
}
