package routes

import (
	"gocart/catalog"
	"gocart/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"gte=0"` // smallest currency unit
	ImageURL    string `json:"image_url"`
	Stock       uint   `json:"stock"`
	CategoryID  uint   `json:"category_id" validate:"required"`
}

// Product handlers
func (h *Handler) getAllProducts(c *fiber.Ctx) error {
	var products []models.Product
	if err := h.DB.Where("is_active = ? AND stock > 0", true).Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get products",
		})
	}

	if len(products) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "There are no products",
		})
	}

	return c.JSON(products)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var category models.Category
	if err := h.DB.Where("id = ? AND is_active = ?", req.CategoryID, true).First(&category).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		Rating:      0,
		IsActive:    true,
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		slugged, err := uniqueSlug(tx, &models.Product{}, req.Name, 0)
		if err != nil {
			return err
		}
		product.Slug = slugged
		return tx.Create(&product).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create product",
		})
	}

	h.Hub.Publish(Event{Type: "product.created", Slug: product.Slug})
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *Handler) getProductsByCategory(c *fiber.Ctx) error {
	categorySlug := c.Params("category_slug")

	var category models.Category
	if err := h.DB.Where("slug = ? AND is_active = ?", categorySlug, true).First(&category).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}

	ids, err := catalog.ClosureIDs(h.DB, category.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve category tree",
		})
	}

	var products []models.Product
	if err := h.DB.Where("category_id IN ? AND is_active = ? AND stock > 0", ids, true).Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get products",
		})
	}

	return c.JSON(products)
}

func (h *Handler) getProductDetail(c *fiber.Ctx) error {
	productSlug := c.Params("product_slug")

	var product models.Product
	if err := h.DB.Where("slug = ? AND is_active = ? AND stock > 0", productSlug, true).First(&product).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "There is no product found",
		})
	}

	return c.JSON(product)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	productSlug := c.Params("product_slug")

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var product models.Product
	if err := h.DB.Where("slug = ?", productSlug).First(&product).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "There is no product found",
		})
	}

	var category models.Category
	if err := h.DB.Where("id = ? AND is_active = ?", req.CategoryID, true).First(&category).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		slugged, err := uniqueSlug(tx, &models.Product{}, req.Name, product.ID)
		if err != nil {
			return err
		}
		return tx.Model(&product).Updates(map[string]interface{}{
			"name":        req.Name,
			"slug":        slugged,
			"description": req.Description,
			"price":       req.Price,
			"image_url":   req.ImageURL,
			"stock":       req.Stock,
			"category_id": req.CategoryID,
		}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update product",
		})
	}

	h.Hub.Publish(Event{Type: "product.updated", Slug: product.Slug})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
	})
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	productSlug := c.Params("product_slug")

	var product models.Product
	if err := h.DB.Where("slug = ?", productSlug).First(&product).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "There is no product found",
		})
	}

	if err := h.DB.Model(&product).Update("is_active", false).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete product",
		})
	}

	h.Hub.Publish(Event{Type: "product.deleted", Slug: product.Slug})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}
