package routes

import (
	"gocart/catalog"
	"gocart/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name     string `json:"name" validate:"required"`
	ParentID *uint  `json:"parent_id"`
}

// Category handlers
func (h *Handler) getAllCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := h.DB.Where("is_active = ?", true).Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get categories",
		})
	}
	return c.JSON(categories)
}

func (h *Handler) createCategory(c *fiber.Ctx) error {
	var req CategoryRequest
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

	if req.ParentID != nil {
		var parent models.Category
		if err := h.DB.Where("id = ? AND is_active = ?", *req.ParentID, true).First(&parent).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Parent category not found",
			})
		}
	}

	category := models.Category{
		Name:     req.Name,
		ParentID: req.ParentID,
		IsActive: true,
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		slugged, err := uniqueSlug(tx, &models.Category{}, req.Name, 0)
		if err != nil {
			return err
		}
		category.Slug = slugged
		return tx.Create(&category).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create category",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *Handler) updateCategory(c *fiber.Ctx) error {
	categorySlug := c.Params("category_slug")

	var req CategoryRequest
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
	if err := h.DB.Where("slug = ?", categorySlug).First(&category).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}

	if req.ParentID != nil {
		var parent models.Category
		if err := h.DB.Where("id = ? AND is_active = ?", *req.ParentID, true).First(&parent).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Parent category not found",
			})
		}

		// A category must never end up inside its own subtree.
		var all []models.Category
		if err := h.DB.Find(&all).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to load categories",
			})
		}
		if catalog.WouldCycle(all, category.ID, *req.ParentID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Parent change would create a cycle",
			})
		}
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		slugged, err := uniqueSlug(tx, &models.Category{}, req.Name, category.ID)
		if err != nil {
			return err
		}
		return tx.Model(&category).Updates(map[string]interface{}{
			"name":      req.Name,
			"slug":      slugged,
			"parent_id": req.ParentID,
		}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update category",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Category updated successfully",
	})
}

func (h *Handler) deleteCategory(c *fiber.Ctx) error {
	categorySlug := c.Params("category_slug")

	var category models.Category
	if err := h.DB.Where("slug = ? AND is_active = ?", categorySlug, true).First(&category).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}

	// Soft delete only; children keep their own is_active flag.
	if err := h.DB.Model(&category).Update("is_active", false).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete category",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Category deleted successfully",
	})
}
