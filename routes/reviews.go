package routes

import (
	"database/sql"
	"math"
	"time"

	"gocart/middleware"
	"gocart/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReviewRequest struct {
	Grade   int    `json:"grade" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// recomputeRating rewrites the product's aggregate rating from the grades
// of its currently active reviews, 0 when none remain. Must run inside the
// same transaction as the review mutation so concurrent reviews cannot
// produce a lost update.
func recomputeRating(tx *gorm.DB, productID uint) error {
	var avg sql.NullFloat64
	row := tx.Model(&models.Review{}).
		Where("product_id = ? AND is_active = ?", productID, true).
		Select("AVG(grade)").Row()
	if err := row.Scan(&avg); err != nil {
		return err
	}

	rating := 0.0
	if avg.Valid {
		rating = math.Round(avg.Float64*10) / 10
	}
	return tx.Model(&models.Product{}).Where("id = ?", productID).Update("rating", rating).Error
}

// Review handlers
func (h *Handler) getAllReviews(c *fiber.Ctx) error {
	var reviews []models.Review
	if err := h.DB.Where("is_active = ?", true).Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get reviews",
		})
	}

	if len(reviews) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Reviews not found",
		})
	}

	return c.JSON(reviews)
}

func (h *Handler) getProductReviews(c *fiber.Ctx) error {
	productSlug := c.Params("product_slug")

	var product models.Product
	if err := h.DB.Where("slug = ? AND is_active = ?", productSlug, true).First(&product).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	var reviews []models.Review
	if err := h.DB.Where("product_id = ? AND is_active = ?", product.ID, true).Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get reviews",
		})
	}

	// An empty review set is reported as not-found, not as an empty list.
	if len(reviews) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Reviews not found",
		})
	}

	return c.JSON(reviews)
}

func (h *Handler) createReview(c *fiber.Ctx) error {
	productSlug := c.Params("product_slug")

	principal, ok := middleware.GetPrincipal(c)
	if !ok || !principal.IsCustomer {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Customer access required",
		})
	}

	var req ReviewRequest
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
	if err := h.DB.Where("slug = ? AND is_active = ?", productSlug, true).First(&product).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	review := models.Review{
		UserID:      principal.ID,
		ProductID:   product.ID,
		Comment:     req.Comment,
		CommentDate: time.Now().UTC(),
		Grade:       req.Grade,
		IsActive:    true,
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return recomputeRating(tx, product.ID)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create review",
		})
	}

	h.Hub.Publish(Event{Type: "review.created", Slug: product.Slug})
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *Handler) deleteReview(c *fiber.Ctx) error {
	reviewID, err := c.ParamsInt("review_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review id",
		})
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not authenticated",
		})
	}

	var review models.Review
	if err := h.DB.First(&review, reviewID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found",
		})
	}

	if !principal.IsAdmin && principal.ID != review.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the author or an admin can delete a review",
		})
	}

	// Deleting twice is an error, not an idempotent no-op.
	if !review.IsActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Review already deactivated",
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&review).Update("is_active", false).Error; err != nil {
			return err
		}
		return recomputeRating(tx, review.ProductID)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete review",
		})
	}

	h.Hub.Publish(Event{Type: "review.deleted", ID: review.ID})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Review deleted successfully",
	})
}
