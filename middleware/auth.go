package middleware

import (
	"strings"

	"gocart/auth"
	"gocart/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const principalKey = "principal"

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	IsAdmin    bool   `json:"is_admin"`
	IsCustomer bool   `json:"is_customer"`
}

// Authenticate validates the Bearer token and loads the user behind it.
// The user is re-resolved on every request so deactivated accounts are
// cut off even while their token is still unexpired.
func Authenticate(database *gorm.DB, jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing or invalid authorization header",
			})
		}

		claims, err := auth.ValidateToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		var user models.User
		if err := database.Where("id = ? AND is_active = ?", claims.UserID, true).First(&user).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found or deactivated",
			})
		}

		c.Locals(principalKey, Principal{
			ID:         user.ID,
			Username:   user.Username,
			IsAdmin:    user.IsAdmin,
			IsCustomer: user.IsCustomer,
		})
		return c.Next()
	}
}

// RequireAdmin rejects requests whose principal lacks the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok || !p.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}
		return c.Next()
	}
}

// RequireCustomer rejects requests whose principal lacks the customer role.
func RequireCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok || !p.IsCustomer {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Customer access required",
			})
		}
		return c.Next()
	}
}

// GetPrincipal returns the principal stored by Authenticate.
func GetPrincipal(c *fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(principalKey).(Principal)
	return p, ok
}
