package routes

import (
	"gocart/config"
	"gocart/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

// Handler carries the shared dependencies of every route handler.
type Handler struct {
	DB  *gorm.DB
	Cfg config.Config
	Hub *Hub
}

// SetupRoutes mounts the full HTTP surface on the app.
func SetupRoutes(app *fiber.App, database *gorm.DB, cfg config.Config) *Handler {
	h := &Handler{DB: database, Cfg: cfg, Hub: NewHub()}
	go h.Hub.Run()

	authed := middleware.Authenticate(database, cfg.JWTSecret)
	admin := middleware.RequireAdmin()
	customer := middleware.RequireCustomer()

	// Catalog event feed
	app.Get("/ws", h.serveWS())

	// Image upload route
	app.Post("/upload", authed, admin, h.uploadImage)

	// Auth routes
	authGroup := app.Group("/auth")
	authGroup.Post("/", h.register)
	authGroup.Post("/token", h.login)
	authGroup.Get("/read_current_user", authed, h.readCurrentUser)

	// Category routes
	categories := app.Group("/categories")
	categories.Get("/", h.getAllCategories)
	categories.Post("/", authed, admin, h.createCategory)
	categories.Put("/:category_slug", authed, admin, h.updateCategory)
	categories.Delete("/:category_slug", authed, admin, h.deleteCategory)

	// Product routes. The detail route is registered before the
	// category-slug route so it wins the match.
	products := app.Group("/products")
	products.Get("/", h.getAllProducts)
	products.Post("/", authed, admin, h.createProduct)
	products.Get("/detail/:product_slug", h.getProductDetail)
	products.Get("/:category_slug", h.getProductsByCategory)
	products.Put("/:product_slug", authed, admin, h.updateProduct)
	products.Delete("/:product_slug", authed, admin, h.deleteProduct)

	// Review routes
	reviews := app.Group("/reviews")
	reviews.Get("/", h.getAllReviews)
	reviews.Get("/:product_slug", h.getProductReviews)
	reviews.Post("/:product_slug/reviews", authed, customer, h.createReview)
	reviews.Delete("/:review_id", authed, h.deleteReview)

	return h
}
