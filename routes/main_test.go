package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gocart/auth"
	"gocart/config"
	"gocart/db"
	"gocart/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testConfig() config.Config {
	return config.Config{
		Port:         "0",
		JWTSecret:    "test-secret",
		TokenTTL:     time.Hour,
		BcryptCost:   bcrypt.MinCost,
		DatabasePath: "",
	}
}

// newTestApp builds a fiber app over a fresh in-memory database.
func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	app := fiber.New()
	h := SetupRoutes(app, database, testConfig())
	return app, h
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// seedUser inserts a user directly and returns a token for it.
func seedUser(t *testing.T, h *Handler, username string, isAdmin, isCustomer bool) (models.User, string) {
	t.Helper()

	hashed, err := auth.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		FirstName:  "Test",
		LastName:   "User",
		Username:   username,
		Email:      username + "@example.com",
		Password:   hashed,
		IsAdmin:    isAdmin,
		IsCustomer: isCustomer,
		IsActive:   true,
	}
	require.NoError(t, h.DB.Create(&user).Error)

	token, _, err := auth.GenerateToken(h.Cfg.JWTSecret, h.Cfg.TokenTTL, user.ID, user.Username, user.IsAdmin, user.IsCustomer)
	require.NoError(t, err)
	return user, token
}

func seedCategory(t *testing.T, h *Handler, name, slugStr string, parentID *uint, active bool) models.Category {
	t.Helper()
	category := models.Category{Name: name, Slug: slugStr, ParentID: parentID, IsActive: active}
	require.NoError(t, h.DB.Create(&category).Error)
	return category
}

func seedProduct(t *testing.T, h *Handler, name, slugStr string, categoryID uint, stock uint, active bool) models.Product {
	t.Helper()
	product := models.Product{
		Name:       name,
		Slug:       slugStr,
		Price:      9900,
		Stock:      stock,
		CategoryID: categoryID,
		IsActive:   active,
	}
	require.NoError(t, h.DB.Create(&product).Error)
	return product
}
