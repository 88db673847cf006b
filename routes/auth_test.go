package routes

import (
	"net/http"
	"testing"

	"gocart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerBody(username string) RegisterRequest {
	return RegisterRequest{
		FirstName: "Alice",
		LastName:  "Smith",
		Username:  username,
		Email:     username + "@example.com",
		Password:  "password123",
	}
}

func TestRegister(t *testing.T) {
	app, h := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/auth/", "", registerBody("alice"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, h.DB.Where("username = ?", "alice").First(&user).Error)
	assert.True(t, user.IsCustomer)
	assert.False(t, user.IsAdmin)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "password123", user.Password, "password must be stored hashed")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/auth/", "", registerBody("alice"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := registerBody("alice")
	body.Email = "other@example.com"
	resp = doRequest(t, app, http.MethodPost, "/auth/", "", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/auth/", "", registerBody("alice"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := registerBody("bob")
	body.Email = "alice@example.com"
	resp = doRequest(t, app, http.MethodPost, "/auth/", "", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/auth/", "", registerBody("alice"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/auth/token", "", LoginRequest{Username: "alice", Password: "password123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login LoginResponse
	decodeBody(t, resp, &login)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "bearer", login.TokenType)

	// The token works against an authenticated endpoint.
	resp = doRequest(t, app, http.MethodGet, "/auth/read_current_user", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		Principal struct {
			Username   string `json:"username"`
			IsCustomer bool   `json:"is_customer"`
		} `json:"principal"`
	}
	decodeBody(t, resp, &me)
	assert.Equal(t, "alice", me.Principal.Username)
	assert.True(t, me.Principal.IsCustomer)
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)

	doRequest(t, app, http.MethodPost, "/auth/", "", registerBody("alice"))

	resp := doRequest(t, app, http.MethodPost, "/auth/token", "", LoginRequest{Username: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginUnknownUser(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/auth/token", "", LoginRequest{Username: "ghost", Password: "password123"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginDeactivatedUser(t *testing.T) {
	app, h := newTestApp(t)

	doRequest(t, app, http.MethodPost, "/auth/", "", registerBody("alice"))
	require.NoError(t, h.DB.Model(&models.User{}).Where("username = ?", "alice").Update("is_active", false).Error)

	resp := doRequest(t, app, http.MethodPost, "/auth/token", "", LoginRequest{Username: "alice", Password: "password123"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDeactivatedUserTokenRejected(t *testing.T) {
	app, h := newTestApp(t)

	user, token := seedUser(t, h, "alice", false, true)
	require.NoError(t, h.DB.Model(&user).Update("is_active", false).Error)

	resp := doRequest(t, app, http.MethodGet, "/auth/read_current_user", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestReadCurrentUserWithoutToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/auth/read_current_user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
