package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthApp(s *Server) *fiber.App {
	app := fiber.New()
	api := app.Group("/api")
	auth := api.Group("/auth")
	auth.Post("/signup", s.Signup)
	auth.Post("/login", s.Login)

	protected := api.Group("", s.AuthRequired())
	protected.Get("/users/me", s.GetMyProfile)
	return app
}

func TestSignupLoginRoundtrip(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db)
	app := newAuthApp(s)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     "Ada Lovelace",
		"email":    "Ada@Example.com",
		"password": "Sufficiently$trong1",
		"location": "London",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var signup struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, resp, &signup)
	assert.NotEmpty(t, signup.Token)
	// Emails are normalized on registration
	assert.Equal(t, "ada@example.com", signup.User.Email)

	// Login with the original casing still works
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ADA@example.com",
		"password": "Sufficiently$trong1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &login)

	// The issued token opens protected routes
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	meResp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = meResp.Body.Close() }()
	assert.Equal(t, http.StatusOK, meResp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db)
	app := newAuthApp(s)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "Sufficiently$trong1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	// Wrong password and unknown email produce the same response
	for _, creds := range []map[string]string{
		{"email": "ada@example.com", "password": "wrong-password"},
		{"email": "nobody@example.com", "password": "Sufficiently$trong1"},
	} {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", creds)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var errResp models.ErrorResponse
		decodeBody(t, resp, &errResp)
		assert.Equal(t, "Invalid email or password", errResp.Error)
	}
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db)
	app := newAuthApp(s)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db)
	app := newAuthApp(s)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
