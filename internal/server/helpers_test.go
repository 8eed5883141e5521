package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		query        string
		defaultLimit int
		wantLimit    int
		wantOffset   int
	}{
		{"defaults", "", 20, 20, 0},
		{"explicit values", "limit=5&offset=10", 20, 5, 10},
		{"zero limit falls back", "limit=0", 20, 20, 0},
		{"negative offset clamped", "offset=-5", 20, 20, 0},
		{"limit capped", "limit=5000", 20, 100, 0},
		{"garbage ignored", "limit=abc&offset=xyz", 20, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var got Pagination
			app.Get("/", func(c *fiber.Ctx) error {
				got = parsePagination(c, tt.defaultLimit)
				return c.SendStatus(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantOffset, got.Offset)
		})
	}
}

func TestHumanizeParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		param string
		want  string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"swapId", "swap ID"},
		{"relatedUserId", "related user ID"},
		{"slug", "slug"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanizeParam(tt.param), "param %q", tt.param)
	}
}

func TestParseIDRejectsBadValues(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db)
	app := newAuthedApp(s, 1)

	for _, path := range []string{"/api/swaps/abc", "/api/swaps/0", "/api/swaps/-4"} {
		resp := doJSON(t, app, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "path %s", path)
	}
}
