package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracingMiddlewareSetsTraceID(t *testing.T) {
	app := fiber.New()
	app.Use(TracingMiddleware())

	var traceID string
	app.Get("/ping", func(c *fiber.Ctx) error {
		traceID, _ = c.Locals("traceID").(string)
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, traceID)
	assert.Equal(t, traceID, resp.Header.Get("X-Trace-ID"))
}
