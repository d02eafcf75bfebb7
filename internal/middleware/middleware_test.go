package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inventory/internal/logger"
	"inventory/internal/middleware"
	"inventory/internal/models"
	"inventory/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newApp(log *logger.Logger) *fiber.App {
	auth := services.NewAuthService(nil, secret, time.Hour)
	app := fiber.New()
	app.Use(requestid.New(), middleware.RequestLogger(log))
	app.Get("/me", middleware.AuthRequired(auth, log), func(c *fiber.Ctx) error {
		actor := middleware.Actor(c)
		return c.JSON(fiber.Map{"user_id": actor.UserID, "role": actor.Role})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	app := newApp(logger.Nop())
	valid := signed(t, jwt.MapClaims{"user_id": "u-1", "username": "alice", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Token " + valid, fiber.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", fiber.StatusUnauthorized},
		{"valid", "Bearer " + valid, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+valid)
	resp, err := app.Test(req)
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u-1", body["user_id"])
	assert.Equal(t, string(models.RoleAdmin), body["role"])
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{ServiceName: "test", Level: zerolog.InfoLevel, Output: &buf})
	app := newApp(log)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var start, done map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &start))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &done))
	assert.Equal(t, "request.start", start["message"])
	assert.Equal(t, "/me", start["path"])
	assert.NotEmpty(t, start["request_id"])
	assert.Equal(t, "request.complete", done["message"])
	assert.EqualValues(t, 401, done["status"])
}
