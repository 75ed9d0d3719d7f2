package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keysai/keysai/internal/pkg/roles"
	"github.com/keysai/keysai/internal/pkg/usercontext"
)

// appWithActor builds a test app whose requests carry the given user context,
// with a user page behind RequireAuth and an admin page behind RequireAdmin.
func appWithActor(ctx usercontext.UserContext) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("USER_CONTEXT", ctx)
		return c.Next()
	})
	app.Get("/dashboard", RequireAuth, func(c *fiber.Ctx) error {
		return c.SendString("dashboard page")
	})
	app.Get("/admin", RequireAdmin, func(c *fiber.Ctx) error {
		return c.SendString("admin panel")
	})
	return app
}

var (
	anonymousActor = usercontext.UserContext{IsLoggedIn: false, Role: roles.RoleUser}
	plainUser = usercontext.UserContext{UserID: 42, Username: "Jamie Doe", IsLoggedIn: true, Role: roles.RoleUser}
	adminUser = usercontext.UserContext{UserID: 1, Username: "Admin", IsLoggedIn: true, Role: roles.RoleAdmin}
)

func TestRequireAuthRedirectsAnonymousToLogin(t *testing.T) {
	app := appWithActor(anonymousActor)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRequireAuthPassesLoggedInUser(t *testing.T) {
	app := appWithActor(plainUser)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdminGate(t *testing.T) {
	tests := []struct {
		name         string
		actor        usercontext.UserContext
		wantStatus   int
		wantLocation string
	}{
		{name: "anonymous redirected to login", actor: anonymousActor, wantStatus: fiber.StatusSeeOther, wantLocation: "/login"},
		{name: "plain user redirected to dashboard", actor: plainUser, wantStatus: fiber.StatusSeeOther, wantLocation: "/dashboard"},
		{name: "admin rendered", actor: adminUser, wantStatus: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := appWithActor(tt.actor)

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/admin", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantLocation, resp.Header.Get("Location"))

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			if tt.wantStatus == fiber.StatusOK {
				assert.Contains(t, string(body), "admin panel")
			} else {
				assert.NotContains(t, string(body), "admin panel")
			}
		})
	}
}
