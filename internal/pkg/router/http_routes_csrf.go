package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/keysai/keysai/app/controllers"
	"github.com/keysai/keysai/internal/pkg/env"
	"github.com/keysai/keysai/internal/pkg/middleware"
)

func formCSRFConfig() csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}
}

// newFormGroup wraps the app in the cors+csrf middleware shared by every
// HTML form route, the admin panel included.
func newFormGroup(app *fiber.App) fiber.Router {
	return app.Group("", cors.New(), csrf.New(formCSRFConfig()))
}

func (h HttpRouter) registerFormRoutes(group fiber.Router) {
	group.Get("/", loggedInMiddleware, controllers.HandleStart)

	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Get("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/logout", middleware.RequireAuth, controllers.HandleOAuthLogout)

	group.Get("/contact", loggedInMiddleware, controllers.HandleContact)
	group.Post("/contact", loggedInMiddleware, controllers.HandleContact)

	// Subscription lifecycle
	group.Post("/agents/:uuid/subscribe", middleware.RequireAuth, controllers.HandleSubscribe)
	group.Post("/subscriptions/:uuid/cancel", middleware.RequireAuth, controllers.HandleSubscriptionCancel)

	// User area
	group.Get("/dashboard", middleware.RequireAuth, controllers.HandleUserDashboard)
	group.Get("/user/profile", middleware.RequireAuth, controllers.HandleUserProfile)
	group.Post("/user/profile", middleware.RequireAuth, controllers.HandleUserProfile)
	group.Get("/user/settings", middleware.RequireAuth, controllers.HandleUserSettings)
	group.Post("/user/settings", middleware.RequireAuth, controllers.HandleUserSettings)
}
