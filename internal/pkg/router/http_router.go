package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keysai/keysai/internal/pkg/middleware"
	"github.com/keysai/keysai/internal/pkg/oauth"
	"github.com/keysai/keysai/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// UserContext runs first so every later handler sees the identity.
	app.Use(middleware.UserContextMiddleware)

	h.registerPublicRoutes(app)

	// Every state-changing form route, the admin panel included, lives
	// behind one shared cors+csrf group.
	form := newFormGroup(app)
	h.registerFormRoutes(form)
	h.registerAdminRoutes(form)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContextMiddleware already populated the request context.
	return c.Next()
}
