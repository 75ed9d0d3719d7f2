package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keysai/keysai/app/controllers"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Static pages
	app.Get("/about", loggedInMiddleware, controllers.HandleAbout)
	app.Get("/pricing", loggedInMiddleware, controllers.HandlePricing)

	// Public catalog
	app.Get("/agents", loggedInMiddleware, controllers.HandleAgents)
	app.Get("/agents/:uuid", loggedInMiddleware, controllers.HandleAgentDetail)

	// Social OAuth
	app.Get("/auth/:provider", controllers.HandleOAuthBegin)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}
