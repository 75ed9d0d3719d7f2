package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keysai/keysai/app/controllers"
	"github.com/keysai/keysai/internal/pkg/middleware"
)

// registerAdminRoutes attaches the admin panel to the form group so its
// mutations carry CSRF validation on top of the role gate.
func (h HttpRouter) registerAdminRoutes(form fiber.Router) {
	adminGroup := form.Group("/admin", middleware.RequireAdmin)
	adminGroup.Get("/", controllers.HandleAdminDashboard)

	// User management
	adminGroup.Get("/users", controllers.HandleAdminUsers)
	adminGroup.Post("/users/role/:id", controllers.HandleAdminUserRoleUpdate)

	// Catalog management
	adminGroup.Get("/agents", controllers.HandleAdminAgents)
	adminGroup.Get("/agents/new", controllers.HandleAdminAgentNew)
	adminGroup.Post("/agents", controllers.HandleAdminAgentCreate)
	adminGroup.Get("/agents/:uuid/edit", controllers.HandleAdminAgentEdit)
	adminGroup.Post("/agents/:uuid", controllers.HandleAdminAgentUpdate)
	adminGroup.Post("/agents/:uuid/delete", controllers.HandleAdminAgentDelete)

	// Subscription management
	adminGroup.Get("/subscriptions", controllers.HandleAdminSubscriptions)
	adminGroup.Post("/subscriptions/:uuid/status", controllers.HandleAdminSubscriptionStatusUpdate)

	// Contact info + inbox
	adminGroup.Get("/contact", controllers.HandleAdminContact)
	adminGroup.Post("/contact", controllers.HandleAdminContactUpdate)
}
