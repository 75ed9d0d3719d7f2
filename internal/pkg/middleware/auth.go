package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/keysai/keysai/internal/pkg/usercontext"
)

// RequireAuth ensures a logged-in web session; redirects to /login with an
// access-denied notice if missing.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		fm := fiber.Map{
			"type":    "error",
			"message": "Please log in to access this page.",
		}
		return flash.WithError(c, fm).Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAdmin ensures a logged-in admin. Anonymous callers go to /login,
// signed-in non-admins back to their dashboard, both with a notice. The
// router gate is advisory; the services re-check the actor's role on every
// mutation.
func RequireAdmin(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		fm := fiber.Map{
			"type":    "error",
			"message": "Please log in to access this page.",
		}
		return flash.WithError(c, fm).Redirect("/login", fiber.StatusSeeOther)
	}
	if !usercontext.IsAdmin(c) {
		fm := fiber.Map{
			"type":    "error",
			"message": "Access denied. Admin privileges required.",
		}
		return flash.WithError(c, fm).Redirect("/dashboard", fiber.StatusSeeOther)
	}
	return c.Next()
}
