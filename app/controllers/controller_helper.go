package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/keysai/keysai/internal/pkg/catalog"
	"github.com/keysai/keysai/internal/pkg/pricing"
	"github.com/keysai/keysai/internal/pkg/usercontext"
	"github.com/keysai/keysai/internal/pkg/viewmodel"
)

// actorFromContext builds the service-layer actor for the current request.
func actorFromContext(c *fiber.Ctx) pricing.Actor {
	uc := usercontext.GetUserContext(c)
	return pricing.Actor{UserID: uc.UserID, Role: uc.Role}
}

// render draws a page template inside the shared layout.
func render(c *fiber.Ctx, template string, page string, data fiber.Map) error {
	return c.Render(template, viewmodel.Merge(viewmodel.Base(c, page), data), "layouts/main")
}

// redirectWithError flashes an error notice and redirects.
func redirectWithError(c *fiber.Ctx, message, target string) error {
	fm := fiber.Map{"type": "error", "message": message}
	return flash.WithError(c, fm).Redirect(target, fiber.StatusSeeOther)
}

// redirectWithSuccess flashes a success notice and redirects.
func redirectWithSuccess(c *fiber.Ctx, message, target string) error {
	fm := fiber.Map{"type": "success", "message": message}
	return flash.WithSuccess(c, fm).Redirect(target, fiber.StatusSeeOther)
}

// redirectServiceError translates a lifecycle-service error into a flash
// notice on the given page.
func redirectServiceError(c *fiber.Ctx, err error, target string) error {
	switch {
	case errors.Is(err, pricing.ErrUnauthenticated):
		return redirectWithError(c, "Please log in to continue.", "/login")
	case errors.Is(err, pricing.ErrUnauthorized):
		return redirectWithError(c, "Access denied.", "/dashboard")
	case errors.Is(err, pricing.ErrAgentNotFound):
		return redirectWithError(c, "This agent does not exist.", "/pricing")
	case errors.Is(err, pricing.ErrSubscriptionNotFound):
		return redirectWithError(c, "This subscription does not exist.", "/dashboard")
	case errors.Is(err, catalog.ErrUserNotFound):
		return redirectWithError(c, "This user does not exist.", "/admin/users")
	case pricing.IsValidation(err):
		return redirectWithError(c, err.Error(), target)
	default:
		return redirectWithError(c, "Something went wrong, please try again.", target)
	}
}
