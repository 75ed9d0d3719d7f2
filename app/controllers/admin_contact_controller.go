package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keysai/keysai/app/repository"
)

// HandleAdminContact renders the contact info form and recent messages.
func HandleAdminContact(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	info, err := repos.Contact.GetInfo()
	if err != nil {
		return redirectWithError(c, "Could not load the contact information.", "/admin")
	}

	offset, limit, page := adminPage(c)
	messages, err := repos.Contact.ListMessages(offset, limit)
	if err != nil {
		return redirectWithError(c, "Could not load contact messages.", "/admin")
	}

	return render(c, "admin/contact", "admin_contact", fiber.Map{
		"Info":     info,
		"Messages": messages,
		"Page":     page,
	})
}

// HandleAdminContactUpdate saves the site-wide contact information.
func HandleAdminContactUpdate(c *fiber.Ctx) error {
	_, err := getCatalogService().UpdateContactInfo(
		c.Context(),
		actorFromContext(c),
		c.FormValue("email"),
		c.FormValue("phone"),
		c.FormValue("address"),
	)
	if err != nil {
		return redirectServiceError(c, err, "/admin/contact")
	}

	return redirectWithSuccess(c, "The contact information has been updated.", "/admin/contact")
}
