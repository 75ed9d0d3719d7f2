package viewmodel

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/keysai/keysai/internal/pkg/usercontext"
)

// Base builds the layout variables shared by every page template.
func Base(c *fiber.Ctx, page string) fiber.Map {
	uc := usercontext.GetUserContext(c)
	token, _ := c.Locals("csrf").(string)
	return fiber.Map{
		"Page":      page,
		"LoggedIn":  uc.IsLoggedIn,
		"IsAdmin":   uc.IsAdmin(),
		"Username":  uc.Username,
		"Flash":     flash.Get(c),
		"CSRFToken": token,
	}
}

// Merge copies extra page data into the base map.
func Merge(base fiber.Map, extra fiber.Map) fiber.Map {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// FormatCents renders integer euro cents as a price string, e.g. 30000 -> "300.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
