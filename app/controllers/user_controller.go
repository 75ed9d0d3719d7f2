package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/keysai/keysai/app/repository"
	"github.com/keysai/keysai/internal/pkg/pricing"
	"github.com/keysai/keysai/internal/pkg/session"
	"github.com/keysai/keysai/internal/pkg/usercontext"
	"github.com/keysai/keysai/internal/pkg/viewmodel"
)

// SubscriptionRow is the dashboard representation of one subscription with
// its derived pricing state.
type SubscriptionRow struct {
	UUID        string
	AgentName   string
	AgentUUID   string
	Status      string
	StartDate   string
	Price       string
	Promotional bool
	PromoEnds   string
}

func buildSubscriptionRows(priced []pricing.PricedSubscription) []SubscriptionRow {
	rows := make([]SubscriptionRow, 0, len(priced))
	for _, p := range priced {
		row := SubscriptionRow{
			UUID:        p.Subscription.UUID,
			Status:      p.Subscription.Status,
			StartDate:   p.Subscription.StartDate.Format("02.01.2006"),
			Price:       viewmodel.FormatCents(p.PriceCents),
			Promotional: p.State == pricing.StatePromotional,
		}
		if p.Subscription.Agent != nil {
			row.AgentName = p.Subscription.Agent.Name
			row.AgentUUID = p.Subscription.Agent.UUID
		}
		if row.Promotional && p.Subscription.PromoEndDate != nil {
			row.PromoEnds = p.Subscription.PromoEndDate.Format("02.01.2006")
		}
		rows = append(rows, row)
	}
	return rows
}

// HandleUserDashboard renders the caller's subscriptions with their current
// effective prices.
func HandleUserDashboard(c *fiber.Ctx) error {
	priced, err := getLifecycleService().ListForUser(c.Context(), actorFromContext(c))
	if err != nil {
		log.Printf("load dashboard for user %d: %v", usercontext.GetUserID(c), err)
		return redirectServiceError(c, err, "/dashboard")
	}

	return render(c, "user/dashboard", "dashboard", fiber.Map{
		"Subscriptions": buildSubscriptionRows(priced),
	})
}

// HandleUserProfile renders the profile page and saves edits.
func HandleUserProfile(c *fiber.Ctx) error {
	repo := repository.GetGlobalRepositories().User
	user, err := repo.GetByID(usercontext.GetUserID(c))
	if err != nil {
		return redirectWithError(c, "Could not load your profile.", "/dashboard")
	}

	if c.Method() == fiber.MethodPost {
		user.FirstName = c.FormValue("first_name")
		user.LastName = c.FormValue("last_name")
		if err := user.Validate(); err != nil {
			return redirectWithError(c, "Please fill out your first and last name.", "/user/profile")
		}

		if err := repo.Update(user); err != nil {
			return redirectWithError(c, "Could not save your profile, please try again.", "/user/profile")
		}

		// Keep the displayed name in the session current.
		if err := session.SetSessionValue(c, usercontext.KeyUsername, user.FullName()); err != nil {
			log.Printf("refresh session name for user %d: %v", user.ID, err)
		}

		return redirectWithSuccess(c, "Your profile has been updated.", "/user/profile")
	}

	return render(c, "user/profile", "profile", fiber.Map{
		"User": user,
	})
}

// HandleUserSettings renders account settings and handles password changes
// and API key management.
func HandleUserSettings(c *fiber.Ctx) error {
	repo := repository.GetGlobalRepositories().User
	user, err := repo.GetByID(usercontext.GetUserID(c))
	if err != nil {
		return redirectWithError(c, "Could not load your settings.", "/dashboard")
	}

	if c.Method() == fiber.MethodPost {
		switch c.FormValue("action") {
		case "change_password":
			if !user.CheckPassword(c.FormValue("current_password")) {
				return redirectWithError(c, "Your current password is not correct.", "/user/settings")
			}
			if err := user.SetPassword(c.FormValue("new_password")); err != nil {
				return redirectWithError(c, fmt.Sprintf("something went wrong: %s", err), "/user/settings")
			}
			if err := repo.Update(user); err != nil {
				return redirectWithError(c, "Could not save your new password.", "/user/settings")
			}
			return redirectWithSuccess(c, "Your password has been changed.", "/user/settings")

		case "generate_api_key":
			key, err := user.GenerateAPIKey()
			if err != nil {
				return redirectWithError(c, "Could not generate an API key, please try again.", "/user/settings")
			}
			if err := repo.Update(user); err != nil {
				return redirectWithError(c, "Could not save your API key, please try again.", "/user/settings")
			}
			// The plaintext key is shown exactly once; only its hash is stored.
			return render(c, "user/settings", "settings", fiber.Map{
				"User":      user,
				"HasAPIKey": true,
				"NewAPIKey": key,
			})

		case "revoke_api_key":
			user.RevokeAPIKey()
			if err := repo.Update(user); err != nil {
				return redirectWithError(c, "Could not revoke your API key, please try again.", "/user/settings")
			}
			return redirectWithSuccess(c, "Your API key has been revoked.", "/user/settings")

		default:
			return redirectWithError(c, "Unknown settings action.", "/user/settings")
		}
	}

	return render(c, "user/settings", "settings", fiber.Map{
		"User":      user,
		"HasAPIKey": user.APIKeyHash != "",
	})
}
