package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/keysai/keysai/app/repository"
	"github.com/keysai/keysai/internal/pkg/database"
	"github.com/keysai/keysai/internal/pkg/pricing"
	"github.com/keysai/keysai/internal/pkg/statistics"
	"github.com/keysai/keysai/internal/pkg/usercontext"
	"github.com/keysai/keysai/internal/pkg/viewmodel"
)

var lifecycleService *pricing.Service

func getLifecycleService() *pricing.Service {
	if lifecycleService == nil {
		lifecycleService = pricing.NewServiceFromDB(database.GetDB())
	}
	return lifecycleService
}

// SetLifecycleService replaces the subscription lifecycle service. Tests use
// it to inject a fake repository and a fixed clock.
func SetLifecycleService(s *pricing.Service) {
	lifecycleService = s
}

// HandleAgents renders the catalog listing.
func HandleAgents(c *fiber.Ctx) error {
	agents, err := repository.GetGlobalRepositories().Agent.List(false)
	if err != nil {
		return redirectWithError(c, "Could not load the catalog, please try again.", "/")
	}

	return render(c, "agents/index", "agents", fiber.Map{
		"Agents": buildAgentCards(agents),
	})
}

// HandleAgentDetail renders a single catalog entry with its current quote.
func HandleAgentDetail(c *fiber.Ctx) error {
	agent, err := repository.GetGlobalRepositories().Agent.GetByUUID(c.Params("uuid"))
	if err != nil {
		return redirectWithError(c, "This agent does not exist.", "/agents")
	}

	q := pricing.QuoteFor(agent)
	data := fiber.Map{
		"Agent":       agent,
		"BasePrice":   viewmodel.FormatCents(agent.BasePriceCents),
		"Promotional": q.Promotional,
	}
	if q.Promotional {
		data["PromoPrice"] = viewmodel.FormatCents(q.PriceCents)
		if q.PromoMonths != nil {
			data["PromoMonths"] = *q.PromoMonths
		}
	}

	return render(c, "agents/detail", "agent_detail", data)
}

// HandleSubscribe processes the checkout form and creates a subscription.
// The payment fields on the form are not charged; they only gate the flow.
func HandleSubscribe(c *fiber.Ctx) error {
	uuid := c.Params("uuid")

	if !usercontext.IsLoggedIn(c) {
		return redirectWithError(c, "Please log in to subscribe.", "/login")
	}

	if c.FormValue("card_number") == "" || c.FormValue("card_expiry") == "" {
		return redirectWithError(c, "Please fill in the payment details.", "/agents/"+uuid)
	}

	sub, err := getLifecycleService().Subscribe(c.Context(), actorFromContext(c), uuid)
	if err != nil {
		log.Printf("subscribe to agent %s: %v", uuid, err)
		return redirectServiceError(c, err, "/agents/"+uuid)
	}

	go statistics.UpdateStatisticsCache()

	message := "You are subscribed! Your plan is now active."
	if sub.Agent != nil && sub.Agent.Name != "" {
		message = "You are subscribed to " + sub.Agent.Name + "! Your plan is now active."
	}
	return redirectWithSuccess(c, message, "/dashboard")
}

// HandleSubscriptionCancel cancels one of the caller's subscriptions.
func HandleSubscriptionCancel(c *fiber.Ctx) error {
	uuid := c.Params("uuid")

	sub, err := getLifecycleService().Cancel(c.Context(), actorFromContext(c), uuid)
	if err != nil {
		return redirectServiceError(c, err, "/dashboard")
	}

	go statistics.UpdateStatisticsCache()

	message := "Your subscription has been cancelled."
	if sub.Agent != nil && sub.Agent.Name != "" {
		message = "Your subscription to " + sub.Agent.Name + " has been cancelled."
	}
	return redirectWithSuccess(c, message, "/dashboard")
}
