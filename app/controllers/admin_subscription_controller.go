package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/keysai/keysai/app/models"
	"github.com/keysai/keysai/app/repository"
	"github.com/keysai/keysai/internal/pkg/pricing"
	"github.com/keysai/keysai/internal/pkg/statistics"
	"github.com/keysai/keysai/internal/pkg/viewmodel"
)

// AdminSubscriptionRow is the admin list representation of a subscription
// with its derived pricing state.
type AdminSubscriptionRow struct {
	UUID      string
	UserName  string
	UserEmail string
	AgentName string
	Status    string
	StartDate string
	Price     string
	State     string
}

func buildAdminSubscriptionRows(subs []models.Subscription, now time.Time) []AdminSubscriptionRow {
	rows := make([]AdminSubscriptionRow, 0, len(subs))
	for i := range subs {
		sub := &subs[i]
		row := AdminSubscriptionRow{
			UUID:      sub.UUID,
			Status:    sub.Status,
			StartDate: sub.StartDate.Format("02.01.2006"),
		}
		if sub.User != nil {
			row.UserName = sub.User.FullName()
			row.UserEmail = sub.User.Email
		}
		if sub.Agent != nil {
			row.AgentName = sub.Agent.Name
			price, state := pricing.EffectivePriceCents(sub, sub.Agent, now)
			row.Price = viewmodel.FormatCents(price)
			row.State = string(state)
		}
		rows = append(rows, row)
	}
	return rows
}

// HandleAdminSubscriptions renders the paginated subscription list.
func HandleAdminSubscriptions(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	offset, limit, page := adminPage(c)
	subs, err := repos.Subscription.List(offset, limit)
	if err != nil {
		return redirectWithError(c, "Could not load subscriptions.", "/admin")
	}

	total, _ := repos.Subscription.Count()
	active, _ := repos.Subscription.CountByStatus(models.SubscriptionStatusActive)

	data := fiber.Map{
		"Subscriptions": buildAdminSubscriptionRows(subs, time.Now()),
		"Page":          page,
		"Total":         total,
		"Active":        active,
	}
	if page > 1 {
		data["PrevPage"] = page - 1
	}
	if int64(offset+limit) < total {
		data["NextPage"] = page + 1
	}
	return render(c, "admin/subscriptions", "admin_subscriptions", data)
}

// HandleAdminSubscriptionStatusUpdate sets a subscription's status.
func HandleAdminSubscriptionStatusUpdate(c *fiber.Ctx) error {
	uuid := c.Params("uuid")

	_, err := getCatalogService().UpdateSubscriptionStatus(c.Context(), actorFromContext(c), uuid, c.FormValue("status"))
	if err != nil {
		return redirectServiceError(c, err, "/admin/subscriptions")
	}

	go statistics.UpdateStatisticsCache()

	return redirectWithSuccess(c, "The subscription status has been updated.", "/admin/subscriptions")
}
