package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/keysai/keysai/app/repository"
	"github.com/keysai/keysai/internal/pkg/catalog"
	"github.com/keysai/keysai/internal/pkg/statistics"
	"github.com/keysai/keysai/internal/pkg/viewmodel"
)

// AdminAgentRow is the management-list representation of a catalog entry.
type AdminAgentRow struct {
	UUID        string
	Name        string
	BasePrice   string
	PromoPrice  string
	PromoMonths int
	HasPromo    bool
	IsActive    bool
}

// HandleAdminAgents renders the catalog management list including inactive
// entries.
func HandleAdminAgents(c *fiber.Ctx) error {
	agents, err := repository.GetGlobalRepositories().Agent.List(true)
	if err != nil {
		return redirectWithError(c, "Could not load the catalog.", "/admin")
	}

	rows := make([]AdminAgentRow, 0, len(agents))
	for i := range agents {
		agent := &agents[i]
		row := AdminAgentRow{
			UUID:      agent.UUID,
			Name:      agent.Name,
			BasePrice: viewmodel.FormatCents(agent.BasePriceCents),
			HasPromo:  agent.HasPromo(),
			IsActive:  agent.IsActive,
		}
		if row.HasPromo {
			row.PromoPrice = viewmodel.FormatCents(*agent.PromoPriceCents)
			row.PromoMonths = *agent.PromoDurationMonths
		}
		rows = append(rows, row)
	}

	return render(c, "admin/agents", "admin_agents", fiber.Map{
		"Agents": rows,
	})
}

// HandleAdminAgentNew renders the empty create form.
func HandleAdminAgentNew(c *fiber.Ctx) error {
	return render(c, "admin/agent_form", "admin_agents", fiber.Map{
		"UUID":        "",
		"Name":        "",
		"Description": "",
		"BasePrice":   "",
		"PromoPrice":  "",
		"PromoMonths": "",
		"IsActive":    true,
	})
}

// HandleAdminAgentCreate creates a catalog entry from the submitted form.
func HandleAdminAgentCreate(c *fiber.Ctx) error {
	in, err := agentInputFromForm(c)
	if err != nil {
		return redirectWithError(c, err.Error(), "/admin/agents/new")
	}

	agent, err := getCatalogService().CreateAgent(c.Context(), actorFromContext(c), in)
	if err != nil {
		return redirectServiceError(c, err, "/admin/agents/new")
	}

	go statistics.UpdateStatisticsCache()

	return redirectWithSuccess(c, agent.Name+" has been created.", "/admin/agents")
}

// HandleAdminAgentEdit renders the prefilled edit form.
func HandleAdminAgentEdit(c *fiber.Ctx) error {
	agent, err := repository.GetGlobalRepositories().Agent.GetByUUID(c.Params("uuid"))
	if err != nil {
		return redirectWithError(c, "This agent does not exist.", "/admin/agents")
	}

	data := fiber.Map{
		"UUID":        agent.UUID,
		"Name":        agent.Name,
		"Description": agent.Description,
		"BasePrice":   viewmodel.FormatCents(agent.BasePriceCents),
		"PromoPrice":  "",
		"PromoMonths": "",
		"IsActive":    agent.IsActive,
	}
	if agent.HasPromo() {
		data["PromoPrice"] = viewmodel.FormatCents(*agent.PromoPriceCents)
		data["PromoMonths"] = *agent.PromoDurationMonths
	}

	return render(c, "admin/agent_form", "admin_agents", data)
}

// HandleAdminAgentUpdate saves an edited catalog entry.
func HandleAdminAgentUpdate(c *fiber.Ctx) error {
	uuid := c.Params("uuid")

	in, err := agentInputFromForm(c)
	if err != nil {
		return redirectWithError(c, err.Error(), "/admin/agents/"+uuid+"/edit")
	}

	agent, err := getCatalogService().UpdateAgent(c.Context(), actorFromContext(c), uuid, in)
	if err != nil {
		return redirectServiceError(c, err, "/admin/agents/"+uuid+"/edit")
	}

	go statistics.UpdateStatisticsCache()

	return redirectWithSuccess(c, agent.Name+" has been updated.", "/admin/agents")
}

// HandleAdminAgentDelete soft-deletes a catalog entry. Existing
// subscriptions keep their rows and continue to resolve prices.
func HandleAdminAgentDelete(c *fiber.Ctx) error {
	if err := getCatalogService().DeleteAgent(c.Context(), actorFromContext(c), c.Params("uuid")); err != nil {
		return redirectServiceError(c, err, "/admin/agents")
	}

	go statistics.UpdateStatisticsCache()

	return redirectWithSuccess(c, "The agent has been removed from the catalog.", "/admin/agents")
}

// agentInputFromForm parses the shared create/edit form. Prices arrive in
// euros with an optional decimal part and are stored as cents.
func agentInputFromForm(c *fiber.Ctx) (catalog.AgentInput, error) {
	in := catalog.AgentInput{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Description: strings.TrimSpace(c.FormValue("description")),
		IsActive:    c.FormValue("is_active") == "on" || c.FormValue("is_active") == "true",
	}

	base, err := parseEuroCents(c.FormValue("base_price"))
	if err != nil {
		return in, errInvalidPrice
	}
	in.BasePriceCents = base

	if v := strings.TrimSpace(c.FormValue("promo_price")); v != "" {
		promo, err := parseEuroCents(v)
		if err != nil {
			return in, errInvalidPrice
		}
		in.PromoPriceCents = &promo
	}

	if v := strings.TrimSpace(c.FormValue("promo_months")); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil {
			return in, errInvalidPromoMonths
		}
		in.PromoDurationMonths = &months
	}

	return in, nil
}

var (
	errInvalidPrice       = fiber.NewError(fiber.StatusBadRequest, "Please enter prices as euro amounts, e.g. 300 or 149.99.")
	errInvalidPromoMonths = fiber.NewError(fiber.StatusBadRequest, "Please enter the promo duration as a whole number of months.")
)

// parseEuroCents converts "149.99" or "300" into cents without going through
// floating point. More than two fractional digits is an error, not a
// truncation.
func parseEuroCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")

	whole, frac, found := strings.Cut(s, ".")
	euros, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || euros < 0 {
		return 0, errInvalidPrice
	}

	var cents int64
	if found {
		if len(frac) > 2 {
			return 0, errInvalidPrice
		}
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || cents < 0 {
			return 0, errInvalidPrice
		}
	}

	return euros*100 + cents, nil
}
