package apiv1

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/keysai/keysai/app/models"
	"github.com/keysai/keysai/app/repository"
	"github.com/keysai/keysai/internal/pkg/database"
	"github.com/keysai/keysai/internal/pkg/middleware"
	"github.com/keysai/keysai/internal/pkg/pricing"
	"github.com/keysai/keysai/internal/pkg/usercontext"
)

// APIServer implements the public JSON API.
type APIServer struct {
	lifecycle *pricing.Service
}

// NewAPIServer creates a new API server instance.
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// NewAPIServerWithService creates an API server bound to a specific
// lifecycle service. Tests use it with a fake repository and a fixed clock.
func NewAPIServerWithService(s *pricing.Service) *APIServer {
	return &APIServer{lifecycle: s}
}

func (s *APIServer) service() *pricing.Service {
	if s.lifecycle == nil {
		s.lifecycle = pricing.NewServiceFromDB(database.GetDB())
	}
	return s.lifecycle
}

// RegisterHandlers attaches the v1 routes to the given group.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)

	// Public catalog
	router.Get("/agents", s.GetAgents)
	router.Get("/agents/:uuid", s.GetAgent)

	// API key protected
	keyed := router.Group("", middleware.APIKeyAuthMiddleware())
	keyed.Get("/subscriptions", s.GetSubscriptions)
	keyed.Post("/subscriptions", s.PostSubscription)
	keyed.Post("/subscriptions/:uuid/cancel", s.PostSubscriptionCancel)
}

// Pong is the ping response body.
type Pong struct {
	Ping string `json:"ping"`
}

// AgentResponse is the JSON shape of a catalog entry with its current quote.
type AgentResponse struct {
	UUID                string `json:"uuid"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	BasePriceCents      int64  `json:"base_price_cents"`
	PromoPriceCents     *int64 `json:"promo_price_cents,omitempty"`
	PromoDurationMonths *int   `json:"promo_duration_months,omitempty"`
	EffectivePriceCents int64  `json:"effective_price_cents"`
	Promotional         bool   `json:"promotional"`
}

// SubscriptionResponse is the JSON shape of a subscription with its derived
// pricing state.
type SubscriptionResponse struct {
	UUID                string `json:"uuid"`
	AgentUUID           string `json:"agent_uuid,omitempty"`
	AgentName           string `json:"agent_name,omitempty"`
	Status              string `json:"status"`
	StartDate           string `json:"start_date"`
	PromoEndDate        string `json:"promo_end_date,omitempty"`
	PricingState        string `json:"pricing_state,omitempty"`
	EffectivePriceCents int64  `json:"effective_price_cents,omitempty"`
}

func agentResponse(agent *models.Agent) AgentResponse {
	q := pricing.QuoteFor(agent)
	return AgentResponse{
		UUID:                agent.UUID,
		Name:                agent.Name,
		Description:         agent.Description,
		BasePriceCents:      agent.BasePriceCents,
		PromoPriceCents:     agent.PromoPriceCents,
		PromoDurationMonths: agent.PromoDurationMonths,
		EffectivePriceCents: q.PriceCents,
		Promotional:         q.Promotional,
	}
}

func subscriptionResponse(p pricing.PricedSubscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		UUID:                p.Subscription.UUID,
		Status:              p.Subscription.Status,
		StartDate:           p.Subscription.StartDate.UTC().Format(time.RFC3339),
		PricingState:        string(p.State),
		EffectivePriceCents: p.PriceCents,
	}
	if p.Subscription.Agent != nil {
		resp.AgentUUID = p.Subscription.Agent.UUID
		resp.AgentName = p.Subscription.Agent.Name
	}
	if p.Subscription.PromoEndDate != nil {
		resp.PromoEndDate = p.Subscription.PromoEndDate.UTC().Format(time.RFC3339)
	}
	return resp
}

func apiError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, pricing.ErrUnauthenticated):
		return apiError(c, fiber.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, pricing.ErrUnauthorized):
		return apiError(c, fiber.StatusForbidden, "forbidden", "insufficient role")
	case errors.Is(err, pricing.ErrAgentNotFound):
		return apiError(c, fiber.StatusNotFound, "not_found", "agent not found")
	case errors.Is(err, pricing.ErrSubscriptionNotFound):
		return apiError(c, fiber.StatusNotFound, "not_found", "subscription not found")
	case pricing.IsValidation(err):
		return apiError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	default:
		return apiError(c, fiber.StatusInternalServerError, "internal", "something went wrong")
	}
}

func apiActor(c *fiber.Ctx) pricing.Actor {
	uc := usercontext.GetUserContext(c)
	return pricing.Actor{UserID: uc.UserID, Role: uc.Role}
}

// GetPing handles the ping endpoint.
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Pong{Ping: "pong"})
}

// GetAgents lists the active catalog with current quotes.
func (s *APIServer) GetAgents(c *fiber.Ctx) error {
	agents, err := repository.GetGlobalRepositories().Agent.List(false)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal", "could not load the catalog")
	}

	resp := make([]AgentResponse, 0, len(agents))
	for i := range agents {
		resp = append(resp, agentResponse(&agents[i]))
	}
	return c.JSON(fiber.Map{"agents": resp})
}

// GetAgent returns a single catalog entry by UUID.
func (s *APIServer) GetAgent(c *fiber.Ctx) error {
	agent, err := repository.GetGlobalRepositories().Agent.GetByUUID(c.Params("uuid"))
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "not_found", "agent not found")
	}
	return c.JSON(agentResponse(agent))
}

// GetSubscriptions lists the caller's subscriptions with derived prices.
func (s *APIServer) GetSubscriptions(c *fiber.Ctx) error {
	priced, err := s.service().ListForUser(c.Context(), apiActor(c))
	if err != nil {
		return serviceError(c, err)
	}

	resp := make([]SubscriptionResponse, 0, len(priced))
	for _, p := range priced {
		resp = append(resp, subscriptionResponse(p))
	}
	return c.JSON(fiber.Map{"subscriptions": resp})
}

// PostSubscription subscribes the caller to a catalog entry.
func (s *APIServer) PostSubscription(c *fiber.Ctx) error {
	var req struct {
		AgentUUID string `json:"agent_uuid"`
	}
	if err := c.BodyParser(&req); err != nil || req.AgentUUID == "" {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "agent_uuid missing")
	}

	sub, err := s.service().Subscribe(c.Context(), apiActor(c), req.AgentUUID)
	if err != nil {
		return serviceError(c, err)
	}

	priced, state := pricing.EffectivePriceCents(sub, sub.Agent, sub.StartDate)
	return c.Status(fiber.StatusCreated).JSON(subscriptionResponse(pricing.PricedSubscription{
		Subscription: *sub,
		State:        state,
		PriceCents:   priced,
	}))
}

// PostSubscriptionCancel cancels one of the caller's subscriptions.
func (s *APIServer) PostSubscriptionCancel(c *fiber.Ctx) error {
	sub, err := s.service().Cancel(c.Context(), apiActor(c), c.Params("uuid"))
	if err != nil {
		return serviceError(c, err)
	}

	resp := SubscriptionResponse{
		UUID:      sub.UUID,
		Status:    sub.Status,
		StartDate: sub.StartDate.UTC().Format(time.RFC3339),
	}
	if sub.Agent != nil {
		resp.AgentUUID = sub.Agent.UUID
		resp.AgentName = sub.Agent.Name
	}
	return c.JSON(resp)
}
