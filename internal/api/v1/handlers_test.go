package apiv1

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keysai/keysai/app/models"
	"github.com/keysai/keysai/internal/pkg/pricing"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func TestAgentResponse(t *testing.T) {
	agent := &models.Agent{
		UUID:           "uuid-standard",
		Name:           "Support Agent",
		Description:    "Answers tickets",
		BasePriceCents: 30000,
	}

	resp := agentResponse(agent)
	assert.Equal(t, int64(30000), resp.EffectivePriceCents)
	assert.False(t, resp.Promotional)
	assert.Nil(t, resp.PromoPriceCents)

	agent.PromoPriceCents = int64Ptr(25000)
	agent.PromoDurationMonths = intPtr(2)

	resp = agentResponse(agent)
	assert.Equal(t, int64(25000), resp.EffectivePriceCents)
	assert.True(t, resp.Promotional)
	assert.Equal(t, int64(25000), *resp.PromoPriceCents)
	assert.Equal(t, 2, *resp.PromoDurationMonths)
}

func TestSubscriptionResponse(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	promoEnd := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	p := pricing.PricedSubscription{
		Subscription: models.Subscription{
			UUID:         "sub-1",
			Status:       models.SubscriptionStatusActive,
			StartDate:    start,
			PromoEndDate: &promoEnd,
			Agent: &models.Agent{
				UUID: "agent-1",
				Name: "Marketing Agent",
			},
		},
		State:      pricing.StatePromotional,
		PriceCents: 25000,
	}

	resp := subscriptionResponse(p)
	assert.Equal(t, "sub-1", resp.UUID)
	assert.Equal(t, "agent-1", resp.AgentUUID)
	assert.Equal(t, "Marketing Agent", resp.AgentName)
	assert.Equal(t, "2024-01-15T10:30:00Z", resp.StartDate)
	assert.Equal(t, "2024-03-15T10:30:00Z", resp.PromoEndDate)
	assert.Equal(t, "promotional", resp.PricingState)
	assert.Equal(t, int64(25000), resp.EffectivePriceCents)
}

func TestSubscriptionResponseWithoutAgent(t *testing.T) {
	p := pricing.PricedSubscription{
		Subscription: models.Subscription{
			UUID:      "sub-2",
			Status:    models.SubscriptionStatusCancelled,
			StartDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		State:      pricing.StateStandard,
		PriceCents: 30000,
	}

	resp := subscriptionResponse(p)
	assert.Empty(t, resp.AgentUUID)
	assert.Empty(t, resp.AgentName)
	assert.Empty(t, resp.PromoEndDate)
	assert.Equal(t, "standard", resp.PricingState)
}

func TestGetPing(t *testing.T) {
	app := fiber.New()
	app.Get("/ping", NewAPIServer().GetPing)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body Pong
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "pong", body.Ping)
}
