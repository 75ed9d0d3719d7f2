package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/keysai/keysai/app/models"
	"github.com/keysai/keysai/internal/pkg/pricing"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func TestParseEuroCents(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"300", 30000, false},
		{"149.99", 14999, false},
		{"149,99", 14999, false},
		{"0.5", 50, false},
		{"250.00", 25000, false},
		{" 12 ", 1200, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-5", 0, true},
		{"12.x", 0, true},
		{"149.999", 0, true},
		{"0.123", 0, true},
	}

	for _, tt := range tests {
		got, err := parseEuroCents(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		assert.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestBuildAgentCards(t *testing.T) {
	agents := []models.Agent{
		{
			UUID:           "uuid-standard",
			Name:           "Support Agent",
			BasePriceCents: 30000,
		},
		{
			UUID:                "uuid-promo",
			Name:                "Marketing Agent",
			BasePriceCents:      30000,
			PromoPriceCents:     int64Ptr(25000),
			PromoDurationMonths: intPtr(2),
		},
	}

	cards := buildAgentCards(agents)
	assert.Len(t, cards, 2)

	assert.False(t, cards[0].Promotional)
	assert.Equal(t, "300.00", cards[0].BasePrice)
	assert.Empty(t, cards[0].PromoPrice)

	assert.True(t, cards[1].Promotional)
	assert.Equal(t, "250.00", cards[1].PromoPrice)
	assert.Equal(t, 2, cards[1].PromoMonths)
}

func TestBuildSubscriptionRows(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	promoEnd := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	agent := &models.Agent{
		UUID:                "uuid-promo",
		Name:                "Marketing Agent",
		BasePriceCents:      30000,
		PromoPriceCents:     int64Ptr(25000),
		PromoDurationMonths: intPtr(2),
	}

	priced := []pricing.PricedSubscription{
		{
			Subscription: models.Subscription{
				UUID:         "sub-1",
				Status:       models.SubscriptionStatusActive,
				StartDate:    start,
				PromoEndDate: &promoEnd,
				Agent:        agent,
			},
			State:      pricing.StatePromotional,
			PriceCents: 25000,
		},
		{
			Subscription: models.Subscription{
				UUID:      "sub-2",
				Status:    models.SubscriptionStatusCancelled,
				StartDate: start,
				Agent:     agent,
			},
			State:      pricing.StateStandard,
			PriceCents: 30000,
		},
	}

	rows := buildSubscriptionRows(priced)
	assert.Len(t, rows, 2)

	assert.Equal(t, "Marketing Agent", rows[0].AgentName)
	assert.Equal(t, "250.00", rows[0].Price)
	assert.True(t, rows[0].Promotional)
	assert.Equal(t, "15.03.2024", rows[0].PromoEnds)

	assert.Equal(t, "300.00", rows[1].Price)
	assert.False(t, rows[1].Promotional)
	assert.Empty(t, rows[1].PromoEnds)
}
