package pricing

import (
	"testing"

	"github.com/keysai/keysai/app/models"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func TestQuoteForWithoutPromo(t *testing.T) {
	agent := &models.Agent{Name: "Support Agent", BasePriceCents: 45000}

	q := QuoteFor(agent)
	if q.PriceCents != 45000 {
		t.Fatalf("expected base price 45000, got %d", q.PriceCents)
	}
	if q.Promotional {
		t.Fatalf("expected non-promotional quote")
	}
	if q.PromoMonths != nil {
		t.Fatalf("expected nil promo months, got %d", *q.PromoMonths)
	}
}

func TestQuoteForWithPromo(t *testing.T) {
	agent := &models.Agent{
		Name:                "Sales Agent",
		BasePriceCents:      30000,
		PromoPriceCents:     int64Ptr(25000),
		PromoDurationMonths: intPtr(2),
	}

	q := QuoteFor(agent)
	if q.PriceCents != 25000 {
		t.Fatalf("expected promo price 25000, got %d", q.PriceCents)
	}
	if !q.Promotional {
		t.Fatalf("expected promotional quote")
	}
	if q.PromoMonths == nil || *q.PromoMonths != 2 {
		t.Fatalf("expected promo months 2, got %v", q.PromoMonths)
	}
}
