package pricing

import "github.com/keysai/keysai/app/models"

// Quote is the price a new subscriber would be charged today.
type Quote struct {
	PriceCents  int64
	Promotional bool
	PromoMonths *int
}

// QuoteFor resolves the effective quote for a catalog entry. A complete promo
// always wins: the promo is a new-subscriber discount, not a calendar-bound
// sale, so the quote has no time dependency.
func QuoteFor(agent *models.Agent) Quote {
	if agent.HasPromo() {
		return Quote{
			PriceCents:  *agent.PromoPriceCents,
			Promotional: true,
			PromoMonths: agent.PromoDurationMonths,
		}
	}
	return Quote{PriceCents: agent.BasePriceCents}
}
