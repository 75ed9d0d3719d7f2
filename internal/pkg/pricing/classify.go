package pricing

import (
	"time"

	"github.com/keysai/keysai/app/models"
)

// State is the pricing state of an existing subscription.
type State string

const (
	StatePromotional State = "promotional"
	StateStandard    State = "standard"
)

// Classify derives the pricing state at a given instant. The promo window is
// half-open: promotional strictly before promoEnd, standard at and after it.
// A nil promoEnd means the subscription never had a promo window.
//
// This is a pure derivation recomputed on every read. Nothing ever writes a
// state transition back to the subscription row.
func Classify(promoEnd *time.Time, now time.Time) State {
	if promoEnd != nil && now.Before(*promoEnd) {
		return StatePromotional
	}
	return StateStandard
}

// EffectivePriceCents returns the price currently charged for a subscription
// together with its pricing state.
func EffectivePriceCents(sub *models.Subscription, agent *models.Agent, now time.Time) (int64, State) {
	state := Classify(sub.PromoEndDate, now)
	if state == StatePromotional && agent.PromoPriceCents != nil {
		return *agent.PromoPriceCents, state
	}
	return agent.BasePriceCents, StateStandard
}
