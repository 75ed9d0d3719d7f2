package pricing

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/keysai/keysai/app/models"
	"github.com/keysai/keysai/internal/pkg/roles"
)

// Actor identifies the caller of a lifecycle operation. A zero UserID means
// the caller is anonymous.
type Actor struct {
	UserID uint
	Role   roles.Role
}

// Authenticated reports whether the actor carries a signed-in identity.
func (a Actor) Authenticated() bool { return a.UserID != 0 }

// PricedSubscription pairs a subscription with its derived pricing state at
// the instant it was read.
type PricedSubscription struct {
	Subscription models.Subscription
	State        State
	PriceCents   int64
}

// Service implements the subscription lifecycle: subscribing to a catalog
// entry, cancelling, and reading subscriptions with their effective price.
type Service struct {
	repo  Repository
	clock Clock
}

// NewService creates a subscription service from an injected repository and clock.
func NewService(repo Repository, clock Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// NewServiceFromDB creates a subscription service from a GORM DB handle using
// the system clock.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db), SystemClock())
}

// Subscribe materializes a subscription for the actor against the catalog
// entry identified by agentUUID. The promo-expiry instant is computed once
// here from the entry's promo duration; repeat subscriptions to the same
// entry are not deduplicated.
func (s *Service) Subscribe(ctx context.Context, actor Actor, agentUUID string) (*models.Subscription, error) {
	_ = ctx
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}

	agent, err := s.repo.GetAgentByUUID(agentUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("fetch agent %s: %w", agentUUID, err)
	}

	now := s.clock.Now()
	sub := &models.Subscription{
		UserID:       actor.UserID,
		AgentID:      agent.ID,
		Status:       models.SubscriptionStatusActive,
		StartDate:    now,
		PromoEndDate: PromoEndFor(agent, now),
	}

	if err := s.repo.CreateSubscription(sub); err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	sub.Agent = agent
	return sub, nil
}

// Cancel marks a subscription as cancelled. Only the owner or an actor with
// the manage-subscriptions capability may cancel.
func (s *Service) Cancel(ctx context.Context, actor Actor, subscriptionUUID string) (*models.Subscription, error) {
	_ = ctx
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}

	sub, err := s.repo.GetSubscriptionByUUID(subscriptionUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("fetch subscription %s: %w", subscriptionUUID, err)
	}

	if sub.UserID != actor.UserID && !actor.Role.Can(roles.ManageSubscriptions) {
		return nil, ErrUnauthorized
	}

	if sub.IsCancelled() {
		return sub, nil
	}

	sub.Status = models.SubscriptionStatusCancelled
	if err := s.repo.SaveSubscription(sub); err != nil {
		return nil, fmt.Errorf("save subscription %s: %w", subscriptionUUID, err)
	}
	return sub, nil
}

// ListForUser returns the actor's subscriptions with their pricing state
// derived at the current instant.
func (s *Service) ListForUser(ctx context.Context, actor Actor) ([]PricedSubscription, error) {
	_ = ctx
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}

	subs, err := s.repo.ListSubscriptionsByUser(actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions for user %d: %w", actor.UserID, err)
	}

	now := s.clock.Now()
	priced := make([]PricedSubscription, 0, len(subs))
	for _, sub := range subs {
		if sub.Agent == nil {
			// Orphaned row; catalog entry was hard-deleted. Skip rather
			// than render a subscription with no price.
			continue
		}
		price, state := EffectivePriceCents(&sub, sub.Agent, now)
		priced = append(priced, PricedSubscription{
			Subscription: sub,
			State:        state,
			PriceCents:   price,
		})
	}
	return priced, nil
}
