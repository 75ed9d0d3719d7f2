package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keysai/keysai/app/models"
	"github.com/keysai/keysai/internal/pkg/roles"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	agents        map[string]*models.Agent
	subscriptions map[string]*models.Subscription
	created       []*models.Subscription
	failWith      error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		agents:        map[string]*models.Agent{},
		subscriptions: map[string]*models.Subscription{},
	}
}

func (f *fakeRepository) GetAgentByUUID(uuid string) (*models.Agent, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if a, ok := f.agents[uuid]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) CreateSubscription(sub *models.Subscription) error {
	if f.failWith != nil {
		return f.failWith
	}
	sub.ID = uint(len(f.created) + 1)
	f.created = append(f.created, sub)
	return nil
}

func (f *fakeRepository) GetSubscriptionByUUID(uuid string) (*models.Subscription, error) {
	if s, ok := f.subscriptions[uuid]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) SaveSubscription(sub *models.Subscription) error {
	f.subscriptions[sub.UUID] = sub
	return nil
}

func (f *fakeRepository) ListSubscriptionsByUser(userID uint) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, s := range f.subscriptions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func TestSubscribeComputesPromoWindow(t *testing.T) {
	repo := newFakeRepository()
	repo.agents["agent-1"] = &models.Agent{
		ID:                  7,
		UUID:                "agent-1",
		Name:                "Sales Agent",
		BasePriceCents:      30000,
		PromoPriceCents:     int64Ptr(25000),
		PromoDurationMonths: intPtr(2),
	}

	start := date(2024, time.January, 15)
	svc := NewService(repo, FixedClock(start))

	sub, err := svc.Subscribe(context.Background(), Actor{UserID: 42, Role: roles.RoleUser}, "agent-1")
	require.NoError(t, err)

	assert.Equal(t, uint(42), sub.UserID)
	assert.Equal(t, uint(7), sub.AgentID)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.True(t, sub.StartDate.Equal(start))
	require.NotNil(t, sub.PromoEndDate)
	assert.True(t, sub.PromoEndDate.Equal(date(2024, time.March, 15)))
	assert.Len(t, repo.created, 1)
}

func TestSubscribeWithoutPromoDuration(t *testing.T) {
	repo := newFakeRepository()
	repo.agents["agent-2"] = &models.Agent{ID: 8, UUID: "agent-2", Name: "Support Agent", BasePriceCents: 45000}

	svc := NewService(repo, FixedClock(date(2024, time.June, 1)))

	sub, err := svc.Subscribe(context.Background(), Actor{UserID: 42}, "agent-2")
	require.NoError(t, err)
	assert.Nil(t, sub.PromoEndDate)
}

func TestSubscribeUnauthenticatedPerformsNoWrite(t *testing.T) {
	repo := newFakeRepository()
	repo.agents["agent-1"] = &models.Agent{ID: 7, UUID: "agent-1", BasePriceCents: 30000}

	svc := NewService(repo, SystemClock())

	_, err := svc.Subscribe(context.Background(), Actor{}, "agent-1")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, repo.created)
}

func TestSubscribeAgentNotFound(t *testing.T) {
	svc := NewService(newFakeRepository(), SystemClock())

	_, err := svc.Subscribe(context.Background(), Actor{UserID: 1}, "missing")
	assert.ErrorIs(t, err, ErrAgentNotFound)
}

func TestSubscribeWrapsTransportError(t *testing.T) {
	repo := newFakeRepository()
	repo.failWith = errors.New("connection reset")

	svc := NewService(repo, SystemClock())

	_, err := svc.Subscribe(context.Background(), Actor{UserID: 1}, "agent-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAgentNotFound)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSubscribeAllowsRepeatSubscriptions(t *testing.T) {
	repo := newFakeRepository()
	repo.agents["agent-1"] = &models.Agent{ID: 7, UUID: "agent-1", BasePriceCents: 30000}

	svc := NewService(repo, SystemClock())
	actor := Actor{UserID: 42}

	_, err := svc.Subscribe(context.Background(), actor, "agent-1")
	require.NoError(t, err)
	_, err = svc.Subscribe(context.Background(), actor, "agent-1")
	require.NoError(t, err)

	assert.Len(t, repo.created, 2)
}

func TestCancelAuthorization(t *testing.T) {
	repo := newFakeRepository()
	repo.subscriptions["sub-1"] = &models.Subscription{
		UUID:   "sub-1",
		UserID: 42,
		Status: models.SubscriptionStatusActive,
	}

	svc := NewService(repo, SystemClock())

	_, err := svc.Cancel(context.Background(), Actor{}, "sub-1")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Cancel(context.Background(), Actor{UserID: 99, Role: roles.RoleUser}, "sub-1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	sub, err := svc.Cancel(context.Background(), Actor{UserID: 42, Role: roles.RoleUser}, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusCancelled, sub.Status)
}

func TestCancelByAdmin(t *testing.T) {
	repo := newFakeRepository()
	repo.subscriptions["sub-1"] = &models.Subscription{
		UUID:   "sub-1",
		UserID: 42,
		Status: models.SubscriptionStatusActive,
	}

	svc := NewService(repo, SystemClock())

	sub, err := svc.Cancel(context.Background(), Actor{UserID: 1, Role: roles.RoleAdmin}, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusCancelled, sub.Status)
}

func TestCancelIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	repo.subscriptions["sub-1"] = &models.Subscription{
		UUID:   "sub-1",
		UserID: 42,
		Status: models.SubscriptionStatusCancelled,
	}

	svc := NewService(repo, SystemClock())

	sub, err := svc.Cancel(context.Background(), Actor{UserID: 42}, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusCancelled, sub.Status)
}

func TestListForUserDerivesEffectivePrice(t *testing.T) {
	agent := &models.Agent{ID: 7, UUID: "agent-1", BasePriceCents: 30000, PromoPriceCents: int64Ptr(25000), PromoDurationMonths: intPtr(2)}
	promoEnd := date(2024, time.March, 15)

	repo := newFakeRepository()
	repo.subscriptions["sub-1"] = &models.Subscription{
		UUID:         "sub-1",
		UserID:       42,
		AgentID:      7,
		Status:       models.SubscriptionStatusActive,
		StartDate:    date(2024, time.January, 15),
		PromoEndDate: &promoEnd,
		Agent:        agent,
	}

	// Inside the promo window.
	svc := NewService(repo, FixedClock(date(2024, time.February, 1)))
	priced, err := svc.ListForUser(context.Background(), Actor{UserID: 42})
	require.NoError(t, err)
	require.Len(t, priced, 1)
	assert.Equal(t, StatePromotional, priced[0].State)
	assert.Equal(t, int64(25000), priced[0].PriceCents)

	// At the boundary the base price applies.
	svc = NewService(repo, FixedClock(promoEnd))
	priced, err = svc.ListForUser(context.Background(), Actor{UserID: 42})
	require.NoError(t, err)
	require.Len(t, priced, 1)
	assert.Equal(t, StateStandard, priced[0].State)
	assert.Equal(t, int64(30000), priced[0].PriceCents)
}

func TestListForUserUnauthenticated(t *testing.T) {
	svc := NewService(newFakeRepository(), SystemClock())

	_, err := svc.ListForUser(context.Background(), Actor{})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
