package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keysai/keysai/app/models"
	"github.com/keysai/keysai/internal/pkg/pricing"
	"github.com/keysai/keysai/internal/pkg/roles"
)

type fakeRepository struct {
	agents        map[string]*models.Agent
	users         map[uint]*models.User
	subscriptions map[string]*models.Subscription
	contact       *models.ContactInfo
	deleted       []uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		agents:        map[string]*models.Agent{},
		users:         map[uint]*models.User{},
		subscriptions: map[string]*models.Subscription{},
		contact:       &models.ContactInfo{ID: 1},
	}
}

func (f *fakeRepository) GetAgentByUUID(uuid string) (*models.Agent, error) {
	if a, ok := f.agents[uuid]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) CreateAgent(agent *models.Agent) error {
	agent.ID = uint(len(f.agents) + 1)
	if agent.UUID == "" {
		agent.UUID = agent.Name
	}
	f.agents[agent.UUID] = agent
	return nil
}

func (f *fakeRepository) SaveAgent(agent *models.Agent) error {
	f.agents[agent.UUID] = agent
	return nil
}

func (f *fakeRepository) DeleteAgent(id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepository) GetUserByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) SaveUser(user *models.User) error {
	f.users[user.ID] = user
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

func (f *fakeRepository) GetContactInfo() (*models.ContactInfo, error) {
	return f.contact, nil
}

func (f *fakeRepository) SaveContactInfo(info *models.ContactInfo) error {
	f.contact = info
	return nil
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

var (
	admin = pricing.Actor{UserID: 1, Role: roles.RoleAdmin}
	user  = pricing.Actor{UserID: 2, Role: roles.RoleUser}
)

func TestCreateAgentRequiresAdmin(t *testing.T) {
	svc := NewService(newFakeRepository())
	in := AgentInput{Name: "Sales Agent", BasePriceCents: 30000, IsActive: true}

	_, err := svc.CreateAgent(context.Background(), pricing.Actor{}, in)
	assert.ErrorIs(t, err, pricing.ErrUnauthenticated)

	_, err = svc.CreateAgent(context.Background(), user, in)
	assert.ErrorIs(t, err, pricing.ErrUnauthorized)

	agent, err := svc.CreateAgent(context.Background(), admin, in)
	require.NoError(t, err)
	assert.Equal(t, "Sales Agent", agent.Name)
}

func TestCreateAgentPromoInvariant(t *testing.T) {
	svc := NewService(newFakeRepository())

	tests := []struct {
		name string
		in   AgentInput
		ok   bool
	}{
		{
			name: "price without duration rejected",
			in:   AgentInput{Name: "Sales Agent", BasePriceCents: 30000, PromoPriceCents: int64Ptr(25000)},
		},
		{
			name: "duration without price rejected",
			in:   AgentInput{Name: "Sales Agent", BasePriceCents: 30000, PromoDurationMonths: intPtr(2)},
		},
		{
			name: "promo above base rejected",
			in:   AgentInput{Name: "Sales Agent", BasePriceCents: 30000, PromoPriceCents: int64Ptr(35000), PromoDurationMonths: intPtr(2)},
		},
		{
			name: "zero-month promo rejected",
			in:   AgentInput{Name: "Sales Agent", BasePriceCents: 30000, PromoPriceCents: int64Ptr(25000), PromoDurationMonths: intPtr(0)},
		},
		{
			name: "consistent promo accepted",
			in:   AgentInput{Name: "Sales Agent", BasePriceCents: 30000, PromoPriceCents: int64Ptr(25000), PromoDurationMonths: intPtr(2)},
			ok:   true,
		},
		{
			name: "no promo accepted",
			in:   AgentInput{Name: "Support Agent", BasePriceCents: 45000},
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAgent(context.Background(), admin, tt.in)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, pricing.IsValidation(err), "expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateAgentNotFound(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.UpdateAgent(context.Background(), admin, "missing", AgentInput{Name: "Sales Agent", BasePriceCents: 30000})
	assert.ErrorIs(t, err, pricing.ErrAgentNotFound)
}

func TestDeleteAgent(t *testing.T) {
	repo := newFakeRepository()
	repo.agents["agent-1"] = &models.Agent{ID: 7, UUID: "agent-1", Name: "Sales Agent", BasePriceCents: 30000}
	svc := NewService(repo)

	require.NoError(t, svc.DeleteAgent(context.Background(), admin, "agent-1"))
	assert.Equal(t, []uint{7}, repo.deleted)

	assert.ErrorIs(t, svc.DeleteAgent(context.Background(), user, "agent-1"), pricing.ErrUnauthorized)
}

func TestUpdateUserRole(t *testing.T) {
	repo := newFakeRepository()
	repo.users[2] = &models.User{ID: 2, Role: models.ROLE_USER}
	svc := NewService(repo)

	_, err := svc.UpdateUserRole(context.Background(), user, 2, models.ROLE_ADMIN)
	assert.ErrorIs(t, err, pricing.ErrUnauthorized)

	_, err = svc.UpdateUserRole(context.Background(), admin, 2, "moderator")
	assert.True(t, pricing.IsValidation(err))

	_, err = svc.UpdateUserRole(context.Background(), admin, 99, models.ROLE_ADMIN)
	assert.ErrorIs(t, err, ErrUserNotFound)

	updated, err := svc.UpdateUserRole(context.Background(), admin, 2, models.ROLE_ADMIN)
	require.NoError(t, err)
	assert.Equal(t, models.ROLE_ADMIN, updated.Role)
}

func TestUpdateSubscriptionStatus(t *testing.T) {
	repo := newFakeRepository()
	repo.subscriptions["sub-1"] = &models.Subscription{UUID: "sub-1", Status: models.SubscriptionStatusActive}
	svc := NewService(repo)

	_, err := svc.UpdateSubscriptionStatus(context.Background(), admin, "sub-1", "suspended")
	assert.True(t, pricing.IsValidation(err), "free-text status must be rejected")

	_, err = svc.UpdateSubscriptionStatus(context.Background(), admin, "missing", models.SubscriptionStatusCancelled)
	assert.ErrorIs(t, err, pricing.ErrSubscriptionNotFound)

	sub, err := svc.UpdateSubscriptionStatus(context.Background(), admin, "sub-1", models.SubscriptionStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusCancelled, sub.Status)
}

func TestUpdateContactInfo(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.UpdateContactInfo(context.Background(), user, "info@keysai.io", "+49 30 1234", "Berlin")
	assert.ErrorIs(t, err, pricing.ErrUnauthorized)

	_, err = svc.UpdateContactInfo(context.Background(), admin, "not-an-email", "", "")
	assert.True(t, pricing.IsValidation(err))

	info, err := svc.UpdateContactInfo(context.Background(), admin, "info@keysai.io", "+49 30 1234", "Berlin")
	require.NoError(t, err)
	assert.Equal(t, "info@keysai.io", info.Email)
}
