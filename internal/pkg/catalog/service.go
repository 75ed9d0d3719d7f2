package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/keysai/keysai/app/models"
	"github.com/keysai/keysai/internal/pkg/pricing"
	"github.com/keysai/keysai/internal/pkg/roles"
)

// ErrUserNotFound is returned when a role change targets a missing user.
var ErrUserNotFound = errors.New("user not found")

// AgentInput carries the admin-editable fields of a catalog entry.
type AgentInput struct {
	Name                string
	Description         string
	BasePriceCents      int64
	PromoPriceCents     *int64
	PromoDurationMonths *int
	IsActive            bool
}

// Service implements the admin mutations on the catalog, user roles and
// subscription statuses. Every mutation checks the actor's capability here,
// not only in the router middleware, so a handler wiring mistake cannot
// expose an unguarded write.
type Service struct {
	repo Repository
}

// NewService creates a catalog service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a catalog service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// CreateAgent validates and persists a new catalog entry.
func (s *Service) CreateAgent(ctx context.Context, actor pricing.Actor, in AgentInput) (*models.Agent, error) {
	_ = ctx
	if err := authorize(actor, roles.ManageCatalog); err != nil {
		return nil, err
	}

	agent := &models.Agent{
		Name:                in.Name,
		Description:         in.Description,
		BasePriceCents:      in.BasePriceCents,
		PromoPriceCents:     in.PromoPriceCents,
		PromoDurationMonths: in.PromoDurationMonths,
		IsActive:            in.IsActive,
	}
	if err := agent.Validate(); err != nil {
		return nil, pricing.NewValidationError(err)
	}

	if err := s.repo.CreateAgent(agent); err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	return agent, nil
}

// UpdateAgent validates and persists changes to an existing catalog entry.
func (s *Service) UpdateAgent(ctx context.Context, actor pricing.Actor, uuid string, in AgentInput) (*models.Agent, error) {
	_ = ctx
	if err := authorize(actor, roles.ManageCatalog); err != nil {
		return nil, err
	}

	agent, err := s.repo.GetAgentByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pricing.ErrAgentNotFound
		}
		return nil, fmt.Errorf("fetch agent %s: %w", uuid, err)
	}

	agent.Name = in.Name
	agent.Description = in.Description
	agent.BasePriceCents = in.BasePriceCents
	agent.PromoPriceCents = in.PromoPriceCents
	agent.PromoDurationMonths = in.PromoDurationMonths
	agent.IsActive = in.IsActive

	if err := agent.Validate(); err != nil {
		return nil, pricing.NewValidationError(err)
	}

	if err := s.repo.SaveAgent(agent); err != nil {
		return nil, fmt.Errorf("save agent %s: %w", uuid, err)
	}
	return agent, nil
}

// DeleteAgent soft-deletes a catalog entry. Existing subscriptions keep their
// stored promo window; only new subscriptions are prevented.
func (s *Service) DeleteAgent(ctx context.Context, actor pricing.Actor, uuid string) error {
	_ = ctx
	if err := authorize(actor, roles.ManageCatalog); err != nil {
		return err
	}

	agent, err := s.repo.GetAgentByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pricing.ErrAgentNotFound
		}
		return fmt.Errorf("fetch agent %s: %w", uuid, err)
	}

	if err := s.repo.DeleteAgent(agent.ID); err != nil {
		return fmt.Errorf("delete agent %s: %w", uuid, err)
	}
	return nil
}

// UpdateUserRole changes a user's role within the closed role enum.
func (s *Service) UpdateUserRole(ctx context.Context, actor pricing.Actor, userID uint, role string) (*models.User, error) {
	_ = ctx
	if err := authorize(actor, roles.ManageUsers); err != nil {
		return nil, err
	}

	if role != models.ROLE_USER && role != models.ROLE_ADMIN {
		return nil, pricing.NewValidationError(fmt.Errorf("unknown role %q", role))
	}

	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user %d: %w", userID, err)
	}

	user.Role = role
	if err := s.repo.SaveUser(user); err != nil {
		return nil, fmt.Errorf("save user %d: %w", userID, err)
	}
	return user, nil
}

// UpdateSubscriptionStatus sets a subscription status within the closed enum.
func (s *Service) UpdateSubscriptionStatus(ctx context.Context, actor pricing.Actor, uuid string, status string) (*models.Subscription, error) {
	_ = ctx
	if err := authorize(actor, roles.ManageSubscriptions); err != nil {
		return nil, err
	}

	if !models.IsValidSubscriptionStatus(status) {
		return nil, pricing.NewValidationError(fmt.Errorf("unknown subscription status %q", status))
	}

	sub, err := s.repo.GetSubscriptionByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pricing.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("fetch subscription %s: %w", uuid, err)
	}

	sub.Status = status
	if err := s.repo.SaveSubscription(sub); err != nil {
		return nil, fmt.Errorf("save subscription %s: %w", uuid, err)
	}
	return sub, nil
}

// UpdateContactInfo replaces the public contact block.
func (s *Service) UpdateContactInfo(ctx context.Context, actor pricing.Actor, email, phone, address string) (*models.ContactInfo, error) {
	_ = ctx
	if err := authorize(actor, roles.ManageContactInfo); err != nil {
		return nil, err
	}

	info, err := s.repo.GetContactInfo()
	if err != nil {
		return nil, fmt.Errorf("fetch contact info: %w", err)
	}

	info.Email = email
	info.Phone = phone
	info.Address = address
	if err := info.Validate(); err != nil {
		return nil, pricing.NewValidationError(err)
	}

	if err := s.repo.SaveContactInfo(info); err != nil {
		return nil, fmt.Errorf("save contact info: %w", err)
	}
	return info, nil
}

func authorize(actor pricing.Actor, c roles.Capability) error {
	if !actor.Authenticated() {
		return pricing.ErrUnauthenticated
	}
	if !actor.Role.Can(c) {
		return pricing.ErrUnauthorized
	}
	return nil
}
