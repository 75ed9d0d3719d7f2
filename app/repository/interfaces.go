package repository

import (
	"github.com/keysai/keysai/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByProvider(provider, providerUserID string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	Search(query string) ([]models.User, error)
}

// AgentRepository defines the interface for catalog-entry database operations
type AgentRepository interface {
	Create(agent *models.Agent) error
	GetByID(id uint) (*models.Agent, error)
	GetByUUID(uuid string) (*models.Agent, error)
	Update(agent *models.Agent) error
	Delete(id uint) error
	List(includeInactive bool) ([]models.Agent, error)
	Count() (int64, error)
}

// SubscriptionRepository defines the interface for subscription database operations
type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	GetByUUID(uuid string) (*models.Subscription, error)
	GetByUserID(userID uint) ([]models.Subscription, error)
	Update(sub *models.Subscription) error
	List(offset, limit int) ([]models.Subscription, error)
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	CountWithPromoWindow() (int64, error)
}

// ContactRepository defines the interface for contact info and messages
type ContactRepository interface {
	GetInfo() (*models.ContactInfo, error)
	SaveInfo(info *models.ContactInfo) error
	CreateMessage(msg *models.ContactMessage) error
	ListMessages(offset, limit int) ([]models.ContactMessage, error)
}

// Repositories groups all repository instances
type Repositories struct {
	User         UserRepository
	Agent        AgentRepository
	Subscription SubscriptionRepository
	Contact      ContactRepository
}
