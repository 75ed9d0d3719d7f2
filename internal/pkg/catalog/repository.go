package catalog

import (
	"gorm.io/gorm"

	"github.com/keysai/keysai/app/models"
	"github.com/keysai/keysai/app/repository"
)

// Repository provides the DB operations used by the admin catalog service.
type Repository interface {
	GetAgentByUUID(uuid string) (*models.Agent, error)
	CreateAgent(agent *models.Agent) error
	SaveAgent(agent *models.Agent) error
	DeleteAgent(id uint) error

	GetUserByID(id uint) (*models.User, error)
	SaveUser(user *models.User) error

	GetSubscriptionByUUID(uuid string) (*models.Subscription, error)
	SaveSubscription(sub *models.Subscription) error

	GetContactInfo() (*models.ContactInfo, error)
	SaveContactInfo(info *models.ContactInfo) error
}

type gormRepository struct {
	db      *gorm.DB
	contact repository.ContactRepository
}

// NewRepository creates a catalog repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db, contact: repository.NewContactRepository(db)}
}

func (r *gormRepository) GetAgentByUUID(uuid string) (*models.Agent, error) {
	var agent models.Agent
	if err := r.db.Where("uuid = ?", uuid).First(&agent).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *gormRepository) CreateAgent(agent *models.Agent) error {
	return r.db.Create(agent).Error
}

func (r *gormRepository) SaveAgent(agent *models.Agent) error {
	return r.db.Save(agent).Error
}

func (r *gormRepository) DeleteAgent(id uint) error {
	return r.db.Delete(&models.Agent{}, id).Error
}

func (r *gormRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) SaveUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *gormRepository) GetSubscriptionByUUID(uuid string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.Preload("User").Preload("Agent").Where("uuid = ?", uuid).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) SaveSubscription(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

// GetContactInfo returns the singleton contact row. The create-on-first-read
// behavior lives in the contact repository; this just delegates.
func (r *gormRepository) GetContactInfo() (*models.ContactInfo, error) {
	return r.contact.GetInfo()
}

func (r *gormRepository) SaveContactInfo(info *models.ContactInfo) error {
	return r.contact.SaveInfo(info)
}
