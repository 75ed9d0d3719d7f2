package pricing

import (
	"gorm.io/gorm"

	"github.com/keysai/keysai/app/models"
)

// Repository provides the DB operations used by the subscription service.
type Repository interface {
	GetAgentByUUID(uuid string) (*models.Agent, error)
	CreateSubscription(sub *models.Subscription) error
	GetSubscriptionByUUID(uuid string) (*models.Subscription, error)
	SaveSubscription(sub *models.Subscription) error
	ListSubscriptionsByUser(userID uint) ([]models.Subscription, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a subscription repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetAgentByUUID(uuid string) (*models.Agent, error) {
	var agent models.Agent
	if err := r.db.Where("uuid = ?", uuid).First(&agent).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *gormRepository) CreateSubscription(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *gormRepository) GetSubscriptionByUUID(uuid string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.Preload("Agent").Where("uuid = ?", uuid).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) SaveSubscription(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

func (r *gormRepository) ListSubscriptionsByUser(userID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("Agent").Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error
	return subs, err
}
