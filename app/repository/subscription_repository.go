package repository

import (
	"gorm.io/gorm"

	"github.com/keysai/keysai/app/models"
)

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a subscription repository backed by GORM.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *subscriptionRepository) GetByUUID(uuid string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.Preload("User").Preload("Agent").Where("uuid = ?", uuid).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) GetByUserID(userID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("Agent").Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error
	return subs, err
}

func (r *subscriptionRepository) Update(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

// List returns subscriptions with user and agent joins for the admin table.
func (r *subscriptionRepository) List(offset, limit int) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("User").Preload("Agent").
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&subs).Error
	return subs, err
}

func (r *subscriptionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountWithPromoWindow counts active subscriptions whose promo window is
// still open at query time.
func (r *subscriptionRepository) CountWithPromoWindow() (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("status = ? AND promo_end_date IS NOT NULL AND promo_end_date > NOW()", models.SubscriptionStatusActive).
		Count(&count).Error
	return count, err
}
