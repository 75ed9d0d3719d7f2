package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/keysai/keysai/app/models"
)

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a contact repository backed by GORM.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// GetInfo returns the singleton contact row, creating an empty one on first use.
func (r *contactRepository) GetInfo() (*models.ContactInfo, error) {
	var info models.ContactInfo
	err := r.db.First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		info = models.ContactInfo{}
		if err := r.db.Create(&info).Error; err != nil {
			return nil, err
		}
		return &info, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *contactRepository) SaveInfo(info *models.ContactInfo) error {
	return r.db.Save(info).Error
}

func (r *contactRepository) CreateMessage(msg *models.ContactMessage) error {
	return r.db.Create(msg).Error
}

func (r *contactRepository) ListMessages(offset, limit int) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&msgs).Error
	return msgs, err
}
