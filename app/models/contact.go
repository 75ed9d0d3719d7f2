package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ContactInfo is the company contact block shown on the public contact page.
// A single row is kept and edited through the admin panel.
type ContactInfo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(200)" json:"email" validate:"omitempty,email"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone" validate:"max=50"`
	Address   string    `gorm:"type:varchar(255)" json:"address" validate:"max=255"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ci *ContactInfo) Validate() error {
	v := validator.New()

	return v.Struct(ci)
}

// ContactMessage is a contact-form submission. Messages are persisted and
// additionally forwarded by mail to the configured contact address.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Email     string    `gorm:"type:varchar(200);not null" json:"email" validate:"required,email"`
	Message   string    `gorm:"type:text;not null" json:"message" validate:"required,min=10,max=5000"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (cm *ContactMessage) Validate() error {
	v := validator.New()

	return v.Struct(cm)
}
