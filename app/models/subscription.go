package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription status is a closed enum. The admin panel and the API validate
// against it on every write; free-text statuses are rejected.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

// IsValidSubscriptionStatus reports whether s is a member of the status enum.
func IsValidSubscriptionStatus(s string) bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusCancelled:
		return true
	default:
		return false
	}
}

// Subscription links a user to a catalog entry. StartDate is immutable after
// creation; PromoEndDate is computed once at creation time and never rewritten
// when the promo window elapses (pricing state is derived on read).
type Subscription struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UUID         string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	AgentID      uint       `gorm:"not null;index" json:"agent_id"`
	Status       string     `gorm:"type:varchar(32);not null;default:'active';index" json:"status"`
	StartDate    time.Time  `gorm:"type:timestamp;not null" json:"start_date"`
	PromoEndDate *time.Time `gorm:"type:timestamp;default:null" json:"promo_end_date,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Agent *Agent `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
}

// BeforeCreate assigns the public UUID used in routes and API payloads.
func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == "" {
		s.UUID = uuid.NewString()
	}
	return nil
}

// IsCancelled reports whether the subscription has been cancelled.
func (s *Subscription) IsCancelled() bool {
	return s.Status == SubscriptionStatusCancelled
}
