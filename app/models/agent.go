package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Agent is a purchasable catalog entry with base and optional promotional
// pricing. Prices are stored as integer euro cents so month-over-month math
// never accumulates float drift.
type Agent struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	UUID                string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	Name                string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=3,max=150"`
	Description         string         `gorm:"type:text" json:"description" validate:"max=2000"`
	BasePriceCents      int64          `gorm:"not null" json:"base_price_cents" validate:"required,gt=0"`
	PromoPriceCents     *int64         `gorm:"default:null" json:"promo_price_cents,omitempty"`
	PromoDurationMonths *int           `gorm:"default:null" json:"promo_duration_months,omitempty"`
	IsActive            bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt           time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns the public UUID used in routes and API payloads.
func (a *Agent) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == "" {
		a.UUID = uuid.NewString()
	}
	return nil
}

// HasPromo reports whether the entry carries a complete promotional offer.
// Legacy rows with only one of the two promo fields set are treated as
// having no promo.
func (a *Agent) HasPromo() bool {
	return a.PromoPriceCents != nil && a.PromoDurationMonths != nil
}

// Validate checks field constraints plus the promo invariant: promo price and
// promo duration are either both present or both absent, and a promo price
// must undercut the base price.
func (a *Agent) Validate() error {
	v := validator.New()
	if err := v.Struct(a); err != nil {
		return err
	}

	if (a.PromoPriceCents == nil) != (a.PromoDurationMonths == nil) {
		return errors.New("promo price and promo duration must be set together")
	}
	if a.PromoPriceCents != nil {
		if *a.PromoPriceCents <= 0 {
			return errors.New("promo price must be positive")
		}
		if *a.PromoPriceCents >= a.BasePriceCents {
			return fmt.Errorf("promo price %d must be below base price %d", *a.PromoPriceCents, a.BasePriceCents)
		}
		if *a.PromoDurationMonths < 1 {
			return errors.New("promo duration must be at least one month")
		}
	}
	return nil
}
