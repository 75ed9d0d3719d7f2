package repository

import (
	"gorm.io/gorm"

	"github.com/keysai/keysai/app/models"
)

type agentRepository struct {
	db *gorm.DB
}

// NewAgentRepository creates a catalog-entry repository backed by GORM.
func NewAgentRepository(db *gorm.DB) AgentRepository {
	return &agentRepository{db: db}
}

func (r *agentRepository) Create(agent *models.Agent) error {
	return r.db.Create(agent).Error
}

func (r *agentRepository) GetByID(id uint) (*models.Agent, error) {
	var agent models.Agent
	if err := r.db.First(&agent, id).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) GetByUUID(uuid string) (*models.Agent, error) {
	var agent models.Agent
	if err := r.db.Where("uuid = ?", uuid).First(&agent).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) Update(agent *models.Agent) error {
	return r.db.Save(agent).Error
}

func (r *agentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Agent{}, id).Error
}

func (r *agentRepository) List(includeInactive bool) ([]models.Agent, error) {
	var agents []models.Agent
	q := r.db.Order("base_price_cents ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&agents).Error
	return agents, err
}

func (r *agentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Agent{}).Count(&count).Error
	return count, err
}
