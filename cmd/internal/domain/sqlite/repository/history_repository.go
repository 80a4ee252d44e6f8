package repository

import (
	"gorm.io/gorm"

	"dentalia/cmd/internal/domain/entity"
)

type DefaultHistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *DefaultHistoryRepository {
	return &DefaultHistoryRepository{db: db}
}

// FindByPatientDni returns a patient's clinical history, newest first.
func (h *DefaultHistoryRepository) FindByPatientDni(dni string) ([]*entity.HistoryEntry, error) {
	var entries []*entity.HistoryEntry
	err := h.db.
		Where("patient_dni = ?", dni).
		Order("created_at desc").
		Find(&entries).Error
	return entries, err
}

func (h *DefaultHistoryRepository) Save(entry *entity.HistoryEntry) error {
	return h.db.Save(entry).Error
}
