package repository

import (
	"errors"

	"gorm.io/gorm"

	"dentalia/cmd/internal/domain/entity"
)

type DefaultAppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *DefaultAppointmentRepository {
	return &DefaultAppointmentRepository{db: db}
}

func (a *DefaultAppointmentRepository) FindByID(id string) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := a.db.Where("id = ?", id).First(&appt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (a *DefaultAppointmentRepository) FindAll() ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.Where("is_deleted = ?", false).Order("date asc").Find(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) FindByPatientDni(dni string) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.
		Where("is_deleted = ?", false).
		Where("patient_dni = ?", dni).
		Order("date asc").
		Find(&appts).Error
	return appts, err
}

// FindBetween returns the live appointments whose slot starts inside
// the half-open window [start, end), in epoch millis.
func (a *DefaultAppointmentRepository) FindBetween(start, end int64) ([]*entity.Appointment, error) {
	if start >= end {
		return nil, errors.New("start time must be before end time")
	}

	var appts []*entity.Appointment
	err := a.db.
		Where("is_deleted = ?", false).
		Where("date >= ?", start).
		Where("date < ?", end).
		Order("date asc").
		Find(&appts).Error
	return appts, err
}

// CountAtSlot counts live appointments starting inside [slotStart,
// slotEnd), ignoring the one being edited. A non-zero count means the
// slot has been taken since availability was computed.
func (a *DefaultAppointmentRepository) CountAtSlot(slotStart, slotEnd int64, excludeID string) (int64, error) {
	var count int64
	err := a.db.Model(&entity.Appointment{}).
		Where("is_deleted = ?", false).
		Where("date >= ?", slotStart).
		Where("date < ?", slotEnd).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count, err
}

func (a *DefaultAppointmentRepository) Create(appointment *entity.Appointment) error {
	return a.db.Create(appointment).Error
}

func (a *DefaultAppointmentRepository) Save(appointment *entity.Appointment) error {
	return a.db.Save(appointment).Error
}

// Delete is a soft delete: the row is kept for the audit trail but
// stops occupying its slot everywhere.
func (a *DefaultAppointmentRepository) Delete(appointment *entity.Appointment) error {
	appointment.IsDeleted = true
	return a.db.Save(appointment).Error
}
