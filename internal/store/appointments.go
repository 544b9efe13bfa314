package store

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"medication-app-server/internal/models"
)

// AppointmentStore manages medical consultation records.
type AppointmentStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAppointmentStore creates a new appointment store.
func NewAppointmentStore(db *gorm.DB, logger *zap.Logger) *AppointmentStore {
	return &AppointmentStore{db: db, logger: logger}
}

// List returns all appointments ordered by date.
func (s *AppointmentStore) List() ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := s.db.Order("date asc").Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

// Upcoming returns appointments from now onward, soonest first.
func (s *AppointmentStore) Upcoming(now time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := s.db.Where("date >= ?", now).Order("date asc").Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	return appts, nil
}

// Get returns one appointment by ID.
func (s *AppointmentStore) Get(id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.db.First(&appt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	return &appt, nil
}

// Create persists a new appointment.
func (s *AppointmentStore) Create(appt *models.Appointment) error {
	if err := s.db.Create(appt).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	s.logger.Info("appointment created", zap.String("appointmentId", appt.ID), zap.Time("date", appt.Date))
	return nil
}

// Update replaces an existing appointment's fields.
func (s *AppointmentStore) Update(id string, appt *models.Appointment) error {
	existing, err := s.Get(id)
	if err != nil {
		return err
	}

	appt.ID = existing.ID
	appt.CreatedAt = existing.CreatedAt
	if err := s.db.Save(appt).Error; err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	return nil
}

// Delete removes an appointment.
func (s *AppointmentStore) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.db.Delete(&models.Appointment{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}
