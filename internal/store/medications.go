package store

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"medication-app-server/internal/models"
)

// MedicationStore manages medication records and keeps the reminder
// collaborator in sync with every mutation.
type MedicationStore struct {
	db        *gorm.DB
	reminders Reminders
	logger    *zap.Logger
}

// NewMedicationStore creates a new medication store.
func NewMedicationStore(db *gorm.DB, reminders Reminders, logger *zap.Logger) *MedicationStore {
	return &MedicationStore{db: db, reminders: reminders, logger: logger}
}

// List returns all medications, oldest first.
func (s *MedicationStore) List() ([]models.Medication, error) {
	var meds []models.Medication
	if err := s.db.Order("created_at asc").Find(&meds).Error; err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return meds, nil
}

// Get returns one medication by ID.
func (s *MedicationStore) Get(id string) (*models.Medication, error) {
	var med models.Medication
	if err := s.db.First(&med, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMedicationNotFound
		}
		return nil, fmt.Errorf("failed to load medication: %w", err)
	}
	return &med, nil
}

// Create persists a new medication and registers its reminders.
func (s *MedicationStore) Create(med *models.Medication) error {
	med.Times = normalizeTimes(med.Times)
	if err := s.db.Create(med).Error; err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}

	if err := s.reminders.ScheduleMedication(*med); err != nil {
		s.logger.Warn("failed to schedule reminders", zap.String("medicationId", med.ID), zap.Error(err))
	}
	s.reminders.CheckStock(*med)

	s.logger.Info("medication created", zap.String("medicationId", med.ID), zap.String("name", med.Name))
	return nil
}

// Update replaces every field of an existing medication except its ID and
// creation timestamp, then reschedules reminders.
func (s *MedicationStore) Update(id string, med *models.Medication) error {
	existing, err := s.Get(id)
	if err != nil {
		return err
	}

	med.ID = existing.ID
	med.CreatedAt = existing.CreatedAt
	med.Times = normalizeTimes(med.Times)
	if err := s.db.Save(med).Error; err != nil {
		return fmt.Errorf("failed to update medication: %w", err)
	}

	if err := s.reminders.ScheduleMedication(*med); err != nil {
		s.logger.Warn("failed to reschedule reminders", zap.String("medicationId", med.ID), zap.Error(err))
	}
	s.reminders.CheckStock(*med)
	return nil
}

// Delete removes a medication and cancels its reminders. History entries
// referencing it are kept; they stay valid as orphaned records.
func (s *MedicationStore) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.db.Delete(&models.Medication{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}

	s.reminders.CancelMedication(id)
	s.logger.Info("medication deleted", zap.String("medicationId", id))
	return nil
}

// AddStock increases the remaining unit count by amount.
func (s *MedicationStore) AddStock(id string, amount int) (*models.Medication, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("restock amount must be positive, got %d", amount)
	}

	med, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	med.Stock += amount
	if err := s.db.Save(med).Error; err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	s.reminders.CheckStock(*med)
	return med, nil
}

// normalizeTimes strips empty anchors so stored records never carry blank
// entries from form input. Malformed anchors are kept; the schedule engine
// discards them without failing the rest.
func normalizeTimes(times []string) []string {
	out := make([]string, 0, len(times))
	for _, t := range times {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
