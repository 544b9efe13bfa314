package store

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"medication-app-server/internal/models"
	"medication-app-server/internal/schedule"
)

// DoseHistoryStore manages the append-only dose log. Entries are keyed by
// the deterministic dose identity, so repeating a log action for the same
// slot replaces the earlier record instead of duplicating it.
type DoseHistoryStore struct {
	db        *gorm.DB
	reminders Reminders
	logger    *zap.Logger

	// Now is the clock used for takenTime stamps. Tests override it.
	Now func() time.Time
}

// NewDoseHistoryStore creates a new dose history store.
func NewDoseHistoryStore(db *gorm.DB, reminders Reminders, logger *zap.Logger) *DoseHistoryStore {
	return &DoseHistoryStore{db: db, reminders: reminders, logger: logger, Now: time.Now}
}

// List returns the full dose history, most recent slot first.
func (s *DoseHistoryStore) List() ([]models.DoseHistoryEntry, error) {
	var entries []models.DoseHistoryEntry
	if err := s.db.Order("scheduled_time desc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list dose history: %w", err)
	}
	return entries, nil
}

// ListRange returns history entries whose scheduled time falls in [from, to].
// A zero bound is open.
func (s *DoseHistoryStore) ListRange(from, to time.Time) ([]models.DoseHistoryEntry, error) {
	query := s.db.Order("scheduled_time desc")
	if !from.IsZero() {
		query = query.Where("scheduled_time >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("scheduled_time <= ?", to)
	}

	var entries []models.DoseHistoryEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list dose history: %w", err)
	}
	return entries, nil
}

// UpsertByDoseID stores an entry, replacing any existing record with the
// same dose identity.
func (s *DoseHistoryStore) UpsertByDoseID(entry *models.DoseHistoryEntry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return upsertEntry(tx, entry)
	})
}

// LogDose records the outcome of one dose slot and applies the stock side
// effect. scheduledAt is the slot's scheduled instant, not the moment the
// user tapped: a late catch-up still logs against the correct slot.
//
// The whole transition runs in one transaction: the medication must exist
// (ErrMedicationNotFound otherwise, with no partial effect), the entry is
// upserted by dose identity, and stock is decremented only when the slot
// transitions into taken from a non-taken prior state. Re-logging taken for
// the same slot therefore never double-decrements.
func (s *DoseHistoryStore) LogDose(medicationID string, scheduledAt time.Time, status models.DoseStatus) (*models.DoseHistoryEntry, error) {
	if status != models.DoseTaken && status != models.DoseSkipped {
		return nil, ErrInvalidDoseStatus
	}

	var entry models.DoseHistoryEntry
	var medAfter models.Medication

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var med models.Medication
		if err := tx.First(&med, "id = ?", medicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMedicationNotFound
			}
			return fmt.Errorf("failed to load medication: %w", err)
		}

		anchor := scheduledAt.Format("15:04")
		doseID := schedule.DoseID(medicationID, schedule.DayKey(scheduledAt), anchor)

		var prior models.DoseHistoryEntry
		err := tx.First(&prior, "dose_id = ?", doseID).Error
		hadPrior := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load prior entry: %w", err)
		}

		if hadPrior {
			entry = prior
		}
		entry.DoseID = doseID
		entry.MedicationID = med.ID
		entry.MedicationName = med.Name
		entry.ScheduledTime = scheduledAt
		entry.Status = status
		if status == models.DoseTaken {
			now := s.Now()
			entry.TakenTime = &now
		} else {
			entry.TakenTime = nil
		}

		if err := upsertEntry(tx, &entry); err != nil {
			return err
		}

		// Decrement once per slot: only on the transition into taken.
		if status == models.DoseTaken && (!hadPrior || prior.Status != models.DoseTaken) {
			if med.Stock > 0 {
				med.Stock--
				if err := tx.Model(&models.Medication{}).Where("id = ?", med.ID).
					Update("stock", med.Stock).Error; err != nil {
					return fmt.Errorf("failed to decrement stock: %w", err)
				}
			}
		}

		medAfter = med
		return nil
	})
	if err != nil {
		return nil, err
	}

	if status == models.DoseTaken {
		s.reminders.CheckStock(medAfter)
	}

	s.logger.Info("dose logged",
		zap.String("doseId", entry.DoseID),
		zap.String("status", string(status)),
	)
	return &entry, nil
}

func upsertEntry(tx *gorm.DB, entry *models.DoseHistoryEntry) error {
	if entry.DoseID != "" {
		var existing models.DoseHistoryEntry
		err := tx.First(&existing, "dose_id = ?", entry.DoseID).Error
		if err == nil {
			entry.ID = existing.ID
			entry.CreatedAt = existing.CreatedAt
			if err := tx.Save(entry).Error; err != nil {
				return fmt.Errorf("failed to replace dose entry: %w", err)
			}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up dose entry: %w", err)
		}
	}
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to store dose entry: %w", err)
	}
	return nil
}
