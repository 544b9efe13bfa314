// Package store holds the persistence repositories. Each store owns the
// gorm handle and writes through to SQLite before reporting success, so the
// database is the single source of truth.
package store

import (
	"errors"

	"medication-app-server/internal/models"
)

var (
	// ErrMedicationNotFound is returned when an operation references a
	// medication that does not exist (or no longer exists).
	ErrMedicationNotFound = errors.New("medication not found")

	// ErrAppointmentNotFound is returned for unknown appointment IDs.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidDoseStatus is returned when a dose log uses a status other
	// than taken or skipped.
	ErrInvalidDoseStatus = errors.New("dose status must be taken or skipped")
)

// Reminders is the notification collaborator consumed by the stores.
type Reminders interface {
	ScheduleMedication(med models.Medication) error
	CancelMedication(medicationID string)
	CheckStock(med models.Medication)
}
