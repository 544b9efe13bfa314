package models

import (
	"time"
)

// DoseStatus represents the outcome recorded for a dose slot
type DoseStatus string

const (
	DoseTaken   DoseStatus = "taken"
	DoseSkipped DoseStatus = "skipped"
	DosePending DoseStatus = "pending"
)

// DoseHistoryEntry is an immutable record of one administration event.
// DoseID is the deterministic composite key {medicationId}::{dayKey}::{HH:mm},
// so two log attempts for the same slot collide and replace instead of
// duplicating.
type DoseHistoryEntry struct {
	BaseModel
	DoseID         string     `gorm:"size:100;uniqueIndex" json:"doseId"`
	MedicationID   string     `gorm:"size:36;index" json:"medicationId"`
	MedicationName string     `gorm:"size:255" json:"medicationName"`
	ScheduledTime  time.Time  `json:"scheduledTime"`
	Status         DoseStatus `gorm:"size:20;default:'pending'" json:"status"`
	TakenTime      *time.Time `json:"takenTime,omitempty"`
}
