package models

import (
	"time"
)

// FamilyHistory collects hereditary conditions for the questionnaire
type FamilyHistory struct {
	Hypertension bool   `json:"hypertension"`
	Diabetes     bool   `json:"diabetes"`
	HeartDisease bool   `json:"heartDisease"`
	Cancer       bool   `json:"cancer"`
	Other        string `json:"other,omitempty"`
}

// Anamnesis is the health questionnaire. Single row, replaced on save.
type Anamnesis struct {
	BaseModel
	ChronicConditions []string      `gorm:"serializer:json" json:"chronicConditions"`
	Allergies         []string      `gorm:"serializer:json" json:"allergies"`
	Surgeries         []string      `gorm:"serializer:json" json:"surgeries"`
	FamilyHistory     FamilyHistory `gorm:"serializer:json" json:"familyHistory"`
	OtherNotes        string        `gorm:"type:text" json:"otherNotes,omitempty"`
	LastUpdated       time.Time     `json:"lastUpdated"`
}
