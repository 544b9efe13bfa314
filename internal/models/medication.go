package models

// MedicationForm represents the pharmaceutical form of a medication
type MedicationForm string

const (
	FormTablet    MedicationForm = "tablet"
	FormCapsule   MedicationForm = "capsule"
	FormLiquid    MedicationForm = "liquid"
	FormInjection MedicationForm = "injection"
	FormOintment  MedicationForm = "ointment"
	FormDrops     MedicationForm = "drops"
)

// Frequency determines how a medication's time anchors expand into dose slots
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyEvery8h  Frequency = "every-8h"
	FrequencyEvery12h Frequency = "every-12h"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyAsNeeded Frequency = "as-needed"
)

// Medication represents a user-defined drug regimen
type Medication struct {
	BaseModel
	Name                string         `gorm:"size:255;not null" json:"name"`
	Dosage              string         `gorm:"size:100" json:"dosage"`
	Form                MedicationForm `gorm:"size:20" json:"form"`
	Frequency           Frequency      `gorm:"size:20;default:'daily'" json:"frequency"`
	Times               []string       `gorm:"serializer:json" json:"times"`
	WeekDays            []int          `gorm:"serializer:json" json:"weekDays,omitempty"` // 0=Sunday .. 6=Saturday
	Stock               int            `gorm:"default:0" json:"stock"`
	StockAlertThreshold int            `gorm:"default:0" json:"stockAlertThreshold"`
	Instructions        string         `gorm:"type:text" json:"instructions"`
	Doctor              string         `gorm:"size:255" json:"doctor"`
	Condition           string         `gorm:"size:255" json:"condition"`
	Color               string         `gorm:"size:20" json:"color"`
}

// LowStock reports whether the remaining stock has reached the alert threshold.
func (m *Medication) LowStock() bool {
	return m.Stock <= m.StockAlertThreshold
}
