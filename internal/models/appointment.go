package models

import (
	"time"
)

// Appointment represents a scheduled medical consultation
type Appointment struct {
	BaseModel
	DoctorName     string    `gorm:"size:255;not null" json:"doctorName"`
	Specialty      string    `gorm:"size:100" json:"specialty"`
	Location       string    `gorm:"size:255" json:"location"`
	Date           time.Time `gorm:"index" json:"date"`
	Notes          string    `gorm:"type:text" json:"notes"`
	RecipeImageURL string    `gorm:"size:512" json:"recipeImageUrl,omitempty"`
}
