package models

// ProfileType distinguishes who operates the app
type ProfileType string

const (
	ProfilePatient   ProfileType = "patient"
	ProfileCaregiver ProfileType = "caregiver"
)

// UserProfile is the single local profile. There is no authentication;
// exactly one row exists once onboarding completes.
type UserProfile struct {
	BaseModel
	Name                string      `gorm:"size:255" json:"name"`
	Type                ProfileType `gorm:"size:20;default:'patient'" json:"type"`
	Email               string      `gorm:"size:255" json:"email,omitempty"`
	Phone               string      `gorm:"size:50" json:"phone,omitempty"`
	Gender              string      `gorm:"size:20" json:"gender,omitempty"`
	BirthYear           int         `json:"birthYear,omitempty"`
	PhotoURL            string      `gorm:"size:512" json:"photoUrl,omitempty"`
	OnboardingCompleted bool        `gorm:"default:false" json:"onboardingCompleted"`
}
