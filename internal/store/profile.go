package store

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"medication-app-server/internal/models"
)

// ProfileStore manages the single local user profile.
type ProfileStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProfileStore creates a new profile store.
func NewProfileStore(db *gorm.DB, logger *zap.Logger) *ProfileStore {
	return &ProfileStore{db: db, logger: logger}
}

// Get returns the profile, or nil when onboarding has not happened yet.
func (s *ProfileStore) Get() (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

// Save creates the profile row on first save and replaces it afterwards.
func (s *ProfileStore) Save(profile *models.UserProfile) error {
	existing, err := s.Get()
	if err != nil {
		return err
	}
	if existing != nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	}
	if err := s.db.Save(profile).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// AnamnesisStore manages the single health questionnaire row.
type AnamnesisStore struct {
	db     *gorm.DB
	logger *zap.Logger

	// Now stamps LastUpdated on save. Tests override it.
	Now func() time.Time
}

// NewAnamnesisStore creates a new anamnesis store.
func NewAnamnesisStore(db *gorm.DB, logger *zap.Logger) *AnamnesisStore {
	return &AnamnesisStore{db: db, logger: logger, Now: time.Now}
}

// Get returns the questionnaire, or nil when none has been filled in.
func (s *AnamnesisStore) Get() (*models.Anamnesis, error) {
	var anamnesis models.Anamnesis
	err := s.db.First(&anamnesis).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load anamnesis: %w", err)
	}
	return &anamnesis, nil
}

// Save creates or replaces the questionnaire and bumps LastUpdated.
func (s *AnamnesisStore) Save(anamnesis *models.Anamnesis) error {
	existing, err := s.Get()
	if err != nil {
		return err
	}
	if existing != nil {
		anamnesis.ID = existing.ID
		anamnesis.CreatedAt = existing.CreatedAt
	}
	anamnesis.LastUpdated = s.Now()
	if err := s.db.Save(anamnesis).Error; err != nil {
		return fmt.Errorf("failed to save anamnesis: %w", err)
	}
	return nil
}
