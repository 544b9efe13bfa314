package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"medication-app-server/internal/models"
)

// fakeReminders records collaborator calls for assertions.
type fakeReminders struct {
	scheduled []string
	cancelled []string
	lowStock  []string
}

func (f *fakeReminders) ScheduleMedication(med models.Medication) error {
	f.scheduled = append(f.scheduled, med.ID)
	return nil
}

func (f *fakeReminders) CancelMedication(medicationID string) {
	f.cancelled = append(f.cancelled, medicationID)
}

func (f *fakeReminders) CheckStock(med models.Medication) {
	if med.LowStock() {
		f.lowStock = append(f.lowStock, med.ID)
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Medication{},
		&models.DoseHistoryEntry{},
		&models.Appointment{},
		&models.UserProfile{},
		&models.Anamnesis{},
	))
	return db
}

func setupStores(t *testing.T) (*MedicationStore, *DoseHistoryStore, *fakeReminders) {
	db := setupTestDB(t)
	reminders := &fakeReminders{}
	logger := zap.NewNop()
	return NewMedicationStore(db, reminders, logger),
		NewDoseHistoryStore(db, reminders, logger),
		reminders
}
