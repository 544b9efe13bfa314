package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medication-app-server/internal/models"
	"medication-app-server/internal/schedule"
)

func createMedication(t *testing.T, meds *MedicationStore, stock int) *models.Medication {
	med := &models.Medication{
		Name:                "Amoxicillin",
		Dosage:              "500mg",
		Frequency:           models.FrequencyDaily,
		Times:               []string{"08:00", "20:00"},
		Stock:               stock,
		StockAlertThreshold: 2,
	}
	require.NoError(t, meds.Create(med))
	return med
}

func TestLogDose_TakenDecrementsStock(t *testing.T) {
	meds, history, _ := setupStores(t)
	med := createMedication(t, meds, 10)

	scheduledAt := time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local)
	entry, err := history.LogDose(med.ID, scheduledAt, models.DoseTaken)
	require.NoError(t, err)

	assert.Equal(t, schedule.DoseID(med.ID, "2024-01-01", "08:00"), entry.DoseID)
	assert.Equal(t, models.DoseTaken, entry.Status)
	assert.Equal(t, med.Name, entry.MedicationName)
	require.NotNil(t, entry.TakenTime)

	stored, err := meds.Get(med.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, stored.Stock)
}

func TestLogDose_IdempotentOnRepeat(t *testing.T) {
	meds, history, _ := setupStores(t)
	med := createMedication(t, meds, 10)

	scheduledAt := time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local)
	first, err := history.LogDose(med.ID, scheduledAt, models.DoseTaken)
	require.NoError(t, err)
	second, err := history.LogDose(med.ID, scheduledAt, models.DoseTaken)
	require.NoError(t, err)

	// Same slot, same record, one decrement.
	assert.Equal(t, first.DoseID, second.DoseID)

	entries, err := history.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	stored, err := meds.Get(med.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, stored.Stock)
}

func TestLogDose_SkippedDoesNotTouchStock(t *testing.T) {
	meds, history, _ := setupStores(t)
	med := createMedication(t, meds, 10)

	scheduledAt := time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local)
	entry, err := history.LogDose(med.ID, scheduledAt, models.DoseSkipped)
	require.NoError(t, err)
	assert.Nil(t, entry.TakenTime)

	stored, err := meds.Get(med.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Stock)
}

func TestLogDose_SkipThenTakeDecrementsOnce(t *testing.T) {
	meds, history, _ := setupStores(t)
	med := createMedication(t, meds, 10)

	scheduledAt := time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local)
	_, err := history.LogDose(med.ID, scheduledAt, models.DoseSkipped)
	require.NoError(t, err)
	_, err = history.LogDose(med.ID, scheduledAt, models.DoseTaken)
	require.NoError(t, err)

	entries, err := history.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.DoseTaken, entries[0].Status)

	stored, err := meds.Get(med.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, stored.Stock)
}

func TestLogDose_StockFloor(t *testing.T) {
	meds, history, _ := setupStores(t)
	med := createMedication(t, meds, 0)

	scheduledAt := time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local)
	_, err := history.LogDose(med.ID, scheduledAt, models.DoseTaken)
	require.NoError(t, err)

	stored, err := meds.Get(med.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Stock)
}

func TestLogDose_UnknownMedication(t *testing.T) {
	_, history, _ := setupStores(t)

	_, err := history.LogDose("missing", time.Now(), models.DoseTaken)
	assert.ErrorIs(t, err, ErrMedicationNotFound)

	// No orphaned history entry.
	entries, err := history.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLogDose_RejectsPendingStatus(t *testing.T) {
	meds, history, _ := setupStores(t)
	med := createMedication(t, meds, 10)

	_, err := history.LogDose(med.ID, time.Now(), models.DosePending)
	assert.ErrorIs(t, err, ErrInvalidDoseStatus)
}

func TestLogDose_LowStockAlert(t *testing.T) {
	meds, history, reminders := setupStores(t)
	med := createMedication(t, meds, 3) // threshold is 2

	scheduledAt := time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local)
	_, err := history.LogDose(med.ID, scheduledAt, models.DoseTaken)
	require.NoError(t, err)

	// Stock dropped to 2, the alert threshold.
	assert.Contains(t, reminders.lowStock, med.ID)
}

func TestLogDose_UsesInjectedClock(t *testing.T) {
	meds, history, _ := setupStores(t)
	med := createMedication(t, meds, 10)

	fixed := time.Date(2024, 1, 1, 9, 30, 0, 0, time.Local)
	history.Now = func() time.Time { return fixed }

	scheduledAt := time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local)
	entry, err := history.LogDose(med.ID, scheduledAt, models.DoseTaken)
	require.NoError(t, err)

	require.NotNil(t, entry.TakenTime)
	assert.True(t, entry.TakenTime.Equal(fixed))
	// The entry is keyed by the scheduled slot, not by the tap time.
	assert.Equal(t, schedule.DoseID(med.ID, "2024-01-01", "08:00"), entry.DoseID)
}

func TestUpsertByDoseID_ReplacesExisting(t *testing.T) {
	_, history, _ := setupStores(t)

	entry := &models.DoseHistoryEntry{
		DoseID:         "med-1::2024-01-01::08:00",
		MedicationID:   "med-1",
		MedicationName: "Amoxicillin",
		ScheduledTime:  time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local),
		Status:         models.DoseSkipped,
	}
	require.NoError(t, history.UpsertByDoseID(entry))

	replacement := &models.DoseHistoryEntry{
		DoseID:         entry.DoseID,
		MedicationID:   "med-1",
		MedicationName: "Amoxicillin",
		ScheduledTime:  entry.ScheduledTime,
		Status:         models.DoseTaken,
	}
	require.NoError(t, history.UpsertByDoseID(replacement))

	entries, err := history.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.DoseTaken, entries[0].Status)
	assert.Equal(t, entry.ID, entries[0].ID)
}

func TestListRange(t *testing.T) {
	meds, history, _ := setupStores(t)
	med := createMedication(t, meds, 10)

	day1 := time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local)
	day2 := time.Date(2024, 1, 2, 8, 0, 0, 0, time.Local)
	_, err := history.LogDose(med.ID, day1, models.DoseTaken)
	require.NoError(t, err)
	_, err = history.LogDose(med.ID, day2, models.DoseTaken)
	require.NoError(t, err)

	entries, err := history.ListRange(day2.Add(-time.Hour), time.Time{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].ScheduledTime.Equal(day2))
}
