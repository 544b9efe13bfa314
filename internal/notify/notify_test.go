package notify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medication-app-server/internal/models"
)

type recordingSink struct {
	mu        sync.Mutex
	reminders []string
	lowStock  []string
}

func (s *recordingSink) DoseReminder(med models.Medication, anchor string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = append(s.reminders, med.ID+"@"+anchor)
}

func (s *recordingSink) LowStockAlert(med models.Medication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lowStock = append(s.lowStock, med.ID)
}

func (s *recordingSink) lowStockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lowStock)
}

func newTestReminders() (*Reminders, *recordingSink) {
	sink := &recordingSink{}
	return NewReminders(sink, zap.NewNop()), sink
}

func TestScheduleMedication_OneJobPerAnchor(t *testing.T) {
	reminders, _ := newTestReminders()

	med := models.Medication{
		BaseModel: models.BaseModel{ID: "med-1"},
		Name:      "Amoxicillin",
		Frequency: models.FrequencyDaily,
		Times:     []string{"08:00", "20:00"},
	}
	require.NoError(t, reminders.ScheduleMedication(med))
	assert.Equal(t, 2, reminders.Jobs())
}

func TestScheduleMedication_IntervalFrequencyExpands(t *testing.T) {
	reminders, _ := newTestReminders()

	med := models.Medication{
		BaseModel: models.BaseModel{ID: "med-1"},
		Name:      "Ibuprofen",
		Frequency: models.FrequencyEvery8h,
		Times:     []string{"06:00"},
	}
	require.NoError(t, reminders.ScheduleMedication(med))
	assert.Equal(t, 3, reminders.Jobs())
}

func TestScheduleMedication_AsNeededGetsNoJobs(t *testing.T) {
	reminders, _ := newTestReminders()

	med := models.Medication{
		BaseModel: models.BaseModel{ID: "med-1"},
		Name:      "Paracetamol",
		Frequency: models.FrequencyAsNeeded,
		Times:     []string{"08:00"},
	}
	require.NoError(t, reminders.ScheduleMedication(med))
	assert.Equal(t, 0, reminders.Jobs())
}

func TestScheduleMedication_ReplacesPreviousJobs(t *testing.T) {
	reminders, _ := newTestReminders()

	med := models.Medication{
		BaseModel: models.BaseModel{ID: "med-1"},
		Name:      "Amoxicillin",
		Frequency: models.FrequencyDaily,
		Times:     []string{"08:00", "14:00", "20:00"},
	}
	require.NoError(t, reminders.ScheduleMedication(med))
	require.Equal(t, 3, reminders.Jobs())

	med.Times = []string{"09:00"}
	require.NoError(t, reminders.ScheduleMedication(med))
	assert.Equal(t, 1, reminders.Jobs())
}

func TestCancelMedication_RemovesOnlyItsJobs(t *testing.T) {
	reminders, _ := newTestReminders()

	first := models.Medication{
		BaseModel: models.BaseModel{ID: "med-1"},
		Frequency: models.FrequencyDaily,
		Times:     []string{"08:00"},
	}
	second := models.Medication{
		BaseModel: models.BaseModel{ID: "med-2"},
		Frequency: models.FrequencyDaily,
		Times:     []string{"09:00", "21:00"},
	}
	require.NoError(t, reminders.ScheduleMedication(first))
	require.NoError(t, reminders.ScheduleMedication(second))
	require.Equal(t, 3, reminders.Jobs())

	reminders.CancelMedication("med-2")
	assert.Equal(t, 1, reminders.Jobs())
}

func TestCheckStock_AlertsOnceUntilRestocked(t *testing.T) {
	reminders, sink := newTestReminders()

	med := models.Medication{
		BaseModel:           models.BaseModel{ID: "med-1"},
		Name:                "Insulin",
		Stock:               5,
		StockAlertThreshold: 5,
	}
	reminders.CheckStock(med)
	reminders.CheckStock(med)
	med.Stock = 4
	reminders.CheckStock(med)
	assert.Equal(t, 1, sink.lowStockCount(), "repeated checks below threshold alert once")

	// Restocking above the threshold re-arms the alert.
	med.Stock = 30
	reminders.CheckStock(med)
	med.Stock = 5
	reminders.CheckStock(med)
	assert.Equal(t, 2, sink.lowStockCount())
}

func TestCheckStock_AboveThresholdNeverAlerts(t *testing.T) {
	reminders, sink := newTestReminders()

	med := models.Medication{
		BaseModel:           models.BaseModel{ID: "med-1"},
		Stock:               6,
		StockAlertThreshold: 5,
	}
	reminders.CheckStock(med)
	assert.Equal(t, 0, sink.lowStockCount())
}
