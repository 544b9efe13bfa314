// Package notify registers recurring dose reminders and low-stock alerts
// for medications. Delivery is behind the Sink interface; the default sink
// only logs, actual push mechanics live outside this service.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"medication-app-server/internal/models"
	"medication-app-server/internal/schedule"
)

// Sink receives reminder events when their schedule fires.
type Sink interface {
	DoseReminder(med models.Medication, anchor string)
	LowStockAlert(med models.Medication)
}

// LogSink writes reminder events to the application log.
type LogSink struct {
	Logger *zap.Logger
}

func (s *LogSink) DoseReminder(med models.Medication, anchor string) {
	s.Logger.Info("dose reminder",
		zap.String("medicationId", med.ID),
		zap.String("medication", med.Name),
		zap.String("time", anchor),
	)
}

func (s *LogSink) LowStockAlert(med models.Medication) {
	s.Logger.Warn("low stock alert",
		zap.String("medicationId", med.ID),
		zap.String("medication", med.Name),
		zap.Int("stock", med.Stock),
		zap.Int("threshold", med.StockAlertThreshold),
	)
}

// Reminders schedules daily reminder jobs per medication anchor. Jobs are
// tagged with the medication ID so rescheduling replaces the previous set.
type Reminders struct {
	scheduler *gocron.Scheduler
	sink      Sink
	logger    *zap.Logger

	mu      sync.Mutex
	alerted map[string]bool // medication ID -> low-stock alert already sent
}

// NewReminders creates a reminder scheduler. Call Start before use.
func NewReminders(sink Sink, logger *zap.Logger) *Reminders {
	return &Reminders{
		scheduler: gocron.NewScheduler(time.Local),
		sink:      sink,
		logger:    logger,
		alerted:   make(map[string]bool),
	}
}

// Start begins running scheduled jobs asynchronously.
func (r *Reminders) Start() {
	r.scheduler.StartAsync()
}

// Stop stops the scheduler.
func (r *Reminders) Stop() {
	r.scheduler.Stop()
}

// ScheduleMedication (re)registers the daily reminder jobs for one
// medication. As-needed medications never get reminders.
func (r *Reminders) ScheduleMedication(med models.Medication) error {
	r.CancelMedication(med.ID)

	if med.Frequency == models.FrequencyAsNeeded {
		return nil
	}

	anchors := schedule.ExpandAnchors(med.Frequency, med.Times)
	for _, anchor := range anchors {
		anchor := anchor
		med := med
		_, err := r.scheduler.Every(1).Day().At(anchor).Tag(med.ID).Do(func() {
			r.sink.DoseReminder(med, anchor)
		})
		if err != nil {
			return fmt.Errorf("failed to schedule reminder for %s at %s: %w", med.Name, anchor, err)
		}
	}

	r.logger.Info("reminders scheduled",
		zap.String("medicationId", med.ID),
		zap.Strings("times", anchors),
	)
	return nil
}

// CancelMedication removes all reminder jobs for a medication.
func (r *Reminders) CancelMedication(medicationID string) {
	// RemoveByTag errors when no job carries the tag, which is fine here.
	_ = r.scheduler.RemoveByTag(medicationID)

	r.mu.Lock()
	delete(r.alerted, medicationID)
	r.mu.Unlock()
}

// CheckStock fires a one-time low-stock alert when the stock has fallen to
// the alert threshold. The alert re-arms once stock rises above it again.
func (r *Reminders) CheckStock(med models.Medication) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if med.LowStock() {
		if !r.alerted[med.ID] {
			r.alerted[med.ID] = true
			r.sink.LowStockAlert(med)
		}
		return
	}
	delete(r.alerted, med.ID)
}

// Jobs reports how many reminder jobs are currently registered.
func (r *Reminders) Jobs() int {
	return len(r.scheduler.Jobs())
}
