package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"medication-app-server/internal/models"
	"medication-app-server/internal/schedule"
	"medication-app-server/internal/store"
	"medication-app-server/internal/utils"
)

// DoseHandler handles the dose schedule and dose logging requests.
type DoseHandler struct {
	Medications *store.MedicationStore
	History     *store.DoseHistoryStore

	// Now supplies the reference time for "today". Tests override it.
	Now func() time.Time
}

// NewDoseHandler creates a new DoseHandler.
func NewDoseHandler(medications *store.MedicationStore, history *store.DoseHistoryStore) *DoseHandler {
	return &DoseHandler{Medications: medications, History: history, Now: time.Now}
}

// GetTodaySchedule handles fetching the due-today dose slots: expanded from
// each medication's anchors, minus anything already logged, missed first.
func (h *DoseHandler) GetTodaySchedule(c *gin.Context) {
	meds, err := h.Medications.List()
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch medications: "+err.Error())
		return
	}
	history, err := h.History.List()
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch dose history: "+err.Error())
		return
	}

	slots := schedule.BuildSchedule(meds, history, h.Now())
	utils.Success(c, "Schedule fetched successfully", slots)
}

// GetHistory handles fetching the dose history, optionally bounded by
// from/to query parameters (RFC 3339).
func (h *DoseHandler) GetHistory(c *gin.Context) {
	from, ok := parseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		return
	}

	entries, err := h.History.ListRange(from, to)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch dose history: "+err.Error())
		return
	}
	utils.Success(c, "Dose history fetched successfully", entries)
}

// LogDoseRequest represents the request body for recording a dose outcome.
// ScheduledTime is the slot's scheduled instant, not the current time.
type LogDoseRequest struct {
	MedicationID  string    `json:"medicationId" binding:"required,uuid"`
	ScheduledTime time.Time `json:"scheduledTime" binding:"required"`
	Status        string    `json:"status" binding:"required,oneof=taken skipped"`
}

// LogDose handles recording a dose as taken or skipped. Logging the same
// slot twice replaces the earlier record.
func (h *DoseHandler) LogDose(c *gin.Context) {
	var req LogDoseRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	entry, err := h.History.LogDose(req.MedicationID, req.ScheduledTime, models.DoseStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrMedicationNotFound):
			utils.NotFound(c, "Medication not found")
		case errors.Is(err, store.ErrInvalidDoseStatus):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalServerError(c, "Failed to log dose: "+err.Error())
		}
		return
	}
	utils.Created(c, "Dose logged successfully", entry)
}

func parseTimeQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		utils.BadRequest(c, "Invalid "+key+" timestamp: "+err.Error())
		return time.Time{}, false
	}
	return t, true
}
