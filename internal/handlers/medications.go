package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"medication-app-server/internal/models"
	"medication-app-server/internal/store"
	"medication-app-server/internal/utils"
)

// MedicationHandler handles medication related requests.
type MedicationHandler struct {
	Medications *store.MedicationStore
}

// NewMedicationHandler creates a new MedicationHandler.
func NewMedicationHandler(medications *store.MedicationStore) *MedicationHandler {
	return &MedicationHandler{Medications: medications}
}

// MedicationRequest represents the request body for creating or updating a
// medication.
type MedicationRequest struct {
	Name                string   `json:"name" binding:"required"`
	Dosage              string   `json:"dosage"`
	Form                string   `json:"form" binding:"omitempty,oneof=tablet capsule liquid injection ointment drops"`
	Frequency           string   `json:"frequency" binding:"required,oneof=daily every-8h every-12h weekly as-needed"`
	Times               []string `json:"times"`
	WeekDays            []int    `json:"weekDays" binding:"omitempty,dive,gte=0,lte=6"`
	Stock               int      `json:"stock" binding:"gte=0"`
	StockAlertThreshold int      `json:"stockAlertThreshold" binding:"gte=0"`
	Instructions        string   `json:"instructions"`
	Doctor              string   `json:"doctor"`
	Condition           string   `json:"condition"`
	Color               string   `json:"color"`
}

func (r *MedicationRequest) toModel() *models.Medication {
	return &models.Medication{
		Name:                r.Name,
		Dosage:              r.Dosage,
		Form:                models.MedicationForm(r.Form),
		Frequency:           models.Frequency(r.Frequency),
		Times:               r.Times,
		WeekDays:            r.WeekDays,
		Stock:               r.Stock,
		StockAlertThreshold: r.StockAlertThreshold,
		Instructions:        r.Instructions,
		Doctor:              r.Doctor,
		Condition:           r.Condition,
		Color:               r.Color,
	}
}

// ListMedications handles fetching all medications.
func (h *MedicationHandler) ListMedications(c *gin.Context) {
	meds, err := h.Medications.List()
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch medications: "+err.Error())
		return
	}
	utils.Success(c, "Medications fetched successfully", meds)
}

// GetMedicationByID handles fetching a single medication.
func (h *MedicationHandler) GetMedicationByID(c *gin.Context) {
	med, err := h.Medications.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrMedicationNotFound) {
			utils.NotFound(c, "Medication not found")
		} else {
			utils.InternalServerError(c, "Failed to fetch medication: "+err.Error())
		}
		return
	}
	utils.Success(c, "Medication fetched successfully", med)
}

// CreateMedication handles creating a new medication.
func (h *MedicationHandler) CreateMedication(c *gin.Context) {
	var req MedicationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	med := req.toModel()
	if err := h.Medications.Create(med); err != nil {
		utils.InternalServerError(c, "Failed to create medication: "+err.Error())
		return
	}
	utils.Created(c, "Medication created successfully", med)
}

// UpdateMedication handles editing an existing medication. Every field
// except the ID and creation time can change.
func (h *MedicationHandler) UpdateMedication(c *gin.Context) {
	var req MedicationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	med := req.toModel()
	if err := h.Medications.Update(c.Param("id"), med); err != nil {
		if errors.Is(err, store.ErrMedicationNotFound) {
			utils.NotFound(c, "Medication not found")
		} else {
			utils.InternalServerError(c, "Failed to update medication: "+err.Error())
		}
		return
	}
	utils.Success(c, "Medication updated successfully", med)
}

// DeleteMedication handles removing a medication and its reminders.
func (h *MedicationHandler) DeleteMedication(c *gin.Context) {
	if err := h.Medications.Delete(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrMedicationNotFound) {
			utils.NotFound(c, "Medication not found")
		} else {
			utils.InternalServerError(c, "Failed to delete medication: "+err.Error())
		}
		return
	}
	utils.Success(c, "Medication deleted successfully", nil)
}

// RestockRequest represents the request body for adding stock.
type RestockRequest struct {
	Amount int `json:"amount" binding:"required,gt=0"`
}

// RestockMedication handles adding units to a medication's stock.
func (h *MedicationHandler) RestockMedication(c *gin.Context) {
	var req RestockRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	med, err := h.Medications.AddStock(c.Param("id"), req.Amount)
	if err != nil {
		if errors.Is(err, store.ErrMedicationNotFound) {
			utils.NotFound(c, "Medication not found")
		} else {
			utils.InternalServerError(c, "Failed to restock medication: "+err.Error())
		}
		return
	}
	utils.Success(c, "Stock updated successfully", med)
}
