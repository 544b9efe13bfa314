package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"medication-app-server/internal/models"
	"medication-app-server/internal/store"
	"medication-app-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Appointments *store.AppointmentStore

	// Now bounds the upcoming filter. Tests override it.
	Now func() time.Time
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments *store.AppointmentStore) *AppointmentHandler {
	return &AppointmentHandler{Appointments: appointments, Now: time.Now}
}

// AppointmentRequest represents the request body for creating or updating
// an appointment.
type AppointmentRequest struct {
	DoctorName     string    `json:"doctorName" binding:"required"`
	Specialty      string    `json:"specialty"`
	Location       string    `json:"location"`
	Date           time.Time `json:"date" binding:"required"`
	Notes          string    `json:"notes"`
	RecipeImageURL string    `json:"recipeImageUrl"`
}

func (r *AppointmentRequest) toModel() *models.Appointment {
	return &models.Appointment{
		DoctorName:     r.DoctorName,
		Specialty:      r.Specialty,
		Location:       r.Location,
		Date:           r.Date,
		Notes:          r.Notes,
		RecipeImageURL: r.RecipeImageURL,
	}
}

// ListAppointments handles fetching appointments. With ?upcoming=true only
// future ones are returned.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	var appts []models.Appointment
	var err error
	if c.Query("upcoming") == "true" {
		appts, err = h.Appointments.Upcoming(h.Now())
	} else {
		appts, err = h.Appointments.List()
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}
	utils.Success(c, "Appointments fetched successfully", appts)
}

// GetAppointmentByID handles fetching a single appointment.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appt, err := h.Appointments.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrAppointmentNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Failed to fetch appointment: "+err.Error())
		}
		return
	}
	utils.Success(c, "Appointment fetched successfully", appt)
}

// CreateAppointment handles creating a new appointment.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt := req.toModel()
	if err := h.Appointments.Create(appt); err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}
	utils.Created(c, "Appointment created successfully", appt)
}

// UpdateAppointment handles editing an existing appointment.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt := req.toModel()
	if err := h.Appointments.Update(c.Param("id"), appt); err != nil {
		if errors.Is(err, store.ErrAppointmentNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		}
		return
	}
	utils.Success(c, "Appointment updated successfully", appt)
}

// DeleteAppointment handles removing an appointment.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	if err := h.Appointments.Delete(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrAppointmentNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		}
		return
	}
	utils.Success(c, "Appointment deleted successfully", nil)
}
