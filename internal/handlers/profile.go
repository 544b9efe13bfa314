package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medication-app-server/internal/export"
	"medication-app-server/internal/models"
	"medication-app-server/internal/store"
	"medication-app-server/internal/utils"
)

// ProfileHandler handles the local profile and the health questionnaire.
type ProfileHandler struct {
	Profiles  *store.ProfileStore
	Anamnesis *store.AnamnesisStore

	// Now stamps the questionnaire export date. Tests override it.
	Now func() time.Time
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles *store.ProfileStore, anamnesis *store.AnamnesisStore) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles, Anamnesis: anamnesis, Now: time.Now}
}

// GetProfile handles fetching the local profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.Profiles.Get()
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch profile: "+err.Error())
		return
	}
	if profile == nil {
		utils.NotFound(c, "Profile not set up yet")
		return
	}
	utils.Success(c, "Profile fetched successfully", profile)
}

// ProfileRequest represents the request body for saving the profile.
type ProfileRequest struct {
	Name                string `json:"name" binding:"required"`
	Type                string `json:"type" binding:"required,oneof=patient caregiver"`
	Email               string `json:"email" binding:"omitempty,email"`
	Phone               string `json:"phone"`
	Gender              string `json:"gender" binding:"omitempty,oneof=male female other preferNotToSay"`
	BirthYear           int    `json:"birthYear" binding:"omitempty,gte=1900"`
	PhotoURL            string `json:"photoUrl"`
	OnboardingCompleted bool   `json:"onboardingCompleted"`
}

// SaveProfile handles creating or replacing the local profile.
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req ProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	profile := &models.UserProfile{
		Name:                req.Name,
		Type:                models.ProfileType(req.Type),
		Email:               req.Email,
		Phone:               req.Phone,
		Gender:              req.Gender,
		BirthYear:           req.BirthYear,
		PhotoURL:            req.PhotoURL,
		OnboardingCompleted: req.OnboardingCompleted,
	}
	if err := h.Profiles.Save(profile); err != nil {
		utils.InternalServerError(c, "Failed to save profile: "+err.Error())
		return
	}
	utils.Success(c, "Profile saved successfully", profile)
}

// GetAnamnesis handles fetching the health questionnaire.
func (h *ProfileHandler) GetAnamnesis(c *gin.Context) {
	anamnesis, err := h.Anamnesis.Get()
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch anamnesis: "+err.Error())
		return
	}
	if anamnesis == nil {
		utils.NotFound(c, "Anamnesis not filled in yet")
		return
	}
	utils.Success(c, "Anamnesis fetched successfully", anamnesis)
}

// AnamnesisRequest represents the request body for saving the questionnaire.
type AnamnesisRequest struct {
	ChronicConditions []string             `json:"chronicConditions"`
	Allergies         []string             `json:"allergies"`
	Surgeries         []string             `json:"surgeries"`
	FamilyHistory     models.FamilyHistory `json:"familyHistory"`
	OtherNotes        string               `json:"otherNotes"`
}

// SaveAnamnesis handles creating or replacing the health questionnaire.
func (h *ProfileHandler) SaveAnamnesis(c *gin.Context) {
	var req AnamnesisRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	anamnesis := &models.Anamnesis{
		ChronicConditions: req.ChronicConditions,
		Allergies:         req.Allergies,
		Surgeries:         req.Surgeries,
		FamilyHistory:     req.FamilyHistory,
		OtherNotes:        req.OtherNotes,
	}
	if err := h.Anamnesis.Save(anamnesis); err != nil {
		utils.InternalServerError(c, "Failed to save anamnesis: "+err.Error())
		return
	}
	utils.Success(c, "Anamnesis saved successfully", anamnesis)
}

// ExportAnamnesis handles rendering the questionnaire as a printable HTML
// document.
func (h *ProfileHandler) ExportAnamnesis(c *gin.Context) {
	anamnesis, err := h.Anamnesis.Get()
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch anamnesis: "+err.Error())
		return
	}
	if anamnesis == nil {
		utils.NotFound(c, "Anamnesis not filled in yet")
		return
	}

	patientName := ""
	if profile, err := h.Profiles.Get(); err == nil && profile != nil {
		patientName = profile.Name
	}

	doc, err := export.Questionnaire(anamnesis, patientName, h.Now())
	if err != nil {
		utils.InternalServerError(c, "Failed to export anamnesis: "+err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}
