package routes

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"medication-app-server/internal/handlers"
	"medication-app-server/internal/middleware"
	"medication-app-server/internal/store"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, reminders store.Reminders, logger *zap.Logger) {
	router.Use(middleware.RequestLogger(logger))

	// Initialize stores and handlers
	medicationStore := store.NewMedicationStore(db, reminders, logger)
	historyStore := store.NewDoseHistoryStore(db, reminders, logger)
	appointmentStore := store.NewAppointmentStore(db, logger)
	profileStore := store.NewProfileStore(db, logger)
	anamnesisStore := store.NewAnamnesisStore(db, logger)

	medicationHandler := handlers.NewMedicationHandler(medicationStore)
	doseHandler := handlers.NewDoseHandler(medicationStore, historyStore)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentStore)
	profileHandler := handlers.NewProfileHandler(profileStore, anamnesisStore)

	api := router.Group("/api/v1")
	{
		// Medication routes
		medicationRoutes := api.Group("/medications")
		{
			medicationRoutes.GET("", medicationHandler.ListMedications)
			medicationRoutes.POST("", medicationHandler.CreateMedication)
			medicationRoutes.GET("/:id", medicationHandler.GetMedicationByID)
			medicationRoutes.PUT("/:id", medicationHandler.UpdateMedication)
			medicationRoutes.DELETE("/:id", medicationHandler.DeleteMedication)
			medicationRoutes.POST("/:id/restock", medicationHandler.RestockMedication)
		}

		// Dose schedule and history routes
		api.GET("/schedule/today", doseHandler.GetTodaySchedule)
		api.GET("/history", doseHandler.GetHistory)
		api.POST("/doses", doseHandler.LogDose)

		// Appointment routes
		appointmentRoutes := api.Group("/appointments")
		{
			appointmentRoutes.GET("", appointmentHandler.ListAppointments)
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
		}

		// Local profile and health questionnaire
		api.GET("/profile", profileHandler.GetProfile)
		api.PUT("/profile", profileHandler.SaveProfile)
		api.GET("/anamnesis", profileHandler.GetAnamnesis)
		api.PUT("/anamnesis", profileHandler.SaveAnamnesis)
		api.GET("/anamnesis/export", profileHandler.ExportAnamnesis)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
