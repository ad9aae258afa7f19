package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/meditrack/meditrack/internal/handlers"
)

func RegisterRoutes(
	r *gin.Engine,
	appointments *handlers.AppointmentHandler,
	doctors *handlers.DoctorHandler,
	patients *handlers.PatientHandler,
) {
	api := r.Group("/")

	// -------- Appointments --------
	api.POST("/appointments", appointments.Book)
	api.GET("/appointments/:id", appointments.Get)
	api.POST("/appointments/:id/confirm", appointments.Confirm)
	api.POST("/appointments/:id/complete", appointments.Complete)
	api.POST("/appointments/:id/cancel", appointments.Cancel)
	api.GET("/appointments/:id/bill", appointments.GetBill)

	// -------- Doctors --------
	api.POST("/doctors", doctors.Create)
	api.GET("/doctors", doctors.List)
	api.GET("/doctors/:id", doctors.Get)
	api.GET("/doctors/:id/slots", appointments.ListSlots)
	api.GET("/doctors/stats/appointments", doctors.AppointmentStats)
	api.POST("/doctors/recommend", doctors.Recommend)

	// -------- Patients --------
	api.POST("/patients", patients.Create)
	api.GET("/patients/:id", patients.Get)
}
