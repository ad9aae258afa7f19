package appointment

import (
	"context"
	"time"

	"github.com/meditrack/meditrack/internal/dto"
	"github.com/meditrack/meditrack/internal/models"
)

type Repository interface {
	// -------- Directory --------
	GetDoctorByID(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	GetPatientByID(
		ctx context.Context,
		id uint,
	) (*models.Patient, error)

	CreateDoctor(
		ctx context.Context,
		doc *models.Doctor,
	) error

	CreatePatient(
		ctx context.Context,
		pat *models.Patient,
	) error

	ListDoctors(
		ctx context.Context,
	) ([]models.Doctor, error)

	ListDoctorsBySpecialty(
		ctx context.Context,
		specialty models.Specialty,
	) ([]models.Doctor, error)

	ListDoctorAppointmentCounts(
		ctx context.Context,
	) ([]dto.DoctorAppointmentCount, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoSlotConflict(
		ctx context.Context,
		doctorID uint,
		date time.Time,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListDayAppointments(
		ctx context.Context,
		doctorID uint,
		date time.Time,
	) ([]models.Appointment, error)

	// -------- Bill summaries (append-only) --------

	// SaveConfirmation persists the confirmed appointment and its bill
	// summary as one atomic write. Either both land or neither does.
	SaveConfirmation(
		ctx context.Context,
		ap *models.Appointment,
		summary *models.BillSummary,
	) error

	GetBillSummaryByAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.BillSummary, error)
}
