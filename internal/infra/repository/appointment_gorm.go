package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/meditrack/meditrack/internal/domain/appointment"
	"github.com/meditrack/meditrack/internal/dto"
	"github.com/meditrack/meditrack/internal/httperr"
	"github.com/meditrack/meditrack/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// notFound translates a missing row into the stable business code; every
// other storage error propagates untouched so callers can tell a bad
// request apart from a broken system.
func notFound(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code, message)
	}
	return err
}

// --------------------------------------------------
// Directory
// --------------------------------------------------

func (r *AppointmentGormRepository) GetDoctorByID(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var doc models.Doctor
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return nil, notFound(err, httperr.CodeDoctorNotFound, "Doctor not found.")
	}
	return &doc, nil
}

func (r *AppointmentGormRepository) GetPatientByID(
	ctx context.Context,
	id uint,
) (*models.Patient, error) {

	var pat models.Patient
	if err := r.db.WithContext(ctx).First(&pat, id).Error; err != nil {
		return nil, notFound(err, httperr.CodePatientNotFound, "Patient not found.")
	}
	return &pat, nil
}

func (r *AppointmentGormRepository) CreateDoctor(
	ctx context.Context,
	doc *models.Doctor,
) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *AppointmentGormRepository) CreatePatient(
	ctx context.Context,
	pat *models.Patient,
) error {
	return r.db.WithContext(ctx).Create(pat).Error
}

func (r *AppointmentGormRepository) ListDoctors(
	ctx context.Context,
) ([]models.Doctor, error) {

	var docs []models.Doctor
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *AppointmentGormRepository) ListDoctorsBySpecialty(
	ctx context.Context,
	specialty models.Specialty,
) ([]models.Doctor, error) {

	var docs []models.Doctor
	if err := r.db.WithContext(ctx).
		Where("specialty = ?", specialty).
		Order("id ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *AppointmentGormRepository) ListDoctorAppointmentCounts(
	ctx context.Context,
) ([]dto.DoctorAppointmentCount, error) {

	var counts []dto.DoctorAppointmentCount
	err := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Select("doctors.id AS doctor_id, doctors.name AS name, COUNT(appointments.id) AS appointment_count").
		Joins("LEFT JOIN appointments ON appointments.doctor_id = doctors.id").
		Group("doctors.id, doctors.name").
		Order("appointment_count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) AssertNoSlotConflict(
	ctx context.Context,
	doctorID uint,
	date time.Time,
	start time.Time,
	end time.Time,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND date = ? AND status <> ? AND start_time < ? AND end_time > ?",
			doctorID,
			date,
			string(domain.StatusCancelled),
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness(
			httperr.CodeSlotConflict,
			"Time slot is not available for the selected doctor.",
		)
	}

	return nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err, httperr.CodeAppointmentNotFound, "Appointment not found.")
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListDayAppointments(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "doctor_id", "date", "start_time", "end_time", "status").
		Where(
			"doctor_id = ? AND date = ? AND status <> ?",
			doctorID, date, string(domain.StatusCancelled),
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Bill summaries
// --------------------------------------------------

func (r *AppointmentGormRepository) SaveConfirmation(
	ctx context.Context,
	ap *models.Appointment,
	summary *models.BillSummary,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(summary).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(ap).Error
	})
}

func (r *AppointmentGormRepository) GetBillSummaryByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.BillSummary, error) {

	var summary models.BillSummary
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("id DESC").
		First(&summary).Error; err != nil {
		return nil, notFound(err, httperr.CodeBillNotFound, "No bill recorded for this appointment.")
	}
	return &summary, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
