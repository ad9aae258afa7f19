package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/meditrack/meditrack/internal/domain/appointment"
	"github.com/meditrack/meditrack/internal/httperr"
	"github.com/meditrack/meditrack/internal/models"
	"github.com/meditrack/meditrack/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	DoctorID  uint
	PatientID uint

	Date  string // 2006-01-02
	Start string // 15:04
	End   string // 15:04

	Symptoms string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo       domain.Repository
	locks      *LockTable
	dispatcher *notify.Dispatcher
	logger     *zap.Logger
}

func NewBookAppointment(
	repo domain.Repository,
	locks *LockTable,
	dispatcher *notify.Dispatcher,
	logger *zap.Logger,
) *BookAppointment {
	return &BookAppointment{
		repo:       repo,
		locks:      locks,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Appointment, error) {

	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	patient, err := uc.repo.GetPatientByID(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	date, start, end, err := parseWindow(in.Date, in.Start, in.End)
	if err != nil {
		return nil, err
	}

	// Conflict check and insert are one atomic region per doctor.
	unlock := uc.locks.Lock(in.DoctorID)
	defer unlock()

	if err := uc.repo.AssertNoSlotConflict(
		ctx,
		in.DoctorID,
		date,
		start,
		end,
	); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		DoctorID:        in.DoctorID,
		PatientID:       in.PatientID,
		Date:            date,
		StartTime:       &start,
		EndTime:         &end,
		Status:          string(domain.InitialStatus()),
		PatientSymptoms: in.Symptoms,
		PaymentAmount:   doctor.ConsultationFee,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.logger.Info("appointment booked",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("doctor_id", in.DoctorID),
		zap.Uint("patient_id", in.PatientID),
	)

	uc.dispatcher.DispatchAppointmentEvent(
		notify.NewEvent(ap, doctor.Name, patient.Name),
	)

	return ap, nil
}

// parseWindow validates the requested interval before it ever reaches
// conflict detection: well-formed, same day, start strictly before end.
func parseWindow(dateStr, startStr, endStr string) (date, start, end time.Time, err error) {
	invalid := httperr.ErrBusiness(
		httperr.CodeInvalidInterval,
		"Invalid date or time window.",
	)

	day, perr := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if perr != nil {
		return date, start, end, invalid
	}

	startHM, perr := time.Parse("15:04", startStr)
	if perr != nil {
		return date, start, end, invalid
	}
	endHM, perr := time.Parse("15:04", endStr)
	if perr != nil {
		return date, start, end, invalid
	}

	date = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	start = time.Date(day.Year(), day.Month(), day.Day(), startHM.Hour(), startHM.Minute(), 0, 0, time.UTC)
	end = time.Date(day.Year(), day.Month(), day.Day(), endHM.Hour(), endHM.Minute(), 0, 0, time.UTC)

	if !start.Before(end) {
		return date, start, end, invalid
	}
	return date, start, end, nil
}
