package appointment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/meditrack/meditrack/internal/domain/appointment"
	"github.com/meditrack/meditrack/internal/models"
	"github.com/meditrack/meditrack/internal/notify"
)

type CompleteConsultation struct {
	repo       domain.Repository
	locks      *LockTable
	dispatcher *notify.Dispatcher
	logger     *zap.Logger
}

func NewCompleteConsultation(
	repo domain.Repository,
	locks *LockTable,
	dispatcher *notify.Dispatcher,
	logger *zap.Logger,
) *CompleteConsultation {
	return &CompleteConsultation{
		repo:       repo,
		locks:      locks,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (uc *CompleteConsultation) Execute(
	ctx context.Context,
	appointmentID uint,
	observations string,
) (*models.Appointment, error) {

	// First read only resolves the doctor whose calendar to lock; the
	// transition runs against a fresh read inside the lock.
	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(ap.DoctorID)
	defer unlock()

	ap, err = uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Complete(ap, observations); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.logger.Info("consultation completed",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("doctor_id", ap.DoctorID),
	)

	uc.dispatcher.DispatchAppointmentEvent(
		notify.NewEvent(ap, ap.Doctor.Name, ap.Patient.Name),
	)

	uc.dispatcher.Broadcast(fmt.Sprintf(
		"%s has completed the consultation for appointment ID: %d",
		ap.Doctor.Name, ap.ID,
	))

	end := ""
	if ap.EndTime != nil {
		end = ap.EndTime.Format("15:04")
	}
	uc.dispatcher.Broadcast(fmt.Sprintf(
		"%s is now available for new appointments from %s onwards.",
		ap.Doctor.Name, end,
	))

	return ap, nil
}
