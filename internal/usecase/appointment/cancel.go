package appointment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/meditrack/meditrack/internal/domain/appointment"
	"github.com/meditrack/meditrack/internal/models"
	"github.com/meditrack/meditrack/internal/notify"
)

type CancelAppointment struct {
	repo       domain.Repository
	locks      *LockTable
	dispatcher *notify.Dispatcher
	logger     *zap.Logger
}

func NewCancelAppointment(
	repo domain.Repository,
	locks *LockTable,
	dispatcher *notify.Dispatcher,
	logger *zap.Logger,
) *CancelAppointment {
	return &CancelAppointment{
		repo:       repo,
		locks:      locks,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	reason string,
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

	// The released window is read before Cancel clears it, so the
	// notifications report the slot that just opened up.
	start, end := "", ""
	if ap.StartTime != nil {
		start = ap.StartTime.Format("15:04")
	}
	if ap.EndTime != nil {
		end = ap.EndTime.Format("15:04")
	}

	if err := domain.Cancel(ap, reason); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.logger.Info("appointment cancelled",
		zap.Uint("appointment_id", ap.ID),
		zap.String("reason", reason),
	)

	ev := notify.NewEvent(ap, ap.Doctor.Name, ap.Patient.Name)
	ev.Start = start
	ev.End = end
	uc.dispatcher.DispatchAppointmentEvent(ev)

	uc.dispatcher.Broadcast(fmt.Sprintf(
		"%s is now available for new appointments between %s and %s",
		ap.Doctor.Name, start, end,
	))

	return ap, nil
}
