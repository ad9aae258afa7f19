package appointment

import (
	"github.com/meditrack/meditrack/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Confirm moves a paid-for appointment onto the calendar. finalAmount is
// the billed amount the patient was actually charged.
func Confirm(ap *models.Appointment, finalAmount float64) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.PaymentAmount = finalAmount
	ap.Status = string(StatusScheduled)
	return nil
}

func Complete(ap *models.Appointment, observations string) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.DocObservations = observations
	return nil
}

// Cancel releases the appointment's interval: the window is cleared so the
// slot no longer shows as booked. Callers that need the old window (for
// notifications) must read it before calling Cancel.
func Cancel(ap *models.Appointment, reason string) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.StartTime = nil
	ap.EndTime = nil
	ap.CancellationReason = reason
	return nil
}
