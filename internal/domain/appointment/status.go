package appointment

import "github.com/meditrack/meditrack/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPaymentPending Status = "PAYMENT_PENDING"
	StatusScheduled      Status = "SCHEDULED"
	StatusCompleted      Status = "COMPLETED"
	StatusCancelled      Status = "CANCELLED"
)

func InitialStatus() Status {
	return StatusPaymentPending
}

// ===============================
// Transition rules
// ===============================

// CanConfirm: payment confirmation only moves PAYMENT_PENDING forward.
func CanConfirm(current Status) error {
	if current != StatusPaymentPending {
		return httperr.ErrBusiness(
			httperr.CodeInvalidTransition,
			"Only a payment pending appointment can be confirmed.",
		)
	}
	return nil
}

// CanComplete: the consultation must be scheduled (paid for) first.
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness(
			httperr.CodeInvalidTransition,
			"Only a scheduled appointment can be completed.",
		)
	}
	return nil
}

// CanCancel: terminal states stay terminal. A completed consultation
// cannot be cancelled.
func CanCancel(current Status) error {
	if current != StatusPaymentPending && current != StatusScheduled {
		return httperr.ErrBusiness(
			httperr.CodeInvalidTransition,
			"Cannot cancel a completed or already cancelled appointment.",
		)
	}
	return nil
}
