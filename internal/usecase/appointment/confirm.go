package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meditrack/meditrack/internal/billing"
	domain "github.com/meditrack/meditrack/internal/domain/appointment"
	"github.com/meditrack/meditrack/internal/httperr"
	"github.com/meditrack/meditrack/internal/models"
	"github.com/meditrack/meditrack/internal/notify"
	"github.com/meditrack/meditrack/internal/payment"
)

// ======================================================
// INPUT
// ======================================================

type ConfirmInput struct {
	PaymentMethod string
	Amount        float64
	BillType      billing.Category
}

// ======================================================
// USE CASE
// ======================================================

type ConfirmAppointment struct {
	repo       domain.Repository
	settler    payment.Settler
	locks      *LockTable
	dispatcher *notify.Dispatcher
	logger     *zap.Logger
}

func NewConfirmAppointment(
	repo domain.Repository,
	settler payment.Settler,
	locks *LockTable,
	dispatcher *notify.Dispatcher,
	logger *zap.Logger,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:       repo,
		settler:    settler,
		locks:      locks,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute runs the confirmation chain: settle → snapshot → transition →
// persist → notify. Any failure before persistence leaves the
// appointment observably in its prior state with no summary written.
func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	in ConfirmInput,
) (*models.Appointment, error) {

	// First read only resolves the doctor whose calendar to lock; the
	// authoritative status check happens on a fresh read inside the lock.
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

	if err := domain.CanConfirm(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	// The fee recorded at booking time is the price; later fee changes on
	// the doctor do not reprice this appointment.
	fee := ap.PaymentAmount
	if in.Amount < fee {
		return nil, httperr.ErrBusiness(
			httperr.CodeInsufficientPayment,
			"Declared amount is below the consultation fee.",
		)
	}

	bill, err := billing.Compute(in.BillType, fee)
	if err != nil {
		return nil, err
	}

	// Settlement stays inside the lock: a racing confirm of the same
	// appointment must fail the status check before it can charge again.
	if err := uc.settler.Settle(ctx, in.PaymentMethod, in.Amount); err != nil {
		return nil, err
	}

	summary := &models.BillSummary{
		Reference:     uuid.New().String(),
		AppointmentID: ap.ID,
		PatientName:   ap.Patient.Name,
		DoctorName:    ap.Doctor.Name,
		BillType:      string(bill.Category),
		BaseAmount:    bill.BaseAmount,
		TaxAmount:     bill.TaxAmount,
		FinalAmount:   bill.FinalAmount,
		GeneratedAt:   time.Now(),
	}
	if err := domain.Confirm(ap, bill.FinalAmount); err != nil {
		return nil, err
	}

	// Summary and state change land in one write; a failure leaves no
	// orphan summary behind a still pending appointment.
	if err := uc.repo.SaveConfirmation(ctx, ap, summary); err != nil {
		return nil, err
	}

	uc.logger.Info("appointment confirmed",
		zap.Uint("appointment_id", ap.ID),
		zap.String("bill_type", string(bill.Category)),
		zap.Float64("final_amount", bill.FinalAmount),
	)

	uc.dispatcher.DispatchAppointmentEvent(
		notify.NewEvent(ap, ap.Doctor.Name, ap.Patient.Name),
	)

	return ap, nil
}
