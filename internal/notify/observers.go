package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/meditrack/meditrack/internal/models"
)

// DoctorDirectory and PatientDirectory are the narrow lookups observers
// need to resolve their own party. The appointment repository satisfies
// both.
type DoctorDirectory interface {
	GetDoctorByID(ctx context.Context, id uint) (*models.Doctor, error)
}

type PatientDirectory interface {
	GetPatientByID(ctx context.Context, id uint) (*models.Patient, error)
}

// DoctorObserver is the provider-side notification channel.
type DoctorObserver struct {
	directory DoctorDirectory
	logger    *zap.Logger
}

func NewDoctorObserver(directory DoctorDirectory, logger *zap.Logger) *DoctorObserver {
	return &DoctorObserver{directory: directory, logger: logger}
}

func (o *DoctorObserver) AppointmentChanged(ev Event) error {
	name := ev.DoctorName
	if doc, err := o.directory.GetDoctorByID(context.Background(), ev.DoctorID); err == nil {
		name = doc.Name
	}

	o.logger.Info("doctor notification",
		zap.String("doctor", name),
		zap.Uint("doctor_id", ev.DoctorID),
		zap.Uint("appointment_id", ev.AppointmentID),
		zap.String("patient", ev.PatientName),
		zap.String("window", ev.Start+" to "+ev.End),
		zap.String("status", ev.Status),
	)
	return nil
}

func (o *DoctorObserver) Broadcast(message string) error {
	o.logger.Info("doctor notification", zap.String("message", message))
	return nil
}

// PatientObserver is the requester-side notification channel.
type PatientObserver struct {
	directory PatientDirectory
	logger    *zap.Logger
}

func NewPatientObserver(directory PatientDirectory, logger *zap.Logger) *PatientObserver {
	return &PatientObserver{directory: directory, logger: logger}
}

func (o *PatientObserver) AppointmentChanged(ev Event) error {
	name := ev.PatientName
	if pat, err := o.directory.GetPatientByID(context.Background(), ev.PatientID); err == nil {
		name = pat.Name
	}

	o.logger.Info("patient notification",
		zap.String("patient", name),
		zap.Uint("patient_id", ev.PatientID),
		zap.Uint("appointment_id", ev.AppointmentID),
		zap.String("doctor", ev.DoctorName),
		zap.String("window", ev.Start+" to "+ev.End),
		zap.String("status", ev.Status),
	)
	return nil
}

func (o *PatientObserver) Broadcast(message string) error {
	o.logger.Info("patient notification", zap.String("message", message))
	return nil
}
