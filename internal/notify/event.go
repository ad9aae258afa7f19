package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/meditrack/meditrack/internal/models"
)

// Event is an immutable snapshot of an appointment at the moment of a
// lifecycle transition. It is built before any later mutation of the
// appointment, so a cancellation event still carries the released window.
type Event struct {
	ID            string    `json:"id"`
	AppointmentID uint      `json:"appointment_id"`
	DoctorID      uint      `json:"doctor_id"`
	DoctorName    string    `json:"doctor_name"`
	PatientID     uint      `json:"patient_id"`
	PatientName   string    `json:"patient_name"`
	Date          string    `json:"date"`
	Start         string    `json:"start"`
	End           string    `json:"end"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewEvent(ap *models.Appointment, doctorName, patientName string) Event {
	ev := Event{
		ID:            uuid.New().String(),
		AppointmentID: ap.ID,
		DoctorID:      ap.DoctorID,
		DoctorName:    doctorName,
		PatientID:     ap.PatientID,
		PatientName:   patientName,
		Date:          ap.Date.Format("2006-01-02"),
		Status:        ap.Status,
		OccurredAt:    time.Now(),
	}
	if ap.StartTime != nil {
		ev.Start = ap.StartTime.Format("15:04")
	}
	if ap.EndTime != nil {
		ev.End = ap.EndTime.Format("15:04")
	}
	return ev
}
