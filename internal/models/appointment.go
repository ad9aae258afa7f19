package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID uint   `gorm:"not null;index:idx_doctor_date" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor"`

	PatientID uint    `gorm:"not null" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	// Date is normalized to midnight UTC; the wall-clock window lives in
	// StartTime/EndTime on the same day. Cancellation clears the window.
	Date      time.Time  `gorm:"not null;index:idx_doctor_date" json:"date"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'PAYMENT_PENDING'" json:"status"`

	PatientSymptoms string `gorm:"type:text" json:"patient_symptoms"`
	DocObservations string `gorm:"type:text" json:"doc_observations"`

	PaymentAmount      float64 `json:"payment_amount"`
	CancellationReason string  `gorm:"size:255" json:"cancellation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
