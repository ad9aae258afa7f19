package models

import "time"

// BillSummary is the append-only audit snapshot written once per
// confirmation. It never changes after insert.
type BillSummary struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference     string `gorm:"size:36;uniqueIndex" json:"reference"`
	AppointmentID uint   `gorm:"not null;index" json:"appointment_id"`

	PatientName string `gorm:"size:100" json:"patient_name"`
	DoctorName  string `gorm:"size:100" json:"doctor_name"`
	BillType    string `gorm:"size:30" json:"bill_type"`

	BaseAmount  float64 `json:"base_amount"`
	TaxAmount   float64 `json:"tax_amount"`
	FinalAmount float64 `json:"final_amount"`

	GeneratedAt time.Time `json:"generated_at"`
}
