package dto

type DoctorAppointmentCount struct {
	DoctorID         uint   `json:"doctor_id"`
	Name             string `json:"name"`
	AppointmentCount int64  `json:"appointment_count"`
}
