package models

type Patient struct {
	Person

	Name string `gorm:"size:100;not null" json:"name"`
	Age  int    `json:"age"`

	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}
