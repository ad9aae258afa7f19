package models

type Specialty string

const (
	SpecialtyGeneral       Specialty = "GENERAL"
	SpecialtyCardiologist  Specialty = "CARDIOLOGIST"
	SpecialtyDermatologist Specialty = "DERMATOLOGIST"
	SpecialtyNeurologist   Specialty = "NEUROLOGIST"
	SpecialtyOrthopedic    Specialty = "ORTHOPEDIC"
	SpecialtyPediatrician  Specialty = "PEDIATRICIAN"
)

func (s Specialty) Valid() bool {
	switch s {
	case SpecialtyGeneral, SpecialtyCardiologist, SpecialtyDermatologist,
		SpecialtyNeurologist, SpecialtyOrthopedic, SpecialtyPediatrician:
		return true
	}
	return false
}

type Doctor struct {
	Person

	Name      string    `gorm:"size:100;not null" json:"name"`
	Specialty Specialty `gorm:"size:30" json:"specialty"`

	// Fee charged at booking time; later changes do not reprice
	// already confirmed appointments.
	ConsultationFee float64 `gorm:"not null;default:500" json:"consultation_fee"`

	IsAvailable bool   `gorm:"default:true" json:"is_available"`
	Description string `gorm:"type:text" json:"description"`

	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"-"`
}
