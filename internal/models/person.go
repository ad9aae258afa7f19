package models

import "time"

// Person carries the contact fields shared by doctors and patients.
// It is embedded by composition, each owner keeps its own table.
type Person struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email   string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone   string `gorm:"size:15" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
