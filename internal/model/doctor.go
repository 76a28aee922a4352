package model

import "github.com/google/uuid"

// Doctor extends a user with role DOCTOR
type Doctor struct {
	ID                uuid.UUID `json:"id" db:"id"`
	UserID            uuid.UUID `json:"user_id" db:"user_id"`
	Specialization    string    `json:"specialization" db:"specialization"`
	City              string    `json:"city" db:"city"`
	ClinicAddress     *string   `json:"clinic_address" db:"clinic_address"`
	Description       *string   `json:"description" db:"description"`
	AvailabilityNotes *string   `json:"availability_notes" db:"availability_notes"`
}

// DoctorProfile is a doctor joined with its user's contact fields
type DoctorProfile struct {
	Doctor
	Name  string  `json:"name" db:"name"`
	Email string  `json:"email" db:"email"`
	Phone *string `json:"phone" db:"phone"`
}

// DoctorFilter holds optional case-insensitive substring filters, combined with AND
type DoctorFilter struct {
	Name           string `form:"name"`
	Specialization string `form:"specialization"`
	City           string `form:"city"`
}
