package model

import "github.com/google/uuid"

// Patient extends a user with role PATIENT
type Patient struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	MedicalNotes *string   `json:"medical_notes,omitempty" db:"medical_notes"`
}

// PatientProfile is a patient joined with its user's display fields
type PatientProfile struct {
	Patient
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}
