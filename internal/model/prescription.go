package model

import (
	"time"

	"github.com/google/uuid"
)

type Prescription struct {
	Base
	PatientID   uuid.UUID `json:"patient_id" db:"patient_id"`
	DoctorID    uuid.UUID `json:"doctor_id" db:"doctor_id"`
	Description *string   `json:"description" db:"description"`
}

// Medication belongs to one prescription; Position keeps the order it was prescribed in
type Medication struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	PrescriptionID       uuid.UUID `json:"prescription_id" db:"prescription_id"`
	Position             int       `json:"-" db:"position"`
	Name                 string    `json:"name" db:"name"`
	Dosage               string    `json:"dosage" db:"dosage"`
	FrequencyDescription string    `json:"frequency_description" db:"frequency_description"`
	StartDate            *Date     `json:"start_date" db:"start_date"`
	EndDate              *Date     `json:"end_date" db:"end_date"`
	Notes                *string   `json:"notes" db:"notes"`
}

type PrescriptionDetails struct {
	Prescription
	PatientName   string       `db:"patient_name"`
	PatientUserID uuid.UUID    `db:"patient_user_id"`
	DoctorName    string       `db:"doctor_name"`
	DoctorUserID  uuid.UUID    `db:"doctor_user_id"`
	Medications   []Medication `db:"-"`
}

type PrescriptionResponse struct {
	ID          uuid.UUID    `json:"id"`
	PatientID   uuid.UUID    `json:"patient_id"`
	DoctorID    uuid.UUID    `json:"doctor_id"`
	Description *string      `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	Medications []Medication `json:"medications"`
	PatientName string       `json:"patient_name"`
	DoctorName  string       `json:"doctor_name"`
}

func NewPrescriptionResponse(d *PrescriptionDetails) PrescriptionResponse {
	meds := d.Medications
	if meds == nil {
		meds = []Medication{}
	}
	return PrescriptionResponse{
		ID:          d.ID,
		PatientID:   d.PatientID,
		DoctorID:    d.DoctorID,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		Medications: meds,
		PatientName: d.PatientName,
		DoctorName:  d.DoctorName,
	}
}

type MedicationInput struct {
	Name                 string  `json:"name" validate:"required"`
	Dosage               string  `json:"dosage" validate:"required"`
	FrequencyDescription string  `json:"frequency_description" validate:"required"`
	StartDate            *Date   `json:"start_date"`
	EndDate              *Date   `json:"end_date"`
	Notes                *string `json:"notes"`
}

type CreatePrescriptionRequest struct {
	Description *string           `json:"description"`
	Medications []MedicationInput `json:"medications" validate:"dive"`
}
