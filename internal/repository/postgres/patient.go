package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
)

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(base BaseRepository) repository.PatientRepository {
	return &patientRepository{base}
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient,
		`SELECT id, user_id, medical_notes FROM patients WHERE user_id = $1`, userID)
	if err != nil {
		return nil, wrapErr("get patient by user", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetProfile(ctx context.Context, id uuid.UUID) (*model.PatientProfile, error) {
	var profile model.PatientProfile
	err := r.db.GetContext(ctx, &profile, `
		SELECT p.id, p.user_id, p.medical_notes, u.name, u.email
		FROM patients p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`, id)
	if err != nil {
		return nil, wrapErr("get patient", err)
	}
	return &profile, nil
}
