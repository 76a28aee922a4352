package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
)

type symptomRepository struct {
	BaseRepository
}

func NewSymptomRepository(base BaseRepository) repository.SymptomRepository {
	return &symptomRepository{base}
}

func (r *symptomRepository) CreateSession(ctx context.Context, s *model.SymptomCheckSession) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO symptom_check_sessions (
			id, patient_id, symptoms_category, severity, duration, result_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.PatientID, s.SymptomsCategory, s.Severity, s.Duration, s.ResultMessage, s.CreatedAt,
	)
	return wrapErr("create symptom check session", err)
}
