package doctor

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

// Service is the public doctors directory. It needs no caller.
type Service struct {
	repo repository.DoctorRepository
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Search(ctx context.Context, filter model.DoctorFilter) ([]model.DoctorProfile, error) {
	filter.Name = strings.TrimSpace(filter.Name)
	filter.Specialization = strings.TrimSpace(filter.Specialization)
	filter.City = strings.TrimSpace(filter.City)

	doctors, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if doctors == nil {
		doctors = []model.DoctorProfile{}
	}
	return doctors, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error) {
	d, err := s.repo.GetProfile(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Doctor")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return d, nil
}
