package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/internal/service/access"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

// Service runs one query across doctors, health tips and FAQs
type Service struct {
	doctors repository.DoctorRepository
	content repository.ContentRepository
}

func NewService(doctors repository.DoctorRepository, content repository.ContentRepository) *Service {
	return &Service{doctors: doctors, content: content}
}

func (s *Service) Search(ctx context.Context, caller *access.Caller, q string) (*model.SearchResults, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < model.MinSearchQueryLen {
		return nil, apperrors.InvalidInput(fmt.Sprintf("q must be at least %d characters long", model.MinSearchQueryLen))
	}

	doctors, err := s.doctors.SearchText(ctx, q, model.SearchLimit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	tips, err := s.content.SearchHealthTips(ctx, q, model.SearchLimit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	faqs, err := s.content.SearchFAQs(ctx, q, model.SearchLimit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	res := &model.SearchResults{
		Doctors:    doctors,
		HealthTips: tips,
		FAQs:       faqs,
	}
	if res.Doctors == nil {
		res.Doctors = []model.DoctorProfile{}
	}
	if res.HealthTips == nil {
		res.HealthTips = []model.HealthTip{}
	}
	if res.FAQs == nil {
		res.FAQs = []model.FAQ{}
	}
	return res, nil
}
