package content

import (
	"context"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/validator"
)

// Service serves the public health tips and FAQ. Every call reads storage.
type Service struct {
	repo      repository.ContentRepository
	validator validator.Validator
}

func NewService(repo repository.ContentRepository, v validator.Validator) *Service {
	return &Service{repo: repo, validator: v}
}

// HealthTips lists tips newest first. An unrecognized category lists all tips.
func (s *Service) HealthTips(ctx context.Context, category string, page model.Page) ([]model.HealthTip, error) {
	if err := s.validator.Validate(page); err != nil {
		return nil, err
	}

	filter := model.TipFilter{}
	if c := model.TipCategory(category); c.Valid() {
		filter.Category = c
	}

	tips, err := s.repo.ListHealthTips(ctx, filter, page)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if tips == nil {
		tips = []model.HealthTip{}
	}
	return tips, nil
}

func (s *Service) FAQs(ctx context.Context, page model.Page) ([]model.FAQ, error) {
	if err := s.validator.Validate(page); err != nil {
		return nil, err
	}

	faqs, err := s.repo.ListFAQs(ctx, page)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if faqs == nil {
		faqs = []model.FAQ{}
	}
	return faqs, nil
}
