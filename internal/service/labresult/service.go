package labresult

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/internal/service/access"
	"github.com/jwalitptl/patient-portal/internal/service/notification"
	"github.com/jwalitptl/patient-portal/pkg/document"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/metrics"
	"github.com/jwalitptl/patient-portal/pkg/validator"
)

const resourceName = "Lab result"

type Service struct {
	repo      repository.LabResultRepository
	patients  repository.PatientRepository
	notifier  notification.Notifier
	validator validator.Validator
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewService(
	repo repository.LabResultRepository,
	patients repository.PatientRepository,
	notifier notification.Notifier,
	v validator.Validator,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:      repo,
		patients:  patients,
		notifier:  notifier,
		validator: v,
		metrics:   m,
		now:       time.Now,
	}
}

// Create records a lab result authored by the calling doctor. A missing date defaults to today.
func (s *Service) Create(ctx context.Context, caller *access.Caller, patientID uuid.UUID, req *model.CreateLabResultRequest) (*model.LabResultResponse, error) {
	doctorID, err := access.RequireDoctor(caller)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	patient, err := s.patients.GetProfile(ctx, patientID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Patient")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	date := req.Date
	if date.IsZero() {
		date = model.NewDate(s.now())
	}
	r := &model.LabResult{
		PatientID:   patient.ID,
		DoctorID:    &doctorID,
		TestName:    req.TestName,
		ResultValue: req.ResultValue,
		Unit:        req.Unit,
		NormalRange: req.NormalRange,
		Date:        date,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, apperrors.Internal(err)
	}

	link := "/lab-results/" + r.ID.String()
	s.notifier.Notify(ctx, patient.UserID, model.NotificationLabResult,
		"Neues Laborergebnis",
		fmt.Sprintf("Ihr Ergebnis für \"%s\" liegt vor.", r.TestName),
		&link)

	doctorName := caller.User.Name
	resp := model.NewLabResultResponse(&model.LabResultDetails{
		LabResult:     *r,
		PatientName:   patient.Name,
		PatientUserID: patient.UserID,
		DoctorName:    &doctorName,
		DoctorUserID:  &caller.User.ID,
	})
	return &resp, nil
}

func (s *Service) List(ctx context.Context, caller *access.Caller) ([]model.LabResultResponse, error) {
	owner, err := caller.Scope()
	if err != nil {
		return nil, err
	}
	list, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	resp := make([]model.LabResultResponse, 0, len(list))
	for i := range list {
		resp = append(resp, model.NewLabResultResponse(&list[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, caller *access.Caller, id uuid.UUID) (*model.LabResultResponse, error) {
	details, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	resp := model.NewLabResultResponse(details)
	return &resp, nil
}

// Download renders the lab result as a PDF attachment. The doctor line is
// omitted for results entered without one.
func (s *Service) Download(ctx context.Context, caller *access.Caller, id uuid.UUID) (*document.File, error) {
	details, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	content, err := document.Render(document.ForLabResult(document.LabResultInput{
		TestName:    details.TestName,
		ResultValue: details.ResultValue,
		Unit:        deref(details.Unit),
		NormalRange: deref(details.NormalRange),
		Date:        details.Date.Time,
		PatientName: details.PatientName,
		DoctorName:  deref(details.DoctorName),
	}))
	if err != nil {
		log.Error().Err(err).Str("lab_result_id", id.String()).Msg("failed to render lab result")
		return nil, apperrors.Internal(err)
	}
	s.metrics.DocumentsRendered.WithLabelValues("lab_result").Inc()

	return &document.File{
		Name:    fmt.Sprintf("lab_result_%s.pdf", id),
		Content: content,
	}, nil
}

func (s *Service) load(ctx context.Context, caller *access.Caller, id uuid.UUID) (*model.LabResultDetails, error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, err
	}
	details, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound(resourceName)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := caller.Authorize(resourceName, details.PatientID, details.DoctorID); err != nil {
		return nil, err
	}
	return details, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
