package report

import (
	"context"
	"errors"
	"fmt"

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

const resourceName = "Report"

type Service struct {
	repo      repository.ReportRepository
	patients  repository.PatientRepository
	notifier  notification.Notifier
	validator validator.Validator
	metrics   *metrics.Metrics
}

func NewService(
	repo repository.ReportRepository,
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
	}
}

func (s *Service) Create(ctx context.Context, caller *access.Caller, patientID uuid.UUID, req *model.CreateReportRequest) (*model.ReportResponse, error) {
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

	r := &model.Report{
		PatientID: patient.ID,
		DoctorID:  doctorID,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, apperrors.Internal(err)
	}

	link := "/reports/" + r.ID.String()
	s.notifier.Notify(ctx, patient.UserID, model.NotificationSystem,
		"Neuer Arztbericht",
		fmt.Sprintf("Ein neuer Bericht \"%s\" ist verfügbar.", r.Title),
		&link)

	resp := model.NewReportResponse(&model.ReportDetails{
		Report:        *r,
		PatientName:   patient.Name,
		PatientUserID: patient.UserID,
		DoctorName:    caller.User.Name,
		DoctorUserID:  caller.User.ID,
	})
	return &resp, nil
}

func (s *Service) List(ctx context.Context, caller *access.Caller) ([]model.ReportResponse, error) {
	owner, err := caller.Scope()
	if err != nil {
		return nil, err
	}
	list, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	resp := make([]model.ReportResponse, 0, len(list))
	for i := range list {
		resp = append(resp, model.NewReportResponse(&list[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, caller *access.Caller, id uuid.UUID) (*model.ReportResponse, error) {
	details, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	resp := model.NewReportResponse(details)
	return &resp, nil
}

// Download renders the report as a PDF attachment
func (s *Service) Download(ctx context.Context, caller *access.Caller, id uuid.UUID) (*document.File, error) {
	details, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	content, err := document.Render(document.ForReport(document.ReportInput{
		Title:       details.Title,
		Content:     details.Content,
		PatientName: details.PatientName,
		DoctorName:  details.DoctorName,
		CreatedAt:   details.CreatedAt,
	}))
	if err != nil {
		log.Error().Err(err).Str("report_id", id.String()).Msg("failed to render report")
		return nil, apperrors.Internal(err)
	}
	s.metrics.DocumentsRendered.WithLabelValues("report").Inc()

	return &document.File{
		Name:    fmt.Sprintf("report_%s.pdf", id),
		Content: content,
	}, nil
}

func (s *Service) load(ctx context.Context, caller *access.Caller, id uuid.UUID) (*model.ReportDetails, error) {
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
	if err := caller.Authorize(resourceName, details.PatientID, &details.DoctorID); err != nil {
		return nil, err
	}
	return details, nil
}
