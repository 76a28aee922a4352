package prescription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/internal/service/access"
	"github.com/jwalitptl/patient-portal/internal/service/notification"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/validator"
)

const resourceName = "Prescription"

type Service struct {
	repo      repository.PrescriptionRepository
	patients  repository.PatientRepository
	notifier  notification.Notifier
	validator validator.Validator
}

func NewService(repo repository.PrescriptionRepository, patients repository.PatientRepository, notifier notification.Notifier, v validator.Validator) *Service {
	return &Service{
		repo:      repo,
		patients:  patients,
		notifier:  notifier,
		validator: v,
	}
}

// Create issues a prescription with its medications for patientID. Medications keep their input order.
func (s *Service) Create(ctx context.Context, caller *access.Caller, patientID uuid.UUID, req *model.CreatePrescriptionRequest) (*model.PrescriptionResponse, error) {
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

	rx := &model.Prescription{
		PatientID:   patient.ID,
		DoctorID:    doctorID,
		Description: req.Description,
	}
	meds := make([]model.Medication, len(req.Medications))
	for i, in := range req.Medications {
		if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(in.StartDate.Time) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("medication %d: end_date is before start_date", i+1))
		}
		meds[i] = model.Medication{
			Name:                 in.Name,
			Dosage:               in.Dosage,
			FrequencyDescription: in.FrequencyDescription,
			StartDate:            in.StartDate,
			EndDate:              in.EndDate,
			Notes:                in.Notes,
		}
	}

	if err := s.repo.Create(ctx, rx, meds); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.notifier.Notify(ctx, patient.UserID, model.NotificationPrescription,
		"Neues Rezept",
		fmt.Sprintf("%s hat Ihnen ein neues Rezept ausgestellt.", caller.User.Name),
		link(rx.ID))

	resp := model.NewPrescriptionResponse(&model.PrescriptionDetails{
		Prescription:  *rx,
		PatientName:   patient.Name,
		PatientUserID: patient.UserID,
		DoctorName:    caller.User.Name,
		DoctorUserID:  caller.User.ID,
		Medications:   meds,
	})
	return &resp, nil
}

func (s *Service) List(ctx context.Context, caller *access.Caller) ([]model.PrescriptionResponse, error) {
	owner, err := caller.Scope()
	if err != nil {
		return nil, err
	}
	list, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	resp := make([]model.PrescriptionResponse, 0, len(list))
	for i := range list {
		resp = append(resp, model.NewPrescriptionResponse(&list[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, caller *access.Caller, id uuid.UUID) (*model.PrescriptionResponse, error) {
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

	resp := model.NewPrescriptionResponse(details)
	return &resp, nil
}

func link(id uuid.UUID) *string {
	l := "/prescriptions/" + id.String()
	return &l
}
