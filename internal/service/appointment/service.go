package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/internal/service/access"
	"github.com/jwalitptl/patient-portal/internal/service/notification"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/validator"
)

const resourceName = "Appointment"

type Service struct {
	repo      repository.AppointmentRepository
	doctors   repository.DoctorRepository
	notifier  notification.Notifier
	validator validator.Validator
	now       func() time.Time
}

func NewService(repo repository.AppointmentRepository, doctors repository.DoctorRepository, notifier notification.Notifier, v validator.Validator) *Service {
	return &Service{
		repo:      repo,
		doctors:   doctors,
		notifier:  notifier,
		validator: v,
		now:       time.Now,
	}
}

// Create books an appointment for the calling patient. New appointments start as requested.
func (s *Service) Create(ctx context.Context, caller *access.Caller, req *model.CreateAppointmentRequest) (*model.AppointmentResponse, error) {
	patientID, err := access.RequirePatient(caller)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Date.IsZero() {
		return nil, apperrors.InvalidInput("date is required")
	}
	typ := model.ConsultationType(req.Type)
	if !typ.Valid() {
		return nil, apperrors.InvalidInput("invalid appointment type")
	}

	doctor, err := s.doctors.GetProfile(ctx, req.DoctorID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Doctor")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	a := &model.Appointment{
		PatientID: patientID,
		DoctorID:  doctor.ID,
		Date:      req.Date,
		Time:      req.Time,
		Type:      typ,
		Status:    model.AppointmentStatusRequested,
		Notes:     req.Notes,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, apperrors.Internal(err)
	}

	details := &model.AppointmentDetails{
		Appointment:          *a,
		PatientName:          caller.User.Name,
		PatientUserID:        caller.User.ID,
		DoctorName:           doctor.Name,
		DoctorUserID:         doctor.UserID,
		DoctorSpecialization: doctor.Specialization,
	}
	s.notifier.Notify(ctx, doctor.UserID, model.NotificationAppointment,
		"Neue Terminanfrage",
		fmt.Sprintf("%s hat einen Termin am %s um %s angefragt.", caller.User.Name, a.Date.Format("02.01.2006"), a.Time),
		link(a.ID))

	resp := model.NewAppointmentResponse(details)
	return &resp, nil
}

// List returns the caller's appointments, newest first. upcoming partitions on today's date when set.
func (s *Service) List(ctx context.Context, caller *access.Caller, upcoming *bool) ([]model.AppointmentResponse, error) {
	owner, err := caller.Scope()
	if err != nil {
		return nil, err
	}

	list, err := s.repo.List(ctx, owner, model.AppointmentFilter{
		Upcoming: upcoming,
		Today:    model.NewDate(s.now()),
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	resp := make([]model.AppointmentResponse, 0, len(list))
	for i := range list {
		resp = append(resp, model.NewAppointmentResponse(&list[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, caller *access.Caller, id uuid.UUID) (*model.AppointmentResponse, error) {
	details, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	resp := model.NewAppointmentResponse(details)
	return &resp, nil
}

// Cancel is reserved to the owning patient
func (s *Service) Cancel(ctx context.Context, caller *access.Caller, id uuid.UUID) (*model.AppointmentResponse, error) {
	if _, err := access.RequirePatient(caller); err != nil {
		return nil, err
	}
	details, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	switch details.Status {
	case model.AppointmentStatusCancelled:
		return nil, apperrors.InvalidInput("appointment already cancelled")
	case model.AppointmentStatusCompleted:
		return nil, apperrors.InvalidInput("completed appointments cannot be cancelled")
	}

	if err := s.setStatus(ctx, details, model.AppointmentStatusCancelled); err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, details.DoctorUserID, model.NotificationAppointment,
		"Termin abgesagt",
		fmt.Sprintf("%s hat den Termin am %s um %s abgesagt.", details.PatientName, details.Date.Format("02.01.2006"), details.Time),
		link(details.ID))

	resp := model.NewAppointmentResponse(details)
	return &resp, nil
}

// UpdateStatus lets the assigned doctor move an appointment along its state machine
func (s *Service) UpdateStatus(ctx context.Context, caller *access.Caller, id uuid.UUID, req *model.UpdateAppointmentStatusRequest) (*model.AppointmentResponse, error) {
	if _, err := access.RequireDoctor(caller); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	target := model.AppointmentStatus(req.Status)
	if !target.Valid() {
		return nil, apperrors.InvalidInput("invalid status")
	}

	details, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if details.Status.IsTerminal() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("appointment is already %s", details.Status))
	}
	if !details.Status.CanTransitionTo(target) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cannot change status from %s to %s", details.Status, target))
	}

	if err := s.setStatus(ctx, details, target); err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, details.PatientUserID, model.NotificationAppointment,
		"Terminstatus geändert",
		fmt.Sprintf("Ihr Termin am %s um %s bei %s ist jetzt: %s.", details.Date.Format("02.01.2006"), details.Time, details.DoctorName, target),
		link(details.ID))

	resp := model.NewAppointmentResponse(details)
	return &resp, nil
}

func (s *Service) load(ctx context.Context, caller *access.Caller, id uuid.UUID) (*model.AppointmentDetails, error) {
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

func (s *Service) setStatus(ctx context.Context, details *model.AppointmentDetails, status model.AppointmentStatus) error {
	err := s.repo.UpdateStatus(ctx, details.ID, details.Status, status)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(resourceName)
	}
	if errors.Is(err, repository.ErrStale) {
		return apperrors.InvalidInput("appointment status was changed by another request")
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	details.Status = status
	return nil
}

func link(id uuid.UUID) *string {
	l := "/appointments/" + id.String()
	return &l
}
