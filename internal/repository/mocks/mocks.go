// Package mocks provides testify doubles for the repository interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreatePatientAccount(ctx context.Context, user *model.User, patient *model.Patient) error {
	return m.Called(ctx, user, patient).Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

type PatientRepository struct {
	mock.Mock
}

func (m *PatientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *PatientRepository) GetProfile(ctx context.Context, id uuid.UUID) (*model.PatientProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PatientProfile), args.Error(1)
}

type DoctorRepository struct {
	mock.Mock
}

func (m *DoctorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Doctor), args.Error(1)
}

func (m *DoctorRepository) GetProfile(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DoctorProfile), args.Error(1)
}

func (m *DoctorRepository) Search(ctx context.Context, filter model.DoctorFilter) ([]model.DoctorProfile, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DoctorProfile), args.Error(1)
}

func (m *DoctorRepository) SearchText(ctx context.Context, q string, limit int) ([]model.DoctorProfile, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DoctorProfile), args.Error(1)
}

type AppointmentRepository struct {
	mock.Mock
}

func (m *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *AppointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.AppointmentDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AppointmentDetails), args.Error(1)
}

func (m *AppointmentRepository) List(ctx context.Context, owner repository.OwnerFilter, filter model.AppointmentFilter) ([]model.AppointmentDetails, error) {
	args := m.Called(ctx, owner, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AppointmentDetails), args.Error(1)
}

func (m *AppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.AppointmentStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

type PrescriptionRepository struct {
	mock.Mock
}

func (m *PrescriptionRepository) Create(ctx context.Context, prescription *model.Prescription, medications []model.Medication) error {
	return m.Called(ctx, prescription, medications).Error(0)
}

func (m *PrescriptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.PrescriptionDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PrescriptionDetails), args.Error(1)
}

func (m *PrescriptionRepository) List(ctx context.Context, owner repository.OwnerFilter) ([]model.PrescriptionDetails, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PrescriptionDetails), args.Error(1)
}

type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) Create(ctx context.Context, report *model.Report) error {
	return m.Called(ctx, report).Error(0)
}

func (m *ReportRepository) Get(ctx context.Context, id uuid.UUID) (*model.ReportDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReportDetails), args.Error(1)
}

func (m *ReportRepository) List(ctx context.Context, owner repository.OwnerFilter) ([]model.ReportDetails, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReportDetails), args.Error(1)
}

type LabResultRepository struct {
	mock.Mock
}

func (m *LabResultRepository) Create(ctx context.Context, result *model.LabResult) error {
	return m.Called(ctx, result).Error(0)
}

func (m *LabResultRepository) Get(ctx context.Context, id uuid.UUID) (*model.LabResultDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LabResultDetails), args.Error(1)
}

func (m *LabResultRepository) List(ctx context.Context, owner repository.OwnerFilter) ([]model.LabResultDetails, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LabResultDetails), args.Error(1)
}

type ContentRepository struct {
	mock.Mock
}

func (m *ContentRepository) ListHealthTips(ctx context.Context, filter model.TipFilter, page model.Page) ([]model.HealthTip, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HealthTip), args.Error(1)
}

func (m *ContentRepository) ListFAQs(ctx context.Context, page model.Page) ([]model.FAQ, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FAQ), args.Error(1)
}

func (m *ContentRepository) SearchHealthTips(ctx context.Context, q string, limit int) ([]model.HealthTip, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HealthTip), args.Error(1)
}

func (m *ContentRepository) SearchFAQs(ctx context.Context, q string, limit int) ([]model.FAQ, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FAQ), args.Error(1)
}

type SymptomRepository struct {
	mock.Mock
}

func (m *SymptomRepository) CreateSession(ctx context.Context, session *model.SymptomCheckSession) error {
	return m.Called(ctx, session).Error(0)
}

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
