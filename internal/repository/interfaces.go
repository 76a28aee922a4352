package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrStale means the record exists but no longer matches the expected state
	ErrStale = errors.New("record changed concurrently")
)

// OwnerFilter restricts a listing to the records of one patient or one doctor.
// Exactly one of the fields is set.
type OwnerFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
}

func (f OwnerFilter) Empty() bool {
	return f.PatientID == nil && f.DoctorID == nil
}

// All repository interfaces in one file
type (
	UserRepository interface {
		// CreatePatientAccount inserts the user and its patient profile atomically
		CreatePatientAccount(ctx context.Context, user *model.User, patient *model.Patient) error
		GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	}

	PatientRepository interface {
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error)
		GetProfile(ctx context.Context, id uuid.UUID) (*model.PatientProfile, error)
	}

	DoctorRepository interface {
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error)
		GetProfile(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error)
		Search(ctx context.Context, filter model.DoctorFilter) ([]model.DoctorProfile, error)
		// SearchText matches name or specialization
		SearchText(ctx context.Context, q string, limit int) ([]model.DoctorProfile, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.AppointmentDetails, error)
		List(ctx context.Context, owner OwnerFilter, filter model.AppointmentFilter) ([]model.AppointmentDetails, error)
		// UpdateStatus moves the appointment from status from to status to.
		// It returns ErrStale when the stored status is no longer from.
		UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.AppointmentStatus) error
	}

	PrescriptionRepository interface {
		// Create inserts the prescription and all medications in one transaction
		Create(ctx context.Context, prescription *model.Prescription, medications []model.Medication) error
		Get(ctx context.Context, id uuid.UUID) (*model.PrescriptionDetails, error)
		List(ctx context.Context, owner OwnerFilter) ([]model.PrescriptionDetails, error)
	}

	ReportRepository interface {
		Create(ctx context.Context, report *model.Report) error
		Get(ctx context.Context, id uuid.UUID) (*model.ReportDetails, error)
		List(ctx context.Context, owner OwnerFilter) ([]model.ReportDetails, error)
	}

	LabResultRepository interface {
		Create(ctx context.Context, result *model.LabResult) error
		Get(ctx context.Context, id uuid.UUID) (*model.LabResultDetails, error)
		List(ctx context.Context, owner OwnerFilter) ([]model.LabResultDetails, error)
	}

	ContentRepository interface {
		ListHealthTips(ctx context.Context, filter model.TipFilter, page model.Page) ([]model.HealthTip, error)
		ListFAQs(ctx context.Context, page model.Page) ([]model.FAQ, error)
		SearchHealthTips(ctx context.Context, q string, limit int) ([]model.HealthTip, error)
		SearchFAQs(ctx context.Context, q string, limit int) ([]model.FAQ, error)
	}

	SymptomRepository interface {
		CreateSession(ctx context.Context, session *model.SymptomCheckSession) error
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
		CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
		// MarkRead returns ErrNotFound unless the notification belongs to userID
		MarkRead(ctx context.Context, id, userID uuid.UUID) error
		MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	}
)
