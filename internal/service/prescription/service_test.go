package prescription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/internal/repository/mocks"
	"github.com/jwalitptl/patient-portal/internal/service/access"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/validator"
)

type countingNotifier struct {
	calls int
}

func (n *countingNotifier) Notify(ctx context.Context, userID uuid.UUID, typ model.NotificationType, title, message string, link *string) {
	n.calls++
}

func doctor() *access.Caller {
	id := uuid.New()
	return &access.Caller{User: &model.User{ID: uuid.New(), Name: "Dr. Weber", Role: model.RoleDoctor}, DoctorID: &id}
}

func patient() *access.Caller {
	id := uuid.New()
	return &access.Caller{User: &model.User{ID: uuid.New(), Name: "Max", Role: model.RolePatient}, PatientID: &id}
}

func request() *model.CreatePrescriptionRequest {
	return &model.CreatePrescriptionRequest{
		Medications: []model.MedicationInput{
			{Name: "Ibuprofen 400mg", Dosage: "1 Tablette", FrequencyDescription: "3x täglich"},
			{Name: "Pantoprazol 20mg", Dosage: "1 Tablette", FrequencyDescription: "morgens"},
		},
	}
}

func TestCreateKeepsMedicationOrder(t *testing.T) {
	repo, patients, notifier := new(mocks.PrescriptionRepository), new(mocks.PatientRepository), &countingNotifier{}
	svc := NewService(repo, patients, notifier, validator.New())

	d := doctor()
	profile := &model.PatientProfile{Patient: model.Patient{ID: uuid.New(), UserID: uuid.New()}, Name: "Max"}
	patients.On("GetProfile", mock.Anything, profile.ID).Return(profile, nil)
	repo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(meds []model.Medication) bool {
		return len(meds) == 2 && meds[0].Name == "Ibuprofen 400mg" && meds[1].Name == "Pantoprazol 20mg"
	})).Return(nil)

	resp, err := svc.Create(context.Background(), d, profile.ID, request())
	require.NoError(t, err)
	assert.Len(t, resp.Medications, 2)
	assert.Equal(t, *d.DoctorID, resp.DoctorID)
	assert.Equal(t, "Max", resp.PatientName)
	assert.Equal(t, 1, notifier.calls)
}

func TestCreateByPatientForbidden(t *testing.T) {
	repo, patients := new(mocks.PrescriptionRepository), new(mocks.PatientRepository)
	svc := NewService(repo, patients, &countingNotifier{}, validator.New())

	_, err := svc.Create(context.Background(), patient(), uuid.New(), request())
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateUnknownPatient(t *testing.T) {
	repo, patients := new(mocks.PrescriptionRepository), new(mocks.PatientRepository)
	svc := NewService(repo, patients, &countingNotifier{}, validator.New())

	id := uuid.New()
	patients.On("GetProfile", mock.Anything, id).Return(nil, repository.ErrNotFound)

	_, err := svc.Create(context.Background(), doctor(), id, request())
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "Patient not found", err.Error())
}

func TestCreateRejectsIncompleteMedication(t *testing.T) {
	svc := NewService(new(mocks.PrescriptionRepository), new(mocks.PatientRepository), &countingNotifier{}, validator.New())

	req := request()
	req.Medications[1].Dosage = ""
	_, err := svc.Create(context.Background(), doctor(), uuid.New(), req)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
}

func TestCreateRejectsReversedDates(t *testing.T) {
	repo, patients := new(mocks.PrescriptionRepository), new(mocks.PatientRepository)
	svc := NewService(repo, patients, &countingNotifier{}, validator.New())

	profile := &model.PatientProfile{Patient: model.Patient{ID: uuid.New()}}
	patients.On("GetProfile", mock.Anything, profile.ID).Return(profile, nil)

	start := model.NewDate(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))
	end := model.NewDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	req := request()
	req.Medications[0].StartDate = &start
	req.Medications[0].EndDate = &end

	_, err := svc.Create(context.Background(), doctor(), profile.ID, req)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateStorageFailureSendsNoNotification(t *testing.T) {
	repo, patients, notifier := new(mocks.PrescriptionRepository), new(mocks.PatientRepository), &countingNotifier{}
	svc := NewService(repo, patients, notifier, validator.New())

	profile := &model.PatientProfile{Patient: model.Patient{ID: uuid.New()}}
	patients.On("GetProfile", mock.Anything, profile.ID).Return(profile, nil)
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("tx aborted"))

	_, err := svc.Create(context.Background(), doctor(), profile.ID, request())
	assert.True(t, apperrors.Is(err, apperrors.KindInternal))
	assert.Zero(t, notifier.calls)
}

func TestGetForeignPrescription(t *testing.T) {
	repo := new(mocks.PrescriptionRepository)
	svc := NewService(repo, new(mocks.PatientRepository), &countingNotifier{}, validator.New())

	details := &model.PrescriptionDetails{Prescription: model.Prescription{
		Base: model.Base{ID: uuid.New()}, PatientID: uuid.New(), DoctorID: uuid.New(),
	}}
	repo.On("Get", mock.Anything, details.ID).Return(details, nil)

	_, err := svc.Get(context.Background(), patient(), details.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "Prescription not found", err.Error())
}

func TestListUsesDoctorScope(t *testing.T) {
	repo := new(mocks.PrescriptionRepository)
	svc := NewService(repo, new(mocks.PatientRepository), &countingNotifier{}, validator.New())

	d := doctor()
	repo.On("List", mock.Anything, repository.OwnerFilter{DoctorID: d.DoctorID}).
		Return([]model.PrescriptionDetails{{}}, nil)

	list, err := svc.List(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].Medications)
}
