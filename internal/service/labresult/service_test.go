package labresult

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/internal/repository/mocks"
	"github.com/jwalitptl/patient-portal/internal/service/access"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/metrics"
	"github.com/jwalitptl/patient-portal/pkg/validator"
)

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, uuid.UUID, model.NotificationType, string, string, *string) {}

func setup() (*Service, *mocks.LabResultRepository, *mocks.PatientRepository, *metrics.Metrics) {
	repo, patients := new(mocks.LabResultRepository), new(mocks.PatientRepository)
	m := metrics.New("test", prometheus.NewRegistry())
	svc := NewService(repo, patients, nopNotifier{}, validator.New(), m)
	svc.now = func() time.Time { return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC) }
	return svc, repo, patients, m
}

func TestCreateDefaultsDateAndDoctor(t *testing.T) {
	svc, repo, patients, _ := setup()

	doctorID := uuid.New()
	caller := &access.Caller{User: &model.User{ID: uuid.New(), Name: "Dr. Weber", Role: model.RoleDoctor}, DoctorID: &doctorID}
	profile := &model.PatientProfile{Patient: model.Patient{ID: uuid.New(), UserID: uuid.New()}, Name: "Max"}
	patients.On("GetProfile", mock.Anything, profile.ID).Return(profile, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.LabResult) bool {
		return r.DoctorID != nil && *r.DoctorID == doctorID && r.Date.String() == "2024-01-15"
	})).Return(nil)

	resp, err := svc.Create(context.Background(), caller, profile.ID,
		&model.CreateLabResultRequest{TestName: "Blutzucker", ResultValue: "95"})
	require.NoError(t, err)
	require.NotNil(t, resp.DoctorName)
	assert.Equal(t, "Dr. Weber", *resp.DoctorName)
	repo.AssertExpectations(t)
}

func TestCreateUnknownPatient(t *testing.T) {
	svc, _, patients, _ := setup()

	doctorID := uuid.New()
	caller := &access.Caller{User: &model.User{ID: uuid.New(), Role: model.RoleDoctor}, DoctorID: &doctorID}
	id := uuid.New()
	patients.On("GetProfile", mock.Anything, id).Return(nil, repository.ErrNotFound)

	_, err := svc.Create(context.Background(), caller, id,
		&model.CreateLabResultRequest{TestName: "TSH", ResultValue: "2.1"})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "Patient not found", err.Error())
}

func TestDownloadWithoutDoctor(t *testing.T) {
	svc, repo, _, m := setup()

	patientID := uuid.New()
	unit := "mg/dL"
	details := &model.LabResultDetails{
		LabResult: model.LabResult{
			Base:        model.Base{ID: uuid.New()},
			PatientID:   patientID,
			TestName:    "Blutzucker",
			ResultValue: "95",
			Unit:        &unit,
			Date:        model.NewDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
		},
		PatientName: "Max Mustermann",
	}
	repo.On("Get", mock.Anything, details.ID).Return(details, nil)

	caller := &access.Caller{User: &model.User{ID: uuid.New(), Role: model.RolePatient}, PatientID: &patientID}
	file, err := svc.Download(context.Background(), caller, details.ID)
	require.NoError(t, err)
	assert.Equal(t, "lab_result_"+details.ID.String()+".pdf", file.Name)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("%PDF-")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocumentsRendered.WithLabelValues("lab_result")))
}

func TestDoctorCannotSeeUnauthoredResult(t *testing.T) {
	svc, repo, _, _ := setup()

	details := &model.LabResultDetails{LabResult: model.LabResult{Base: model.Base{ID: uuid.New()}, PatientID: uuid.New()}}
	repo.On("Get", mock.Anything, details.ID).Return(details, nil)

	doctorID := uuid.New()
	caller := &access.Caller{User: &model.User{ID: uuid.New(), Role: model.RoleDoctor}, DoctorID: &doctorID}
	_, err := svc.Get(context.Background(), caller, details.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "Lab result not found", err.Error())
}

func TestListScopesPatient(t *testing.T) {
	svc, repo, _, _ := setup()

	patientID := uuid.New()
	caller := &access.Caller{User: &model.User{ID: uuid.New(), Role: model.RolePatient}, PatientID: &patientID}
	repo.On("List", mock.Anything, repository.OwnerFilter{PatientID: &patientID}).
		Return([]model.LabResultDetails{{PatientName: "Max"}}, nil)

	list, err := svc.List(context.Background(), caller)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].DoctorName)
}
