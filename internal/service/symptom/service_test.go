package symptom

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository/mocks"
	"github.com/jwalitptl/patient-portal/internal/service/access"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/metrics"
	"github.com/jwalitptl/patient-portal/pkg/validator"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		category string
		severity model.Severity
		duration string
		want     string
	}{
		{"severe with fever", "Fieber", model.SeveritySevere, "3 Tage", messageSevere + addendumFever},
		{"moderate for days", "Kopfschmerzen", model.SeverityModerate, "2 Tage", messageModerateLasting},
		{"moderate for weeks", "Husten", model.SeverityModerate, "1 Woche", messageModerateLasting},
		{"moderate short", "Husten", model.SeverityModerate, "seit heute", messageModerate},
		{"mild breathing", "Atemnot", model.SeverityMild, "", messageMild + addendumBreathing},
		{"mild chest", "Schmerzen in der Brust", model.SeverityMild, "", messageMild + addendumBreathing},
		{"fever wins over chest", "Fieber und Brustschmerz", model.SeverityMild, "", messageMild + addendumFever},
		{"case insensitive duration", "Rücken", model.SeverityModerate, "3 TAGE", messageModerateLasting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.category, tt.severity, tt.duration))
		})
	}
}

func newService() (*Service, *mocks.SymptomRepository, *metrics.Metrics) {
	repo := new(mocks.SymptomRepository)
	m := metrics.New("test", prometheus.NewRegistry())
	return NewService(repo, validator.New(), m), repo, m
}

func TestCheckAnonymousUnknownSeverity(t *testing.T) {
	svc, repo, m := newService()

	repo.On("CreateSession", mock.Anything, mock.MatchedBy(func(s *model.SymptomCheckSession) bool {
		return s.PatientID == nil && s.Severity == model.SeverityMild
	})).Return(nil)

	resp, err := svc.Check(context.Background(), nil, &model.SymptomCheckRequest{
		SymptomsCategory: "Kopfschmerzen",
		Severity:         "extreme",
	})
	require.NoError(t, err)
	assert.Equal(t, messageMild, resp.ResultMessage)
	assert.Equal(t, Disclaimer, resp.Disclaimer)
	assert.True(t, strings.HasSuffix(resp.Disclaimer, "112."))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SymptomChecks.WithLabelValues("mild")))
	repo.AssertExpectations(t)
}

func TestCheckLinksPatient(t *testing.T) {
	svc, repo, _ := newService()

	patientID := uuid.New()
	caller := &access.Caller{User: &model.User{ID: uuid.New(), Role: model.RolePatient}, PatientID: &patientID}
	repo.On("CreateSession", mock.Anything, mock.MatchedBy(func(s *model.SymptomCheckSession) bool {
		return s.PatientID != nil && *s.PatientID == patientID && s.Severity == model.SeveritySevere
	})).Return(nil)

	resp, err := svc.Check(context.Background(), caller, &model.SymptomCheckRequest{
		SymptomsCategory: "Fieber",
		Severity:         "Severe",
		Duration:         "3 Tage",
	})
	require.NoError(t, err)
	assert.Equal(t, messageSevere+addendumFever, resp.ResultMessage)
	repo.AssertExpectations(t)
}

func TestCheckDoctorIsNotLinked(t *testing.T) {
	svc, repo, _ := newService()

	doctorID := uuid.New()
	caller := &access.Caller{User: &model.User{ID: uuid.New(), Role: model.RoleDoctor}, DoctorID: &doctorID}
	repo.On("CreateSession", mock.Anything, mock.MatchedBy(func(s *model.SymptomCheckSession) bool {
		return s.PatientID == nil
	})).Return(nil)

	_, err := svc.Check(context.Background(), caller, &model.SymptomCheckRequest{SymptomsCategory: "Husten"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCheckRequiresCategory(t *testing.T) {
	svc, repo, _ := newService()

	_, err := svc.Check(context.Background(), nil, &model.SymptomCheckRequest{Severity: "mild"})
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
	repo.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestCheckStorageFailure(t *testing.T) {
	svc, repo, _ := newService()

	repo.On("CreateSession", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := svc.Check(context.Background(), nil, &model.SymptomCheckRequest{SymptomsCategory: "Husten"})
	assert.True(t, apperrors.Is(err, apperrors.KindInternal))
}
