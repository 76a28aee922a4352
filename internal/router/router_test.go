package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appointmenth "github.com/jwalitptl/patient-portal/internal/handler/appointment"
	authh "github.com/jwalitptl/patient-portal/internal/handler/auth"
	contenth "github.com/jwalitptl/patient-portal/internal/handler/content"
	doctorh "github.com/jwalitptl/patient-portal/internal/handler/doctor"
	"github.com/jwalitptl/patient-portal/internal/handler/health"
	labresulth "github.com/jwalitptl/patient-portal/internal/handler/labresult"
	notificationh "github.com/jwalitptl/patient-portal/internal/handler/notification"
	prescriptionh "github.com/jwalitptl/patient-portal/internal/handler/prescription"
	reporth "github.com/jwalitptl/patient-portal/internal/handler/report"
	searchh "github.com/jwalitptl/patient-portal/internal/handler/search"
	symptomh "github.com/jwalitptl/patient-portal/internal/handler/symptom"
	"github.com/jwalitptl/patient-portal/internal/middleware"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/internal/repository/mocks"
	"github.com/jwalitptl/patient-portal/internal/service/access"
	"github.com/jwalitptl/patient-portal/internal/service/account"
	"github.com/jwalitptl/patient-portal/internal/service/appointment"
	"github.com/jwalitptl/patient-portal/internal/service/content"
	"github.com/jwalitptl/patient-portal/internal/service/doctor"
	"github.com/jwalitptl/patient-portal/internal/service/labresult"
	"github.com/jwalitptl/patient-portal/internal/service/notification"
	"github.com/jwalitptl/patient-portal/internal/service/prescription"
	"github.com/jwalitptl/patient-portal/internal/service/report"
	"github.com/jwalitptl/patient-portal/internal/service/search"
	"github.com/jwalitptl/patient-portal/internal/service/symptom"
	"github.com/jwalitptl/patient-portal/pkg/auth"
	"github.com/jwalitptl/patient-portal/pkg/messaging"
	"github.com/jwalitptl/patient-portal/pkg/metrics"
	"github.com/jwalitptl/patient-portal/pkg/security"
	"github.com/jwalitptl/patient-portal/pkg/validator"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type env struct {
	engine        http.Handler
	tokens        auth.JWTService
	users         *mocks.UserRepository
	patients      *mocks.PatientRepository
	doctors       *mocks.DoctorRepository
	appointments  *mocks.AppointmentRepository
	reports       *mocks.ReportRepository
	content       *mocks.ContentRepository
	symptoms      *mocks.SymptomRepository
	notifications *mocks.NotificationRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()
	tokens, err := auth.NewJWTService(auth.Config{Secret: "router-test", DefaultTTL: time.Hour})
	require.NoError(t, err)

	e := &env{
		tokens:        tokens,
		users:         new(mocks.UserRepository),
		patients:      new(mocks.PatientRepository),
		doctors:       new(mocks.DoctorRepository),
		appointments:  new(mocks.AppointmentRepository),
		reports:       new(mocks.ReportRepository),
		content:       new(mocks.ContentRepository),
		symptoms:      new(mocks.SymptomRepository),
		notifications: new(mocks.NotificationRepository),
	}

	reg := prometheus.NewRegistry()
	m := metrics.New("test", reg)
	v := validator.New()
	notifier := notification.NewService(e.notifications, e.users, messaging.NopBroker{}, v, m)

	handlers := NewHandlers(
		authh.NewHandler(account.NewService(e.users, tokens, security.NewBcryptHasher(4), v)),
		doctorh.NewHandler(doctor.NewService(e.doctors)),
		appointmenth.NewHandler(appointment.NewService(e.appointments, e.doctors, notifier, v)),
		prescriptionh.NewHandler(prescription.NewService(new(mocks.PrescriptionRepository), e.patients, notifier, v)),
		reporth.NewHandler(report.NewService(e.reports, e.patients, notifier, v, m)),
		labresulth.NewHandler(labresult.NewService(new(mocks.LabResultRepository), e.patients, notifier, v, m)),
		contenth.NewHandler(content.NewService(e.content, v)),
		symptomh.NewHandler(symptom.NewService(e.symptoms, v, m)),
		notificationh.NewHandler(notifier),
		searchh.NewHandler(search.NewService(e.doctors, e.content)),
		health.NewHandler(okPinger{}, reg),
	)
	resolver := access.NewResolver(tokens, e.users, e.patients, e.doctors)
	r := NewRouter(middleware.NewAuthMiddleware(resolver), handlers, m, RouterConfig{
		Debug:          true,
		CORSOrigins:    []string{"http://localhost:5173"},
		RequestTimeout: 5 * time.Second,
	})
	e.engine = r.Setup().Engine()
	return e
}

// patientToken registers a resolvable patient and returns its bearer token
func (e *env) patientToken(t *testing.T) (string, uuid.UUID) {
	t.Helper()
	user := &model.User{ID: uuid.New(), Email: "max@example.com", Name: "Max", Role: model.RolePatient}
	patient := &model.Patient{ID: uuid.New(), UserID: user.ID}
	e.users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	e.patients.On("GetByUserID", mock.Anything, user.ID).Return(patient, nil)

	token, err := e.tokens.Issue(user.Email, 0)
	require.NoError(t, err)
	return token, patient.ID
}

func (e *env) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func TestRootEndpoints(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "1.0.0", info["version"])

	w = e.do(http.MethodGet, "/health", "", "")
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	w = e.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newEnv(t)

	for _, path := range []string{"/api/appointments", "/api/reports", "/api/notifications", "/api/search?q=abc", "/api/auth/me"} {
		w := e.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Contains(t, w.Body.String(), `"code":"unauthenticated"`, path)
	}
}

func TestPublicDirectory(t *testing.T) {
	e := newEnv(t)
	e.doctors.On("Search", mock.Anything, model.DoctorFilter{City: "BERLIN"}).
		Return([]model.DoctorProfile{{Name: "Dr. Weber", Doctor: model.Doctor{City: "Berlin"}}}, nil)

	w := e.do(http.MethodGet, "/api/doctors?city=BERLIN", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dr. Weber")

	w = e.do(http.MethodGet, "/api/doctors/not-a-uuid", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentPaginationBounds(t *testing.T) {
	e := newEnv(t)

	for _, q := range []string{"limit=500", "limit=0", "skip=-1", "limit=abc"} {
		w := e.do(http.MethodGet, "/api/content/faq?"+q, "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}

	e.content.On("ListHealthTips", mock.Anything, model.TipFilter{}, model.Page{Skip: 0, Limit: 100}).Return(nil, nil)
	w := e.do(http.MethodGet, "/api/content/health-tips?category=unknown", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSymptomCheckerAcceptsBadToken(t *testing.T) {
	e := newEnv(t)
	e.symptoms.On("CreateSession", mock.Anything, mock.MatchedBy(func(s *model.SymptomCheckSession) bool {
		return s.PatientID == nil
	})).Return(nil)

	w := e.do(http.MethodPost, "/api/symptom-checker", "garbage",
		`{"symptoms_category":"Fieber","severity":"severe","duration":"3 Tage"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.SymptomCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.ResultMessage, "höhere Dringlichkeit")
	assert.Contains(t, resp.ResultMessage, "39°C")
	assert.Contains(t, resp.Disclaimer, "112")
}

func TestReportDownload(t *testing.T) {
	e := newEnv(t)
	token, patientID := e.patientToken(t)

	details := &model.ReportDetails{
		Report: model.Report{
			Base:      model.Base{ID: uuid.New(), CreatedAt: time.Now()},
			PatientID: patientID,
			DoctorID:  uuid.New(),
			Title:     "Befund",
			Content:   "Alles in Ordnung.",
		},
		PatientName: "Max",
		DoctorName:  "Dr. Weber",
	}
	e.reports.On("Get", mock.Anything, details.ID).Return(details, nil)

	w := e.do(http.MethodGet, "/api/reports/"+details.ID.String()+"/download", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=report_"+details.ID.String()+".pdf", w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
}

func TestForeignAppointmentIsNotFound(t *testing.T) {
	e := newEnv(t)
	token, _ := e.patientToken(t)

	foreign := &model.AppointmentDetails{Appointment: model.Appointment{
		Base: model.Base{ID: uuid.New()}, PatientID: uuid.New(), DoctorID: uuid.New(),
		Status: model.AppointmentStatusRequested,
	}}
	e.appointments.On("Get", mock.Anything, foreign.ID).Return(foreign, nil)
	e.appointments.On("Get", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

	owned := e.do(http.MethodGet, "/api/appointments/"+foreign.ID.String(), token, "")
	missing := e.do(http.MethodGet, "/api/appointments/"+uuid.NewString(), token, "")

	assert.Equal(t, http.StatusNotFound, owned.Code)
	assert.Equal(t, missing.Code, owned.Code)
	assert.JSONEq(t, missing.Body.String(), owned.Body.String())
}

func TestNotificationMessages(t *testing.T) {
	e := newEnv(t)
	token, _ := e.patientToken(t)

	e.notifications.On("MarkAllRead", mock.Anything, mock.Anything).Return(int64(2), nil)
	e.notifications.On("CountUnread", mock.Anything, mock.Anything).Return(0, nil)

	w := e.do(http.MethodPost, "/api/notifications/read-all", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"All notifications marked as read"}`, w.Body.String())

	w = e.do(http.MethodGet, "/api/notifications/unread-count", token, "")
	assert.JSONEq(t, `{"count":0}`, w.Body.String())
}

func TestAppointmentListUpcomingQuery(t *testing.T) {
	e := newEnv(t)
	token, patientID := e.patientToken(t)

	e.appointments.On("List", mock.Anything,
		repository.OwnerFilter{PatientID: &patientID},
		mock.MatchedBy(func(f model.AppointmentFilter) bool { return f.Upcoming != nil && *f.Upcoming }),
	).Return([]model.AppointmentDetails{}, nil)

	w := e.do(http.MethodGet, "/api/appointments?upcoming=true", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `[]`, w.Body.String())

	w = e.do(http.MethodGet, "/api/appointments?upcoming=maybe", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateNotificationWithoutToken(t *testing.T) {
	e := newEnv(t)
	userID := uuid.New()

	e.users.On("GetByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	e.notifications.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).Return(nil)

	w := e.do(http.MethodPost, "/api/notifications", "",
		`{"user_id":"`+userID.String()+`","title":"Hinweis","message":"Wartung am Samstag"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var n model.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &n))
	assert.Equal(t, userID, n.UserID)
	assert.Equal(t, model.NotificationSystem, n.Type)

	// listing stays private
	w = e.do(http.MethodGet, "/api/notifications", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginFlow(t *testing.T) {
	e := newEnv(t)
	hash, err := security.NewBcryptHasher(4).Hash("secret1")
	require.NoError(t, err)
	user := &model.User{ID: uuid.New(), Email: "anna@example.com", PasswordHash: hash, Role: model.RolePatient, Name: "Anna"}
	e.users.On("GetByEmail", mock.Anything, "anna@example.com").Return(user, nil)
	e.patients.On("GetByUserID", mock.Anything, user.ID).Return(&model.Patient{ID: uuid.New(), UserID: user.ID}, nil)

	w := e.do(http.MethodPost, "/api/auth/login", "", `{"email":"anna@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var tok model.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	assert.Equal(t, "bearer", tok.TokenType)

	w = e.do(http.MethodGet, "/api/auth/me", tok.AccessToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"anna@example.com"`)
	assert.NotContains(t, w.Body.String(), "password")
}
