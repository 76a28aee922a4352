package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/patient-portal/internal/handler/appointment"
	"github.com/jwalitptl/patient-portal/internal/handler/auth"
	"github.com/jwalitptl/patient-portal/internal/handler/content"
	"github.com/jwalitptl/patient-portal/internal/handler/doctor"
	"github.com/jwalitptl/patient-portal/internal/handler/health"
	"github.com/jwalitptl/patient-portal/internal/handler/labresult"
	"github.com/jwalitptl/patient-portal/internal/handler/notification"
	"github.com/jwalitptl/patient-portal/internal/handler/prescription"
	"github.com/jwalitptl/patient-portal/internal/handler/report"
	"github.com/jwalitptl/patient-portal/internal/handler/search"
	"github.com/jwalitptl/patient-portal/internal/handler/symptom"
	"github.com/jwalitptl/patient-portal/internal/middleware"
	"github.com/jwalitptl/patient-portal/pkg/metrics"
)

// APIPrefix is the mount point of every resource route
const APIPrefix = "/api"

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// Handlers groups the resource handlers mounted under APIPrefix
type Handlers struct {
	Auth          *auth.Handler
	Doctors       Handler
	Appointments  Handler
	Prescriptions Handler
	Reports       Handler
	LabResults    Handler
	Content       Handler
	Symptoms      Handler
	Notifications *notification.Handler
	Search        Handler
	Health        *health.Handler
}

// NewHandlers is a convenience for wiring from concrete handler types
func NewHandlers(
	authH *auth.Handler,
	doctorH *doctor.Handler,
	appointmentH *appointment.Handler,
	prescriptionH *prescription.Handler,
	reportH *report.Handler,
	labH *labresult.Handler,
	contentH *content.Handler,
	symptomH *symptom.Handler,
	notificationH *notification.Handler,
	searchH *search.Handler,
	healthH *health.Handler,
) Handlers {
	return Handlers{
		Auth:          authH,
		Doctors:       doctorH,
		Appointments:  appointmentH,
		Prescriptions: prescriptionH,
		Reports:       reportH,
		LabResults:    labH,
		Content:       contentH,
		Symptoms:      symptomH,
		Notifications: notificationH,
		Search:        searchH,
		Health:        healthH,
	}
}

type RouterConfig struct {
	Debug            bool
	CORSOrigins      []string
	RequestTimeout   time.Duration
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	config   RouterConfig
	metrics  *metrics.Metrics
}

func NewRouter(auth *middleware.AuthMiddleware, handlers Handlers, m *metrics.Metrics, config RouterConfig) *Router {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	r := &Router{
		engine:   engine,
		auth:     auth,
		handlers: handlers,
		config:   config,
		metrics:  m,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.Metrics(m),
		middleware.CORS(middleware.DefaultCORSConfig(config.CORSOrigins)),
		middleware.SecurityHeaders(),
		middleware.Timeout(config.RequestTimeout),
	)

	if config.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() *Router {
	r.handlers.Health.RegisterRoutes(r.engine)

	api := r.engine.Group(APIPrefix)
	api.Use(middleware.BodyLimit(middleware.DefaultMaxBodySize))

	// Public routes
	public := api.Group("")
	r.handlers.Doctors.RegisterRoutes(public)
	r.handlers.Content.RegisterRoutes(public)

	optional := api.Group("")
	optional.Use(r.auth.OptionalAuthenticate())
	r.handlers.Symptoms.RegisterRoutes(optional)

	// Protected routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.handlers.Auth.RegisterRoutes(public, protected)
	r.handlers.Appointments.RegisterRoutes(protected)
	r.handlers.Prescriptions.RegisterRoutes(protected)
	r.handlers.Reports.RegisterRoutes(protected)
	r.handlers.LabResults.RegisterRoutes(protected)
	r.handlers.Notifications.RegisterRoutes(public, protected)
	r.handlers.Search.RegisterRoutes(protected)

	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
