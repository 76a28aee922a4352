package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patient-portal/internal/handler"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/service/prescription"
	"github.com/jwalitptl/patient-portal/pkg/httputil"
)

type Handler struct {
	svc *prescription.Service
}

func NewHandler(svc *prescription.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.GET("", h.List)
		prescriptions.GET("/:id", h.Get)
		prescriptions.POST("/patients/:patient_id", h.Create)
	}
}

func (h *Handler) Create(c *gin.Context) {
	patientID, err := httputil.UUIDParam(c, "patient_id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	var req model.CreatePrescriptionRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	rx, err := h.svc.Create(c.Request.Context(), handler.Caller(c), patientID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rx)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), handler.Caller(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := httputil.UUIDParam(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	rx, err := h.svc.Get(c.Request.Context(), handler.Caller(c), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rx)
}
