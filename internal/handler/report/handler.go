package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patient-portal/internal/handler"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/service/report"
	"github.com/jwalitptl/patient-portal/pkg/document"
	"github.com/jwalitptl/patient-portal/pkg/httputil"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("", h.List)
		reports.GET("/:id", h.Get)
		reports.GET("/:id/download", h.Download)
		reports.POST("/patients/:patient_id", h.Create)
	}
}

func (h *Handler) Create(c *gin.Context) {
	patientID, err := httputil.UUIDParam(c, "patient_id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	var req model.CreateReportRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	rep, err := h.svc.Create(c.Request.Context(), handler.Caller(c), patientID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rep)
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

	rep, err := h.svc.Get(c.Request.Context(), handler.Caller(c), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *Handler) Download(c *gin.Context) {
	id, err := httputil.UUIDParam(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	file, err := h.svc.Download(c.Request.Context(), handler.Caller(c), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	httputil.Attachment(c, file.Name, document.ContentType, file.Content)
}
