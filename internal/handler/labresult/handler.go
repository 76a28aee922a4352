package labresult

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patient-portal/internal/handler"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/service/labresult"
	"github.com/jwalitptl/patient-portal/pkg/document"
	"github.com/jwalitptl/patient-portal/pkg/httputil"
)

type Handler struct {
	svc *labresult.Service
}

func NewHandler(svc *labresult.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	results := r.Group("/lab-results")
	{
		results.GET("", h.List)
		results.GET("/:id", h.Get)
		results.GET("/:id/download", h.Download)
		results.POST("/patients/:patient_id", h.Create)
	}
}

func (h *Handler) Create(c *gin.Context) {
	patientID, err := httputil.UUIDParam(c, "patient_id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	var req model.CreateLabResultRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	result, err := h.svc.Create(c.Request.Context(), handler.Caller(c), patientID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
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

	result, err := h.svc.Get(c.Request.Context(), handler.Caller(c), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
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
