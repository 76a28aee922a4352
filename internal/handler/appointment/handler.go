package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patient-portal/internal/handler"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/service/appointment"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/httputil"
)

type Handler struct {
	svc *appointment.Service
}

func NewHandler(svc *appointment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.Create)
		appointments.GET("", h.List)
		appointments.GET("/:id", h.Get)
		appointments.PATCH("/:id/cancel", h.Cancel)
		appointments.PATCH("/:id/status", h.UpdateStatus)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	appt, err := h.svc.Create(c.Request.Context(), handler.Caller(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (h *Handler) List(c *gin.Context) {
	var query model.AppointmentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		handler.RespondError(c, apperrors.InvalidInput("upcoming must be a boolean"))
		return
	}

	list, err := h.svc.List(c.Request.Context(), handler.Caller(c), query.Upcoming)
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

	appt, err := h.svc.Get(c.Request.Context(), handler.Caller(c), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := httputil.UUIDParam(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	appt, err := h.svc.Cancel(c.Request.Context(), handler.Caller(c), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := httputil.UUIDParam(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	var req model.UpdateAppointmentStatusRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	appt, err := h.svc.UpdateStatus(c.Request.Context(), handler.Caller(c), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}
