package symptom

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patient-portal/internal/handler"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/service/symptom"
)

type Handler struct {
	svc *symptom.Service
}

func NewHandler(svc *symptom.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes expects r to carry optional authentication
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/symptom-checker", h.Check)
}

func (h *Handler) Check(c *gin.Context) {
	var req model.SymptomCheckRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	resp, err := h.svc.Check(c.Request.Context(), handler.Caller(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
