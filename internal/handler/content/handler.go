package content

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patient-portal/internal/handler"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/service/content"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

type Handler struct {
	svc *content.Service
}

func NewHandler(svc *content.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/content")
	{
		group.GET("/health-tips", h.HealthTips)
		group.GET("/faq", h.FAQs)
	}
}

func (h *Handler) HealthTips(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	tips, err := h.svc.HealthTips(c.Request.Context(), c.Query("category"), page)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tips)
}

func (h *Handler) FAQs(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	faqs, err := h.svc.FAQs(c.Request.Context(), page)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, faqs)
}

// pageQuery binds skip and limit; range checks happen in the service
func pageQuery(c *gin.Context) (model.Page, error) {
	var page model.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		return model.Page{}, apperrors.InvalidInput("skip and limit must be integers")
	}
	return page, nil
}
