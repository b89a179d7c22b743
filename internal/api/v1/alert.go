package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/service"
	"github.com/jurisflow/jurisflow/internal/types"
)

type AlertHandler struct {
	service service.AlertService
	log     *logger.Logger
}

func NewAlertHandler(service service.AlertService, log *logger.Logger) *AlertHandler {
	return &AlertHandler{
		service: service,
		log:     log,
	}
}

func (h *AlertHandler) ListAlerts(c *gin.Context) {
	var filter types.AlertFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListAlerts(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AlertHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.MarkRead(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AlertHandler) GenerateAlerts(c *gin.Context) {
	resp, err := h.service.GenerateAlerts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
