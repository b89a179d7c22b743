package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jurisflow/jurisflow/internal/api/dto"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/service"
)

type AssistantHandler struct {
	service service.AssistantService
	log     *logger.Logger
}

func NewAssistantHandler(service service.AssistantService, log *logger.Logger) *AssistantHandler {
	return &AssistantHandler{
		service: service,
		log:     log,
	}
}

func (h *AssistantHandler) Ask(c *gin.Context) {
	var req dto.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Ask(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
