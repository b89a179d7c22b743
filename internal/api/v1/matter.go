package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jurisflow/jurisflow/internal/api/dto"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/service"
	"github.com/jurisflow/jurisflow/internal/types"
)

type MatterHandler struct {
	service service.MatterService
	log     *logger.Logger
}

func NewMatterHandler(service service.MatterService, log *logger.Logger) *MatterHandler {
	return &MatterHandler{
		service: service,
		log:     log,
	}
}

func (h *MatterHandler) CreateMatter(c *gin.Context) {
	var req dto.CreateMatterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateMatter(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *MatterHandler) GetMatter(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetMatter(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MatterHandler) ListMatters(c *gin.Context) {
	var filter types.MatterFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListMatters(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MatterHandler) UpdateMatter(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateMatterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateMatter(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MatterHandler) DeleteMatter(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteMatter(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
