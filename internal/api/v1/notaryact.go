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

type NotaryActHandler struct {
	service service.NotaryActService
	log     *logger.Logger
}

func NewNotaryActHandler(service service.NotaryActService, log *logger.Logger) *NotaryActHandler {
	return &NotaryActHandler{
		service: service,
		log:     log,
	}
}

func (h *NotaryActHandler) CreateAct(c *gin.Context) {
	var req dto.CreateNotaryActRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateAct(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *NotaryActHandler) GetAct(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetAct(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *NotaryActHandler) ListActs(c *gin.Context) {
	var filter types.NotaryActFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListActs(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *NotaryActHandler) UpdateAct(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateNotaryActRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateAct(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *NotaryActHandler) DeleteAct(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteAct(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
