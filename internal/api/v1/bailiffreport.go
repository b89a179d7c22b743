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

type BailiffReportHandler struct {
	service service.BailiffReportService
	log     *logger.Logger
}

func NewBailiffReportHandler(service service.BailiffReportService, log *logger.Logger) *BailiffReportHandler {
	return &BailiffReportHandler{
		service: service,
		log:     log,
	}
}

func (h *BailiffReportHandler) CreateReport(c *gin.Context) {
	var req dto.CreateBailiffReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateReport(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *BailiffReportHandler) GetReport(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetReport(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BailiffReportHandler) ListReports(c *gin.Context) {
	var filter types.BailiffReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListReports(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BailiffReportHandler) UpdateReport(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateBailiffReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateReport(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BailiffReportHandler) DeleteReport(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteReport(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
