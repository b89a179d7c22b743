package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jurisflow/jurisflow/internal/api/dto"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/service"
	"github.com/jurisflow/jurisflow/internal/types"
)

type DocumentHandler struct {
	service service.DocumentService
	log     *logger.Logger
}

func NewDocumentHandler(service service.DocumentService, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		log:     log,
	}
}

func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("A file part named 'file' is required").
			Mark(ierr.ErrValidation))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Failed to read the uploaded file").
			Mark(ierr.ErrValidation))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Failed to read the uploaded file").
			Mark(ierr.ErrValidation))
		return
	}

	req := dto.UploadDocumentRequest{
		MatterID: c.PostForm("matter_id"),
		ClientID: c.PostForm("client_id"),
		FileName: fileHeader.Filename,
		Data:     data,
	}

	resp, err := h.service.UploadDocument(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetDocument(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	var filter types.DocumentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListDocuments(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteDocument(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
