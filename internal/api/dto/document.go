package dto

import (
	"github.com/jurisflow/jurisflow/internal/domain/document"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
)

// UploadDocumentRequest carries the raw file bytes; the MIME type is
// detected from the content, never taken from the client.
type UploadDocumentRequest struct {
	MatterID string `json:"matter_id,omitempty"`
	ClientID string `json:"client_id,omitempty"`
	FileName string `json:"file_name" binding:"required"`
	Data     []byte `json:"-"`
}

func (r *UploadDocumentRequest) Validate() error {
	if r.FileName == "" {
		return ierr.NewError("file_name is required").
			WithHint("File name is required").
			Mark(ierr.ErrValidation)
	}
	if r.MatterID == "" && r.ClientID == "" {
		return ierr.NewError("document must be attached to a matter or a client").
			WithHint("Provide a matter_id or a client_id").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type DocumentResponse struct {
	*document.Document
	// DownloadURL is a short lived presigned link, only set when the
	// document is fetched individually
	DownloadURL string `json:"download_url,omitempty"`
}

type ListDocumentsResponse struct {
	Items      []*DocumentResponse `json:"items"`
	Pagination PaginationResponse  `json:"pagination"`
}

func NewDocumentResponse(d *document.Document) *DocumentResponse {
	return &DocumentResponse{Document: d}
}
