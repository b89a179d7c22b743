package types

import (
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/samber/lo"
)

// MaxDocumentSizeBytes caps uploads at 10 MiB
const MaxDocumentSizeBytes = 10 * 1024 * 1024

// AllowedDocumentMIMETypes is the upload allow-list. Detection is done
// on the file content, not the client supplied content type.
var AllowedDocumentMIMETypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"image/jpeg",
	"image/png",
	"text/plain",
}

// ValidateDocumentUpload checks the size cap and the MIME allow-list
func ValidateDocumentUpload(sizeBytes int64, mimeType string) error {
	if sizeBytes <= 0 {
		return ierr.NewError("document is empty").
			WithHint("Document is empty").
			Mark(ierr.ErrValidation)
	}
	if sizeBytes > MaxDocumentSizeBytes {
		return ierr.NewError("document exceeds maximum size").
			WithHint("Document exceeds the 10 MiB size limit").
			WithReportableDetails(map[string]any{
				"max_size_bytes": MaxDocumentSizeBytes,
				"size_bytes":     sizeBytes,
			}).
			Mark(ierr.ErrValidation)
	}
	if !lo.Contains(AllowedDocumentMIMETypes, mimeType) {
		return ierr.NewError("unsupported document type").
			WithHint("Unsupported document type").
			WithReportableDetails(map[string]any{
				"mime_type": mimeType,
				"allowed":   AllowedDocumentMIMETypes,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DocumentFilter represents filters for document queries
type DocumentFilter struct {
	*QueryFilter
	*TimeRangeFilter

	DocumentIDs []string `json:"document_ids,omitempty" form:"document_ids"`
	MatterID    string   `json:"matter_id,omitempty" form:"matter_id"`
	ClientID    string   `json:"client_id,omitempty" form:"client_id"`
	Search      string   `json:"search,omitempty" form:"search"`
}

// NewDocumentFilter creates a new document filter with default options
func NewDocumentFilter() *DocumentFilter {
	return &DocumentFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitDocumentFilter creates a new document filter without pagination
func NewNoLimitDocumentFilter() *DocumentFilter {
	return &DocumentFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

// Validate validates the document filter
func (f DocumentFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.TimeRangeFilter != nil {
		if err := f.TimeRangeFilter.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *DocumentFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *DocumentFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetStatus implements BaseFilter interface
func (f *DocumentFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// GetSort implements BaseFilter interface
func (f *DocumentFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *DocumentFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// IsUnlimited returns true if the filter has no pagination limits
func (f *DocumentFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
