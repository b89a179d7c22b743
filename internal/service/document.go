package service

import (
	"context"

	"github.com/h2non/filetype"
	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/document"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/s3"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

type DocumentService interface {
	UploadDocument(ctx context.Context, req *dto.UploadDocumentRequest) (*dto.DocumentResponse, error)
	GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error)
	ListDocuments(ctx context.Context, filter *types.DocumentFilter) (*dto.ListDocumentsResponse, error)
	DeleteDocument(ctx context.Context, id string) error
}

type documentService struct {
	ServiceParams
}

func NewDocumentService(params ServiceParams) DocumentService {
	return &documentService{ServiceParams: params}
}

func (s *documentService) UploadDocument(ctx context.Context, req *dto.UploadDocumentRequest) (*dto.DocumentResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionUploadDocuments); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.Limiter.Allow(ctx, types.GetUserID(ctx), types.RateLimitCategoryUpload); err != nil {
		return nil, err
	}

	if s.S3 == nil {
		return nil, ierr.NewError("document storage is not configured").
			WithHint("Document storage is not configured").
			Mark(ierr.ErrInvalidOperation)
	}

	mimeType := detectMIMEType(req.Data)
	if err := types.ValidateDocumentUpload(int64(len(req.Data)), mimeType); err != nil {
		return nil, err
	}
	if maxSize := s.Config.Document.MaxSizeBytes; maxSize > 0 && int64(len(req.Data)) > maxSize {
		return nil, ierr.NewError("document exceeds maximum size").
			WithHint("Document exceeds the configured size limit").
			WithReportableDetails(map[string]any{
				"max_size_bytes": maxSize,
			}).
			Mark(ierr.ErrValidation)
	}

	if req.MatterID != "" {
		if _, err := s.MatterRepo.GetByID(ctx, req.MatterID); err != nil {
			return nil, err
		}
	}
	if req.ClientID != "" {
		if _, err := s.ClientRepo.GetByID(ctx, req.ClientID); err != nil {
			return nil, err
		}
	}

	doc := document.NewDocument(ctx, req.FileName, mimeType, int64(len(req.Data)))
	doc.MatterID = req.MatterID
	doc.ClientID = req.ClientID
	doc.StorageKey = s3.ObjectKey(doc.TenantID, doc.ID, req.FileName)

	if err := s.S3.Upload(ctx, doc.StorageKey, req.Data, mimeType); err != nil {
		return nil, err
	}

	if err := s.DocumentRepo.Create(ctx, doc); err != nil {
		// Orphaned object, remove it on a best effort basis
		if delErr := s.S3.Delete(ctx, doc.StorageKey); delErr != nil {
			s.Logger.Errorw("failed to clean up stored object after create failure",
				"storage_key", doc.StorageKey,
				"error", delErr)
		}
		return nil, err
	}

	return dto.NewDocumentResponse(doc), nil
}

// detectMIMEType identifies the content from its magic bytes. Plain
// text has no signature, so unmatched content that is valid UTF-8 is
// treated as text/plain.
func detectMIMEType(data []byte) string {
	kind, err := filetype.Match(data)
	if err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if isPlainText(data) {
		return "text/plain"
	}
	return "application/octet-stream"
}

func isPlainText(data []byte) bool {
	sample := data
	if len(sample) > 512 {
		sample = sample[:512]
	}
	for _, b := range sample {
		if b == 0 {
			return false
		}
	}
	return len(sample) > 0
}

func (s *documentService) GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewDocuments); err != nil {
		return nil, err
	}

	doc, err := s.DocumentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewDocumentResponse(doc)
	if s.S3 != nil {
		url, err := s.S3.GetPresignedURL(ctx, doc.StorageKey)
		if err != nil {
			s.Logger.Errorw("failed to presign document url",
				"document_id", doc.ID,
				"error", err)
		} else {
			resp.DownloadURL = url
		}
	}
	return resp, nil
}

func (s *documentService) ListDocuments(ctx context.Context, filter *types.DocumentFilter) (*dto.ListDocumentsResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewDocuments); err != nil {
		return nil, err
	}

	if filter == nil {
		filter = types.NewDocumentFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if filter.Search != "" {
		if err := s.Limiter.Allow(ctx, types.GetUserID(ctx), types.RateLimitCategorySearch); err != nil {
			return nil, err
		}
	}

	documents, err := s.DocumentRepo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.DocumentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListDocumentsResponse{
		Items: lo.Map(documents, func(d *document.Document, _ int) *dto.DocumentResponse {
			return dto.NewDocumentResponse(d)
		}),
		Pagination: dto.NewPaginationResponse(int(count), filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionDeleteDocuments); err != nil {
		return err
	}

	doc, err := s.DocumentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.DocumentRepo.Delete(ctx, id); err != nil {
		return err
	}

	// The row is the source of truth; object removal is best effort
	if s.S3 != nil {
		if err := s.S3.Delete(ctx, doc.StorageKey); err != nil {
			s.Logger.Errorw("failed to delete stored object",
				"document_id", doc.ID,
				"storage_key", doc.StorageKey,
				"error", err)
		}
	}
	return nil
}
