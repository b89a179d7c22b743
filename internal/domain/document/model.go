package document

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/types"
)

// Document is file metadata; the bytes live in object storage under
// StorageKey.
type Document struct {
	ID         string `db:"id" json:"id"`
	MatterID   string `db:"matter_id" json:"matter_id"`
	ClientID   string `db:"client_id" json:"client_id"`
	FileName   string `db:"file_name" json:"file_name"`
	StorageKey string `db:"storage_key" json:"storage_key"`
	MimeType   string `db:"mime_type" json:"mime_type"`
	SizeBytes  int64  `db:"size_bytes" json:"size_bytes"`
	types.BaseModel
}

func NewDocument(ctx context.Context, fileName, mimeType string, sizeBytes int64) *Document {
	return &Document{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT),
		FileName:  fileName,
		MimeType:  mimeType,
		SizeBytes: sizeBytes,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}
