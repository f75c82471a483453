package simplelibrary

import (
	"context"
	"io"
)

// Service orchestrates the metadata index and the blob store for the five
// library operations. Each call is request-scoped; there is no
// cross-request state beyond the two stores themselves.
type Service interface {
	// GetStructure returns the full hierarchy rebuilt from an index
	// snapshot.
	GetStructure(ctx context.Context) ([]*TreeNode, error)

	// CreateFolder creates a folder record at the normalized path.
	CreateFolder(ctx context.Context, req CreateFolderRequest) (*ContentRecord, error)

	// UploadFile streams content into the blob store and then records the
	// file in the index. The blob commits before the metadata write; on
	// metadata failure the orphaned blob is deleted best-effort and the
	// failure is still returned.
	UploadFile(ctx context.Context, req UploadFileRequest) (*ContentRecord, error)

	// Delete removes the record at the path. For files the blob delete is
	// best-effort and never blocks the metadata delete. Folder deletion
	// does not cascade to descendants.
	Delete(ctx context.Context, req DeleteRequest) error

	// StreamFile resolves a path to a file record and opens its blob for
	// reading. The caller pipes the reader straight through and closes it.
	StreamFile(ctx context.Context, rawPath string) (io.ReadCloser, *ContentRecord, error)

	// ResolveRecord applies the canonical normalize-plus-fallback lookup
	// shared by Delete and StreamFile.
	ResolveRecord(ctx context.Context, rawPath string) (*ContentRecord, error)
}
