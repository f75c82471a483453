package simplelibrary

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for the flat metadata index.
type Repository interface {
	// Insert persists a new record, assigning ID and CreatedAt when unset.
	// A sibling with the same (ParentPath, Name) causes ErrDuplicateName;
	// the uniqueness constraint is the sole arbiter of concurrent writes.
	Insert(ctx context.Context, record *ContentRecord) error

	// FindByParentAndName looks up a record by its composite sibling key.
	// Returns ErrRecordNotFound when absent.
	FindByParentAndName(ctx context.Context, parentPath, name string) (*ContentRecord, error)

	// Delete removes a record by id. Callers resolve first, so a missing
	// id is reported as ErrRecordNotFound.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListAll returns a snapshot of every record for tree reconstruction.
	ListAll(ctx context.Context) ([]*ContentRecord, error)
}

// BlobStore defines the interface for chunked binary storage backends.
type BlobStore interface {
	// Upload consumes the reader and durably stores it under key.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// Download returns a stream of the blob's content. The caller owns the
	// reader and may close it early without corrupting store state.
	// Returns ErrBlobNotFound when the key is absent.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the blob. Backends report a missing key as
	// ErrBlobNotFound where they can detect one; callers treat either
	// outcome as best-effort success.
	Delete(ctx context.Context, key string) error

	// GetBlobMeta retrieves size and timing metadata for a stored blob.
	GetBlobMeta(ctx context.Context, key string) (*BlobMeta, error)
}

// BlobMeta contains metadata about a blob in storage
type BlobMeta struct {
	Key       string
	Size      int64
	UpdatedAt time.Time
}
