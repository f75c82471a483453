package simplelibrary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repository Repository
	blobStore  BlobStore
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the metadata repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the blob storage backend for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobStore = store
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blobStore == nil {
		return nil, fmt.Errorf("blob store is required")
	}

	return s, nil
}

func (s *service) GetStructure(ctx context.Context) ([]*TreeNode, error) {
	records, err := s.repository.ListAll(ctx)
	if err != nil {
		return nil, &RecordError{Path: RootToken, Op: "list", Err: err}
	}
	return BuildTree(records, RootToken), nil
}

func (s *service) CreateFolder(ctx context.Context, req CreateFolderRequest) (*ContentRecord, error) {
	canonical := NormalizePath(req.Path)
	parent, name := SplitPath(canonical)
	if parent == "" || name == "" {
		// Bare ROOT: there is no folder name to create.
		return nil, &RecordError{Path: req.Path, Op: "create_folder", Err: ErrInvalidName}
	}

	record := &ContentRecord{
		ID:         uuid.New(),
		ParentPath: parent,
		Name:       name,
		Kind:       KindFolder,
		Path:       canonical,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repository.Insert(ctx, record); err != nil {
		return nil, &RecordError{Path: canonical, Op: "create_folder", Err: err}
	}

	return record, nil
}

func (s *service) UploadFile(ctx context.Context, req UploadFileRequest) (*ContentRecord, error) {
	// The file name must stay a single segment: a separator would make
	// the stored path unresolvable (lookups split at the last separator)
	// and dot segments would let the blob key address outside the store.
	if !ValidLeafName(req.FileName) {
		return nil, &RecordError{Path: req.ParentPath, Op: "upload", Err: ErrInvalidName}
	}
	if req.Reader == nil {
		return nil, &RecordError{Path: req.ParentPath, Op: "upload", Err: ErrInvalidPath}
	}

	parent := NormalizePath(req.ParentPath)
	blobRef := newBlobKey(req.FileName)

	// Phase one: commit the blob. A failed upload leaves nothing behind
	// that metadata could reference.
	if err := s.blobStore.Upload(ctx, blobRef, req.Reader); err != nil {
		return nil, &StorageError{Key: blobRef, Op: "upload", Err: err}
	}

	record := &ContentRecord{
		ID:         uuid.New(),
		ParentPath: parent,
		Name:       req.FileName,
		Kind:       KindFile,
		Path:       JoinPath(parent, req.FileName),
		BlobRef:    blobRef,
		CreatedAt:  time.Now().UTC(),
	}

	// Phase two: record metadata. On failure the blob is already durable
	// and would be orphaned, so compensate with a best-effort delete; the
	// insert failure is surfaced either way.
	if err := s.repository.Insert(ctx, record); err != nil {
		if delErr := s.blobStore.Delete(ctx, blobRef); delErr != nil {
			slog.Warn("Failed to reclaim orphaned blob after metadata failure",
				"blob_ref", blobRef, "error", delErr)
		}
		return nil, &RecordError{Path: record.Path, Op: "upload", Err: err}
	}

	return record, nil
}

func (s *service) Delete(ctx context.Context, req DeleteRequest) error {
	record, err := s.ResolveRecord(ctx, req.Path)
	if err != nil {
		return err
	}

	// Best-effort blob reclamation: a missing or failing blob delete is
	// logged and never blocks the metadata delete.
	if record.IsFile() && record.BlobRef != "" {
		if err := s.blobStore.Delete(ctx, record.BlobRef); err != nil {
			slog.Warn("Blob delete failed, continuing with metadata delete",
				"path", record.Path, "blob_ref", record.BlobRef, "error", err)
		}
	}

	if err := s.repository.Delete(ctx, record.ID); err != nil {
		return &RecordError{Path: record.Path, Op: "delete", Err: err}
	}

	return nil
}

func (s *service) StreamFile(ctx context.Context, rawPath string) (io.ReadCloser, *ContentRecord, error) {
	record, err := s.ResolveRecord(ctx, rawPath)
	if err != nil {
		return nil, nil, err
	}
	if !record.IsFile() || record.BlobRef == "" {
		return nil, nil, &RecordError{Path: record.Path, Op: "stream", Err: ErrRecordNotFound}
	}

	reader, err := s.blobStore.Download(ctx, record.BlobRef)
	if err != nil {
		return nil, nil, &StorageError{Key: record.BlobRef, Op: "download", Err: err}
	}

	return reader, record, nil
}

// ResolveRecord normalizes the path, splits it into (parent, leaf) and
// looks the pair up in the index. When the lookup misses and the parent
// carries the ROOT/ prefix, it retries exactly once with the prefix
// stripped, covering legacy records stored before canonicalization was
// enforced. Stream and Delete share this resolution so anything the tree
// listing joins from parent and leaf is reachable by the same lookup.
func (s *service) ResolveRecord(ctx context.Context, rawPath string) (*ContentRecord, error) {
	canonical := NormalizePath(rawPath)
	parent, leaf := SplitPath(canonical)
	if parent == "" || leaf == "" {
		return nil, &RecordError{Path: rawPath, Op: "resolve", Err: ErrRecordNotFound}
	}

	record, err := s.repository.FindByParentAndName(ctx, parent, leaf)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, ErrRecordNotFound) {
		return nil, &RecordError{Path: canonical, Op: "resolve", Err: err}
	}

	if fallback, ok := legacyParent(parent); ok {
		record, err = s.repository.FindByParentAndName(ctx, fallback, leaf)
		if err == nil {
			slog.Debug("Resolved record via legacy fallback path",
				"path", canonical, "fallback_parent", fallback)
			return record, nil
		}
		if !errors.Is(err, ErrRecordNotFound) {
			return nil, &RecordError{Path: canonical, Op: "resolve", Err: err}
		}
	}

	return nil, &RecordError{Path: canonical, Op: "resolve", Err: ErrRecordNotFound}
}

// newBlobKey generates a fresh storage key for an uploaded file. Keys are
// unique per write (never reused, even for identical content) and embed
// the file name for operability when inspecting the backing store.
func newBlobKey(fileName string) string {
	return fmt.Sprintf("L/%s/%s", uuid.New(), fileName)
}
