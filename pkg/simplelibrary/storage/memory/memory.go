package memory

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/tendant/simple-library/pkg/simplelibrary"
)

// Backend is an in-memory implementation of the simplelibrary.BlobStore interface
type Backend struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	updated map[string]time.Time
}

// New creates a new in-memory storage backend
func New() simplelibrary.BlobStore {
	return &Backend{
		blobs:   make(map[string][]byte),
		updated: make(map[string]time.Time),
	}
}

// Upload consumes the reader and stores the bytes under key
func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.blobs[key] = data
	b.updated[key] = time.Now().UTC()
	return nil
}

// Download returns a reader over a copy of the stored bytes, so early
// close or partial reads never touch store state
func (b *Backend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.blobs[key]
	if !exists {
		return nil, simplelibrary.ErrBlobNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the blob
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.blobs[key]; !exists {
		return simplelibrary.ErrBlobNotFound
	}

	delete(b.blobs, key)
	delete(b.updated, key)
	return nil
}

// GetBlobMeta retrieves metadata for a blob in memory
func (b *Backend) GetBlobMeta(ctx context.Context, key string) (*simplelibrary.BlobMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.blobs[key]
	if !exists {
		return nil, simplelibrary.ErrBlobNotFound
	}

	return &simplelibrary.BlobMeta{
		Key:       key,
		Size:      int64(len(data)),
		UpdatedAt: b.updated[key],
	}, nil
}
