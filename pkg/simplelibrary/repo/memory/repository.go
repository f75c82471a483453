package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-library/pkg/simplelibrary"
)

// Repository implements simplelibrary.Repository using in-memory storage
type Repository struct {
	mu       sync.RWMutex
	records  map[uuid.UUID]*simplelibrary.ContentRecord
	siblings map[string]uuid.UUID // "parentPath/name" -> record id
}

// New creates a new in-memory repository
func New() simplelibrary.Repository {
	return &Repository{
		records:  make(map[uuid.UUID]*simplelibrary.ContentRecord),
		siblings: make(map[string]uuid.UUID),
	}
}

// siblingKey is the composite uniqueness key for (parentPath, name).
func siblingKey(parentPath, name string) string {
	return parentPath + "\x00" + name
}

func (r *Repository) Insert(ctx context.Context, record *simplelibrary.ContentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := siblingKey(record.ParentPath, record.Name)
	if _, exists := r.siblings[key]; exists {
		return simplelibrary.ErrDuplicateName
	}

	// Create a copy to avoid external modifications
	recordCopy := *record
	if recordCopy.ID == uuid.Nil {
		recordCopy.ID = uuid.New()
	}
	if recordCopy.CreatedAt.IsZero() {
		recordCopy.CreatedAt = time.Now().UTC()
	}

	r.records[recordCopy.ID] = &recordCopy
	r.siblings[key] = recordCopy.ID

	// Report the assigned identity back to the caller.
	record.ID = recordCopy.ID
	record.CreatedAt = recordCopy.CreatedAt
	return nil
}

func (r *Repository) FindByParentAndName(ctx context.Context, parentPath, name string) (*simplelibrary.ContentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.siblings[siblingKey(parentPath, name)]
	if !exists {
		return nil, simplelibrary.ErrRecordNotFound
	}

	// Return a copy to prevent external modifications
	recordCopy := *r.records[id]
	return &recordCopy, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[id]
	if !exists {
		return simplelibrary.ErrRecordNotFound
	}

	delete(r.siblings, siblingKey(record.ParentPath, record.Name))
	delete(r.records, id)
	return nil
}

func (r *Repository) ListAll(ctx context.Context) ([]*simplelibrary.ContentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*simplelibrary.ContentRecord, 0, len(r.records))
	for _, record := range r.records {
		recordCopy := *record
		result = append(result, &recordCopy)
	}
	return result, nil
}
