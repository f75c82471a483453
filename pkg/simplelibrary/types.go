package simplelibrary

import (
	"time"

	"github.com/google/uuid"
)

// ContentKind is the domain type for record kinds.
type ContentKind string

// Record kind constants (typed).
const (
	KindFolder ContentKind = "folder"
	KindFile   ContentKind = "file"
)

// ContentRecord is the sole persisted entity: one flat row per folder or
// file, addressed by (ParentPath, Name). Records are never mutated in
// place; there is no rename or move operation.
type ContentRecord struct {
	ID         uuid.UUID   `json:"id"`
	ParentPath string      `json:"parent_path"`
	Name       string      `json:"name"`
	Kind       ContentKind `json:"kind"`
	// Path is the full canonical address (ParentPath + "/" + Name). It is
	// redundant for folders but stored anyway and kept consistent.
	Path string `json:"path"`
	// BlobRef is set only for file records and is an opaque key into the
	// blob store.
	BlobRef   string    `json:"blob_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsFile reports whether the record is a file with stored content.
func (r *ContentRecord) IsFile() bool {
	return r.Kind == KindFile
}

// TreeNode is one node of the reconstructed hierarchy, in the shape the
// structure endpoint serializes.
type TreeNode struct {
	Name     string      `json:"name"`
	Type     ContentKind `json:"type"`
	Path     string      `json:"path"`
	BlobRef  string      `json:"blob_ref,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}
