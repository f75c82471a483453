// Package simplelibrary provides a virtual folder/file library backed by a
// flat metadata index and a separate blob store.
//
// The hierarchy is not stored as a tree: every folder and file is a flat
// ContentRecord addressed by (ParentPath, Name), and the tree shown to
// clients is rebuilt from a full index scan on demand. Client-supplied
// paths are canonicalized under the ROOT token before any lookup or write,
// and lookups for stream/delete apply a single legacy fallback (retrying
// with the ROOT/ prefix stripped) so records written before
// canonicalization was enforced stay reachable.
//
// File content lives in a BlobStore (memory, filesystem or S3), referenced
// from metadata by an opaque blob key. Upload is a two-phase write: the
// blob commits first, then the metadata record; on metadata failure the
// orphaned blob is deleted best-effort.
package simplelibrary
