package simplelibrary

import "io"

// CreateFolderRequest contains parameters for creating a folder. Path is
// the raw full path including the new folder's name; it is normalized
// before any write.
type CreateFolderRequest struct {
	Path string
}

// UploadFileRequest contains parameters for uploading a file. ParentPath
// is the raw containing-folder path; FileName the leaf name; Reader the
// content stream, consumed exactly once.
type UploadFileRequest struct {
	ParentPath string
	FileName   string
	Reader     io.Reader
}

// DeleteRequest contains parameters for deleting a folder or file by its
// raw full path.
type DeleteRequest struct {
	Path string
}
