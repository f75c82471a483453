package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-library/pkg/simplelibrary"
)

// maxUploadMemory bounds how much of a multipart body is held in memory
// before spilling to temp files.
const maxUploadMemory = 32 << 20

// LibraryHandler exposes the library operations over HTTP
type LibraryHandler struct {
	service simplelibrary.Service
	admin   AdminCheck
}

func NewLibraryHandler(service simplelibrary.Service, admin AdminCheck) *LibraryHandler {
	return &LibraryHandler{
		service: service,
		admin:   admin,
	}
}

// Routes returns the router for library endpoints. Structure and stream
// are public; the mutating operations sit behind the admin gate.
func (h *LibraryHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/structure", h.GetStructure)
	r.Get("/stream/*", h.StreamFile)
	r.Group(func(r chi.Router) {
		r.Use(RequireAdmin(h.admin))
		r.Post("/upload", h.UploadFile)
		r.Post("/create-folder", h.CreateFolder)
		r.Delete("/delete", h.DeleteItem)
	})
	return r
}

// PathRequest carries a raw client path for create-folder and delete
type PathRequest struct {
	Path string `json:"path"`
}

// UploadResponse is returned after a successful upload
type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	BlobRef string `json:"blob_ref"`
}

// SuccessResponse is returned by create-folder and delete
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// GetStructure returns the full folder/file hierarchy
func (h *LibraryHandler) GetStructure(w http.ResponseWriter, r *http.Request) {
	tree, err := h.service.GetStructure(r.Context())
	if err != nil {
		slog.Error("Failed to retrieve structure", "error", err)
		writeError(w, r, err)
		return
	}

	// Empty library serializes as [] rather than null.
	if tree == nil {
		tree = []*simplelibrary.TreeNode{}
	}
	render.JSON(w, r, tree)
}

// UploadFile accepts a multipart file part plus a "path" field naming the
// parent folder, and streams it into the library
func (h *LibraryHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Missing file part", "error", err)
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	record, err := h.service.UploadFile(r.Context(), simplelibrary.UploadFileRequest{
		ParentPath: r.FormValue("path"),
		FileName:   header.Filename,
		Reader:     file,
	})
	if err != nil {
		slog.Error("Failed to upload file", "file_name", header.Filename, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("File uploaded", "path", record.Path, "blob_ref", record.BlobRef)
	render.JSON(w, r, UploadResponse{
		Success: true,
		Message: "File uploaded successfully",
		BlobRef: record.BlobRef,
	})
}

// CreateFolder creates a folder at the supplied raw path
func (h *LibraryHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req PathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		http.Error(w, "Path required", http.StatusBadRequest)
		return
	}

	record, err := h.service.CreateFolder(r.Context(), simplelibrary.CreateFolderRequest{Path: req.Path})
	if err != nil {
		slog.Error("Failed to create folder", "path", req.Path, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Folder created", "path", record.Path)
	render.JSON(w, r, SuccessResponse{Success: true, Message: "Folder created"})
}

// DeleteItem deletes the folder or file at the supplied raw path
func (h *LibraryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	var req PathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		http.Error(w, "Path required", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), simplelibrary.DeleteRequest{Path: req.Path}); err != nil {
		slog.Error("Failed to delete item", "path", req.Path, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Item deleted", "path", req.Path)
	render.JSON(w, r, SuccessResponse{Success: true, Message: "Deleted successfully"})
}

// StreamFile resolves the wildcard path and pipes the blob straight to
// the response
func (h *LibraryHandler) StreamFile(w http.ResponseWriter, r *http.Request) {
	virtualPath := chi.URLParam(r, "*")

	reader, record, err := h.service.StreamFile(r.Context(), virtualPath)
	if err != nil {
		slog.Error("Failed to stream file", "path", virtualPath, "error", err)
		writeError(w, r, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", simplelibrary.ContentTypeForPath(record.Path))
	w.Header().Set("Content-Disposition", "inline")

	// Direct passthrough; a copy error here usually means the client went
	// away mid-stream, and the status line is already written.
	if _, err := io.Copy(w, reader); err != nil {
		slog.Warn("Stream interrupted", "path", record.Path, "error", err)
	}
}

// writeError maps the library error taxonomy onto HTTP status codes
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, simplelibrary.ErrRecordNotFound),
		errors.Is(err, simplelibrary.ErrBlobNotFound):
		status = http.StatusNotFound
		message = "Not found"
	case errors.Is(err, simplelibrary.ErrDuplicateName):
		status = http.StatusBadRequest
		message = "Already exists"
	case errors.Is(err, simplelibrary.ErrInvalidName):
		status = http.StatusBadRequest
		message = "Invalid name"
	case errors.Is(err, simplelibrary.ErrInvalidPath):
		status = http.StatusBadRequest
		message = "Invalid path"
	}

	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": message})
}
