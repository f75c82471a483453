package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-library/pkg/simplelibrary"
	"github.com/tendant/simple-library/pkg/simplelibrary/api"
	repomemory "github.com/tendant/simple-library/pkg/simplelibrary/repo/memory"
	storagememory "github.com/tendant/simple-library/pkg/simplelibrary/storage/memory"
)

const testSecret = "test-secret"

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	service, err := simplelibrary.New(
		simplelibrary.WithRepository(repomemory.New()),
		simplelibrary.WithBlobStore(storagememory.New()),
	)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Mount("/api/library", api.NewLibraryHandler(service, api.SharedSecretCheck(testSecret)).Routes())
	r.Mount("/api/auth", api.NewAuthHandler(testSecret).Routes())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body interface{}, secret string) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(method, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(api.AdminSecretHeader, secret)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func uploadFile(t *testing.T, url, parentPath, fileName, content, secret string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("path", parentPath))
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, url+"/api/library/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if secret != "" {
		req.Header.Set(api.AdminSecretHeader, secret)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestGetStructureEmpty(t *testing.T) {
	server := setupServer(t)

	resp, err := http.Get(server.URL + "/api/library/structure")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(body)))
}

func TestCreateFolderAndStructure(t *testing.T) {
	server := setupServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/library/create-folder",
		api.PathRequest{Path: "Class10"}, testSecret)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created api.SuccessResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.True(t, created.Success)

	resp2, err := http.Get(server.URL + "/api/library/structure")
	require.NoError(t, err)
	defer resp2.Body.Close()

	var tree []*simplelibrary.TreeNode
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&tree))
	require.Len(t, tree, 1)
	assert.Equal(t, "Class10", tree[0].Name)
	assert.Equal(t, simplelibrary.KindFolder, tree[0].Type)
}

func TestCreateFolderDuplicate(t *testing.T) {
	server := setupServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/library/create-folder",
		api.PathRequest{Path: "Class10"}, testSecret)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/library/create-folder",
		api.PathRequest{Path: "Class10"}, testSecret)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, "Already exists", errBody["error"])
}

func TestCreateFolderMissingPath(t *testing.T) {
	server := setupServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/library/create-folder",
		api.PathRequest{}, testSecret)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadAndStream(t *testing.T) {
	server := setupServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/library/create-folder",
		api.PathRequest{Path: "Class10"}, testSecret)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = uploadFile(t, server.URL, "ROOT/Class10", "book.pdf", "pdf bytes", testSecret)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var uploaded api.UploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploaded))
	assert.True(t, uploaded.Success)
	assert.NotEmpty(t, uploaded.BlobRef)

	resp2, err := http.Get(server.URL + "/api/library/stream/ROOT/Class10/book.pdf")
	require.NoError(t, err)
	defer resp2.Body.Close()

	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, "application/pdf", resp2.Header.Get("Content-Type"))
	assert.Equal(t, "inline", resp2.Header.Get("Content-Disposition"))

	data, err := io.ReadAll(resp2.Body)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))
}

func TestStreamWithoutRootPrefix(t *testing.T) {
	server := setupServer(t)

	resp := uploadFile(t, server.URL, "ROOT", "notes.txt", "hello", testSecret)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The client may omit the ROOT prefix; the path is canonicalized.
	resp2, err := http.Get(server.URL + "/api/library/stream/notes.txt")
	require.NoError(t, err)
	defer resp2.Body.Close()

	require.Equal(t, http.StatusOK, resp2.StatusCode)
	data, err := io.ReadAll(resp2.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestStreamNotFound(t *testing.T) {
	server := setupServer(t)

	resp, err := http.Get(server.URL + "/api/library/stream/ROOT/missing.pdf")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploadMissingFilePart(t *testing.T) {
	server := setupServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("path", "ROOT"))
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/library/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(api.AdminSecretHeader, testSecret)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteFile(t *testing.T) {
	server := setupServer(t)

	resp := uploadFile(t, server.URL, "ROOT", "notes.txt", "hello", testSecret)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/library/delete",
		api.PathRequest{Path: "ROOT/notes.txt"}, testSecret)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(server.URL + "/api/library/stream/ROOT/notes.txt")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestDeleteMissing(t *testing.T) {
	server := setupServer(t)

	resp := doJSON(t, http.MethodDelete, server.URL+"/api/library/delete",
		api.PathRequest{Path: "ROOT/missing.txt"}, testSecret)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminGate(t *testing.T) {
	server := setupServer(t)

	tests := []struct {
		name   string
		secret string
		want   int
	}{
		{"no secret", "", http.StatusUnauthorized},
		{"wrong secret", "wrong", http.StatusUnauthorized},
		{"correct secret", testSecret, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, server.URL+"/api/library/create-folder",
				api.PathRequest{Path: "Gate-" + tt.name}, tt.secret)
			resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestPublicEndpointsSkipGate(t *testing.T) {
	server := setupServer(t)

	// Structure and stream take no credentials at all.
	resp, err := http.Get(server.URL + "/api/library/structure")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthVerify(t *testing.T) {
	server := setupServer(t)

	tests := []struct {
		name   string
		secret string
		want   int
	}{
		{"valid secret", testSecret, http.StatusOK},
		{"invalid secret", "wrong", http.StatusUnauthorized},
		{"empty secret", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, server.URL+"/api/auth/verify",
				api.VerifyRequest{Secret: tt.secret}, "")
			defer resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestSharedSecretCheckEmptyAdmitsNothing(t *testing.T) {
	check := api.SharedSecretCheck("")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.False(t, check(req))

	req.Header.Set(api.AdminSecretHeader, "")
	assert.False(t, check(req))
}
