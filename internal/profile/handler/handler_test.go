package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/profilehub/profilehub/internal/media"
	"github.com/profilehub/profilehub/internal/profile"
	"github.com/profilehub/profilehub/internal/profile/repository"
	"github.com/profilehub/profilehub/internal/profile/service"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	h := NewHandler(service.NewService(repository.NewMemoryRepo()), nil)
	h.Register(g.Group("/api"))
	return g
}

func createProfile(t *testing.T, g *gin.Engine, name string) profile.UserProfile {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":"%s@example.com"}`, name, name)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/profiles", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var p profile.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestRoot(t *testing.T) {
	g := newTestRouter()
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "User Profile API")
}

func TestCreateAndGetProfile(t *testing.T) {
	g := newTestRouter()
	p := createProfile(t, g, "alice")
	require.NotEmpty(t, p.ID)
	require.Equal(t, p.CreatedAt, p.UpdatedAt)

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profiles/"+p.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var got profile.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "alice", got.Name)
}

func TestCreateProfileValidation(t *testing.T) {
	g := newTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/profiles", strings.NewReader(`{"name":"no-email"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "detail")
}

func TestGetProfileNotFound(t *testing.T) {
	g := newTestRouter()
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profiles/never-issued", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Profile not found", resp["detail"])
}

func TestListProfilesPagination(t *testing.T) {
	g := newTestRouter()
	for i := 0; i < 12; i++ {
		createProfile(t, g, fmt.Sprintf("user%02d", i))
	}

	list := func(query string) []profile.UserProfile {
		w := httptest.NewRecorder()
		g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profiles"+query, nil))
		require.Equal(t, http.StatusOK, w.Code)
		var out []profile.UserProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	// default limit is 10
	require.Len(t, list(""), 10)

	page1 := list("?skip=0&limit=5")
	page2 := list("?skip=5&limit=5")
	require.Len(t, page1, 5)
	require.Len(t, page2, 5)
	seen := map[string]bool{}
	for _, p := range append(page1, page2...) {
		require.False(t, seen[p.ID])
		seen[p.ID] = true
	}
	for i := 0; i < len(page1)-1; i++ {
		require.False(t, page1[i].CreatedAt.Before(page1[i+1].CreatedAt))
	}

	// limit=0 asks for an empty page, not the whole collection
	require.Empty(t, list("?skip=0&limit=0"))
}

func TestAddTextContent(t *testing.T) {
	g := newTestRouter()
	p := createProfile(t, g, "alice")

	buf, ct := multipartBody(t, map[string]string{
		"title":        "my note",
		"content_type": "text",
		"text_content": "hello world",
	}, "", nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/profiles/"+p.ID+"/content", buf)
	req.Header.Set("Content-Type", ct)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message     string              `json:"message"`
		ContentItem profile.ContentItem `json:"content_item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Content added successfully", resp.Message)
	require.Equal(t, "text", resp.ContentItem.Type)
	require.Equal(t, "hello world", resp.ContentItem.Content)
	require.Nil(t, resp.ContentItem.FileName)
	require.Nil(t, resp.ContentItem.FileSize)
}

func TestAddFileContent(t *testing.T) {
	g := newTestRouter()
	p := createProfile(t, g, "alice")

	raw := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	buf, ct := multipartBody(t, map[string]string{
		"title":        "a picture",
		"content_type": "text", // overridden by the file's detected type
	}, "shot.png", raw)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/profiles/"+p.ID+"/content", buf)
	req.Header.Set("Content-Type", ct)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ContentItem profile.ContentItem `json:"content_item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, media.TypeImage, resp.ContentItem.Type)
	require.NotNil(t, resp.ContentItem.FileName)
	require.Equal(t, "shot.png", *resp.ContentItem.FileName)
	require.NotNil(t, resp.ContentItem.FileSize)
	require.Equal(t, int64(len(raw)), *resp.ContentItem.FileSize)

	decoded, err := media.DecodeContent(resp.ContentItem.Content)
	require.NoError(t, err)
	require.Equal(t, raw, decoded)

	// item is persisted inside the profile document
	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profiles/"+p.ID, nil))
	var got profile.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.ContentItems, 1)
}

func TestAddContentUnknownProfile(t *testing.T) {
	g := newTestRouter()
	buf, ct := multipartBody(t, map[string]string{"title": "x", "content_type": "text"}, "", nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/profiles/missing/content", buf)
	req.Header.Set("Content-Type", ct)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProfile(t *testing.T) {
	g := newTestRouter()
	p := createProfile(t, g, "alice")

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/profiles/"+p.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	// fetch after delete is a 404, and so is a second delete
	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profiles/"+p.ID, nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/profiles/"+p.ID, nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpload(t *testing.T) {
	g := newTestRouter()
	raw := []byte("ID3\x03standalone audio bytes")
	buf, ct := multipartBody(t, nil, "track.mp3", raw)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", buf)
	req.Header.Set("Content-Type", ct)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Filename string `json:"filename"`
		FileType string `json:"file_type"`
		FileSize int    `json:"file_size"`
		Content  string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "track.mp3", resp.Filename)
	require.Equal(t, media.TypeAudio, resp.FileType)
	require.Equal(t, len(raw), resp.FileSize)
	decoded, err := media.DecodeContent(resp.Content)
	require.NoError(t, err)
	require.Equal(t, raw, decoded)

	// upload touches no persistence
	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profiles", nil))
	var list []profile.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Empty(t, list)
}
