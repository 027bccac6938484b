package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/profilehub/profilehub/internal/media"
	"github.com/profilehub/profilehub/internal/profile"
	"github.com/profilehub/profilehub/internal/profile/service"
	"github.com/profilehub/profilehub/pkg/logger"
)

// Archiver receives the raw bytes of uploaded files for out-of-band storage
// (object storage). Archival is best-effort: failures are logged and never
// fail the request. A nil Archiver disables it.
type Archiver interface {
	Archive(ctx context.Context, key string, data []byte, contentType string) error
}

// Handler wires the profile routes. All responses use the entity JSON shapes
// of the profile package; errors are rendered as {"detail": "..."}.
type Handler struct {
	svc      *service.Service
	archiver Archiver
}

func NewHandler(svc *service.Service, archiver Archiver) *Handler {
	return &Handler{svc: svc, archiver: archiver}
}

// Register mounts the routes on the given group (normally /api).
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.Root)
	rg.POST("/profiles", h.CreateProfile)
	rg.GET("/profiles", h.ListProfiles)
	rg.GET("/profiles/:id", h.GetProfile)
	rg.POST("/profiles/:id/content", h.AddContent)
	rg.DELETE("/profiles/:id", h.DeleteProfile)
	rg.POST("/upload", h.Upload)
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "User Profile API"})
}

func (h *Handler) CreateProfile(c *gin.Context) {
	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	p, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) ListProfiles(c *gin.Context) {
	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 10)
	list, err := h.svc.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) AddContent(c *gin.Context) {
	title := c.PostForm("title")
	contentType := c.PostForm("content_type")
	if title == "" || contentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "title and content_type are required"})
		return
	}

	in := service.AddContentInput{
		Title:       title,
		ContentType: contentType,
		TextContent: c.PostForm("text_content"),
	}

	// a supplied file takes precedence over text_content/content_type
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		data, err := readMultipartFile(fh)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		in.FileName = fh.Filename
		in.FileData = data
		in.HasFile = true
	}

	item, err := h.svc.AddContent(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if in.HasFile && h.archiver != nil {
		if err := h.archiver.Archive(c.Request.Context(), item.ID+"/"+in.FileName, in.FileData, "application/octet-stream"); err != nil {
			logger.Warnf("archive of %s failed: %v", in.FileName, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content added successfully", "content_item": item})
}

func (h *Handler) DeleteProfile(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}

// Upload encodes a file without persisting anything: the client receives the
// detected type and the text-safe content and decides what to do with it.
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file is required"})
		return
	}
	data, err := readMultipartFile(fh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	fileType := media.ClassifyMediaType(fh.Filename)
	if h.archiver != nil {
		if err := h.archiver.Archive(c.Request.Context(), "uploads/"+fh.Filename, data, "application/octet-stream"); err != nil {
			logger.Warnf("archive of %s failed: %v", fh.Filename, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"filename":  fh.Filename,
		"file_type": fileType,
		"file_size": len(data),
		"content":   media.EncodeContent(data),
	})
}

func queryInt(c *gin.Context, name string, def int64) int64 {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// readMultipartFile buffers the whole upload in memory; content is embedded
// in the document, so there is no streaming path.
func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
