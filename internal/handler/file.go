package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/init-helpful/dirhub/index"
	"github.com/init-helpful/dirhub/internal/markdown"
)

// FileHandler serves raw file content and markdown previews for files
// inside the indexed root.
type FileHandler struct {
	svc      *Service
	renderer *markdown.Renderer
}

// NewFileHandler creates a new file handler.
func NewFileHandler(svc *Service) *FileHandler {
	return &FileHandler{
		svc:      svc,
		renderer: markdown.NewRenderer(),
	}
}

// resolve maps a request path to an absolute path strictly inside the
// root. The joined path is cleaned and checked on a segment boundary, so
// filenames that merely contain dots (notes..md) stay reachable while
// traversal out of the root is rejected.
func (h *FileHandler) resolve(relPath string) (string, error) {
	relPath = strings.TrimPrefix(relPath, "/")
	if relPath == "" {
		return "", os.ErrPermission
	}
	var root string
	_ = h.svc.With(func(x *index.Index) error {
		root = x.Root()
		return nil
	})
	abs := filepath.Join(root, filepath.FromSlash(relPath))
	if !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return "", os.ErrPermission
	}
	return abs, nil
}

// GetRaw returns the raw bytes of a file under the root.
func (h *FileHandler) GetRaw(c *gin.Context) {
	path, err := h.resolve(c.Param("path"))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid path"})
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", content)
}

// GetPreview returns rendered HTML for a markdown file under the root.
func (h *FileHandler) GetPreview(c *gin.Context) {
	relPath := c.Param("path")
	path, err := h.resolve(relPath)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid path"})
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext != "md" && ext != "markdown" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not a markdown file"})
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	preview, err := h.renderer.Render(content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render markdown: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"path":     strings.TrimPrefix(relPath, "/"),
		"title":    preview.Title,
		"html":     preview.HTML,
		"headings": preview.Headings,
	})
}
