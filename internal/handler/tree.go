package handler

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/init-helpful/dirhub/index"
)

// TreeNode represents a file or directory in the tree response.
type TreeNode struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Path     string      `json:"path"`
	Size     int64       `json:"size,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// TreeHandler handles tree and query API requests.
type TreeHandler struct {
	svc *Service
}

// NewTreeHandler creates a new tree handler.
func NewTreeHandler(svc *Service) *TreeHandler {
	return &TreeHandler{svc: svc}
}

// GetTree returns the indexed subtree as nested JSON. Hierarchy is derived
// from entry paths on demand; the index stores no parent/child links.
func (h *TreeHandler) GetTree(c *gin.Context) {
	var root *TreeNode
	_ = h.svc.With(func(x *index.Index) error {
		root = buildTree(x, x.Root())
		return nil
	})
	c.JSON(http.StatusOK, root)
}

// GetTreeText returns the rendered plain-text tree.
func (h *TreeHandler) GetTreeText(c *gin.Context) {
	var text string
	_ = h.svc.With(func(x *index.Index) error {
		text = x.RenderTree()
		return nil
	})
	c.String(http.StatusOK, text)
}

func buildTree(x *index.Index, dirPath string) *TreeNode {
	rel, err := filepath.Rel(x.Root(), dirPath)
	if err != nil || rel == "." {
		rel = ""
	}
	node := &TreeNode{
		Name: filepath.Base(dirPath),
		Type: "directory",
		Path: filepath.ToSlash(rel),
	}
	for _, d := range x.Directories() {
		if filepath.Dir(d.Path) == dirPath {
			node.Children = append(node.Children, buildTree(x, d.Path))
		}
	}
	for _, f := range x.Files() {
		if filepath.Dir(f.Path) == dirPath {
			fileRel, err := filepath.Rel(x.Root(), f.Path)
			if err != nil {
				fileRel = f.Path
			}
			node.Children = append(node.Children, &TreeNode{
				Name: f.Filename(),
				Type: "file",
				Path: filepath.ToSlash(fileRel),
				Size: f.Size,
			})
		}
	}
	return node
}

// GetFiles returns the files matching the query parameters.
func (h *TreeHandler) GetFiles(c *gin.Context) {
	var q index.FileQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}
	var matched []*index.FileEntry
	_ = h.svc.With(func(x *index.Index) error {
		matched = x.FindFiles(q)
		return nil
	})
	c.JSON(http.StatusOK, gin.H{"files": matched})
}

// GetDirectories returns the directories matching the query parameters.
func (h *TreeHandler) GetDirectories(c *gin.Context) {
	var q index.DirQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}
	var matched []*index.DirectoryEntry
	_ = h.svc.With(func(x *index.Index) error {
		matched = x.FindDirectories(q)
		return nil
	})
	c.JSON(http.StatusOK, gin.H{"directories": matched})
}

// Search returns files whose content contains the q parameter. This is the
// index's naive linear scan, exposed as-is.
func (h *TreeHandler) Search(c *gin.Context) {
	needle := c.Query("q")
	if needle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	var matched []*index.FileEntry
	_ = h.svc.With(func(x *index.Index) error {
		matched = x.FindText(needle)
		return nil
	})
	c.JSON(http.StatusOK, gin.H{"files": matched})
}

// GetExtensions returns the extension registry.
func (h *TreeHandler) GetExtensions(c *gin.Context) {
	var extensions []string
	_ = h.svc.With(func(x *index.Index) error {
		extensions = x.Extensions()
		return nil
	})
	c.JSON(http.StatusOK, gin.H{"extensions": extensions})
}

// Refresh re-walks the root and rebuilds the index.
func (h *TreeHandler) Refresh(c *gin.Context) {
	if err := h.svc.Refresh(); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "index refreshed"})
}

// GetSnapshot streams the aggregated snapshot document.
func (h *TreeHandler) GetSnapshot(c *gin.Context) {
	opts := index.SnapshotOptions{
		IncludeTree: c.Query("tree") != "false",
	}
	c.Header("Content-Type", "text/plain; charset=utf-8")
	err := h.svc.With(func(x *index.Index) error {
		_, err := x.WriteSnapshot(c.Writer, opts)
		return err
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
	}
}
