package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/init-helpful/dirhub/index"
)

// MutateHandler exposes the index's filesystem mutations. Every operation
// touches the disk first and only updates the index on success, so a
// failed request leaves the index exactly as it was.
type MutateHandler struct {
	svc *Service
}

// NewMutateHandler creates a new mutation handler.
func NewMutateHandler(svc *Service) *MutateHandler {
	return &MutateHandler{svc: svc}
}

// CreateFileRequest represents a request to create a file under the root.
type CreateFileRequest struct {
	Dir       string `json:"dir"`
	Stem      string `json:"stem" binding:"required"`
	Extension string `json:"extension"`
	Content   string `json:"content"`
}

// CreateFile creates a file (and any missing parent directories).
func (h *MutateHandler) CreateFile(c *gin.Context) {
	var req CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stem is required"})
		return
	}

	var entry *index.FileEntry
	err := h.svc.With(func(x *index.Index) error {
		var err error
		entry, err = x.CreateFile(req.Dir, req.Stem, req.Extension, req.Content)
		return err
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "file created", "file": entry})
}

// CreateDirectoryRequest represents a request to create a directory.
type CreateDirectoryRequest struct {
	Path string `json:"path" binding:"required"`
}

// CreateDirectory creates a directory (and any missing ancestors).
func (h *MutateHandler) CreateDirectory(c *gin.Context) {
	var req CreateDirectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	var entry *index.DirectoryEntry
	err := h.svc.With(func(x *index.Index) error {
		var err error
		entry, err = x.CreateDirectory(req.Path)
		return err
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "directory created", "directory": entry})
}

// RenameFileRequest selects one file by query constraints and gives it a
// new full filename.
type RenameFileRequest struct {
	NewName string          `json:"new_name" binding:"required"`
	Query   index.FileQuery `json:"query"`
}

// RenameFile renames a single file within its parent directory.
func (h *MutateHandler) RenameFile(c *gin.Context) {
	var req RenameFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_name is required"})
		return
	}

	err := h.svc.With(func(x *index.Index) error {
		return x.RenameFile(req.NewName, req.Query)
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "file renamed"})
}

// DeleteFiles deletes every file matching the request query.
func (h *MutateHandler) DeleteFiles(c *gin.Context) {
	var q index.FileQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.svc.With(func(x *index.Index) error {
		return x.DeleteFiles(q, nil)
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "files deleted"})
}

// DeleteDirectories deletes matching directories recursively, cascading
// index removal to everything nested beneath them.
func (h *MutateHandler) DeleteDirectories(c *gin.Context) {
	var q index.DirQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.svc.With(func(x *index.Index) error {
		return x.DeleteDirectories(q, nil)
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "directories deleted"})
}

// MoveFilesRequest selects source files and a destination directory.
type MoveFilesRequest struct {
	Query index.FileQuery `json:"query"`
	Dest  index.DirQuery  `json:"dest"`
	// Single moves exactly one file and fails when nothing matches,
	// instead of moving all matches.
	Single bool `json:"single"`
}

// MoveFiles relocates files into a destination directory that must match
// exactly one indexed directory.
func (h *MutateHandler) MoveFiles(c *gin.Context) {
	var req MoveFilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.svc.With(func(x *index.Index) error {
		if req.Single {
			return x.MoveFile(req.Query, req.Dest)
		}
		return x.MoveFiles(req.Query, req.Dest, nil)
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "files moved"})
}

// MoveDirectoriesRequest selects source directories and a destination
// parent directory.
type MoveDirectoriesRequest struct {
	Query index.DirQuery `json:"query"`
	Dest  index.DirQuery `json:"dest"`
}

// MoveDirectories relocates whole subtrees under a unique destination
// parent.
func (h *MutateHandler) MoveDirectories(c *gin.Context) {
	var req MoveDirectoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.svc.With(func(x *index.Index) error {
		return x.MoveDirectories(req.Query, req.Dest)
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "directories moved"})
}
