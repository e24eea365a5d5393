package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// PlotsHandler serves chart artifacts from the plots directory
type PlotsHandler struct {
	dir string
}

// NewPlotsHandler creates a new plots handler
func NewPlotsHandler(dir string) *PlotsHandler {
	return &PlotsHandler{dir: dir}
}

type plotInfo struct {
	Filename string    `json:"filename"`
	Size     int64     `json:"size_bytes"`
	Created  time.Time `json:"created"`
}

// Latest handles GET /api/v1/plots/latest
func (h *PlotsHandler) Latest(c *gin.Context) {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read plots directory"})
		return
	}

	plots := make([]plotInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		plots = append(plots, plotInfo{
			Filename: entry.Name(),
			Size:     info.Size(),
			Created:  info.ModTime().UTC(),
		})
	}

	sort.Slice(plots, func(i, j int) bool {
		return plots[i].Created.After(plots[j].Created)
	})
	if len(plots) > 10 {
		plots = plots[:10]
	}

	c.JSON(http.StatusOK, gin.H{"plots": plots, "count": len(plots)})
}

// Get handles GET /api/v1/plots/:filename
func (h *PlotsHandler) Get(c *gin.Context) {
	filename := c.Param("filename")

	// Only bare .json filenames are served; anything with path elements is
	// a traversal attempt.
	if filename != filepath.Base(filename) || !strings.HasSuffix(filename, ".json") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plot filename"})
		return
	}

	path := filepath.Join(h.dir, filename)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plot not found"})
		return
	}

	c.Header("Content-Type", "application/json")
	c.File(path)
}
