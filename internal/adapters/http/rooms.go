package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkeye/Waveroom/internal/core"
	"github.com/dkeye/Waveroom/internal/domain"
)

type RoomHandlers struct {
	Directory *core.Directory
}

// Create accepts the loose creation body and disambiguates it into a tagged
// source exactly once, here at the boundary.
func (h *RoomHandlers) Create(c *gin.Context) {
	var req struct {
		YoutubeURL    string          `json:"youtubeUrl"`
		SoundcloudURL string          `json:"soundcloudUrl"`
		Kind          domain.RoomKind `json:"type"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	src, err := domain.NewSource(req.YoutubeURL, req.SoundcloudURL, req.Kind)
	switch {
	case errors.Is(err, domain.ErrMissingSource):
		c.JSON(http.StatusBadRequest, gin.H{"error": "youtubeUrl or soundcloudUrl or type is required"})
		return
	case errors.Is(err, domain.ErrInvalidVideoURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid YouTube URL"})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create room"})
		return
	}

	room := h.Directory.Create(src)
	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandlers) Get(c *gin.Context) {
	room, ok := h.Directory.Get(domain.RoomID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandlers) GetState(c *gin.Context) {
	state, ok := h.Directory.State(domain.RoomID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// PatchState merges the supplied playback fields; absent fields stay as is.
func (h *RoomHandlers) PatchState(c *gin.Context) {
	var upd domain.StateUpdate
	if err := c.BindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	state, ok := h.Directory.UpdateState(domain.RoomID(c.Param("id")), upd)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *RoomHandlers) SetTrack(c *gin.Context) {
	var req struct {
		URL        string `json:"url" binding:"required"`
		Title      string `json:"title"`
		Artist     string `json:"artist"`
		ArtworkURL string `json:"artworkUrl"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}
	if !h.Directory.SetNowPlaying(domain.RoomID(c.Param("id")), req.URL, req.Title, req.Artist, req.ArtworkURL) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RoomHandlers) Delete(c *gin.Context) {
	h.Directory.Delete(domain.RoomID(c.Param("id")))
	c.Status(http.StatusNoContent)
}
