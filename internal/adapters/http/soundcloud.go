package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Waveroom/internal/resolver"
)

type SoundcloudHandlers struct {
	Client *resolver.Client
}

func (h *SoundcloudHandlers) Search(c *gin.Context) {
	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query q is required"})
		return
	}
	if h.Client.ClientID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "SOUNDCLOUD_CLIENT_ID is not configured on the server"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	if c.DefaultQuery("filter", "tracks") == "playlists" {
		items, err := h.Client.SearchPlaylists(c.Request.Context(), q, limit)
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("soundcloud playlist search")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch playlists from SoundCloud"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "kind": "playlists"})
		return
	}

	items, err := h.Client.SearchTracks(c.Request.Context(), q, limit)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("soundcloud track search")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch tracks from SoundCloud"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "kind": "tracks"})
}

func (h *SoundcloudHandlers) PlaylistTracks(c *gin.Context) {
	if h.Client.ClientID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "SOUNDCLOUD_CLIENT_ID is not configured on the server"})
		return
	}
	items, err := h.Client.PlaylistTracks(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("soundcloud playlist tracks")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch playlist from SoundCloud"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
