package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkeye/Waveroom/internal/core"
	"github.com/dkeye/Waveroom/internal/domain"
)

type ChatHandlers struct {
	History *core.History
}

// GetHistory always answers 200; a room with no messages yields an empty
// array, never a 404.
func (h *ChatHandlers) GetHistory(c *gin.Context) {
	msgs := h.History.Messages(domain.RoomID(c.Param("room")))
	c.JSON(http.StatusOK, msgs)
}
