// Package signal is the websocket side of the connection gateway: one
// upgraded conn per client, a buffered send channel, and a JSON envelope
// protocol dispatched on a "type" field.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Waveroom/internal/app"
	"github.com/dkeye/Waveroom/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

// Conn is an indirection over *websocket.Conn to ease testing.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(mt int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type WSController struct {
	Gateway    *app.Gateway
	ReadLimit  int64
	PingPeriod time.Duration
}

func NewWSController(gw *app.Gateway, readLimit int64, pingPeriod time.Duration) *WSController {
	return &WSController{Gateway: gw, ReadLimit: readLimit, PingPeriod: pingPeriod}
}

type wsConn struct {
	conn Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSocket upgrades the request and starts the read/write pumps.
// Every physical connection gets its own session id: the membership sets
// track sockets, and the browser-stable client token must not alias a
// fresh socket with a dying one across a page refresh.
func (ctl *WSController) HandleSocket(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(uuid.NewString())
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("client", c.GetString("client_token")).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	conn := &wsConn{
		conn: ws,
		send: make(chan core.Frame, 256),
	}

	connCtx, cancel := context.WithCancel(ctx)
	go func() {
		// Closing here unblocks the read loop if the write side dies first.
		defer cancel()
		defer conn.Close()
		ctl.writePump(connCtx, conn)
	}()
	go ctl.readPump(connCtx, sid, conn)
}
