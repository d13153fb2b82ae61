package signal

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Waveroom/internal/app"
	"github.com/dkeye/Waveroom/internal/core"
)

// recordingConn implements Conn and reports every write on a channel.
type recordingConn struct {
	writes chan int
}

func newRecordingConn() *recordingConn {
	return &recordingConn{writes: make(chan int, 8)}
}

func (c *recordingConn) ReadMessage() (int, []byte, error) {
	return 0, nil, context.Canceled
}

func (c *recordingConn) WriteMessage(mt int, _ []byte) error {
	c.writes <- mt
	return nil
}

func (c *recordingConn) SetWriteDeadline(time.Time) error { return nil }
func (c *recordingConn) Close() error                     { return nil }

func awaitWrite(t *testing.T, c *recordingConn) int {
	t.Helper()
	select {
	case mt := <-c.writes:
		return mt
	case <-time.After(2 * time.Second):
		t.Fatal("no write observed")
		return 0
	}
}

func newTestController() (*WSController, *core.History) {
	history := core.NewHistory()
	gw := app.NewGateway(app.NewGroups(), core.NewDirectory(), history)
	return NewWSController(gw, 0, 0), history
}

// testConn skips the upgrade; the controller only pushes frames into the
// send channel from these paths.
func testConn() *wsConn {
	return &wsConn{send: make(chan core.Frame, 8)}
}

func TestHandleEvent_JoinThenChatRoundTrip(t *testing.T) {
	req := require.New(t)
	ctl, history := newTestController()
	conn := testConn()

	ctl.handleEvent("s1", conn, []byte(`{"type":"join_room","room":"r1"}`))
	req.Equal(1, ctl.Gateway.Groups.Size("r1"))

	ctl.handleEvent("s1", conn, []byte(`{"type":"chat:send","room":"r1","author":"alice","text":"hi","time":7}`))

	req.Len(history.Messages("r1"), 1)

	// The sender is a member too, so it gets the broadcast frame.
	var env struct {
		Type   string `json:"type"`
		Author string `json:"author"`
		Text   string `json:"text"`
	}
	req.NoError(json.Unmarshal(<-conn.send, &env))
	req.Equal("chat:message", env.Type)
	req.Equal("alice", env.Author)
	req.Equal("hi", env.Text)
}

func TestHandleEvent_MalformedPayloadsAreDropped(t *testing.T) {
	req := require.New(t)
	ctl, history := newTestController()
	conn := testConn()

	ctl.handleEvent("s1", conn, []byte(`not json at all`))
	ctl.handleEvent("s1", conn, []byte(`{"type":"join_room"}`))
	ctl.handleEvent("s1", conn, []byte(`{"type":"chat:send","room":"r1"}`))
	ctl.handleEvent("s1", conn, []byte(`{"type":"chat:send","author":"a","text":"hi"}`))
	ctl.handleEvent("s1", conn, []byte(`{"type":"no_such_event"}`))

	req.Zero(ctl.Gateway.Groups.Size("r1"))
	req.Empty(history.Messages("r1"))
	req.Empty(conn.send)
}

func TestHandleEvent_PingPong(t *testing.T) {
	req := require.New(t)
	ctl, _ := newTestController()
	conn := testConn()

	ctl.handleEvent("s1", conn, []byte(`{"type":"ping"}`))

	var resp struct {
		Type string `json:"type"`
	}
	req.NoError(json.Unmarshal(<-conn.send, &resp))
	req.Equal("pong", resp.Type)
}

func TestWritePump_WritesQueuedFrames(t *testing.T) {
	req := require.New(t)
	ctl, _ := newTestController()
	rc := newRecordingConn()
	conn := &wsConn{conn: rc, send: make(chan core.Frame, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctl.writePump(ctx, conn)

	req.NoError(conn.TrySend(core.Frame(`{"type":"pong"}`)))
	req.Equal(websocket.TextMessage, awaitWrite(t, rc))
}

func TestWritePump_SendsKeepalivePings(t *testing.T) {
	req := require.New(t)
	ctl, _ := newTestController()
	ctl.PingPeriod = 5 * time.Millisecond
	rc := newRecordingConn()
	conn := &wsConn{conn: rc, send: make(chan core.Frame, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctl.writePump(ctx, conn)

	req.Equal(websocket.PingMessage, awaitWrite(t, rc))
}

func TestWsConn_TrySendAfterCloseFails(t *testing.T) {
	req := require.New(t)
	conn := testConn()

	req.NoError(conn.TrySend(core.Frame(`x`)))

	conn.mu.Lock()
	conn.closed = true
	close(conn.send)
	conn.mu.Unlock()

	req.Error(conn.TrySend(core.Frame(`y`)))
}
