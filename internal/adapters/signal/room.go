package signal

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Waveroom/internal/core"
	"github.com/dkeye/Waveroom/internal/domain"
)

func (ctl *WSController) handleJoin(
	sid core.SessionID,
	conn *wsConn,
	data []byte,
) {
	type joinPayload struct {
		Type string `json:"type"`
		Room string `json:"room"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		return
	}
	if p.Room == "" {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("join without room")
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", p.Room).Msg("join")
	ctl.Gateway.JoinRoom(sid, domain.RoomID(p.Room), conn)
}

func (ctl *WSController) handleChatSend(
	sid core.SessionID,
	data []byte,
) {
	type chatPayload struct {
		Type string `json:"type"`
		domain.ChatMessage
	}
	var p chatPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad chat payload")
		return
	}
	if p.Room == "" || strings.TrimSpace(p.Text) == "" {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("chat without room or text")
		return
	}

	ctl.Gateway.OnChat(sid, p.ChatMessage)
}
