package handler

import (
	"strconv"
	"strings"

	"github.com/palemoky/mastermind-online/internal/apperrors"
	"github.com/palemoky/mastermind-online/internal/protocol"
	"github.com/palemoky/mastermind-online/internal/types"
)

// handleGetGames 回复当前游戏列表
func (h *Handler) handleGetGames(c types.ClientInterface, _ string) {
	c.Send(h.directory.GameListLine())
}

// handleCreateGame 创建游戏，payload 格式为 name:requiredPlayers
// 创建者不会被自动加入，需要再发 JOIN_GAME
func (h *Handler) handleCreateGame(c types.ClientInterface, payload string) {
	if !strings.Contains(payload, ":") {
		sendErr(c, apperrors.ErrInvalidCreate)
		return
	}

	parts := protocol.SplitPayload(payload, 2)
	name := strings.TrimSpace(parts[0])

	required, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || required < 1 {
		sendErr(c, apperrors.ErrInvalidCount)
		return
	}

	gameID := h.directory.CreateGame(name, required, c.GetID())
	c.Send(protocol.Format(protocol.MsgGameCreated, gameID))
	h.directory.BroadcastGameList()
}

// handleJoinGame 加入游戏；凑齐人数后自动开局
func (h *Handler) handleJoinGame(c types.ClientInterface, payload string) {
	gameID := strings.TrimSpace(payload)

	if !h.directory.JoinGame(gameID, c.GetID()) {
		sendErr(c, apperrors.ErrJoinFailed)
		return
	}

	session := h.directory.GetSession(gameID)
	if session == nil {
		sendErr(c, apperrors.ErrSessionNotFound)
		return
	}

	c.SetGame(gameID)
	c.Send(protocol.Format(protocol.MsgGameJoined, gameID, strings.Join(session.PlayerNames(), ",")))
	session.Broadcast(protocol.Format(protocol.MsgPlayerJoined, gameID, c.GetName()), c.GetID())

	if session.CanStart() {
		session.StartGame()
		h.directory.BroadcastGameList()
	}
}

// handleLeaveGame 离开游戏并刷新大厅列表
func (h *Handler) handleLeaveGame(c types.ClientInterface, payload string) {
	gameID := strings.TrimSpace(payload)

	if !h.directory.LeaveGame(gameID, c.GetID(), c.GetName()) {
		sendErr(c, apperrors.ErrSessionNotFound)
		return
	}

	c.SetGame("")
	h.directory.BroadcastGameList()
}
