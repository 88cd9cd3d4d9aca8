package handler

import (
	"github.com/palemoky/mastermind-online/internal/apperrors"
	"github.com/palemoky/mastermind-online/internal/protocol"
	"github.com/palemoky/mastermind-online/internal/types"
)

// handleChat 处理聊天，payload 格式为 gameId:message
// 消息正文里的冒号原样透传
func (h *Handler) handleChat(c types.ClientInterface, payload string) {
	parts := protocol.SplitPayload(payload, 2)
	if len(parts) < 2 {
		sendErr(c, apperrors.ErrInvalidChatData)
		return
	}

	// 聊天限流检查
	if h.chatLimiter != nil {
		if allowed, reason := h.chatLimiter.AllowChat(c.GetID()); !allowed {
			c.Send(protocol.Format(protocol.MsgError, reason))
			return
		}
	}

	session := h.directory.GetSession(parts[0])
	if session == nil {
		sendErr(c, apperrors.ErrSessionNotFound)
		return
	}

	// 聊天发给全体成员，包括发送者自己
	session.Broadcast(protocol.Format(protocol.MsgChatMessage, parts[0], c.GetName(), parts[1]), "")
}
