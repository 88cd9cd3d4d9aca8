package handler

import (
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/palemoky/mastermind-online/internal/apperrors"
	"github.com/palemoky/mastermind-online/internal/protocol"
	"github.com/palemoky/mastermind-online/internal/types"
)

// handleHello 版本握手，原样回显
func (h *Handler) handleHello(c types.ClientInterface, payload string) {
	c.Send(protocol.Format(protocol.MsgHello, payload))
}

// handleConnect 注册玩家：分配服务端唯一 ID 并登记到大厅
func (h *Handler) handleConnect(c types.ClientInterface, payload string) {
	if c.GetID() != "" {
		sendErr(c, apperrors.ErrAlreadyConnected)
		return
	}

	id := "p" + uuid.NewString()[:8]

	name := strings.TrimSpace(payload)
	if name == "" {
		name = "Player" + id[1:]
	}

	c.SetIdentity(id, name)
	h.directory.AddPlayer(id, c)
	c.Send(protocol.Format(protocol.MsgConnected, id))

	log.Printf("✅ 玩家 %s (%s) 已连接", name, id)
}
