package handler

import (
	"log"

	"github.com/palemoky/mastermind-online/internal/apperrors"
	"github.com/palemoky/mastermind-online/internal/lobby"
	"github.com/palemoky/mastermind-online/internal/protocol"
	"github.com/palemoky/mastermind-online/internal/server/storage"
	"github.com/palemoky/mastermind-online/internal/types"
)

// Deps 处理器依赖
type Deps struct {
	Directory   *lobby.Directory
	Leaderboard *storage.LeaderboardManager // 可为 nil（统计降级）
	ChatLimiter types.ChatLimiter
}

// Handler 命令处理器
type Handler struct {
	directory   *lobby.Directory
	leaderboard *storage.LeaderboardManager
	chatLimiter types.ChatLimiter
	handlers    map[protocol.Command]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(c types.ClientInterface, payload string)

// openCommands 无需完成 CONNECT 握手即可使用的命令
var openCommands = map[protocol.Command]struct{}{
	protocol.CmdHello:    {},
	protocol.CmdConnect:  {},
	protocol.CmdGetGames: {},
}

// New 创建处理器
func New(deps Deps) *Handler {
	h := &Handler{
		directory:   deps.Directory,
		leaderboard: deps.Leaderboard,
		chatLimiter: deps.ChatLimiter,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化命令处理器映射
// DISCONNECT 在连接读循环里终结，不会进入这张表
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.Command]handlerFunc{
		// 连接操作
		protocol.CmdHello:   h.handleHello,
		protocol.CmdConnect: h.handleConnect,

		// 大厅操作
		protocol.CmdGetGames:   h.handleGetGames,
		protocol.CmdCreateGame: h.handleCreateGame,
		protocol.CmdJoinGame:   h.handleJoinGame,
		protocol.CmdLeaveGame:  h.handleLeaveGame,

		// 游戏操作
		protocol.CmdGuess: h.handleGuess,
		protocol.CmdChat:  h.handleChat,

		// 信息查询
		protocol.CmdGetStats:       h.handleGetStats,
		protocol.CmdGetLeaderboard: h.handleGetLeaderboard,
	}
}

// Handle 处理一条命令
// 处理器内部的意外 panic 在这里兜底：回复通用错误并保持连接存活，
// 一条坏命令永远不会终结连接
func (h *Handler) Handle(c types.ClientInterface, cmd protocol.Command, payload string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("💥 处理命令 %s 时发生异常: %v", cmd, r)
			c.Send(protocol.Format(protocol.MsgError, "Exception handling command", string(cmd)))
		}
	}()

	fn, ok := h.handlers[cmd]
	if !ok {
		sendErr(c, apperrors.ErrUnknownCommand)
		return
	}

	if _, open := openCommands[cmd]; !open && c.GetID() == "" {
		sendErr(c, apperrors.ErrNotConnected)
		return
	}

	fn(c, payload)
}
