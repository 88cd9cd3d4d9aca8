package types

// ClientInterface 定义客户端连接接口（用于打破循环依赖）
// 会话和大厅只通过它持有连接句柄，出站写入全部经由 Send 串行化
type ClientInterface interface {
	GetID() string
	GetName() string
	SetIdentity(id, name string)
	GetGame() string
	SetGame(gameID string)
	Send(line string)
	Close()
}

// ChatLimiter 聊天速率限制器接口
type ChatLimiter interface {
	AllowChat(clientID string) (allowed bool, reason string)
	RemoveClient(clientID string)
}
