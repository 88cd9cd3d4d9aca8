package server

import (
	"log"
	"strings"
	"sync"

	"github.com/palemoky/mastermind-online/internal/apperrors"
	"github.com/palemoky/mastermind-online/internal/protocol"
)

// 发送缓冲大小；写满说明客户端已经跟不上，直接断开
const sendBufferSize = 64

// Client 一条已接入的客户端连接
// 读循环逐行解析命令并分发；所有出站写入都经由 send 通道由写循环
// 串行落盘，处理器和广播方永远不会并发写同一条连接
type Client struct {
	server    *Server
	transport Transport
	send      chan string

	mu     sync.RWMutex
	id     string // CONNECT 握手成功后由服务端分配
	name   string
	gameID string
	closed bool
}

// NewClient 创建客户端
func NewClient(s *Server, t Transport) *Client {
	return &Client{
		server:    s,
		transport: t,
		send:      make(chan string, sendBufferSize),
	}
}

// ReadPump 连接的主循环：读行、解析、分发
// 只有传输层错误或 DISCONNECT 能结束循环，结束后无条件清理
func (c *Client) ReadPump() {
	defer func() {
		c.cleanup()
		_ = c.transport.Close()
	}()

	for {
		line, err := c.transport.ReadLine()
		if err != nil {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmd, payload, known := protocol.ParseLine(line)
		if !known {
			c.Send(protocol.Format(protocol.MsgError, apperrors.ErrUnknownCommand.Error()))
			continue
		}
		if cmd == protocol.CmdDisconnect {
			break
		}

		c.server.handler.Handle(c, cmd, payload)
	}
}

// WritePump 将 send 通道里的消息逐条写给客户端
func (c *Client) WritePump() {
	defer func() { _ = c.transport.Close() }()

	for line := range c.send {
		if err := c.transport.WriteLine(line); err != nil {
			return
		}
	}
}

// Send 向该客户端投递一条消息
// 读锁覆盖整个投递过程，Close 不会在检查和写入之间关闭通道
func (c *Client) Send(line string) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return
	}

	select {
	case c.send <- line:
		c.mu.RUnlock()
	default:
		c.mu.RUnlock()
		// 发送缓冲已满，断开连接
		log.Printf("客户端 %s 发送缓冲区已满", c.transport.RemoteAddr())
		c.Close()
	}
}

// Close 标记连接关闭并停止写循环
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// cleanup 连接结束后的清理级联：注销玩家（含会话级联移除）并释放资源
// 每一步彼此独立，任何一步失败不影响其余
func (c *Client) cleanup() {
	c.Close()

	if id := c.GetID(); id != "" {
		c.server.directory.RemovePlayer(id)
		c.server.chatLimiter.RemoveClient(id)
	}

	c.server.dropClient(c)
	log.Printf("👋 连接 %s 已断开 (%s)", c.transport.RemoteAddr(), c.GetName())
}

// SetIdentity 记录 CONNECT 握手分配的身份
func (c *Client) SetIdentity(id, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.id = id
	c.name = name
}

// GetID 返回玩家 ID，未握手时为空串
func (c *Client) GetID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

// GetName 返回玩家显示名
func (c *Client) GetName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// GetGame 返回当前所在会话 ID
func (c *Client) GetGame() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gameID
}

// SetGame 记录当前所在会话
func (c *Client) SetGame(gameID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gameID = gameID
}
