package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源，生产环境需要限制
	},
}

// wsTransport WebSocket 传输：一条文本消息即一帧，内容与 TCP 行协议一致
type wsTransport struct {
	conn *websocket.Conn
}

func (t *wsTransport) ReadLine() (string, error) {
	for {
		msgType, data, err := t.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if msgType != websocket.TextMessage {
			continue
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
}

func (t *wsTransport) WriteLine(line string) error {
	_ = t.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return t.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (t *wsTransport) Close() error {
	return t.conn.Close()
}

func (t *wsTransport) RemoteAddr() string {
	return t.conn.RemoteAddr().String()
}

// startWSGateway 启动 WebSocket 网关
func (s *Server) startWSGateway() {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.WSPort)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("🌐 WebSocket 网关启动在 ws://%s/ws", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("WebSocket 网关退出: %v", err)
	}
}

// handleWebSocket 处理 WebSocket 连接，升级后与 TCP 客户端同等对待
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.acquireSlot() {
		http.Error(w, "Server Full", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.releaseSlot()
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	s.serveTransport(&wsTransport{conn: conn})
}
