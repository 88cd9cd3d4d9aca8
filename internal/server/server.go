package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/mastermind-online/internal/config"
	"github.com/palemoky/mastermind-online/internal/game"
	"github.com/palemoky/mastermind-online/internal/lobby"
	"github.com/palemoky/mastermind-online/internal/server/handler"
	"github.com/palemoky/mastermind-online/internal/server/storage"
)

// Server 游戏服务器：TCP 监听 + 可选 WebSocket 网关
type Server struct {
	config      *config.Config
	directory   *lobby.Directory
	handler     *handler.Handler
	redis       *redis.Client               // 统计不可用时为 nil
	leaderboard *storage.LeaderboardManager // 同上
	chatLimiter *ChatRateLimiter

	listener   net.Listener
	httpServer *http.Server

	clientsMu sync.Mutex
	clients   map[*Client]struct{}

	// 连接控制
	semaphore chan struct{} // 信号量控制并发连接数

	closedMu sync.Mutex
	closed   bool
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config) (*Server, error) {
	rules := game.Rules{
		PegCount:   cfg.Game.PegCount,
		GuessLimit: cfg.Game.GuessLimit,
		Alphabet:   cfg.Game.Alphabet(),
	}

	s := &Server{
		config:      cfg,
		directory:   lobby.NewDirectory(rules, game.NewCodeGenerator()),
		chatLimiter: NewChatRateLimiter(2, 30, 10*time.Second),
		clients:     make(map[*Client]struct{}),
		semaphore:   make(chan struct{}, cfg.Server.MaxConnections),
	}

	// 统计与排行榜是可选项：Redis 不可达时降级为无统计运行，
	// 游戏本身完全在内存中，不依赖任何外部存储
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("⚠️ Redis 连接失败，统计功能不可用: %v", err)
			_ = rdb.Close()
		} else {
			s.redis = rdb
			s.leaderboard = storage.NewLeaderboardManager(rdb)
		}
	}

	s.handler = handler.New(handler.Deps{
		Directory:   s.directory,
		Leaderboard: s.leaderboard,
		ChatLimiter: s.chatLimiter,
	})

	return s, nil
}

// Start 启动服务器并阻塞在 TCP 接受循环上
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("监听 %s 失败: %w", addr, err)
	}
	s.listener = listener

	if s.config.Server.WSPort > 0 {
		go s.startWSGateway()
	}

	// 启动监控协程
	go s.monitorStats()

	log.Printf("🚀 服务器启动在 tcp://%s (CPU核心数: %d)", addr, runtime.NumCPU())

	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.isClosed() {
				return nil
			}
			log.Printf("接受连接失败: %v", err)
			continue
		}

		if !s.acquireSlot() {
			log.Printf("🚫 达到最大连接数限制 (%d)，拒绝 %s", s.config.Server.MaxConnections, conn.RemoteAddr())
			_, _ = conn.Write([]byte("ERROR:Server full\n"))
			_ = conn.Close()
			continue
		}

		s.serveTransport(newTCPTransport(conn))
	}
}

// serveTransport 为一条新传输启动客户端读写协程
func (s *Server) serveTransport(t Transport) {
	client := NewClient(s, t)

	s.clientsMu.Lock()
	s.clients[client] = struct{}{}
	s.clientsMu.Unlock()

	log.Printf("✅ 新连接: %s", t.RemoteAddr())

	go client.ReadPump()
	go client.WritePump()
}

// dropClient 连接结束时从活跃集合移除并释放连接名额
func (s *Server) dropClient(c *Client) {
	s.clientsMu.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	s.clientsMu.Unlock()

	if ok {
		s.releaseSlot()
	}
}

func (s *Server) acquireSlot() bool {
	select {
	case s.semaphore <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *Server) releaseSlot() {
	<-s.semaphore
}

// Addr 返回 TCP 实际监听地址（测试里用 :0 端口）
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) isClosed() bool {
	s.closedMu.Lock()
	defer s.closedMu.Unlock()
	return s.closed
}

// monitorStats 定期监控服务器状态
func (s *Server) monitorStats() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if s.isClosed() {
			return
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		log.Printf("📊 [监控] 在线: %d | 进行中会话: %d | Goroutines: %d | 活跃连接: %d/%d | 内存: %.2f MB",
			s.directory.OnlineCount(),
			s.directory.ActiveGamesCount(),
			runtime.NumGoroutine(),
			len(s.semaphore),
			s.config.Server.MaxConnections,
			float64(m.Alloc)/1024/1024)
	}
}

// Shutdown 关闭服务器：停止监听、断开所有客户端、关闭 Redis
func (s *Server) Shutdown() {
	s.closedMu.Lock()
	if s.closed {
		s.closedMu.Unlock()
		return
	}
	s.closed = true
	s.closedMu.Unlock()

	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(ctx)
	}

	s.clientsMu.Lock()
	for client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	if s.redis != nil {
		_ = s.redis.Close()
	}

	log.Println("服务器已关闭")
}
