package server

import (
	"log"
	"sync"
	"time"

	"github.com/palemoky/mastermind-online/internal/apperrors"
)

// ChatRateLimiter 聊天速率限制器
type ChatRateLimiter struct {
	clients map[string]*chatRate
	mu      sync.Mutex

	maxPerSecond int           // 每秒最大条数
	maxPerMinute int           // 每分钟最大条数
	cooldown     time.Duration // 超限后的冷却时长
}

// chatRate 单个客户端的速率记录
type chatRate struct {
	secondCount   int
	minuteCount   int
	lastSecond    time.Time
	lastMinute    time.Time
	cooldownUntil time.Time
}

// NewChatRateLimiter 创建聊天限流器
func NewChatRateLimiter(maxPerSecond, maxPerMinute int, cooldown time.Duration) *ChatRateLimiter {
	return &ChatRateLimiter{
		clients:      make(map[string]*chatRate),
		maxPerSecond: maxPerSecond,
		maxPerMinute: maxPerMinute,
		cooldown:     cooldown,
	}
}

// AllowChat 检查是否允许该客户端发送聊天消息
func (cl *ChatRateLimiter) AllowChat(clientID string) (bool, string) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := time.Now()
	rate, exists := cl.clients[clientID]
	if !exists {
		cl.clients[clientID] = &chatRate{
			secondCount: 1,
			minuteCount: 1,
			lastSecond:  now,
			lastMinute:  now,
		}
		return true, ""
	}

	if now.Before(rate.cooldownUntil) {
		return false, apperrors.ErrChatRateLimited.Error()
	}

	// 重置秒级计数
	if now.Sub(rate.lastSecond) >= time.Second {
		rate.secondCount = 0
		rate.lastSecond = now
	}
	// 重置分钟计数
	if now.Sub(rate.lastMinute) >= time.Minute {
		rate.minuteCount = 0
		rate.lastMinute = now
	}

	rate.secondCount++
	rate.minuteCount++

	if rate.secondCount > cl.maxPerSecond || rate.minuteCount > cl.maxPerMinute {
		rate.cooldownUntil = now.Add(cl.cooldown)
		log.Printf("⚠️ 客户端 %s 聊天过于频繁，冷却 %v", clientID, cl.cooldown)
		return false, apperrors.ErrChatRateLimited.Error()
	}

	return true, ""
}

// RemoveClient 玩家下线时清理其速率记录
func (cl *ChatRateLimiter) RemoveClient(clientID string) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	delete(cl.clients, clientID)
}
