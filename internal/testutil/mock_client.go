//go:build !production

package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockClient 实现 types.ClientInterface 的 mock
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetIdentity(id, name string) {
	m.Called(id, name)
}

func (m *MockClient) GetGame() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetGame(gameID string) {
	m.Called(gameID)
}

func (m *MockClient) Send(line string) {
	m.Called(line)
}

func (m *MockClient) Close() {
	m.Called()
}

// SimpleClient 简单的 mock 客户端，不使用 testify（用于不需要断言的测试）
// Send 可能来自广播 goroutine，内部加锁保证并发安全
type SimpleClient struct {
	ID     string
	Name   string
	GameID string

	mu    sync.Mutex
	lines []string
}

func (m *SimpleClient) GetID() string   { return m.ID }
func (m *SimpleClient) GetName() string { return m.Name }
func (m *SimpleClient) SetIdentity(id, name string) {
	m.ID = id
	m.Name = name
}
func (m *SimpleClient) GetGame() string       { return m.GameID }
func (m *SimpleClient) SetGame(gameID string) { m.GameID = gameID }
func (m *SimpleClient) Send(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, line)
}
func (m *SimpleClient) Close() {}

// Lines 返回已收到消息的副本
func (m *SimpleClient) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

// LastLine 返回最后一条消息，没有则返回空串
func (m *SimpleClient) LastLine() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.lines) == 0 {
		return ""
	}
	return m.lines[len(m.lines)-1]
}

// Reset 清空已收到的消息
func (m *SimpleClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = nil
}
