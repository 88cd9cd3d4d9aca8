package game

import (
	"sync"

	"github.com/palemoky/mastermind-online/internal/protocol"
	"github.com/palemoky/mastermind-online/internal/types"
)

// Session 一局游戏会话：成员、轮次、猜测计数与胜负判定
// 所有修改操作都由 mu 串行化，不同会话的锁相互独立
type Session struct {
	id              string
	name            string
	requiredPlayers int
	rules           Rules
	gen             *CodeGenerator

	mu           sync.Mutex
	members      map[string]types.ClientInterface // 玩家 ID → 连接句柄（会话自有的成员表）
	order        []string                         // 成员加入顺序
	guessCount   map[string]int                   // 玩家 ID → 已用猜测数
	turnOrder    []string                         // 开局时固定的轮次顺序
	currentTurn  int
	totalGuesses int
	status       Status
	secretCode   string
}

// RemoveResult 移除成员的结果，由大厅根据它决定是否删除会话
type RemoveResult struct {
	Empty bool // 会话已无成员
}

// NewSession 创建会话
func NewSession(id, name string, requiredPlayers int, rules Rules, gen *CodeGenerator) *Session {
	return &Session{
		id:              id,
		name:            name,
		requiredPlayers: requiredPlayers,
		rules:           rules,
		gen:             gen,
		members:         make(map[string]types.ClientInterface),
		guessCount:      make(map[string]int),
	}
}

// AddPlayer 添加玩家，仅在等待中且未满员时允许
// 失败不抛错也不产生任何部分修改，由调用方回复错误
func (s *Session) AddPlayer(id string, c types.ClientInterface) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusWaiting || len(s.members) >= s.requiredPlayers {
		return false
	}

	s.members[id] = c
	s.order = append(s.order, id)
	s.guessCount[id] = 0
	return true
}

// RemovePlayer 从会话的所有结构中移除玩家
// 若移除后无人剩余，通过返回值请求大厅删除会话（没有人需要再通知）；
// 若游戏进行中且被移除者持有当前轮次，轮次指针对缩短后的顺序取模并重播
// TURN_UPDATE；否则按持有者 ID 重新定位指针，逻辑轮次不变
func (s *Session) RemovePlayer(id string) RemoveResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; !ok {
		return RemoveResult{Empty: len(s.members) == 0}
	}

	delete(s.members, id)
	delete(s.guessCount, id)
	s.order = removeID(s.order, id)

	if len(s.members) == 0 {
		return RemoveResult{Empty: true}
	}

	if s.status == StatusInProgress {
		holder := s.turnOrder[s.currentTurn]
		s.turnOrder = removeID(s.turnOrder, id)

		if id == holder {
			s.currentTurn = s.currentTurn % len(s.turnOrder)
			s.broadcastTurnUpdate()
		} else if idx := indexOf(s.turnOrder, holder); idx >= 0 {
			s.currentTurn = idx
		} else {
			s.currentTurn = 0
			s.broadcastTurnUpdate()
		}
	}

	return RemoveResult{}
}

// Broadcast 向会话内所有成员发送消息，excludeID 非空时跳过该玩家
func (s *Session) Broadcast(line, excludeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcast(line, excludeID)
}

// broadcast 需在持有 s.mu 时调用；Send 只是向发送缓冲投递，不做 I/O
func (s *Session) broadcast(line, excludeID string) {
	for _, id := range s.order {
		if excludeID != "" && id == excludeID {
			continue
		}
		s.members[id].Send(line)
	}
}

func (s *Session) broadcastTurnUpdate() {
	s.broadcast(protocol.Format(protocol.MsgTurnUpdate, s.id, s.turnOrder[s.currentTurn]), "")
}

// --- 只读快照 ---

// ID 返回会话 ID
func (s *Session) ID() string { return s.id }

// Name 返回会话显示名
func (s *Session) Name() string { return s.name }

// MaxPlayers 返回开局所需人数
func (s *Session) MaxPlayers() int { return s.requiredPlayers }

// PlayerCount 返回当前成员数
func (s *Session) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

// Status 返回当前状态
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// PlayerNames 按加入顺序返回成员显示名
func (s *Session) PlayerNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.order))
	for _, id := range s.order {
		names = append(names, s.members[id].GetName())
	}
	return names
}

// PlayerIDs 按加入顺序返回成员 ID
func (s *Session) PlayerIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// ListItem 构建 GAME_LIST 条目
func (s *Session) ListItem() protocol.GameListItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return protocol.GameListItem{
		ID:         s.id,
		Name:       s.name,
		Players:    len(s.members),
		MaxPlayers: s.requiredPlayers,
		Status:     s.status.String(),
	}
}

func removeID(list []string, id string) []string {
	for i, v := range list {
		if v == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func indexOf(list []string, id string) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}
