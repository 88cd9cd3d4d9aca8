package lobby

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/palemoky/mastermind-online/internal/game"
	"github.com/palemoky/mastermind-online/internal/protocol"
	"github.com/palemoky/mastermind-online/internal/types"
)

// Directory 进程级大厅注册表：在线玩家、活跃会话、玩家 → 会话归属
// 三张表各自持锁，互不相关的操作不会互相阻塞；唯一需要原子
// check-and-set 的复合不变量（每名玩家至多一个会话）由 membershipMu 保证
type Directory struct {
	rules game.Rules
	gen   *game.CodeGenerator

	playersMu sync.RWMutex
	players   map[string]types.ClientInterface

	sessionsMu sync.RWMutex
	sessions   map[string]*game.Session

	membershipMu sync.Mutex
	memberOf     map[string]string // 玩家 ID → 会话 ID
}

// NewDirectory 创建大厅注册表
func NewDirectory(rules game.Rules, gen *game.CodeGenerator) *Directory {
	return &Directory{
		rules:    rules,
		gen:      gen,
		players:  make(map[string]types.ClientInterface),
		sessions: make(map[string]*game.Session),
		memberOf: make(map[string]string),
	}
}

// AddPlayer 注册玩家；ID 由服务端生成保证唯一，无需冲突检查
func (d *Directory) AddPlayer(id string, c types.ClientInterface) {
	d.playersMu.Lock()
	defer d.playersMu.Unlock()
	d.players[id] = c
}

// RemovePlayer 注销玩家；若其在某个会话中，级联移除并通知剩余成员
func (d *Directory) RemovePlayer(id string) {
	d.playersMu.Lock()
	c, ok := d.players[id]
	delete(d.players, id)
	d.playersMu.Unlock()

	if !ok {
		return
	}

	d.membershipMu.Lock()
	gameID, inGame := d.memberOf[id]
	delete(d.memberOf, id)
	d.membershipMu.Unlock()

	if inGame {
		d.dropFromSession(gameID, id, c.GetName())
	}

	log.Printf("❌ 玩家 %s (%s) 已移出大厅", c.GetName(), id)
}

// CreateGame 创建会话并返回新 ID；创建者不会被自动加入
func (d *Directory) CreateGame(name string, requiredPlayers int, creatorID string) string {
	gameID := "g" + uuid.NewString()[:8]
	session := game.NewSession(gameID, name, requiredPlayers, d.rules, d.gen)

	d.sessionsMu.Lock()
	d.sessions[gameID] = session
	d.sessionsMu.Unlock()

	log.Printf("🏠 会话 %s (%s, %d人) 由 %s 创建", gameID, name, requiredPlayers, creatorID)
	return gameID
}

// JoinGame 将玩家加入会话
// 归属表的检查和写入在 membershipMu 内完成，并发加入不会让同一玩家
// 进入两个会话；容量上限由会话自身的锁保证
func (d *Directory) JoinGame(gameID, playerID string) bool {
	d.membershipMu.Lock()
	defer d.membershipMu.Unlock()

	if _, already := d.memberOf[playerID]; already {
		return false
	}

	session := d.GetSession(gameID)
	c := d.GetPlayer(playerID)
	if session == nil || c == nil {
		return false
	}

	if !session.AddPlayer(playerID, c) {
		return false
	}
	d.memberOf[playerID] = gameID
	return true
}

// LeaveGame 将玩家移出会话并通知剩余成员；会话空了就删除
func (d *Directory) LeaveGame(gameID, playerID, playerName string) bool {
	d.sessionsMu.RLock()
	_, exists := d.sessions[gameID]
	d.sessionsMu.RUnlock()
	if !exists {
		return false
	}

	d.membershipMu.Lock()
	if d.memberOf[playerID] == gameID {
		delete(d.memberOf, playerID)
	}
	d.membershipMu.Unlock()

	d.dropFromSession(gameID, playerID, playerName)
	return true
}

// dropFromSession 执行会话侧移除，并按结果处理空会话删除与 PLAYER_LEFT 通知
func (d *Directory) dropFromSession(gameID, playerID, playerName string) {
	session := d.GetSession(gameID)
	if session == nil {
		return
	}

	res := session.RemovePlayer(playerID)
	if res.Empty {
		d.RemoveSession(gameID)
		return
	}
	session.Broadcast(protocol.Format(protocol.MsgPlayerLeft, gameID, playerName), "")
}

// GetSession 查找会话，不存在返回 nil
func (d *Directory) GetSession(gameID string) *game.Session {
	d.sessionsMu.RLock()
	defer d.sessionsMu.RUnlock()
	return d.sessions[gameID]
}

// GetPlayer 查找在线玩家的连接句柄
func (d *Directory) GetPlayer(id string) types.ClientInterface {
	d.playersMu.RLock()
	defer d.playersMu.RUnlock()
	return d.players[id]
}

// RemoveSession 删除会话，清理所有成员的归属记录并刷新大厅游戏列表
func (d *Directory) RemoveSession(gameID string) {
	d.sessionsMu.Lock()
	session, ok := d.sessions[gameID]
	delete(d.sessions, gameID)
	d.sessionsMu.Unlock()

	if !ok {
		return
	}

	d.membershipMu.Lock()
	for _, id := range session.PlayerIDs() {
		if d.memberOf[id] == gameID {
			delete(d.memberOf, id)
		}
	}
	d.membershipMu.Unlock()

	log.Printf("🏠 会话 %s 已解散", gameID)
	d.BroadcastGameList()
}

// GameList 构建所有活跃会话的列表快照
func (d *Directory) GameList() []protocol.GameListItem {
	d.sessionsMu.RLock()
	defer d.sessionsMu.RUnlock()

	items := make([]protocol.GameListItem, 0, len(d.sessions))
	for _, session := range d.sessions {
		items = append(items, session.ListItem())
	}
	return items
}

// GameListLine 渲染完整的 GAME_LIST 消息
func (d *Directory) GameListLine() string {
	return protocol.Format(protocol.MsgGameList, protocol.EncodeGameList(d.GameList()))
}

// BroadcastGameList 向所有在线玩家推送最新游戏列表
func (d *Directory) BroadcastGameList() {
	d.BroadcastToLobby(d.GameListLine())
}

// BroadcastToLobby 向所有在线玩家广播，与会话归属无关
func (d *Directory) BroadcastToLobby(line string) {
	d.playersMu.RLock()
	defer d.playersMu.RUnlock()

	for _, c := range d.players {
		c.Send(line)
	}
}

// OnlineCount 在线玩家数
func (d *Directory) OnlineCount() int {
	d.playersMu.RLock()
	defer d.playersMu.RUnlock()
	return len(d.players)
}

// ActiveGamesCount 进行中的会话数
func (d *Directory) ActiveGamesCount() int {
	d.sessionsMu.RLock()
	defer d.sessionsMu.RUnlock()

	count := 0
	for _, session := range d.sessions {
		if session.Status() == game.StatusInProgress {
			count++
		}
	}
	return count
}
