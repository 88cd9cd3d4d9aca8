package game

import (
	"log"
	"strconv"
	"strings"

	"github.com/palemoky/mastermind-online/internal/apperrors"
	"github.com/palemoky/mastermind-online/internal/protocol"
)

// Participant 终局时的单个成员战绩，用于写入统计
type Participant struct {
	ID      string
	Name    string
	Guesses int
	Won     bool
}

// Outcome 终局结果，仅在本次猜测终结会话时返回
type Outcome struct {
	WinnerID     string // 无人获胜（猜测耗尽）时为空
	WinnerName   string
	Participants []Participant
}

// CanStart 仅当人数到齐且仍在等待中时为真
func (s *Session) CanStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members) == s.requiredPlayers && s.status == StatusWaiting
}

// StartGame 开局：固定轮次顺序、生成密码、广播 GAME_STARTED 和 TURN_UPDATE
// 已开局时为幂等空操作
func (s *Session) StartGame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusWaiting {
		return
	}

	s.status = StatusInProgress
	s.turnOrder = make([]string, len(s.order))
	copy(s.turnOrder, s.order)
	s.currentTurn = 0
	s.secretCode = s.gen.NextCode(s.rules.PegCount, s.rules.Alphabet)

	log.Printf("🎲 会话 %s (%s) 开局，密码: %s", s.id, s.name, s.secretCode)

	first := s.turnOrder[0]
	s.broadcast(protocol.Format(protocol.MsgGameStarted, s.id, first), "")
	s.broadcastTurnUpdate()
}

// ProcessGuess 处理一次猜测
//
// 先做三道门禁：游戏进行中、轮到该玩家、猜测格式合法，任一不满足返回错误
// 且不产生任何修改。通过后评估猜测、更新计数并广播 GUESS_RESULT，随后按
// 优先级判定：全黑 → 胜利（GAME_WON + GAME_OVER）；总猜测数达到
// guessLimit×requiredPlayers → 耗尽（GAME_OVER）；否则轮次后移一位
func (s *Session) ProcessGuess(playerID, guess string) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusInProgress {
		return nil, apperrors.ErrGameNotStarted
	}
	if playerID != s.turnOrder[s.currentTurn] {
		return nil, apperrors.ErrNotYourTurn
	}
	if !s.isValidGuess(guess) {
		return nil, apperrors.ErrInvalidGuess
	}

	black, white := Evaluate(s.secretCode, guess)

	s.totalGuesses++
	s.guessCount[playerID]++
	guessNum := s.guessCount[playerID]
	playerName := s.members[playerID].GetName()

	s.broadcast(protocol.Format(protocol.MsgGuessResult,
		s.id, playerName, strconv.Itoa(guessNum), guess,
		strconv.Itoa(black), strconv.Itoa(white)), "")

	// 胜利：全部猜中
	if black == s.rules.PegCount {
		s.status = StatusFinished
		s.broadcast(protocol.Format(protocol.MsgGameWon, s.id, playerName, strconv.Itoa(guessNum)), "")
		s.broadcast(protocol.Format(protocol.MsgGameOver, s.id, s.secretCode), "")
		log.Printf("🏆 会话 %s 结束，%s 第 %d 次猜中", s.id, playerName, guessNum)
		return s.outcome(playerID, playerName), nil
	}

	// 耗尽：所有玩家的猜测次数用完
	if s.totalGuesses >= s.rules.GuessLimit*s.requiredPlayers {
		s.status = StatusFinished
		s.broadcast(protocol.Format(protocol.MsgGameOver, s.id, s.secretCode), "")
		log.Printf("💀 会话 %s 猜测耗尽，密码是 %s", s.id, s.secretCode)
		return s.outcome("", ""), nil
	}

	s.currentTurn = (s.currentTurn + 1) % len(s.turnOrder)
	s.broadcastTurnUpdate()
	return nil, nil
}

// outcome 需在持有 s.mu 时调用
func (s *Session) outcome(winnerID, winnerName string) *Outcome {
	out := &Outcome{WinnerID: winnerID, WinnerName: winnerName}
	for _, id := range s.order {
		out.Participants = append(out.Participants, Participant{
			ID:      id,
			Name:    s.members[id].GetName(),
			Guesses: s.guessCount[id],
			Won:     id == winnerID,
		})
	}
	return out
}

// isValidGuess 校验长度与字母表
func (s *Session) isValidGuess(guess string) bool {
	if len(guess) != s.rules.PegCount {
		return false
	}
	for i := 0; i < len(guess); i++ {
		if !strings.ContainsRune(s.rules.Alphabet, rune(guess[i])) {
			return false
		}
	}
	return true
}
