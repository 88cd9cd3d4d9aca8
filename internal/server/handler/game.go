package handler

import (
	"context"
	"log"
	"time"

	"github.com/palemoky/mastermind-online/internal/apperrors"
	"github.com/palemoky/mastermind-online/internal/game"
	"github.com/palemoky/mastermind-online/internal/protocol"
	"github.com/palemoky/mastermind-online/internal/types"
)

// handleGuess 处理猜测，payload 格式为 gameId:guess
func (h *Handler) handleGuess(c types.ClientInterface, payload string) {
	parts := protocol.SplitPayload(payload, 2)
	if len(parts) < 2 {
		sendErr(c, apperrors.ErrInvalidGuessData)
		return
	}

	session := h.directory.GetSession(parts[0])
	if session == nil {
		sendErr(c, apperrors.ErrSessionNotFound)
		return
	}

	outcome, err := session.ProcessGuess(c.GetID(), parts[1])
	if err != nil {
		sendErr(c, err)
		return
	}

	if outcome != nil {
		h.recordOutcome(outcome)
	}
}

// recordOutcome 把终局战绩异步写入统计存储
// 统计降级时静默跳过，不影响任何游戏语义
func (h *Handler) recordOutcome(outcome *game.Outcome) {
	if h.leaderboard == nil {
		return
	}

	participants := outcome.Participants
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		for _, p := range participants {
			if err := h.leaderboard.RecordGameResult(ctx, p.ID, p.Name, p.Won, p.Guesses); err != nil {
				log.Printf("记录玩家 %s 战绩失败: %v", p.ID, err)
			}
		}
	}()
}
