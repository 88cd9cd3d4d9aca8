package handler

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/palemoky/mastermind-online/internal/apperrors"
	"github.com/palemoky/mastermind-online/internal/protocol"
	"github.com/palemoky/mastermind-online/internal/types"
)

const defaultLeaderboardLimit = 10

// handleGetStats 查询个人统计，回复 STATS_RESULT:<json>
func (h *Handler) handleGetStats(c types.ClientInterface, _ string) {
	if h.leaderboard == nil {
		sendErr(c, apperrors.ErrStatsUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	stats, err := h.leaderboard.GetPlayerStats(ctx, c.GetID())
	if err != nil {
		sendErr(c, apperrors.ErrStatsUnavailable)
		return
	}
	if stats == nil {
		c.Send(protocol.Format(protocol.MsgStatsResult, "{}"))
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		sendErr(c, apperrors.ErrStatsUnavailable)
		return
	}
	c.Send(protocol.Format(protocol.MsgStatsResult, string(data)))
}

// handleGetLeaderboard 查询排行榜，payload 可选为条目上限
func (h *Handler) handleGetLeaderboard(c types.ClientInterface, payload string) {
	if h.leaderboard == nil {
		sendErr(c, apperrors.ErrStatsUnavailable)
		return
	}

	limit := defaultLeaderboardLimit
	if v := strings.TrimSpace(payload); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	entries, err := h.leaderboard.GetLeaderboard(ctx, limit)
	if err != nil {
		sendErr(c, apperrors.ErrStatsUnavailable)
		return
	}

	data, err := json.Marshal(entries)
	if err != nil {
		sendErr(c, apperrors.ErrStatsUnavailable)
		return
	}
	c.Send(protocol.Format(protocol.MsgLeaderboardResult, string(data)))
}
