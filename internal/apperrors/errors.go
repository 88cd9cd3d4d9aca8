package apperrors

// GameError 游戏错误，Reason 原样作为 ERROR:<reason> 回复给客户端
type GameError struct {
	Reason string
}

func (e *GameError) Error() string {
	return e.Reason
}

// 预定义错误
var (
	ErrUnknownCommand   = &GameError{Reason: "Unknown command"}
	ErrNotConnected     = &GameError{Reason: "Not connected"}
	ErrAlreadyConnected = &GameError{Reason: "Already connected"}
	ErrInvalidCreate    = &GameError{Reason: "Invalid CREATE_GAME format"}
	ErrInvalidCount     = &GameError{Reason: "Invalid player count"}
	ErrInvalidGuessData = &GameError{Reason: "Invalid GUESS format"}
	ErrInvalidChatData  = &GameError{Reason: "Invalid CHAT format"}
	ErrSessionNotFound  = &GameError{Reason: "Session not found"}
	ErrJoinFailed       = &GameError{Reason: "Failed to join game"}
	ErrGameNotStarted   = &GameError{Reason: "Game has not started."}
	ErrNotYourTurn      = &GameError{Reason: "It's not your turn."}
	ErrInvalidGuess     = &GameError{Reason: "Invalid guess format."}
	ErrStatsUnavailable = &GameError{Reason: "Stats unavailable"}
	ErrChatRateLimited  = &GameError{Reason: "Chat rate limit exceeded"}
)
