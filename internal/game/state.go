package game

// Status 会话状态，只能单向推进 Waiting → InProgress → Finished
type Status int

const (
	StatusWaiting Status = iota
	StatusInProgress
	StatusFinished
)

// String 返回对外展示的状态文案，GAME_LIST 里原样使用
func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case StatusFinished:
		return "Finished"
	default:
		return "Waiting"
	}
}

// Rules 一局游戏的规则参数
type Rules struct {
	PegCount   int    // 密码长度
	GuessLimit int    // 每名玩家的猜测上限
	Alphabet   string // 颜色字母表，如 "BGOPRY"
}
