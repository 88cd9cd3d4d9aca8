package protocol

import "strings"

// Command 客户端 → 服务端 命令
type Command string

const (
	CmdHello          Command = "HELLO"           // 协议版本握手
	CmdConnect        Command = "CONNECT"         // 注册玩家
	CmdGetGames       Command = "GET_GAMES"       // 获取游戏列表
	CmdCreateGame     Command = "CREATE_GAME"     // 创建游戏
	CmdJoinGame       Command = "JOIN_GAME"       // 加入游戏
	CmdLeaveGame      Command = "LEAVE_GAME"      // 离开游戏
	CmdGuess          Command = "GUESS"           // 提交猜测
	CmdChat           Command = "CHAT"            // 游戏内聊天
	CmdDisconnect     Command = "DISCONNECT"      // 主动断开
	CmdGetStats       Command = "GET_STATS"       // 获取个人统计
	CmdGetLeaderboard Command = "GET_LEADERBOARD" // 获取排行榜
)

// 服务端 → 客户端 通知类型
const (
	MsgHello             = "HELLO"              // 握手回显
	MsgConnected         = "CONNECTED"          // 注册成功
	MsgGameList          = "GAME_LIST"          // 游戏列表
	MsgGameCreated       = "GAME_CREATED"       // 游戏创建成功
	MsgGameJoined        = "GAME_JOINED"        // 加入成功
	MsgPlayerJoined      = "PLAYER_JOINED"      // 其他玩家加入
	MsgPlayerLeft        = "PLAYER_LEFT"        // 玩家离开
	MsgGameStarted       = "GAME_STARTED"       // 游戏开始
	MsgTurnUpdate        = "TURN_UPDATE"        // 轮次更新
	MsgGuessResult       = "GUESS_RESULT"       // 猜测结果
	MsgGameWon           = "GAME_WON"           // 有人猜中
	MsgGameOver          = "GAME_OVER"          // 游戏结束（公布密码）
	MsgChatMessage       = "CHAT_MESSAGE"       // 聊天消息
	MsgStatsResult       = "STATS_RESULT"       // 个人统计结果
	MsgLeaderboardResult = "LEADERBOARD_RESULT" // 排行榜结果
	MsgError             = "ERROR"              // 错误消息
)

// commands 已知命令集合，解析边界之后只存在类型化的 Command
var commands = map[string]Command{
	string(CmdHello):          CmdHello,
	string(CmdConnect):        CmdConnect,
	string(CmdGetGames):       CmdGetGames,
	string(CmdCreateGame):     CmdCreateGame,
	string(CmdJoinGame):       CmdJoinGame,
	string(CmdLeaveGame):      CmdLeaveGame,
	string(CmdGuess):          CmdGuess,
	string(CmdChat):           CmdChat,
	string(CmdDisconnect):     CmdDisconnect,
	string(CmdGetStats):       CmdGetStats,
	string(CmdGetLeaderboard): CmdGetLeaderboard,
}

// ParseLine 解析一行入站命令，格式为 COMMAND:payload
// payload 内的冒号原样保留（只按第一个冒号切分）
func ParseLine(line string) (Command, string, bool) {
	name, payload, _ := strings.Cut(line, ":")
	cmd, ok := commands[strings.TrimSpace(name)]
	return cmd, payload, ok
}

// Format 拼接一条出站消息：TYPE:field:field:...
func Format(msgType string, fields ...string) string {
	if len(fields) == 0 {
		return msgType
	}
	return msgType + ":" + strings.Join(fields, ":")
}

// SplitPayload 按冒号切分 payload，最多 n 段，尾段保留剩余的冒号
func SplitPayload(payload string, n int) []string {
	return strings.SplitN(payload, ":", n)
}
