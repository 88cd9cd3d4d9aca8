package protocol

import "encoding/json"

// GameListItem 游戏列表条目，GAME_LIST 的 JSON 载荷
type GameListItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Status     string `json:"status"`
}

// EncodeGameList 序列化游戏列表，空列表输出 []
func EncodeGameList(items []GameListItem) string {
	if items == nil {
		items = []GameListItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}
