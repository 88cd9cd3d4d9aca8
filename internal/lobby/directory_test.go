package lobby

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/mastermind-online/internal/game"
	"github.com/palemoky/mastermind-online/internal/protocol"
	"github.com/palemoky/mastermind-online/internal/testutil"
)

func newTestDirectory() *Directory {
	rules := game.Rules{PegCount: 4, GuessLimit: 12, Alphabet: "BGOPRY"}
	return NewDirectory(rules, game.NewSeededCodeGenerator(1))
}

func addTestPlayer(d *Directory, id, name string) *testutil.SimpleClient {
	c := &testutil.SimpleClient{ID: id, Name: name}
	d.AddPlayer(id, c)
	return c
}

func TestDirectory_CreateAndJoin(t *testing.T) {
	t.Parallel()
	d := newTestDirectory()
	addTestPlayer(d, "p1", "Alice")
	addTestPlayer(d, "p2", "Bob")

	gameID := d.CreateGame("Trial", 2, "p1")
	assert.NotEmpty(t, gameID)

	// The creator is not a member until an explicit join
	session := d.GetSession(gameID)
	require.NotNil(t, session)
	assert.Equal(t, 0, session.PlayerCount())

	assert.True(t, d.JoinGame(gameID, "p1"))
	assert.True(t, d.JoinGame(gameID, "p2"))
	assert.Equal(t, []string{"p1", "p2"}, session.PlayerIDs())

	// A player can be in at most one session
	otherID := d.CreateGame("Other", 2, "p1")
	assert.False(t, d.JoinGame(otherID, "p1"))
}

func TestDirectory_JoinGame_Failures(t *testing.T) {
	t.Parallel()
	d := newTestDirectory()
	addTestPlayer(d, "p1", "Alice")

	// Unknown session and unknown player
	assert.False(t, d.JoinGame("nope", "p1"))
	gameID := d.CreateGame("Trial", 1, "p1")
	assert.False(t, d.JoinGame(gameID, "ghost"))

	// Full session
	assert.True(t, d.JoinGame(gameID, "p1"))
	addTestPlayer(d, "p2", "Bob")
	assert.False(t, d.JoinGame(gameID, "p2"))
}

func TestDirectory_LeaveGame(t *testing.T) {
	t.Parallel()
	d := newTestDirectory()
	addTestPlayer(d, "p1", "Alice")
	p2 := addTestPlayer(d, "p2", "Bob")

	gameID := d.CreateGame("Trial", 3, "p1")
	require.True(t, d.JoinGame(gameID, "p1"))
	require.True(t, d.JoinGame(gameID, "p2"))

	assert.False(t, d.LeaveGame("nope", "p1", "Alice"))

	assert.True(t, d.LeaveGame(gameID, "p1", "Alice"))
	assert.Equal(t, 1, d.GetSession(gameID).PlayerCount())
	assert.Contains(t, p2.Lines(), "PLAYER_LEFT:"+gameID+":Alice")

	// Leaver can now join something else
	otherID := d.CreateGame("Other", 2, "p1")
	assert.True(t, d.JoinGame(otherID, "p1"))

	// Last member leaving dissolves the session
	assert.True(t, d.LeaveGame(gameID, "p2", "Bob"))
	assert.Nil(t, d.GetSession(gameID))
}

func TestDirectory_RemovePlayer_Cascades(t *testing.T) {
	t.Parallel()
	d := newTestDirectory()
	addTestPlayer(d, "p1", "Alice")
	p2 := addTestPlayer(d, "p2", "Bob")

	gameID := d.CreateGame("Trial", 3, "p1")
	require.True(t, d.JoinGame(gameID, "p1"))
	require.True(t, d.JoinGame(gameID, "p2"))

	// Disconnect cascades into the session and notifies the survivors
	d.RemovePlayer("p1")
	assert.Nil(t, d.GetPlayer("p1"))
	assert.Equal(t, 1, d.GetSession(gameID).PlayerCount())
	assert.Contains(t, p2.Lines(), "PLAYER_LEFT:"+gameID+":Alice")

	// Removing the last member deletes the session
	d.RemovePlayer("p2")
	assert.Nil(t, d.GetSession(gameID))
	assert.Equal(t, 0, d.OnlineCount())

	// Removing an unknown player is a no-op
	d.RemovePlayer("ghost")
}

func TestDirectory_ConcurrentJoins_RespectCapacity(t *testing.T) {
	t.Parallel()
	d := newTestDirectory()

	const players = 10
	for i := 0; i < players; i++ {
		addTestPlayer(d, fmt.Sprintf("p%d", i), fmt.Sprintf("Player%d", i))
	}

	gameID := d.CreateGame("Race", 3, "p0")

	var wg sync.WaitGroup
	admitted := make(chan string, players)
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if d.JoinGame(gameID, id) {
				admitted <- id
			}
		}(fmt.Sprintf("p%d", i))
	}
	wg.Wait()
	close(admitted)

	count := 0
	for range admitted {
		count++
	}
	assert.Equal(t, 3, count)
	assert.Equal(t, 3, d.GetSession(gameID).PlayerCount())
}

func TestDirectory_GameListLine(t *testing.T) {
	t.Parallel()
	d := newTestDirectory()

	// Empty lobby renders an empty JSON array, not null
	assert.Equal(t, "GAME_LIST:[]", d.GameListLine())

	addTestPlayer(d, "p1", "Alice")
	gameID := d.CreateGame("Trial", 2, "p1")
	require.True(t, d.JoinGame(gameID, "p1"))

	line := d.GameListLine()
	require.True(t, strings.HasPrefix(line, "GAME_LIST:"))

	var items []protocol.GameListItem
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "GAME_LIST:")), &items))
	require.Len(t, items, 1)
	assert.Equal(t, gameID, items[0].ID)
	assert.Equal(t, "Trial", items[0].Name)
	assert.Equal(t, 1, items[0].Players)
	assert.Equal(t, 2, items[0].MaxPlayers)
	assert.Equal(t, "Waiting", items[0].Status)
}

func TestDirectory_BroadcastToLobby(t *testing.T) {
	t.Parallel()
	d := newTestDirectory()
	p1 := addTestPlayer(d, "p1", "Alice")
	p2 := addTestPlayer(d, "p2", "Bob")

	d.BroadcastToLobby("GAME_LIST:[]")
	assert.Equal(t, "GAME_LIST:[]", p1.LastLine())
	assert.Equal(t, "GAME_LIST:[]", p2.LastLine())
}
