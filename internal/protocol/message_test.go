package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		line        string
		wantCmd     Command
		wantPayload string
		wantOK      bool
	}{
		{"bare command", "GET_GAMES", CmdGetGames, "", true},
		{"command with payload", "CONNECT:Alice", CmdConnect, "Alice", true},
		{"payload keeps its colons", "GUESS:g1:BGRP", CmdGuess, "g1:BGRP", true},
		{"chat body with colons", "CHAT:g1:look: a colon", CmdChat, "g1:look: a colon", true},
		{"unknown command", "FROBNICATE:x", "", "x", false},
		{"empty line", "", "", "", false},
		{"lowercase is not a command", "connect:Alice", "", "Alice", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, payload, ok := ParseLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPayload, payload)
			if tt.wantOK {
				assert.Equal(t, tt.wantCmd, cmd)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GAME_CREATED", Format(MsgGameCreated))
	assert.Equal(t, "CONNECTED:p1", Format(MsgConnected, "p1"))
	assert.Equal(t, "GUESS_RESULT:g1:Alice:3:BGRP:2:1", Format(MsgGuessResult, "g1", "Alice", "3", "BGRP", "2", "1"))
}

func TestSplitPayload(t *testing.T) {
	t.Parallel()

	// The tail segment keeps any remaining colons intact
	assert.Equal(t, []string{"g1", "hello: world"}, SplitPayload("g1:hello: world", 2))
	assert.Equal(t, []string{"Trial", "2"}, SplitPayload("Trial:2", 2))
	assert.Equal(t, []string{"solo"}, SplitPayload("solo", 2))
}

func TestEncodeGameList(t *testing.T) {
	t.Parallel()

	// Nil and empty both render as an empty JSON array
	assert.Equal(t, "[]", EncodeGameList(nil))
	assert.Equal(t, "[]", EncodeGameList([]GameListItem{}))

	got := EncodeGameList([]GameListItem{{
		ID: "g1", Name: "Trial", Players: 1, MaxPlayers: 2, Status: "Waiting",
	}})
	assert.JSONEq(t, `[{"id":"g1","name":"Trial","players":1,"maxPlayers":2,"status":"Waiting"}]`, got)
}
