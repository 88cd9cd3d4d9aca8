package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 0, cfg.Server.WSPort)
	assert.Equal(t, 256, cfg.Server.MaxConnections)
	assert.Equal(t, 4, cfg.Game.PegCount)
	assert.Equal(t, 12, cfg.Game.GuessLimit)
	assert.Equal(t, "BGOPRY", cfg.Game.Alphabet())
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	content := `
server:
  host: 127.0.0.1
  port: 9090
  ws_port: 9091
redis:
  addr: localhost:6379
game:
  peg_count: 5
  colors: [A, B, C]
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 9091, cfg.Server.WSPort)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.Game.PegCount)
	assert.Equal(t, "ABC", cfg.Game.Alphabet())

	// Omitted fields fall back to defaults
	assert.Equal(t, 256, cfg.Server.MaxConnections)
	assert.Equal(t, 12, cfg.Game.GuessLimit)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load("does/not/exist.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
