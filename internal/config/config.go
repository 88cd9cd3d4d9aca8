package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig 监听配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	WSPort         int    `yaml:"ws_port"`         // 0 表示不开启 WebSocket 网关
	MaxConnections int    `yaml:"max_connections"` // 并发连接上限
}

// RedisConfig Redis 配置（仅用于统计/排行榜）
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	PegCount   int      `yaml:"peg_count"`   // 密码长度
	GuessLimit int      `yaml:"guess_limit"` // 每名玩家的猜测上限
	Colors     []string `yaml:"colors"`      // 颜色字母表
}

// Alphabet 返回拼接后的颜色字母表
func (c *GameConfig) Alphabet() string {
	return strings.Join(c.Colors, "")
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxConnections == 0 {
		cfg.Server.MaxConnections = 256
	}
	if cfg.Game.PegCount == 0 {
		cfg.Game.PegCount = 4
	}
	if cfg.Game.GuessLimit == 0 {
		cfg.Game.GuessLimit = 12
	}
	if len(cfg.Game.Colors) == 0 {
		// B=Blue G=Green O=Orange P=Purple R=Red Y=Yellow
		cfg.Game.Colors = []string{"B", "G", "O", "P", "R", "Y"}
	}
}
