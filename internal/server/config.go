package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"cardroom/internal/bot"
	"cardroom/internal/game"
)

// Config is the complete server configuration: one server block and any
// number of game blocks that are created at startup.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Games  []GameBlock    `hcl:"game,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameBlock pre-creates a table at startup, optionally seeded with
// bots so human players always find a live game.
type GameBlock struct {
	Name           string `hcl:"name,label"`
	Variant        string `hcl:"variant,optional"`
	SmallBlind     int    `hcl:"small_blind"`
	BigBlind       int    `hcl:"big_blind"`
	MaxPlayers     int    `hcl:"max_players,optional"`
	MinBuyIn       int    `hcl:"min_buy_in,optional"`
	MaxBuyIn       int    `hcl:"max_buy_in,optional"`
	Bots           int    `hcl:"bots,optional"`
	BotDifficulty  string `hcl:"bot_difficulty,optional"`
	ActionTimeout  int    `hcl:"action_timeout_seconds,optional"`
}

// DefaultConfig returns the configuration used when no file exists: a
// single no-limit table with three medium bots.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Games: []GameBlock{
			{
				Name:          "main",
				Variant:       string(game.NoLimit),
				SmallBlind:    10,
				BigBlind:      20,
				Bots:          3,
				BotDifficulty: string(bot.Medium),
			},
		},
	}
}

// LoadConfig reads an HCL configuration file. A missing file yields the
// defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config: %s", diags.Error())
	}

	var config Config
	if diags = gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	for i := range c.Games {
		if c.Games[i].Variant == "" {
			c.Games[i].Variant = string(game.NoLimit)
		}
		if c.Games[i].BotDifficulty == "" {
			c.Games[i].BotDifficulty = string(bot.Medium)
		}
	}
}

// Validate checks every game block against the engine's limits.
func (c *Config) Validate() error {
	for _, gb := range c.Games {
		cfg := gb.GameConfig()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("game %q: %w", gb.Name, err)
		}
		if _, err := bot.ParseDifficulty(gb.BotDifficulty); err != nil {
			return fmt.Errorf("game %q: %w", gb.Name, err)
		}
		if gb.Bots < 0 || gb.Bots > cfg.MaxPlayers {
			return fmt.Errorf("game %q: bot count %d exceeds %d seats", gb.Name, gb.Bots, cfg.MaxPlayers)
		}
	}
	return nil
}

// GameConfig translates a block into engine settings with defaults
// applied.
func (gb GameBlock) GameConfig() game.Config {
	cfg := game.Config{
		Variant:       game.Variant(gb.Variant),
		SmallBlind:    gb.SmallBlind,
		BigBlind:      gb.BigBlind,
		MaxPlayers:    gb.MaxPlayers,
		MinBuyIn:      gb.MinBuyIn,
		MaxBuyIn:      gb.MaxBuyIn,
		ActionTimeout: time.Duration(gb.ActionTimeout) * time.Second,
	}
	cfg.ApplyDefaults()
	return cfg
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
