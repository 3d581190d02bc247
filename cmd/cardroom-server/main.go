package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"cardroom/internal/bot"
	"cardroom/internal/server"
)

var CLI struct {
	Config   string `short:"c" long:"config" default:"cardroom.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" long:"addr" help:"Server address to bind to (overrides config)"`
	LogLevel string `short:"l" long:"log-level" help:"Log level (overrides config)"`
	Seed     int64  `long:"seed" help:"Seed for deterministic shuffles (0 uses the clock)"`
}

func main() {
	kctx := kong.Parse(&CLI)

	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		kctx.Exit(1)
	}

	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}

	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	addr := cfg.Addr()
	if CLI.Addr != "" {
		addr = CLI.Addr
	}

	seed := CLI.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := server.NewGameManager(ctx, logger, quartz.NewReal(), seed)

	for _, gb := range cfg.Games {
		difficulty, err := bot.ParseDifficulty(gb.BotDifficulty)
		if err != nil {
			logger.Error("invalid bot difficulty", "game", gb.Name, "err", err)
			kctx.Exit(1)
		}
		g, err := manager.CreateGame(gb.GameConfig(), gb.Bots, difficulty)
		if err != nil {
			logger.Error("failed to create game", "game", gb.Name, "err", err)
			kctx.Exit(1)
		}
		logger.Info("game ready",
			"game_id", g.ID(),
			"name", gb.Name,
			"stakes", fmt.Sprintf("%d/%d", gb.SmallBlind, gb.BigBlind),
			"bots", gb.Bots)
	}

	srv := server.NewServer(addr, manager, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig)
		srv.Stop()
		cancel()
		os.Exit(0)
	}()

	logger.Info("starting card room", "addr", addr, "games", len(cfg.Games))
	if err := srv.Start(); err != nil {
		logger.Error("server error", "err", err)
		kctx.Exit(1)
	}
}
