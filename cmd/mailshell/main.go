package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/weedbox/mailshell"
	"github.com/weedbox/mailshell/internal/config"
	"github.com/weedbox/mailshell/internal/tui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so events go to a file
	eventLog, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	manager, err := mailshell.NewManager(store,
		mailshell.WithLogger(eventLog),
		mailshell.WithSelfAddress(cfg.SelfAddress),
	)
	if err != nil {
		return err
	}
	if err := manager.Load(ctx); err != nil {
		return err
	}

	app := tui.NewAppModel(manager, mailshell.ComposerOptions{
		MaxFiles:        cfg.Composer.MaxFiles,
		MaxSize:         cfg.Composer.MaxSizeBytes,
		SuggestionDelay: cfg.Composer.SuggestionDelay,
	})
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (mailshell.MessageStore, error) {
	var seed []mailshell.Message
	if cfg.Store.Seed {
		seed = mailshell.SampleMessages()
	}

	switch cfg.Store.Driver {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		db, err := gorm.Open(sqlite.Open(cfg.Store.Path), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("opening database %s: %w", cfg.Store.Path, err)
		}
		store, err := mailshell.NewGormMessageStore(db)
		if err != nil {
			return nil, err
		}
		if err := store.Seed(ctx, seed); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return mailshell.NewMemoryMessageStore(seed...), nil
	}
}

func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return log.New(f, "mailshell ", log.LstdFlags), func() { f.Close() }, nil
}
