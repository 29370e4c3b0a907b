package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/kevinzwang/randy/internal/config"
	"github.com/kevinzwang/randy/internal/database"
	"github.com/kevinzwang/randy/internal/game"
	"github.com/kevinzwang/randy/internal/openrouter"
	"github.com/kevinzwang/randy/internal/session"
	"github.com/kevinzwang/randy/internal/tui"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	model      string
	apiKey     string
	configPath string
	logFile    string
	seed       uint64
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "randy",
		Short:         "Guess a number and let a cowboy tell you how you did",
		Version:       tui.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.model, "model", "m", "", "OpenRouter model identifier (env "+config.EnvModel+")")
	cmd.Flags().StringVar(&f.apiKey, "api-key", "", "OpenRouter API key (env "+config.EnvAPIKey+")")
	cmd.Flags().StringVar(&f.configPath, "config", "", "path to config.toml")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "write logs to this file")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for the random draw (0 seeds from the clock)")

	return cmd
}

func run(cmd *cobra.Command, f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(os.Getenv)

	// Flags win over file and environment
	if cmd.Flags().Changed("model") {
		cfg.Model = f.model
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = f.apiKey
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = f.seed
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	// Rounds are kept for the lifetime of the process only
	db, err := database.OpenMemory()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	client := openrouter.NewClient(cfg.APIKey).
		WithBaseURL(cfg.BaseURL).
		WithTimeout(cfg.Timeout.Duration).
		WithLogger(logger).
		WithUserAgent("randy/" + tui.Version)

	logger.Info("starting", "version", tui.Version, "model", cfg.Model, "seed", seed, "max_attempts", cfg.MaxAttempts)

	model := tui.NewModel(tui.Options{
		Remote: client,
		Ledger: session.NewService(db),
		Logger: logger,
		Model:  cfg.Model,
		Seed:   seed,
		Retry:  game.NewRetryPolicy(cfg.MaxAttempts, cfg.RetryPerSecond),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if err := finalModel.(*tui.Model).Err(); err != nil {
		return errors.New(openrouter.Describe(err))
	}
	return nil
}

// newLogger returns a file logger when a log file is configured. The TUI owns
// the terminal, so otherwise logs are discarded.
func newLogger(cfg *config.Config) (*log.Logger, func(), error) {
	if cfg.LogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level, _ := log.ParseLevel(cfg.LogLevel)
	logger := log.NewWithOptions(f, log.Options{
		Prefix:          "randy",
		Level:           level,
		ReportTimestamp: true,
	})
	return logger, func() { f.Close() }, nil
}
