package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/focoleve/internal/assistant"
	"github.com/abhisek/focoleve/internal/config"
	"github.com/abhisek/focoleve/internal/llm"
	"github.com/abhisek/focoleve/internal/logging"
	"github.com/abhisek/focoleve/internal/plan"
	"github.com/abhisek/focoleve/internal/store"
)

// env holds what every command needs: configuration, the logger, the store
// and the board loaded from it.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
	board  *plan.Board

	flush func()
}

// openEnv loads configuration, builds the logger, opens the store and loads
// the board. The caller must call close.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}

	logger, flush, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		flush()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		flush()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath), zap.String("config", cfg.File))

	board := plan.NewBoard(st.StateRepo(logger), logger)
	board.Load(cmd.Context())

	return &env{cfg: cfg, logger: logger, store: st, board: board, flush: flush}, nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close store", zap.Error(err))
	}
	e.flush()
}

// newAssistant builds the remote-backed assistant. Without a configured
// provider it falls back to assistant.Offline, so every feature keeps its
// fixed texts.
func (e *env) newAssistant(cmd *cobra.Command) assistant.Assistant {
	provider, err := llm.NewProvider(cmd.Context(), e.cfg.LLM, e.store.EventRepo(), e.logger)
	if err != nil {
		e.logger.Warn("LLM provider not configured", zap.Error(err))
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		return assistant.Offline{}
	}
	e.logger.Info("LLM provider ready", zap.String("provider", e.cfg.LLM.Provider), zap.String("model", provider.ModelID()))
	return assistant.New(provider)
}

// resolveDBPath returns the configured path (--db flag, FOCOLEVE_DB or
// db.path), falling back to the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
