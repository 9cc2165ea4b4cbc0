package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fittrack/internal/app"
	"fittrack/internal/config"
	"fittrack/internal/identity"
	"fittrack/internal/session"
	"fittrack/internal/store"
	syncengine "fittrack/internal/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cliApp wires the whole client core together for the duration of one
// command invocation.
type cliApp struct {
	cfg    config.Config
	logger *zap.Logger
	local  *store.LocalStore
	engine *syncengine.Engine
	bridge *session.Bridge
	facade *app.Facade
}

var cli *cliApp

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fittrack",
		Short:         "Offline-first workout tracker",
		Long:          "fittrack logs workouts on-device and syncs them with your account when signed in.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cli, err = initApp(cmd.Context())
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cli != nil {
				cli.close()
			}
		},
	}

	root.AddCommand(
		newSignupCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newGuestCmd(),
		newStatusCmd(),
		newSyncCmd(),
		newProfileCmd(),
		newLogCmd(),
		newExercisesCmd(),
	)
	return root
}

// initApp builds the storage, identity, sync and session layers in
// dependency order. The bridge's startup probe runs before any command so
// reads always see the right scope.
func initApp(ctx context.Context) (*cliApp, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg.Client.DataDir)
	if err != nil {
		return nil, err
	}

	backend, err := store.NewSQLiteBackend(filepath.Join(cfg.Client.DataDir, "fittrack.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	local := store.New(backend, identity.GuestScope, logger)
	resolver := identity.NewResolver(local, logger)

	auth := session.NewHTTPAuthClient(cfg.Client.ServerURL, cfg.Client.DataDir, cfg.Client.RequestTimeout)
	remote := syncengine.NewHTTPRemote(cfg.Client.ServerURL, cfg.Client.RequestTimeout, func() string {
		s, err := auth.CurrentSession(context.Background())
		if err != nil || s == nil {
			return ""
		}
		return s.Token
	})

	engine := syncengine.NewEngine(local, remote, logger)
	bridge := session.NewBridge(auth, resolver, engine, local, logger)
	if err := bridge.Start(ctx); err != nil {
		local.Close()
		return nil, err
	}

	facade := app.NewFacade(local, engine, bridge, logger)

	return &cliApp{
		cfg:    cfg,
		logger: logger,
		local:  local,
		engine: engine,
		bridge: bridge,
		facade: facade,
	}, nil
}

func (a *cliApp) close() {
	a.bridge.Close()
	if err := a.local.Close(); err != nil {
		a.logger.Warn("failed to close local store", zap.Error(err))
	}
	a.logger.Sync()
}

// newLogger writes structured logs to a file in the data dir; the terminal
// stays reserved for command output.
func newLogger(dataDir string) (*zap.Logger, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dataDir, "fittrack.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	return cfg.Build()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
