package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"council/cmd/council/tui"
	"council/internal/api"
	"council/internal/config"
	"council/internal/discover"
)

var (
	// Global flags
	serverFlag string
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "council",
	Short: "council - terminal client for the Council question pipeline",
	Long: `council is a terminal client for the Council exam question pipeline.

It manages subjects, syllabus structure, and course materials, launches
multi-agent question generation jobs, walks faculty through vetting the
results, and tracks skill training and benchmarks.

Run without arguments to start the interactive dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else if lvl, perr := zapcore.ParseLevel(cfg.Logging.Level); perr == nil {
			zapCfg.Level = zap.NewAtomicLevelAt(lvl)
		}
		if cfg.Logging.File != "" {
			zapCfg.OutputPaths = []string{cfg.Logging.File}
		} else if cmd.CalledAs() == "council" {
			// The dashboard owns the terminal; keep zap off stderr.
			zapCfg.OutputPaths = []string{}
		}
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		baseURL, source := discover.Resolve(serverFlag, cfg.Discovery.MetadataPath, cfg.Server)
		logger.Debug("resolved server", zap.String("url", baseURL), zap.String("source", source))

		client = api.New(baseURL,
			api.WithTimeout(cfg.RequestTimeout()),
			api.WithLogger(logger),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

// runDashboard launches the interactive TUI, wiring in the dev-server
// metadata watcher when discovery is enabled.
func runDashboard() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := []tui.Option{}
	var watcher *discover.Watcher
	if cfg.Discovery.Enabled && cfg.Discovery.MetadataPath != "" {
		w, err := discover.NewWatcher(cfg.Discovery.MetadataPath, logger)
		if err != nil {
			logger.Warn("discovery watcher unavailable", zap.Error(err))
		} else if err := w.Start(ctx); err != nil {
			logger.Warn("discovery watcher failed to start", zap.Error(err))
		} else {
			watcher = w
			opts = append(opts, tui.WithWatcher(w))
		}
	}

	model := tui.New(client, cfg, logger, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()

	cancel()
	if watcher != nil {
		watcher.Wait()
	}
	if err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

// cmdContext returns a signal-aware context for one-shot commands.
func cmdContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "backend base URL (overrides discovery and config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
