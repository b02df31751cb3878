// Command hackerstories searches Hacker News from the terminal.
//
// Usage:
//
//	hackerstories                  Interactive search (TUI)
//	hackerstories search <term>    Print results
//	hackerstories history          Recent searches
//	hackerstories export <term>    Write results as Atom, RSS or JSON Feed
//	hackerstories config           Show or initialize the config file
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/abelbrown/hackerstories/internal/app"
	"github.com/abelbrown/hackerstories/internal/config"
	"github.com/abelbrown/hackerstories/internal/coord"
	"github.com/abelbrown/hackerstories/internal/fetch"
	"github.com/abelbrown/hackerstories/internal/logging"
	"github.com/abelbrown/hackerstories/internal/search"
	"github.com/abelbrown/hackerstories/internal/stories"
	"github.com/abelbrown/hackerstories/internal/store"
	"github.com/abelbrown/hackerstories/internal/ui"
)

var (
	// Global flags
	configPath  string
	apiBase     string
	dbPath      string
	logLevel    string
	noAltScreen bool

	// cfg is loaded once per invocation by the root pre-run hook.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "hackerstories",
	Short: "Search Hacker News from the terminal",
	Long: `hackerstories searches Hacker News through the Algolia API.

Run without arguments to start the interactive search. The last search term
is remembered between runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("api-base") {
			cfg.API.Base = apiBase
		}
		if flags.Changed("db") {
			cfg.DBPath = dbPath
		}
		if flags.Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		if noAltScreen {
			cfg.UI.AltScreen = false
		}
		return nil
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.hackerstories/config.json)")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api-base", "", "Search API base URL")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&noAltScreen, "no-alt-screen", false, "Render inline instead of the alternate screen")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// deps bundles what every command needs to run a search.
type deps struct {
	store       *store.Store
	endpoint    search.Endpoint
	coordinator *coord.Coordinator
}

func openDeps(cfg *config.Config) (*deps, error) {
	st, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	fetcher := fetch.NewFetcher(cfg.API.Timeout.Std(), cfg.API.RequestsPerSecond)
	return &deps{
		store:       st,
		endpoint:    search.NewEndpoint(cfg.API.Base),
		coordinator: coord.NewCoordinator(st, fetcher),
	}, nil
}

func (d *deps) Close() {
	if err := d.store.Close(); err != nil {
		logging.Warn("close store", "error", err)
	}
}

// initCLILogging sends logs to stderr for the non-interactive commands.
func initCLILogging() {
	logging.InitWriter(os.Stderr, cfg.Log.Level)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The terminal belongs to the TUI, so logs go to a file.
	if err := logging.Init(cfg.LogDir(), cfg.Log.Level); err != nil {
		return err
	}
	defer logging.Close()

	d, err := openDeps(cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	s, effects, err := app.Start(d.store, d.endpoint, cfg.DefaultTerm)
	if err != nil {
		return err
	}
	if key, ok := stories.ParseSortKey(cfg.UI.DefaultSort); ok && key != stories.SortNone {
		if s, _, err = s.Update(app.SortSelected{Key: key}); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model := ui.NewApp(ui.AppConfig{
		Session: s,
		Initial: effects,
		RunEffects: func(effects []app.Effect) tea.Cmd {
			return d.coordinator.Cmd(ctx, effects)
		},
	})

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	opts = append(opts, tea.WithContext(ctx))

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		logging.Error("program exited with error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
