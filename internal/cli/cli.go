package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/lexis"
	"github.com/happyhackingspace/lexis/corpus"
	"github.com/happyhackingspace/lexis/internal/config"
	"github.com/happyhackingspace/lexis/internal/dataset"
	"github.com/happyhackingspace/lexis/internal/storage"
)

// CLI encapsulates the command-line interface with its dependencies.
type CLI struct {
	version     string
	verbose     bool
	silent      bool
	configPath  string
	initialized bool
	cfg         *config.Config
	stdout      io.Writer
	stderr      io.Writer
	rootCmd     *cobra.Command
}

// New creates a new CLI instance with the given version string.
func New(version string) *CLI {
	c := &CLI{version: version, stdout: os.Stdout, stderr: os.Stderr}
	c.setupCommands()
	return c
}

// setupCommands initializes all CLI commands and their configurations.
func (c *CLI) setupCommands() {
	c.rootCmd = &cobra.Command{
		Use:          "lexis",
		Short:        "Word frequency, mutual information and chi-squared scores per document category",
		Version:      c.version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initApp()
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	c.rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose/debug output")
	c.rootCmd.PersistentFlags().BoolVarP(&c.silent, "silent", "s", false, "Suppress all logging")
	c.rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to config file (default: ~/.config/lexis/config.toml or ./lexis.toml)")

	c.rootCmd.AddCommand(c.newScoreCommand())
	c.rootCmd.AddCommand(c.newCategoriesCommand())
	c.rootCmd.AddCommand(c.newDataCommand())
	c.rootCmd.AddCommand(c.newServeCommand())
	c.rootCmd.AddCommand(c.newUpCommand())
}

// Run executes the CLI and returns any error.
func (c *CLI) Run() error {
	return c.rootCmd.Execute()
}

// initApp loads configuration and initializes logging.
func (c *CLI) initApp() error {
	if c.initialized {
		return nil
	}
	c.initialized = true

	cfg, path, exists, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := slog.LevelInfo
	_ = level.UnmarshalText([]byte(cfg.Logging.Level))
	if c.verbose {
		level = slog.LevelDebug
	}
	if c.silent {
		level = slog.Level(100)
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(c.stderr, opts)
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(c.stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Configuration loaded", "path", path, "exists", exists)
	return nil
}

// analyzerOptions returns the analyzer options derived from configuration.
func (c *CLI) analyzerOptions() []lexis.Option {
	return []lexis.Option{
		lexis.WithMinDF(c.cfg.Score.MinDF),
		lexis.WithDefaultTopK(c.cfg.Score.TopK),
	}
}

// openSource returns the document source for a command. A non-empty dir
// overrides the configured categories. The returned function releases the
// dataset store, if one was opened.
func (c *CLI) openSource(dir string) (corpus.Source, func(), error) {
	if dir != "" {
		path, err := config.ExpandPath(dir)
		if err != nil {
			return nil, nil, err
		}
		return corpus.NewDirSource(path), func() {}, nil
	}
	if !c.cfg.NeedsDataset() {
		return c.cfg.Source(nil), func() {}, nil
	}
	fetcher, closeStore, err := c.openFetcher()
	if err != nil {
		return nil, nil, err
	}
	return c.cfg.Source(fetcher), closeStore, nil
}

func (c *CLI) openFetcher() (*dataset.Fetcher, func(), error) {
	store, err := storage.Open(c.cfg.StorePath())
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("Document store opened", "path", store.Path())
	return c.cfg.NewFetcher(store), func() { _ = store.Close() }, nil
}

func (c *CLI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.stdout, format, args...)
}
