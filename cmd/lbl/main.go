package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/lbl/internal/config"
	"github.com/nikbrunner/lbl/internal/labeler"
	"github.com/nikbrunner/lbl/internal/logging"
	"github.com/nikbrunner/lbl/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	version = "dev"

	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	logger  = zap.NewNop()

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"})
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"})
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"})

	rootCmd = &cobra.Command{
		Use:   "lbl",
		Short: "Sort images into category folders from the terminal",
		Long: `lbl walks through the images of a source directory one at a time and
copies each into <output>/<category>/ with a single key press.

Existing copies in the output directory are picked up on start, so a
session can be resumed at any time.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
		RunE: runTUI,
	}
)

func init() {
	v = config.NewViper()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/lbl/config.yaml)")
	flags.StringP("source", "s", "", "directory with the images to label")
	flags.StringP("output", "o", "", "directory receiving one sub-directory per category")
	flags.StringSliceP("categories", "c", nil, "category names, comma separated")
	flags.Bool("mkdir", false, "create the output directory if it does not exist")
	flags.String("journal", "", "journal database path, empty to disable")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "log destination: stderr, stdout or a file path")

	rootCmd.Flags().Int("start", 0, "index of the first image to show (0-based)")
	rootCmd.Flags().Bool("resume", false, "start at the position saved when lbl last quit")
	rootCmd.Flags().Bool("auto-advance", true, "move to the next image after classifying")

	bind := map[string]string{
		"source":        "source",
		"output":        "output",
		"categories":    "categories",
		"create_output": "mkdir",
		"journal":       "journal",
		"log.level":     "log-level",
		"log.file":      "log-file",
	}
	for key, flag := range bind {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
	_ = v.BindPFlag("start_index", rootCmd.Flags().Lookup("start"))
	_ = v.BindPFlag("resume", rootCmd.Flags().Lookup("resume"))
	_ = v.BindPFlag("auto_advance", rootCmd.Flags().Lookup("auto-advance"))

	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(verifyCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initConfig loads the config file, environment and flags into cfg and builds the logger.
func initConfig(_ *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		defaultPath, err := config.DefaultConfigFilePath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = defaultPath
	}

	loaded, err := config.Load(v, path)
	if err != nil {
		return err
	}
	if err := loaded.ResolvePaths(); err != nil {
		return fmt.Errorf("failed to resolve paths: %w", err)
	}
	cfg = loaded

	l, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	logger = l
	logger.Debug("config loaded", zap.String("path", path), zap.Any("config", cfg))

	return nil
}

// openSession opens a labeling session for c.
func openSession(c *config.Config, journal storage.Journal) (*labeler.Session, error) {
	return labeler.Open(labeler.Params{
		SourceDir:    c.Source,
		OutputDir:    c.Output,
		Categories:   c.Categories,
		StartIndex:   c.StartIndex,
		Resume:       c.Resume,
		CreateOutput: c.CreateOutput,
		Journal:      journal,
		Logger:       logger,
	})
}

// requireSession validates cfg and opens a session without a journal,
// for the non-interactive subcommands.
func requireSession() (*labeler.Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return openSession(cfg, storage.NopJournal{})
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "lbl", version)
		},
	}
}
