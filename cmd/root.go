package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsdeck/internal/app"
	"github.com/matheuskafuri/newsdeck/internal/classify"
	"github.com/matheuskafuri/newsdeck/internal/config"
	"github.com/matheuskafuri/newsdeck/internal/extract"
	"github.com/matheuskafuri/newsdeck/internal/feed"
	"github.com/matheuskafuri/newsdeck/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig   string
	flagForce    bool
	flagLimit    int
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "newsdeck",
	Short: "Personalized news feed aggregator",
	Long:  "newsdeck aggregates news for your subscribed topics from multiple sources into one deduplicated, chronological feed.",
	RunE:  runFeed,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&flagForce, "force", false, "refresh even inside the throttle window")
	rootCmd.Flags().IntVar(&flagLimit, "limit", 30, "max items to display")

	rootCmd.AddCommand(topicCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newsdeck %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func newLogger() *slog.Logger {
	lvl := new(slog.LevelVar)
	switch strings.ToLower(flagLogLevel) {
	case "debug":
		lvl.Set(slog.LevelDebug)
	case "info":
		lvl.Set(slog.LevelInfo)
	case "error":
		lvl.Set(slog.LevelError)
	default:
		lvl.Set(slog.LevelWarn)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// openApp builds the service object from config and the on-disk store.
// The caller must Close the returned store.
func openApp() (*app.App, *store.DB, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(config.StorePath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}

	log := newLogger()

	var providers []feed.Provider
	for _, p := range cfg.EnabledProviders() {
		switch p.Type {
		case "json":
			providers = append(providers, feed.NewJSONProvider(p.Name, p.URL))
		default:
			providers = append(providers, feed.NewRSSProvider(p.Name, p.URL))
		}
	}

	a := app.New(app.Options{
		KV:            db,
		Providers:     providers,
		Classifier:    classify.Keyword{},
		Sink:          &terminalSink{},
		Extractor:     extract.Readability{},
		Logger:        log,
		Interval:      cfg.RefreshDuration(),
		PerTopicLimit: cfg.GetPerTopicLimit(),
		NotifyWindow:  cfg.NotifyWindowDuration(),
		NotifyCap:     cfg.GetNotifyCap(),
		ExtractTTL:    cfg.ExtractTTLDuration(),
		ExtractMax:    cfg.GetExtractMax(),
	})
	return a, db, nil
}
