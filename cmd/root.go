package cmd

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/dotcommander/aeoscore/internal/config"
	"github.com/dotcommander/aeoscore/internal/evidence"
	"github.com/dotcommander/aeoscore/internal/kv"
	"github.com/dotcommander/aeoscore/internal/logging"
	"github.com/dotcommander/aeoscore/internal/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
	logLevel     string
)

// exitFunc is swapped out by tests.
var exitFunc = os.Exit

var rootCmd = &cobra.Command{
	Use:   "aeoscore",
	Short: "AEO Score - content structure, brand and URL scoring with evidence history",
	Long: `aeoscore scores a page's markup for answer-engine readiness.

It measures content structure, brand presence and URL structure, combines
them into a reliability verdict, explains what keeps the verdict from going
higher and diffs each analysis against the previous snapshot.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitFunc(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format for reports (console|compact|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file for reports (json and markdown only)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")

	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("logLevel", rootCmd.PersistentFlags().Lookup("log-level"))
}

// runE prints a command's error as "Error: ..." on stderr and exits 1.
func runE(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := fn(cmd, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	}
}

// loadConfig loads configuration and applies the log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	if err := logging.SetLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// redactPath hides credentials in connection URLs.
func redactPath(path string) string {
	u, err := url.Parse(path)
	if err != nil || u.User == nil {
		return path
	}
	return u.Redacted()
}

// historyDocument maps a --file argument onto the name analyze records the
// document under: its absolute, symlink-resolved path. Pseudo names such as
// "<text>" select the base history; missing files fall back to the absolute path.
func historyDocument(file string) string {
	if report.HistoryDocument(file) == "" {
		return ""
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return file
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// openHistory opens the configured kv backend and wraps it in an evidence store.
func openHistory(cfg *config.Config) (*evidence.Store, func(), error) {
	backend, err := kv.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening %s store: %w", cfg.Store.Backend, err)
	}
	logging.Log.WithFields(logrus.Fields{
		"backend": cfg.Store.Backend,
		"path":    redactPath(cfg.Store.Path),
	}).Debug("opened history store")

	closeFn := func() {
		if err := backend.Close(); err != nil {
			logging.Log.WithError(err).Warn("closing history store")
		}
	}
	return evidence.NewStore(backend, cfg.Store.Key, logging.Log), closeFn, nil
}
