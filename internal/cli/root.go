package cli

import (
	"fmt"
	"net/http"

	"github.com/harun/seslog/internal/config"
	"github.com/harun/seslog/internal/logger"
	"github.com/harun/seslog/internal/observability"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seslog",
	Short: "seslog - session-oriented log files",
	Long: `seslog writes session-scoped log files with a provenance header,
categorized timestamped entries, and a duration footer. It can wrap a
command's execution in a session, and list, show, or follow existing
session logs.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.seslog/seslog.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")

	// Version template
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
}

// GetRootCmd returns the root command for testing
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// GetVersion returns the current version
func GetVersion() string {
	return version
}

// setup loads the config and wires the diagnostic logger from it.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	lg, err := logger.New(logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: cfg.Logging.Console,
		Pretty:  cfg.Logging.Pretty,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return cfg, lg, nil
}

// serveMetrics exposes the prometheus endpoint when configured. Used by the
// long-running commands; a no-op when the listen address is empty.
func serveMetrics(cfg *config.Config) {
	if cfg.Metrics.Listen == "" {
		return
	}
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", observability.MetricsHandler())
		if err := http.ListenAndServe(cfg.Metrics.Listen, mux); err != nil {
			log.Error().Err(err).Str("listen", cfg.Metrics.Listen).Msg("Metrics endpoint failed")
		}
	}()
	log.Info().Str("listen", cfg.Metrics.Listen).Msg("Metrics endpoint started")
}
