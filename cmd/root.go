// Package cmd wires the wordsearch command line: `serve` runs the HTTP backend,
// `gen` prints or exports a single puzzle.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsearch/internal/config"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "wordsearch",
	Short:         "Word-search puzzle generator and game server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "TOML config file (default: $CONFIG_FILE)")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("wordsearch")
		os.Exit(1)
	}
}

// loadConfig reads the layered config and applies its log level.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return cfg, err
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, keeping default")
	}
	return cfg, nil
}
