// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"nowgrab/internal/config"
	"nowgrab/internal/extractor"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagDownload bool
	flagOutput   string
	flagQuality  string
	flagSelect   bool
	flagJSON     bool
	flagDebug    bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "nowgrab <url>",
	Short: "Fetch video metadata and downloads from NowTV watch pages",
	Long: `Nowgrab resolves a NowTV watch-page URL into video metadata and its
candidate RTMP stream renditions. Print the metadata, list the renditions,
or hand the best one to rtmpdump for download.`,
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              extractRun,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagDownload, "download", "d", false, "Download the selected rendition with rtmpdump")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Download directory (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagQuality, "quality", "q", "", "Rendition quality: best | worst | bitrate in kbit/s")
	rootCmd.PersistentFlags().BoolVarP(&flagSelect, "select", "s", false, "Pick the rendition interactively via fzf")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output extracted metadata as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI
// flags, then registers the configured extractors.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagQuality != "" {
		cfg.Quality = flagQuality
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.SetOutput(os.Stderr)
	if cfg.Debug {
		log.SetPrefix("[nowgrab] ")
	} else {
		log.SetFlags(0)
	}

	extractor.Register(extractor.NewNowTV(cfg.APIBase, nil))

	return nil
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		log.Printf(format, args...)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("nowgrab", Version)
	},
}
