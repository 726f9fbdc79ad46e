package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/waterscape-project/waterscape/config"
	"github.com/waterscape-project/waterscape/internal/logger"
	"github.com/waterscape-project/waterscape/internal/metrics"
	"github.com/waterscape-project/waterscape/waterscapeerr"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "waterscape",
	Short: "Waterscape CLI - steganographic messaging over zero-width Unicode",
	Long: `Waterscape CLI provides tools for generating agent identities and
hiding or recovering end-to-end encrypted messages inside ordinary
looking cover text.

This tool supports:
- Identity generation (independent or combined signing/exchange keys)
- Pairwise and group message encoding and decoding
- Carrier inspection (visible text, hidden-message detection)`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

func main() {
	// Best-effort: a missing .env is not an error, only a convenience
	// for local key-material paths.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		werr := waterscapeerr.Wrap("command failed", err)
		logger.ErrorMsg(werr.Message, logger.String("code", string(werr.Code)), logger.Error(werr))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a waterscape config file (YAML)")

	// Note: commands are registered in their respective files
	// - keygen.go: keygenCmd
	// - encode.go: encodeCmd
	// - decode.go: decodeCmd
	// - export.go: exportCmd
	// - group.go: groupNewCmd, groupEncodeCmd, groupDecodeCmd
	// - detect.go: visibleTextCmd, hasHiddenCmd
	// - invite.go: groupInviteCmd, groupInviteOpenCmd
	// - contacts.go: contactAddCmd, contactListCmd, contactRemoveCmd
}

// loadConfig loads the CLI's configuration (from --config, falling back
// to defaults plus environment overrides) and applies its Logging and
// Metrics sections to the process.
func loadConfig() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := logger.InfoLevel
	switch cfg.Logging.Level {
	case "debug":
		level = logger.DebugLevel
	case "warn":
		level = logger.WarnLevel
	case "error":
		level = logger.ErrorLevel
	}
	log := logger.NewLogger(os.Stderr, level)
	log.SetPrettyPrint(cfg.Logging.Format == "pretty")
	logger.SetDefaultLogger(log)

	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartServer(cfg.Metrics.Addr); err != nil {
				logger.ErrorMsg("metrics server exited", logger.Error(err))
			}
		}()
	}

	return nil
}
