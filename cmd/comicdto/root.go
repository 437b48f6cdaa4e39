package cmd

import (
	"os"

	"github.com/kerbaras/comicdto/pkg/config"
	"github.com/kerbaras/comicdto/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	log        = logger.New("info", nil)
)

var rootCmd = &cobra.Command{
	Use:          "comicdto",
	Short:        "Inspect comic downloader payloads as typed records",
	Long:         "Hydrate backend payloads into typed comic, chapter, user and download records, and manage the downloader config file",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logger.New(getConfigValue(logLevel, "COMICDTO_LOG_LEVEL", "info"), cmd.ErrOrStderr())
		configPath = getConfigValue(configPath, "COMICDTO_CONFIG", config.DefaultPath)
		log.WithFields(logrus.Fields{"command": cmd.Name(), "config": configPath}).Debug("Starting")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json (env COMICDTO_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (env COMICDTO_LOG_LEVEL)")
}

// getConfigValue picks the flag value, then the environment, then def.
func getConfigValue(flagValue, envKey, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return def
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
