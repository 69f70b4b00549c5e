package main

import (
	"caselaw/internal/version"

	"github.com/spf13/cobra"
)

var (
	// configRootFlag points at the directory holding .caselaw/config.json
	// and the optional .env file.
	configRootFlag string
	logLevelFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "caselaw",
	Short: "caselaw - case-law research tools over the CourtListener API",
	Long: `caselaw is a legal research orchestration layer for New York consumer
cases. It searches, ranks, and summarizes court decisions from the
CourtListener API and exposes the research tools over MCP for LLM
clients, or directly from the command line.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("caselaw version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configRootFlag, "config-root", ".",
		"Directory containing .caselaw/config.json and .env")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error (overrides config)")
}
