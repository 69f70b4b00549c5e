package main

import (
	"caselaw/internal/config"
	"caselaw/internal/logging"
	"caselaw/internal/mcp"
	"caselaw/internal/version"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for LLM client integration",
	Long: `Start the Model Context Protocol (MCP) server.

The server communicates over stdio using line-delimited JSON-RPC 2.0 and
exposes the case-law research tools:

  - search_cases_by_problem: search trial-court case law for a legal problem
  - get_case_details: fetch opinions and metadata for one case
  - find_similar_precedents: find well-cited decisions like a reference case
  - analyze_case_outcomes: docket-level disposition statistics
  - get_judge_analysis: a judge's authored-opinion profile
  - validate_citations: verify citation strings against the index
  - get_procedural_requirements: filing requirements and jurisdiction fit
  - track_legal_trends: per-court and per-month activity in a legal area

This command is typically invoked by MCP clients, not directly by users.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configRootFlag)
	if err != nil {
		return err
	}

	// stdout carries the protocol stream; logs must go to stderr, and
	// JSON keeps them machine-collectable.
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	logger := logging.New("json", level)

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}

	server := mcp.NewServer(version.Version, engine, logger)
	if err := server.Start(); err != nil {
		logger.Error("MCP server error", "error", err.Error())
		return err
	}
	return nil
}
