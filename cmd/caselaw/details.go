package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"caselaw/internal/config"
	"caselaw/internal/research"
)

var (
	detailsFullTextFlag bool
	detailsJSONFlag     bool
)

var detailsCmd = &cobra.Command{
	Use:   "details <caseId>",
	Short: "Fetch the full detail of one case",
	Long: `Fetch court, judges, precedential status, and opinion texts for one
case. The id may name a cluster or a docket; a docket without opinions
returns its metadata with an explicit marker.

Examples:
  caselaw details 112331
  caselaw details 112331 --full-text --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDetails,
}

func init() {
	detailsCmd.Flags().BoolVar(&detailsFullTextFlag, "full-text", false,
		"Raise the opinion text cap from 500 to 5000 characters")
	detailsCmd.Flags().BoolVar(&detailsJSONFlag, "json", false, "Output as JSON")
	rootCmd.AddCommand(detailsCmd)
}

func runDetails(cmd *cobra.Command, args []string) error {
	caseID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("caseId must be an integer: %q", args[0])
	}

	cfg, err := config.Load(configRootFlag)
	if err != nil {
		return err
	}
	logger := buildLogger(cfg)
	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}

	result, err := engine.GetCaseDetails(context.Background(), research.DetailOptions{
		CaseID:          caseID,
		IncludeFullText: detailsFullTextFlag,
	})
	if err != nil {
		return err
	}

	if detailsJSONFlag {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s\n", result.CaseName)
	if result.Court != "" {
		fmt.Printf("Court: %s\n", result.Court)
	}
	fmt.Printf("Filed: %s\nCitations: %d (%s)\n",
		result.DateFiled, result.CitationCount, result.LegalSignificance)
	if len(result.Judges) > 0 {
		fmt.Printf("Judges: %s\n", strings.Join(result.Judges, ", "))
	}
	if result.Note != "" {
		fmt.Printf("Note: %s\n", result.Note)
	}
	for _, op := range result.Opinions {
		fmt.Printf("\n--- opinion %d (%s)", op.OpinionID, op.Type)
		if op.Author != "" {
			fmt.Printf(" by %s", op.Author)
		}
		fmt.Printf(" ---\n%s\n", op.Content)
	}
	return nil
}
