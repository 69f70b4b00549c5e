package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"caselaw/internal/config"
	"caselaw/internal/research"
)

var (
	searchCaseTypeFlag  string
	searchDateRangeFlag string
	searchLimitFlag     int
	searchJSONFlag      bool
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword>...",
	Short: "Search case law for a legal problem",
	Long: `Search New York trial-court case law for decisions matching the given
keywords. The same query, ranking, and truncation rules apply as for the
MCP search_cases_by_problem tool.

Examples:
  caselaw search "breach of warranty" "defective product"
  caselaw search --case-type landlord_tenant "security deposit"
  caselaw search --date-range all-time --limit 5 "lemon law" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchCaseTypeFlag, "case-type", "",
		"Case category: consumer, small_claims, landlord_tenant, contract")
	searchCmd.Flags().StringVar(&searchDateRangeFlag, "date-range", "recent-2years",
		"Decision date window: recent-2years, established-precedent, all-time")
	searchCmd.Flags().IntVar(&searchLimitFlag, "limit", 10, "Maximum cases to return (1-20)")
	searchCmd.Flags().BoolVar(&searchJSONFlag, "json", false, "Output as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configRootFlag)
	if err != nil {
		return err
	}
	logger := buildLogger(cfg)
	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}

	result, err := engine.SearchCasesByProblem(context.Background(), research.SearchOptions{
		Keywords:  args,
		CaseType:  searchCaseTypeFlag,
		DateRange: searchDateRangeFlag,
		Limit:     searchLimitFlag,
	})
	if err != nil {
		return err
	}

	if searchJSONFlag {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Query: %s\nDate range: %s\nMatched: %d (showing %d)\n\n",
		result.Query, result.DateRange, result.TotalFound, result.Returned)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCASE\tCOURT\tFILED\tCITES\tSCORE\tWEIGHT")
	for _, c := range result.Cases {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			c.ClusterID, c.CaseName, c.Court, c.DateFiled,
			c.CitationCount, c.RelevanceScore, c.PrecedentialValue)
	}
	return w.Flush()
}
