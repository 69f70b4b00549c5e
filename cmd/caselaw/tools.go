package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"caselaw/internal/mcp"
)

var toolsJSONFlag bool

var toolsCmd = &cobra.Command{
	Use:   "tools [name]",
	Short: "List the MCP research tools",
	Long: `List the research tools exposed over MCP.

Without arguments, shows a one-line summary per tool.
With a tool name, shows its full parameter schema.

Examples:
  caselaw tools
  caselaw tools search_cases_by_problem
  caselaw tools --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTools,
}

func init() {
	toolsCmd.Flags().BoolVar(&toolsJSONFlag, "json", false, "Output as JSON")
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	server := mcp.NewServerForCLI()
	allTools := server.GetToolDefinitions()

	if len(args) > 0 {
		name := args[0]
		for _, tool := range allTools {
			if tool.Name == name {
				return showToolDetails(tool)
			}
		}
		return fmt.Errorf("unknown tool: %s\n\nUse 'caselaw tools' to see available tools", name)
	}

	if toolsJSONFlag {
		data, err := json.MarshalIndent(allTools, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println("Case-law research tools")
	fmt.Println()
	for _, tool := range allTools {
		desc := tool.Description
		if i := strings.IndexByte(desc, '.'); i > 0 {
			desc = desc[:i+1]
		}
		fmt.Printf("  %-28s %s\n", tool.Name, desc)
	}
	fmt.Println()
	fmt.Println("Use 'caselaw tools <name>' for the full parameter schema.")
	return nil
}

func showToolDetails(tool mcp.Tool) error {
	if toolsJSONFlag {
		data, err := json.MarshalIndent(tool, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Tool: %s\n\n%s\n\n", tool.Name, tool.Description)

	props, ok := tool.InputSchema["properties"].(map[string]interface{})
	if !ok || len(props) == 0 {
		fmt.Println("Parameters: none")
		return nil
	}

	required := make(map[string]bool)
	if reqList, ok := tool.InputSchema["required"].([]string); ok {
		for _, r := range reqList {
			required[r] = true
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Parameters:")
	for _, name := range names {
		prop, _ := props[name].(map[string]interface{})
		marker := ""
		if required[name] {
			marker = " (required)"
		}
		typ, _ := prop["type"].(string)
		fmt.Printf("  %s%s (%s)\n", name, marker, typ)
		if desc, ok := prop["description"].(string); ok && desc != "" {
			fmt.Printf("    %s\n", desc)
		}
		if enum, ok := prop["enum"].([]string); ok {
			fmt.Printf("    Values: %s\n", strings.Join(enum, ", "))
		}
	}
	return nil
}
