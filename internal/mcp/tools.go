package mcp

import "caselaw/internal/envelope"

// Tool represents a research tool exposed via MCP
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolHandler is a function that handles a tool call and returns an envelope response.
type ToolHandler func(args map[string]interface{}) (*envelope.Response, error)

// GetToolDefinitions returns all tool definitions
func (s *Server) GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "search_cases_by_problem",
			Description: "Search New York trial-court case law for decisions matching a consumer's legal problem. Returns ranked case summaries with relevance scores and precedential weight.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"keywords": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string", "minLength": 1, "maxLength": 100},
						"minItems":    1,
						"maxItems":    10,
						"description": "Legal search terms extracted from the problem description",
					},
					"summary": map[string]interface{}{
						"type":        "string",
						"description": "Optional one-paragraph restatement of the problem, echoed in logs",
					},
					"caseType": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"consumer", "small_claims", "landlord_tenant", "contract"},
						"description": "Case category used to widen the search with fixed recall terms",
					},
					"dateRange": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"recent-2years", "established-precedent", "all-time"},
						"default":     "recent-2years",
						"description": "Decision date window",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"maximum":     20,
						"default":     10,
						"description": "Maximum number of cases to return",
					},
				},
				"required": []string{"keywords"},
			},
		},
		{
			Name:        "get_case_details",
			Description: "Fetch the full detail of one case: court, judges, precedential status, and up to 3 opinion texts. Falls back from cluster to docket lookup; a docket without opinions returns docket metadata with an explicit marker.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"caseId": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"description": "Cluster or docket identifier from a previous search",
					},
					"includeFullText": map[string]interface{}{
						"type":        "boolean",
						"default":     false,
						"description": "Raise the opinion text cap from 500 to 5000 characters",
					},
				},
				"required": []string{"caseId"},
			},
		},
		{
			Name:        "find_similar_precedents",
			Description: "Find well-cited decisions similar to a reference case, searching trial and appellate courts. Terms come from supplied legal concepts plus party names from the reference caption.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"referenceCaseId": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"description": "Cluster id of the reference case",
					},
					"legalConcepts": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string", "minLength": 1, "maxLength": 100},
						"maxItems":    10,
						"description": "Legal concepts to search alongside the derived case-name terms",
					},
					"citationThreshold": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"default":     1,
						"description": "Minimum citation count for a result",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"maximum":     20,
						"default":     8,
						"description": "Maximum number of precedents to return",
					},
				},
				"required": []string{"referenceCaseId"},
			},
		},
		{
			Name:        "analyze_case_outcomes",
			Description: "Aggregate docket-level disposition statistics for a case type: closure rate, per-court counts, and average days to termination.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"caseType": map[string]interface{}{
						"type":        "string",
						"minLength":   1,
						"maxLength":   100,
						"description": "Case category to analyze, e.g. 'consumer' or 'landlord_tenant'",
					},
					"courtLevel": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"trial", "appellate", "all"},
						"default":     "all",
						"description": "Court tier to analyze",
					},
					"dateRange": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"last-year", "last-2years", "last-5years"},
						"default":     "last-2years",
						"description": "Filing date window",
					},
				},
				"required": []string{"caseType"},
			},
		},
		{
			Name:        "get_judge_analysis",
			Description: "Summarize a judge's authored opinions for a case type: counts by opinion type and court plus representative cases. Ambiguous names resolve to the first match; the candidate count reports how many judges shared the surname.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"judgeName": map[string]interface{}{
						"type":        "string",
						"minLength":   2,
						"maxLength":   100,
						"description": "Judge's name; the surname drives the lookup",
					},
					"caseType": map[string]interface{}{
						"type":        "string",
						"minLength":   1,
						"maxLength":   100,
						"description": "Case category to filter the judge's opinions",
					},
					"court": map[string]interface{}{
						"type":        "string",
						"description": "Optional court id to restrict the search",
					},
				},
				"required": []string{"judgeName", "caseType"},
			},
		},
		{
			Name:        "validate_citations",
			Description: "Check citation strings against the case-law index via exact-phrase search. At most the first 10 citations are processed; failures are isolated per citation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"citations": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string", "minLength": 1, "maxLength": 200},
						"minItems":    1,
						"description": "Citation strings to verify, e.g. '123 Misc 2d 456'",
					},
					"contextText": map[string]interface{}{
						"type":        "string",
						"description": "Optional surrounding document text, logged for audit",
					},
				},
				"required": []string{"citations"},
			},
		},
		{
			Name:        "get_procedural_requirements",
			Description: "Look up filing requirements for a court: monetary ceiling, fee estimate, service method, and a jurisdiction-fit check against the claim amount, supplemented with up to 5 relevant case snippets.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"caseType": map[string]interface{}{
						"type":        "string",
						"minLength":   1,
						"maxLength":   100,
						"description": "Case category, e.g. 'small_claims'",
					},
					"court": map[string]interface{}{
						"type":        "string",
						"default":     "ny-civ-ct",
						"description": "Court id; unknown ids fall back to the general civil court entry",
					},
					"claimAmount": map[string]interface{}{
						"type":        "number",
						"minimum":     0,
						"description": "Claim amount in dollars for the jurisdiction-fit check",
					},
				},
				"required": []string{"caseType"},
			},
		},
		{
			Name:        "track_legal_trends",
			Description: "Measure recent filing or precedent activity in a legal area: per-court and per-month aggregates with templated trend observations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"legalArea": map[string]interface{}{
						"type":        "string",
						"minLength":   1,
						"maxLength":   100,
						"description": "Legal area to scan, e.g. 'consumer_protection' or 'landlord_tenant'",
					},
					"timePeriod": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"last-year", "last-2years", "last-5years"},
						"default":     "last-year",
						"description": "Activity window",
					},
					"trendType": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"outcomes", "filings", "new-precedents"},
						"default":     "outcomes",
						"description": "'new-precedents' scans opinions, everything else scans dockets",
					},
				},
				"required": []string{"legalArea"},
			},
		},
	}
}

// registerTools wires every tool definition to its handler.
func (s *Server) registerTools() {
	handlers := map[string]ToolHandler{
		"search_cases_by_problem":     s.toolSearchCasesByProblem,
		"get_case_details":            s.toolGetCaseDetails,
		"find_similar_precedents":     s.toolFindSimilarPrecedents,
		"analyze_case_outcomes":       s.toolAnalyzeCaseOutcomes,
		"get_judge_analysis":          s.toolGetJudgeAnalysis,
		"validate_citations":          s.toolValidateCitations,
		"get_procedural_requirements": s.toolGetProceduralRequirements,
		"track_legal_trends":          s.toolTrackLegalTrends,
	}
	for _, def := range s.GetToolDefinitions() {
		handler, ok := handlers[def.Name]
		if !ok {
			panic("mcp: tool definition without handler: " + def.Name)
		}
		s.tools[def.Name] = registeredTool{def: def, handler: handler}
	}
}
