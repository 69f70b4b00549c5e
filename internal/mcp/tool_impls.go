package mcp

import (
	"context"
	"time"

	"caselaw/internal/envelope"
	"caselaw/internal/research"
)

// consumerBoostWarning marks a search whose recall was widened by the
// consumer-context heuristic despite a non-consumer case type, so
// callers can filter the warning programmatically.
const consumerBoostWarning = "CONSUMER_BOOST"

// Argument extraction helpers. Validation has already run against the
// schema; these only convert JSON-decoded values into typed options.

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func intArg(args map[string]interface{}, name string) int {
	n, _ := args[name].(float64)
	return int(n)
}

func boolArg(args map[string]interface{}, name string) bool {
	b, _ := args[name].(bool)
	return b
}

func stringSliceArg(args map[string]interface{}, name string) []string {
	raw, _ := args[name].([]interface{})
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// toolSearchCasesByProblem implements the search_cases_by_problem tool
func (s *Server) toolSearchCasesByProblem(args map[string]interface{}) (*envelope.Response, error) {
	start := time.Now()
	result, err := s.engine.SearchCasesByProblem(context.Background(), research.SearchOptions{
		Keywords:  stringSliceArg(args, "keywords"),
		Summary:   stringArg(args, "summary"),
		CaseType:  stringArg(args, "caseType"),
		DateRange: stringArg(args, "dateRange"),
		Limit:     intArg(args, "limit"),
	})
	if err != nil {
		return nil, err
	}

	b := envelope.New().Data(result).
		WithUpstreamCalls(1).
		WithDuration(time.Since(start).Milliseconds())
	if result.ConsumerBoosted && stringArg(args, "caseType") != "" && stringArg(args, "caseType") != "consumer" {
		b.WarningWithCode(consumerBoostWarning,
			"the query was biased toward consumer-protection context; supply a keyword containing 'consumer' to suppress this")
	}
	if result.TotalFound > result.Returned {
		b.WithTruncation(true, result.Returned, result.TotalFound, "ranked results trimmed to the requested limit")
	}
	if len(result.Cases) > 0 {
		b.SuggestCall("get_case_details",
			map[string]interface{}{"caseId": result.Cases[0].ClusterID},
			"fetch opinions for the top-ranked case")
	}
	return b.Build(), nil
}

// toolGetCaseDetails implements the get_case_details tool
func (s *Server) toolGetCaseDetails(args map[string]interface{}) (*envelope.Response, error) {
	start := time.Now()
	result, err := s.engine.GetCaseDetails(context.Background(), research.DetailOptions{
		CaseID:          intArg(args, "caseId"),
		IncludeFullText: boolArg(args, "includeFullText"),
	})
	if err != nil {
		return nil, err
	}

	b := envelope.New().Data(result).
		WithDuration(time.Since(start).Milliseconds())
	if result.Partial {
		b.Partial(result.PartialReason)
	}
	for _, w := range result.FetchWarnings {
		b.Warning(w)
	}
	return b.Build(), nil
}

// toolFindSimilarPrecedents implements the find_similar_precedents tool
func (s *Server) toolFindSimilarPrecedents(args map[string]interface{}) (*envelope.Response, error) {
	start := time.Now()
	result, err := s.engine.FindSimilarPrecedents(context.Background(), research.PrecedentOptions{
		ReferenceCaseID:   intArg(args, "referenceCaseId"),
		LegalConcepts:     stringSliceArg(args, "legalConcepts"),
		CitationThreshold: intArg(args, "citationThreshold"),
		Limit:             intArg(args, "limit"),
	})
	if err != nil {
		return nil, err
	}

	return envelope.New().Data(result).
		WithUpstreamCalls(2).
		WithDuration(time.Since(start).Milliseconds()).
		Build(), nil
}

// toolAnalyzeCaseOutcomes implements the analyze_case_outcomes tool
func (s *Server) toolAnalyzeCaseOutcomes(args map[string]interface{}) (*envelope.Response, error) {
	start := time.Now()
	result, err := s.engine.AnalyzeCaseOutcomes(context.Background(), research.OutcomeOptions{
		CaseType:   stringArg(args, "caseType"),
		CourtLevel: stringArg(args, "courtLevel"),
		DateRange:  stringArg(args, "dateRange"),
	})
	if err != nil {
		return nil, err
	}

	b := envelope.New().Data(result).
		WithUpstreamCalls(1).
		WithDuration(time.Since(start).Milliseconds())
	if result.TotalCases == 0 {
		b.Warning("no dockets matched; the aggregates are empty")
	}
	return b.Build(), nil
}

// toolGetJudgeAnalysis implements the get_judge_analysis tool
func (s *Server) toolGetJudgeAnalysis(args map[string]interface{}) (*envelope.Response, error) {
	start := time.Now()
	result, err := s.engine.GetJudgeAnalysis(context.Background(), research.JudgeOptions{
		JudgeName: stringArg(args, "judgeName"),
		CaseType:  stringArg(args, "caseType"),
		Court:     stringArg(args, "court"),
	})
	if err != nil {
		return nil, err
	}

	b := envelope.New().Data(result).
		WithUpstreamCalls(2).
		WithDuration(time.Since(start).Milliseconds())
	if result.CandidateCount > 1 {
		b.Warning("multiple judges matched the surname; the first match was used")
	}
	return b.Build(), nil
}

// toolValidateCitations implements the validate_citations tool
func (s *Server) toolValidateCitations(args map[string]interface{}) (*envelope.Response, error) {
	start := time.Now()
	result, err := s.engine.ValidateCitations(context.Background(), research.CitationOptions{
		Citations:   stringSliceArg(args, "citations"),
		ContextText: stringArg(args, "contextText"),
	})
	if err != nil {
		return nil, err
	}

	b := envelope.New().Data(result).
		WithUpstreamCalls(result.Processed).
		WithDuration(time.Since(start).Milliseconds())
	if result.Partial {
		b.Partial("one or more citation lookups failed; the remaining verdicts are valid")
	}
	if result.Note != "" {
		b.Warning(result.Note)
	}
	return b.Build(), nil
}

// toolGetProceduralRequirements implements the get_procedural_requirements tool
func (s *Server) toolGetProceduralRequirements(args map[string]interface{}) (*envelope.Response, error) {
	start := time.Now()
	opts := research.ProcedureOptions{
		CaseType: stringArg(args, "caseType"),
		Court:    stringArg(args, "court"),
	}
	if amount, ok := args["claimAmount"].(float64); ok {
		opts.ClaimAmount = amount
		opts.HasClaimAmount = true
	}

	result, err := s.engine.GetProceduralRequirements(context.Background(), opts)
	if err != nil {
		return nil, err
	}

	b := envelope.New().Data(result).
		WithDuration(time.Since(start).Milliseconds())
	if result.Degraded {
		b.Partial(result.DegradedReason)
		b.Warning("supplementary case snippets are unavailable; the jurisdiction data is current")
	}
	if !result.KnownCourt {
		b.Warning("unknown court id; the general civil-court entry was used")
	}
	return b.Build(), nil
}

// toolTrackLegalTrends implements the track_legal_trends tool
func (s *Server) toolTrackLegalTrends(args map[string]interface{}) (*envelope.Response, error) {
	start := time.Now()
	result, err := s.engine.TrackLegalTrends(context.Background(), research.TrendOptions{
		LegalArea:  stringArg(args, "legalArea"),
		TimePeriod: stringArg(args, "timePeriod"),
		TrendType:  stringArg(args, "trendType"),
	})
	if err != nil {
		return nil, err
	}

	return envelope.New().Data(result).
		WithUpstreamCalls(1).
		WithDuration(time.Since(start).Milliseconds()).
		Build(), nil
}
