package research

import (
	"context"
	"math"
	"time"

	"caselaw/internal/caselawerr"
	"caselaw/internal/courts"
	"caselaw/internal/query"
)

// maxDurationDays bounds the duration average against records whose
// termination date predates the filing or sits implausibly far past it.
const maxDurationDays = 3650

// OutcomeOptions are the inputs to AnalyzeCaseOutcomes.
type OutcomeOptions struct {
	CaseType   string
	CourtLevel string
	DateRange  string
}

// OutcomeResult aggregates docket-level disposition statistics.
type OutcomeResult struct {
	CaseType        string         `json:"caseType"`
	CourtLevel      string         `json:"courtLevel"`
	DateRange       string         `json:"dateRange"`
	FiledAfter      string         `json:"filedAfter,omitempty"`
	TotalCases      int            `json:"totalCases"`
	TerminatedCases int            `json:"terminatedCases"`
	OngoingCases    int            `json:"ongoingCases"`
	ClosureRatePct  float64        `json:"closureRatePct"`
	CasesByCourt    map[string]int `json:"casesByCourt"`
	AvgDurationDays float64        `json:"avgDurationDays"`
	DurationSamples int            `json:"durationSamples"`
}

// AnalyzeCaseOutcomes searches docket records for the case type in the
// selected court tier and computes disposition aggregates: closure rate,
// per-court counts, and average days-to-termination.
func (e *Engine) AnalyzeCaseOutcomes(ctx context.Context, opts OutcomeOptions) (*OutcomeResult, error) {
	if opts.CaseType == "" {
		return nil, caselawerr.Missing("caseType")
	}
	level, err := courtLevelFor(opts.CourtLevel)
	if err != nil {
		return nil, err
	}
	dateRange := opts.DateRange
	if dateRange == "" {
		dateRange = "last-2years"
	}

	q, err := e.builder.Build(query.Request{
		Keywords:  []string{opts.CaseType},
		CaseType:  opts.CaseType,
		DateRange: query.DateRangeAllTime,
		Courts:    courts.ScopeFor(level),
		Type:      query.Dockets,
		CitedGt:   -1,
		PageSize:  query.MaxPageSize,
	})
	if err != nil {
		return nil, err
	}
	filedAfter := e.filedAfterForPeriod(dateRange)
	q.FiledAfter = filedAfter

	e.logger.Debug("outcome analysis",
		"case_type", opts.CaseType, "court_level", string(level), "filed_after", filedAfter)

	page, err := e.api.Search(ctx, q.Values())
	if err != nil {
		return nil, err
	}

	result := &OutcomeResult{
		CaseType:     opts.CaseType,
		CourtLevel:   string(level),
		DateRange:    dateRange,
		FiledAfter:   filedAfter,
		TotalCases:   len(page.Results),
		CasesByCourt: make(map[string]int),
	}

	var totalDays float64
	for _, hit := range page.Results {
		court := hit.CourtID
		if court == "" {
			court = hit.Court
		}
		result.CasesByCourt[court]++

		if hit.DateTerminated == "" {
			result.OngoingCases++
			continue
		}
		result.TerminatedCases++
		if d, ok := durationDays(hit.DateFiled, hit.DateTerminated); ok {
			totalDays += d
			result.DurationSamples++
		}
	}
	if result.TotalCases > 0 {
		result.ClosureRatePct = roundPct(float64(result.TerminatedCases) / float64(result.TotalCases) * 100)
	}
	if result.DurationSamples > 0 {
		result.AvgDurationDays = roundPct(totalDays / float64(result.DurationSamples))
	}
	return result, nil
}

func courtLevelFor(s string) (courts.Level, error) {
	switch s {
	case "", "all":
		return courts.LevelAll, nil
	case "trial":
		return courts.LevelTrial, nil
	case "appellate":
		return courts.LevelAppellate, nil
	default:
		return "", caselawerr.Invalid("courtLevel", `must be one of "trial", "appellate", "all"`).
			WithContext("courtLevel", s)
	}
}

// durationDays computes filed-to-terminated in days, rejecting unparseable
// dates and durations outside (0, 3650] as outliers.
func durationDays(filed, terminated string) (float64, bool) {
	from, err1 := time.Parse("2006-01-02", filed)
	to, err2 := time.Parse("2006-01-02", terminated)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	days := to.Sub(from).Hours() / 24
	if days <= 0 || days > maxDurationDays {
		return 0, false
	}
	return days, true
}

// roundPct rounds to one decimal place.
func roundPct(v float64) float64 {
	return math.Round(v*10) / 10
}
