package research

import (
	"context"
	"fmt"
	"sort"

	"caselaw/internal/caselawerr"
	"caselaw/internal/courts"
	"caselaw/internal/query"
)

// TrendOptions are the inputs to TrackLegalTrends.
type TrendOptions struct {
	LegalArea  string
	TimePeriod string
	TrendType  string
}

// TrendResult aggregates filing activity for one legal area. The
// observations are templated sentences over the computed numbers, not
// free-form text.
type TrendResult struct {
	LegalArea    string         `json:"legalArea"`
	Keywords     []string       `json:"keywords"`
	TrendType    string         `json:"trendType"`
	TimePeriod   string         `json:"timePeriod"`
	FiledAfter   string         `json:"filedAfter,omitempty"`
	TotalMatched int            `json:"totalMatched"`
	ByCourt      map[string]int `json:"byCourt"`
	ByMonth      map[string]int `json:"byMonth"`
	Observations []string       `json:"observations"`
	SampleCases  []CaseSummary  `json:"sampleCases"`
}

// TrackLegalTrends measures recent activity in a legal area. The area
// name expands through the static keyword table; "new-precedents"
// examines opinions, every other trend type examines docket filings.
func (e *Engine) TrackLegalTrends(ctx context.Context, opts TrendOptions) (*TrendResult, error) {
	if opts.LegalArea == "" {
		return nil, caselawerr.Missing("legalArea")
	}
	period := opts.TimePeriod
	if period == "" {
		period = "last-year"
	}
	trendType := opts.TrendType
	if trendType == "" {
		trendType = "outcomes"
	}

	keywords := courts.AreaKeywords(opts.LegalArea)
	recordType := query.Dockets
	if trendType == "new-precedents" {
		recordType = query.Opinions
	}

	q, err := e.builder.Build(query.Request{
		Keywords:  keywords,
		DateRange: query.DateRangeAllTime,
		Courts:    courts.All(),
		Type:      recordType,
		CitedGt:   -1,
		PageSize:  query.MaxPageSize,
	})
	if err != nil {
		return nil, err
	}
	filedAfter := e.filedAfterForPeriod(period)
	q.FiledAfter = filedAfter

	e.logger.Debug("trend scan",
		"area", opts.LegalArea, "type", trendType, "filed_after", filedAfter)

	page, err := e.api.Search(ctx, q.Values())
	if err != nil {
		return nil, err
	}

	result := &TrendResult{
		LegalArea:    opts.LegalArea,
		Keywords:     keywords,
		TrendType:    trendType,
		TimePeriod:   period,
		FiledAfter:   filedAfter,
		TotalMatched: page.Count,
		ByCourt:      make(map[string]int),
		ByMonth:      make(map[string]int),
	}

	terminated := 0
	for _, hit := range page.Results {
		court := hit.CourtID
		if court == "" {
			court = hit.Court
		}
		result.ByCourt[court]++
		if len(hit.DateFiled) >= 7 {
			result.ByMonth[hit.DateFiled[:7]]++
		}
		if hit.DateTerminated != "" {
			terminated++
		}
	}
	result.Observations = trendObservations(result, len(page.Results), terminated, recordType)
	result.SampleCases = rankAndTrim(page.Results, keywords, 5)
	return result, nil
}

// trendObservations renders the aggregate numbers as short sentences:
// resolution rate (docket scans only), the busiest court, and the peak
// filing month.
func trendObservations(r *TrendResult, sampled, terminated int, recordType query.RecordType) []string {
	var out []string

	if sampled == 0 {
		return []string{fmt.Sprintf("No %s activity matched %q in the selected period.",
			r.TrendType, r.LegalArea)}
	}

	if recordType == query.Dockets {
		pct := roundPct(float64(terminated) / float64(sampled) * 100)
		out = append(out, fmt.Sprintf("%.1f%% of sampled %s cases in the period have been resolved.",
			pct, r.LegalArea))
	} else {
		out = append(out, fmt.Sprintf("%d precedential decisions touching %s were published in the period.",
			sampled, r.LegalArea))
	}

	if court, n := peakKey(r.ByCourt); court != "" {
		out = append(out, fmt.Sprintf("%s shows the most activity with %d matching cases.", court, n))
	}
	if month, n := peakKey(r.ByMonth); month != "" {
		out = append(out, fmt.Sprintf("Activity peaked in %s with %d filings.", month, n))
	}
	return out
}

// peakKey returns the key with the highest count, breaking ties by the
// lexically smallest key so the output is deterministic.
func peakKey(m map[string]int) (string, int) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, bestN := "", 0
	for _, k := range keys {
		if m[k] > bestN {
			best, bestN = k, m[k]
		}
	}
	return best, bestN
}
