package research

import (
	"context"

	"caselaw/internal/courts"
	"caselaw/internal/query"
)

// SearchOptions are the inputs to SearchCasesByProblem.
type SearchOptions struct {
	Keywords  []string
	Summary   string
	CaseType  string
	DateRange string
	Limit     int
}

// SearchResult is the ranked answer to a problem search. Query and
// DateRange echo what was actually sent upstream.
type SearchResult struct {
	Query           string        `json:"query"`
	DateRange       string        `json:"dateRange"`
	CourtScope      []string      `json:"courtScope"`
	ConsumerBoosted bool          `json:"consumerBoosted"`
	TotalFound      int           `json:"totalFound"`
	Returned        int           `json:"returned"`
	Cases           []CaseSummary `json:"cases"`
}

// SearchCasesByProblem searches the trial-level courts for decisions
// matching the caller's problem keywords. Candidates are over-fetched at
// twice the requested limit, rescored locally, and trimmed.
func (e *Engine) SearchCasesByProblem(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	dateRange := query.DateRange(opts.DateRange)
	if dateRange == "" {
		dateRange = query.DateRangeRecent
	}

	q, err := e.builder.Build(query.Request{
		Keywords:  opts.Keywords,
		CaseType:  opts.CaseType,
		DateRange: dateRange,
		Limit:     limit,
		Courts:    courts.Primary(),
		Type:      query.Opinions,
		CitedGt:   0,
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("problem search",
		"query", q.QueryString, "date_range", string(q.DateRange), "page_size", q.PageSize)

	page, err := e.api.Search(ctx, q.Values())
	if err != nil {
		return nil, err
	}

	keywords := query.ValidKeywords(opts.Keywords)
	cases := rankAndTrim(page.Results, keywords, limit)

	return &SearchResult{
		Query:           q.QueryString,
		DateRange:       string(q.DateRange),
		CourtScope:      courtIDs(q.Courts),
		ConsumerBoosted: q.ConsumerBoosted,
		TotalFound:      page.Count,
		Returned:        len(cases),
		Cases:           cases,
	}, nil
}

func courtIDs(ids []courts.ID) []string {
	out := make([]string, len(ids))
	for i, c := range ids {
		out[i] = string(c)
	}
	return out
}
