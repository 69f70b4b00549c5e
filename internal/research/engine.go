// Package research implements the case-law research tools: eight
// single-shot operations that compose the court scope registry, the
// query builder, and the result scorer into progressively deeper views
// of the upstream case-law repository. Each invocation owns its working
// copies; no state survives a call and nothing is cached.
package research

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"caselaw/internal/courtlistener"
	"caselaw/internal/query"
	"caselaw/internal/rank"
)

// Upstream is the slice of the case-law API the engine consumes.
// *courtlistener.Client satisfies it; tests substitute fakes.
type Upstream interface {
	Search(ctx context.Context, params url.Values) (*courtlistener.SearchPage, error)
	Docket(ctx context.Context, id int) (*courtlistener.Docket, error)
	Cluster(ctx context.Context, id int) (*courtlistener.Cluster, error)
	Opinion(ctx context.Context, id int) (*courtlistener.Opinion, error)
	FindPeople(ctx context.Context, lastName string) (*courtlistener.PeoplePage, error)
}

// Engine executes research operations against one upstream client.
// Safe for concurrent use: invocations share nothing mutable.
type Engine struct {
	api     Upstream
	builder *query.Builder
	logger  *slog.Logger
}

// NewEngine creates a research engine.
func NewEngine(api Upstream, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		api:     api,
		builder: query.NewBuilder(),
		logger:  logger,
	}
}

// WithClock replaces the query builder's clock. For tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.builder = e.builder.WithClock(now)
	return e
}

// CaseSummary is the ranked, scoped view of one search hit. Derived and
// ephemeral: produced per request, never cached across requests.
type CaseSummary struct {
	CaseID            int                    `json:"caseId"`
	ClusterID         int                    `json:"clusterId,omitempty"`
	DocketID          int                    `json:"docketId,omitempty"`
	CaseName          string                 `json:"caseName"`
	Court             string                 `json:"court"`
	DateFiled         string                 `json:"dateFiled"`
	CitationCount     int                    `json:"citationCount"`
	Snippet           string                 `json:"snippet,omitempty"`
	RelevanceScore    int                    `json:"relevanceScore"`
	PrecedentialValue rank.PrecedentialValue `json:"precedentialValue"`
	AbsoluteURL       string                 `json:"url,omitempty"`
}

// CaseRef is the minimal pointer to a related case.
type CaseRef struct {
	CaseID   int    `json:"caseId"`
	CaseName string `json:"caseName"`
	Court    string `json:"court"`
}

// summarize converts a raw hit into a scored summary. The snippet is
// capped; the continuation marker names the detail tool.
func summarize(hit courtlistener.SearchHit, keywords []string) CaseSummary {
	courtName := hit.Court
	if courtName == "" {
		courtName = hit.CourtID
	}
	return CaseSummary{
		CaseID:            hit.ID,
		ClusterID:         hit.ClusterID,
		DocketID:          hit.DocketID,
		CaseName:          hit.CaseName,
		Court:             courtName,
		DateFiled:         hit.DateFiled,
		CitationCount:     hit.CiteCount,
		Snippet:           rank.Truncate(hit.Snippet, rank.SnippetCap, "full text via get_case_details"),
		RelevanceScore:    rank.Score(hit.CaseName+" "+hit.Snippet, keywords),
		PrecedentialValue: rank.Precedential(hit.CiteCount),
		AbsoluteURL:       hit.AbsoluteURL,
	}
}

// rankAndTrim scores, sorts by the deterministic composite ordering, and
// keeps the top limit entries.
func rankAndTrim(hits []courtlistener.SearchHit, keywords []string, limit int) []CaseSummary {
	cases := make([]CaseSummary, 0, len(hits))
	for _, h := range hits {
		cases = append(cases, summarize(h, keywords))
	}
	rank.SortCases(len(cases),
		func(i int) int { return cases[i].RelevanceScore },
		func(i int) int { return cases[i].CitationCount },
		func(i, j int) { cases[i], cases[j] = cases[j], cases[i] },
	)
	if limit > 0 && len(cases) > limit {
		cases = cases[:limit]
	}
	return cases
}

// splitJudges breaks the upstream's free-form judges string into names.
func splitJudges(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// periodYears maps the analysis-tool time periods onto year spans.
// Unknown periods apply no filter, mirroring the search date policy.
var periodYears = map[string]int{
	"last-year":   1,
	"last-2years": 2,
	"last-5years": 5,
}

func (e *Engine) filedAfterForPeriod(period string) string {
	if years, ok := periodYears[period]; ok {
		return e.builder.YearsBack(years)
	}
	return ""
}
