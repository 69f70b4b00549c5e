package research

import (
	"context"
	"strings"

	"caselaw/internal/caselawerr"
	"caselaw/internal/courts"
	"caselaw/internal/query"
)

// PrecedentOptions are the inputs to FindSimilarPrecedents.
type PrecedentOptions struct {
	ReferenceCaseID   int
	LegalConcepts     []string
	CitationThreshold int
	Limit             int
}

// PrecedentResult lists decisions similar to the reference case.
type PrecedentResult struct {
	ReferenceCaseID   int           `json:"referenceCaseId"`
	ReferenceCaseName string        `json:"referenceCaseName"`
	SearchTerms       []string      `json:"searchTerms"`
	Query             string        `json:"query"`
	CitationThreshold int           `json:"citationThreshold"`
	TotalFound        int           `json:"totalFound"`
	Cases             []CaseSummary `json:"cases"`
}

// FindSimilarPrecedents searches all tracked courts for well-cited
// decisions resembling the reference case. Search terms come from the
// caller's concepts plus party names extracted from the reference case
// name; the reference case itself is excluded from the results.
func (e *Engine) FindSimilarPrecedents(ctx context.Context, opts PrecedentOptions) (*PrecedentResult, error) {
	if opts.ReferenceCaseID <= 0 {
		return nil, caselawerr.Invalid("referenceCaseId", "must be a positive integer").
			WithContext("referenceCaseId", opts.ReferenceCaseID)
	}
	threshold := opts.CitationThreshold
	if threshold <= 0 {
		threshold = 1
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 8
	}

	ref, err := e.api.Cluster(ctx, opts.ReferenceCaseID)
	if err != nil {
		if caselawerr.CodeOf(err) == caselawerr.NotFound {
			return nil, caselawerr.New(caselawerr.NotFound,
				"reference case not found").
				WithSuggestion("Use a cluster id returned by search_cases_by_problem or get_case_details.").
				WithContext("referenceCaseId", opts.ReferenceCaseID)
		}
		return nil, err
	}

	terms := query.ValidKeywords(opts.LegalConcepts)
	terms = append(terms, caseNameTerms(ref.CaseName)...)
	if len(terms) == 0 {
		return nil, caselawerr.New(caselawerr.InvalidInput,
			"no usable search terms: supply legalConcepts, the reference case name yields none").
			WithContext("referenceCaseId", opts.ReferenceCaseID)
	}

	q, err := e.builder.Build(query.Request{
		Keywords:  terms,
		DateRange: query.DateRangeAllTime,
		Limit:     limit,
		Courts:    courts.All(),
		Type:      query.Opinions,
		CitedGt:   threshold - 1,
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("precedent search",
		"reference", opts.ReferenceCaseID, "query", q.QueryString, "cited_gt", q.CitedGt)

	page, err := e.api.Search(ctx, q.Values())
	if err != nil {
		return nil, err
	}

	hits := page.Results[:0:0]
	for _, h := range page.Results {
		if h.ClusterID == opts.ReferenceCaseID || h.ID == opts.ReferenceCaseID {
			continue
		}
		hits = append(hits, h)
	}

	return &PrecedentResult{
		ReferenceCaseID:   opts.ReferenceCaseID,
		ReferenceCaseName: ref.CaseName,
		SearchTerms:       terms,
		Query:             q.QueryString,
		CitationThreshold: threshold,
		TotalFound:        page.Count,
		Cases:             rankAndTrim(hits, terms, limit),
	}, nil
}

// caseNameStopwords are tokens that carry no search value in a caption.
var caseNameStopwords = map[string]bool{
	"v":      true,
	"v.":     true,
	"vs":     true,
	"vs.":    true,
	"the":    true,
	"of":     true,
	"in":     true,
	"re":     true,
	"inc":    true,
	"inc.":   true,
	"llc":    true,
	"llc.":   true,
	"corp":   true,
	"corp.":  true,
	"co":     true,
	"co.":    true,
	"ltd":    true,
	"ltd.":   true,
	"city":   true,
	"county": true,
	"state":  true,
	"people": true,
	"matter": true,
	"et":     true,
	"al":     true,
	"al.":    true,
}

// caseNameTerms pulls up to two distinctive party-name tokens out of a
// case caption. Punctuation and corporate boilerplate are dropped.
func caseNameTerms(caseName string) []string {
	var terms []string
	for _, tok := range strings.Fields(caseName) {
		tok = strings.Trim(tok, ",.()&")
		if len(tok) < 3 || caseNameStopwords[strings.ToLower(tok)] {
			continue
		}
		terms = append(terms, tok)
		if len(terms) == 2 {
			break
		}
	}
	return terms
}
