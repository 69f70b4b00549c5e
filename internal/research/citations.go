package research

import (
	"context"
	"fmt"
	"strings"

	"caselaw/internal/caselawerr"
	"caselaw/internal/courts"
	"caselaw/internal/query"
)

// maxCitationsPerCall caps how many citations one invocation verifies.
const maxCitationsPerCall = 10

// CitationOptions are the inputs to ValidateCitations.
type CitationOptions struct {
	Citations   []string
	ContextText string
}

// Citation validity states.
const (
	CitationValid    = "valid"
	CitationNotFound = "not_found"
	CitationError    = "error"
)

// CitationResult is the verdict for one citation string.
type CitationResult struct {
	InputCitation string       `json:"inputCitation"`
	Status        string       `json:"status"`
	MatchedCase   *CaseSummary `json:"matchedCase,omitempty"`
	RelatedCases  []CaseRef    `json:"relatedCases,omitempty"`
	Error         string       `json:"error,omitempty"`
}

// CitationValidationResult holds the per-citation verdicts. Skipped
// counts citations past the per-call cap; Note explains them.
type CitationValidationResult struct {
	Results   []CitationResult `json:"results"`
	Processed int              `json:"processed"`
	Skipped   int              `json:"skipped,omitempty"`
	Note      string           `json:"note,omitempty"`

	Partial bool `json:"-"`
}

// ValidateCitations checks each citation against the case-law index via
// exact-phrase search. Failures are isolated per citation: one bad
// lookup marks that entry and the rest still run.
func (e *Engine) ValidateCitations(ctx context.Context, opts CitationOptions) (*CitationValidationResult, error) {
	if len(opts.Citations) == 0 {
		return nil, caselawerr.Missing("citations")
	}

	citations := opts.Citations
	result := &CitationValidationResult{}
	if len(citations) > maxCitationsPerCall {
		result.Skipped = len(citations) - maxCitationsPerCall
		result.Note = fmt.Sprintf("%d additional citations beyond the first %d were not processed; split them across further calls",
			result.Skipped, maxCitationsPerCall)
		citations = citations[:maxCitationsPerCall]
	}

	for _, citation := range citations {
		result.Results = append(result.Results, e.validateOne(ctx, citation))
	}
	result.Processed = len(result.Results)
	for _, r := range result.Results {
		if r.Status == CitationError {
			result.Partial = true
			break
		}
	}
	return result, nil
}

func (e *Engine) validateOne(ctx context.Context, citation string) CitationResult {
	out := CitationResult{InputCitation: citation, Status: CitationNotFound}

	trimmed := strings.TrimSpace(citation)
	if trimmed == "" {
		out.Status = CitationError
		out.Error = "empty citation string"
		return out
	}

	q, err := e.builder.Build(query.Request{
		ExactPhrase: trimmed,
		DateRange:   query.DateRangeAllTime,
		Limit:       3,
		PageSize:    3,
		Courts:      courts.All(),
		Type:        query.Opinions,
		CitedGt:     -1,
	})
	if err != nil {
		out.Status = CitationError
		out.Error = err.Error()
		return out
	}

	page, err := e.api.Search(ctx, q.Values())
	if err != nil {
		e.logger.Warn("citation lookup failed", "citation", trimmed, "error", err)
		out.Status = CitationError
		out.Error = err.Error()
		return out
	}
	if len(page.Results) == 0 {
		return out
	}

	matched := summarize(page.Results[0], []string{trimmed})
	out.Status = CitationValid
	out.MatchedCase = &matched
	for _, hit := range page.Results[1:] {
		out.RelatedCases = append(out.RelatedCases, CaseRef{
			CaseID:   hit.ID,
			CaseName: hit.CaseName,
			Court:    hit.Court,
		})
		if len(out.RelatedCases) == 2 {
			break
		}
	}
	return out
}
