package research

import (
	"context"

	"caselaw/internal/caselawerr"
	"caselaw/internal/courts"
	"caselaw/internal/query"
)

// maxProceduralSnippets caps how many supporting case snippets the
// procedural tool attaches to the static jurisdiction data.
const maxProceduralSnippets = 5

// ProcedureOptions are the inputs to GetProceduralRequirements.
// ClaimAmount is optional; HasClaimAmount distinguishes "no amount"
// from a zero-dollar claim.
type ProcedureOptions struct {
	CaseType       string
	Court          string
	ClaimAmount    float64
	HasClaimAmount bool
}

// ProcedureResult combines static jurisdiction data with recent
// procedurally relevant decisions. JurisdictionFit is nil when no claim
// amount was supplied.
type ProcedureResult struct {
	CaseType        string              `json:"caseType"`
	Jurisdiction    courts.Jurisdiction `json:"jurisdiction"`
	KnownCourt      bool                `json:"knownCourt"`
	ClaimAmount     *float64            `json:"claimAmount,omitempty"`
	JurisdictionFit *bool               `json:"jurisdictionFit,omitempty"`
	Guidance        []CaseSummary       `json:"guidance"`

	Degraded       bool   `json:"-"`
	DegradedReason string `json:"-"`
}

// GetProceduralRequirements answers "where and how do I file this". The
// static jurisdiction table always answers; the supplementary search is
// best effort, and an upstream failure degrades the result instead of
// failing it.
func (e *Engine) GetProceduralRequirements(ctx context.Context, opts ProcedureOptions) (*ProcedureResult, error) {
	if opts.CaseType == "" {
		return nil, caselawerr.Missing("caseType")
	}
	courtID := opts.Court
	if courtID == "" {
		courtID = courts.DefaultJurisdictionID
	}

	jurisdiction, known := courts.JurisdictionFor(courtID)
	result := &ProcedureResult{
		CaseType:     opts.CaseType,
		Jurisdiction: jurisdiction,
		KnownCourt:   known,
		Guidance:     []CaseSummary{},
	}
	if opts.HasClaimAmount {
		amount := opts.ClaimAmount
		fit := jurisdiction.MaxClaim == 0 || amount <= float64(jurisdiction.MaxClaim)
		result.ClaimAmount = &amount
		result.JurisdictionFit = &fit
	}

	scope := courts.Primary()
	if known && courts.Contains(courts.All(), courts.ID(courtID)) {
		scope = []courts.ID{courts.ID(courtID)}
	}
	q, err := e.builder.Build(query.Request{
		Keywords:  []string{opts.CaseType, "filing requirements", "procedure"},
		CaseType:  opts.CaseType,
		DateRange: query.DateRangeAllTime,
		Limit:     maxProceduralSnippets,
		Courts:    scope,
		Type:      query.Opinions,
		CitedGt:   -1,
	})
	if err != nil {
		return nil, err
	}

	page, err := e.api.Search(ctx, q.Values())
	if err != nil {
		// Static jurisdiction data still answers the question.
		e.logger.Warn("procedural search degraded", "court", courtID, "error", err)
		result.Degraded = true
		result.DegradedReason = "case snippet search failed: " + err.Error()
		return result, nil
	}

	keywords := []string{opts.CaseType, "procedure", "filing"}
	result.Guidance = rankAndTrim(page.Results, keywords, maxProceduralSnippets)
	return result, nil
}
