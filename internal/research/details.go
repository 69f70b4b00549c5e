package research

import (
	"context"
	"sync"

	"caselaw/internal/caselawerr"
	"caselaw/internal/courtlistener"
	"caselaw/internal/rank"
)

const maxOpinionsPerCase = 3

// DetailOptions are the inputs to GetCaseDetails.
type DetailOptions struct {
	CaseID          int
	IncludeFullText bool
}

// OpinionDetail is one judicial writing within the detailed view.
type OpinionDetail struct {
	OpinionID int    `json:"opinionId"`
	Type      string `json:"type"`
	Author    string `json:"author,omitempty"`
	Content   string `json:"content"`
}

// DocketInfo is the docket metadata surfaced when no opinion cluster is
// available for a case.
type DocketInfo struct {
	DocketID       int    `json:"docketId"`
	CaseName       string `json:"caseName"`
	Court          string `json:"court"`
	DocketNumber   string `json:"docketNumber,omitempty"`
	DateFiled      string `json:"dateFiled,omitempty"`
	DateTerminated string `json:"dateTerminated,omitempty"`
	AssignedTo     string `json:"assignedTo,omitempty"`
	NatureOfSuit   string `json:"natureOfSuit,omitempty"`
}

// CaseDetailResult is the deep view of a single case. When only docket
// metadata could be resolved, Opinions is empty, DocketInfo is set, and
// Note carries the no-opinions marker.
type CaseDetailResult struct {
	CaseID             int                    `json:"caseId"`
	CaseName           string                 `json:"caseName"`
	Court              string                 `json:"court,omitempty"`
	DateFiled          string                 `json:"dateFiled,omitempty"`
	PrecedentialStatus string                 `json:"precedentialStatus,omitempty"`
	CitationCount      int                    `json:"citationCount"`
	LegalSignificance  rank.PrecedentialValue `json:"legalSignificance"`
	Judges             []string               `json:"judges,omitempty"`
	Opinions           []OpinionDetail        `json:"opinions"`
	DocketInfo         *DocketInfo            `json:"docket_info,omitempty"`
	Note               string                 `json:"note,omitempty"`

	// Degradation markers for the caller-facing envelope; not part of
	// the payload body.
	Partial       bool     `json:"-"`
	PartialReason string   `json:"-"`
	FetchWarnings []string `json:"-"`
}

// GetCaseDetails resolves a case id to its cluster and opinions. The id
// is tried as a cluster first; on a miss it is retried as a docket and
// the docket's first cluster reference is followed. A docket without
// clusters yields a degraded result carrying docket metadata only.
func (e *Engine) GetCaseDetails(ctx context.Context, opts DetailOptions) (*CaseDetailResult, error) {
	if opts.CaseID <= 0 {
		return nil, caselawerr.Invalid("caseId", "must be a positive integer").
			WithContext("caseId", opts.CaseID)
	}

	cluster, err := e.api.Cluster(ctx, opts.CaseID)
	if err != nil {
		if caselawerr.CodeOf(err) != caselawerr.NotFound {
			return nil, err
		}
		return e.detailsViaDocket(ctx, opts)
	}
	return e.detailsFromCluster(ctx, cluster, opts, e.clusterCourt(ctx, cluster))
}

// clusterCourt resolves a cluster's court id by following its docket
// reference. Best effort: any miss yields an empty court rather than a
// failed lookup.
func (e *Engine) clusterCourt(ctx context.Context, cluster *courtlistener.Cluster) string {
	id := courtlistener.IDFromURL(cluster.DocketURL)
	if id == 0 {
		return ""
	}
	docket, err := e.api.Docket(ctx, id)
	if err != nil {
		return ""
	}
	return docket.CourtID
}

// detailsViaDocket handles the cluster-miss path: the id names a docket,
// whose first cluster (if any) carries the opinions.
func (e *Engine) detailsViaDocket(ctx context.Context, opts DetailOptions) (*CaseDetailResult, error) {
	docket, err := e.api.Docket(ctx, opts.CaseID)
	if err != nil {
		if caselawerr.CodeOf(err) == caselawerr.NotFound {
			return nil, caselawerr.New(caselawerr.NotFound,
				"no cluster or docket matches the given case id").
				WithSuggestion("Use an id returned by search_cases_by_problem.").
				WithContext("caseId", opts.CaseID)
		}
		return nil, err
	}

	info := docketInfo(docket)
	if len(docket.Clusters) == 0 {
		return &CaseDetailResult{
			CaseID:            opts.CaseID,
			CaseName:          docket.CaseName,
			Court:             docket.CourtID,
			DateFiled:         docket.DateFiled,
			LegalSignificance: rank.Precedential(0),
			Opinions:          []OpinionDetail{},
			DocketInfo:        info,
			Note:              "no opinions found for this docket",
			Partial:           true,
			PartialReason:     "docket has no opinion clusters",
		}, nil
	}

	clusterID := courtlistener.IDFromURL(docket.Clusters[0])
	cluster, err := e.api.Cluster(ctx, clusterID)
	if err != nil {
		// The docket itself is still useful.
		return &CaseDetailResult{
			CaseID:            opts.CaseID,
			CaseName:          docket.CaseName,
			Court:             docket.CourtID,
			DateFiled:         docket.DateFiled,
			LegalSignificance: rank.Precedential(0),
			Opinions:          []OpinionDetail{},
			DocketInfo:        info,
			Note:              "opinion cluster could not be retrieved",
			Partial:           true,
			PartialReason:     "linked cluster fetch failed: " + err.Error(),
		}, nil
	}

	result, err := e.detailsFromCluster(ctx, cluster, opts, docket.CourtID)
	if err != nil {
		return nil, err
	}
	result.DocketInfo = info
	return result, nil
}

func (e *Engine) detailsFromCluster(ctx context.Context, cluster *courtlistener.Cluster, opts DetailOptions, court string) (*CaseDetailResult, error) {
	result := &CaseDetailResult{
		CaseID:             cluster.ID,
		CaseName:           cluster.CaseName,
		Court:              court,
		DateFiled:          cluster.DateFiled,
		PrecedentialStatus: cluster.PrecedentialStatus,
		CitationCount:      cluster.CitationCount,
		LegalSignificance:  rank.Precedential(cluster.CitationCount),
		Judges:             splitJudges(cluster.Judges),
		Opinions:           []OpinionDetail{},
	}

	refs := cluster.SubOpinions
	if len(refs) > maxOpinionsPerCase {
		refs = refs[:maxOpinionsPerCase]
		result.FetchWarnings = append(result.FetchWarnings,
			"only the first 3 opinions were retrieved")
	}

	textCap := rank.SnippetCap
	retrieval := "includeFullText=true for the longer excerpt"
	if opts.IncludeFullText {
		textCap = rank.FullTextCap
		retrieval = "read the full opinion on the source site"
	}

	// Opinion fetches are independent; issue them together and keep
	// input order in the result.
	type slot struct {
		op  *courtlistener.Opinion
		err error
	}
	slots := make([]slot, len(refs))
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, id int) {
			defer wg.Done()
			op, err := e.api.Opinion(ctx, id)
			slots[i] = slot{op: op, err: err}
		}(i, courtlistener.IDFromURL(ref))
	}
	wg.Wait()

	for _, s := range slots {
		if s.err != nil {
			result.Partial = true
			result.PartialReason = "one or more opinion fetches failed"
			result.FetchWarnings = append(result.FetchWarnings,
				"opinion fetch failed: "+s.err.Error())
			continue
		}
		result.Opinions = append(result.Opinions, OpinionDetail{
			OpinionID: s.op.ID,
			Type:      s.op.Type,
			Author:    s.op.Author,
			Content:   rank.Truncate(s.op.Text(), textCap, retrieval),
		})
	}
	return result, nil
}

func docketInfo(d *courtlistener.Docket) *DocketInfo {
	return &DocketInfo{
		DocketID:       d.ID,
		CaseName:       d.CaseName,
		Court:          d.CourtID,
		DocketNumber:   d.DocketNumber,
		DateFiled:      d.DateFiled,
		DateTerminated: d.DateTerminated,
		AssignedTo:     d.AssignedTo,
		NatureOfSuit:   d.NatureOfSuit,
	}
}
