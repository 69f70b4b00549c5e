package research

import (
	"context"
	"strings"

	"caselaw/internal/caselawerr"
	"caselaw/internal/courtlistener"
	"caselaw/internal/courts"
	"caselaw/internal/query"
)

// JudgeOptions are the inputs to GetJudgeAnalysis.
type JudgeOptions struct {
	JudgeName string
	CaseType  string
	Court     string
}

// JudgeAnalysisResult summarizes a judge's authored opinions for one
// case type. MatchedJudge is the first candidate whose name contains the
// requested string; CandidateCount reports how many judges shared the
// surname so ambiguous resolutions are visible to the caller.
type JudgeAnalysisResult struct {
	RequestedName       string         `json:"requestedName"`
	MatchedJudge        string         `json:"matchedJudge"`
	MatchedJudgeID      int            `json:"matchedJudgeId"`
	CandidateCount      int            `json:"candidateCount"`
	CaseType            string         `json:"caseType"`
	TotalOpinions       int            `json:"totalOpinions"`
	OpinionsByType      map[string]int `json:"opinionsByType"`
	OpinionsByCourt     map[string]int `json:"opinionsByCourt"`
	RepresentativeCases []CaseSummary  `json:"representativeCases"`
}

// GetJudgeAnalysis resolves a judge by name and aggregates their
// authored opinions matching the case type. Name resolution takes the
// first match; common surnames resolve ambiguously and the candidate
// count flags when that happened.
func (e *Engine) GetJudgeAnalysis(ctx context.Context, opts JudgeOptions) (*JudgeAnalysisResult, error) {
	name := strings.TrimSpace(opts.JudgeName)
	if name == "" {
		return nil, caselawerr.Missing("judgeName")
	}
	if opts.CaseType == "" {
		return nil, caselawerr.Missing("caseType")
	}

	fields := strings.Fields(name)
	lastName := fields[len(fields)-1]

	people, err := e.api.FindPeople(ctx, lastName)
	if err != nil {
		return nil, err
	}
	if len(people.Results) == 0 {
		return nil, caselawerr.New(caselawerr.NotFound,
			"no judge matches the given name").
			WithSuggestion("Check the spelling, or search with the surname only.").
			WithContext("judgeName", opts.JudgeName)
	}
	person := matchJudge(people.Results, name)

	scope := courts.All()
	if opts.Court != "" {
		scope = []courts.ID{courts.ID(opts.Court)}
	}
	q, err := e.builder.Build(query.Request{
		Keywords:  []string{opts.CaseType},
		CaseType:  opts.CaseType,
		DateRange: query.DateRangeAllTime,
		Courts:    scope,
		Type:      query.Opinions,
		CitedGt:   -1,
		PageSize:  query.MaxPageSize,
	})
	if err != nil {
		return nil, err
	}
	values := q.Values()
	values.Set("judge", person.FullName())

	e.logger.Debug("judge analysis",
		"judge", person.FullName(), "candidates", people.Count, "case_type", opts.CaseType)

	page, err := e.api.Search(ctx, values)
	if err != nil {
		return nil, err
	}

	result := &JudgeAnalysisResult{
		RequestedName:   opts.JudgeName,
		MatchedJudge:    person.FullName(),
		MatchedJudgeID:  person.ID,
		CandidateCount:  candidateCount(people),
		CaseType:        opts.CaseType,
		TotalOpinions:   page.Count,
		OpinionsByType:  make(map[string]int),
		OpinionsByCourt: make(map[string]int),
	}
	for _, hit := range page.Results {
		court := hit.CourtID
		if court == "" {
			court = hit.Court
		}
		result.OpinionsByCourt[court]++
		if len(hit.Opinions) == 0 {
			result.OpinionsByType["unknown"]++
			continue
		}
		for _, op := range hit.Opinions {
			t := op.Type
			if t == "" {
				t = "unknown"
			}
			result.OpinionsByType[t]++
		}
	}
	result.RepresentativeCases = rankAndTrim(page.Results, []string{opts.CaseType}, 5)
	return result, nil
}

// matchJudge picks the first person whose full name contains the
// requested name case-insensitively, falling back to the first result.
func matchJudge(candidates []courtlistener.Person, name string) courtlistener.Person {
	want := strings.ToLower(name)
	for _, p := range candidates {
		if strings.Contains(strings.ToLower(p.FullName()), want) {
			return p
		}
	}
	return candidates[0]
}

func candidateCount(page *courtlistener.PeoplePage) int {
	if page.Count > 0 {
		return page.Count
	}
	return len(page.Results)
}
