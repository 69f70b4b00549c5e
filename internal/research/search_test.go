package research

import (
	"context"
	"testing"

	"caselaw/internal/caselawerr"
	"caselaw/internal/courtlistener"
)

func TestSearchCasesByProblemRanksAndTrims(t *testing.T) {
	fake := &fakeUpstream{
		searchPages: []*courtlistener.SearchPage{{
			Count: 4,
			Results: []courtlistener.SearchHit{
				{ClusterID: 1, CaseName: "Unrelated v. Case", CiteCount: 50},
				{ClusterID: 2, CaseName: "Lease Deposit Co. v. Tenant", Snippet: "lease deposit", CiteCount: 3},
				{ClusterID: 3, CaseName: "Lease v. Landlord", Snippet: "deposit returned", CiteCount: 20},
				{ClusterID: 4, CaseName: "Another v. Matter", Snippet: "lease", CiteCount: 1},
			},
		}},
	}
	engine := newTestEngine(fake)

	result, err := engine.SearchCasesByProblem(context.Background(), SearchOptions{
		Keywords: []string{"lease", "deposit"},
		Limit:    3,
	})
	if err != nil {
		t.Fatalf("SearchCasesByProblem() error = %v", err)
	}

	if len(result.Cases) != 3 {
		t.Fatalf("returned %d cases, want 3", len(result.Cases))
	}
	// Both keywords hit cases 2 and 3; 3 has more citations. Case 1
	// scores zero and falls off the end.
	if result.Cases[0].ClusterID != 3 || result.Cases[1].ClusterID != 2 {
		t.Errorf("order = [%d %d %d], want [3 2 4]",
			result.Cases[0].ClusterID, result.Cases[1].ClusterID, result.Cases[2].ClusterID)
	}
	for i := 1; i < len(result.Cases); i++ {
		prev, cur := result.Cases[i-1], result.Cases[i]
		if cur.RelevanceScore > prev.RelevanceScore {
			t.Errorf("relevance not descending at %d", i)
		}
	}
	if result.TotalFound != 4 {
		t.Errorf("TotalFound = %d, want 4", result.TotalFound)
	}
}

func TestSearchCasesByProblemQueryShape(t *testing.T) {
	fake := &fakeUpstream{searchPages: []*courtlistener.SearchPage{hitPage(1)}}
	engine := newTestEngine(fake)

	result, err := engine.SearchCasesByProblem(context.Background(), SearchOptions{
		Keywords: []string{"defective product"},
		Limit:    10,
	})
	if err != nil {
		t.Fatalf("SearchCasesByProblem() error = %v", err)
	}

	if len(fake.searchCalls) != 1 {
		t.Fatalf("search called %d times, want 1", len(fake.searchCalls))
	}
	params := fake.searchCalls[0]
	if params.Get("type") != "o" {
		t.Errorf("type = %q, want o (opinions)", params.Get("type"))
	}
	if params.Get("cited_gt") != "0" {
		t.Errorf("cited_gt = %q, want 0", params.Get("cited_gt"))
	}
	if params.Get("page_size") != "20" {
		t.Errorf("page_size = %q, want 20 (2x limit)", params.Get("page_size"))
	}
	if result.Query == "" || result.DateRange != "recent-2years" {
		t.Errorf("audit fields: query=%q dateRange=%q", result.Query, result.DateRange)
	}
	if !result.ConsumerBoosted {
		t.Error("ConsumerBoosted = false, want true for a non-consumer keyword")
	}
}

func TestSearchCasesByProblemInvalidInputIssuesNoNetworkCall(t *testing.T) {
	fake := &fakeUpstream{}
	engine := newTestEngine(fake)

	_, err := engine.SearchCasesByProblem(context.Background(), SearchOptions{
		Keywords: []string{"", "   "},
	})
	mustCode(t, err, caselawerr.InvalidInput)
	if fake.upstreamCalls() != 0 {
		t.Errorf("upstream called %d times for invalid input, want 0", fake.upstreamCalls())
	}
}

func TestSearchCasesByProblemPropagatesUpstreamFailure(t *testing.T) {
	fake := &fakeUpstream{
		searchErr: caselawerr.New(caselawerr.RateLimited, "slow down"),
	}
	engine := newTestEngine(fake)

	_, err := engine.SearchCasesByProblem(context.Background(), SearchOptions{
		Keywords: []string{"lease"},
	})
	mustCode(t, err, caselawerr.RateLimited)
}
