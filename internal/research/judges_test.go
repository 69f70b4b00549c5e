package research

import (
	"context"
	"testing"

	"caselaw/internal/caselawerr"
	"caselaw/internal/courtlistener"
)

func judgesFake() *fakeUpstream {
	return &fakeUpstream{
		people: &courtlistener.PeoplePage{
			Count: 2,
			Results: []courtlistener.Person{
				{ID: 1, NameFirst: "Robert", NameLast: "Smithson"},
				{ID: 2, NameFirst: "Jane", NameLast: "Smith"},
			},
		},
		searchPages: []*courtlistener.SearchPage{{
			Count: 4,
			Results: []courtlistener.SearchHit{
				{
					ClusterID: 1, CourtID: "ny-civ-ct", CaseName: "Consumer v. Shop",
					Opinions: []courtlistener.NestedOpinion{{ID: 10, Type: "lead-opinion"}},
				},
				{
					ClusterID: 2, CourtID: "ny-civ-ct", CaseName: "Buyer v. Seller",
					Opinions: []courtlistener.NestedOpinion{{ID: 11, Type: "lead-opinion"}},
				},
				{
					ClusterID: 3, CourtID: "ny-ct-app", CaseName: "Big v. Appeal",
					Opinions: []courtlistener.NestedOpinion{{ID: 12, Type: "dissent"}},
				},
				// Hit without nested opinion documents.
				{ClusterID: 4, CourtID: "ny-civ-ct", CaseName: "Quiet v. Docket"},
			},
		}},
	}
}

func TestGetJudgeAnalysisMatchesFullName(t *testing.T) {
	fake := judgesFake()
	engine := newTestEngine(fake)

	result, err := engine.GetJudgeAnalysis(context.Background(), JudgeOptions{
		JudgeName: "Jane Smith",
		CaseType:  "consumer",
	})
	if err != nil {
		t.Fatalf("GetJudgeAnalysis() error = %v", err)
	}

	if result.MatchedJudge != "Jane Smith" || result.MatchedJudgeID != 2 {
		t.Errorf("matched %q (id %d), want Jane Smith (2)", result.MatchedJudge, result.MatchedJudgeID)
	}
	if result.CandidateCount != 2 {
		t.Errorf("CandidateCount = %d, want 2", result.CandidateCount)
	}
	if fake.peopleCalls[0] != "Smith" {
		t.Errorf("people lookup used %q, want surname Smith", fake.peopleCalls[0])
	}
	if got := fake.searchCalls[0].Get("judge"); got != "Jane Smith" {
		t.Errorf("judge filter = %q", got)
	}
}

func TestGetJudgeAnalysisFirstMatchWinsOnAmbiguity(t *testing.T) {
	engine := newTestEngine(judgesFake())

	// The bare surname matches both candidates; the first wins.
	result, err := engine.GetJudgeAnalysis(context.Background(), JudgeOptions{
		JudgeName: "Smith",
		CaseType:  "consumer",
	})
	if err != nil {
		t.Fatalf("GetJudgeAnalysis() error = %v", err)
	}
	if result.MatchedJudgeID != 1 {
		t.Errorf("MatchedJudgeID = %d, want first candidate 1", result.MatchedJudgeID)
	}
}

func TestGetJudgeAnalysisAggregates(t *testing.T) {
	engine := newTestEngine(judgesFake())

	result, err := engine.GetJudgeAnalysis(context.Background(), JudgeOptions{
		JudgeName: "Jane Smith",
		CaseType:  "consumer",
	})
	if err != nil {
		t.Fatalf("GetJudgeAnalysis() error = %v", err)
	}

	if result.TotalOpinions != 4 {
		t.Errorf("TotalOpinions = %d, want 4", result.TotalOpinions)
	}
	if result.OpinionsByType["lead-opinion"] != 2 || result.OpinionsByType["dissent"] != 1 {
		t.Errorf("OpinionsByType = %v", result.OpinionsByType)
	}
	if result.OpinionsByType["unknown"] != 1 {
		t.Errorf("OpinionsByType[unknown] = %d, want 1 for the hit without nested opinions", result.OpinionsByType["unknown"])
	}
	if result.OpinionsByCourt["ny-civ-ct"] != 3 || result.OpinionsByCourt["ny-ct-app"] != 1 {
		t.Errorf("OpinionsByCourt = %v", result.OpinionsByCourt)
	}
}

func TestGetJudgeAnalysisNoMatchIsNotFound(t *testing.T) {
	engine := newTestEngine(&fakeUpstream{})
	_, err := engine.GetJudgeAnalysis(context.Background(), JudgeOptions{
		JudgeName: "Nobody",
		CaseType:  "consumer",
	})
	mustCode(t, err, caselawerr.NotFound)
}

func TestGetJudgeAnalysisRequiredInputs(t *testing.T) {
	engine := newTestEngine(&fakeUpstream{})

	_, err := engine.GetJudgeAnalysis(context.Background(), JudgeOptions{CaseType: "consumer"})
	mustCode(t, err, caselawerr.InvalidInput)

	_, err = engine.GetJudgeAnalysis(context.Background(), JudgeOptions{JudgeName: "Smith"})
	mustCode(t, err, caselawerr.InvalidInput)
}

func TestGetJudgeAnalysisCourtOverride(t *testing.T) {
	fake := judgesFake()
	engine := newTestEngine(fake)

	_, err := engine.GetJudgeAnalysis(context.Background(), JudgeOptions{
		JudgeName: "Smith",
		CaseType:  "consumer",
		Court:     "ny-ct-app",
	})
	if err != nil {
		t.Fatalf("GetJudgeAnalysis() error = %v", err)
	}
	if got := fake.searchCalls[0].Get("court"); got != "ny-ct-app" {
		t.Errorf("court = %q, want ny-ct-app only", got)
	}
}
