package research

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"testing"

	"caselaw/internal/caselawerr"
	"caselaw/internal/courtlistener"
)

// fakeUpstream is a scriptable Upstream that records every call.
type fakeUpstream struct {
	searchPages []*courtlistener.SearchPage
	searchErr   error
	dockets     map[int]*courtlistener.Docket
	clusters    map[int]*courtlistener.Cluster
	opinions    map[int]*courtlistener.Opinion
	people      *courtlistener.PeoplePage
	peopleErr   error
	opinionErr  error

	searchCalls  []url.Values
	docketCalls  []int
	clusterCalls []int
	opinionCalls []int
	peopleCalls  []string
}

func (f *fakeUpstream) Search(ctx context.Context, params url.Values) (*courtlistener.SearchPage, error) {
	f.searchCalls = append(f.searchCalls, params)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if len(f.searchPages) == 0 {
		return &courtlistener.SearchPage{}, nil
	}
	page := f.searchPages[0]
	if len(f.searchPages) > 1 {
		f.searchPages = f.searchPages[1:]
	}
	return page, nil
}

func (f *fakeUpstream) Docket(ctx context.Context, id int) (*courtlistener.Docket, error) {
	f.docketCalls = append(f.docketCalls, id)
	if d, ok := f.dockets[id]; ok {
		return d, nil
	}
	return nil, caselawerr.New(caselawerr.NotFound, "record not found")
}

func (f *fakeUpstream) Cluster(ctx context.Context, id int) (*courtlistener.Cluster, error) {
	f.clusterCalls = append(f.clusterCalls, id)
	if c, ok := f.clusters[id]; ok {
		return c, nil
	}
	return nil, caselawerr.New(caselawerr.NotFound, "record not found")
}

func (f *fakeUpstream) Opinion(ctx context.Context, id int) (*courtlistener.Opinion, error) {
	f.opinionCalls = append(f.opinionCalls, id)
	if f.opinionErr != nil {
		return nil, f.opinionErr
	}
	if o, ok := f.opinions[id]; ok {
		return o, nil
	}
	return nil, caselawerr.New(caselawerr.NotFound, "record not found")
}

func (f *fakeUpstream) FindPeople(ctx context.Context, lastName string) (*courtlistener.PeoplePage, error) {
	f.peopleCalls = append(f.peopleCalls, lastName)
	if f.peopleErr != nil {
		return nil, f.peopleErr
	}
	if f.people != nil {
		return f.people, nil
	}
	return &courtlistener.PeoplePage{}, nil
}

func (f *fakeUpstream) upstreamCalls() int {
	return len(f.searchCalls) + len(f.docketCalls) + len(f.clusterCalls) +
		len(f.opinionCalls) + len(f.peopleCalls)
}

func newTestEngine(f *fakeUpstream) *Engine {
	return NewEngine(f, slog.New(slog.DiscardHandler))
}

// hitPage builds a search page of n opinion hits with descending ids.
func hitPage(n int) *courtlistener.SearchPage {
	page := &courtlistener.SearchPage{Count: n}
	for i := 0; i < n; i++ {
		page.Results = append(page.Results, courtlistener.SearchHit{
			ID:        1000 + i,
			ClusterID: 1000 + i,
			CaseName:  fmt.Sprintf("Case %d v. Lease", i),
			CourtID:   "ny-civ-ct",
			DateFiled: "2025-01-15",
			CiteCount: i,
			Snippet:   "a lease dispute",
		})
	}
	return page
}

func mustCode(t *testing.T, err error, want caselawerr.Code) {
	t.Helper()
	if caselawerr.CodeOf(err) != want {
		t.Fatalf("error = %v, want code %s", err, want)
	}
}
