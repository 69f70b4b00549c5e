package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"testing"

	"caselaw/internal/caselawerr"
	"caselaw/internal/courtlistener"
	"caselaw/internal/envelope"
	"caselaw/internal/research"
	"caselaw/internal/version"
)

// stubUpstream is a canned research.Upstream for dispatcher tests.
type stubUpstream struct {
	page      *courtlistener.SearchPage
	searchErr error

	searchCalls int
	totalCalls  int
}

func (f *stubUpstream) Search(ctx context.Context, params url.Values) (*courtlistener.SearchPage, error) {
	f.searchCalls++
	f.totalCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.page != nil {
		return f.page, nil
	}
	return &courtlistener.SearchPage{}, nil
}

func (f *stubUpstream) Docket(ctx context.Context, id int) (*courtlistener.Docket, error) {
	f.totalCalls++
	return nil, caselawerr.New(caselawerr.NotFound, "record not found")
}

func (f *stubUpstream) Cluster(ctx context.Context, id int) (*courtlistener.Cluster, error) {
	f.totalCalls++
	return nil, caselawerr.New(caselawerr.NotFound, "record not found")
}

func (f *stubUpstream) Opinion(ctx context.Context, id int) (*courtlistener.Opinion, error) {
	f.totalCalls++
	return nil, caselawerr.New(caselawerr.NotFound, "record not found")
}

func (f *stubUpstream) FindPeople(ctx context.Context, lastName string) (*courtlistener.PeoplePage, error) {
	f.totalCalls++
	return &courtlistener.PeoplePage{}, nil
}

// newTestServer creates an MCP server over a stub upstream.
func newTestServer(t *testing.T, upstream *stubUpstream) *Server {
	t.Helper()
	engine := research.NewEngine(upstream, slog.New(slog.DiscardHandler))
	return NewServer(version.Version, engine, slog.New(slog.DiscardHandler))
}

// sendRequest dispatches one request through the message handler.
func sendRequest(t *testing.T, server *Server, method string, id int, params interface{}) *Message {
	t.Helper()
	return server.handleMessage(&Message{
		Jsonrpc: "2.0",
		Id:      id,
		Method:  method,
		Params:  params,
	})
}

// callTool runs tools/call and decodes the envelope out of the text
// content block.
func callTool(t *testing.T, server *Server, tool string, args map[string]interface{}) (*Message, *envelope.Response) {
	t.Helper()
	response := sendRequest(t, server, "tools/call", 7, map[string]interface{}{
		"name":      tool,
		"arguments": args,
	})
	if response == nil {
		t.Fatal("tools/call produced no response")
	}
	if response.Error != nil {
		return response, nil
	}
	return response, decodeEnvelope(t, response)
}

func decodeEnvelope(t *testing.T, response *Message) *envelope.Response {
	t.Helper()
	raw, err := json.Marshal(response.Result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	var wrapper struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		t.Fatalf("unmarshal content wrapper: %v", err)
	}
	if len(wrapper.Content) != 1 || wrapper.Content[0].Type != "text" {
		t.Fatalf("unexpected content shape: %+v", wrapper.Content)
	}
	var resp envelope.Response
	if err := json.Unmarshal([]byte(wrapper.Content[0].Text), &resp); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return &resp
}

func searchResultsPage() *courtlistener.SearchPage {
	return &courtlistener.SearchPage{
		Count: 2,
		Results: []courtlistener.SearchHit{
			{ID: 101, ClusterID: 101, CaseName: "Tenant v. Landlord", CourtID: "ny-civ-ct", DateFiled: "2025-04-01", CiteCount: 12, Snippet: "security deposit withheld"},
			{ID: 102, ClusterID: 102, CaseName: "Buyer v. Dealer", CourtID: "ny-civ-ct", DateFiled: "2025-02-11", CiteCount: 3, Snippet: "warranty claim"},
		},
	}
}
