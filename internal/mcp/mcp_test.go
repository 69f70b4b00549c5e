package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"caselaw/internal/envelope"
)

func TestServerRegistersAllTools(t *testing.T) {
	server := newTestServer(t, &stubUpstream{})

	defs := server.GetToolDefinitions()
	if len(defs) != 8 {
		t.Fatalf("tool definitions = %d, want 8", len(defs))
	}
	for _, def := range defs {
		if _, ok := server.tools[def.Name]; !ok {
			t.Errorf("tool %q declared but not registered", def.Name)
		}
	}
}

func TestInitialize(t *testing.T) {
	server := newTestServer(t, &stubUpstream{})

	response := sendRequest(t, server, "initialize", 1, map[string]interface{}{
		"protocolVersion": "2024-11-05",
		"clientInfo":      map[string]interface{}{"name": "test-client"},
	})
	if response.Error != nil {
		t.Fatalf("initialize error: %+v", response.Error)
	}

	result, ok := response.Result.(*InitializeResult)
	if !ok {
		t.Fatalf("result type = %T", response.Result)
	}
	if result.ProtocolVersion != "2024-11-05" {
		t.Errorf("ProtocolVersion = %q", result.ProtocolVersion)
	}
	if result.ServerInfo.Name != "caselaw" {
		t.Errorf("ServerInfo.Name = %q", result.ServerInfo.Name)
	}
}

func TestListTools(t *testing.T) {
	server := newTestServer(t, &stubUpstream{})

	response := sendRequest(t, server, "tools/list", 2, nil)
	if response.Error != nil {
		t.Fatalf("tools/list error: %+v", response.Error)
	}
	result, ok := response.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result type = %T", response.Result)
	}
	tools, ok := result["tools"].([]Tool)
	if !ok || len(tools) != 8 {
		t.Fatalf("tools = %T (%d entries), want 8", result["tools"], len(tools))
	}
	for _, tool := range tools {
		if tool.InputSchema["type"] != "object" {
			t.Errorf("tool %q schema type = %v", tool.Name, tool.InputSchema["type"])
		}
	}
}

func TestUnknownMethod(t *testing.T) {
	server := newTestServer(t, &stubUpstream{})

	response := sendRequest(t, server, "resources/list", 3, nil)
	if response.Error == nil || response.Error.Code != MethodNotFound {
		t.Fatalf("response = %+v, want method-not-found error", response)
	}
}

func TestNotificationProducesNoResponse(t *testing.T) {
	server := newTestServer(t, &stubUpstream{})

	response := server.handleMessage(&Message{
		Jsonrpc: "2.0",
		Method:  "notifications/initialized",
	})
	if response != nil {
		t.Fatalf("notification got response %+v", response)
	}
}

func TestCallToolSearchHappyPath(t *testing.T) {
	upstream := &stubUpstream{page: searchResultsPage()}
	server := newTestServer(t, upstream)

	_, resp := callTool(t, server, "search_cases_by_problem", map[string]interface{}{
		"keywords": []interface{}{"security deposit", "lease"},
	})

	if resp.Status != envelope.StatusOK {
		t.Fatalf("status = %q, want ok", resp.Status)
	}
	if upstream.searchCalls != 1 {
		t.Errorf("search calls = %d, want 1", upstream.searchCalls)
	}
	if len(resp.SuggestedNextCalls) == 0 || resp.SuggestedNextCalls[0].Tool != "get_case_details" {
		t.Errorf("SuggestedNextCalls = %+v", resp.SuggestedNextCalls)
	}
}

func TestCallToolSearchBoostWarningIsCoded(t *testing.T) {
	server := newTestServer(t, &stubUpstream{page: searchResultsPage()})

	// No keyword mentions consumer, so the boost fires; a non-consumer
	// case type makes that worth flagging with a machine-readable code.
	_, resp := callTool(t, server, "search_cases_by_problem", map[string]interface{}{
		"keywords": []interface{}{"security deposit"},
		"caseType": "contract",
	})

	if resp.Status != envelope.StatusOK {
		t.Fatalf("status = %q, want ok", resp.Status)
	}
	found := false
	for _, w := range resp.Warnings {
		if w.Code == "CONSUMER_BOOST" {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %+v, want one coded CONSUMER_BOOST", resp.Warnings)
	}
}

func TestCallToolUnknownTool(t *testing.T) {
	server := newTestServer(t, &stubUpstream{})

	response, _ := callTool(t, server, "no_such_tool", nil)
	if response.Error == nil || response.Error.Code != MethodNotFound {
		t.Fatalf("response = %+v, want method-not-found error", response)
	}
}

func TestCallToolMissingName(t *testing.T) {
	server := newTestServer(t, &stubUpstream{})

	response := sendRequest(t, server, "tools/call", 4, map[string]interface{}{
		"arguments": map[string]interface{}{},
	})
	if response.Error == nil || response.Error.Code != InvalidParams {
		t.Fatalf("response = %+v, want invalid-params error", response)
	}
}

func TestCallToolSchemaViolationReturnsErrorEnvelope(t *testing.T) {
	upstream := &stubUpstream{}
	server := newTestServer(t, upstream)

	// keywords is required by the schema.
	_, resp := callTool(t, server, "search_cases_by_problem", map[string]interface{}{
		"caseType": "consumer",
	})

	if resp.Status != envelope.StatusError {
		t.Fatalf("status = %q, want error", resp.Status)
	}
	if resp.Error == nil || resp.Error.Code != "INVALID_INPUT" {
		t.Fatalf("error = %+v, want INVALID_INPUT", resp.Error)
	}
	if resp.Error.Tool != "search_cases_by_problem" {
		t.Errorf("error tool = %q", resp.Error.Tool)
	}
	// The handler never ran.
	if upstream.totalCalls != 0 {
		t.Errorf("upstream calls = %d, want 0", upstream.totalCalls)
	}
}

func TestCallToolHandlerErrorReturnsErrorEnvelope(t *testing.T) {
	server := newTestServer(t, &stubUpstream{})

	// The stub has no cluster or docket records, so the lookup misses.
	_, resp := callTool(t, server, "get_case_details", map[string]interface{}{
		"caseId": float64(404),
	})
	if resp.Status != envelope.StatusError {
		t.Fatalf("status = %q, want error", resp.Status)
	}
	if resp.Error == nil || resp.Error.Code != "NOT_FOUND" {
		t.Fatalf("error = %+v, want NOT_FOUND", resp.Error)
	}
}

func TestCallToolPanicIsContained(t *testing.T) {
	server := newTestServer(t, &stubUpstream{})
	server.tools["boom"] = registeredTool{
		def: Tool{Name: "boom", InputSchema: map[string]interface{}{"type": "object"}},
		handler: func(args map[string]interface{}) (*envelope.Response, error) {
			panic("kaboom")
		},
	}

	response, resp := callTool(t, server, "boom", nil)
	if response.Error != nil {
		t.Fatalf("panic escaped as protocol error: %+v", response.Error)
	}
	if resp.Status != envelope.StatusError {
		t.Fatalf("status = %q, want error", resp.Status)
	}
	if !strings.Contains(resp.Error.Message, "kaboom") {
		t.Errorf("error message = %q", resp.Error.Message)
	}
}

func TestStartProcessesStream(t *testing.T) {
	server := newTestServer(t, &stubUpstream{page: searchResultsPage()})

	var input bytes.Buffer
	for i, req := range []map[string]interface{}{
		{"method": "initialize", "params": map[string]interface{}{}},
		{"method": "tools/list"},
	} {
		line, err := json.Marshal(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      i + 1,
			"method":  req["method"],
			"params":  req["params"],
		})
		if err != nil {
			t.Fatal(err)
		}
		input.Write(line)
		input.WriteByte('\n')
	}

	var output bytes.Buffer
	server.SetStdin(&input)
	server.SetStdout(&output)

	if err := server.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("responses = %d, want 2", len(lines))
	}
	for i, line := range lines {
		var msg Message
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			t.Fatalf("response %d is not valid JSON: %v", i, err)
		}
		if msg.Error != nil {
			t.Errorf("response %d carries error %+v", i, msg.Error)
		}
		if fmt.Sprint(msg.Id) != fmt.Sprint(i+1) {
			t.Errorf("response %d id = %v", i, msg.Id)
		}
	}
}
