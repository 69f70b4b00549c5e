package envelope

import (
	"encoding/json"
	"errors"
	"testing"

	"caselaw/internal/caselawerr"
)

func TestBuilderDefaults(t *testing.T) {
	resp := New().Data(map[string]int{"hits": 3}).Build()

	if resp.Status != StatusOK {
		t.Errorf("Status = %q, want ok", resp.Status)
	}
	if resp.SchemaVersion != CurrentSchemaVersion {
		t.Errorf("SchemaVersion = %q", resp.SchemaVersion)
	}
	if resp.Meta != nil || resp.Warnings != nil || resp.Error != nil {
		t.Errorf("unexpected extras: %+v", resp)
	}
}

func TestBuilderPartial(t *testing.T) {
	resp := New().Data("subset").Partial("2 of 3 opinions fetched").Build()

	if resp.Status != StatusPartial {
		t.Errorf("Status = %q, want partial", resp.Status)
	}
	if len(resp.Warnings) != 1 || resp.Warnings[0].Code != string(caselawerr.PartialResult) {
		t.Errorf("Warnings = %+v", resp.Warnings)
	}
}

func TestBuilderWarningWithCode(t *testing.T) {
	resp := New().WarningWithCode("CONSUMER_BOOST", "query was widened").Build()

	if resp.Status != StatusOK {
		t.Errorf("Status = %q, a coded warning must not degrade the status", resp.Status)
	}
	if len(resp.Warnings) != 1 || resp.Warnings[0].Code != "CONSUMER_BOOST" {
		t.Errorf("Warnings = %+v", resp.Warnings)
	}
}

func TestBuilderMeta(t *testing.T) {
	resp := New().
		WithTruncation(true, 10, 57, "ranked results trimmed").
		WithUpstreamCalls(2).
		WithDuration(120).
		Build()

	if resp.Meta == nil {
		t.Fatal("Meta = nil")
	}
	tr := resp.Meta.Truncation
	if tr == nil || !tr.IsTruncated || tr.Shown != 10 || tr.Total != 57 {
		t.Errorf("Truncation = %+v", tr)
	}
	if resp.Meta.UpstreamCalls != 2 || resp.Meta.DurationMs != 120 {
		t.Errorf("Meta = %+v", resp.Meta)
	}

	// Untruncated results add no metadata at all.
	clean := New().WithTruncation(false, 10, 10, "").WithUpstreamCalls(0).WithDuration(0).Build()
	if clean.Meta != nil {
		t.Errorf("Meta = %+v, want nil", clean.Meta)
	}
}

func TestBuilderSuggestCall(t *testing.T) {
	resp := New().SuggestCall("get_case_details",
		map[string]interface{}{"caseId": 101}, "fetch opinions").Build()

	if len(resp.SuggestedNextCalls) != 1 {
		t.Fatalf("SuggestedNextCalls = %+v", resp.SuggestedNextCalls)
	}
	call := resp.SuggestedNextCalls[0]
	if call.Tool != "get_case_details" || call.Params["caseId"] != 101 {
		t.Errorf("call = %+v", call)
	}
}

func TestFromErrorCoded(t *testing.T) {
	err := caselawerr.New(caselawerr.NotFound, "no cluster 42").
		WithSuggestion("search again").
		WithContext("caseId", 42)

	resp := FromError("get_case_details", err)
	if resp.Status != StatusError {
		t.Errorf("Status = %q", resp.Status)
	}
	e := resp.Error
	if e == nil || e.Code != "NOT_FOUND" || e.Tool != "get_case_details" {
		t.Fatalf("Error = %+v", e)
	}
	if e.Message != "no cluster 42" || e.Suggestion != "search again" {
		t.Errorf("Error = %+v", e)
	}
	if e.Context["caseId"] != 42 {
		t.Errorf("Context = %+v", e.Context)
	}
}

func TestFromErrorUncoded(t *testing.T) {
	resp := FromError("search_cases_by_problem", errors.New("nil map write"))
	if resp.Error == nil || resp.Error.Code != "INTERNAL_ERROR" {
		t.Fatalf("Error = %+v", resp.Error)
	}
}

func TestEnvelopeJSONShape(t *testing.T) {
	raw, err := json.Marshal(New().Data([]string{"a"}).Build())
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"schemaVersion", "status", "data"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("serialized envelope missing %q", key)
		}
	}
	for _, absent := range []string{"meta", "warnings", "error", "suggestedNextCalls"} {
		if _, ok := decoded[absent]; ok {
			t.Errorf("empty %q should be omitted", absent)
		}
	}
}
