// Package envelope provides the standardized response wrapper for all tool
// responses. Every invocation returns one envelope; callers distinguish
// success from degraded or failed results by inspecting the status field,
// never by exception handling.
package envelope

// Status classifies a tool response.
type Status string

const (
	// StatusOK indicates a complete result.
	StatusOK Status = "ok"
	// StatusPartial indicates some sub-fetches failed but the returned
	// subset is usable (degrade-and-annotate over fail-the-call).
	StatusPartial Status = "partial"
	// StatusError indicates the tool produced no usable data.
	StatusError Status = "error"
)

// Truncation describes result trimming.
type Truncation struct {
	IsTruncated bool   `json:"isTruncated"`
	Shown       int    `json:"shown,omitempty"`
	Total       int    `json:"total,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// Meta holds response metadata.
type Meta struct {
	Truncation *Truncation `json:"truncation,omitempty"`
	// UpstreamCalls counts network requests issued for this invocation.
	UpstreamCalls int `json:"upstreamCalls,omitempty"`
	// DurationMs is wall time for the whole invocation.
	DurationMs int64 `json:"durationMs,omitempty"`
}

// Warning represents a non-fatal issue.
type Warning struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// SuggestedCall represents a recommended follow-up tool call.
type SuggestedCall struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params,omitempty"`
	Reason string                 `json:"reason,omitempty"`
}

// ErrorInfo is the serialized form of a tool failure. It is always carried
// inside a well-formed envelope, never raised past the dispatcher.
type ErrorInfo struct {
	Tool       string                 `json:"tool"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Suggestion string                 `json:"suggestion,omitempty"`
	Context    map[string]interface{} `json:"context,omitempty"`
}

// Response is the standard envelope for all tool responses.
type Response struct {
	SchemaVersion      string          `json:"schemaVersion"`
	Status             Status          `json:"status"`
	Data               interface{}     `json:"data"`
	Meta               *Meta           `json:"meta,omitempty"`
	Warnings           []Warning       `json:"warnings,omitempty"`
	Error              *ErrorInfo      `json:"error,omitempty"`
	SuggestedNextCalls []SuggestedCall `json:"suggestedNextCalls,omitempty"`
}

// CurrentSchemaVersion is the current envelope schema version.
const CurrentSchemaVersion = "1.0"
