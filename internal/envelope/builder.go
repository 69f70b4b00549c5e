package envelope

import (
	stderrors "errors"

	"caselaw/internal/caselawerr"
)

// Builder constructs Response envelopes using a fluent API.
type Builder struct {
	resp *Response
}

// New creates a new envelope builder with status ok.
func New() *Builder {
	return &Builder{
		resp: &Response{
			SchemaVersion: CurrentSchemaVersion,
			Status:        StatusOK,
		},
	}
}

// Data sets the tool-specific payload.
func (b *Builder) Data(data interface{}) *Builder {
	b.resp.Data = data
	return b
}

// Partial downgrades the status and records why the result is degraded.
func (b *Builder) Partial(reason string) *Builder {
	b.resp.Status = StatusPartial
	b.resp.Warnings = append(b.resp.Warnings, Warning{
		Code:    string(caselawerr.PartialResult),
		Message: reason,
	})
	return b
}

// Warning adds a warning message.
func (b *Builder) Warning(msg string) *Builder {
	b.resp.Warnings = append(b.resp.Warnings, Warning{Message: msg})
	return b
}

// WarningWithCode adds a warning with a machine-readable code.
func (b *Builder) WarningWithCode(code, msg string) *Builder {
	b.resp.Warnings = append(b.resp.Warnings, Warning{Code: code, Message: msg})
	return b
}

// WithTruncation adds truncation metadata.
func (b *Builder) WithTruncation(truncated bool, shown, total int, reason string) *Builder {
	if !truncated {
		return b
	}
	if b.resp.Meta == nil {
		b.resp.Meta = &Meta{}
	}
	b.resp.Meta.Truncation = &Truncation{
		IsTruncated: true,
		Shown:       shown,
		Total:       total,
		Reason:      reason,
	}
	return b
}

// WithUpstreamCalls records how many network requests this invocation made.
func (b *Builder) WithUpstreamCalls(n int) *Builder {
	if n <= 0 {
		return b
	}
	if b.resp.Meta == nil {
		b.resp.Meta = &Meta{}
	}
	b.resp.Meta.UpstreamCalls = n
	return b
}

// WithDuration records invocation wall time.
func (b *Builder) WithDuration(ms int64) *Builder {
	if ms <= 0 {
		return b
	}
	if b.resp.Meta == nil {
		b.resp.Meta = &Meta{}
	}
	b.resp.Meta.DurationMs = ms
	return b
}

// SuggestCall adds a recommended follow-up tool call.
func (b *Builder) SuggestCall(tool string, params map[string]interface{}, reason string) *Builder {
	b.resp.SuggestedNextCalls = append(b.resp.SuggestedNextCalls, SuggestedCall{
		Tool:   tool,
		Params: params,
		Reason: reason,
	})
	return b
}

// Build returns the completed response envelope.
func (b *Builder) Build() *Response {
	return b.resp
}

// FromError builds a complete error envelope for a failed tool invocation.
// Coded errors keep their code, suggestion and context; anything else is
// reported as INTERNAL_ERROR.
func FromError(toolName string, err error) *Response {
	info := &ErrorInfo{
		Tool:    toolName,
		Code:    string(caselawerr.Internal),
		Message: err.Error(),
	}

	var coded *caselawerr.Error
	if stderrors.As(err, &coded) {
		info.Code = string(coded.Code)
		info.Message = coded.Message
		info.Suggestion = coded.Suggestion
		info.Context = coded.Context
	}

	return &Response{
		SchemaVersion: CurrentSchemaVersion,
		Status:        StatusError,
		Error:         info,
	}
}
