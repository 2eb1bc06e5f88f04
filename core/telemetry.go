package core

import "time"

// TelemetryHook receives operational events around each API request.
//
// Hooks only ever see operational metadata: endpoints, models, timings,
// token counts, and error classifications. They never receive API keys,
// prompt content, or model output.
type TelemetryHook interface {
	OnRequestStart(event RequestStartEvent)
	OnRequestEnd(event RequestEndEvent)
}

// RequestStartEvent is emitted immediately before a request is sent.
type RequestStartEvent struct {
	// Endpoint is the API path, e.g. "/chat/completions".
	Endpoint string
	// Model is the model named in the request, if any.
	Model string
	// RequestID is the client-generated correlation id for this request.
	RequestID string
	Start     time.Time
}

// RequestEndEvent is emitted after a request completes or fails.
type RequestEndEvent struct {
	Endpoint  string
	Model     string
	RequestID string
	Start     time.Time
	End       time.Time
	// Attempts is the total number of attempts made, including retries.
	Attempts int
	// Usage carries token accounting when the response includes it.
	Usage *Usage
	// Err is non-nil when the request ultimately failed.
	Err error
}

// Duration returns the wall time spent on the request across all attempts.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Usage reports token consumption for a completed request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// NopTelemetry discards all events.
type NopTelemetry struct{}

func (NopTelemetry) OnRequestStart(RequestStartEvent) {}
func (NopTelemetry) OnRequestEnd(RequestEndEvent)     {}

var _ TelemetryHook = NopTelemetry{}
