package petrel

import (
	"github.com/rs/zerolog"

	"github.com/petrel-ai/petrel/core"
)

// LogHook is a core.TelemetryHook that writes structured request logs with
// zerolog. It logs endpoints, models, timings, attempt counts, and token
// usage; request and response content never reach the log.
type LogHook struct {
	logger zerolog.Logger
}

// NewLogHook wraps a zerolog logger as a telemetry hook.
func NewLogHook(logger zerolog.Logger) *LogHook {
	return &LogHook{logger: logger}
}

var _ core.TelemetryHook = (*LogHook)(nil)

func (h *LogHook) OnRequestStart(event core.RequestStartEvent) {
	h.logger.Debug().
		Str("endpoint", event.Endpoint).
		Str("model", event.Model).
		Str("request_id", event.RequestID).
		Msg("request start")
}

func (h *LogHook) OnRequestEnd(event core.RequestEndEvent) {
	log := h.logger.Info()
	if event.Err != nil {
		log = h.logger.Error().Err(event.Err)
	}
	log = log.
		Str("endpoint", event.Endpoint).
		Str("model", event.Model).
		Str("request_id", event.RequestID).
		Int("attempts", event.Attempts).
		Dur("duration", event.Duration())
	if event.Usage != nil {
		log = log.
			Int("prompt_tokens", event.Usage.PromptTokens).
			Int("completion_tokens", event.Usage.CompletionTokens).
			Int("total_tokens", event.Usage.TotalTokens)
	}
	log.Msg("request end")
}
