package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// WithLogging logs each invocation with zerolog: tool name, call id,
// duration, and outcome. Arguments and results are not logged.
func WithLogging(logger zerolog.Logger) Middleware {
	return func(next CallFunc) CallFunc {
		return func(ctx context.Context, args json.RawMessage) (string, error) {
			info, _ := CallInfoFrom(ctx)
			start := time.Now()
			result, err := next(ctx, args)

			log := logger.Info()
			if err != nil {
				log = logger.Error().Err(err)
			}
			log.
				Str("tool", info.ToolName).
				Str("call_id", info.CallID).
				Dur("duration", time.Since(start)).
				Msg("tool call")
			return result, err
		}
	}
}
