package tools

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/petrel-ai/petrel/core"
)

// CallFunc is the invocation signature middleware wraps.
type CallFunc func(ctx context.Context, args json.RawMessage) (string, error)

// Middleware wraps a tool invocation with cross-cutting behavior.
type Middleware func(next CallFunc) CallFunc

// Chain composes middleware around an invocation. The first middleware is
// outermost.
func Chain(invoke CallFunc, mw ...Middleware) CallFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		invoke = mw[i](invoke)
	}
	return invoke
}

// CallInfo identifies the tool call being executed, available to middleware
// and tools through the context.
type CallInfo struct {
	ToolName string
	CallID   string
}

type callInfoKey struct{}

func withCallInfo(ctx context.Context, info CallInfo) context.Context {
	return context.WithValue(ctx, callInfoKey{}, info)
}

// CallInfoFrom extracts call info from the context.
func CallInfoFrom(ctx context.Context) (CallInfo, bool) {
	info, ok := ctx.Value(callInfoKey{}).(CallInfo)
	return info, ok
}

// WithValidation rejects arguments that are not syntactically valid JSON
// before they reach the tool.
func WithValidation() Middleware {
	return func(next CallFunc) CallFunc {
		return func(ctx context.Context, args json.RawMessage) (string, error) {
			if len(args) > 0 && !json.Valid(args) {
				return "", errors.New("tool arguments are not valid JSON")
			}
			return next(ctx, args)
		}
	}
}

// WithTimeout bounds a tool invocation.
func WithTimeout(d time.Duration) Middleware {
	return func(next CallFunc) CallFunc {
		return func(ctx context.Context, args json.RawMessage) (string, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, args)
		}
	}
}

// WithRetry retries failed invocations under the given policy. Context
// cancellation stops the retries.
func WithRetry(policy core.RetryPolicy) Middleware {
	return func(next CallFunc) CallFunc {
		return func(ctx context.Context, args json.RawMessage) (string, error) {
			var result string
			var err error
			for attempt := 0; ; attempt++ {
				result, err = next(ctx, args)
				if err == nil {
					return result, nil
				}
				delay, retry := policy.NextDelay(attempt, err)
				if !retry {
					return "", err
				}
				if sleepErr := core.SleepWithContext(ctx, delay); sleepErr != nil {
					return "", sleepErr
				}
			}
		}
	}
}
