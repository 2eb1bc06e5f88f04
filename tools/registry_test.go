package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrel-ai/petrel/builders"
	"github.com/petrel-ai/petrel/core"
)

func weatherTool() Tool {
	return Func{
		ToolName:        "get_weather",
		ToolDescription: "Fetch current weather for a city",
		ToolSchema:      json.RawMessage(`{"type":"object","properties":{"city":{"type":"string"}}}`),
		Fn: func(ctx context.Context, args json.RawMessage) (string, error) {
			return `{"temp_c":18}`, nil
		},
	}
}

func weatherCall(args string) builders.ToolCall {
	return builders.ToolCall{
		ID:   "call_1",
		Type: "function",
		Function: builders.FunctionCall{
			Name:      "get_weather",
			Arguments: args,
		},
	}
}

func TestRegistryRegisterAndExecute(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(weatherTool()))

	result, err := reg.Execute(context.Background(), weatherCall(`{"city":"Oslo"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"temp_c":18}`, result)
}

func TestRegistryDuplicateRejected(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(weatherTool()))

	err := reg.Register(weatherTool())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateTool)
}

func TestRegistryUnknownTool(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Execute(context.Background(), weatherCall(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestRegistryListSorted(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, reg.Register(Func{
			ToolName:        name,
			ToolDescription: "d",
			ToolSchema:      json.RawMessage(`{"type":"object"}`),
			Fn: func(ctx context.Context, args json.RawMessage) (string, error) {
				return "", nil
			},
		}))
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.List())
}

func TestRegistryDefinitions(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(weatherTool()))

	defs := reg.Definitions()
	require.Len(t, defs, 1)
	assert.Equal(t, "function", defs[0].Type)
	assert.Equal(t, "get_weather", defs[0].Function.Name)

	// Definitions must be accepted by the chat builder's tool validation.
	_, err := builders.NewChat("gpt-4o").User("hi").Tools(defs...).Build()
	assert.NoError(t, err)
}

func TestCallInfoReachesTool(t *testing.T) {
	reg := NewRegistry()
	var seen CallInfo
	require.NoError(t, reg.Register(Func{
		ToolName:        "probe",
		ToolDescription: "d",
		ToolSchema:      json.RawMessage(`{"type":"object"}`),
		Fn: func(ctx context.Context, args json.RawMessage) (string, error) {
			seen, _ = CallInfoFrom(ctx)
			return "", nil
		},
	}))

	call := builders.ToolCall{
		ID: "call_42", Type: "function",
		Function: builders.FunctionCall{Name: "probe", Arguments: "{}"},
	}
	_, err := reg.Execute(context.Background(), call)
	require.NoError(t, err)
	assert.Equal(t, "probe", seen.ToolName)
	assert.Equal(t, "call_42", seen.CallID)
}

func TestValidationMiddleware(t *testing.T) {
	reg := NewRegistry()
	reg.Use(WithValidation())
	require.NoError(t, reg.Register(weatherTool()))

	_, err := reg.Execute(context.Background(), weatherCall(`{broken`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid JSON")

	_, err = reg.Execute(context.Background(), weatherCall(`{"city":"Oslo"}`))
	assert.NoError(t, err)
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	mk := func(name string) Middleware {
		return func(next CallFunc) CallFunc {
			return func(ctx context.Context, args json.RawMessage) (string, error) {
				order = append(order, name)
				return next(ctx, args)
			}
		}
	}

	invoke := Chain(func(ctx context.Context, args json.RawMessage) (string, error) {
		order = append(order, "tool")
		return "", nil
	}, mk("outer"), mk("inner"))

	_, err := invoke(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "tool"}, order)
}

func TestRetryMiddleware(t *testing.T) {
	attempts := 0
	invoke := Chain(func(ctx context.Context, args json.RawMessage) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	}, WithRetry(core.RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}))

	result, err := invoke(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, attempts)
}

func TestTimeoutMiddleware(t *testing.T) {
	invoke := Chain(func(ctx context.Context, args json.RawMessage) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Second):
			return "too late", nil
		}
	}, WithTimeout(5*time.Millisecond))

	_, err := invoke(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestParseArgs(t *testing.T) {
	type weatherArgs struct {
		City string `json:"city"`
	}

	args, err := ParseArgs[weatherArgs](weatherCall(`{"city":"Oslo"}`))
	require.NoError(t, err)
	assert.Equal(t, "Oslo", args.City)
}

func TestParseArgsRejectsUnknownFields(t *testing.T) {
	type weatherArgs struct {
		City string `json:"city"`
	}

	_, err := ParseArgs[weatherArgs](weatherCall(`{"city":"Oslo","zip":"0150"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get_weather")
}

func TestResult(t *testing.T) {
	out, err := Result(map[string]int{"temp_c": 18})
	require.NoError(t, err)
	assert.JSONEq(t, `{"temp_c":18}`, out)
}
