// Package petrel is an ergonomic client for the OpenAI REST API. Requests
// are assembled with fluent builders from the builders package, validated
// locally before any network traffic, and executed by a Client that handles
// authentication, retries, and telemetry.
package petrel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/petrel-ai/petrel/core"
)

// Client talks to the OpenAI API. Construct one with New or NewFromEnv; the
// zero value is not usable. A Client is safe for concurrent use.
type Client struct {
	cfg  core.Config
	http *http.Client
}

// New creates a Client from an API key and options.
func New(apiKey string, opts ...core.Option) *Client {
	return fromConfig(core.NewConfig(apiKey, opts...))
}

// NewFromEnv creates a Client from OPENAI_* environment variables.
func NewFromEnv(opts ...core.Option) (*Client, error) {
	cfg, err := core.FromEnv(opts...)
	if err != nil {
		return nil, err
	}
	return fromConfig(cfg), nil
}

func fromConfig(cfg core.Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, http: httpClient}
}

// apiError is the error envelope the API returns on failure.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// doJSON executes a JSON request against the API with retries and decodes
// the response into out. A nil out discards the body.
func (c *Client) doJSON(ctx context.Context, method, path, model string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encoding request: %v", core.ErrDecode, err)
		}
	}
	return c.do(ctx, model, func() (*http.Request, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return req, nil
	}, path, out)
}

// multipartField is one part of a multipart form body.
type multipartField struct {
	name     string
	value    string
	filename string
	data     []byte
}

// doMultipart executes a multipart form request, used by the file, image,
// and audio endpoints.
func (c *Client) doMultipart(ctx context.Context, path, model string, fields []multipartField, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range fields {
		if f.data != nil {
			part, err := writer.CreateFormFile(f.name, f.filename)
			if err != nil {
				return err
			}
			if _, err := part.Write(f.data); err != nil {
				return err
			}
			continue
		}
		if err := writer.WriteField(f.name, f.value); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}
	body := buf.Bytes()
	contentType := writer.FormDataContentType()

	return c.do(ctx, model, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		return req, nil
	}, path, out)
}

// do runs the retry loop around a request factory. The factory is invoked
// per attempt so each retry gets a fresh body reader.
func (c *Client) do(ctx context.Context, model string, build func() (*http.Request, error), endpoint string, out any) error {
	requestID := uuid.NewString()
	start := time.Now()
	c.cfg.Telemetry.OnRequestStart(core.RequestStartEvent{
		Endpoint:  endpoint,
		Model:     model,
		RequestID: requestID,
		Start:     start,
	})

	var lastErr error
	var usage *core.Usage
	attempts := 0
	for {
		attempts++
		usage, lastErr = c.attempt(build, requestID, out)
		if lastErr == nil {
			break
		}
		delay, retry := c.cfg.Retry.NextDelay(attempts-1, lastErr)
		if !retry {
			break
		}
		if err := core.SleepWithContext(ctx, delay); err != nil {
			lastErr = err
			break
		}
	}

	c.cfg.Telemetry.OnRequestEnd(core.RequestEndEvent{
		Endpoint:  endpoint,
		Model:     model,
		RequestID: requestID,
		Start:     start,
		End:       time.Now(),
		Attempts:  attempts,
		Usage:     usage,
		Err:       lastErr,
	})
	return lastErr
}

func (c *Client) attempt(build func() (*http.Request, error), requestID string, out any) (*core.Usage, error) {
	req, err := build()
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", core.ErrNetwork, err)
	}

	serverRequestID := resp.Header.Get("x-request-id")
	if resp.StatusCode >= 400 {
		return nil, normalizeError(resp.StatusCode, serverRequestID, data)
	}

	switch target := out.(type) {
	case nil:
	case *[]byte:
		// Binary endpoints (audio, file content) return raw bytes.
		*target = data
		return nil, nil
	default:
		if err := json.Unmarshal(data, target); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrDecode, err)
		}
	}
	return extractUsage(data), nil
}

func (c *Client) setHeaders(req *http.Request, requestID string) {
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey.Expose())
	req.Header.Set("X-Client-Request-Id", requestID)
	if c.cfg.OrgID != "" {
		req.Header.Set("OpenAI-Organization", c.cfg.OrgID)
	}
	if c.cfg.ProjectID != "" {
		req.Header.Set("OpenAI-Project", c.cfg.ProjectID)
	}
	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}
}

// normalizeError maps an HTTP failure to a ProviderError wrapping the
// matching classification sentinel.
func normalizeError(status int, requestID string, body []byte) error {
	var envelope apiError
	message := strings.TrimSpace(string(body))
	code := ""
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
		code = envelope.Error.Code
	}

	var sentinel error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		sentinel = core.ErrUnauthorized
	case status == http.StatusTooManyRequests:
		sentinel = core.ErrRateLimited
	case status == http.StatusNotFound:
		sentinel = core.ErrNotFound
	case status >= 500:
		sentinel = core.ErrServer
	default:
		sentinel = core.ErrBadRequest
	}

	return &core.ProviderError{
		Status:    status,
		RequestID: requestID,
		Code:      code,
		Type:      envelope.Error.Type,
		Message:   message,
		Err:       sentinel,
	}
}

// extractUsage pulls the usage block out of a raw response body for
// telemetry without depending on the response shape.
func extractUsage(data []byte) *core.Usage {
	var probe struct {
		Usage *core.Usage `json:"usage"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil
	}
	return probe.Usage
}

// appendField adds a plain form value, skipping empty strings so unset
// options stay off the wire.
func appendField(fields []multipartField, name, value string) []multipartField {
	if value == "" {
		return fields
	}
	return append(fields, multipartField{name: name, value: value})
}
