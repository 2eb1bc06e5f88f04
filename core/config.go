package core

import (
	"net/http"
	"os"
	"strconv"
	"time"
)

// DefaultBaseURL is the OpenAI API root used when no override is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

// DefaultModel is used by helpers that need a model when none was set.
const DefaultModel = "gpt-4"

// Config holds everything a client needs to talk to the API. The zero value
// is not usable; construct one with NewConfig or FromEnv.
type Config struct {
	APIKey     Secret
	BaseURL    string
	Model      string
	OrgID      string
	ProjectID  string
	Headers    map[string]string
	HTTPClient *http.Client
	Timeout    time.Duration
	Retry      RetryPolicy
	Telemetry  TelemetryHook
}

// Option mutates a Config during construction.
type Option func(*Config)

// NewConfig builds a Config from an API key and options.
func NewConfig(apiKey string, opts ...Option) Config {
	cfg := Config{
		APIKey:    NewSecret(apiKey),
		BaseURL:   DefaultBaseURL,
		Model:     DefaultModel,
		Timeout:   60 * time.Second,
		Retry:     DefaultRetryConfig(),
		Telemetry: NopTelemetry{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// FromEnv builds a Config from the standard OPENAI_* environment variables.
// OPENAI_API_KEY is required; the rest are optional overrides.
func FromEnv(opts ...Option) (Config, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return Config{}, &MissingFieldError{Field: "OPENAI_API_KEY"}
	}

	envOpts := []Option{}
	if base := firstEnv("OPENAI_BASE_URL", "OPENAI_API_BASE"); base != "" {
		envOpts = append(envOpts, WithBaseURL(base))
	}
	if org := os.Getenv("OPENAI_ORGANIZATION"); org != "" {
		envOpts = append(envOpts, WithOrganization(org))
	}
	if project := os.Getenv("OPENAI_PROJECT"); project != "" {
		envOpts = append(envOpts, WithProject(project))
	}
	if model := os.Getenv("OPENAI_DEFAULT_MODEL"); model != "" {
		envOpts = append(envOpts, WithModel(model))
	}
	if raw := os.Getenv("OPENAI_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			envOpts = append(envOpts, WithTimeout(time.Duration(secs)*time.Second))
		}
	}
	if raw := os.Getenv("OPENAI_MAX_RETRIES"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			rc := DefaultRetryConfig()
			rc.MaxRetries = n
			envOpts = append(envOpts, WithRetryPolicy(rc))
		}
	}

	return NewConfig(key, append(envOpts, opts...)...), nil
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// WithBaseURL overrides the API root, e.g. for proxies or compatible
// servers.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithModel sets the default model callers fall back to when a request does
// not name one.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithOrganization sets the OpenAI-Organization header.
func WithOrganization(org string) Option {
	return func(c *Config) { c.OrgID = org }
}

// WithProject sets the OpenAI-Project header.
func WithProject(project string) Option {
	return func(c *Config) { c.ProjectID = project }
}

// WithHeader adds a custom header to every request.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = map[string]string{}
		}
		c.Headers[key] = value
	}
}

// WithHTTPClient supplies a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) { c.HTTPClient = client }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Config) { c.Retry = policy }
}

// WithTelemetry installs a telemetry hook.
func WithTelemetry(hook TelemetryHook) Option {
	return func(c *Config) { c.Telemetry = hook }
}
