package petrel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrel-ai/petrel/builders"
	"github.com/petrel-ai/petrel/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...core.Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]core.Option{
		core.WithBaseURL(server.URL),
		core.WithRetryPolicy(core.NoRetry{}),
	}, opts...)
	return New("sk-test", opts...)
}

func chatFixture(content string) string {
	payload := map[string]any{
		"id":    "chatcmpl-1",
		"model": "gpt-4o",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]int{"prompt_tokens": 9, "completion_tokens": 3, "total_tokens": 12},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func TestChatRoundTrip(t *testing.T) {
	var captured struct {
		auth string
		path string
		body builders.ChatRequest
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured.auth = r.Header.Get("Authorization")
		captured.path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))
		w.Write([]byte(chatFixture("Hello!")))
	})

	resp, err := client.Chat(context.Background(), builders.NewChat("gpt-4o").User("Hi"))
	require.NoError(t, err)
	assert.Equal(t, "Hello!", resp.Content())
	assert.False(t, resp.HasToolCalls())

	assert.Equal(t, "Bearer sk-test", captured.auth)
	assert.Equal(t, "/chat/completions", captured.path)
	assert.Equal(t, "gpt-4o", captured.body.Model)
	require.Len(t, captured.body.Messages, 1)
}

func TestValidationFailureNeverHitsWire(t *testing.T) {
	var hits int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(chatFixture("unreachable")))
	})

	_, err := client.Chat(context.Background(), builders.NewChat("").User("Hi"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidRequest)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestOrgAndProjectHeaders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "org-1", r.Header.Get("OpenAI-Organization"))
		assert.Equal(t, "proj-1", r.Header.Get("OpenAI-Project"))
		assert.Equal(t, "custom", r.Header.Get("X-Extra"))
		assert.NotEmpty(t, r.Header.Get("X-Client-Request-Id"))
		w.Write([]byte(chatFixture("ok")))
	},
		core.WithOrganization("org-1"),
		core.WithProject("proj-1"),
		core.WithHeader("X-Extra", "custom"),
	)

	_, err := client.Chat(context.Background(), builders.NewChat("gpt-4o").User("Hi"))
	require.NoError(t, err)
}

func TestErrorNormalization(t *testing.T) {
	cases := []struct {
		status   int
		sentinel error
	}{
		{http.StatusUnauthorized, core.ErrUnauthorized},
		{http.StatusForbidden, core.ErrUnauthorized},
		{http.StatusTooManyRequests, core.ErrRateLimited},
		{http.StatusNotFound, core.ErrNotFound},
		{http.StatusBadRequest, core.ErrBadRequest},
		{http.StatusInternalServerError, core.ErrServer},
		{http.StatusBadGateway, core.ErrServer},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("x-request-id", "req_123")
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"error":{"message":"nope","type":"invalid_request_error","code":"denied"}}`))
			})

			_, err := client.Chat(context.Background(), builders.NewChat("gpt-4o").User("Hi"))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.sentinel)

			var pe *core.ProviderError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tc.status, pe.Status)
			assert.Equal(t, "req_123", pe.RequestID)
			assert.Equal(t, "nope", pe.Message)
		})
	}
}

func TestRetryOnServerError(t *testing.T) {
	var hits int32
	client := New("sk-test",
		core.WithRetryPolicy(core.RetryConfig{MaxRetries: 2, BaseDelay: 1, MaxDelay: 1}),
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(chatFixture("recovered")))
	}))
	defer server.Close()
	client.cfg.BaseURL = server.URL

	resp, err := client.Chat(context.Background(), builders.NewChat("gpt-4o").User("Hi"))
	require.NoError(t, err)
	assert.Equal(t, "recovered", resp.Content())
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestNoRetryOnBadRequest(t *testing.T) {
	var hits int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad"}}`))
	}, core.WithRetryPolicy(core.DefaultRetryConfig()))

	_, err := client.Chat(context.Background(), builders.NewChat("gpt-4o").User("Hi"))
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestDecodeErrorNotRetried(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	_, err := client.Chat(context.Background(), builders.NewChat("gpt-4o").User("Hi"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDecode)
}

func TestToolCallResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": "chatcmpl-2",
			"model": "gpt-4o",
			"choices": [{
				"index": 0,
				"message": {
					"role": "assistant",
					"content": "",
					"tool_calls": [{
						"id": "call_1",
						"type": "function",
						"function": {"name": "get_weather", "arguments": "{\"city\":\"Oslo\"}"}
					}]
				},
				"finish_reason": "tool_calls"
			}]
		}`))
	})

	resp, err := client.Chat(context.Background(), builders.NewChat("gpt-4o").User("Weather in Oslo?"))
	require.NoError(t, err)
	require.True(t, resp.HasToolCalls())
	call := resp.FirstToolCall()
	require.NotNil(t, call)
	assert.Equal(t, "get_weather", call.Function.Name)
}

func TestTelemetryEvents(t *testing.T) {
	hook := &recordingHook{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatFixture("ok")))
	}, core.WithTelemetry(hook))

	_, err := client.Chat(context.Background(), builders.NewChat("gpt-4o").User("Hi"))
	require.NoError(t, err)

	require.Len(t, hook.starts, 1)
	require.Len(t, hook.ends, 1)
	assert.Equal(t, "/chat/completions", hook.starts[0].Endpoint)
	assert.Equal(t, "gpt-4o", hook.starts[0].Model)
	assert.Equal(t, hook.starts[0].RequestID, hook.ends[0].RequestID)
	assert.Equal(t, 1, hook.ends[0].Attempts)
	require.NotNil(t, hook.ends[0].Usage)
	assert.Equal(t, 12, hook.ends[0].Usage.TotalTokens)
}

type recordingHook struct {
	starts []core.RequestStartEvent
	ends   []core.RequestEndEvent
}

func (h *recordingHook) OnRequestStart(e core.RequestStartEvent) { h.starts = append(h.starts, e) }
func (h *recordingHook) OnRequestEnd(e core.RequestEndEvent)     { h.ends = append(h.ends, e) }

func TestEmbeddingsRoundTrip(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		w.Write([]byte(`{
			"object": "list",
			"model": "text-embedding-3-small",
			"data": [{"index": 0, "embedding": [0.1, 0.2, 0.3]}]
		}`))
	})

	resp, err := client.Embeddings(context.Background(),
		builders.EmbedText("text-embedding-3-small", "hello"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, resp.FirstVector())
}

func TestSpeechReturnsRawBytes(t *testing.T) {
	audio := []byte{0xff, 0xf3, 0x01, 0x02}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/speech", r.URL.Path)
		w.Write(audio)
	})

	got, err := client.Speech(context.Background(),
		builders.NewSpeech("tts-1", "Hello", "alloy"))
	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

func TestTranscribeMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "en", r.FormValue("language"))
		assert.Equal(t, "0.2", r.FormValue("temperature"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "meeting.wav", header.Filename)

		w.Write([]byte(`{"text": "hello world"}`))
	})

	resp, err := client.Transcribe(context.Background(),
		builders.NewTranscription([]byte("audio"), "meeting.wav", "whisper-1").
			Language("en").
			Temperature(0.2))
	require.NoError(t, err)
	assert.Equal(t, "hello world", resp.Text)
}

func TestFileUploadMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "fine-tune", r.FormValue("purpose"))
		w.Write([]byte(`{"id": "file_1", "filename": "train.jsonl", "purpose": "fine-tune"}`))
	})

	resp, err := client.UploadFile(context.Background(),
		builders.NewFileUploadText("train.jsonl", builders.PurposeFineTune, `{"messages":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "file_1", resp.ID)
}

func TestListFilesQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "batch", r.URL.Query().Get("purpose"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"object": "list", "data": []}`))
	})

	_, err := client.ListFiles(context.Background(),
		builders.NewFileList().Purpose(builders.PurposeBatch).Limit(10))
	require.NoError(t, err)
}

func TestBatchLifecycle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/batches":
			var req builders.BatchRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "24h", string(req.CompletionWindow))
			w.Write([]byte(`{"id": "batch_1", "status": "validating"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/batches/batch_1":
			w.Write([]byte(`{"id": "batch_1", "status": "completed", "output_file_id": "file_out"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/batches/batch_1/cancel":
			w.Write([]byte(`{"id": "batch_1", "status": "cancelling"}`))
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	})

	ctx := context.Background()
	created, err := client.CreateBatch(ctx, builders.NewBatch("file_in", builders.BatchChatCompletions))
	require.NoError(t, err)
	assert.Equal(t, "validating", created.Status)

	fetched, err := client.GetBatch(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", fetched.Status)

	cancelled, err := client.CancelBatch(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelling", cancelled.Status)
}

func TestUploadLifecycle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/uploads":
			w.Write([]byte(`{"id": "upload_1", "status": "pending"}`))
		case "/uploads/upload_1/parts":
			w.Write([]byte(`{"id": "part_1", "upload_id": "upload_1"}`))
		case "/uploads/upload_1/complete":
			var req builders.CompleteUploadRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, []string{"part_1"}, req.PartIDs)
			w.Write([]byte(`{"id": "upload_1", "status": "completed"}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	ctx := context.Background()
	up, err := client.CreateUpload(ctx,
		builders.NewUpload("big.bin", "fine-tune", 4, "application/octet-stream"))
	require.NoError(t, err)

	part, err := client.AddUploadPart(ctx, up.ID, []byte{1, 2, 3, 4})
	require.NoError(t, err)

	done, err := client.CompleteUpload(ctx, builders.NewCompleteUpload(up.ID).PartID(part.ID))
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
}

func TestGetUsageQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "1735689600", q.Get("start_time"))
		assert.Equal(t, "1d", q.Get("bucket_width"))
		assert.Equal(t, []string{"model"}, q["group_by"])
		w.Write([]byte(`{"object": "page", "data": [], "has_more": false}`))
	})

	_, err := client.GetUsage(context.Background(),
		builders.NewUsage(1735689600).BucketWidth("1d").GroupBy("model"))
	require.NoError(t, err)
}

func TestModerationsFlagged(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": "modr-1",
			"model": "omni-moderation-latest",
			"results": [{"flagged": true, "categories": {}, "category_scores": {}}]
		}`))
	})

	resp, err := client.Moderations(context.Background(),
		builders.NewModeration(builders.ModerationText("text")))
	require.NoError(t, err)
	assert.True(t, resp.Flagged())
}

func TestResponsesOutputText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		w.Write([]byte(`{
			"id": "resp_1",
			"model": "gpt-4o",
			"status": "completed",
			"output": [
				{"type": "reasoning"},
				{"type": "message", "role": "assistant", "content": [
					{"type": "output_text", "text": "Paris"}
				]}
			]
		}`))
	})

	resp, err := client.Responses(context.Background(),
		builders.NewResponses("gpt-4o").User("Capital of France?"))
	require.NoError(t, err)
	assert.Equal(t, "Paris", resp.OutputText())
}
