// Package conversation manages multi-turn chat history under a token
// budget. A Manager pins the system prompt, appends turns, and trims the
// oldest turns first when the budget is exceeded, so requests stay inside a
// model's context window.
package conversation

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/petrel-ai/petrel/builders"
)

// Per-message wire overhead in tokens, from the chat format framing.
const messageOverhead = 4

// Manager accumulates a conversation. It is safe for concurrent use.
type Manager struct {
	mu        sync.Mutex
	system    string
	history   []builders.Message
	maxTokens int
	encoder   *tiktoken.Tiktoken
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxTokens sets the token budget. Zero means unlimited.
func WithMaxTokens(n int) Option {
	return func(m *Manager) { m.maxTokens = n }
}

// WithSystem pins the system prompt. It is never trimmed.
func WithSystem(prompt string) Option {
	return func(m *Manager) { m.system = prompt }
}

// NewManager creates a Manager counting tokens with the encoding for the
// given model. Unknown models fall back to the cl100k_base encoding, and if
// no encoding can be loaded at all (tiktoken fetches encodings lazily, which
// needs network access) the manager estimates tokens from character count.
func NewManager(model string, opts ...Option) *Manager {
	encoder, err := tiktoken.EncodingForModel(model)
	if err != nil {
		encoder, _ = tiktoken.GetEncoding("cl100k_base")
	}
	m := &Manager{encoder: encoder}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetSystem replaces the pinned system prompt.
func (m *Manager) SetSystem(prompt string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.system = prompt
}

// AddUser appends a user turn.
func (m *Manager) AddUser(content string) {
	m.add(builders.Message{Role: builders.RoleUser, Content: builders.Content(content)})
}

// AddAssistant appends an assistant turn.
func (m *Manager) AddAssistant(content string) {
	m.add(builders.Message{Role: builders.RoleAssistant, Content: builders.Content(content)})
}

// Add appends an arbitrary message, such as a tool result.
func (m *Manager) Add(msg builders.Message) {
	m.add(msg)
}

func (m *Manager) add(msg builders.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, msg)
	m.trimLocked()
}

// Messages returns the system prompt followed by the retained history,
// ready to feed into a chat builder.
func (m *Manager) Messages() []builders.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]builders.Message, 0, len(m.history)+1)
	if m.system != "" {
		out = append(out, builders.Message{
			Role:    builders.RoleSystem,
			Content: builders.Content(m.system),
		})
	}
	out = append(out, m.history...)
	return out
}

// Len reports the number of retained history turns, excluding the system
// prompt.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}

// TokenCount estimates the tokens the current conversation occupies.
func (m *Manager) TokenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokenCountLocked()
}

// Reset drops the history, keeping the system prompt.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = nil
}

func (m *Manager) tokenCountLocked() int {
	total := 0
	if m.system != "" {
		total += m.messageTokens(m.system)
	}
	for _, msg := range m.history {
		total += m.messageTokens(msg.Content.Text)
	}
	return total
}

func (m *Manager) messageTokens(text string) int {
	if m.encoder == nil {
		// Rough estimate, one token per four characters.
		return (len(text)+3)/4 + messageOverhead
	}
	return len(m.encoder.Encode(text, nil, nil)) + messageOverhead
}

// trimLocked drops the oldest turns until the conversation fits the budget.
// The system prompt and the newest turn are always kept.
func (m *Manager) trimLocked() {
	if m.maxTokens <= 0 {
		return
	}
	for len(m.history) > 1 && m.tokenCountLocked() > m.maxTokens {
		m.history = m.history[1:]
	}
}
