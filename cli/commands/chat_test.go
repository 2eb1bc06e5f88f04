package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrel-ai/petrel"
	"github.com/petrel-ai/petrel/builders"
)

type stubClient struct {
	lastRequest builders.ChatRequest
	reply       string
	err         error
}

func (s *stubClient) Chat(ctx context.Context, b *builders.ChatBuilder) (*petrel.ChatResponse, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	s.lastRequest = req
	if s.err != nil {
		return nil, s.err
	}
	return &petrel.ChatResponse{
		Choices: []petrel.ChatChoice{{
			Message: builders.Message{
				Role:    builders.RoleAssistant,
				Content: builders.Content(s.reply),
			},
		}},
	}, nil
}

func TestOneShot(t *testing.T) {
	stub := &stubClient{reply: "Hello back"}
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	err := oneShot(cmd, stub, "gpt-4o", "Be brief.", "Hello")
	require.NoError(t, err)

	assert.Equal(t, "Hello back\n", out.String())
	assert.Equal(t, "gpt-4o", stub.lastRequest.Model)
	require.Len(t, stub.lastRequest.Messages, 2)
	assert.Equal(t, builders.RoleSystem, stub.lastRequest.Messages[0].Role)
	assert.Equal(t, "Hello", stub.lastRequest.Messages[1].Content.Text)
}

func TestOneShotWithoutSystem(t *testing.T) {
	stub := &stubClient{reply: "ok"}
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	err := oneShot(cmd, stub, "gpt-4o", "", "Hi")
	require.NoError(t, err)
	require.Len(t, stub.lastRequest.Messages, 1)
	assert.Equal(t, builders.RoleUser, stub.lastRequest.Messages[0].Role)
}

func TestVersionCommand(t *testing.T) {
	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "petrel")
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()
	names := map[string]bool{}
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"chat", "models", "moderate", "init", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
