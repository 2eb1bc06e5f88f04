package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petrel-ai/petrel"
	"github.com/petrel-ai/petrel/builders"
	"github.com/petrel-ai/petrel/conversation"
)

// chatClient is the slice of the client the chat command needs; tests
// substitute a stub.
type chatClient interface {
	Chat(ctx context.Context, b *builders.ChatBuilder) (*petrel.ChatResponse, error)
}

func newChatCmd() *cobra.Command {
	var system string
	var maxTokens int

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Chat with a model",
		Long: `Chat with a model. With a message argument, sends it and prints the
reply. Without arguments, starts an interactive session; type "exit" to
leave.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			model := resolveModel()

			if len(args) > 0 {
				return oneShot(cmd, client, model, system, strings.Join(args, " "))
			}
			return interactive(cmd, client, model, system, maxTokens)
		},
	}

	cmd.Flags().StringVarP(&system, "system", "s", "", "system prompt")
	cmd.Flags().IntVar(&maxTokens, "history-tokens", 8000, "token budget for conversation history")
	return cmd
}

func oneShot(cmd *cobra.Command, client chatClient, model, system, message string) error {
	b := builders.NewChat(model)
	if system != "" {
		b.System(system)
	}
	b.User(message)

	resp, err := client.Chat(cmd.Context(), b)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp.Content())
	return nil
}

func interactive(cmd *cobra.Command, client chatClient, model, system string, maxTokens int) error {
	opts := []conversation.Option{conversation.WithMaxTokens(maxTokens)}
	if system != "" {
		opts = append(opts, conversation.WithSystem(system))
	}
	manager := conversation.NewManager(model, opts...)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "petrel chat (%s). Type \"exit\" to quit.\n", model)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		manager.AddUser(line)
		b := builders.NewChat(model)
		for _, msg := range manager.Messages() {
			b.Message(msg)
		}

		resp, err := client.Chat(cmd.Context(), b)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
			continue
		}
		reply := resp.Content()
		manager.AddAssistant(reply)
		fmt.Fprintln(out, reply)
	}
}
