package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/petrel-ai/petrel/cli/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the petrel config file",
		Long:  "Prompts for an API key and default model and writes ~/.petrel/config.yaml.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, "OpenAI API key (input hidden): ")
			key, err := readSecret()
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			if key != "" {
				cfg.APIKey = key
			}

			fmt.Fprintf(out, "Default model [%s]: ", valueOr(cfg.DefaultModel, "gpt-4"))
			reader := bufio.NewReader(os.Stdin)
			model, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			if model = strings.TrimSpace(model); model != "" {
				cfg.DefaultModel = model
			}

			if err := config.Save(cfg); err != nil {
				return err
			}
			path, _ := config.Path()
			fmt.Fprintln(out, "wrote", path)
			return nil
		},
	}
}

// readSecret reads a line without echo when stdin is a terminal, falling
// back to plain reads for pipes.
func readSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		data, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func valueOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
