// Package commands implements the petrel CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/petrel-ai/petrel"
	"github.com/petrel-ai/petrel/cli/config"
	"github.com/petrel-ai/petrel/core"
)

var (
	flagModel   string
	flagVerbose bool
)

// NewRootCmd builds the petrel command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "petrel",
		Short:         "Talk to the OpenAI API from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "model to use")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log requests")

	root.AddCommand(
		newChatCmd(),
		newModelsCmd(),
		newModerateCmd(),
		newInitCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newClient builds a client from config file and environment. The
// environment wins; the config file fills the gaps.
func newClient() (*petrel.Client, error) {
	fileCfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = fileCfg.APIKey
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no API key: set OPENAI_API_KEY or run `petrel init`")
	}

	opts := []core.Option{}
	if fileCfg.BaseURL != "" {
		opts = append(opts, core.WithBaseURL(fileCfg.BaseURL))
	}
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		opts = append(opts, core.WithBaseURL(base))
	}
	if fileCfg.Organization != "" {
		opts = append(opts, core.WithOrganization(fileCfg.Organization))
	}
	if fileCfg.Project != "" {
		opts = append(opts, core.WithProject(fileCfg.Project))
	}
	if flagVerbose {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		opts = append(opts, core.WithTelemetry(petrel.NewLogHook(logger)))
	}

	return petrel.New(apiKey, opts...), nil
}

// resolveModel picks the model from flag, config, or the default.
func resolveModel() string {
	if flagModel != "" {
		return flagModel
	}
	if cfg, err := config.Load(); err == nil && cfg.DefaultModel != "" {
		return cfg.DefaultModel
	}
	if m := os.Getenv("OPENAI_DEFAULT_MODEL"); m != "" {
		return m
	}
	return core.DefaultModel
}
