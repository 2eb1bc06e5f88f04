package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petrel-ai/petrel/builders"
)

func newModerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moderate <text>",
		Short: "Check text against the moderation endpoint",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			resp, err := client.Moderations(cmd.Context(),
				builders.NewModeration(builders.ModerationText(strings.Join(args, " "))))
			if err != nil {
				return err
			}

			if resp.Flagged() {
				fmt.Fprintln(cmd.OutOrStdout(), "flagged")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "clean")
			}
			return nil
		},
	}
}
