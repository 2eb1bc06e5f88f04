package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available models",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			list, err := client.ListModels(cmd.Context())
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(list.Data))
			for _, m := range list.Data {
				ids = append(ids, m.ID)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
