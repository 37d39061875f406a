package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [taskID]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Repo.Remove(commandContext(cmd), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "🗑️ Task deleted")
			return nil
		},
	}
	return cmd
}
