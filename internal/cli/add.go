package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"todocard/internal/task"
)

func newAddCmd() *cobra.Command {
	var (
		description string
		priority    string
	)
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			prio, err := task.ParsePriority(priority)
			if err != nil {
				return err
			}
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			title := strings.Join(args, " ")
			created, err := app.Repo.Add(commandContext(cmd), title, description, prio)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Task created %s\n", gray("["+created.ID+"]"))
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: low, normal, high")
	return cmd
}
