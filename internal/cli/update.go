package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"todocard/internal/task"
)

type updateParams struct {
	Title          string
	HasTitle       bool
	Description    string
	HasDescription bool
	Priority       string
	HasPriority    bool
}

func newUpdateCmd() *cobra.Command {
	var (
		title       string
		description string
		priority    string
	)
	cmd := &cobra.Command{
		Use:   "update [taskID]",
		Short: "Update a task (title/description/priority)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := updateParams{
				Title:          title,
				HasTitle:       cmd.Flags().Changed("title"),
				Description:    description,
				HasDescription: cmd.Flags().Changed("description"),
				Priority:       priority,
				HasPriority:    cmd.Flags().Changed("priority"),
			}
			if !params.HasTitle && !params.HasDescription && !params.HasPriority {
				return fmt.Errorf("nothing to update (use --title, --description or --priority)")
			}
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			current, err := app.Repo.Get(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			next, err := applyUpdate(current, params)
			if err != nil {
				return err
			}
			if err := app.Repo.Update(commandContext(cmd), next.ID, next.Title, next.Description, next.Priority); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ Task updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority: low, normal, high (empty clears)")
	return cmd
}

// applyUpdate keeps every field the params leave unset.
func applyUpdate(t task.Task, p updateParams) (task.Task, error) {
	if p.HasTitle {
		t.Title = p.Title
	}
	if p.HasDescription {
		t.Description = p.Description
	}
	if p.HasPriority {
		prio, err := task.ParsePriority(p.Priority)
		if err != nil {
			return t, err
		}
		t.Priority = prio
	}
	return t, nil
}
