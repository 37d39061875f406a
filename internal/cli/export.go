package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export [taskID]",
		Short: "Write a task as a plain-text note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			t, err := app.Repo.Get(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			exporter := app.Exporter
			if dir != "" {
				exporter.Dir = dir
			}
			path, err := exporter.Export(t.Title, t.Description)
			if err != nil {
				return fmt.Errorf("export note: %w", err)
			}
			app.logDebug("note exported", "id", t.ID, "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "📝 Note written: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory for the note (defaults to export_dir)")
	return cmd
}
