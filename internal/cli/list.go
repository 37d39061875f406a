package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"todocard/internal/task"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func newListCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			items, err := app.Repo.List(commandContext(cmd))
			if err != nil {
				return err
			}
			return writeTasks(cmd.OutOrStdout(), items, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text, json, yaml")
	return cmd
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown format: %s (use text, json or yaml)", format)
}

func writeTasks(w io.Writer, items []task.Task, format string) error {
	if items == nil {
		items = []task.Task{}
	}
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return err
		}
		return enc.Close()
	default:
		if len(items) == 0 {
			_, err := fmt.Fprintln(w, "(no tasks)")
			return err
		}
		for _, t := range items {
			if _, err := fmt.Fprintln(w, formatTaskLine(t)); err != nil {
				return err
			}
		}
		return nil
	}
}

func formatTaskLine(t task.Task) string {
	title := t.Title
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("- %s %s", title, gray("["+t.ID+"]"))
	if t.Priority != "" {
		line += fmt.Sprintf(" (%s)", t.Priority)
	}
	return line
}
