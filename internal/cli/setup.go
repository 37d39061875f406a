package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"todocard/internal/config"
	"todocard/internal/google/tasks"
	"todocard/internal/paths"
	"todocard/internal/store"
)

const addNewListOption = "Add new list..."

type simpleList struct {
	Title string
	ID    string
}

type choiceItem[T any] struct {
	Label string
	Item  T
}

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactive setup for the task store and note exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrCreate(cfgPath)
			if err != nil {
				return err
			}

			printSection("Storage")
			if err := setupBackend(cfg); err != nil {
				return err
			}

			if cfg.Backend == store.BackendGoogle {
				printSection("Google Tasks")
				ctx := commandContext(cmd)
				client, err := newTasksClient(ctx, cmd)
				if err != nil {
					return err
				}
				if err := setupList(ctx, client, cfg); err != nil {
					return err
				}
			}

			printSection("Notes")
			if err := setupExportDir(cfg); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(cfgPath, cfg); err != nil {
				return err
			}
			fmt.Printf("\nSetup complete. Config saved to %s\n", cfgPath)
			return nil
		},
	}
	return cmd
}

func setupBackend(cfg *config.Config) error {
	prompt := &survey.Select{
		Message: "Where should tasks be stored?",
		Options: store.Backends(),
		Default: cfg.Backend,
		Description: func(value string, index int) string {
			switch value {
			case store.BackendFile:
				return "JSON file"
			case store.BackendSQLite:
				return "SQLite database"
			case store.BackendGoogle:
				return "Google Tasks list"
			}
			return ""
		},
	}
	var selected string
	if err := survey.AskOne(prompt, &selected, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	cfg.Backend = selected
	return nil
}

func setupExportDir(cfg *config.Config) error {
	current := cfg.ExportDir
	if current == "" {
		current = paths.ExportDir()
	}
	var input string
	prompt := &survey.Input{Message: "Folder for downloaded notes", Default: current}
	if err := survey.AskOne(prompt, &input, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	cfg.ExportDir = strings.TrimSpace(input)
	return nil
}

func setupList(ctx context.Context, client *tasks.Client, cfg *config.Config) error {
	remote, err := client.ListTaskLists(ctx)
	if err != nil {
		return err
	}
	lists := make([]simpleList, 0, len(remote))
	for _, l := range remote {
		lists = append(lists, simpleList{Title: l.Title, ID: l.Id})
	}
	selected, err := selectOrCreateList(ctx, "Choose the list that holds your cards", client, lists, cfg.GoogleListID)
	if err != nil {
		return err
	}
	cfg.GoogleListID = selected.ID
	return nil
}

func selectOrCreateList(ctx context.Context, label string, client *tasks.Client, lists []simpleList, currentID string) (simpleList, error) {
	choices := buildListChoices(lists)
	options := labelsFromChoices(choices)
	options = append(options, addNewListOption)

	defaultLabel := ""
	for _, choice := range choices {
		if choice.Item.ID == currentID {
			defaultLabel = choice.Label
			break
		}
	}

	prompt := &survey.Select{
		Message:  label,
		Options:  options,
		PageSize: 12,
	}
	if defaultLabel != "" {
		prompt.Default = defaultLabel
	}
	var selected string
	if err := survey.AskOne(prompt, &selected, survey.WithValidator(survey.Required)); err != nil {
		return simpleList{}, err
	}
	if selected == addNewListOption {
		name, err := askRequired("New list name")
		if err != nil {
			return simpleList{}, err
		}
		created, err := client.CreateTaskList(ctx, name)
		if err != nil {
			return simpleList{}, err
		}
		return simpleList{Title: created.Title, ID: created.Id}, nil
	}
	choice, ok := findChoice(choices, selected)
	if !ok {
		return simpleList{}, fmt.Errorf("invalid list selection")
	}
	return choice.Item, nil
}

func buildListChoices(lists []simpleList) []choiceItem[simpleList] {
	counts := map[string]int{}
	for _, l := range lists {
		counts[l.Title]++
	}
	index := map[string]int{}
	choices := make([]choiceItem[simpleList], 0, len(lists))
	for _, l := range lists {
		label := l.Title
		if counts[l.Title] > 1 {
			index[l.Title]++
			label = fmt.Sprintf("%s (%d)", l.Title, index[l.Title])
		}
		choices = append(choices, choiceItem[simpleList]{Label: label, Item: l})
	}
	sort.SliceStable(choices, func(i, j int) bool { return choices[i].Label < choices[j].Label })
	return choices
}

func labelsFromChoices[T any](choices []choiceItem[T]) []string {
	labels := make([]string, 0, len(choices))
	for _, choice := range choices {
		labels = append(labels, choice.Label)
	}
	return labels
}

func findChoice[T any](choices []choiceItem[T], label string) (choiceItem[T], bool) {
	for _, choice := range choices {
		if choice.Label == label {
			return choice, true
		}
	}
	var zero choiceItem[T]
	return zero, false
}

func askRequired(message string) (string, error) {
	var input string
	prompt := &survey.Input{Message: message}
	if err := survey.AskOne(prompt, &input, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func printSection(title string) {
	fmt.Printf("\n%s\n", bold(title))
}
