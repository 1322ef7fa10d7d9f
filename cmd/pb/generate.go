package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/adrianrdguez/projects-buddy/internal/generate"
	"github.com/adrianrdguez/projects-buddy/internal/store"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		configPath string
		projectID  string
		templates  bool
	)

	cmd := &cobra.Command{
		Use:   "generate <input...>",
		Short: "Generate tasks from a free-text description",
		Long:  "Asks the AI generator to decompose the input into tasks with dependencies, then saves them to the project. Falls back to the built-in template catalog when the generator is unavailable.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")

			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if _, err := store.GetProject(gormDB, projectID); err != nil {
				return err
			}

			var gen generate.Generator
			if templates {
				gen = generate.TemplateGenerator{}
			} else {
				gen = generate.ClaudeGenerator{
					Binary:  cfg.Generator.Binary,
					Timeout: time.Duration(cfg.Generator.TimeoutSeconds) * time.Second,
				}
			}

			projectName, tasks := generate.FromInput(cmd.Context(), gen, input, generate.NormalizeOpts{
				ProjectID:    projectID,
				FallbackTime: cfg.Generator.FallbackTime,
			})

			saved, err := store.SaveTasks(gormDB, projectID, tasks)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if projectName != "" {
				fmt.Fprintf(out, "Plan: %s\n", projectName)
			}
			fmt.Fprintf(out, "Generated %d tasks:\n", len(saved))
			for i, t := range saved {
				fmt.Fprintf(out, "  %d. %s [%s, %s]\n", i+1, t.Title, t.Priority, t.EstimatedTime)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().StringVar(&projectID, "project", "", "project ID to attach tasks to (required)")
	cmd.Flags().BoolVar(&templates, "templates", false, "skip the AI generator and use the template catalog")
	cmd.MarkFlagRequired("project")
	return cmd
}
