package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/adrianrdguez/projects-buddy/internal/store"
	"github.com/spf13/cobra"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project management commands",
	}

	cmd.AddCommand(newProjectCreateCmd())
	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectShowCmd())
	cmd.AddCommand(newProjectUpdateCmd())
	cmd.AddCommand(newProjectDeleteCmd())
	return cmd
}

func newProjectCreateCmd() *cobra.Command {
	var (
		configPath  string
		name        string
		description string
		path        string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			project, err := store.CreateProject(gormDB, store.CreateProjectOpts{
				Name:        name,
				Description: description,
				ProjectPath: path,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", project.Name, project.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().StringVar(&name, "name", "", "project name (required)")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringVar(&path, "path", "", "local working directory the editor opens")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectListCmd() *cobra.Command {
	var (
		configPath string
		status     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			projects, err := store.ListProjects(gormDB, store.ProjectFilters{Status: status})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tCREATED")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					p.ID, truncate(p.Name, 40), p.Status, p.CreatedAt.Format("2006-01-02"))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (active, completed, archived)")
	return cmd
}

func newProjectShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			project, err := store.GetProject(gormDB, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:          %s\n", project.ID)
			fmt.Fprintf(out, "Name:        %s\n", project.Name)
			fmt.Fprintf(out, "Status:      %s\n", project.Status)
			if project.ProjectPath != "" {
				fmt.Fprintf(out, "Path:        %s\n", project.ProjectPath)
			}
			fmt.Fprintf(out, "Tasks:       %d\n", len(project.Tasks))
			fmt.Fprintf(out, "Created:     %s\n", project.CreatedAt.Format("2006-01-02 15:04:05"))
			if project.ArchivedAt != nil {
				fmt.Fprintf(out, "Archived:    %s\n", project.ArchivedAt.Format("2006-01-02 15:04:05"))
			}
			if project.Description != "" {
				fmt.Fprintf(out, "\nDescription:\n%s\n", project.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

func newProjectUpdateCmd() *cobra.Command {
	var (
		configPath  string
		name        string
		description string
		status      string
		path        string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project",
		Long:  "Updates project fields. Status transitions are validated.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates := make(map[string]interface{})
			if cmd.Flags().Changed("name") {
				updates["name"] = name
			}
			if cmd.Flags().Changed("description") {
				updates["description"] = description
			}
			if cmd.Flags().Changed("status") {
				updates["status"] = status
			}
			if cmd.Flags().Changed("path") {
				updates["project_path"] = path
			}
			if len(updates) == 0 {
				return fmt.Errorf("no fields to update; use --name, --description, --status, or --path")
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := store.UpdateProject(gormDB, args[0], updates); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVar(&path, "path", "", "new working directory")
	return cmd
}

func newProjectDeleteCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Long:  "Deletes a project together with all of its tasks and their dependency edges.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := store.DeleteProject(gormDB, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
