package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/adrianrdguez/projects-buddy/internal/graph"
	"github.com/adrianrdguez/projects-buddy/internal/store"
	"github.com/spf13/cobra"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Task management commands",
	}

	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskReadyCmd())
	cmd.AddCommand(newTaskShowCmd())
	cmd.AddCommand(newTaskUpdateCmd())
	cmd.AddCommand(newTaskDepCmd())
	return cmd
}

func newTaskListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's tasks",
		Long:  "Lists tasks with derived statuses: a task whose dependencies are not all completed shows as blocked.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			tasks, err := store.LoadTasks(gormDB, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRI\tDEPS")
			for _, t := range graph.DeriveAll(tasks) {
				deps := make([]string, len(t.Deps))
				for i, d := range t.Deps {
					deps[i] = shortID(d.DependsOn)
				}
				depCol := "-"
				if len(deps) > 0 {
					depCol = strings.Join(deps, ",")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					shortID(t.ID), truncate(t.Title, 40), t.Status, t.Priority, depCol)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

func newTaskReadyCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "ready <project-id>",
		Short: "List ready tasks",
		Long:  "Lists tasks whose dependencies are all completed, in plan order. The first one is what execution would target.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			tasks, err := store.LoadTasks(gormDB, args[0])
			if err != nil {
				return err
			}

			ready := graph.Ready(tasks)
			out := cmd.OutOrStdout()
			if len(ready) == 0 {
				fmt.Fprintln(out, "No ready tasks.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRI\tESTIMATE")
			for _, t := range ready {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					shortID(t.ID), truncate(t.Title, 40), t.Priority, t.EstimatedTime)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

func newTaskShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			task, err := store.GetTask(gormDB, args[0])
			if err != nil {
				return err
			}

			// Derive against the whole project so blocked shows correctly.
			siblings, err := store.LoadTasks(gormDB, task.ProjectID)
			if err != nil {
				return err
			}
			status := graph.DeriveStatus(*task, graph.ByID(siblings))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:          %s\n", task.ID)
			fmt.Fprintf(out, "Project:     %s\n", task.ProjectID)
			fmt.Fprintf(out, "Title:       %s\n", task.Title)
			fmt.Fprintf(out, "Status:      %s\n", status)
			fmt.Fprintf(out, "Priority:    %s\n", task.Priority)
			if task.EstimatedTime != "" {
				fmt.Fprintf(out, "Estimate:    %s\n", task.EstimatedTime)
			}
			if task.CompletedAt != nil {
				fmt.Fprintf(out, "Completed:   %s\n", task.CompletedAt.Format("2006-01-02 15:04:05"))
			}
			if task.Description != "" {
				fmt.Fprintf(out, "\nDescription:\n%s\n", task.Description)
			}
			if len(task.Deps) > 0 {
				fmt.Fprintln(out, "\nDepends on:")
				for _, d := range task.Deps {
					fmt.Fprintf(out, "  %s\n", d.DependsOn)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

func newTaskUpdateCmd() *cobra.Command {
	var (
		configPath string
		status     string
		priority   string
		title      string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Long:  "Updates task fields. Status transitions are validated; blocked cannot be set because it is derived from dependencies.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates := make(map[string]interface{})
			if cmd.Flags().Changed("status") {
				updates["status"] = status
			}
			if cmd.Flags().Changed("priority") {
				updates["priority"] = priority
			}
			if cmd.Flags().Changed("title") {
				updates["title"] = title
			}
			if len(updates) == 0 {
				return fmt.Errorf("no fields to update; use --status, --priority, or --title")
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := store.UpdateTask(gormDB, args[0], updates); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().StringVar(&status, "status", "", "new status (ready, in_progress, completed)")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority (low, medium, high)")
	cmd.Flags().StringVar(&title, "title", "", "new title")
	return cmd
}

func newTaskDepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage task dependencies",
	}

	cmd.AddCommand(newTaskDepAddCmd())
	cmd.AddCommand(newTaskDepListCmd())
	cmd.AddCommand(newTaskDepRemoveCmd())
	return cmd
}

func newTaskDepAddCmd() *cobra.Command {
	var (
		configPath string
		dependsOn  string
	)

	cmd := &cobra.Command{
		Use:   "add <task-id>",
		Short: "Add a dependency",
		Long:  "Creates a blocking dependency: the task cannot start until the blocker is completed. Self-dependencies and cycles are rejected.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := store.AddDep(gormDB, args[0], dependsOn); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added dependency: %s depends on %s\n", args[0], dependsOn)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().StringVar(&dependsOn, "on", "", "task ID this task depends on (required)")
	cmd.MarkFlagRequired("on")
	return cmd
}

func newTaskDepListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list <task-id>",
		Short: "List task dependencies",
		Long:  "Shows what blocks this task and what this task blocks.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			blockers, dependents, err := store.ListDeps(gormDB, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(blockers) == 0 && len(dependents) == 0 {
				fmt.Fprintf(out, "No dependencies for %s\n", args[0])
				return nil
			}
			if len(blockers) > 0 {
				fmt.Fprintln(out, "Depends on:")
				for _, d := range blockers {
					fmt.Fprintf(out, "  %s\n", d.DependsOn)
				}
			}
			if len(dependents) > 0 {
				fmt.Fprintln(out, "Blocks:")
				for _, d := range dependents {
					fmt.Fprintf(out, "  %s\n", d.TaskID)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

func newTaskDepRemoveCmd() *cobra.Command {
	var (
		configPath string
		dependsOn  string
	)

	cmd := &cobra.Command{
		Use:   "remove <task-id>",
		Short: "Remove a dependency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := store.RemoveDep(gormDB, args[0], dependsOn); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed dependency: %s depends on %s\n", args[0], dependsOn)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().StringVar(&dependsOn, "on", "", "blocker task ID to remove (required)")
	cmd.MarkFlagRequired("on")
	return cmd
}

// shortID abbreviates a UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
