package main

import (
	"fmt"

	"github.com/adrianrdguez/projects-buddy/internal/config"
	"github.com/adrianrdguez/projects-buddy/internal/db"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const defaultConfigPath = "projects-buddy.yaml"

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBMigrateCmd())
	return cmd
}

func newDBMigrateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(gormDB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migration complete.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

// connectFromConfig loads config and returns a GORM DB connection. A missing
// config file falls back to defaults so a fresh checkout works out of the box.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		if configPath != defaultConfigPath {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
		cfg = config.Default()
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, gormDB, nil
}
