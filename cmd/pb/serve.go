package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adrianrdguez/projects-buddy/internal/config"
	"github.com/adrianrdguez/projects-buddy/internal/dashboard"
	"github.com/adrianrdguez/projects-buddy/internal/db"
	"github.com/adrianrdguez/projects-buddy/internal/executor"
	"github.com/adrianrdguez/projects-buddy/internal/generate"
	"github.com/adrianrdguez/projects-buddy/internal/mindmap"
	"github.com/adrianrdguez/projects-buddy/internal/notify"
	"github.com/adrianrdguez/projects-buddy/internal/store"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Launches the JSON API the web client talks to, plus the scheduled archive sweep.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	if port <= 0 {
		port = cfg.Server.Port
	}

	notifier, err := notify.New(notify.Opts{
		BotToken:  cfg.Slack.BotToken,
		ChannelID: cfg.Slack.ChannelID,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	sweeper, err := startArchiveSweep(gormDB, cfg.Archive)
	if err != nil {
		return err
	}
	defer sweeper.Stop()

	return dashboard.Start(ctx, dashboard.StartOpts{
		DB:   gormDB,
		Port: port,
		Out:  cmd.OutOrStdout(),
		Canvas: mindmap.Size{
			Width:  float64(cfg.Canvas.MinWidth),
			Height: float64(cfg.Canvas.MinHeight),
		},
		FallbackTime: cfg.Generator.FallbackTime,
		Generator: generate.ClaudeGenerator{
			Binary:  cfg.Generator.Binary,
			Timeout: time.Duration(cfg.Generator.TimeoutSeconds) * time.Second,
		},
		Dispatcher: &executor.Dispatcher{
			EditorBinary: cfg.Executor.EditorBinary,
			CompanionURL: cfg.Executor.CompanionURL,
		},
		Notifier: notifier,
	})
}

// startArchiveSweep schedules the periodic job that archives completed
// projects older than the configured age.
func startArchiveSweep(gormDB *gorm.DB, cfg config.ArchiveConfig) (*cron.Cron, error) {
	maxAge, err := time.ParseDuration(cfg.MaxAge)
	if err != nil {
		return nil, fmt.Errorf("serve: parse archive.max_age %q: %w", cfg.MaxAge, err)
	}

	c := cron.New()
	_, err = c.AddFunc(cfg.Schedule, func() {
		n, err := store.ArchiveSweep(gormDB, maxAge)
		if err != nil {
			log.Printf("serve: archive sweep: %v", err)
			return
		}
		if n > 0 {
			log.Printf("serve: archived %d completed projects", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("serve: schedule archive sweep %q: %w", cfg.Schedule, err)
	}

	c.Start()
	return c, nil
}
