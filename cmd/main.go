package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	configcmd "github.com/webcompat/issue-importer/internal/cli/command/config"
	"github.com/webcompat/issue-importer/internal/cli/command/importer"
	"github.com/webcompat/issue-importer/internal/cli/command/labels"
	"github.com/webcompat/issue-importer/internal/cli/registry"
	cfg "github.com/webcompat/issue-importer/internal/config"
	"github.com/webcompat/issue-importer/internal/domain/ports"
	"github.com/webcompat/issue-importer/internal/i18n"
	"github.com/webcompat/issue-importer/internal/infrastructure/vcs/github"
	"github.com/webcompat/issue-importer/internal/logger"
	"github.com/webcompat/issue-importer/internal/version"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func initializeApp() (*cli.Command, error) {
	setupLogger()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not get the user home directory: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, fmt.Errorf("could not load the translations: %w", err)
	}

	trackerProvider := func(c *cfg.Config, t *i18n.Translations) (ports.IssueTracker, error) {
		return github.NewGitHubClient(c, t)
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("import", importer.NewCommandFactory(trackerProvider)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("labels", labels.NewCommandFactory(trackerProvider)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("config", configcmd.NewCommandFactory()); err != nil {
		return nil, err
	}

	commands := registerCommand.CreateCommands()

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:                  "issue-importer",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.FullVersion(),
		Description:           translations.GetMessage("app_description", 0, nil),
		Commands:              commands,
		EnableShellCompletion: true,
	}, nil
}

func setupLogger() {
	level := slog.LevelWarn
	if os.Getenv("ISSUE_IMPORTER_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(logger.NewPrettyHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
