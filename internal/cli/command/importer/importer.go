package importer

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/webcompat/issue-importer/internal/config"
	"github.com/webcompat/issue-importer/internal/domain/ports"
	"github.com/webcompat/issue-importer/internal/i18n"
	"github.com/webcompat/issue-importer/internal/services"
)

// TrackerProvider builds the tracker client for the run's configuration.
type TrackerProvider func(cfg *config.Config, t *i18n.Translations) (ports.IssueTracker, error)

// CommandFactory is the factory for the import command.
type CommandFactory struct {
	trackerProvider TrackerProvider
	out             io.Writer
}

func NewCommandFactory(provider TrackerProvider) *CommandFactory {
	return &CommandFactory{
		trackerProvider: provider,
		out:             os.Stdout,
	}
}

// WithOutput redirects the run report, used by tests.
func (f *CommandFactory) WithOutput(out io.Writer) *CommandFactory {
	f.out = out
	return f
}

func (f *CommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Aliases:   []string{"i"},
		Usage:     t.GetMessage("import.command_usage", 0, nil),
		ArgsUsage: "<issue-file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "skip-labels",
				Aliases: []string{"force", "f"},
				Usage:   t.GetMessage("import.flag_skip_labels", 0, nil),
			},
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   t.GetMessage("import.flag_repo", 0, nil),
			},
		},
		Action: f.createAction(t, cfg),
	}
}

func (f *CommandFactory) createAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() == 0 {
			return errors.New(t.GetMessage("import.missing_file", 0, nil))
		}

		runCfg := *cfg
		if repo := cmd.String("repo"); repo != "" {
			runCfg.Repo = repo
		}
		if runCfg.Repo == "" {
			return errors.New(t.GetMessage("import.repo_not_configured", 0, nil))
		}

		tracker, err := f.trackerProvider(&runCfg, t)
		if err != nil {
			return err
		}

		svc := services.NewImporter(tracker, t, f.out)
		return svc.Import(ctx, cmd.Args().First(), cmd.Bool("skip-labels"))
	}
}
