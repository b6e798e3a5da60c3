package labels

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/webcompat/issue-importer/internal/config"
	"github.com/webcompat/issue-importer/internal/domain/ports"
	"github.com/webcompat/issue-importer/internal/i18n"
	"github.com/webcompat/issue-importer/internal/ui"
)

type TrackerProvider func(cfg *config.Config, t *i18n.Translations) (ports.IssueTracker, error)

// CommandFactory is the factory for the labels command.
type CommandFactory struct {
	trackerProvider TrackerProvider
	out             io.Writer
	showSpinner     bool
}

func NewCommandFactory(provider TrackerProvider) *CommandFactory {
	return &CommandFactory{
		trackerProvider: provider,
		out:             os.Stdout,
		showSpinner:     true,
	}
}

// WithOutput redirects the report and silences the spinner, used by tests.
func (f *CommandFactory) WithOutput(out io.Writer) *CommandFactory {
	f.out = out
	f.showSpinner = false
	return f
}

func (f *CommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "labels",
		Aliases: []string{"l"},
		Usage:   t.GetMessage("labels.command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   t.GetMessage("import.flag_repo", 0, nil),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
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

			var spin *ui.Spinner
			if f.showSpinner {
				spin = ui.NewSpinner(t.GetMessage("labels.fetching", 0, nil))
				spin.Start()
			}
			labels, err := tracker.ListLabels(ctx)
			if spin != nil {
				spin.Stop()
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(f.out, t.GetMessage("labels.all_labels", 0, map[string]interface{}{
				"Labels": strings.Join(labels, ", "),
			}))
			return err
		},
	}
}
