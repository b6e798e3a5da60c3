package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/webcompat/issue-importer/internal/config"
	"github.com/webcompat/issue-importer/internal/i18n"
	"github.com/webcompat/issue-importer/internal/ui"
)

// CommandFactory is the factory for the config command.
type CommandFactory struct {
	out io.Writer
}

func NewCommandFactory() *CommandFactory {
	return &CommandFactory{out: os.Stdout}
}

// WithOutput redirects the report, used by tests.
func (f *CommandFactory) WithOutput(out io.Writer) *CommandFactory {
	f.out = out
	return f
}

func (f *CommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   t.GetMessage("config.command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newShowCommand(t, cfg),
			f.newSetCommand(t, cfg),
		},
	}
}

func (f *CommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, _ = ui.Info.Fprintln(f.out, t.GetMessage("config.current", 0, nil))
			fmt.Fprintf(f.out, "  repo: %s\n", cfg.Repo)
			fmt.Fprintf(f.out, "  token: %s\n", maskToken(t, cfg.Token))
			fmt.Fprintf(f.out, "  language: %s\n", cfg.Language)
			return nil
		},
	}
}

func (f *CommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set",
		Usage: t.GetMessage("config.set_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "repo",
				Usage: t.GetMessage("config.flag_repo", 0, nil),
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: t.GetMessage("config.flag_token", 0, nil),
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: t.GetMessage("config.flag_lang", 0, nil),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			changed := false
			if repo := cmd.String("repo"); repo != "" {
				if _, _, err := config.SplitRepo(repo); err != nil {
					return err
				}
				cfg.Repo = repo
				changed = true
			}
			if token := cmd.String("token"); token != "" {
				cfg.Token = token
				changed = true
			}
			if lang := cmd.String("lang"); lang != "" {
				if err := t.SetLanguage(lang); err != nil {
					return err
				}
				cfg.Language = lang
				changed = true
			}

			if !changed {
				return errors.New(t.GetMessage("config.nothing_to_set", 0, nil))
			}

			if err := config.SaveConfig(cfg); err != nil {
				return err
			}
			_, _ = ui.Success.Fprintln(f.out, t.GetMessage("config.saved", 0, nil))
			return nil
		},
	}
}

func maskToken(t *i18n.Translations, token string) string {
	if token == "" {
		return t.GetMessage("config.token_not_set", 0, nil)
	}
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
