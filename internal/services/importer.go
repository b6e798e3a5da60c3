package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	domainErrors "github.com/webcompat/issue-importer/internal/domain/errors"
	"github.com/webcompat/issue-importer/internal/domain/models"
	"github.com/webcompat/issue-importer/internal/domain/ports"
	"github.com/webcompat/issue-importer/internal/i18n"
	"github.com/webcompat/issue-importer/internal/schema"
	"github.com/webcompat/issue-importer/internal/ui"
)

// commentDelay is the pause before every comment post after the first, a
// self-imposed courtesy toward the tracker's rate limits.
const commentDelay = time.Second

// Importer runs one import: read the issue file, validate it against the
// schema built from the repository's label set, create the issue and attach
// its comments in order.
type Importer struct {
	tracker ports.IssueTracker
	trans   *i18n.Translations
	out     io.Writer
	delay   time.Duration
}

func NewImporter(tracker ports.IssueTracker, trans *i18n.Translations, out io.Writer) *Importer {
	return &Importer{
		tracker: tracker,
		trans:   trans,
		out:     out,
		delay:   commentDelay,
	}
}

// Import validates and imports the issue file at path. Schema violations and
// rejected issue creations are reported to the user and leave no issue
// behind; they are not returned as errors. Transport failures and an
// unreadable or malformed file are.
func (s *Importer) Import(ctx context.Context, path string, skipLabels bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", s.trans.GetMessage("error.read_issue_file", 0, map[string]interface{}{"Path": path}), err)
	}

	var labels []string
	if !skipLabels {
		labels, err = s.tracker.ListLabels(ctx)
		if err != nil {
			return err
		}
	}

	if err := schema.Validate(data, labels, skipLabels); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			s.reportValidationError(verr)
			return nil
		}
		return err
	}

	var descriptor models.IssueDescriptor
	if err := json.Unmarshal(data, &descriptor); err != nil {
		return err
	}

	issue, err := s.tracker.CreateIssue(ctx, descriptor)
	if err != nil {
		var serr *domainErrors.StatusError
		if errors.As(err, &serr) {
			_, _ = ui.Error.Fprintln(s.out, s.trans.GetMessage("issue.create_failed", 0, map[string]interface{}{"Code": serr.Code}))
			return nil
		}
		return err
	}

	_, _ = ui.Success.Fprintln(s.out, s.trans.GetMessage("issue.imported", 0, map[string]interface{}{"URL": issue.URL}))

	if len(descriptor.Comments) > 0 {
		_, _ = ui.Warning.Fprintln(s.out, s.trans.GetMessage("comments.importing", 0, nil))
		s.importComments(ctx, issue.Number, descriptor.Comments)
	}

	return nil
}

func (s *Importer) reportValidationError(verr *schema.ValidationError) {
	_, _ = ui.Error.Fprintln(s.out, s.trans.GetMessage("validation.failed", 0, nil))
	fmt.Fprintln(s.out)
	if verr.LabelViolation() {
		fmt.Fprintln(s.out, s.trans.GetMessage("validation.unknown_label", 0, nil))
		fmt.Fprintln(s.out)
	}
	fmt.Fprintln(s.out, verr.Detail)
}

// importComments posts the comments strictly in order. Each post is issued
// only after the previous one succeeded; a failed post stops the chain after
// the last reported success.
func (s *Importer) importComments(ctx context.Context, number int, comments []string) {
	for i, body := range comments {
		if i > 0 {
			time.Sleep(s.delay)
		}

		comment, err := s.tracker.CreateComment(ctx, number, body)
		if err != nil {
			// TODO: surface skipped comments to the user instead of stopping
			// silently, matching what the issue creation path does.
			slog.Debug("comment chain stopped", "issue", number, "posted", i, "total", len(comments), "err", err)
			return
		}

		_, _ = ui.Success.Fprintln(s.out, s.trans.GetMessage("comments.created", 0, map[string]interface{}{"URL": comment.URL}))
	}

	_, _ = ui.Success.Fprintln(s.out, s.trans.GetMessage("comments.done", 0, nil))
}
