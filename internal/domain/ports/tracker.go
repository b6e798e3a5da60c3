package ports

import (
	"context"

	"github.com/webcompat/issue-importer/internal/domain/models"
)

// IssueTracker is the remote tracker the importer talks to. Implemented by
// the GitHub client; commands and services depend on this interface only.
type IssueTracker interface {
	// ListLabels returns the names of every label defined on the repository.
	ListLabels(ctx context.Context) ([]string, error)
	// CreateIssue posts a new issue. A response status other than 201 is
	// returned as *errors.StatusError.
	CreateIssue(ctx context.Context, descriptor models.IssueDescriptor) (*models.Issue, error)
	// CreateComment posts a comment on an existing issue. A response status
	// other than 201 is returned as *errors.StatusError.
	CreateComment(ctx context.Context, number int, body string) (*models.Comment, error)
}
