package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/webcompat/issue-importer/internal/config"
	domainErrors "github.com/webcompat/issue-importer/internal/domain/errors"
	"github.com/webcompat/issue-importer/internal/domain/models"
	"github.com/webcompat/issue-importer/internal/domain/ports"
	"github.com/webcompat/issue-importer/internal/i18n"
)

var _ ports.IssueTracker = (*GitHubClient)(nil)

// IssuesService is the slice of the go-github issues API the importer uses.
type IssuesService interface {
	ListLabels(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.Label, *github.Response, error)
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
}

// GitHubClient implements ports.IssueTracker on top of the GitHub REST API.
// Issue and comment writes carry the configured token; the label read always
// goes out anonymously.
type GitHubClient struct {
	issuesService IssuesService
	labelsService IssuesService
	owner         string
	repo          string
	trans         *i18n.Translations
}

// NewGitHubClient creates a client for the configured repository. The label
// read works without a token; issue and comment writes need one.
func NewGitHubClient(cfg *config.Config, trans *i18n.Translations) (*GitHubClient, error) {
	owner, repo, err := config.SplitRepo(cfg.Repo)
	if err != nil {
		return nil, err
	}

	anonymous := github.NewClient(nil)
	authenticated := anonymous
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		authenticated = github.NewClient(oauth2.NewClient(context.Background(), ts))
	}

	return &GitHubClient{
		issuesService: authenticated.Issues,
		labelsService: anonymous.Issues,
		owner:         owner,
		repo:          repo,
		trans:         trans,
	}, nil
}

// NewGitHubClientWithServices wires explicit write and read services, used
// by tests to substitute mocks.
func NewGitHubClientWithServices(issues, labels IssuesService, owner, repo string, trans *i18n.Translations) *GitHubClient {
	return &GitHubClient{
		issuesService: issues,
		labelsService: labels,
		owner:         owner,
		repo:          repo,
		trans:         trans,
	}
}

func (ghc *GitHubClient) ListLabels(ctx context.Context) ([]string, error) {
	opts := &github.ListOptions{PerPage: 100}

	var names []string
	for {
		labels, resp, err := ghc.labelsService.ListLabels(ctx, ghc.owner, ghc.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ghc.trans.GetMessage("error.get_labels", 0, nil), err)
		}

		for _, label := range labels {
			names = append(names, label.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	slog.Debug("fetched repository labels", "repo", ghc.owner+"/"+ghc.repo, "count", len(names))
	return names, nil
}

func (ghc *GitHubClient) CreateIssue(ctx context.Context, descriptor models.IssueDescriptor) (*models.Issue, error) {
	labels := descriptor.Labels
	req := &github.IssueRequest{
		Title:  github.Ptr(descriptor.Title),
		Body:   github.Ptr(descriptor.IssueBody()),
		Labels: &labels,
	}

	issue, resp, err := ghc.issuesService.Create(ctx, ghc.owner, ghc.repo, req)
	if err != nil {
		if resp != nil {
			return nil, domainErrors.NewStatusError(resp.StatusCode)
		}
		return nil, fmt.Errorf("%s: %w", ghc.trans.GetMessage("error.create_issue", 0, nil), err)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, domainErrors.NewStatusError(resp.StatusCode)
	}

	return &models.Issue{
		Number: issue.GetNumber(),
		URL:    issue.GetHTMLURL(),
	}, nil
}

func (ghc *GitHubClient) CreateComment(ctx context.Context, number int, body string) (*models.Comment, error) {
	comment, resp, err := ghc.issuesService.CreateComment(ctx, ghc.owner, ghc.repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		if resp != nil {
			return nil, domainErrors.NewStatusError(resp.StatusCode)
		}
		return nil, fmt.Errorf("%s: %w", ghc.trans.GetMessage("error.create_comment", 0, map[string]interface{}{"Number": number}), err)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, domainErrors.NewStatusError(resp.StatusCode)
	}

	return &models.Comment{URL: comment.GetHTMLURL()}, nil
}
