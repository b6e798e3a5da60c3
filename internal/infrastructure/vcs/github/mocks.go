package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) ListLabels(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.Label, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	if args.Get(0) == nil {
		return nil, resp(args.Get(1)), args.Error(2)
	}
	return args.Get(0).([]*github.Label), resp(args.Get(1)), args.Error(2)
}

func (m *MockIssuesService) Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, issue)
	if args.Get(0) == nil {
		return nil, resp(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.Issue), resp(args.Get(1)), args.Error(2)
}

func (m *MockIssuesService) CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, comment)
	if args.Get(0) == nil {
		return nil, resp(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.IssueComment), resp(args.Get(1)), args.Error(2)
}

func resp(v interface{}) *github.Response {
	if v == nil {
		return nil
	}
	return v.(*github.Response)
}
