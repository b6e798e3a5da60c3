package github

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/webcompat/issue-importer/internal/domain/errors"
	"github.com/webcompat/issue-importer/internal/domain/models"
	"github.com/webcompat/issue-importer/internal/i18n"
)

func newTestClient(t *testing.T, issues *MockIssuesService) *GitHubClient {
	t.Helper()
	trans, err := i18n.NewTranslations("en", t.TempDir())
	require.NoError(t, err)
	return NewGitHubClientWithServices(issues, issues, "test-owner", "test-repo", trans)
}

func ghResp(status, nextPage int) *github.Response {
	return &github.Response{
		Response: &http.Response{StatusCode: status},
		NextPage: nextPage,
	}
}

func TestGitHubClient_ListLabels(t *testing.T) {
	t.Run("should return the label names", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(t, mockIssues)

		mockIssues.On("ListLabels", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return([]*github.Label{
				{Name: github.Ptr("layout")},
				{Name: github.Ptr("video")},
			}, ghResp(http.StatusOK, 0), nil)

		labels, err := client.ListLabels(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"layout", "video"}, labels)
		mockIssues.AssertExpectations(t)
	})

	t.Run("should follow pagination", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(t, mockIssues)

		mockIssues.On("ListLabels", mock.Anything, "test-owner", "test-repo", mock.MatchedBy(func(opts *github.ListOptions) bool {
			return opts.Page == 0
		})).Return([]*github.Label{{Name: github.Ptr("layout")}}, ghResp(http.StatusOK, 2), nil).Once()

		mockIssues.On("ListLabels", mock.Anything, "test-owner", "test-repo", mock.MatchedBy(func(opts *github.ListOptions) bool {
			return opts.Page == 2
		})).Return([]*github.Label{{Name: github.Ptr("video")}}, ghResp(http.StatusOK, 0), nil).Once()

		labels, err := client.ListLabels(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"layout", "video"}, labels)
		mockIssues.AssertNumberOfCalls(t, "ListLabels", 2)
	})

	t.Run("should propagate a transport failure", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(t, mockIssues)

		mockIssues.On("ListLabels", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return(nil, nil, errors.New("connection refused"))

		_, err := client.ListLabels(context.Background())

		assert.Error(t, err)
	})

	t.Run("should read through the anonymous service, never the write one", func(t *testing.T) {
		mockWrites := &MockIssuesService{}
		mockReads := &MockIssuesService{}
		trans, err := i18n.NewTranslations("en", t.TempDir())
		require.NoError(t, err)
		client := NewGitHubClientWithServices(mockWrites, mockReads, "test-owner", "test-repo", trans)

		mockReads.On("ListLabels", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return([]*github.Label{{Name: github.Ptr("layout")}}, ghResp(http.StatusOK, 0), nil)

		labels, err := client.ListLabels(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"layout"}, labels)
		mockWrites.AssertNotCalled(t, "ListLabels", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockReads.AssertExpectations(t)
	})
}

func TestGitHubClient_CreateIssue(t *testing.T) {
	descriptor := models.IssueDescriptor{
		URL:     "http://example.com/",
		Browser: "Firefox 38.0",
		OS:      "Mac OS X 10.10",
		Body:    "The layout is broken.",
		Title:   "example.com - layout is broken",
		Labels:  []string{"layout"},
	}

	t.Run("should create the issue with the formatted body", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(t, mockIssues)

		mockIssues.On("Create", mock.Anything, "test-owner", "test-repo", mock.MatchedBy(func(req *github.IssueRequest) bool {
			return req.GetTitle() == descriptor.Title &&
				req.GetBody() == descriptor.IssueBody() &&
				len(*req.Labels) == 1 && (*req.Labels)[0] == "layout"
		})).Return(&github.Issue{
			Number:  github.Ptr(42),
			HTMLURL: github.Ptr("http://x/42"),
		}, ghResp(http.StatusCreated, 0), nil)

		issue, err := client.CreateIssue(context.Background(), descriptor)

		require.NoError(t, err)
		assert.Equal(t, 42, issue.Number)
		assert.Equal(t, "http://x/42", issue.URL)
		mockIssues.AssertExpectations(t)
	})

	t.Run("should return a status error on 422", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(t, mockIssues)

		mockIssues.On("Create", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return(nil, ghResp(http.StatusUnprocessableEntity, 0), errors.New("422 Validation Failed"))

		_, err := client.CreateIssue(context.Background(), descriptor)

		var serr *domainErrors.StatusError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, http.StatusUnprocessableEntity, serr.Code)
	})

	t.Run("should propagate a transport failure without a status", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(t, mockIssues)

		mockIssues.On("Create", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return(nil, nil, errors.New("connection reset"))

		_, err := client.CreateIssue(context.Background(), descriptor)

		require.Error(t, err)
		var serr *domainErrors.StatusError
		assert.False(t, errors.As(err, &serr))
	})
}

func TestGitHubClient_CreateComment(t *testing.T) {
	t.Run("should create the comment and return its URL", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(t, mockIssues)

		mockIssues.On("CreateComment", mock.Anything, "test-owner", "test-repo", 42, mock.MatchedBy(func(c *github.IssueComment) bool {
			return c.GetBody() == "first comment"
		})).Return(&github.IssueComment{
			HTMLURL: github.Ptr("http://x/42#issuecomment-1"),
		}, ghResp(http.StatusCreated, 0), nil)

		comment, err := client.CreateComment(context.Background(), 42, "first comment")

		require.NoError(t, err)
		assert.Equal(t, "http://x/42#issuecomment-1", comment.URL)
	})

	t.Run("should return a status error on a non-201 response", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(t, mockIssues)

		mockIssues.On("CreateComment", mock.Anything, "test-owner", "test-repo", 42, mock.Anything).
			Return(nil, ghResp(http.StatusForbidden, 0), errors.New("403 Forbidden"))

		_, err := client.CreateComment(context.Background(), 42, "spam")

		var serr *domainErrors.StatusError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, http.StatusForbidden, serr.Code)
	})
}
