package importer

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/webcompat/issue-importer/internal/domain/models"
)

// MockTracker is a testify mock of ports.IssueTracker for command tests.
type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) ListLabels(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTracker) CreateIssue(ctx context.Context, descriptor models.IssueDescriptor) (*models.Issue, error) {
	args := m.Called(ctx, descriptor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Issue), args.Error(1)
}

func (m *MockTracker) CreateComment(ctx context.Context, number int, body string) (*models.Comment, error) {
	args := m.Called(ctx, number, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}
