package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tracker/internal/model"
	"tracker/internal/service"
)

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) GetProject(ctx context.Context, publicID string) (*model.ProjectStatus, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectStatus), args.Error(1)
}

type MockIssuerService struct {
	mock.Mock
}

func (m *MockIssuerService) IssueMissing(ctx context.Context) (*service.IssueResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IssueResult), args.Error(1)
}

type MockTimelineAggregator struct {
	mock.Mock
}

func (m *MockTimelineAggregator) Timeline(ctx context.Context, recordID string) ([]model.TimelineEntry, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TimelineEntry), args.Error(1)
}
