package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tracker/internal/store"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) QueryByPublicID(ctx context.Context, publicID string) ([]store.Record, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Record), args.Error(1)
}

func (m *MockClient) QueryMissingPublicID(ctx context.Context) ([]store.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Record), args.Error(1)
}

func (m *MockClient) GetRecord(ctx context.Context, recordID string) (*store.Record, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Record), args.Error(1)
}

func (m *MockClient) SetPublicID(ctx context.Context, recordID, publicID, url string) error {
	args := m.Called(ctx, recordID, publicID, url)
	return args.Error(0)
}

func (m *MockClient) ListComments(ctx context.Context, recordID string) ([]store.Comment, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Comment), args.Error(1)
}

func (m *MockClient) RetrieveSchema(ctx context.Context) (*store.Schema, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Schema), args.Error(1)
}
