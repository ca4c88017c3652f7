package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tracker/internal/store"
	storeMocks "tracker/internal/store/mocks"
)

func TestCommentTimeline_NewestFirst(t *testing.T) {
	ctx := context.Background()

	t1 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	t3 := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	mStore := new(storeMocks.MockClient)
	mStore.On("ListComments", ctx, "rec-1").Return([]store.Comment{
		{CreatedTime: t1, RichText: []store.RichText{{PlainText: "kickoff done"}}},
		{CreatedTime: t3, RichText: []store.RichText{{PlainText: "design approved"}}},
		{CreatedTime: t2, RichText: []store.RichText{{PlainText: "launched"}}},
	}, nil)

	agg := NewCommentTimeline(mStore)
	entries, err := agg.Timeline(ctx, "rec-1")

	assert.NoError(t, err)
	if assert.Len(t, entries, 3) {
		assert.Equal(t, "launched", entries[0].Text)
		assert.Equal(t, "design approved", entries[1].Text)
		assert.Equal(t, "kickoff done", entries[2].Text)
	}
	mStore.AssertExpectations(t)
}

func TestCommentTimeline_TiesKeepSourceOrder(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	mStore := new(storeMocks.MockClient)
	mStore.On("ListComments", ctx, "rec-1").Return([]store.Comment{
		{CreatedTime: ts, RichText: []store.RichText{{PlainText: "first"}}},
		{CreatedTime: ts, RichText: []store.RichText{{PlainText: "second"}}},
	}, nil)

	agg := NewCommentTimeline(mStore)
	entries, err := agg.Timeline(ctx, "rec-1")

	assert.NoError(t, err)
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "first", entries[0].Text)
		assert.Equal(t, "second", entries[1].Text)
	}
}

func TestCommentTimeline_TextRunsConcatenated(t *testing.T) {
	ctx := context.Background()

	mStore := new(storeMocks.MockClient)
	mStore.On("ListComments", ctx, "rec-1").Return([]store.Comment{
		{
			CreatedTime: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
			RichText: []store.RichText{
				{PlainText: "design "},
				{PlainText: "approved"},
			},
		},
	}, nil)

	agg := NewCommentTimeline(mStore)
	entries, err := agg.Timeline(ctx, "rec-1")

	assert.NoError(t, err)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "design approved", entries[0].Text)
	}
}

func TestCommentTimeline_EmptyEntriesDropped(t *testing.T) {
	ctx := context.Background()

	mStore := new(storeMocks.MockClient)
	mStore.On("ListComments", ctx, "rec-1").Return([]store.Comment{
		{CreatedTime: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{CreatedTime: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), RichText: []store.RichText{{PlainText: ""}}},
		{CreatedTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), RichText: []store.RichText{{PlainText: "real update"}}},
	}, nil)

	agg := NewCommentTimeline(mStore)
	entries, err := agg.Timeline(ctx, "rec-1")

	assert.NoError(t, err)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "real update", entries[0].Text)
	}
}

func TestCommentTimeline_StoreError(t *testing.T) {
	ctx := context.Background()

	mStore := new(storeMocks.MockClient)
	mStore.On("ListComments", ctx, "rec-1").Return(nil, errors.New("store down"))

	agg := NewCommentTimeline(mStore)
	entries, err := agg.Timeline(ctx, "rec-1")

	assert.Error(t, err)
	assert.Nil(t, entries)
}
