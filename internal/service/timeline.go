package service

import (
	"context"
	"sort"
	"strings"

	"tracker/internal/model"
	"tracker/internal/store"
)

// TimelineAggregator builds a project's normalized update timeline.
type TimelineAggregator interface {
	// Timeline returns the record's updates newest first. Entries with no
	// text content are dropped.
	Timeline(ctx context.Context, recordID string) ([]model.TimelineEntry, error)
}

// commentTimeline sources the timeline from the record's comment thread.
type commentTimeline struct {
	store store.Client
}

// NewCommentTimeline constructs a TimelineAggregator over the record's
// comment thread.
func NewCommentTimeline(s store.Client) TimelineAggregator {
	return &commentTimeline{store: s}
}

func (t *commentTimeline) Timeline(ctx context.Context, recordID string) ([]model.TimelineEntry, error) {
	comments, err := t.store.ListComments(ctx, recordID)
	if err != nil {
		return nil, err
	}

	entries := make([]model.TimelineEntry, 0, len(comments))
	for _, c := range comments {
		var b strings.Builder
		for _, rt := range c.RichText {
			b.WriteString(rt.PlainText)
		}
		if b.Len() == 0 {
			continue
		}
		entries = append(entries, model.TimelineEntry{
			Text:      b.String(),
			Timestamp: c.CreatedTime,
		})
	}

	// The store does not guarantee order. Stable sort keeps source order
	// for entries sharing a timestamp.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}
