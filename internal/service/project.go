package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"tracker/internal/model"
	"tracker/internal/normalize"
	"tracker/internal/store"
)

var (
	ErrIDRequired = errors.New("public id is required")
	ErrNotFound   = errors.New("project not found")
)

// ProjectService resolves a public identifier to the aggregate status
// payload the frontend renders.
type ProjectService interface {
	GetProject(ctx context.Context, publicID string) (*model.ProjectStatus, error)
}

type projectService struct {
	store    store.Client
	timeline TimelineAggregator
}

// NewProjectService constructs a new ProjectService.
func NewProjectService(s store.Client, timeline TimelineAggregator) ProjectService {
	return &projectService{store: s, timeline: timeline}
}

// SanitizePublicID strips every character outside [A-Za-z0-9-] from a raw
// path segment before it reaches any store query.
func SanitizePublicID(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GetProject locates the record first, then fetches workflow stages and the
// update timeline concurrently. Field normalization is pure and runs inline.
func (s *projectService) GetProject(ctx context.Context, publicID string) (*model.ProjectStatus, error) {
	if publicID == "" {
		return nil, ErrIDRequired
	}

	records, err := s.store.QueryByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	// Duplicate public ids are a store hygiene issue, not a request-time
	// failure: take the most recently created match. The query already
	// sorts newest first; this guards against stores that ignore sorts.
	rec := records[0]
	for _, r := range records[1:] {
		if r.CreatedTime.After(rec.CreatedTime) {
			rec = r
		}
	}

	var (
		stages  []string
		entries []model.TimelineEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		schema, err := s.store.RetrieveSchema(gctx)
		if err != nil {
			return err
		}
		stages = normalize.Stages(schema)
		return nil
	})
	g.Go(func() error {
		var err error
		entries, err = s.timeline.Timeline(gctx, rec.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.ProjectStatus{
		Project:  normalize.Fields(rec),
		Stages:   stages,
		Timeline: entries,
	}, nil
}
