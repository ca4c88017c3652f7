package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/store"
)

// fakeStore is a minimal in-memory store.Client that persists public-id
// writes, so issuance and resolution can be exercised together.
type fakeStore struct {
	mu      sync.Mutex
	records map[string]*store.Record
	schema  *store.Schema
}

func newFakeStore(schema *store.Schema, records ...*store.Record) *fakeStore {
	m := make(map[string]*store.Record, len(records))
	for _, r := range records {
		m[r.ID] = r
	}
	return &fakeStore{records: m, schema: schema}
}

func (f *fakeStore) publicID(r *store.Record) string {
	p, ok := r.Properties[store.FieldPublicID]
	if !ok || len(p.RichText) == 0 {
		return ""
	}
	return p.RichText[0].PlainText
}

func (f *fakeStore) QueryByPublicID(ctx context.Context, publicID string) ([]store.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []store.Record
	for _, r := range f.records {
		if f.publicID(r) == publicID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) QueryMissingPublicID(ctx context.Context) ([]store.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []store.Record
	for _, r := range f.records {
		if f.publicID(r) == "" {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) GetRecord(ctx context.Context, recordID string) (*store.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[recordID]
	if !ok {
		return nil, &store.UpstreamError{Op: "get record", Status: 404, Message: "no such record"}
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) SetPublicID(ctx context.Context, recordID, publicID, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[recordID]
	if !ok {
		return &store.UpstreamError{Op: "set public id", Status: 404, Message: "no such record"}
	}
	r.Properties[store.FieldPublicID] = store.Property{
		Type:     "rich_text",
		RichText: []store.RichText{{PlainText: publicID}},
	}
	r.Properties[store.FieldURL] = store.Property{Type: "url"}
	return nil
}

func (f *fakeStore) ListComments(ctx context.Context, recordID string) ([]store.Comment, error) {
	return nil, nil
}

func (f *fakeStore) RetrieveSchema(ctx context.Context) (*store.Schema, error) {
	return f.schema, nil
}

func TestIssueThenResolveLifecycle(t *testing.T) {
	ctx := context.Background()

	schema := &store.Schema{Properties: map[string]store.SchemaProperty{
		"Status": {Type: "status", Status: &store.OptionList{Options: []store.SelectOption{
			{Name: "Onboarding"}, {Name: "Design"}, {Name: "Launch"},
		}}},
	}}
	rec := &store.Record{
		ID:          "rec-1",
		CreatedTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Properties: map[string]store.Property{
			"Name":              {Type: "title", Title: []store.RichText{{PlainText: "Acme Site"}}},
			"Status":            {Type: "status", Status: &store.SelectOption{Name: "Design"}},
			store.FieldPublicID: {Type: "rich_text", RichText: []store.RichText{}},
		},
	}
	fs := newFakeStore(schema, rec)

	issuer := NewIssuerService(fs, "https://tracker.test", 2)
	projects := NewProjectService(fs, NewCommentTimeline(fs))

	// First run issues exactly one identifier.
	res, err := issuer.IssueMissing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 0, res.Failed)

	issued := fs.publicID(rec)
	require.NotEmpty(t, issued)

	// A second run finds nothing left to do.
	res, err = issuer.IssueMissing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Updated)

	// The issued identifier resolves to the full status payload.
	status, err := projects.GetProject(ctx, issued)
	require.NoError(t, err)
	assert.Equal(t, "Acme Site", status.Project.ProjectName)
	assert.Equal(t, "Design", status.Project.Status)
	assert.Equal(t, []string{"Onboarding", "Design", "Launch"}, status.Stages)

	// An unknown identifier is not found, never an upstream failure.
	_, err = projects.GetProject(ctx, "nonexistent-id")
	assert.ErrorIs(t, err, ErrNotFound)
}
