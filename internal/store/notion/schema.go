package notion

import (
	"context"
	"net/http"

	"tracker/internal/store"
)

// schemaSource abstracts the two incompatible schema shapes the store has
// shipped. The right source is chosen once at construction time from the
// configured API revision, never re-detected per request.
type schemaSource interface {
	fetch(ctx context.Context) (*store.Schema, error)
}

type databaseResponse struct {
	Properties  map[string]store.SchemaProperty `json:"properties"`
	DataSources []struct {
		ID string `json:"id"`
	} `json:"data_sources"`
}

// databaseSchema reads property descriptions directly off the database,
// the single-level shape of the 2022 revision.
type databaseSchema struct {
	c *Client
}

func (s *databaseSchema) fetch(ctx context.Context) (*store.Schema, error) {
	var db databaseResponse
	if err := s.c.do(ctx, "retrieve schema", http.MethodGet, "/v1/databases/"+s.c.databaseID, nil, &db); err != nil {
		return nil, err
	}
	return &store.Schema{Properties: db.Properties}, nil
}

// dataSourceSchema follows the database's data-source reference and fetches
// the property descriptions from there, the two-level 2025 shape.
type dataSourceSchema struct {
	c *Client
}

func (s *dataSourceSchema) fetch(ctx context.Context) (*store.Schema, error) {
	dsID, err := s.c.resolveDataSourceID(ctx)
	if err != nil {
		return nil, err
	}
	var ds struct {
		Properties map[string]store.SchemaProperty `json:"properties"`
	}
	if err := s.c.do(ctx, "retrieve schema", http.MethodGet, "/v1/data_sources/"+dsID, nil, &ds); err != nil {
		return nil, err
	}
	return &store.Schema{Properties: ds.Properties}, nil
}
