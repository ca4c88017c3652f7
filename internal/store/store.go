package store

import (
	"context"
	"fmt"
)

// Package store contains the record-store access layer abstractions.
// Implementations live in subpackages (e.g., notion) inside this directory.

// Well-known property names in the tracker collection. Lookup through the
// normalizer is alias-tolerant; these are the canonical spellings and the
// only names the write path uses.
const (
	FieldPublicID = "Public ID"
	FieldURL      = "Url"
)

// Client is the narrow view of the external record store the tracker needs.
// All methods may fail with *UpstreamError; a query that legitimately matches
// zero records returns an empty slice and a nil error.
type Client interface {
	// QueryByPublicID returns records whose public-id property equals the
	// given value, most recently created first.
	QueryByPublicID(ctx context.Context, publicID string) ([]Record, error)

	// QueryMissingPublicID returns records whose public-id property is empty.
	QueryMissingPublicID(ctx context.Context) ([]Record, error)

	// GetRecord retrieves a single record by its store identifier.
	GetRecord(ctx context.Context, recordID string) (*Record, error)

	// SetPublicID writes the public identifier and its canonical URL to the
	// record's corresponding properties.
	SetPublicID(ctx context.Context, recordID, publicID, url string) error

	// ListComments returns the record's full comment thread in store order.
	ListComments(ctx context.Context, recordID string) ([]Comment, error)

	// RetrieveSchema returns the collection's property descriptions,
	// following a data-source reference when the configured API revision
	// requires it.
	RetrieveSchema(ctx context.Context) (*Schema, error)
}

// UpstreamError reports a failed interaction with the external store:
// transport failures, non-2xx responses, and malformed bodies all map here.
// It carries enough for diagnostics without ever echoing credentials.
type UpstreamError struct {
	Op      string // logical operation, e.g. "query records"
	Status  int    // HTTP status, 0 for transport-level failures
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("store: %s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("store: %s: %s", e.Op, e.Message)
}
