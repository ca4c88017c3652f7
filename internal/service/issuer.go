package service

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tracker/internal/normalize"
	"tracker/internal/store"
)

// IssueResult reports one backfill run. Partial success is normal: Failed
// counts records whose update did not land, not a fatal condition.
type IssueResult struct {
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// IssuerService assigns public identifiers to records that lack one.
type IssuerService interface {
	IssueMissing(ctx context.Context) (*IssueResult, error)
}

type issuerService struct {
	store       store.Client
	siteURL     string
	concurrency int
}

// NewIssuerService constructs an IssuerService. concurrency caps the number
// of in-flight record updates to respect the store's rate limits.
func NewIssuerService(s store.Client, siteURL string, concurrency int) IssuerService {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &issuerService{store: s, siteURL: siteURL, concurrency: concurrency}
}

// IssueMissing scans for records with an empty public-id property, mints a
// random identifier and canonical URL for each, and writes them back.
// Immediately before each write the record is re-read and skipped if another
// run already filled the property, keeping the published identifier unique
// per record. One record's failure never aborts the batch.
func (s *issuerService) IssueMissing(ctx context.Context) (*IssueResult, error) {
	records, err := s.store.QueryMissingPublicID(ctx)
	if err != nil {
		return nil, err
	}

	var updated, failed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			current, err := s.store.GetRecord(ctx, rec.ID)
			if err != nil {
				failed.Add(1)
				return nil
			}
			if normalize.PublicID(*current) != "" {
				// Another run won the race; nothing to publish.
				return nil
			}

			id := uuid.NewString()
			if err := s.store.SetPublicID(ctx, rec.ID, id, s.siteURL+"/t/"+id); err != nil {
				failed.Add(1)
				return nil
			}
			updated.Add(1)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; counters carry the outcome

	return &IssueResult{
		Updated: int(updated.Load()),
		Failed:  int(failed.Load()),
	}, nil
}
