package kb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Record is one question/answer pair from the source document. Questions are
// stored trimmed and lowercased; answers keep their original casing.
type Record struct {
	Question string
	Answer   string
}

// ErrNoContent is returned when a fetched document parses to zero records.
// The previous records are kept, so callers can continue serving stale data.
var ErrNoContent = errors.New("document contains no question/answer pairs")

// Fetcher returns the current raw text of the source document.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Base holds the current knowledge base and refreshes it from a Fetcher.
// Records are only ever replaced wholesale, never mutated in place, so a
// snapshot returned by Records stays valid across refreshes.
type Base struct {
	fetcher  Fetcher
	interval time.Duration

	// Test hooks.
	now   func() time.Time
	parse func(string) []Record

	mu          sync.Mutex
	records     []Record
	fingerprint string
	lastRefresh time.Time
}

// New creates an empty Base. Callers should perform one forced Refresh
// before serving queries; a Base that has never refreshed answers nothing.
func New(fetcher Fetcher, interval time.Duration) *Base {
	return &Base{
		fetcher:  fetcher,
		interval: interval,
		now:      time.Now,
		parse:    Parse,
	}
}

// Refresh re-fetches and re-parses the source document.
//
// Unless forced, it is a no-op within the refresh interval of the last
// successful refresh. Identical document content (by fingerprint) skips
// re-parsing but still advances the refresh time. A document that parses to
// zero records is rejected with ErrNoContent and the prior records are kept.
func (b *Base) Refresh(ctx context.Context, force bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if !force && !b.lastRefresh.IsZero() && now.Sub(b.lastRefresh) < b.interval {
		return nil
	}

	text, err := b.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetching document: %w", err)
	}

	fp := Fingerprint(text)
	if fp == b.fingerprint && b.fingerprint != "" {
		b.lastRefresh = now
		return nil
	}

	records := b.parse(text)
	if len(records) == 0 {
		return ErrNoContent
	}

	b.records = records
	b.fingerprint = fp
	b.lastRefresh = now
	return nil
}

// Records returns the current record snapshot in document order.
func (b *Base) Records() []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.records
}

// Len returns the number of records currently held.
func (b *Base) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.records)
}

// LastRefresh returns the time of the last successful refresh, zero if the
// base has never refreshed.
func (b *Base) LastRefresh() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastRefresh
}

// Fingerprint returns the fingerprint of the last parsed document, empty if
// the base has never refreshed.
func (b *Base) Fingerprint() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fingerprint
}
