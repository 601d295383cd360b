package kb

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeFetcher struct {
	text  string
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

const sampleDoc = "Q: hi\nA: hello\n\nQ: who are you\nA: I Know All"

func newTestBase(f *fakeFetcher) (*Base, *time.Time) {
	b := New(f, 5*time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestRefreshPopulates(t *testing.T) {
	f := &fakeFetcher{text: sampleDoc}
	b, _ := newTestBase(f)

	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if b.Len() != 2 {
		t.Errorf("expected 2 records, got %d", b.Len())
	}
	if b.LastRefresh().IsZero() {
		t.Error("expected lastRefresh to advance")
	}
}

func TestRefreshIntervalGate(t *testing.T) {
	f := &fakeFetcher{text: sampleDoc}
	b, now := newTestBase(f)

	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if err := b.Refresh(context.Background(), false); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if f.calls != 1 {
		t.Errorf("expected 1 fetch within the interval, got %d", f.calls)
	}

	*now = now.Add(6 * time.Minute)
	if err := b.Refresh(context.Background(), false); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if f.calls != 2 {
		t.Errorf("expected a second fetch after the interval, got %d", f.calls)
	}
}

func TestRefreshForceBypassesInterval(t *testing.T) {
	f := &fakeFetcher{text: sampleDoc}
	b, _ := newTestBase(f)

	b.Refresh(context.Background(), true)
	b.Refresh(context.Background(), true)
	if f.calls != 2 {
		t.Errorf("forced refresh should always fetch, got %d calls", f.calls)
	}
}

func TestRefreshUnchangedContentSkipsParse(t *testing.T) {
	f := &fakeFetcher{text: sampleDoc}
	b, now := newTestBase(f)

	parseCalls := 0
	realParse := b.parse
	b.parse = func(text string) []Record {
		parseCalls++
		return realParse(text)
	}

	b.Refresh(context.Background(), true)
	first := b.LastRefresh()

	*now = now.Add(time.Hour)
	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if parseCalls != 1 {
		t.Errorf("identical content should not re-parse, got %d parse calls", parseCalls)
	}
	if !b.LastRefresh().After(first) {
		t.Error("lastRefresh should still advance on unchanged content")
	}
}

func TestRefreshFetchErrorKeepsRecords(t *testing.T) {
	f := &fakeFetcher{text: sampleDoc}
	b, _ := newTestBase(f)
	b.Refresh(context.Background(), true)

	f.err = errors.New("document service unreachable")
	err := b.Refresh(context.Background(), true)
	if err == nil {
		t.Fatal("expected an error from a failed fetch")
	}
	if b.Len() != 2 {
		t.Errorf("records should survive a failed fetch, got %d", b.Len())
	}
}

func TestRefreshEmptyDocumentKeepsRecords(t *testing.T) {
	f := &fakeFetcher{text: sampleDoc}
	b, _ := newTestBase(f)
	b.Refresh(context.Background(), true)
	old := b.Fingerprint()

	f.text = "nothing that parses"
	err := b.Refresh(context.Background(), true)
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
	if b.Len() != 2 {
		t.Errorf("records should survive an empty parse, got %d", b.Len())
	}
	if b.Fingerprint() != old {
		t.Error("fingerprint should not change on a rejected refresh")
	}
}

func TestRefreshReplacesRecordsOnChange(t *testing.T) {
	f := &fakeFetcher{text: sampleDoc}
	b, _ := newTestBase(f)
	b.Refresh(context.Background(), true)
	before := b.Records()

	f.text = "Q: brand new\nA: content"
	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	after := b.Records()
	if len(after) != 1 || after[0].Question != "brand new" {
		t.Errorf("expected replaced records, got %v", after)
	}
	// The old snapshot must be untouched: records are swapped, not mutated.
	if len(before) != 2 || before[0].Question != "hi" {
		t.Errorf("old snapshot was mutated: %v", before)
	}
}

func TestEmptyBaseBeforeRefresh(t *testing.T) {
	b := New(&fakeFetcher{text: sampleDoc}, time.Minute)
	if b.Len() != 0 {
		t.Errorf("new base should be empty, got %d records", b.Len())
	}
	if !b.LastRefresh().IsZero() {
		t.Error("new base should have a zero lastRefresh")
	}
}
