// Package answer wires the knowledge base, match engine and response cache
// into the full question-answering flow.
package answer

import (
	"context"
	"strings"

	"github.com/dodey917/Iknowall1bot/internal/kb"
	"github.com/dodey917/Iknowall1bot/internal/match"
	"github.com/dodey917/Iknowall1bot/internal/replycache"
)

// Responder resolves free-text questions. One logical question is resolved
// start to finish; the only blocking point is a document refresh.
type Responder struct {
	base      *kb.Base
	cache     *replycache.Cache
	threshold float64
	fallback  string
	prompt    string
}

// Options configures a Responder.
type Options struct {
	Threshold float64 // similarity threshold, see match.DefaultThreshold
	Fallback  string  // reply when nothing matches
	Prompt    string  // reply to an empty question
}

func New(base *kb.Base, cache *replycache.Cache, opts Options) *Responder {
	if opts.Threshold <= 0 {
		opts.Threshold = match.DefaultThreshold
	}
	return &Responder{
		base:      base,
		cache:     cache,
		threshold: opts.Threshold,
		fallback:  opts.Fallback,
		prompt:    opts.Prompt,
	}
}

// Normalize prepares a question for matching and cache lookup.
func Normalize(question string) string {
	return strings.ToLower(strings.TrimSpace(question))
}

// Answer resolves question to a reply. It always returns a usable reply;
// the error is advisory (a refresh that failed along the way, worth logging
// but already degraded to stale data or the fallback).
//
// Flow: cache lookup, then matching against the current records, then an
// interval-gated refresh and one retry, then the fallback. The final reply,
// fallback included, is cached so identical rapid-fire questions skip all
// of this within the cache TTL.
func (r *Responder) Answer(ctx context.Context, question string) (string, error) {
	query := Normalize(question)
	if query == "" {
		return r.prompt, nil
	}

	if reply, ok := r.cache.Get(query); ok {
		return reply, nil
	}

	if reply, ok := match.Resolve(query, r.base.Records(), r.threshold); ok {
		r.cache.Put(query, reply)
		return reply, nil
	}

	// The document may have changed since the last refresh. The interval
	// gate inside Refresh keeps unmatched questions from hammering the
	// document service.
	refreshErr := r.base.Refresh(ctx, false)
	if refreshErr == nil {
		if reply, ok := match.Resolve(query, r.base.Records(), r.threshold); ok {
			r.cache.Put(query, reply)
			return reply, nil
		}
	}

	r.cache.Put(query, r.fallback)
	return r.fallback, refreshErr
}
