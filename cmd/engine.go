package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dodey917/Iknowall1bot/internal/answer"
	"github.com/dodey917/Iknowall1bot/internal/config"
	"github.com/dodey917/Iknowall1bot/internal/fetch"
	"github.com/dodey917/Iknowall1bot/internal/kb"
	"github.com/dodey917/Iknowall1bot/internal/replycache"
)

// buildEngine wires the fetcher, knowledge base and responder from config.
// The base starts empty; callers must run an initial forced refresh and
// treat its failure as fatal before serving questions.
func buildEngine(cfg *config.Config) (*kb.Base, *answer.Responder, error) {
	fetcher, err := fetch.New(cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("configuring source: %w", err)
	}

	base := kb.New(fetcher, cfg.RefreshDuration())
	cache := replycache.New(cfg.CacheExpiryDuration())
	responder := answer.New(base, cache, answer.Options{
		Threshold: cfg.Threshold(),
		Fallback:  cfg.FallbackText(),
		Prompt:    cfg.PromptText(),
	})
	return base, responder, nil
}

// initialRefresh populates a fresh base. Failure here is fatal to the
// command: serving an empty knowledge base silently helps nobody.
func initialRefresh(base *kb.Base) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := base.Refresh(ctx, true); err != nil {
		return fmt.Errorf("loading knowledge base: %w", err)
	}
	return nil
}
