// Package trust exposes the externally computed 0-100 trust score. The
// scoring rule lives in the database; this side only invokes it, lazily
// initializes the score row, and caches the result.
package trust

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

const cacheTTL = 5 * time.Minute

// ScoreCache is the cache-aside port. The noop implementation keeps the
// evaluator usable without redis.
type ScoreCache interface {
	Get(ctx context.Context, key string) (int, bool, error)
	Set(ctx context.Context, key string, score int, ttl time.Duration) error
}

// NoopScoreCache disables caching.
type NoopScoreCache struct{}

func (NoopScoreCache) Get(_ context.Context, _ string) (int, bool, error) { return 0, false, nil }
func (NoopScoreCache) Set(_ context.Context, _ string, _ int, _ time.Duration) error {
	return nil
}

// Subscriber is the refresh-bus side the evaluator listens on.
type Subscriber interface {
	Subscribe(fn func()) func()
}

// Evaluator resolves a business's trust score.
type Evaluator struct {
	trust repository.TrustRepository
	cache ScoreCache

	// generation is folded into the cache key; a refresh-bus publish bumps
	// it, which orphans every cached score without tracking keys.
	generation atomic.Int64
}

// NewEvaluator builds the evaluator and registers it on the bus.
func NewEvaluator(trust repository.TrustRepository, cache ScoreCache, bus Subscriber) *Evaluator {
	if cache == nil {
		cache = NoopScoreCache{}
	}
	e := &Evaluator{trust: trust, cache: cache}
	if bus != nil {
		bus.Subscribe(func() { e.generation.Add(1) })
	}
	return e
}

// Score returns the business's current trust score. The DB-side rule is a
// black box; a missing score row triggers lazy initialization and one
// retry. Results are clamped to 0-100 and cached.
func (e *Evaluator) Score(ctx context.Context, businessID string) (int, error) {
	key := e.cacheKey(businessID)
	if score, ok, err := e.cache.Get(ctx, key); err == nil && ok {
		return score, nil
	}

	score, err := e.trust.ComputeScore(ctx, businessID)
	if errors.Is(err, domain.ErrNotFound) {
		if err := e.trust.EnsureInitialized(ctx, businessID); err != nil {
			return 0, fmt.Errorf("trust: init score: %w", err)
		}
		score, err = e.trust.ComputeScore(ctx, businessID)
		if err != nil {
			return 0, fmt.Errorf("trust: compute after init: %w", err)
		}
	} else if err != nil {
		return 0, fmt.Errorf("trust: compute score: %w", err)
	}

	score = clamp(score)
	_ = e.cache.Set(ctx, key, score, cacheTTL) // cache failure never fails the read
	return score, nil
}

func (e *Evaluator) cacheKey(businessID string) string {
	return fmt.Sprintf("trust:%s:g%d", businessID, e.generation.Load())
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
