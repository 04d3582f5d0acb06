package trust_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kofiannan/biztrack-api/internal/application/trust"
	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/pkg/refresh"
)

type fakeTrustRepo struct {
	score       int
	missing     bool
	initialized bool
	computes    int
}

func (f *fakeTrustRepo) ComputeScore(_ context.Context, _ string) (int, error) {
	f.computes++
	if f.missing && !f.initialized {
		return 0, domain.ErrNotFound
	}
	return f.score, nil
}

func (f *fakeTrustRepo) EnsureInitialized(_ context.Context, _ string) error {
	f.initialized = true
	return nil
}

type memoryCache struct {
	entries map[string]int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]int{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (int, bool, error) {
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, score int, _ time.Duration) error {
	m.entries[key] = score
	return nil
}

func TestScoreComputesAndCaches(t *testing.T) {
	repo := &fakeTrustRepo{score: 72}
	cache := newMemoryCache()
	eval := trust.NewEvaluator(repo, cache, nil)

	score, err := eval.Score(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 72, score)
	assert.Equal(t, 1, repo.computes)

	// second call served from cache
	score, err = eval.Score(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 72, score)
	assert.Equal(t, 1, repo.computes)
}

func TestScoreLazyInitialization(t *testing.T) {
	repo := &fakeTrustRepo{score: 50, missing: true}
	eval := trust.NewEvaluator(repo, nil, nil)

	score, err := eval.Score(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 50, score)
	assert.True(t, repo.initialized)
	assert.Equal(t, 2, repo.computes, "one failed compute, one retry after init")
}

func TestScoreClampedToRange(t *testing.T) {
	over := &fakeTrustRepo{score: 140}
	eval := trust.NewEvaluator(over, nil, nil)
	score, err := eval.Score(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 100, score)

	under := &fakeTrustRepo{score: -7}
	eval = trust.NewEvaluator(under, nil, nil)
	score, err = eval.Score(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}

func TestRefreshBusInvalidatesCache(t *testing.T) {
	repo := &fakeTrustRepo{score: 60}
	cache := newMemoryCache()
	bus := refresh.NewBus()
	eval := trust.NewEvaluator(repo, cache, bus)

	_, err := eval.Score(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.computes)

	// a publish orphans the cached entry, forcing a recompute
	bus.Publish()
	repo.score = 80

	score, err := eval.Score(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 80, score)
	assert.Equal(t, 2, repo.computes)
}

func TestScorePropagatesComputeErrors(t *testing.T) {
	eval := trust.NewEvaluator(&failingTrustRepo{}, nil, nil)
	_, err := eval.Score(context.Background(), "b1")
	assert.Error(t, err)
}

type failingTrustRepo struct{}

func (failingTrustRepo) ComputeScore(_ context.Context, _ string) (int, error) {
	return 0, errors.New("procedure failed")
}

func (failingTrustRepo) EnsureInitialized(_ context.Context, _ string) error {
	return nil
}
