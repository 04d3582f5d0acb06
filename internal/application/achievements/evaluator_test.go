package achievements_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kofiannan/biztrack-api/internal/application/achievements"
	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
	"github.com/kofiannan/biztrack-api/pkg/logger"
)

type fakeAchievementRepo struct {
	defs    []entity.AchievementDefinition
	unlocks map[string][]entity.AchievementUnlock
}

func newFakeAchievementRepo(defs ...entity.AchievementDefinition) *fakeAchievementRepo {
	return &fakeAchievementRepo{defs: defs, unlocks: map[string][]entity.AchievementUnlock{}}
}

func (f *fakeAchievementRepo) ListDefinitions(_ context.Context) ([]entity.AchievementDefinition, error) {
	return f.defs, nil
}

func (f *fakeAchievementRepo) ListUnlocks(_ context.Context, userID string) ([]entity.AchievementUnlock, error) {
	return f.unlocks[userID], nil
}

func (f *fakeAchievementRepo) CreateUnlock(_ context.Context, u *entity.AchievementUnlock) error {
	for _, existing := range f.unlocks[u.UserID] {
		if existing.Code == u.Code {
			return domain.ErrDuplicate
		}
	}
	f.unlocks[u.UserID] = append(f.unlocks[u.UserID], *u)
	return nil
}

type fakeSales struct {
	repository.SaleRepository
	count    int
	total    decimal.Decimal
	distinct int
	err      error
}

func (f *fakeSales) Count(_ context.Context, _ string) (int, error) {
	return f.count, f.err
}

func (f *fakeSales) CountSince(_ context.Context, _ string, _ time.Time) (int, error) {
	return f.count, f.err
}

func (f *fakeSales) SumEffectiveSince(_ context.Context, _ string, _ *time.Time) (decimal.Decimal, error) {
	return f.total, f.err
}

func (f *fakeSales) DistinctProducts(_ context.Context, _ string) (int, error) {
	return f.distinct, f.err
}

type fakeReminders struct {
	repository.ReminderRepository
	created []entity.Reminder
}

func (f *fakeReminders) Create(_ context.Context, r *entity.Reminder) error {
	f.created = append(f.created, *r)
	return nil
}

type fakeBusinesses struct {
	repository.BusinessRepository
	rows []entity.Business
}

func (f *fakeBusinesses) ListAll(_ context.Context) ([]entity.Business, error) {
	return f.rows, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func def(code, critType string, threshold int) entity.AchievementDefinition {
	return entity.AchievementDefinition{
		Code:     code,
		Title:    code,
		Criteria: entity.AchievementCriteria{Type: critType, Threshold: threshold},
	}
}

func TestEvaluateUserUnlocksMetCriteria(t *testing.T) {
	repo := newFakeAchievementRepo(
		def("first_sale", entity.CriterionFirstSale, 0),
		def("ten_sales", entity.CriterionCountThreshold, 10),
	)
	reminders := &fakeReminders{}
	eval := achievements.NewEvaluator(&fakeBusinesses{}, repo, &fakeSales{count: 3}, reminders, testLogger())

	codes, err := eval.EvaluateUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"first_sale"}, codes)
	assert.Len(t, reminders.created, 1)
	assert.Equal(t, "achievement", reminders.created[0].Category)
}

func TestEvaluateUserIsIdempotent(t *testing.T) {
	repo := newFakeAchievementRepo(def("first_sale", entity.CriterionFirstSale, 0))
	eval := achievements.NewEvaluator(&fakeBusinesses{}, repo, &fakeSales{count: 1}, &fakeReminders{}, testLogger())

	first, err := eval.EvaluateUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := eval.EvaluateUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Len(t, repo.unlocks["u1"], 1)
}

func TestEvaluateUserSkipsFailingCriterion(t *testing.T) {
	repo := newFakeAchievementRepo(
		def("broken", "no_such_criterion", 0),
		def("first_sale", entity.CriterionFirstSale, 0),
	)
	eval := achievements.NewEvaluator(&fakeBusinesses{}, repo, &fakeSales{count: 1}, &fakeReminders{}, testLogger())

	codes, err := eval.EvaluateUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"first_sale"}, codes, "one bad criterion must not block the rest")
}

func TestAmountThresholdCriterion(t *testing.T) {
	repo := newFakeAchievementRepo(entity.AchievementDefinition{
		Code:     "big_earner",
		Title:    "big_earner",
		Criteria: entity.AchievementCriteria{Type: entity.CriterionAmountThreshold, Amount: decimal.NewFromInt(1000)},
	})
	eval := achievements.NewEvaluator(&fakeBusinesses{}, repo, &fakeSales{total: decimal.NewFromInt(1000)}, &fakeReminders{}, testLogger())

	codes, err := eval.EvaluateUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"big_earner"}, codes, "threshold is inclusive")
}

func TestRunAllIsolatesUserFailures(t *testing.T) {
	repo := newFakeAchievementRepo(def("first_sale", entity.CriterionFirstSale, 0))
	businesses := &fakeBusinesses{rows: []entity.Business{
		{ID: "b1", UserID: "u1"},
		{ID: "b2", UserID: "u2"},
	}}
	sales := &fakeSales{count: 1}
	eval := achievements.NewEvaluator(businesses, repo, sales, &fakeReminders{}, testLogger())

	require.NoError(t, eval.RunAll(context.Background()))
	assert.Len(t, repo.unlocks["u1"], 1)
	assert.Len(t, repo.unlocks["u2"], 1)
}

func TestListForUser(t *testing.T) {
	repo := newFakeAchievementRepo(
		def("first_sale", entity.CriterionFirstSale, 0),
		def("ten_sales", entity.CriterionCountThreshold, 10),
	)
	eval := achievements.NewEvaluator(&fakeBusinesses{}, repo, &fakeSales{count: 1}, &fakeReminders{}, testLogger())

	_, err := eval.EvaluateUser(context.Background(), "u1")
	require.NoError(t, err)

	list, err := eval.ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Unlocked)
	require.NotNil(t, list[0].UnlockedAt)
	assert.False(t, list[1].Unlocked)
}

func TestEvaluateUserFailsWhenDefinitionsUnavailable(t *testing.T) {
	boom := errors.New("db down")
	repo := &failingDefsRepo{err: boom}
	eval := achievements.NewEvaluator(&fakeBusinesses{}, repo, &fakeSales{}, &fakeReminders{}, testLogger())

	_, err := eval.EvaluateUser(context.Background(), "u1")
	assert.ErrorIs(t, err, boom)
}

type failingDefsRepo struct {
	err error
}

func (f *failingDefsRepo) ListDefinitions(_ context.Context) ([]entity.AchievementDefinition, error) {
	return nil, f.err
}

func (f *failingDefsRepo) ListUnlocks(_ context.Context, _ string) ([]entity.AchievementUnlock, error) {
	return nil, nil
}

func (f *failingDefsRepo) CreateUnlock(_ context.Context, _ *entity.AchievementUnlock) error {
	return nil
}
