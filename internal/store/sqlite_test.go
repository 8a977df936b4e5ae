package store

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/expenso/itr/internal/calculation"
	"github.com/expenso/itr/internal/domain"
	"github.com/expenso/itr/internal/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "nested", "estimates.db"),
		log.New(log.Config{Level: slog.LevelError, Output: &bytes.Buffer{}}))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	base := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	calls := 0
	repo.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	return repo
}

func estimateFor(salary int64, pref domain.RegimePreference) domain.Estimate {
	return calculation.EstimateTax(domain.TaxInput{
		Income:           domain.Income{Salary: decimal.NewFromInt(salary)},
		Deductions:       domain.Deductions{Section80C: decimal.RequireFromString("12345.67")},
		AgeBracket:       domain.AgeSenior,
		RegimePreference: pref,
	})
}

func TestSaveAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	est := estimateFor(900000, domain.PreferBoth)

	saved, err := repo.Save(ctx, "  FY24 salary ", est)
	require.NoError(t, err)
	assert.Len(t, saved.ID, 36)
	assert.Equal(t, "FY24 salary", saved.Label)

	got, err := repo.Get(ctx, saved.ID)
	require.NoError(t, err)

	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "FY24 salary", got.Label)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, domain.AgeSenior, got.Estimate.Input.AgeBracket)
	assert.True(t, got.Estimate.Input.Deductions.Section80C.Equal(decimal.RequireFromString("12345.67")))
	require.NotNil(t, got.Estimate.Old)
	require.NotNil(t, got.Estimate.New)
	require.NotNil(t, got.Estimate.Comparison)
	assert.True(t, got.Estimate.Old.TotalTax.Equal(est.Old.TotalTax))
	assert.True(t, got.Estimate.New.TotalTax.Equal(est.New.TotalTax))
	assert.Equal(t, est.Comparison.Better, got.Estimate.Comparison.Better)
	require.NotNil(t, got.Estimate.Old.PotentialSavings)
	assert.True(t, got.Estimate.Old.PotentialSavings.Section80C.Equal(est.Old.PotentialSavings.Section80C))
}

func TestSave_BlankLabelUsesTimestamp(t *testing.T) {
	repo := newTestRepo(t)
	saved, err := repo.Save(context.Background(), "   ", estimateFor(500000, domain.PreferNew))
	require.NoError(t, err)
	assert.Equal(t, saved.CreatedAt.Local().Format("2006-01-02 15:04"), saved.Label)
}

func TestGet_ByPrefix(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	saved, err := repo.Save(ctx, "a", estimateFor(500000, domain.PreferBoth))
	require.NoError(t, err)

	got, err := repo.Get(ctx, saved.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)

	got, err = repo.Get(ctx, " "+saved.ID[:8]+" ")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
}

func TestGet_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Get(ctx, "zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Get(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)

	// wildcards are matched literally
	_, err = repo.Save(ctx, "x", estimateFor(1, domain.PreferBoth))
	require.NoError(t, err)
	_, err = repo.Get(ctx, "%")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_AmbiguousPrefix(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 40; i++ {
		_, err := repo.Save(ctx, "bulk", estimateFor(int64(100000*i), domain.PreferBoth))
		require.NoError(t, err)
	}

	// with 40 random IDs at least one hex digit must be shared as a first character
	list, err := repo.List(ctx, 0)
	require.NoError(t, err)
	seen := map[byte]bool{}
	var shared string
	for _, s := range list {
		if seen[s.ID[0]] {
			shared = s.ID[:1]
			break
		}
		seen[s.ID[0]] = true
	}
	require.NotEmpty(t, shared)

	_, err = repo.Get(ctx, shared)
	assert.ErrorIs(t, err, ErrAmbiguousID)
}

func TestList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.Save(ctx, "first", estimateFor(600000, domain.PreferBoth))
	require.NoError(t, err)
	second, err := repo.Save(ctx, "second", estimateFor(600000, domain.PreferNew))
	require.NoError(t, err)

	list, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// newest first
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	assert.Equal(t, domain.PreferNew, list[0].Preference)
	assert.False(t, list[0].OldTotalTax.Valid)
	assert.True(t, list[0].NewTotalTax.Valid)
	assert.Empty(t, list[0].Better)
	assert.False(t, list[0].Savings.Valid)

	assert.Equal(t, domain.AgeSenior, list[1].AgeBracket)
	assert.True(t, list[1].TotalIncome.Equal(decimal.NewFromInt(600000)))
	assert.True(t, list[1].OldTotalTax.Valid)
	assert.NotEmpty(t, list[1].Better)
	assert.True(t, list[1].Savings.Valid)

	limited, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second.ID, limited[0].ID)
}

func TestList_Empty(t *testing.T) {
	list, err := newTestRepo(t).List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, "gone", estimateFor(700000, domain.PreferBoth))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.ID[:6]))

	_, err = repo.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, saved.ID), ErrNotFound)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estimates.db")
	ctx := context.Background()

	repo, err := NewSQLiteRepository(path, nil)
	require.NoError(t, err)
	saved, err := repo.Save(ctx, "persisted", estimateFor(800000, domain.PreferBoth))
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteRepository(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Label)
}

func TestContextCancelled(t *testing.T) {
	repo := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Save(ctx, "late", estimateFor(1, domain.PreferBoth))
	assert.ErrorIs(t, err, context.Canceled)
}

var _ Repository = (*SQLiteRepository)(nil)
