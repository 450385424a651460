package precedentdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godilemma/internal/precedent"
	"godilemma/internal/testkit"
)

func seededStore(t *testing.T, topK, budget int) *Store {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewStore(db, topK, budget)
	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Seed(ctx, precedent.StaticCases()))
	return store
}

func TestSeedIsIdempotent(t *testing.T) {
	store := seededStore(t, 3, 500)
	require.NoError(t, store.Seed(context.Background(), precedent.StaticCases()))

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(precedent.StaticCases()), n)
}

func TestFindSimilarMatchesMemoryStore(t *testing.T) {
	store := seededStore(t, 3, 500)
	d := testkit.ClinicDilemma()

	got, err := store.FindSimilar(context.Background(), d, 0.1)
	require.NoError(t, err)
	want, err := precedent.NewStaticStore(3, 500).FindSimilar(context.Background(), d, 0.1)
	require.NoError(t, err)

	require.NotEmpty(t, got)
	assert.Equal(t, "clinic-closure-rural", got[0].ID)
	assert.Equal(t, want, got)
}

func TestFindSimilarHonoursScanBudget(t *testing.T) {
	store := seededStore(t, 3, 1)

	got, err := store.FindSimilar(context.Background(), testkit.ClinicDilemma(), 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), 1)
}
