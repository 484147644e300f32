package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/assets"
	"github.com/robalobadob/wordsearch/internal/db"
)

func TestSeedIsStablePerDay(t *testing.T) {
	morning := time.Date(2026, 3, 14, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	next := time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC)

	assert.Equal(t, "2026-03-14", DateKey(morning))
	assert.Equal(t, Seed(morning, "salt"), Seed(evening, "salt"))
	assert.NotEqual(t, Seed(morning, "salt"), Seed(next, "salt"))
	assert.NotEqual(t, Seed(morning, "salt"), Seed(morning, "pepper"))
	assert.Positive(t, Seed(morning, "salt"))
}

func TestStoreResultsAndLeaderboard(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "app.db"), assets.Migrations())
	require.NoError(t, err)
	defer sqlDB.Close()
	st := NewStore(sqlDB)

	played, err := st.AlreadyPlayed(ctx, "u1", "2026-03-14")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, st.InsertResult(ctx, Result{UserID: "u1", Date: "2026-03-14", Seed: 9, Words: 15, ElapsedMs: 90000}))
	require.NoError(t, st.InsertResult(ctx, Result{UserID: "u2", Date: "2026-03-14", Seed: 9, Words: 15, ElapsedMs: 45000}))
	// duplicate for u1 is ignored
	require.NoError(t, st.InsertResult(ctx, Result{UserID: "u1", Date: "2026-03-14", Seed: 9, Words: 15, ElapsedMs: 1}))
	require.NoError(t, st.InsertResult(ctx, Result{UserID: "u3", Date: "2026-03-15", Seed: 10, Words: 15, ElapsedMs: 10}))

	played, err = st.AlreadyPlayed(ctx, "u1", "2026-03-14")
	require.NoError(t, err)
	assert.True(t, played)

	top, err := st.Leaderboard(ctx, "2026-03-14", 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "u2", top[0].UserID)
	assert.Equal(t, int64(45000), top[0].ElapsedMs)
	assert.Equal(t, int64(90000), top[1].ElapsedMs)
}
