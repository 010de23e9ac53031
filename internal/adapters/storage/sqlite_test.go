package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/whalefetch/internal/adapters/storage"
	"github.com/alejandrodnm/whalefetch/internal/domain"
)

func makeSummary(runID string, matched int, at time.Time) domain.RunSummary {
	return domain.RunSummary{
		RunID: runID,
		Wallets: []domain.WalletSummary{
			{Address: "0xaaa", TotalFetched: matched * 2, MatchedTrades: matched},
			{Address: "0xbbb", TotalFetched: 5, MatchedTrades: 0},
		},
		GrandTotalMatched: matched,
		FetchedAt:         at,
	}
}

func TestSQLiteArchive_ArchiveAndRecentRuns(t *testing.T) {
	db, err := storage.NewSQLiteArchive(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, db.ArchiveRun(ctx, makeSummary("run-1", 3, now.Add(-time.Hour))))
	require.NoError(t, db.ArchiveRun(ctx, makeSummary("run-2", 7, now)))

	runs, err := db.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// El más reciente primero
	assert.Equal(t, "run-2", runs[0].RunID)
	assert.Equal(t, 7, runs[0].GrandTotalMatched)
	assert.Equal(t, "run-1", runs[1].RunID)

	require.Len(t, runs[0].Wallets, 2)
	assert.Equal(t, "0xaaa", runs[0].Wallets[0].Address)
	assert.Equal(t, 14, runs[0].Wallets[0].TotalFetched)
	assert.Equal(t, 7, runs[0].Wallets[0].MatchedTrades)
}

func TestSQLiteArchive_RecentRunsLimit(t *testing.T) {
	db, err := storage.NewSQLiteArchive(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	base := time.Now().UTC()
	for i, id := range []string{"run-1", "run-2", "run-3"} {
		require.NoError(t, db.ArchiveRun(ctx, makeSummary(id, i+1, base.Add(time.Duration(i)*time.Minute))))
	}

	runs, err := db.RecentRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSQLiteArchive_DuplicateRunIDFails(t *testing.T) {
	db, err := storage.NewSQLiteArchive(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	s := makeSummary("run-1", 3, time.Now().UTC())
	require.NoError(t, db.ArchiveRun(ctx, s))
	assert.Error(t, db.ArchiveRun(ctx, s))
}

func TestSQLiteArchive_EmptyDB(t *testing.T) {
	db, err := storage.NewSQLiteArchive(":memory:")
	require.NoError(t, err)
	defer db.Close()

	runs, err := db.RecentRuns(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
