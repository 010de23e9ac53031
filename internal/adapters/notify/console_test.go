package notify_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/whalefetch/internal/adapters/notify"
	"github.com/alejandrodnm/whalefetch/internal/domain"
)

func sampleRun() ([]domain.Trade, domain.RunSummary) {
	trades := []domain.Trade{
		{ID: "t1", Title: "Up or Down", Price: 0.40},
		{ID: "t2", Title: "Up or Down", Price: 0.60},
	}
	summary := domain.RunSummary{
		RunID: "run-1",
		Wallets: []domain.WalletSummary{
			{Address: "0x63ce342161250d705dc0b16df89036c8e5f9ba9a", TotalFetched: 10, MatchedTrades: 2},
		},
		GrandTotalMatched: 2,
		FetchedAt:         time.Now().UTC(),
	}
	return trades, summary
}

func TestConsole_Compact(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false)

	trades, summary := sampleRun()
	require.NoError(t, c.Notify(context.Background(), trades, summary))

	out := buf.String()
	assert.Contains(t, out, "1 wallets")
	assert.Contains(t, out, "fetched:10")
	assert.Contains(t, out, "matched:2")
}

func TestConsole_FullTable(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, true)

	trades, summary := sampleRun()
	require.NoError(t, c.Notify(context.Background(), trades, summary))

	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "0x63ce3421...")
	assert.Contains(t, out, "Average entry: 0.50")
	assert.Contains(t, out, "Under 50¢: 1 (50.0%)")
}

func TestConsole_FullTableNoTrades(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, true)

	_, summary := sampleRun()
	require.NoError(t, c.Notify(context.Background(), nil, summary))

	out := buf.String()
	assert.Contains(t, out, "Total matched: 2")
	assert.NotContains(t, out, "Entry price analysis")
}
