package fetcher

import (
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/whalefetch/internal/domain"
)

// Combine concatena los acumuladores por wallet en orden de iteración.
// El dataset combinado preserva (orden de wallet, orden de página, orden
// dentro de página) — nunca se reordena globalmente.
func Combine(results []domain.WalletResult) []domain.Trade {
	var total int
	for _, r := range results {
		total += len(r.Trades)
	}

	combined := make([]domain.Trade, 0, total)
	for _, r := range results {
		combined = append(combined, r.Trades...)
	}
	return combined
}

// Summarize construye el RunSummary inmutable del run.
func Summarize(results []domain.WalletResult) domain.RunSummary {
	summary := domain.RunSummary{
		RunID:     uuid.New().String(),
		Wallets:   make([]domain.WalletSummary, 0, len(results)),
		FetchedAt: time.Now().UTC(),
	}

	for _, r := range results {
		summary.Wallets = append(summary.Wallets, domain.WalletSummary{
			Address:       r.Address,
			TotalFetched:  r.TotalFetched,
			MatchedTrades: r.Matched(),
		})
		summary.GrandTotalMatched += r.Matched()
	}

	return summary
}
