package domain

import "time"

// WalletSummary es el resumen por wallet que se persiste en el summary del run.
type WalletSummary struct {
	Address       string `json:"address"`
	TotalFetched  int    `json:"total_fetched"`
	MatchedTrades int    `json:"matched_trades"`
}

// RunSummary es el resumen de un run completo. Se construye una vez al terminar
// todas las wallets y es inmutable a partir de ahí.
type RunSummary struct {
	RunID             string          `json:"run_id"`
	Wallets           []WalletSummary `json:"wallets"`
	GrandTotalMatched int             `json:"total_matched_trades"`
	FetchedAt         time.Time       `json:"fetched_at"`
}

// TotalFetched devuelve el total de trades vistos en el run, filtrados o no.
func (s RunSummary) TotalFetched() int {
	var n int
	for _, w := range s.Wallets {
		n += w.TotalFetched
	}
	return n
}
