package domain

import "time"

// Trade representa un trade histórico de la Data API.
// Los tags JSON definen el formato del dataset persistido.
type Trade struct {
	ID          string    `json:"id,omitempty"`
	Wallet      string    `json:"proxyWallet"`
	ConditionID string    `json:"conditionId,omitempty"`
	Asset       string    `json:"asset,omitempty"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug,omitempty"`
	Outcome     string    `json:"outcome,omitempty"`
	Side        string    `json:"side"` // "BUY" o "SELL"
	Price       float64   `json:"price"`
	Size        float64   `json:"size"`
	Timestamp   time.Time `json:"timestamp"`
}

// WalletResult es el resultado de recorrer el historial completo de una wallet:
// los trades que pasaron el filtro (en orden de fetch) y cuántos se vieron en total.
type WalletResult struct {
	Address      string
	Trades       []Trade
	TotalFetched int
}

// Matched devuelve cuántos trades pasaron el filtro.
func (r WalletResult) Matched() int {
	return len(r.Trades)
}
