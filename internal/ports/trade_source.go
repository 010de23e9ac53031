package ports

import (
	"context"

	"github.com/alejandrodnm/whalefetch/internal/domain"
)

// TradeSource obtiene una página de trades históricos de una wallet.
type TradeSource interface {
	// FetchTradePage devuelve hasta limit trades empezando en offset, en el
	// orden del origen. Una página vacía señala el fin del historial.
	// Los fallos no recuperables se marcan con domain.ErrPermanent; cualquier
	// otro error se considera transitorio y reintentable al mismo offset.
	FetchTradePage(ctx context.Context, wallet string, limit, offset int) ([]domain.Trade, error)
}
