package ports

import (
	"context"

	"github.com/alejandrodnm/whalefetch/internal/domain"
)

// Notifier presenta el resultado del run al usuario.
type Notifier interface {
	// Notify muestra el resumen por wallet y las estadísticas de precio.
	// En la implementación de consola, imprime una tabla formateada.
	Notify(ctx context.Context, trades []domain.Trade, summary domain.RunSummary) error
}
