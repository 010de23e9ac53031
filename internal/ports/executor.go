package ports

import (
	"context"

	"github.com/alejandrodnm/whalefetch/internal/domain"
)

// OrderExecutor coloca órdenes en el CLOB. Es un colaborador externo: este
// módulo solo define la frontera, nada del pipeline de ingesta lo invoca.
type OrderExecutor interface {
	PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (domain.PlacedOrder, error)
	CancelOrder(ctx context.Context, orderID string) error
}
