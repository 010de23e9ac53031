package domain

// order.go — tipos de frontera con el ejecutor de órdenes del CLOB.
// El fetcher nunca los usa; definen el contrato para quien coloque órdenes
// a partir del dataset recolectado.

// PlaceOrderRequest describe una orden limit completamente especificada.
type PlaceOrderRequest struct {
	TokenID string
	Side    string // "BUY" o "SELL"
	Price   float64
	Size    float64
}

// PlacedOrder es el resultado de enviar una orden al CLOB.
type PlacedOrder struct {
	OrderID string
	Status  string
}
