package domain

import "errors"

// ErrPermanent marca un fallo del origen de datos que no tiene sentido
// reintentar (4xx distinto de 429). Los adapters lo envuelven con %w.
var ErrPermanent = errors.New("permanent source failure")
