package fetcher

import (
	"context"
	"errors"
	"time"
)

// ErrRetryExhausted señala que una wallet agotó su presupuesto de reintentos
// en un mismo offset.
var ErrRetryExhausted = errors.New("retry budget exhausted")

// BackoffKind es la forma de la curva de backoff entre reintentos.
type BackoffKind string

const (
	BackoffFixed       BackoffKind = "fixed"
	BackoffLinear      BackoffKind = "linear"
	BackoffExponential BackoffKind = "exponential"
)

// RetryPolicy acota los reintentos ante fallos transitorios del origen.
// El contador de intentos es por offset: se resetea con cada página buena.
type RetryPolicy struct {
	// MaxAttempts es el máximo de intentos fallidos consecutivos tolerados
	// en un mismo offset antes de rendirse.
	MaxAttempts int
	// Backoff selecciona la curva de espera entre intentos.
	Backoff BackoffKind
	// Base es la espera del primer reintento.
	Base time.Duration
	// Max acota la espera de cualquier reintento.
	Max time.Duration
}

// DefaultRetryPolicy devuelve una política conservadora: 5 intentos con
// backoff exponencial desde 1s, acotado a 30s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		Backoff:     BackoffExponential,
		Base:        time.Second,
		Max:         30 * time.Second,
	}
}

// Delay devuelve la espera antes del reintento attempt (1-based).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	var d time.Duration
	switch p.Backoff {
	case BackoffLinear:
		d = p.Base * time.Duration(attempt)
	case BackoffExponential:
		shift := attempt - 1
		if shift > 16 { // evitar overflow; Max acota igualmente
			shift = 16
		}
		d = p.Base << shift
	default:
		d = p.Base
	}

	if p.Max > 0 && d > p.Max {
		d = p.Max
	}
	return d
}

// sleep espera d respetando la cancelación del contexto.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
