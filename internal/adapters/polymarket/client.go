package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/alejandrodnm/whalefetch/internal/domain"
)

const (
	defaultDataBase = "https://data-api.polymarket.com"

	// Rate limit al 60% del límite real documentado de la Data API:
	// 100/10s → 60/10s → 6/s. El gate es compartido por todas las wallets,
	// así que paralelizar el fetch no puede saltarse el límite.
	dataRatePerSec = 6

	defaultTimeout = 30 * time.Second
)

// Client es el HTTP client de la Data API con rate limiting compartido.
// No reintenta: la política de retry vive en el fetcher, que decide por offset.
type Client struct {
	http     *http.Client
	dataBase string
	limiter  *rate.Limiter
}

// NewClient crea un Client contra el base URL dado.
// Si dataBase está vacío, usa el URL de producción.
func NewClient(dataBase string, timeout time.Duration) *Client {
	if dataBase == "" {
		dataBase = defaultDataBase
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		dataBase: dataBase,
		limiter:  rate.NewLimiter(dataRatePerSec, 3),
	}
}

// get hace un GET con rate limiting y clasifica el status de la respuesta.
// Un 4xx distinto de 429 se envuelve con domain.ErrPermanent; todo lo demás
// (transporte, timeout, 429, 5xx, body malformado) es transitorio.
func (c *Client) get(ctx context.Context, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("rate limited by API (429)")
	case resp.StatusCode >= 500:
		return fmt.Errorf("server error %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: client error %d: %s", domain.ErrPermanent, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
