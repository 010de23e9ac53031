package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/whalefetch/internal/domain"
	"github.com/alejandrodnm/whalefetch/internal/ports"
)

const (
	defaultPageSize  = 500
	defaultMaxTrades = 50_000
	defaultPageDelay = 150 * time.Millisecond
)

// Config contiene la configuración del fetcher.
type Config struct {
	// Wallets es la lista ordenada de direcciones a recorrer. Se procesan
	// una a una, en este orden, sin deduplicar.
	Wallets []string
	// PageSize es el tamaño de página pedido a la API.
	PageSize int
	// MaxTradesPerWallet es el soft cap: al acumular tantos matches, la
	// wallet termina. El safety cap es el doble sobre el total visto.
	MaxTradesPerWallet int
	// PageDelay es la pausa entre páginas consecutivas de una wallet.
	PageDelay time.Duration
	// MatchPhrase es la frase que debe contener el título (case-insensitive).
	MatchPhrase string
	// Retry acota los reintentos ante fallos transitorios.
	Retry RetryPolicy
}

// DefaultConfig devuelve la configuración con la que corre producción.
func DefaultConfig() Config {
	return Config{
		PageSize:           defaultPageSize,
		MaxTradesPerWallet: defaultMaxTrades,
		PageDelay:          defaultPageDelay,
		MatchPhrase:        "up or down",
		Retry:              DefaultRetryPolicy(),
	}
}

// Fetcher es el orquestador del run de ingesta: recorre las wallets en orden,
// pagina el historial de cada una, filtra, agrega y persiste.
type Fetcher struct {
	cfg      Config
	source   ports.TradeSource
	writer   ports.ResultWriter
	archive  ports.Archiver
	notifier ports.Notifier
	filter   *Filter
}

// New crea un Fetcher con todas las dependencias inyectadas.
// archive y notifier pueden ser nil.
func New(
	cfg Config,
	source ports.TradeSource,
	writer ports.ResultWriter,
	archive ports.Archiver,
	notifier ports.Notifier,
) *Fetcher {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.MaxTradesPerWallet <= 0 {
		cfg.MaxTradesPerWallet = defaultMaxTrades
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryPolicy()
	}
	return &Fetcher{
		cfg:      cfg,
		source:   source,
		writer:   writer,
		archive:  archive,
		notifier: notifier,
		filter:   NewFilter(cfg.MatchPhrase),
	}
}

// Run ejecuta un run completo. O termina todas las wallets y escribe los dos
// artefactos, o devuelve error sin escribir nada — no hay resultados parciales.
func (f *Fetcher) Run(ctx context.Context) (domain.RunSummary, error) {
	start := time.Now()
	results := make([]domain.WalletResult, 0, len(f.cfg.Wallets))

	for i, addr := range f.cfg.Wallets {
		slog.Info("fetching wallet",
			"wallet", shortAddr(addr),
			"position", fmt.Sprintf("%d/%d", i+1, len(f.cfg.Wallets)),
		)

		res, err := f.fetchWallet(ctx, addr)
		if err != nil {
			return domain.RunSummary{}, fmt.Errorf("fetcher.Run: wallet %s: %w", shortAddr(addr), err)
		}

		slog.Info("wallet complete",
			"wallet", shortAddr(addr),
			"matched", res.Matched(),
			"total_fetched", res.TotalFetched,
		)
		results = append(results, res)
	}

	combined := Combine(results)
	summary := Summarize(results)

	if err := f.writer.WriteRun(ctx, combined, summary); err != nil {
		return domain.RunSummary{}, fmt.Errorf("fetcher.Run: write artifacts: %w", err)
	}

	if f.archive != nil {
		if err := f.archive.ArchiveRun(ctx, summary); err != nil {
			slog.Warn("archive error", "err", err)
		}
	}

	if f.notifier != nil {
		if err := f.notifier.Notify(ctx, combined, summary); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}

	slog.Info("run complete",
		"run_id", summary.RunID,
		"wallets", len(results),
		"matched", summary.GrandTotalMatched,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return summary, nil
}

// fetchWallet pagina el historial completo de una wallet hasta que dispare
// una de las cuatro condiciones de parada, en este orden:
//
//  1. página vacía               → historial agotado
//  2. página corta (< PageSize)  → última página
//  3. acumulador == soft cap     → límite de matches
//  4. visto >= 2× soft cap       → safety cap (filtro con pocos matches)
//
// Ante un fallo transitorio reintenta el MISMO offset con backoff, acotado
// por la RetryPolicy. El orden de los checks es contrato, no detalle.
func (f *Fetcher) fetchWallet(ctx context.Context, addr string) (domain.WalletResult, error) {
	var (
		offset    int
		totalSeen int
		attempt   int
		acc       []domain.Trade
	)
	maxTrades := f.cfg.MaxTradesPerWallet

	for {
		if err := ctx.Err(); err != nil {
			return domain.WalletResult{}, err
		}

		page, err := f.source.FetchTradePage(ctx, addr, f.cfg.PageSize, offset)
		if err != nil {
			if errors.Is(err, domain.ErrPermanent) || errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded) {
				return domain.WalletResult{}, err
			}
			attempt++
			if attempt >= f.cfg.Retry.MaxAttempts {
				return domain.WalletResult{}, fmt.Errorf(
					"offset %d: %w after %d attempts: %v", offset, ErrRetryExhausted, attempt, err)
			}
			wait := f.cfg.Retry.Delay(attempt)
			slog.Warn("transient fetch error, retrying same offset",
				"wallet", shortAddr(addr),
				"offset", offset,
				"attempt", attempt,
				"backoff", wait,
				"err", err,
			)
			if err := sleep(ctx, wait); err != nil {
				return domain.WalletResult{}, err
			}
			continue
		}
		attempt = 0

		if len(page) == 0 {
			slog.Debug("no more trades", "wallet", shortAddr(addr), "offset", offset)
			break
		}

		for _, t := range page {
			if len(acc) >= maxTrades {
				break
			}
			if f.filter.Matches(t) {
				acc = append(acc, t)
			}
		}
		totalSeen += len(page)

		slog.Debug("fetched page",
			"wallet", shortAddr(addr),
			"offset", offset,
			"page", len(page),
			"matched", len(acc),
			"total_seen", totalSeen,
		)

		if len(page) < f.cfg.PageSize {
			break // última página
		}
		if len(acc) >= maxTrades {
			slog.Info("soft cap reached", "wallet", shortAddr(addr), "matched", len(acc))
			break
		}
		if totalSeen >= 2*maxTrades {
			slog.Info("safety cap reached", "wallet", shortAddr(addr), "total_seen", totalSeen)
			break
		}

		offset += f.cfg.PageSize
		if err := sleep(ctx, f.cfg.PageDelay); err != nil {
			return domain.WalletResult{}, err
		}
	}

	return domain.WalletResult{
		Address:      addr,
		Trades:       acc,
		TotalFetched: totalSeen,
	}, nil
}

func shortAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:10] + "..."
}
