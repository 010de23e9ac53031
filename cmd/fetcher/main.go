package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alejandrodnm/whalefetch/config"
	"github.com/alejandrodnm/whalefetch/internal/adapters/notify"
	"github.com/alejandrodnm/whalefetch/internal/adapters/polymarket"
	"github.com/alejandrodnm/whalefetch/internal/adapters/storage"
	"github.com/alejandrodnm/whalefetch/internal/fetcher"
	"github.com/alejandrodnm/whalefetch/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full per-wallet table (default: compact 1-line)")
	wallets := flag.String("wallets", "", "comma-separated wallet addresses (overrides config)")
	maxTrades := flag.Int("max", 0, "max matched trades per wallet (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *wallets != "" {
		cfg.Fetcher.Wallets = splitWallets(*wallets)
	}
	if *maxTrades > 0 {
		cfg.Fetcher.MaxTradesPerWallet = *maxTrades
	}
	setupLogger(cfg.Log)

	slog.Info("whalefetch starting",
		"config", *configPath,
		"wallets", len(cfg.Fetcher.Wallets),
		"page_size", cfg.Fetcher.PageSize,
		"max_per_wallet", cfg.Fetcher.MaxTradesPerWallet,
		"match_phrase", cfg.Fetcher.MatchPhrase,
	)

	client := polymarket.NewClient(cfg.API.DataBase, cfg.RequestTimeout())
	writer := storage.NewJSONWriter(cfg.Output.TradesPath, cfg.Output.SummaryPath)

	var archive ports.Archiver
	if cfg.Storage.DSN != "" {
		sqliteArchive, err := storage.NewSQLiteArchive(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open archive", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer sqliteArchive.Close()
		archive = sqliteArchive
	}

	notifier := notify.NewConsole(*table)

	fetchCfg := fetcher.DefaultConfig()
	fetchCfg.Wallets = cfg.Fetcher.Wallets
	fetchCfg.PageSize = cfg.Fetcher.PageSize
	fetchCfg.MaxTradesPerWallet = cfg.Fetcher.MaxTradesPerWallet
	fetchCfg.PageDelay = cfg.PageDelay()
	fetchCfg.MatchPhrase = cfg.Fetcher.MatchPhrase
	fetchCfg.Retry = fetcher.RetryPolicy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		Backoff:     fetcher.BackoffKind(cfg.Retry.Backoff),
		Base:        cfg.RetryBase(),
		Max:         cfg.RetryMax(),
	}

	f := fetcher.New(fetchCfg, client, writer, archive, notifier)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	summary, err := f.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("run interrupted — no artifacts written")
			os.Exit(130)
		}
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}

	slog.Info("artifacts written",
		"trades", cfg.Output.TradesPath,
		"summary", cfg.Output.SummaryPath,
		"total_matched", summary.GrandTotalMatched,
	)
}

func splitWallets(s string) []string {
	var out []string
	for _, w := range strings.Split(s, ",") {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
