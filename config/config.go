package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del fetcher.
type Config struct {
	Fetcher FetcherConfig `yaml:"fetcher"`
	Retry   RetryConfig   `yaml:"retry"`
	API     APIConfig     `yaml:"api"`
	Output  OutputConfig  `yaml:"output"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// FetcherConfig controla el comportamiento del loop de ingesta.
type FetcherConfig struct {
	Wallets               []string `yaml:"wallets"`
	PageSize              int      `yaml:"page_size"`
	MaxTradesPerWallet    int      `yaml:"max_trades_per_wallet"`
	MatchPhrase           string   `yaml:"match_phrase"`
	PageDelayMillis       int      `yaml:"page_delay_ms"`
	RequestTimeoutSeconds int      `yaml:"request_timeout_seconds"`
}

// RetryConfig acota los reintentos ante fallos transitorios.
type RetryConfig struct {
	MaxAttempts int    `yaml:"max_attempts"`
	Backoff     string `yaml:"backoff"` // fixed | linear | exponential
	BaseMillis  int    `yaml:"base_ms"`
	MaxMillis   int    `yaml:"max_ms"`
}

// APIConfig contiene el base URL de la Data API.
type APIConfig struct {
	DataBase string `yaml:"data_base"`
}

// OutputConfig controla dónde se escriben los dos artefactos del run.
type OutputConfig struct {
	TradesPath  string `yaml:"trades_path"`
	SummaryPath string `yaml:"summary_path"`
}

// StorageConfig controla el archivo histórico de runs.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, ":memory:", o vacío para desactivar
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// Validate comprueba los settings obligatorios. Un config inválido es fatal
// en el arranque — nunca hay ejecución parcial.
func (c *Config) Validate() error {
	if len(c.Fetcher.Wallets) == 0 {
		return fmt.Errorf("fetcher.wallets is required (or set WHALE_ADDRESSES)")
	}
	switch c.Retry.Backoff {
	case "fixed", "linear", "exponential":
	default:
		return fmt.Errorf("retry.backoff must be fixed, linear or exponential, got %q", c.Retry.Backoff)
	}
	return nil
}

// PageDelay devuelve la pausa entre páginas como time.Duration.
func (c *Config) PageDelay() time.Duration {
	return time.Duration(c.Fetcher.PageDelayMillis) * time.Millisecond
}

// RequestTimeout devuelve el timeout por request como time.Duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Fetcher.RequestTimeoutSeconds) * time.Second
}

// RetryBase devuelve la espera base entre reintentos.
func (c *Config) RetryBase() time.Duration {
	return time.Duration(c.Retry.BaseMillis) * time.Millisecond
}

// RetryMax devuelve la espera máxima entre reintentos.
func (c *Config) RetryMax() time.Duration {
	return time.Duration(c.Retry.MaxMillis) * time.Millisecond
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("DATA_API_BASE"); v != "" {
		cfg.API.DataBase = v
	}
	if v := os.Getenv("WHALE_ADDRESSES"); v != "" {
		var wallets []string
		for _, w := range strings.Split(v, ",") {
			if w = strings.TrimSpace(w); w != "" {
				wallets = append(wallets, w)
			}
		}
		if len(wallets) > 0 {
			cfg.Fetcher.Wallets = wallets
		}
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Fetcher.PageSize <= 0 {
		cfg.Fetcher.PageSize = 500
	}
	if cfg.Fetcher.MaxTradesPerWallet <= 0 {
		cfg.Fetcher.MaxTradesPerWallet = 50_000
	}
	if cfg.Fetcher.MatchPhrase == "" {
		cfg.Fetcher.MatchPhrase = "up or down"
	}
	if cfg.Fetcher.PageDelayMillis <= 0 {
		cfg.Fetcher.PageDelayMillis = 150
	}
	if cfg.Fetcher.RequestTimeoutSeconds <= 0 {
		cfg.Fetcher.RequestTimeoutSeconds = 30
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry.MaxAttempts = 5
	}
	if cfg.Retry.Backoff == "" {
		cfg.Retry.Backoff = "exponential"
	}
	if cfg.Retry.BaseMillis <= 0 {
		cfg.Retry.BaseMillis = 1000
	}
	if cfg.Retry.MaxMillis <= 0 {
		cfg.Retry.MaxMillis = 30_000
	}
	if cfg.API.DataBase == "" {
		cfg.API.DataBase = "https://data-api.polymarket.com"
	}
	if cfg.Output.TradesPath == "" {
		cfg.Output.TradesPath = "data/whale_trades/whale_updown_all.json"
	}
	if cfg.Output.SummaryPath == "" {
		cfg.Output.SummaryPath = "data/whale_trades/fetch_summary.json"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
