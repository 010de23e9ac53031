package storage

// sqlite.go — archivo histórico de runs.
//
// Estrategia:
//   - `runs`: una fila por run (id, timestamp, totales).
//   - `run_wallets`: una fila por wallet y run, con sus contadores.
//   - El dataset de trades NO se archiva aquí — vive en el JSON del run.
//     La DB guarda solo la señal agregada, que es lo que se consulta después.
//   - Prune automático al arrancar: runs con más de 90 días.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/whalefetch/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    run_id        TEXT PRIMARY KEY,
    fetched_at    DATETIME NOT NULL,
    wallets       INTEGER  NOT NULL DEFAULT 0,
    total_fetched INTEGER  NOT NULL DEFAULT 0,
    total_matched INTEGER  NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_wallets (
    run_id        TEXT    NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    address       TEXT    NOT NULL,
    total_fetched INTEGER NOT NULL DEFAULT 0,
    matched       INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (run_id, address)
);

CREATE INDEX IF NOT EXISTS idx_runs_at ON runs(fetched_at DESC);
`

// retentionRuns: los runs viejos no aportan — el dataset JSON es la fuente.
const retentionRuns = 90 * 24 * time.Hour

// SQLiteArchive implementa ports.Archiver usando SQLite (pure Go, sin CGo).
type SQLiteArchive struct {
	db *sql.DB
}

// NewSQLiteArchive abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia runs antiguos.
func NewSQLiteArchive(path string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteArchive: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteArchive: apply schema: %w", err)
	}

	a := &SQLiteArchive{db: db}
	a.pruneOld(context.Background())
	return a, nil
}

// ArchiveRun inserta el summary del run y sus filas por wallet en una tx.
func (a *SQLiteArchive) ArchiveRun(ctx context.Context, summary domain.RunSummary) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.ArchiveRun: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, fetched_at, wallets, total_fetched, total_matched)
		 VALUES (?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.FetchedAt.UTC(),
		len(summary.Wallets),
		summary.TotalFetched(),
		summary.GrandTotalMatched,
	); err != nil {
		return fmt.Errorf("storage.ArchiveRun: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_wallets (run_id, address, total_fetched, matched)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage.ArchiveRun: prepare: %w", err)
	}
	defer stmt.Close()

	for _, w := range summary.Wallets {
		if _, err := stmt.ExecContext(ctx,
			summary.RunID, w.Address, w.TotalFetched, w.MatchedTrades,
		); err != nil {
			return fmt.Errorf("storage.ArchiveRun: insert wallet %s: %w", w.Address, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.ArchiveRun: commit: %w", err)
	}
	return nil
}

// RecentRuns devuelve los últimos n runs, el más reciente primero.
func (a *SQLiteArchive) RecentRuns(ctx context.Context, n int) ([]domain.RunSummary, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT run_id, fetched_at, total_matched
		FROM runs
		ORDER BY fetched_at DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("storage.RecentRuns: query runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunSummary
	for rows.Next() {
		var s domain.RunSummary
		var fetchedAt string
		if err := rows.Scan(&s.RunID, &fetchedAt, &s.GrandTotalMatched); err != nil {
			return nil, fmt.Errorf("storage.RecentRuns: scan run: %w", err)
		}
		s.FetchedAt, _ = time.Parse(time.RFC3339, fetchedAt)
		runs = append(runs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		wallets, err := a.runWallets(ctx, runs[i].RunID)
		if err != nil {
			return nil, err
		}
		runs[i].Wallets = wallets
	}
	return runs, nil
}

// Close cierra la conexión a la base de datos.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

// --- helpers internos ---

func (a *SQLiteArchive) runWallets(ctx context.Context, runID string) ([]domain.WalletSummary, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT address, total_fetched, matched
		FROM run_wallets
		WHERE run_id = ?
		ORDER BY address
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage.runWallets: query: %w", err)
	}
	defer rows.Close()

	var wallets []domain.WalletSummary
	for rows.Next() {
		var w domain.WalletSummary
		if err := rows.Scan(&w.Address, &w.TotalFetched, &w.MatchedTrades); err != nil {
			return nil, fmt.Errorf("storage.runWallets: scan: %w", err)
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// pruneOld elimina runs antiguos para mantener la DB ligera.
func (a *SQLiteArchive) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionRuns)
	a.db.ExecContext(ctx, `DELETE FROM run_wallets WHERE run_id IN
		(SELECT run_id FROM runs WHERE fetched_at < ?)`, cutoff)
	a.db.ExecContext(ctx, `DELETE FROM runs WHERE fetched_at < ?`, cutoff)
}
