package ports

import (
	"context"

	"github.com/alejandrodnm/whalefetch/internal/domain"
)

// ResultWriter persiste los dos artefactos de un run completado: el dataset
// combinado y el summary. Se escriben una sola vez, al final — un run que no
// termina no deja artefactos.
type ResultWriter interface {
	WriteRun(ctx context.Context, trades []domain.Trade, summary domain.RunSummary) error
}

// Archiver guarda el histórico de runs en la base de datos.
type Archiver interface {
	// ArchiveRun inserta el summary del run y sus filas por wallet.
	ArchiveRun(ctx context.Context, summary domain.RunSummary) error

	// RecentRuns devuelve los últimos n runs archivados, el más reciente primero.
	RecentRuns(ctx context.Context, n int) ([]domain.RunSummary, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
