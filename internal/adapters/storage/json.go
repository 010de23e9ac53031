package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alejandrodnm/whalefetch/internal/domain"
)

// JSONWriter implementa ports.ResultWriter escribiendo los dos artefactos del
// run como JSON. Cada archivo se escribe a un tmp y se renombra, así un crash
// a mitad de escritura nunca deja un artefacto corrupto.
type JSONWriter struct {
	tradesPath  string
	summaryPath string
}

// NewJSONWriter crea un writer hacia las rutas dadas.
func NewJSONWriter(tradesPath, summaryPath string) *JSONWriter {
	return &JSONWriter{tradesPath: tradesPath, summaryPath: summaryPath}
}

// WriteRun persiste el dataset combinado y el summary.
func (w *JSONWriter) WriteRun(_ context.Context, trades []domain.Trade, summary domain.RunSummary) error {
	if trades == nil {
		trades = []domain.Trade{} // serializar [] y no null
	}
	if err := writeJSON(w.tradesPath, trades); err != nil {
		return fmt.Errorf("storage.WriteRun: trades: %w", err)
	}
	if err := writeJSON(w.summaryPath, summary); err != nil {
		return fmt.Errorf("storage.WriteRun: summary: %w", err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %q: %w", filepath.Dir(path), err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %q: %w", path, err)
	}
	return nil
}
