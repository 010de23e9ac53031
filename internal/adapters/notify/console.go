package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/whalefetch/internal/domain"
)

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Notify imprime el resumen del run en el modo configurado.
func (c *Console) Notify(_ context.Context, trades []domain.Trade, summary domain.RunSummary) error {
	if c.table {
		c.printFull(trades, summary)
	} else {
		c.printCompact(summary)
	}
	return nil
}

// printCompact imprime lo esencial en una línea.
func (c *Console) printCompact(summary domain.RunSummary) {
	now := time.Now().Format("15:04:05")
	fmt.Fprintf(c.out, "[%s] %d wallets → fetched:%d matched:%d\n",
		now, len(summary.Wallets), summary.TotalFetched(), summary.GrandTotalMatched)
}

// printFull imprime la tabla por wallet y las estadísticas de precio.
func (c *Console) printFull(trades []domain.Trade, summary domain.RunSummary) {
	fmt.Fprintf(c.out, "\n=== RUN %s — %s ===\n",
		summary.RunID, summary.FetchedAt.Format(time.RFC3339))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Wallet", "Fetched", "Matched", "Match %")

	for i, w := range summary.Wallets {
		pct := 0.0
		if w.TotalFetched > 0 {
			pct = float64(w.MatchedTrades) / float64(w.TotalFetched) * 100
		}
		table.Append(
			fmt.Sprintf("%d", i+1),
			shortAddr(w.Address),
			fmt.Sprintf("%d", w.TotalFetched),
			fmt.Sprintf("%d", w.MatchedTrades),
			fmt.Sprintf("%.1f%%", pct),
		)
	}

	table.Render()

	fmt.Fprintf(c.out, "Total matched: %d\n", summary.GrandTotalMatched)

	stats := domain.EntryStats(trades)
	if stats.Count == 0 {
		return
	}
	fmt.Fprintln(c.out, "\nEntry price analysis:")
	fmt.Fprintf(c.out, "  Average entry: %.2f\n", stats.AvgPrice)
	fmt.Fprintf(c.out, "  Under 50¢: %d (%.1f%%)\n", stats.UnderHalf, stats.UnderHalfPct)
}

func shortAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:10] + "..."
}
