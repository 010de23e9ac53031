package domain

// PriceStats son estadísticas derivadas sobre el precio de entrada del dataset
// combinado. Solo para reporting — no afectan a la corrección del run.
type PriceStats struct {
	Count        int
	AvgPrice     float64
	UnderHalf    int     // trades con entrada < $0.50
	UnderHalfPct float64 // 0–100
}

// EntryStats calcula las estadísticas de precio de entrada sobre un dataset.
// Con un dataset vacío devuelve el zero value.
func EntryStats(trades []Trade) PriceStats {
	if len(trades) == 0 {
		return PriceStats{}
	}

	var sum float64
	var under int
	for _, t := range trades {
		sum += t.Price
		if t.Price < 0.50 {
			under++
		}
	}

	return PriceStats{
		Count:        len(trades),
		AvgPrice:     sum / float64(len(trades)),
		UnderHalf:    under,
		UnderHalfPct: float64(under) / float64(len(trades)) * 100,
	}
}
