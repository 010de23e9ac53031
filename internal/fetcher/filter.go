package fetcher

import (
	"strings"

	"github.com/alejandrodnm/whalefetch/internal/domain"
)

// Filter decide qué trades entran al dataset mirando el título del mercado.
// Es un predicado puro: sin estado mutable, sin efectos.
type Filter struct {
	phrase string // ya en minúsculas; vacío = aceptar todo
}

// NewFilter crea un Filter que acepta trades cuyo título contiene phrase,
// sin distinguir mayúsculas.
func NewFilter(phrase string) *Filter {
	return &Filter{phrase: strings.ToLower(phrase)}
}

// Matches devuelve true si el trade pasa el filtro. Un título vacío o ausente
// nunca matchea (salvo filtro vacío) y nunca es un error.
func (f *Filter) Matches(t domain.Trade) bool {
	if f.phrase == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), f.phrase)
}
