package layout

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/median-ltd/invoice-studio/internal/domain/entity"
)

// probeRows número fijo de filas placeholder de la página de medición.
const probeRows = 6

// ProbeItems filas sintéticas de contenido fijo para la página de medición.
// No son datos reales: sólo fuerzan al builder a producir una banda de
// cabecera y filas de cuerpo medibles.
func ProbeItems() []entity.LineItem {
	items := make([]entity.LineItem, 0, probeRows)
	for i := 1; i <= probeRows; i++ {
		items = append(items, entity.LineItem{
			ID:          uuid.NewString(),
			Description: fmt.Sprintf("Measure row %d", i),
			Qty:         decimal.NewFromInt(1),
			Price:       decimal.NewFromInt(1000),
		})
	}
	return items
}

// ReadMetrics lee de una página construida: el alto de la banda de cabecera
// de la tabla, el alto de la primera fila del cuerpo (FallbackRowHeight si
// no hay ninguna) y la distancia del borde superior de la página al inicio
// de la tabla.
func ReadMetrics(p *Page) Metrics {
	m := Metrics{RowHeight: FallbackRowHeight}
	rowSeen := false
	for _, b := range p.Blocks {
		switch b.Kind {
		case BlockTableHead:
			m.HeaderHeight = b.H
			m.UsedTop = b.Y
		case BlockTableRow:
			if !rowSeen {
				m.RowHeight = b.H
				rowSeen = true
			}
		}
	}
	return m
}
