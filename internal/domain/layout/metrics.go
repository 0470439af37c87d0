// Package layout construye las páginas efímeras de exportación y resuelve
// cuántas filas de la tabla caben en cada una.
//
// Anatomía de una página (794×1123 unidades, ≈A4 a 96dpi):
//
//	┌──────────────────────────────────────────────┐
//	│ ▔▔▔ barra de acento superior ▔▔▔             │
//	│  Invoice / nº / fecha / due        [LOGO]    │
//	│  (chips de proceso)                          │
//	│  From                 │  Bill To             │
//	│  ──────────────────────────────────────────  │
//	│  DESCRIPTION   QTY   UNIT   AMOUNT           │
//	│  fila por ítem ...                           │
//	│  Notes        │ Subtotal / Tax / Disc / Total│  ← sólo última página
//	│  banco        │       thank you + email      │  ← sólo última página
//	│ ▁▁▁ barra de acento inferior ▁▁▁             │
//	└──────────────────────────────────────────────┘
package layout

import "math"

// Dimensiones fijas de la página de exportación.
const (
	PageWidth  = 794.0  // ~210mm a ~96dpi
	PageHeight = 1123.0 // ~297mm a ~96dpi

	// VerticalPadding reserva vertical para que totales/notas/footer no
	// queden pegados al borde.
	VerticalPadding = 48.0

	// FallbackRowHeight altura media de una fila si la página de prueba no
	// aporta ninguna.
	FallbackRowHeight = 32.0

	// tableHeaderGap holgura entre la banda de cabecera y las filas al
	// calcular capacidades.
	tableHeaderGap = 16.0

	// otherPageReserve colchón extra para páginas sin bloque de
	// introducción. Las páginas siguientes repiten la cabecera completa,
	// así que esto queda como margen conservador, no como recálculo exacto.
	otherPageReserve = 32.0
)

// Metrics métricas leídas de la página sintética de medición.
type Metrics struct {
	HeaderHeight float64 // alto de la banda de cabecera de la tabla
	RowHeight    float64 // alto de una fila del cuerpo
	UsedTop      float64 // distancia del borde superior al inicio de la tabla
}

// Capacities filas que caben en la primera página y en las siguientes.
// Ambas tienen suelo 1 para garantizar progreso aunque una sola fila
// desborde la página.
type Capacities struct {
	First int
	Other int
}

// ComputeCapacities aplica el modelo de capacidad sobre las métricas medidas.
func ComputeCapacities(m Metrics) Capacities {
	rowH := m.RowHeight
	if rowH <= 0 {
		rowH = FallbackRowHeight
	}
	usableFirst := PageHeight - m.UsedTop - VerticalPadding
	usableOther := PageHeight - VerticalPadding - otherPageReserve

	first := int(math.Floor((usableFirst - m.HeaderHeight - tableHeaderGap) / rowH))
	other := int(math.Floor((usableOther - m.HeaderHeight - tableHeaderGap) / rowH))
	if first < 1 {
		first = 1
	}
	if other < 1 {
		other = 1
	}
	return Capacities{First: first, Other: other}
}
