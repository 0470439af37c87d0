// Package export orquesta el pipeline de exportación: medir, paginar,
// construir páginas, rasterizar y ensamblar el documento final.
package export

import (
	"sync"
	"sync/atomic"

	"github.com/median-ltd/invoice-studio/internal/domain"
	"github.com/median-ltd/invoice-studio/internal/domain/layout"
)

// Staging área de trabajo efímera donde viven las páginas durante una
// exportación. Una sola exportación puede ocuparla a la vez; intentos
// concurrentes fallan con domain.ErrExportInProgress en lugar de encolarse.
type Staging struct {
	busy atomic.Bool

	mu    sync.Mutex
	pages []*layout.Page
}

// NewStaging construye el área de staging.
func NewStaging() *Staging { return &Staging{} }

// acquire reserva el área para una exportación. Devuelve la función de
// liberación que desmonta todo lo que siga montado.
func (s *Staging) acquire() (func(), error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrExportInProgress
	}
	return func() {
		s.mu.Lock()
		s.pages = nil
		s.mu.Unlock()
		s.busy.Store(false)
	}, nil
}

// mount añade una página al área.
func (s *Staging) mount(p *layout.Page) {
	s.mu.Lock()
	s.pages = append(s.pages, p)
	s.mu.Unlock()
}

// unmount retira la última página montada.
func (s *Staging) unmount() {
	s.mu.Lock()
	if n := len(s.pages); n > 0 {
		s.pages = s.pages[:n-1]
	}
	s.mu.Unlock()
}

// Count páginas montadas en este momento.
func (s *Staging) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}
