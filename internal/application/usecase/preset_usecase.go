package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/median-ltd/invoice-studio/internal/application/ports"
	"github.com/median-ltd/invoice-studio/internal/domain"
	"github.com/median-ltd/invoice-studio/internal/domain/entity"
	"github.com/median-ltd/invoice-studio/pkg/logger"
)

// PresetUseCase catálogo de presets de compañías: carga remota con fallback
// local, estado de carga consultable y marcador persistente del último preset
// aplicado (se reaplica al recargar el catálogo).
type PresetUseCase struct {
	remote    ports.PresetSource
	local     ports.PresetSource
	marker    ports.MarkerStore
	markerKey string
	draft     *DraftUseCase
	log       *logger.Logger

	// gen invalida cargas en vuelo cuando arranca una más reciente: sólo la
	// generación más nueva puede publicar su resultado.
	gen atomic.Int64

	mu        sync.RWMutex
	companies []entity.Company
	loading   bool
	status    string
}

// NewPresetUseCase construye el caso de uso.
func NewPresetUseCase(
	remote, local ports.PresetSource,
	marker ports.MarkerStore,
	markerKey string,
	draft *DraftUseCase,
	log *logger.Logger,
) *PresetUseCase {
	return &PresetUseCase{
		remote:    remote,
		local:     local,
		marker:    marker,
		markerKey: markerKey,
		draft:     draft,
		log:       log,
	}
}

// Load refresca el catálogo: intenta la fuente remota y cae a la local si
// falla. Si ambas fallan conserva la lista anterior y registra el motivo en
// el estado. Tras publicar una lista nueva, reaplica el último preset marcado
// si sigue existiendo.
func (u *PresetUseCase) Load(ctx context.Context) {
	gen := u.gen.Add(1)

	u.mu.Lock()
	u.loading = true
	u.status = ""
	u.mu.Unlock()

	companies, err := u.remote.Fetch(ctx)
	if err != nil && u.local != nil {
		u.log.Warn().Err(err).Msg("Fuente remota de presets no disponible, usando copia local")
		companies, err = u.local.Fetch(ctx)
	}

	// Una carga más reciente ya tomó el relevo: descartar este resultado.
	if u.gen.Load() != gen {
		return
	}

	u.mu.Lock()
	u.loading = false
	if err != nil {
		u.status = err.Error()
		u.mu.Unlock()
		u.log.Error().Err(err).Msg("No se pudo cargar el catálogo de presets")
		return
	}
	u.companies = companies
	u.mu.Unlock()

	u.log.Info().Int("companies", len(companies)).Msg("Catálogo de presets cargado")
	u.reapplyMarked(ctx)
}

// reapplyMarked reaplica el último preset marcado si aparece en el catálogo.
func (u *PresetUseCase) reapplyMarked(ctx context.Context) {
	name, found, err := u.marker.Get(ctx, u.markerKey)
	if err != nil {
		u.log.Warn().Err(err).Msg("No se pudo leer el marcador de preset")
		return
	}
	if !found || name == "" {
		return
	}
	if c, ok := u.find(name); ok {
		u.draft.ApplyCompany(c)
		u.log.Info().Str("company", name).Msg("Preset marcado reaplicado")
	}
}

// Companies lista actual con el estado de carga.
func (u *PresetUseCase) Companies() (list []entity.Company, loading bool, status string) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	list = make([]entity.Company, len(u.companies))
	copy(list, u.companies)
	return list, u.loading, u.status
}

// Apply aplica el preset con el nombre dado al borrador y registra el
// marcador. Un fallo al escribir el marcador no invalida la aplicación.
func (u *PresetUseCase) Apply(ctx context.Context, name string) (entity.Company, error) {
	c, ok := u.find(name)
	if !ok {
		return entity.Company{}, domain.ErrPresetNotFound
	}
	u.draft.ApplyCompany(c)
	if err := u.marker.Set(ctx, u.markerKey, c.Name); err != nil {
		u.log.Warn().Err(err).Str("company", c.Name).Msg("No se pudo guardar el marcador de preset")
	}
	return c, nil
}

func (u *PresetUseCase) find(name string) (entity.Company, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, c := range u.companies {
		if c.Name == name {
			return c, true
		}
	}
	return entity.Company{}, false
}
