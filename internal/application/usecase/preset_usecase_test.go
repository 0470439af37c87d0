package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/median-ltd/invoice-studio/internal/application/ports"
	"github.com/median-ltd/invoice-studio/internal/application/usecase"
	"github.com/median-ltd/invoice-studio/internal/domain"
	"github.com/median-ltd/invoice-studio/internal/domain/entity"
	"github.com/median-ltd/invoice-studio/internal/infrastructure/keyvalue"
	"github.com/median-ltd/invoice-studio/pkg/logger"
)

// fakeSource fuente de presets controlable desde el test.
type fakeSource struct {
	companies []entity.Company
	err       error
}

func (f *fakeSource) Fetch(_ context.Context) ([]entity.Company, error) {
	return f.companies, f.err
}

// funcSource fuente de presets con comportamiento por llamada.
type funcSource struct {
	fn func(context.Context) ([]entity.Company, error)
}

func (f funcSource) Fetch(ctx context.Context) ([]entity.Company, error) {
	return f.fn(ctx)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func sampleCompanies() []entity.Company {
	return []entity.Company{
		{Name: "Acme Trading LLC", Email: "accounts@acmetrading.ae", Currency: "USD"},
		{Name: "Northlight Studio", Address: "Helsinki, Finland"},
	}
}

func newPresetUC(remote, local *fakeSource) (*usecase.PresetUseCase, *usecase.DraftUseCase, *keyvalue.MemoryStore) {
	draft := usecase.NewDraftUseCase()
	marker := keyvalue.NewMemoryStore()
	var localSrc ports.PresetSource
	if local != nil {
		localSrc = local
	}
	uc := usecase.NewPresetUseCase(remote, localSrc, marker, "median:lastCompany", draft, testLogger())
	return uc, draft, marker
}

// TestPresets_CargaRemota la carga publica la lista remota y limpia el estado
// de carga.
func TestPresets_CargaRemota(t *testing.T) {
	uc, _, _ := newPresetUC(&fakeSource{companies: sampleCompanies()}, &fakeSource{})

	uc.Load(context.Background())

	list, loading, status := uc.Companies()
	require.Len(t, list, 2)
	assert.False(t, loading)
	assert.Empty(t, status)
	assert.Equal(t, "Acme Trading LLC", list[0].Name, "el orden de la fuente se conserva")
}

// TestPresets_FallbackLocal si la fuente remota falla se usa la copia local.
func TestPresets_FallbackLocal(t *testing.T) {
	uc, _, _ := newPresetUC(
		&fakeSource{err: errors.New("red caída")},
		&fakeSource{companies: sampleCompanies()},
	)

	uc.Load(context.Background())

	list, _, status := uc.Companies()
	require.Len(t, list, 2)
	assert.Empty(t, status, "el fallback absorbe el fallo remoto")
}

// TestPresets_FalloTotalConservaLista si ambas fuentes fallan se conserva la
// lista anterior y el motivo queda en el estado.
func TestPresets_FalloTotalConservaLista(t *testing.T) {
	remote := &fakeSource{companies: sampleCompanies()}
	local := &fakeSource{err: errors.New("sin copia local")}
	uc, _, _ := newPresetUC(remote, local)

	uc.Load(context.Background())
	require.Len(t, mustList(t, uc), 2)

	remote.err = errors.New("red caída")
	remote.companies = nil
	uc.Load(context.Background())

	list, loading, status := uc.Companies()
	assert.Len(t, list, 2, "la lista anterior sobrevive al fallo")
	assert.False(t, loading)
	assert.NotEmpty(t, status, "el motivo del fallo queda consultable")
}

// TestPresets_Apply aplica el preset al borrador y registra el marcador.
func TestPresets_Apply(t *testing.T) {
	uc, draft, marker := newPresetUC(&fakeSource{companies: sampleCompanies()}, nil)
	uc.Load(context.Background())

	applied, err := uc.Apply(context.Background(), "Acme Trading LLC")
	require.NoError(t, err)
	assert.Equal(t, "Acme Trading LLC", applied.Name)

	snap := draft.Snapshot()
	assert.Equal(t, "Acme Trading LLC", snap.Client.Name)
	assert.Equal(t, "USD", snap.Meta.Currency)

	val, found, err := marker.Get(context.Background(), "median:lastCompany")
	require.NoError(t, err)
	require.True(t, found, "el marcador debe registrarse")
	assert.Equal(t, "Acme Trading LLC", val)
}

// TestPresets_Apply_NoExiste aplicar un nombre desconocido falla con
// ErrPresetNotFound sin tocar el borrador.
func TestPresets_Apply_NoExiste(t *testing.T) {
	uc, draft, _ := newPresetUC(&fakeSource{companies: sampleCompanies()}, nil)
	uc.Load(context.Background())

	_, err := uc.Apply(context.Background(), "No Existe SL")
	assert.ErrorIs(t, err, domain.ErrPresetNotFound)
	assert.Empty(t, draft.Snapshot().Client.Name, "el borrador queda intacto")
}

// TestPresets_ReaplicaMarcado al recargar el catálogo se reaplica el último
// preset marcado si sigue existiendo.
func TestPresets_ReaplicaMarcado(t *testing.T) {
	uc, draft, marker := newPresetUC(&fakeSource{companies: sampleCompanies()}, nil)
	require.NoError(t, marker.Set(context.Background(), "median:lastCompany", "Northlight Studio"))

	uc.Load(context.Background())

	assert.Equal(t, "Northlight Studio", draft.Snapshot().Client.Name,
		"el preset marcado se reaplica tras la carga")
}

// TestPresets_GeneracionObsoletaDescartada una carga que termina después de
// que otra más reciente haya empezado descarta su resultado: sobrevive la
// lista de la carga más nueva, no la de la más lenta.
func TestPresets_GeneracionObsoletaDescartada(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var first atomic.Bool
	first.Store(true)

	// la primera llamada queda bloqueada y devuelve un catálogo viejo; las
	// siguientes responden de inmediato con el catálogo actual
	remote := funcSource{fn: func(_ context.Context) ([]entity.Company, error) {
		if first.CompareAndSwap(true, false) {
			close(entered)
			<-release
			return []entity.Company{{Name: "Catálogo Viejo SL"}}, nil
		}
		return sampleCompanies(), nil
	}}

	draft := usecase.NewDraftUseCase()
	uc := usecase.NewPresetUseCase(remote, nil, keyvalue.NewMemoryStore(),
		"median:lastCompany", draft, testLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		uc.Load(context.Background()) // carga A, se queda en el fetch
	}()
	<-entered

	uc.Load(context.Background()) // carga B, más reciente, termina primero

	close(release)
	<-done

	list, loading, status := uc.Companies()
	require.Len(t, list, 2, "debe publicarse el resultado de la carga más reciente")
	assert.Equal(t, "Acme Trading LLC", list[0].Name)
	assert.False(t, loading, "la carga obsoleta no reabre el estado de carga")
	assert.Empty(t, status)
}

// TestPresets_MarcadorDesconocidoSeIgnora un marcador que ya no aparece en el
// catálogo no rompe la carga ni toca el borrador.
func TestPresets_MarcadorDesconocidoSeIgnora(t *testing.T) {
	uc, draft, marker := newPresetUC(&fakeSource{companies: sampleCompanies()}, nil)
	require.NoError(t, marker.Set(context.Background(), "median:lastCompany", "Empresa Borrada"))

	uc.Load(context.Background())

	assert.Empty(t, draft.Snapshot().Client.Name)
	assert.Len(t, mustList(t, uc), 2)
}

func mustList(t *testing.T, uc *usecase.PresetUseCase) []entity.Company {
	t.Helper()
	list, _, _ := uc.Companies()
	return list
}
