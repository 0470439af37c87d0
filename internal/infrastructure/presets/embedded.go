package presets

import (
	"context"
	_ "embed"

	"github.com/median-ltd/invoice-studio/internal/application/ports"
	"github.com/median-ltd/invoice-studio/internal/domain/entity"
)

//go:embed companies.json
var localCompanies []byte

// EmbeddedSource copia local empaquetada con el binario; sólo se usa cuando
// el fetch remoto falla.
type EmbeddedSource struct{}

var _ ports.PresetSource = EmbeddedSource{}

// NewEmbeddedSource construye la fuente local.
func NewEmbeddedSource() EmbeddedSource {
	return EmbeddedSource{}
}

func (EmbeddedSource) Fetch(_ context.Context) ([]entity.Company, error) {
	return Normalize(localCompanies)
}
