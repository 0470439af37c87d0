// Package presets fuentes de presets de compañías: la remota (HTTP) y la
// copia local embebida usada como fallback.
package presets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/median-ltd/invoice-studio/internal/application/ports"
	"github.com/median-ltd/invoice-studio/internal/domain/entity"
)

// HTTPSource fuente remota. Sin timeout propio más allá del transporte por
// defecto; el fallo se absorbe con el fallback local, sin reintentos.
type HTTPSource struct {
	url    string
	client *http.Client
}

var _ ports.PresetSource = (*HTTPSource)(nil)

// NewHTTPSource construye la fuente remota.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{url: url, client: &http.Client{}}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]entity.Company, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("presets: preparar petición: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("presets: fetch remoto: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("presets: HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("presets: leer respuesta: %w", err)
	}
	return Normalize(body)
}

// Normalize acepta tanto una lista desnuda de compañías como un objeto con
// el campo companies, y devuelve la lista ordenada uniforme.
func Normalize(data []byte) ([]entity.Company, error) {
	var list []entity.Company
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Companies []entity.Company `json:"companies"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("presets: forma de respuesta desconocida: %w", err)
	}
	return wrapped.Companies, nil
}
