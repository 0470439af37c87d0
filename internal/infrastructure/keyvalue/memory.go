// Package keyvalue implementaciones del almacén clave-valor del marcador de
// preset (memoria de proceso o Redis, según configuración).
package keyvalue

import (
	"context"
	"sync"

	"github.com/median-ltd/invoice-studio/internal/application/ports"
)

// MemoryStore almacén en memoria; el marcador no sobrevive al proceso.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ ports.MarkerStore = (*MemoryStore)(nil)

// NewMemoryStore construye el almacén.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}
