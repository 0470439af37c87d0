package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrPresetNotFound     = errors.New("preset no encontrado")
	ErrExportInProgress   = errors.New("exportación ya en curso")
	ErrStagingUnavailable = errors.New("área de staging no disponible")
)
