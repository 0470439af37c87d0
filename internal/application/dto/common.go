// Package dto estructuras de entrada/salida de la API HTTP.
package dto

// ErrorResponse cuerpo estándar de error.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
