package dto

import "time"

// PageRequest paginación para listados (1-based, como la expone la API).
type PageRequest struct {
	PageNumber int `query:"pageNumber"`
	PageSize   int `query:"pageSize"`
}

// Offset devuelve el desplazamiento de la ventana de la página.
func (p PageRequest) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// MessageResponse confirmación de una operación de mutación.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	StatusCode int       `json:"statusCode"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}
