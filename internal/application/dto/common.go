package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Detalles map[string]string `json:"detalles,omitempty"` // por campo, en 422
}

// EstadisticasResponse conteos por estado de una colección.
type EstadisticasResponse struct {
	Total     int            `json:"total"`
	PorEstado map[string]int `json:"por_estado"`
}
