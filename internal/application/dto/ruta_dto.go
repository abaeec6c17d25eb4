package dto

import "time"

// LocalidadDTO punto de una ruta.
type LocalidadDTO struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// CreateRutaRequest alta de ruta general bajo una resolución.
type CreateRutaRequest struct {
	CodigoRuta   string         `json:"codigo_ruta"`
	EmpresaID    string         `json:"empresa_id"`
	ResolucionID string         `json:"resolucion_id"`
	Origen       LocalidadDTO   `json:"origen"`
	Destino      LocalidadDTO   `json:"destino"`
	Itinerario   []LocalidadDTO `json:"itinerario"`
	Frecuencias  string         `json:"frecuencias"`
	TipoServicio string         `json:"tipo_servicio"`
}

// UpdateRutaRequest modificación parcial de una ruta general.
type UpdateRutaRequest struct {
	CodigoRuta   *string        `json:"codigo_ruta"`
	Frecuencias  *string        `json:"frecuencias"`
	TipoServicio *string        `json:"tipo_servicio"`
	Estado       *string        `json:"estado"`
	Itinerario   []LocalidadDTO `json:"itinerario"`
}

// RutaResponse representación HTTP de una ruta.
type RutaResponse struct {
	ID           string         `json:"id"`
	CodigoRuta   string         `json:"codigo_ruta"`
	EmpresaID    string         `json:"empresa_id"`
	ResolucionID string         `json:"resolucion_id"`
	Origen       LocalidadDTO   `json:"origen"`
	Destino      LocalidadDTO   `json:"destino"`
	Itinerario   []LocalidadDTO `json:"itinerario,omitempty"`
	Frecuencias  string         `json:"frecuencias,omitempty"`
	TipoRuta     string         `json:"tipo_ruta"`
	TipoServicio string         `json:"tipo_servicio"`
	Estado       string         `json:"estado"`
	EstaActivo   bool           `json:"esta_activo"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// RutaListResponse listado paginado.
type RutaListResponse struct {
	Items []RutaResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CombinacionRutasResponse par único (origen, destino) con sus rutas.
type CombinacionRutasResponse struct {
	Origen  string         `json:"origen"`
	Destino string         `json:"destino"`
	Rutas   []RutaResponse `json:"rutas"`
}

// HorarioDTO franja horaria de una ruta específica.
type HorarioDTO struct {
	HoraSalida    string `json:"hora_salida"`  // HH:MM
	HoraLlegada   string `json:"hora_llegada"` // HH:MM
	FrecuenciaMin int    `json:"frecuencia_min"`
	DiasSemana    uint8  `json:"dias_semana"` // máscara bit 0=lunes .. 6=domingo
}

// CreateRutaEspecificaRequest derivación de una ruta general para un vehículo.
type CreateRutaEspecificaRequest struct {
	VehiculoID         string         `json:"vehiculo_id"`
	RutaGeneralID      string         `json:"ruta_general_id"`
	Horarios           []HorarioDTO   `json:"horarios"`
	ParadasAdicionales []LocalidadDTO `json:"paradas_adicionales"`
}

// RutaEspecificaResponse representación HTTP de una ruta específica. Origen,
// destino e itinerario vienen heredados de la ruta general.
type RutaEspecificaResponse struct {
	ID                 string         `json:"id"`
	Codigo             string         `json:"codigo"`
	RutaGeneralID      string         `json:"ruta_general_id"`
	VehiculoID         string         `json:"vehiculo_id"`
	ResolucionID       string         `json:"resolucion_id"`
	Origen             LocalidadDTO   `json:"origen"`
	Destino            LocalidadDTO   `json:"destino"`
	Itinerario         []LocalidadDTO `json:"itinerario,omitempty"`
	Horarios           []HorarioDTO   `json:"horarios"`
	ParadasAdicionales []LocalidadDTO `json:"paradas_adicionales,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
}
