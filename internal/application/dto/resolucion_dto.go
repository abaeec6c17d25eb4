package dto

import "time"

// CreateResolucionRequest alta de resolución. Para PADRE se exigen los campos
// de vigencia; para HIJO se exige padre y se prohíbe fijar vigencia propia.
type CreateResolucionRequest struct {
	Numero         string `json:"numero"`
	TipoResolucion string `json:"tipo_resolucion"` // PADRE | HIJO
	TipoTramite    string `json:"tipo_tramite"`
	EmpresaID      string `json:"empresa_id"`
	Descripcion    string `json:"descripcion"`

	FechaEmision        string `json:"fecha_emision"`         // dd/mm/yyyy | yyyy-mm-dd | dd-mm-yyyy
	FechaVigenciaInicio string `json:"fecha_vigencia_inicio"` // solo PADRE
	AniosVigencia       int    `json:"anios_vigencia"`        // solo PADRE: 4 o 10

	PadreID     string `json:"padre_id"`     // solo HIJO (alternativa: numero)
	PadreNumero string `json:"padre_numero"` // solo HIJO
}

// UpdateResolucionRequest modificación parcial. Cambios de tipo o de empresa
// no están permitidos.
type UpdateResolucionRequest struct {
	Descripcion   *string `json:"descripcion"`
	TipoTramite   *string `json:"tipo_tramite"`
	AniosVigencia *int    `json:"anios_vigencia"` // solo PADRE; propaga a HIJOs
}

// CambiarEstadoResolucionRequest transición del estado con motivo.
type CambiarEstadoResolucionRequest struct {
	Estado string `json:"estado"`
	Motivo string `json:"motivo"`
}

// ResolucionResponse representación HTTP de una resolución.
type ResolucionResponse struct {
	ID             string `json:"id"`
	Numero         string `json:"numero"`
	TipoResolucion string `json:"tipo_resolucion"`
	TipoTramite    string `json:"tipo_tramite"`
	EmpresaID      string `json:"empresa_id"`
	Descripcion    string `json:"descripcion,omitempty"`
	Estado         string `json:"estado"`
	MotivoEstado   string `json:"motivo_estado,omitempty"`

	FechaEmision        time.Time `json:"fecha_emision"`
	FechaVigenciaInicio time.Time `json:"fecha_vigencia_inicio"`
	FechaVigenciaFin    time.Time `json:"fecha_vigencia_fin"`
	AniosVigencia       int       `json:"anios_vigencia,omitempty"`

	PadreID  string   `json:"padre_id,omitempty"`
	HijosIds []string `json:"hijos_ids,omitempty"`

	VehiculosHabilitadosIds []string `json:"vehiculos_habilitados_ids"`
	RutasAutorizadasIds     []string `json:"rutas_autorizadas_ids"`

	EstaActivo bool      `json:"esta_activo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ResolucionListResponse listado paginado.
type ResolucionListResponse struct {
	Items []ResolucionResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
