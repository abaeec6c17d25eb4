package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DatosTecnicosDTO ficha técnica del vehículo.
type DatosTecnicosDTO struct {
	Categoria       string          `json:"categoria"`
	Marca           string          `json:"marca"`
	Modelo          string          `json:"modelo"`
	AnioFabricacion int             `json:"anio_fabricacion"`
	Asientos        int             `json:"asientos"`
	Pasajeros       int             `json:"pasajeros"`
	PesoNeto        decimal.Decimal `json:"peso_neto"`
	PesoBruto       decimal.Decimal `json:"peso_bruto"`
	CargaUtil       decimal.Decimal `json:"carga_util"`
	Largo           decimal.Decimal `json:"largo"`
	Ancho           decimal.Decimal `json:"ancho"`
	Alto            decimal.Decimal `json:"alto"`
	Ejes            int             `json:"ejes"`
	Ruedas          int             `json:"ruedas"`
	Combustible     string          `json:"combustible"`
	Carroceria      string          `json:"carroceria"`
	Color           string          `json:"color"`
}

// CreateVehiculoRequest alta de vehículo.
type CreateVehiculoRequest struct {
	Placa        string           `json:"placa"`
	NumeroSerie  string           `json:"numero_serie"`
	NumeroMotor  string           `json:"numero_motor"`
	EmpresaID    string           `json:"empresa_id"`
	ResolucionID string           `json:"resolucion_id"` // opcional; si viene, se habilita en ella
	Datos        DatosTecnicosDTO `json:"datos_tecnicos"`
}

// UpdateVehiculoRequest modificación parcial.
type UpdateVehiculoRequest struct {
	NumeroMotor *string           `json:"numero_motor"`
	Estado      *string           `json:"estado"`
	Datos       *DatosTecnicosDTO `json:"datos_tecnicos"`
}

// VehiculoResponse representación HTTP de un vehículo.
type VehiculoResponse struct {
	ID               string           `json:"id"`
	Placa            string           `json:"placa"`
	NumeroSerie      string           `json:"numero_serie"`
	NumeroMotor      string           `json:"numero_motor,omitempty"`
	Datos            DatosTecnicosDTO `json:"datos_tecnicos"`
	EmpresaActualID  string           `json:"empresa_actual_id"`
	ResolucionID     string           `json:"resolucion_id,omitempty"`
	Estado           string           `json:"estado"`
	NumeroHistorial  int              `json:"numero_historial_validacion"`
	EsRegistroActual bool             `json:"es_registro_actual"`
	FechaBaja        *time.Time       `json:"fecha_baja,omitempty"`
	MotivoBaja       string           `json:"motivo_baja,omitempty"`
	EstaActivo       bool             `json:"esta_activo"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// VehiculoListResponse listado paginado.
type VehiculoListResponse struct {
	Items []VehiculoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateSolicitudBajaRequest pedido de baja de un vehículo.
type CreateSolicitudBajaRequest struct {
	VehiculoID string `json:"vehiculo_id"`
	Motivo     string `json:"motivo"`
	Sustento   string `json:"sustento"`
}

// ResolverSolicitudBajaRequest aprobación o rechazo de una solicitud.
type ResolverSolicitudBajaRequest struct {
	Aprobar       bool   `json:"aprobar"`
	MotivoRechazo string `json:"motivo_rechazo"` // obligatorio al rechazar
	Observaciones string `json:"observaciones"`
}

// SolicitudBajaResponse representación HTTP de una solicitud de baja.
type SolicitudBajaResponse struct {
	ID              string     `json:"id"`
	VehiculoID      string     `json:"vehiculo_id"`
	EmpresaID       string     `json:"empresa_id"`
	Motivo          string     `json:"motivo"`
	Sustento        string     `json:"sustento,omitempty"`
	Estado          string     `json:"estado"`
	MotivoRechazo   string     `json:"motivo_rechazo,omitempty"`
	SolicitadoPor   string     `json:"solicitado_por"`
	ResueltoPor     string     `json:"resuelto_por,omitempty"`
	FechaSolicitud  time.Time  `json:"fecha_solicitud"`
	FechaResolucion *time.Time `json:"fecha_resolucion,omitempty"`
}
