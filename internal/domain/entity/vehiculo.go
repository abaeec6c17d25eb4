package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de vehículo.
const (
	VehiculoActivo         = "ACTIVO"
	VehiculoBaja           = "BAJA"
	VehiculoBajaDefinitiva = "BAJA_DEFINITIVA"
	VehiculoBajaDeOficio   = "BAJA_DE_OFICIO"
	VehiculoSuspendido     = "SUSPENDIDO"
	VehiculoMantenimiento  = "MANTENIMIENTO"
)

// EstadoVehiculoValido informa si el estado pertenece al catálogo.
func EstadoVehiculoValido(s string) bool {
	switch s {
	case VehiculoActivo, VehiculoBaja, VehiculoBajaDefinitiva,
		VehiculoBajaDeOficio, VehiculoSuspendido, VehiculoMantenimiento:
		return true
	}
	return false
}

// EstadoVehiculoBloqueado informa si el estado cuenta como bloqueado para el
// filtro de visibilidad (current ∩ blocked = ∅).
func EstadoVehiculoBloqueado(s string) bool {
	return s == VehiculoBajaDeOficio || s == VehiculoSuspendido
}

// DatosTecnicos ficha técnica del vehículo. Los pesos van en decimal para no
// perder precisión del certificado de habilitación.
type DatosTecnicos struct {
	Categoria       string // M1, M2, M3, N1...
	Marca           string
	Modelo          string
	AnioFabricacion int
	Asientos        int
	Pasajeros       int
	PesoNeto        decimal.Decimal // toneladas
	PesoBruto       decimal.Decimal
	CargaUtil       decimal.Decimal
	Largo           decimal.Decimal // metros
	Ancho           decimal.Decimal
	Alto            decimal.Decimal
	Ejes            int
	Ruedas          int
	Combustible     string
	Carroceria      string
	Color           string
}

// Vehiculo unidad vehicular habilitada. NumeroHistorial y EsRegistroActual
// son derivados por el motor de linaje: la posición ordinal del vehículo en
// la secuencia cronológica de resoluciones que lo autorizaron, y la marca de
// "registro vigente" por placa usada por el filtro de visibilidad.
type Vehiculo struct {
	ID          string
	Placa       string
	NumeroSerie string // VIN
	NumeroMotor string
	Datos       DatosTecnicos

	EmpresaActualID string
	ResolucionID    string // resolución vigente que lo habilita, si alguna
	Estado          string

	NumeroHistorial  int  // ordinal >= 1, derivado
	EsRegistroActual bool // derivado; exactamente uno por placa

	// Sello de la baja aprobada, si la hubo.
	FechaBaja         *time.Time
	MotivoBaja        string
	ObservacionesBaja string

	EstaActivo bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ── Solicitud de baja ─────────────────────────────────────────────────────────

// Estados de una solicitud de baja vehicular.
const (
	SolicitudPendiente  = "PENDIENTE"
	SolicitudEnRevision = "EN_REVISION"
	SolicitudAprobada   = "APROBADA"
	SolicitudRechazada  = "RECHAZADA"
	SolicitudCancelada  = "CANCELADA"
)

// Motivos de baja reconocidos.
const (
	MotivoIncumplimiento = "INCUMPLIMIENTO"
	MotivoRoboHurto      = "ROBO_HURTO"
	MotivoAccidente      = "ACCIDENTE"
	MotivoDeterioro      = "DETERIORO"
	MotivoObsolescencia  = "OBSOLESCENCIA"
	MotivoVenta          = "VENTA"
	MotivoCambioFlota    = "CAMBIO_FLOTA"
	MotivoOtros          = "OTROS"
)

// MotivoBajaValido informa si el motivo pertenece al catálogo.
func MotivoBajaValido(s string) bool {
	switch s {
	case MotivoIncumplimiento, MotivoRoboHurto, MotivoAccidente, MotivoDeterioro,
		MotivoObsolescencia, MotivoVenta, MotivoCambioFlota, MotivoOtros:
		return true
	}
	return false
}

// EstadoFinalPorMotivo mapea el motivo de una baja aprobada al estado final
// del vehículo: sanción -> BAJA_DE_OFICIO, siniestro/desgaste ->
// BAJA_DEFINITIVA, el resto -> BAJA.
func EstadoFinalPorMotivo(motivo string) string {
	switch motivo {
	case MotivoIncumplimiento, MotivoRoboHurto:
		return VehiculoBajaDeOficio
	case MotivoAccidente, MotivoDeterioro, MotivoObsolescencia:
		return VehiculoBajaDefinitiva
	default:
		return VehiculoBaja
	}
}

// transicionesSolicitud tabla {desde -> hacia permitidos}.
var transicionesSolicitud = map[string][]string{
	SolicitudPendiente:  {SolicitudEnRevision, SolicitudCancelada},
	SolicitudEnRevision: {SolicitudAprobada, SolicitudRechazada, SolicitudCancelada},
	SolicitudAprobada:   {},
	SolicitudRechazada:  {},
	SolicitudCancelada:  {},
}

// PuedeTransicionarSolicitud informa si el cambio desde->hacia está permitido.
func PuedeTransicionarSolicitud(desde, hacia string) bool {
	for _, h := range transicionesSolicitud[desde] {
		if h == hacia {
			return true
		}
	}
	return false
}

// SolicitudBaja pedido de deshabilitación de un vehículo.
type SolicitudBaja struct {
	ID              string
	VehiculoID      string
	EmpresaID       string
	Motivo          string // ver constantes Motivo*
	Sustento        string
	Estado          string
	MotivoRechazo   string
	SolicitadoPor   string // usuario
	ResueltoPor     string
	FechaSolicitud  time.Time
	FechaResolucion *time.Time

	EstaActivo bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
