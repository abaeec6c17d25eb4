package entity

import "time"

// Tipos de resolución. PADRE es la autorización primigenia; HIJO (incremento)
// depende de un PADRE y hereda su vigencia.
const (
	ResolucionPadre = "PADRE"
	ResolucionHijo  = "HIJO"
)

// Tipos de trámite que originan una resolución.
const (
	TramitePrimigenia   = "PRIMIGENIA"
	TramiteRenovacion   = "RENOVACION"
	TramiteIncremento   = "INCREMENTO"
	TramiteModificacion = "MODIFICACION"
	TramiteSustitucion  = "SUSTITUCION"
	TramiteOtros        = "OTROS"
)

// TipoTramiteValido informa si el tipo de trámite pertenece al catálogo.
func TipoTramiteValido(s string) bool {
	switch s {
	case TramitePrimigenia, TramiteRenovacion, TramiteIncremento,
		TramiteModificacion, TramiteSustitucion, TramiteOtros:
		return true
	}
	return false
}

// Estados de resolución.
const (
	ResolucionEnProceso  = "EN_PROCESO"
	ResolucionEmitida    = "EMITIDA"
	ResolucionVigente    = "VIGENTE"
	ResolucionVencida    = "VENCIDA"
	ResolucionSuspendida = "SUSPENDIDA"
	ResolucionAnulada    = "ANULADA"
	ResolucionDadaDeBaja = "DADA_DE_BAJA"
)

// transicionesResolucion tabla {desde -> hacia permitidos}. ANULADA y
// DADA_DE_BAJA son terminales.
var transicionesResolucion = map[string][]string{
	ResolucionEnProceso:  {ResolucionEmitida, ResolucionAnulada},
	ResolucionEmitida:    {ResolucionVigente, ResolucionAnulada},
	ResolucionVigente:    {ResolucionVencida, ResolucionSuspendida, ResolucionAnulada, ResolucionDadaDeBaja},
	ResolucionSuspendida: {ResolucionVigente, ResolucionAnulada, ResolucionDadaDeBaja},
	ResolucionVencida:    {ResolucionDadaDeBaja},
	ResolucionAnulada:    {},
	ResolucionDadaDeBaja: {},
}

// EstadoResolucionValido informa si el estado pertenece al catálogo.
func EstadoResolucionValido(s string) bool {
	_, ok := transicionesResolucion[s]
	return ok
}

// PuedeTransicionarResolucion informa si el cambio desde->hacia está permitido.
func PuedeTransicionarResolucion(desde, hacia string) bool {
	for _, h := range transicionesResolucion[desde] {
		if h == hacia {
			return true
		}
	}
	return false
}

// EstadoResolucionTerminal informa si el estado no admite más transiciones.
func EstadoResolucionTerminal(s string) bool {
	return len(transicionesResolucion[s]) == 0 && EstadoResolucionValido(s)
}

// Resolucion acto administrativo que autoriza a una empresa a operar
// vehículos sobre rutas. Las listas *Ids son caché desnormalizado.
type Resolucion struct {
	ID             string
	Numero         string // formato R-NNNN-YYYY, único
	TipoResolucion string // PADRE | HIJO
	TipoTramite    string
	EmpresaID      string
	Descripcion    string
	Estado         string
	MotivoEstado   string

	FechaEmision        time.Time
	FechaVigenciaInicio time.Time
	FechaVigenciaFin    time.Time
	AniosVigencia       int // 4 o 10; solo PADRE (0 en HIJO, heredado)

	// Linaje PADRE/HIJO.
	PadreID  string   // solo HIJO
	HijosIds []string // solo PADRE

	VehiculosHabilitadosIds []string
	RutasAutorizadasIds     []string

	EstaActivo bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EsPadre informa si la resolución es primigenia.
func (r *Resolucion) EsPadre() bool { return r.TipoResolucion == ResolucionPadre }

// EsHijo informa si la resolución es un incremento dependiente.
func (r *Resolucion) EsHijo() bool { return r.TipoResolucion == ResolucionHijo }

// CalcularVigenciaFin devuelve inicio + años − 1 día. Ej: 2025-01-15 + 4 años
// = 2029-01-14.
func CalcularVigenciaFin(inicio time.Time, anios int) time.Time {
	return inicio.AddDate(anios, 0, 0).AddDate(0, 0, -1)
}

// Vencida informa si la vigencia terminó antes de la fecha dada (día civil).
func (r *Resolucion) Vencida(hoy time.Time) bool {
	if r.FechaVigenciaFin.IsZero() {
		return false
	}
	fin := r.FechaVigenciaFin
	return fin.Year() < hoy.Year() ||
		(fin.Year() == hoy.Year() && fin.YearDay() < hoy.YearDay())
}

// TieneVehiculo informa si el vehículo figura en los habilitados.
func (r *Resolucion) TieneVehiculo(vehiculoID string) bool {
	for _, id := range r.VehiculosHabilitadosIds {
		if id == vehiculoID {
			return true
		}
	}
	return false
}

// TieneRuta informa si la ruta figura en las autorizadas.
func (r *Resolucion) TieneRuta(rutaID string) bool {
	for _, id := range r.RutasAutorizadasIds {
		if id == rutaID {
			return true
		}
	}
	return false
}
