package entity

import "time"

// Tipos de ruta. GENERAL pertenece a la resolución; ESPECIFICA es la
// personalización por vehículo de una GENERAL.
const (
	RutaGeneral    = "GENERAL"
	RutaEspecifica = "ESPECIFICA"
)

// Estados de ruta.
const (
	RutaActiva     = "ACTIVA"
	RutaInactiva   = "INACTIVA"
	RutaSuspendida = "SUSPENDIDA"
)

// EstadoRutaValido informa si el estado pertenece al catálogo.
func EstadoRutaValido(s string) bool {
	switch s {
	case RutaActiva, RutaInactiva, RutaSuspendida:
		return true
	}
	return false
}

// Tipos de servicio autorizables.
const (
	ServicioPersonas   = "PERSONAS"
	ServicioMercancias = "MERCANCIAS"
	ServicioMixto      = "MIXTO"
	ServicioTuristico  = "TURISTICO"
)

// Localidad punto de origen, destino o escala de una ruta (par id + nombre;
// no hay geometrías).
type Localidad struct {
	ID     string
	Nombre string
}

// Ruta ruta general autorizada por una resolución. El código es único dentro
// de la resolución (normalizado a dos dígitos); puede repetirse entre
// resoluciones distintas.
type Ruta struct {
	ID           string
	CodigoRuta   string // dos dígitos, cero a la izquierda ("01".."99")
	EmpresaID    string
	ResolucionID string

	Origen     Localidad
	Destino    Localidad
	Itinerario []Localidad // escalas intermedias ordenadas, opcional

	Frecuencias  string // texto libre ("diaria", "interdiaria", ...)
	TipoRuta     string // GENERAL | ESPECIFICA
	TipoServicio string
	Estado       string

	EstaActivo bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Horario franja de salida/llegada de una ruta específica. DiasSemana es una
// máscara bit 0=lunes .. bit 6=domingo.
type Horario struct {
	HoraSalida    string // "HH:MM"
	HoraLlegada   string // "HH:MM", posterior a la salida
	FrecuenciaMin int
	DiasSemana    uint8
}

// DiasSeleccionados cuenta los días activos de la máscara.
func (h Horario) DiasSeleccionados() int {
	n := 0
	for d := 0; d < 7; d++ {
		if h.DiasSemana&(1<<d) != 0 {
			n++
		}
	}
	return n
}

// RutaEspecificaVehiculo derivación por vehículo de una ruta general. Hereda
// origen/destino/itinerario de la general; esos campos no son editables aquí.
type RutaEspecificaVehiculo struct {
	ID            string
	Codigo        string
	RutaGeneralID string
	VehiculoID    string
	ResolucionID  string

	Horarios           []Horario
	ParadasAdicionales []Localidad

	EstaActivo bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
