package entity

import "time"

// Estados de empresa. Los cambios de estado requieren motivo documentado.
const (
	EmpresaHabilitada = "HABILITADA"
	EmpresaEnTramite  = "EN_TRAMITE"
	EmpresaSuspendida = "SUSPENDIDA"
	EmpresaCancelada  = "CANCELADA"
)

// transicionesEmpresa tabla {desde -> hacia permitidos}.
var transicionesEmpresa = map[string][]string{
	EmpresaEnTramite:  {EmpresaHabilitada, EmpresaCancelada},
	EmpresaHabilitada: {EmpresaSuspendida, EmpresaCancelada},
	EmpresaSuspendida: {EmpresaHabilitada, EmpresaCancelada},
	EmpresaCancelada:  {},
}

// EstadoEmpresaValido informa si el estado pertenece al catálogo.
func EstadoEmpresaValido(s string) bool {
	_, ok := transicionesEmpresa[s]
	return ok
}

// PuedeTransicionarEmpresa informa si el cambio desde->hacia está permitido.
func PuedeTransicionarEmpresa(desde, hacia string) bool {
	for _, h := range transicionesEmpresa[desde] {
		if h == hacia {
			return true
		}
	}
	return false
}

// RepresentanteLegal datos del representante legal de la empresa.
type RepresentanteLegal struct {
	DNI             string
	Nombres         string
	ApellidoPaterno string
	ApellidoMaterno string
}

// DatosSunat snapshot de la consulta RUC al momento del registro.
type DatosSunat struct {
	Valido        bool
	RazonSocial   string
	Estado        string // ACTIVO, BAJA PROVISIONAL, etc. según SUNAT
	Condicion     string // HABIDO, NO HABIDO
	Direccion     string
	FechaConsulta time.Time
}

// RazonSocial razón social principal más variantes normalizadas
// (sin tildes, mayúsculas) usadas para búsqueda.
type RazonSocial struct {
	Principal string
	SUNAT     string // tal como la devuelve SUNAT, si difiere
	Minimo    string // variante normalizada para matching
}

// Empresa empresa de transporte registrada ante la DRTC.
// Las listas *Ids son caché desnormalizado; la referencia en la entidad
// apuntada es la fuente de verdad y la reconciliación puede reconstruirlas.
type Empresa struct {
	ID              string
	RUC             string // 11 dígitos, único
	RazonSocial     RazonSocial
	DireccionFiscal string
	Representante   RepresentanteLegal
	Telefono        string
	Email           string
	Estado          string // ver constantes Empresa*
	MotivoEstado    string // motivo del último cambio de estado
	DatosSunat      *DatosSunat

	ResolucionesIds []string
	VehiculosIds    []string
	RutasIds        []string

	EstaActivo bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
