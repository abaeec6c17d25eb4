package entity

import "time"

// Estados de un documento de Mesa de Partes. El estado avanza en forma
// monótona REGISTRADO → EN_PROCESO → ATENDIDO → ARCHIVADO, con la única
// vuelta ARCHIVADO → EN_PROCESO por restauración.
const (
	DocumentoRegistrado = "REGISTRADO"
	DocumentoEnProceso  = "EN_PROCESO"
	DocumentoAtendido   = "ATENDIDO"
	DocumentoArchivado  = "ARCHIVADO"
)

var transicionesDocumento = map[string][]string{
	DocumentoRegistrado: {DocumentoEnProceso},
	DocumentoEnProceso:  {DocumentoAtendido},
	DocumentoAtendido:   {DocumentoArchivado},
	DocumentoArchivado:  {DocumentoEnProceso}, // restauración desde archivo
}

// PuedeTransicionarDocumento informa si el cambio desde->hacia está permitido.
func PuedeTransicionarDocumento(desde, hacia string) bool {
	for _, h := range transicionesDocumento[desde] {
		if h == hacia {
			return true
		}
	}
	return false
}

// Prioridades de atención.
const (
	PrioridadNormal  = "NORMAL"
	PrioridadAlta    = "ALTA"
	PrioridadUrgente = "URGENTE"
)

// PrioridadValida informa si la prioridad pertenece al catálogo.
func PrioridadValida(s string) bool {
	return s == PrioridadNormal || s == PrioridadAlta || s == PrioridadUrgente
}

// Remitente persona o entidad que presenta el documento.
type Remitente struct {
	TipoDocumento   string // DNI | RUC | CE
	NumeroDocumento string
	Nombre          string
	Email           string
	Telefono        string
}

// Adjunto archivo anexado al documento. Verificado lo marca la tarea de
// procesamiento tras validar extensión y tamaño declarados.
type Adjunto struct {
	ID         string
	Nombre     string
	Ruta       string
	TamanioKB  int64
	Verificado bool
	SubidoEn   time.Time
}

// Documento expediente de Mesa de Partes. NumeroExpediente es la secuencia
// anual EXP-YYYY-NNNN asignada atómicamente al registrar.
type Documento struct {
	ID               string
	NumeroExpediente string
	TipoDocumentoID  string // oficio, solicitud, memorial...
	Remitente        Remitente
	Asunto           string
	Folios           int
	Estado           string
	Prioridad        string
	AreaActualID     string
	FechaLimite      *time.Time
	Adjuntos         []Adjunto
	RegistradoPor    string

	EstaActivo bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ── Derivación ────────────────────────────────────────────────────────────────

// Estados de una derivación entre áreas.
const (
	DerivacionPendiente = "PENDIENTE"
	DerivacionRecibida  = "RECIBIDO"
	DerivacionAtendida  = "ATENDIDO"
	DerivacionRechazada = "RECHAZADO"
)

var transicionesDerivacion = map[string][]string{
	DerivacionPendiente: {DerivacionRecibida, DerivacionRechazada},
	DerivacionRecibida:  {DerivacionAtendida},
	DerivacionAtendida:  {},
	DerivacionRechazada: {},
}

// PuedeTransicionarDerivacion informa si el cambio desde->hacia está permitido.
func PuedeTransicionarDerivacion(desde, hacia string) bool {
	for _, h := range transicionesDerivacion[desde] {
		if h == hacia {
			return true
		}
	}
	return false
}

// DerivacionAbierta informa si la derivación aún ocupa el cupo del área
// destino (a lo sumo una PENDIENTE/RECIBIDO por destino).
func DerivacionAbierta(estado string) bool {
	return estado == DerivacionPendiente || estado == DerivacionRecibida
}

// Derivacion pase de un documento entre áreas internas.
type Derivacion struct {
	ID            string
	DocumentoID   string
	AreaOrigenID  string
	AreaDestinoID string
	Estado        string
	Instrucciones string
	MotivoRechazo string

	UsuarioDeriva  string
	UsuarioRecibe  string
	UsuarioAtiende string

	FechaDerivacion time.Time
	FechaRecepcion  *time.Time
	FechaAtencion   *time.Time

	EstaActivo bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ── Archivo ───────────────────────────────────────────────────────────────────

// Políticas de retención del archivo central.
const (
	RetencionUnAnio     = "UN_ANO"
	RetencionTresAnios  = "TRES_ANOS"
	RetencionCincoAnios = "CINCO_ANOS"
	RetencionDiezAnios  = "DIEZ_ANOS"
	RetencionPermanente = "PERMANENTE"
)

// AniosRetencion devuelve los años de la política y ok=false si la política
// no existe. PERMANENTE devuelve 0 con ok=true (sin expiración).
func AniosRetencion(politica string) (int, bool) {
	switch politica {
	case RetencionUnAnio:
		return 1, true
	case RetencionTresAnios:
		return 3, true
	case RetencionCincoAnios:
		return 5, true
	case RetencionDiezAnios:
		return 10, true
	case RetencionPermanente:
		return 0, true
	}
	return 0, false
}

// CalcularExpiracionRetencion devuelve fecha de archivo + años de la política;
// nil para PERMANENTE.
func CalcularExpiracionRetencion(politica string, fechaArchivo time.Time) *time.Time {
	anios, ok := AniosRetencion(politica)
	if !ok || anios == 0 {
		return nil
	}
	exp := fechaArchivo.AddDate(anios, 0, 0)
	return &exp
}

// Archivo registro de archivamiento de un documento atendido.
type Archivo struct {
	ID                string
	DocumentoID       string
	Clasificacion     string // serie documental; define el prefijo de ubicación
	CodigoUbicacion   string // {prefijo}-{seq}, generado
	PoliticaRetencion string
	FechaArchivo      time.Time
	FechaExpiracion   *time.Time // nil = PERMANENTE
	ArchivadoPor      string
	Observaciones     string

	EstaActivo bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
