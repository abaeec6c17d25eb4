package dto

import "time"

// RemitenteDTO persona o entidad que presenta el documento.
type RemitenteDTO struct {
	TipoDocumento   string `json:"tipo_documento"` // DNI | RUC | CE
	NumeroDocumento string `json:"numero_documento"`
	Nombre          string `json:"nombre"`
	Email           string `json:"email,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
}

// CreateDocumentoRequest registro en Mesa de Partes.
type CreateDocumentoRequest struct {
	TipoDocumentoID string       `json:"tipo_documento_id"`
	Remitente       RemitenteDTO `json:"remitente"`
	Asunto          string       `json:"asunto"`
	Folios          int          `json:"folios"`
	Prioridad       string       `json:"prioridad"`
	AreaDestinoID   string       `json:"area_destino_id"`
	FechaLimite     string       `json:"fecha_limite"` // opcional
}

// AdjuntoRequest metadatos del archivo anexado a un documento.
type AdjuntoRequest struct {
	Nombre    string `json:"nombre"`
	Ruta      string `json:"ruta"`
	TamanioKB int64  `json:"tamanio_kb"`
}

// AdjuntoResponse representación HTTP de un adjunto.
type AdjuntoResponse struct {
	ID         string    `json:"id"`
	Nombre     string    `json:"nombre"`
	Ruta       string    `json:"ruta"`
	TamanioKB  int64     `json:"tamanio_kb"`
	Verificado bool      `json:"verificado"`
	SubidoEn   time.Time `json:"subido_en"`
}

// NotificarMasivoRequest aviso difundido a varias áreas a la vez.
type NotificarMasivoRequest struct {
	Mensaje string   `json:"mensaje"`
	Areas   []string `json:"areas"`
}

// DocumentoResponse representación HTTP de un documento.
type DocumentoResponse struct {
	ID               string            `json:"id"`
	NumeroExpediente string            `json:"numero_expediente"`
	TipoDocumentoID  string            `json:"tipo_documento_id"`
	Remitente        RemitenteDTO      `json:"remitente"`
	Asunto           string            `json:"asunto"`
	Folios           int               `json:"folios"`
	Estado           string            `json:"estado"`
	Prioridad        string            `json:"prioridad"`
	AreaActualID     string            `json:"area_actual_id"`
	FechaLimite      *time.Time        `json:"fecha_limite,omitempty"`
	Adjuntos         []AdjuntoResponse `json:"adjuntos,omitempty"`
	RegistradoPor    string            `json:"registrado_por"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// DocumentoListResponse listado paginado.
type DocumentoListResponse struct {
	Items []DocumentoResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// DerivarDocumentoRequest pase hacia otra área.
type DerivarDocumentoRequest struct {
	AreaDestinoID string `json:"area_destino_id"`
	Instrucciones string `json:"instrucciones"`
}

// AtenderDerivacionRequest atención de una derivación, con encadenamiento
// opcional hacia una siguiente área.
type AtenderDerivacionRequest struct {
	Observaciones               string `json:"observaciones"`
	RequiereDerivacionAdicional bool   `json:"requiere_derivacion_adicional"`
	SiguienteAreaID             string `json:"siguiente_area_id"`
	Instrucciones               string `json:"instrucciones"`
}

// RechazarDerivacionRequest rechazo con motivo obligatorio.
type RechazarDerivacionRequest struct {
	Motivo string `json:"motivo"`
}

// DerivacionResponse representación HTTP de una derivación.
type DerivacionResponse struct {
	ID              string     `json:"id"`
	DocumentoID     string     `json:"documento_id"`
	AreaOrigenID    string     `json:"area_origen_id"`
	AreaDestinoID   string     `json:"area_destino_id"`
	Estado          string     `json:"estado"`
	Instrucciones   string     `json:"instrucciones,omitempty"`
	MotivoRechazo   string     `json:"motivo_rechazo,omitempty"`
	UsuarioDeriva   string     `json:"usuario_deriva"`
	UsuarioRecibe   string     `json:"usuario_recibe,omitempty"`
	UsuarioAtiende  string     `json:"usuario_atiende,omitempty"`
	FechaDerivacion time.Time  `json:"fecha_derivacion"`
	FechaRecepcion  *time.Time `json:"fecha_recepcion,omitempty"`
	FechaAtencion   *time.Time `json:"fecha_atencion,omitempty"`
}

// ArchivarDocumentoRequest archivamiento de un documento atendido.
type ArchivarDocumentoRequest struct {
	Clasificacion     string `json:"clasificacion"`
	PoliticaRetencion string `json:"politica_retencion"`
	Observaciones     string `json:"observaciones"`
}

// ArchivoResponse representación HTTP de un registro de archivo.
type ArchivoResponse struct {
	ID                string     `json:"id"`
	DocumentoID       string     `json:"documento_id"`
	Clasificacion     string     `json:"clasificacion"`
	CodigoUbicacion   string     `json:"codigo_ubicacion"`
	PoliticaRetencion string     `json:"politica_retencion"`
	FechaArchivo      time.Time  `json:"fecha_archivo"`
	FechaExpiracion   *time.Time `json:"fecha_expiracion_retencion,omitempty"`
	ArchivadoPor      string     `json:"archivado_por"`
}

// TareaResponse estado observable de una tarea en segundo plano.
type TareaResponse struct {
	TaskID     string     `json:"task_id,omitempty"` // vacío cuando se ejecutó síncrono
	Nombre     string     `json:"nombre"`
	Estado     string     `json:"estado"`
	Error      string     `json:"error,omitempty"`
	EncoladaEn time.Time  `json:"encolada_en,omitempty"`
	FinEn      *time.Time `json:"fin_en,omitempty"`
}
