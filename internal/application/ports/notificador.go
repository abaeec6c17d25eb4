package ports

import "time"

// Tipos de eventos del bus de notificaciones de Mesa de Partes.
const (
	EventoDocumentoDerivado      = "documento_derivado"
	EventoDocumentoRecibido      = "documento_recibido"
	EventoDocumentoUrgente       = "documento_urgente"
	EventoDocumentoProximoVencer = "documento_proximo_vencer"
	EventoDocumentoAtendido      = "documento_atendido"
	EventoAvisoGeneral           = "aviso_general"
)

// Evento notificación tipada dirigida a un usuario o a un área.
type Evento struct {
	Tipo        string    `json:"tipo"`
	DocumentoID string    `json:"documento_id"`
	Expediente  string    `json:"numero_expediente"`
	UsuarioID   string    `json:"usuario_id,omitempty"` // destino por usuario
	AreaID      string    `json:"area_id,omitempty"`    // destino por área
	Mensaje     string    `json:"mensaje"`
	Fecha       time.Time `json:"fecha"`
}

// Notificador puerto del bus de notificaciones. La entrega es best-effort:
// publicar hacia suscriptores desconectados no falla.
type Notificador interface {
	Publicar(e Evento)
}

// NotificadorNulo implementación no-op (bus deshabilitado y tests).
type NotificadorNulo struct{}

func (NotificadorNulo) Publicar(Evento) {}
