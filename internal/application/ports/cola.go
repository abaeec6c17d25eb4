package ports

import (
	"context"
	"time"
)

// Nombres de tareas reconocidas por la cola.
const (
	TareaReporteExcel    = "generate_report_excel"
	TareaReportePDF      = "generate_report_pdf"
	TareaProcesarAdjunto = "process_attachment"
	TareaSincronizarDoc  = "sync_external_document"
	TareaNotificarMasivo = "bulk_notify"
)

// Estados de una tarea en segundo plano.
const (
	TareaPendiente  = "PENDIENTE"
	TareaEjecutando = "EJECUTANDO"
	TareaCompletada = "COMPLETADA"
	TareaError      = "ERROR"
	TareaCancelada  = "CANCELADA"
)

// Tarea estado observable de un trabajo encolado.
type Tarea struct {
	ID         string
	Nombre     string
	Estado     string
	Resultado  []byte // bytes del reporte u otro producto, si aplica
	Error      string
	EncoladaEn time.Time
	InicioEn   *time.Time
	FinEn      *time.Time
}

// Cola puerto del despachador de tareas en segundo plano.
//
// Contrato de degradación: si Disponible() es false, el caller ejecuta el
// mismo trabajo en forma síncrona y responde con el mismo contrato, sin
// task-id. Los fallos de la cola nunca se propagan como errores de request.
type Cola interface {
	// Encolar registra el trabajo y devuelve su task-id.
	Encolar(ctx context.Context, nombre string, args map[string]string) (string, error)
	Estado(ctx context.Context, id string) (*Tarea, error)
	Cancelar(ctx context.Context, id string) error
	Disponible() bool
}
