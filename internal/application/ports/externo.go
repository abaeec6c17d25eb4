package ports

import (
	"context"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// SincronizadorDocumentos puerto de publicación hacia la plataforma externa de
// interoperabilidad. El envío es best-effort: el worker de la cola registra el
// fallo y la tarea queda en ERROR para reintentarla.
type SincronizadorDocumentos interface {
	EnviarDocumento(ctx context.Context, d *entity.Documento) error
}
