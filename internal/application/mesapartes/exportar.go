package mesapartes

import (
	"context"
	"fmt"
	"time"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

// limiteExportacion tope de filas de un reporte.
const limiteExportacion = 10000

// ExportarExcel genera el reporte tabular de documentos. Con la cola
// disponible encola la tarea y devuelve su task-id; sin cola ejecuta el mismo
// trabajo en forma síncrona y devuelve los bytes directamente.
func (uc *UseCase) ExportarExcel(ctx context.Context, f repository.FiltroDocumentos) (*dto.TareaResponse, []byte, error) {
	return uc.exportar(ctx, ports.TareaReporteExcel, f)
}

// ExportarPDF ídem que ExportarExcel para el reporte imprimible.
func (uc *UseCase) ExportarPDF(ctx context.Context, f repository.FiltroDocumentos) (*dto.TareaResponse, []byte, error) {
	return uc.exportar(ctx, ports.TareaReportePDF, f)
}

func (uc *UseCase) exportar(ctx context.Context, nombre string, f repository.FiltroDocumentos) (*dto.TareaResponse, []byte, error) {
	if uc.cola != nil && uc.cola.Disponible() {
		id, err := uc.cola.Encolar(ctx, nombre, argumentosFiltro(f))
		if err == nil {
			return &dto.TareaResponse{TaskID: id, Nombre: nombre, Estado: ports.TareaPendiente}, nil, nil
		}
		// La cola nunca bloquea el request: se cae al camino síncrono.
		uc.log.Warn().Err(err).Str("tarea", nombre).Msg("encolado falló; se ejecuta síncrono")
	}

	b, err := uc.GenerarReporte(ctx, nombre, f)
	if err != nil {
		return nil, nil, err
	}
	return &dto.TareaResponse{Nombre: nombre, Estado: ports.TareaCompletada}, b, nil
}

// GenerarReporte cuerpo compartido entre el worker de la cola y el camino
// síncrono.
func (uc *UseCase) GenerarReporte(ctx context.Context, nombre string, f repository.FiltroDocumentos) ([]byte, error) {
	docs, err := uc.documentos.List(ctx, f, limiteExportacion, 0)
	if err != nil {
		return nil, err
	}
	switch nombre {
	case ports.TareaReporteExcel:
		if uc.excel == nil {
			return nil, fmt.Errorf("generador excel no configurado: %w", domain.ErrServicioExterno)
		}
		return uc.excel.GenerarReporteDocumentos(ctx, docs)
	case ports.TareaReportePDF:
		if uc.pdf == nil {
			return nil, fmt.Errorf("generador pdf no configurado: %w", domain.ErrServicioExterno)
		}
		return uc.pdf.GenerarReporteDocumentos(ctx, docs)
	}
	return nil, fmt.Errorf("tarea %q desconocida: %w", nombre, domain.ErrEntradaInvalida)
}

// EstadoTarea consulta el estado de una tarea encolada.
func (uc *UseCase) EstadoTarea(ctx context.Context, id string) (*dto.TareaResponse, error) {
	if uc.cola == nil {
		return nil, fmt.Errorf("cola deshabilitada: %w", domain.ErrNoEncontrado)
	}
	t, err := uc.cola.Estado(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return &dto.TareaResponse{
		TaskID:     t.ID,
		Nombre:     t.Nombre,
		Estado:     t.Estado,
		Error:      t.Error,
		EncoladaEn: t.EncoladaEn,
		FinEn:      t.FinEn,
	}, nil
}

// ResultadoTarea devuelve los bytes producidos por una tarea completada.
func (uc *UseCase) ResultadoTarea(ctx context.Context, id string) ([]byte, string, error) {
	if uc.cola == nil {
		return nil, "", fmt.Errorf("cola deshabilitada: %w", domain.ErrNoEncontrado)
	}
	t, err := uc.cola.Estado(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if t == nil {
		return nil, "", fmt.Errorf("tarea %s: %w", id, domain.ErrNoEncontrado)
	}
	if t.Estado != ports.TareaCompletada {
		return nil, t.Estado, fmt.Errorf("tarea %s aún %s: %w", id, t.Estado, domain.ErrConflicto)
	}
	return t.Resultado, t.Estado, nil
}

// CancelarTarea cancela una tarea pendiente.
func (uc *UseCase) CancelarTarea(ctx context.Context, id string) error {
	if uc.cola == nil {
		return fmt.Errorf("cola deshabilitada: %w", domain.ErrNoEncontrado)
	}
	return uc.cola.Cancelar(ctx, id)
}

// argumentosFiltro serializa el filtro como argumentos planos de la tarea.
func argumentosFiltro(f repository.FiltroDocumentos) map[string]string {
	args := map[string]string{}
	if f.Estado != "" {
		args["estado"] = f.Estado
	}
	if f.Prioridad != "" {
		args["prioridad"] = f.Prioridad
	}
	if f.AreaID != "" {
		args["area_id"] = f.AreaID
	}
	if f.Busqueda != "" {
		args["busqueda"] = f.Busqueda
	}
	if f.Desde != nil {
		args["desde"] = f.Desde.Format("2006-01-02")
	}
	if f.Hasta != nil {
		args["hasta"] = f.Hasta.Format("2006-01-02")
	}
	return args
}

// FiltroDesdeArgumentos inversa de argumentosFiltro; la usa el worker.
func FiltroDesdeArgumentos(args map[string]string) repository.FiltroDocumentos {
	f := repository.FiltroDocumentos{
		Estado:    args["estado"],
		Prioridad: args["prioridad"],
		AreaID:    args["area_id"],
		Busqueda:  args["busqueda"],
	}
	if v := parseFechaArg(args["desde"]); v != nil {
		f.Desde = v
	}
	if v := parseFechaArg(args["hasta"]); v != nil {
		f.Hasta = v
	}
	return f
}

func parseFechaArg(s string) *time.Time {
	if s == "" {
		return nil
	}
	v, err := validacion.ParseFecha(s)
	if err != nil {
		return nil
	}
	return &v
}
