package ports

import (
	"context"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// GeneradorReporteExcel produce el reporte tabular de documentos (.xlsx).
type GeneradorReporteExcel interface {
	GenerarReporteDocumentos(ctx context.Context, docs []*entity.Documento) ([]byte, error)
}

// GeneradorReportePDF produce el reporte imprimible de documentos.
type GeneradorReportePDF interface {
	GenerarReporteDocumentos(ctx context.Context, docs []*entity.Documento) ([]byte, error)
}
