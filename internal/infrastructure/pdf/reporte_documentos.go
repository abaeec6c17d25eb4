// Package pdf implementa el reporte imprimible de documentos de Mesa de
// Partes usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: DRTC Puno + título del reporte  │  Fecha emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Expediente | Asunto | Remitente | Estado | Prior.    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: total de documentos listados                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

var (
	colorPrimario = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGris     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// GeneradorMaroto implementa ports.GeneradorReportePDF.
type GeneradorMaroto struct{}

var _ ports.GeneradorReportePDF = (*GeneradorMaroto)(nil)

// NewGeneradorMaroto construye el generador.
func NewGeneradorMaroto() *GeneradorMaroto { return &GeneradorMaroto{} }

// GenerarReporteDocumentos genera el PDF y devuelve sus bytes.
func (g *GeneradorMaroto) GenerarReporteDocumentos(_ context.Context, docs []*entity.Documento) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Documentos - Mesa de Partes", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(cabeceraReporte())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.5}))
	m.AddRows(cabeceraTabla())
	for _, d := range docs {
		m.AddRows(filaDocumento(d))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGris, Thickness: 0.3}))
	m.AddRows(pieReporte(len(docs)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// cabeceraReporte: institución (izq) y fecha de emisión (der).
func cabeceraReporte() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(8).Add(
			text.New("DRTC PUNO - MESA DE PARTES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimario, Top: 1,
			}),
			text.New("Reporte de documentos registrados", props.Text{
				Size: 9, Top: 9, Color: colorGris,
			}),
		),
		col.New(4).Add(
			text.New("Emitido: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGris,
			}),
		),
	)
}

func cabeceraTabla() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimario, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Expediente", 2, align.Left),
		h("Asunto", 4, align.Left),
		h("Remitente", 3, align.Left),
		h("Estado", 2, align.Center),
		h("Prior.", 1, align.Center),
	)
}

func filaDocumento(d *entity.Documento) core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New(d.NumeroExpediente, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1,
		})),
		col.New(4).Add(text.New(recortar(d.Asunto, 60), props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1,
		})),
		col.New(3).Add(text.New(recortar(d.Remitente.Nombre, 40), props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1,
		})),
		col.New(2).Add(text.New(d.Estado, props.Text{
			Size: 8, Align: align.Center, Top: 1,
		})),
		col.New(1).Add(text.New(d.Prioridad, props.Text{
			Size: 7, Align: align.Center, Top: 1,
		})),
	)
}

func pieReporte(total int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de documentos: %d", total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
			Color: colorPrimario, Top: 2,
		}),
	))
}

// recortar limita el texto al ancho de la celda sin partir runas.
func recortar(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
