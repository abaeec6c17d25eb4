// Package excel implementa la lectura de planillas de carga masiva y la
// escritura del reporte de documentos usando excelize.
package excel

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/drtc-puno/sirret-api/internal/application/carga"
	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// LeerFilas parsea la primera hoja de un .xlsx. La primera fila es la
// cabecera; sus celdas se normalizan a claves de columna (ver
// carga.NormalizarCabecera). Filas totalmente vacías se descartan.
func LeerFilas(r io.Reader) ([]carga.Fila, error) {
	libro, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir planilla: %w", domain.ErrEntradaInvalida)
	}
	defer libro.Close()

	hojas := libro.GetSheetList()
	if len(hojas) == 0 {
		return nil, fmt.Errorf("planilla sin hojas: %w", domain.ErrEntradaInvalida)
	}

	filas, err := libro.GetRows(hojas[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", hojas[0], err)
	}
	if len(filas) < 2 {
		return nil, fmt.Errorf("planilla sin filas de datos: %w", domain.ErrEntradaInvalida)
	}

	cabecera := make([]string, len(filas[0]))
	for i, celda := range filas[0] {
		cabecera[i] = carga.NormalizarCabecera(celda)
	}

	var resultado []carga.Fila
	for i, fila := range filas[1:] {
		celdas := make(map[string]string, len(cabecera))
		vacia := true
		for j, valor := range fila {
			if j >= len(cabecera) || cabecera[j] == "" {
				continue
			}
			celdas[cabecera[j]] = valor
			if valor != "" {
				vacia = false
			}
		}
		if vacia {
			continue
		}
		resultado = append(resultado, carga.Fila{Indice: i + 1, Celdas: celdas})
	}
	return resultado, nil
}

// ── Reporte ───────────────────────────────────────────────────────────────────

// GeneradorExcelize implementa ports.GeneradorReporteExcel.
type GeneradorExcelize struct{}

var _ ports.GeneradorReporteExcel = (*GeneradorExcelize)(nil)

// NewGeneradorExcelize construye el generador.
func NewGeneradorExcelize() *GeneradorExcelize { return &GeneradorExcelize{} }

// GenerarReporteDocumentos produce el .xlsx con una fila por documento.
func (g *GeneradorExcelize) GenerarReporteDocumentos(_ context.Context, docs []*entity.Documento) ([]byte, error) {
	libro := excelize.NewFile()
	defer libro.Close()

	const hoja = "Documentos"
	indice, err := libro.NewSheet(hoja)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	libro.SetActiveSheet(indice)
	if err := libro.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: eliminar hoja por defecto: %w", err)
	}

	cabecera := []string{
		"N° Expediente", "Asunto", "Remitente", "Doc. Remitente",
		"Estado", "Prioridad", "Área actual", "Folios", "Fecha registro",
	}
	for i, titulo := range cabecera {
		celda, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := libro.SetCellValue(hoja, celda, titulo); err != nil {
			return nil, fmt.Errorf("excel: escribir cabecera: %w", err)
		}
	}

	negrita, err := libro.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		fin, _ := excelize.CoordinatesToCellName(len(cabecera), 1)
		_ = libro.SetCellStyle(hoja, "A1", fin, negrita)
	}

	for i, d := range docs {
		valores := []any{
			d.NumeroExpediente,
			d.Asunto,
			d.Remitente.Nombre,
			d.Remitente.TipoDocumento + " " + d.Remitente.NumeroDocumento,
			d.Estado,
			d.Prioridad,
			d.AreaActualID,
			d.Folios,
			d.CreatedAt.Format("02/01/2006"),
		}
		for j, v := range valores {
			celda, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := libro.SetCellValue(hoja, celda, v); err != nil {
				return nil, fmt.Errorf("excel: escribir fila %d: %w", i+1, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := libro.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
