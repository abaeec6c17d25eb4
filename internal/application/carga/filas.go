// Package carga implementa la carga masiva tabular en dos fases: la fase 1
// valida y normaliza todas las filas sin escribir nada (apta para previsualizar
// cuantas veces se quiera); la fase 2 aplica cada fila admisible a través del
// motor correspondiente, fila por fila, sin rollback global.
package carga

import (
	"sort"
	"strconv"
	"strings"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

// Fila fila cruda de una hoja tabular. Las claves de Celdas son las cabeceras
// normalizadas por NormalizarCabecera.
type Fila struct {
	Indice int // 1-based, sin contar la cabecera
	Celdas map[string]string
}

// Campo devuelve el valor recortado de una columna, o "" si no existe.
func (f Fila) Campo(clave string) string {
	return strings.TrimSpace(f.Celdas[clave])
}

// NormalizarCabecera lleva una cabecera de hoja a su clave canónica: quita el
// marcador de obligatorio "(*)", tildes y mayúsculas, y colapsa espacios y
// guiones a guion bajo. "Razón Social (*)" -> "razon_social".
func NormalizarCabecera(s string) string {
	s = strings.ReplaceAll(s, "(*)", "")
	s = validacion.NormalizarRazonSocial(s) // sin tildes, mayúsculas, espacios colapsados
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), "_")
}

// diagnosticos acumulador de diagnósticos por fila. Un ERROR en cualquier
// mensaje domina sobre WARNING.
type diagnosticos struct {
	porFila map[int]*dto.DiagnosticoFila
}

func nuevosDiagnosticos() *diagnosticos {
	return &diagnosticos{porFila: map[int]*dto.DiagnosticoFila{}}
}

func (d *diagnosticos) agregar(fila int, clave, severidad, mensaje string) {
	dg, ok := d.porFila[fila]
	if !ok {
		dg = &dto.DiagnosticoFila{Fila: fila, Clave: clave, Severidad: severidad}
		d.porFila[fila] = dg
	}
	if dg.Clave == "" {
		dg.Clave = clave
	}
	if severidad == dto.SeveridadError {
		dg.Severidad = dto.SeveridadError
	}
	dg.Mensajes = append(dg.Mensajes, mensaje)
}

func (d *diagnosticos) errorEn(fila int, clave, mensaje string) {
	d.agregar(fila, clave, dto.SeveridadError, mensaje)
}

func (d *diagnosticos) warningEn(fila int, clave, mensaje string) {
	d.agregar(fila, clave, dto.SeveridadWarning, mensaje)
}

// tieneError informa si la fila quedó inadmisible.
func (d *diagnosticos) tieneError(fila int) bool {
	dg, ok := d.porFila[fila]
	return ok && dg.Severidad == dto.SeveridadError
}

// admisible informa si ninguna fila tiene severidad ERROR.
func (d *diagnosticos) admisible() bool {
	for _, dg := range d.porFila {
		if dg.Severidad == dto.SeveridadError {
			return false
		}
	}
	return true
}

// lista devuelve los diagnósticos ordenados por fila.
func (d *diagnosticos) lista() []dto.DiagnosticoFila {
	out := make([]dto.DiagnosticoFila, 0, len(d.porFila))
	for _, dg := range d.porFila {
		out = append(out, *dg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fila < out[j].Fila })
	return out
}

// reporte arma el resultado final de una carga.
func reporte(entidad string, total int, d *diagnosticos, aplicado bool, creados []string) *dto.ReporteCarga {
	omitidas := 0
	for _, dg := range d.porFila {
		if dg.Severidad == dto.SeveridadError {
			omitidas++
		}
	}
	return &dto.ReporteCarga{
		Entidad:       entidad,
		TotalFilas:    total,
		Admisible:     d.admisible(),
		Aplicado:      aplicado,
		CreadosIds:    creados,
		FilasOmitidas: omitidas,
		Diagnosticos:  d.lista(),
	}
}

func itoa(n int) string { return strconv.Itoa(n) }

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// requerir valida presencia de columnas obligatorias sobre una fila.
func requerir(d *diagnosticos, f Fila, clave string, columnas ...string) bool {
	ok := true
	for _, col := range columnas {
		if f.Campo(col) == "" {
			d.errorEn(f.Indice, clave, "columna obligatoria vacía: "+col)
			ok = false
		}
	}
	return ok
}
