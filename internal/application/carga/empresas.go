package carga

import (
	"context"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

// Columnas de la hoja de empresas (cabeceras normalizadas).
const (
	colRUC             = "ruc"
	colRazonSocial     = "razon_social"
	colDireccionFiscal = "direccion_fiscal"
	colRepDNI          = "dni_representante"
	colRepNombres      = "nombres_representante"
	colRepApePaterno   = "apellido_paterno_representante"
	colRepApeMaterno   = "apellido_materno_representante"
	colTelefono        = "telefono"
	colEmail           = "email"
)

// ValidarEmpresas fase 1 de la carga de empresas. No escribe nada.
func (uc *UseCase) ValidarEmpresas(ctx context.Context, filas []Fila) (*dto.ReporteCarga, error) {
	d, _, err := uc.validarEmpresas(ctx, filas)
	if err != nil {
		return nil, err
	}
	return reporte("empresas", len(filas), d, false, nil), nil
}

// CargarEmpresas fase 1 + fase 2. Cada fila admisible se aplica de forma
// independiente; un fallo del motor degrada esa fila a ERROR y la carga
// continúa.
func (uc *UseCase) CargarEmpresas(ctx context.Context, filas []Fila) (*dto.ReporteCarga, error) {
	d, requests, err := uc.validarEmpresas(ctx, filas)
	if err != nil {
		return nil, err
	}
	var creados []string
	for _, fr := range requests {
		resp, err := uc.empresasUC.Create(ctx, fr.req)
		if err != nil {
			d.errorEn(fr.fila, fr.req.RUC, err.Error())
			continue
		}
		creados = append(creados, resp.ID)
	}
	return reporte("empresas", len(filas), d, true, creados), nil
}

type filaEmpresa struct {
	fila int
	req  dto.CreateEmpresaRequest
}

func (uc *UseCase) validarEmpresas(ctx context.Context, filas []Fila) (*diagnosticos, []filaEmpresa, error) {
	d := nuevosDiagnosticos()
	vistos := map[string]int{} // RUC -> primera fila del lote

	var out []filaEmpresa
	for _, f := range filas {
		ruc := f.Campo(colRUC)
		if !requerir(d, f, ruc, colRUC, colRazonSocial) {
			continue
		}
		if err := validacion.ValidarRUC(ruc); err != nil {
			d.errorEn(f.Indice, ruc, err.Error())
			continue
		}
		if primera, ok := vistos[ruc]; ok {
			d.errorEn(f.Indice, ruc, "RUC repetido en el lote (ver fila "+itoa(primera)+")")
			continue
		}
		vistos[ruc] = f.Indice

		if dni := f.Campo(colRepDNI); dni != "" {
			if err := validacion.ValidarDNI(dni); err != nil {
				d.errorEn(f.Indice, ruc, "DNI del representante: "+err.Error())
			}
		}

		existente, err := uc.empresas.GetByRUC(ctx, ruc)
		if err != nil {
			return nil, nil, err
		}
		if existente != nil && existente.EstaActivo {
			d.errorEn(f.Indice, ruc, "RUC ya registrado")
			continue
		}

		if f.Campo(colDireccionFiscal) == "" {
			d.warningEn(f.Indice, ruc, "sin dirección fiscal")
		}
		if d.tieneError(f.Indice) {
			continue
		}
		out = append(out, filaEmpresa{
			fila: f.Indice,
			req: dto.CreateEmpresaRequest{
				RUC:                          ruc,
				RazonSocial:                  f.Campo(colRazonSocial),
				DireccionFiscal:              f.Campo(colDireccionFiscal),
				RepresentanteDNI:             f.Campo(colRepDNI),
				RepresentanteNombres:         f.Campo(colRepNombres),
				RepresentanteApellidoPaterno: f.Campo(colRepApePaterno),
				RepresentanteApellidoMaterno: f.Campo(colRepApeMaterno),
				Telefono:                     f.Campo(colTelefono),
				Email:                        f.Campo(colEmail),
			},
		})
	}
	return d, out, nil
}
