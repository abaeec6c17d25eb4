package carga

import (
	"context"
	"strings"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

// Columnas de la hoja de resoluciones.
const (
	colNumeroResolucion = "numero_resolucion"
	colNumeroPadre      = "numero_resolucion_padre"
	colFechaEmision     = "fecha_emision"
	colVigenciaInicio   = "fecha_vigencia_inicio"
	colAniosVigencia    = "anios_vigencia"
	colTipoResolucion   = "tipo_resolucion"
	colTipoTramite      = "tipo_tramite"
	colDescripcion      = "descripcion"
	colEstado           = "estado"
)

// cadenaEstados pasos de transición desde EN_PROCESO hasta el estado objetivo
// de la hoja. Las filas sin estado quedan en VIGENTE.
var cadenaEstados = map[string][]string{
	entity.ResolucionEnProceso:  {},
	entity.ResolucionEmitida:    {entity.ResolucionEmitida},
	entity.ResolucionVigente:    {entity.ResolucionEmitida, entity.ResolucionVigente},
	entity.ResolucionSuspendida: {entity.ResolucionEmitida, entity.ResolucionVigente, entity.ResolucionSuspendida},
	entity.ResolucionVencida:    {entity.ResolucionEmitida, entity.ResolucionVigente, entity.ResolucionVencida},
	entity.ResolucionAnulada:    {entity.ResolucionAnulada},
	entity.ResolucionDadaDeBaja: {entity.ResolucionEmitida, entity.ResolucionVigente, entity.ResolucionDadaDeBaja},
}

// ValidarResoluciones fase 1 de la carga de resoluciones.
func (uc *UseCase) ValidarResoluciones(ctx context.Context, filas []Fila) (*dto.ReporteCarga, error) {
	d, _, err := uc.validarResoluciones(ctx, filas)
	if err != nil {
		return nil, err
	}
	return reporte("resoluciones", len(filas), d, false, nil), nil
}

// CargarResoluciones fase 1 + fase 2. Las filas se aplican en el orden de la
// hoja, de modo que un HIJO puede referenciar un PADRE definido más arriba en
// el mismo lote.
func (uc *UseCase) CargarResoluciones(ctx context.Context, filas []Fila) (*dto.ReporteCarga, error) {
	d, requests, err := uc.validarResoluciones(ctx, filas)
	if err != nil {
		return nil, err
	}
	var creados []string
	for _, fr := range requests {
		resp, err := uc.resolucionesUC.Create(ctx, fr.req)
		if err != nil {
			d.errorEn(fr.fila, fr.req.Numero, err.Error())
			continue
		}
		for _, paso := range cadenaEstados[fr.estado] {
			if _, err := uc.resolucionesUC.CambiarEstado(ctx, resp.ID, dto.CambiarEstadoResolucionRequest{
				Estado: paso,
				Motivo: "carga masiva",
			}); err != nil {
				d.warningEn(fr.fila, fr.req.Numero, "no se pudo llevar a "+fr.estado+": "+err.Error())
				break
			}
		}
		creados = append(creados, resp.ID)
	}
	return reporte("resoluciones", len(filas), d, true, creados), nil
}

type filaResolucion struct {
	fila   int
	estado string
	req    dto.CreateResolucionRequest
}

func (uc *UseCase) validarResoluciones(ctx context.Context, filas []Fila) (*diagnosticos, []filaResolucion, error) {
	d := nuevosDiagnosticos()
	vistos := map[string]int{}        // numero -> fila del lote
	padresLote := map[string]string{} // numero PADRE del lote -> RUC

	var out []filaResolucion
	for _, f := range filas {
		numero := strings.ToUpper(f.Campo(colNumeroResolucion))
		if !requerir(d, f, numero, colNumeroResolucion, colRUC, colFechaEmision, colTipoResolucion, colTipoTramite) {
			continue
		}
		if err := validacion.ValidarNumeroResolucion(numero); err != nil {
			d.errorEn(f.Indice, numero, err.Error())
			continue
		}
		if primera, ok := vistos[numero]; ok {
			d.errorEn(f.Indice, numero, "número repetido en el lote (ver fila "+itoa(primera)+")")
			continue
		}
		vistos[numero] = f.Indice

		ruc := f.Campo(colRUC)
		if err := validacion.ValidarRUC(ruc); err != nil {
			d.errorEn(f.Indice, numero, err.Error())
			continue
		}
		empresa, err := uc.empresas.GetByRUC(ctx, ruc)
		if err != nil {
			return nil, nil, err
		}
		if empresa == nil || !empresa.EstaActivo {
			d.errorEn(f.Indice, numero, "RUC "+ruc+" no registrado")
			continue
		}

		if _, err := validacion.ParseFecha(f.Campo(colFechaEmision)); err != nil {
			d.errorEn(f.Indice, numero, "fecha_emision: "+err.Error())
		}

		existente, err := uc.resoluciones.GetByNumero(ctx, numero)
		if err != nil {
			return nil, nil, err
		}
		if existente != nil {
			d.errorEn(f.Indice, numero, "número ya registrado")
			continue
		}

		tipo := strings.ToUpper(f.Campo(colTipoResolucion))
		tramite := strings.ToUpper(f.Campo(colTipoTramite))
		if !entity.TipoTramiteValido(tramite) {
			d.errorEn(f.Indice, numero, "tipo_tramite inválido: "+tramite)
		}

		anios := 0
		switch tipo {
		case entity.ResolucionPadre:
			anios = atoi(f.Campo(colAniosVigencia))
			if anios != 4 && anios != 10 {
				d.errorEn(f.Indice, numero, "anios_vigencia debe ser 4 o 10")
			}
			if _, err := validacion.ParseFecha(f.Campo(colVigenciaInicio)); err != nil {
				d.errorEn(f.Indice, numero, "fecha_vigencia_inicio: "+err.Error())
			}
			padresLote[numero] = ruc

		case entity.ResolucionHijo:
			if f.Campo(colAniosVigencia) != "" || f.Campo(colVigenciaInicio) != "" {
				d.errorEn(f.Indice, numero, "un HIJO hereda la vigencia del PADRE; no debe fijarla")
			}
			numeroPadre := strings.ToUpper(f.Campo(colNumeroPadre))
			if numeroPadre == "" {
				d.errorEn(f.Indice, numero, "un HIJO requiere numero_resolucion_padre")
				break
			}
			if rucPadre, enLote := padresLote[numeroPadre]; enLote {
				if rucPadre != ruc {
					d.errorEn(f.Indice, numero, "el PADRE "+numeroPadre+" del lote pertenece a otro RUC")
				}
			} else {
				padre, err := uc.resoluciones.GetByNumero(ctx, numeroPadre)
				if err != nil {
					return nil, nil, err
				}
				switch {
				case padre == nil || !padre.EstaActivo:
					d.errorEn(f.Indice, numero, "PADRE "+numeroPadre+" no encontrado")
				case !padre.EsPadre():
					d.errorEn(f.Indice, numero, numeroPadre+" no es una resolución PADRE")
				case padre.EmpresaID != empresa.ID:
					d.errorEn(f.Indice, numero, "el PADRE "+numeroPadre+" pertenece a otra empresa")
				}
			}

		default:
			d.errorEn(f.Indice, numero, "tipo_resolucion inválido: "+tipo)
		}

		estado := strings.ToUpper(f.Campo(colEstado))
		if estado == "" {
			estado = entity.ResolucionVigente
		}
		if !entity.EstadoResolucionValido(estado) {
			d.errorEn(f.Indice, numero, "estado inválido: "+estado)
		}

		if d.tieneError(f.Indice) {
			continue
		}
		out = append(out, filaResolucion{
			fila:   f.Indice,
			estado: estado,
			req: dto.CreateResolucionRequest{
				Numero:              numero,
				TipoResolucion:      tipo,
				TipoTramite:         tramite,
				EmpresaID:           empresa.ID,
				Descripcion:         f.Campo(colDescripcion),
				FechaEmision:        f.Campo(colFechaEmision),
				FechaVigenciaInicio: f.Campo(colVigenciaInicio),
				AniosVigencia:       anios,
				PadreNumero:         strings.ToUpper(f.Campo(colNumeroPadre)),
			},
		})
	}
	return d, out, nil
}
