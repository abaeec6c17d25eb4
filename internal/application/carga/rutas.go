package carga

import (
	"context"
	"strings"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

// Columnas de la hoja de rutas.
const (
	colCodigoRuta   = "codigo_ruta"
	colOrigen       = "origen"
	colDestino      = "destino"
	colItinerario   = "itinerario"
	colFrecuencias  = "frecuencias"
	colTipoServicio = "tipo_servicio"
)

// ValidarRutas fase 1 de la carga de rutas.
func (uc *UseCase) ValidarRutas(ctx context.Context, filas []Fila) (*dto.ReporteCarga, error) {
	d, _, err := uc.validarRutas(ctx, filas)
	if err != nil {
		return nil, err
	}
	return reporte("rutas", len(filas), d, false, nil), nil
}

// CargarRutas fase 1 + fase 2.
func (uc *UseCase) CargarRutas(ctx context.Context, filas []Fila) (*dto.ReporteCarga, error) {
	d, requests, err := uc.validarRutas(ctx, filas)
	if err != nil {
		return nil, err
	}
	var creados []string
	for _, fr := range requests {
		resp, err := uc.rutasUC.Create(ctx, fr.req)
		if err != nil {
			d.errorEn(fr.fila, fr.req.CodigoRuta, err.Error())
			continue
		}
		creados = append(creados, resp.ID)
	}
	return reporte("rutas", len(filas), d, true, creados), nil
}

type filaRuta struct {
	fila int
	req  dto.CreateRutaRequest
}

func (uc *UseCase) validarRutas(ctx context.Context, filas []Fila) (*diagnosticos, []filaRuta, error) {
	d := nuevosDiagnosticos()
	vistos := map[string]int{} // resolucionID|codigo -> fila del lote

	var out []filaRuta
	for _, f := range filas {
		clave := f.Campo(colCodigoRuta)
		if !requerir(d, f, clave, colRUC, colNumeroResolucion, colCodigoRuta, colOrigen, colDestino) {
			continue
		}
		codigo, err := validacion.NormalizarCodigoRuta(clave)
		if err != nil {
			d.errorEn(f.Indice, clave, err.Error())
			continue
		}

		ruc := f.Campo(colRUC)
		numero := strings.ToUpper(f.Campo(colNumeroResolucion))
		empresa, err := uc.empresas.GetByRUC(ctx, ruc)
		if err != nil {
			return nil, nil, err
		}
		if empresa == nil || !empresa.EstaActivo {
			d.errorEn(f.Indice, codigo, "RUC "+ruc+" no registrado")
			continue
		}
		resolucion, err := uc.resoluciones.GetByNumero(ctx, numero)
		if err != nil {
			return nil, nil, err
		}
		if resolucion == nil || !resolucion.EstaActivo {
			d.errorEn(f.Indice, codigo, "resolución "+numero+" no encontrada")
			continue
		}
		if resolucion.EmpresaID != empresa.ID {
			d.errorEn(f.Indice, codigo, "la resolución "+numero+" pertenece a otro RUC")
			continue
		}

		claveLote := resolucion.ID + "|" + codigo
		if primera, ok := vistos[claveLote]; ok {
			d.errorEn(f.Indice, codigo, "código repetido en el lote para la misma resolución (ver fila "+itoa(primera)+")")
			continue
		}
		vistos[claveLote] = f.Indice

		existe, err := uc.rutas.ExisteCodigoEnResolucion(ctx, resolucion.ID, codigo, "")
		if err != nil {
			return nil, nil, err
		}
		if existe {
			d.errorEn(f.Indice, codigo, "código "+codigo+" ya usado en la resolución "+numero)
			continue
		}

		origen := f.Campo(colOrigen)
		destino := f.Campo(colDestino)
		if validacion.NormalizarRazonSocial(origen) == validacion.NormalizarRazonSocial(destino) {
			d.errorEn(f.Indice, codigo, "origen y destino no pueden coincidir")
		}
		servicio := strings.ToUpper(f.Campo(colTipoServicio))
		if servicio != "" && !servicioValido(servicio) {
			d.errorEn(f.Indice, codigo, "tipo_servicio inválido: "+servicio)
		}
		if servicio == "" {
			servicio = entity.ServicioPersonas
			d.warningEn(f.Indice, codigo, "sin tipo_servicio; se asume PERSONAS")
		}

		if d.tieneError(f.Indice) {
			continue
		}
		out = append(out, filaRuta{
			fila: f.Indice,
			req: dto.CreateRutaRequest{
				CodigoRuta:   codigo,
				EmpresaID:    empresa.ID,
				ResolucionID: resolucion.ID,
				Origen:       dto.LocalidadDTO{Nombre: origen},
				Destino:      dto.LocalidadDTO{Nombre: destino},
				Itinerario:   parsearItinerario(f.Campo(colItinerario)),
				Frecuencias:  f.Campo(colFrecuencias),
				TipoServicio: servicio,
			},
		})
	}
	return d, out, nil
}

// parsearItinerario separa las escalas por punto y coma.
func parsearItinerario(s string) []dto.LocalidadDTO {
	if s == "" {
		return nil
	}
	var out []dto.LocalidadDTO
	for _, parte := range strings.Split(s, ";") {
		if nombre := strings.TrimSpace(parte); nombre != "" {
			out = append(out, dto.LocalidadDTO{Nombre: nombre})
		}
	}
	return out
}

func servicioValido(s string) bool {
	switch s {
	case entity.ServicioPersonas, entity.ServicioMercancias, entity.ServicioMixto, entity.ServicioTuristico:
		return true
	}
	return false
}
