package ruta

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

// CreateEspecifica deriva una ruta específica de una ruta general para un
// vehículo. La resolución vigente del vehículo debe autorizar la ruta general;
// origen, destino e itinerario se heredan y no son editables en la específica.
func (uc *UseCase) CreateEspecifica(ctx context.Context, in dto.CreateRutaEspecificaRequest) (*dto.RutaEspecificaResponse, error) {
	if len(in.Horarios) == 0 {
		return nil, fmt.Errorf("se requiere al menos un horario: %w", domain.ErrHorarioInvalido)
	}
	horarios, err := validarHorarios(in.Horarios)
	if err != nil {
		return nil, err
	}

	v, err := uc.vehiculos.GetByID(ctx, in.VehiculoID)
	if err != nil {
		return nil, err
	}
	if v == nil || !v.EstaActivo {
		return nil, fmt.Errorf("vehículo %s: %w", in.VehiculoID, domain.ErrDependenciaFaltante)
	}
	if entity.EstadoVehiculoBloqueado(v.Estado) {
		return nil, fmt.Errorf("vehículo %s en estado %s: %w", v.Placa, v.Estado, domain.ErrConflicto)
	}
	if v.ResolucionID == "" {
		return nil, fmt.Errorf("vehículo %s sin resolución vigente: %w", v.Placa, domain.ErrRutaNoAutorizada)
	}

	general, err := uc.rutas.GetByID(ctx, in.RutaGeneralID)
	if err != nil {
		return nil, err
	}
	if general == nil || !general.EstaActivo {
		return nil, fmt.Errorf("ruta general %s: %w", in.RutaGeneralID, domain.ErrDependenciaFaltante)
	}

	r, err := uc.resoluciones.GetByID(ctx, v.ResolucionID)
	if err != nil {
		return nil, err
	}
	if r == nil || !r.TieneRuta(general.ID) {
		return nil, fmt.Errorf("la resolución del vehículo %s no autoriza la ruta %s: %w",
			v.Placa, general.CodigoRuta, domain.ErrRutaNoAutorizada)
	}

	hermanas, err := uc.especificas.ListByRutaGeneral(ctx, general.ID)
	if err != nil {
		return nil, err
	}

	ahora := time.Now()
	esp := &entity.RutaEspecificaVehiculo{
		ID:                 uuid.New().String(),
		Codigo:             fmt.Sprintf("%s-E%02d", general.CodigoRuta, len(hermanas)+1),
		RutaGeneralID:      general.ID,
		VehiculoID:         v.ID,
		ResolucionID:       v.ResolucionID,
		Horarios:           horarios,
		ParadasAdicionales: aItinerarioEntity(in.ParadasAdicionales),
		EstaActivo:         true,
		CreatedAt:          ahora,
		UpdatedAt:          ahora,
	}
	if err := uc.especificas.Create(ctx, esp); err != nil {
		return nil, err
	}
	return uc.aEspecificaResponse(esp, general), nil
}

// GetEspecificaByID obtiene una ruta específica con los campos heredados de
// su general.
func (uc *UseCase) GetEspecificaByID(ctx context.Context, id string) (*dto.RutaEspecificaResponse, error) {
	esp, err := uc.especificas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if esp == nil {
		return nil, nil
	}
	general, err := uc.rutas.GetByID(ctx, esp.RutaGeneralID)
	if err != nil {
		return nil, err
	}
	return uc.aEspecificaResponse(esp, general), nil
}

// ListEspecificasByVehiculo rutas específicas de un vehículo.
func (uc *UseCase) ListEspecificasByVehiculo(ctx context.Context, vehiculoID string) ([]dto.RutaEspecificaResponse, error) {
	list, err := uc.especificas.ListByVehiculo(ctx, vehiculoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RutaEspecificaResponse, 0, len(list))
	for _, esp := range list {
		general, err := uc.rutas.GetByID(ctx, esp.RutaGeneralID)
		if err != nil {
			return nil, err
		}
		out = append(out, *uc.aEspecificaResponse(esp, general))
	}
	return out, nil
}

// DeleteEspecifica baja lógica de una ruta específica.
func (uc *UseCase) DeleteEspecifica(ctx context.Context, id string) error {
	esp, err := uc.especificas.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if esp == nil {
		return fmt.Errorf("ruta específica %s: %w", id, domain.ErrNoEncontrado)
	}
	return uc.especificas.Delete(ctx, id)
}

// FiltroAvanzado filtra rutas por origen y destino exactos a la vez.
func (uc *UseCase) FiltroAvanzado(ctx context.Context, origen, destino string, page dto.PageRequest) ([]dto.RutaResponse, error) {
	page.DefaultPage()
	list, err := uc.rutas.Buscar(ctx, origen, 1000, 0)
	if err != nil {
		return nil, err
	}
	o := validacion.NormalizarRazonSocial(origen)
	d := validacion.NormalizarRazonSocial(destino)
	filtradas := make([]*entity.Ruta, 0, len(list))
	for _, r := range list {
		if o != "" && validacion.NormalizarRazonSocial(r.Origen.Nombre) != o {
			continue
		}
		if d != "" && validacion.NormalizarRazonSocial(r.Destino.Nombre) != d {
			continue
		}
		filtradas = append(filtradas, r)
	}
	ini := page.Offset
	if ini > len(filtradas) {
		ini = len(filtradas)
	}
	fin := ini + page.Limit
	if fin > len(filtradas) {
		fin = len(filtradas)
	}
	return aResponses(filtradas[ini:fin]), nil
}

func validarHorarios(in []dto.HorarioDTO) ([]entity.Horario, error) {
	out := make([]entity.Horario, 0, len(in))
	for i, h := range in {
		if err := validacion.ValidarHora(h.HoraSalida); err != nil {
			return nil, fmt.Errorf("horario %d, hora de salida: %w", i+1, err)
		}
		if err := validacion.ValidarHora(h.HoraLlegada); err != nil {
			return nil, fmt.Errorf("horario %d, hora de llegada: %w", i+1, err)
		}
		if !validacion.HoraPosterior(h.HoraSalida, h.HoraLlegada) {
			return nil, fmt.Errorf("horario %d: la llegada %s debe ser posterior a la salida %s: %w",
				i+1, h.HoraLlegada, h.HoraSalida, domain.ErrHorarioInvalido)
		}
		e := entity.Horario{
			HoraSalida:    h.HoraSalida,
			HoraLlegada:   h.HoraLlegada,
			FrecuenciaMin: h.FrecuenciaMin,
			DiasSemana:    h.DiasSemana,
		}
		if e.DiasSeleccionados() == 0 {
			return nil, fmt.Errorf("horario %d: debe seleccionar al menos un día: %w", i+1, domain.ErrHorarioInvalido)
		}
		out = append(out, e)
	}
	return out, nil
}

func (uc *UseCase) aEspecificaResponse(esp *entity.RutaEspecificaVehiculo, general *entity.Ruta) *dto.RutaEspecificaResponse {
	out := &dto.RutaEspecificaResponse{
		ID:                 esp.ID,
		Codigo:             esp.Codigo,
		RutaGeneralID:      esp.RutaGeneralID,
		VehiculoID:         esp.VehiculoID,
		ResolucionID:       esp.ResolucionID,
		Horarios:           aHorariosDTO(esp.Horarios),
		ParadasAdicionales: aItinerarioDTO(esp.ParadasAdicionales),
		CreatedAt:          esp.CreatedAt,
	}
	if general != nil {
		out.Origen = aLocalidadDTO(general.Origen)
		out.Destino = aLocalidadDTO(general.Destino)
		out.Itinerario = aItinerarioDTO(general.Itinerario)
	}
	return out
}

func aHorariosDTO(hs []entity.Horario) []dto.HorarioDTO {
	out := make([]dto.HorarioDTO, 0, len(hs))
	for _, h := range hs {
		out = append(out, dto.HorarioDTO{
			HoraSalida:    h.HoraSalida,
			HoraLlegada:   h.HoraLlegada,
			FrecuenciaMin: h.FrecuenciaMin,
			DiasSemana:    h.DiasSemana,
		})
	}
	return out
}
