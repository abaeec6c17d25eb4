package vehiculo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
)

// BajaUseCase flujo de solicitudes de baja vehicular. La aprobación lleva el
// vehículo al estado final que dicta el motivo (ver entity.EstadoFinalPorMotivo)
// y sella fechaBaja/motivoBaja/observacionesBaja.
type BajaUseCase struct {
	solicitudes repository.SolicitudBajaRepository
	vehiculos   repository.VehiculoRepository
}

// NewBajaUseCase construye el caso de uso.
func NewBajaUseCase(solicitudes repository.SolicitudBajaRepository, vehiculos repository.VehiculoRepository) *BajaUseCase {
	return &BajaUseCase{solicitudes: solicitudes, vehiculos: vehiculos}
}

// Crear registra una solicitud PENDIENTE.
func (uc *BajaUseCase) Crear(ctx context.Context, in dto.CreateSolicitudBajaRequest, usuarioID string) (*dto.SolicitudBajaResponse, error) {
	if !entity.MotivoBajaValido(in.Motivo) {
		return nil, fmt.Errorf("motivo %q: %w", in.Motivo, domain.ErrEntradaInvalida)
	}
	v, err := uc.vehiculos.GetByID(ctx, in.VehiculoID)
	if err != nil {
		return nil, err
	}
	if v == nil || !v.EstaActivo {
		return nil, fmt.Errorf("vehículo %s: %w", in.VehiculoID, domain.ErrDependenciaFaltante)
	}

	ahora := time.Now()
	s := &entity.SolicitudBaja{
		ID:             uuid.New().String(),
		VehiculoID:     v.ID,
		EmpresaID:      v.EmpresaActualID,
		Motivo:         in.Motivo,
		Sustento:       in.Sustento,
		Estado:         entity.SolicitudPendiente,
		SolicitadoPor:  usuarioID,
		FechaSolicitud: ahora,
		EstaActivo:     true,
		CreatedAt:      ahora,
		UpdatedAt:      ahora,
	}
	if err := uc.solicitudes.Create(ctx, s); err != nil {
		return nil, err
	}
	return bajaAResponse(s), nil
}

// IniciarRevision pasa la solicitud a EN_REVISION.
func (uc *BajaUseCase) IniciarRevision(ctx context.Context, id string) (*dto.SolicitudBajaResponse, error) {
	s, err := uc.obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.PuedeTransicionarSolicitud(s.Estado, entity.SolicitudEnRevision) {
		return nil, fmt.Errorf("%s -> %s: %w", s.Estado, entity.SolicitudEnRevision, domain.ErrTransicionInvalida)
	}
	s.Estado = entity.SolicitudEnRevision
	s.UpdatedAt = time.Now()
	if err := uc.solicitudes.Update(ctx, s); err != nil {
		return nil, err
	}
	return bajaAResponse(s), nil
}

// Resolver aprueba o rechaza. Aprobación: vehículo al estado final según el
// motivo y sellos de baja. Rechazo: motivo textual obligatorio.
func (uc *BajaUseCase) Resolver(ctx context.Context, id string, in dto.ResolverSolicitudBajaRequest, usuarioID string) (*dto.SolicitudBajaResponse, error) {
	s, err := uc.obtener(ctx, id)
	if err != nil {
		return nil, err
	}

	ahora := time.Now()
	if in.Aprobar {
		if !entity.PuedeTransicionarSolicitud(s.Estado, entity.SolicitudAprobada) {
			return nil, fmt.Errorf("%s -> %s: %w", s.Estado, entity.SolicitudAprobada, domain.ErrTransicionInvalida)
		}
		v, err := uc.vehiculos.GetByID(ctx, s.VehiculoID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("vehículo %s: %w", s.VehiculoID, domain.ErrDependenciaFaltante)
		}
		v.Estado = entity.EstadoFinalPorMotivo(s.Motivo)
		v.FechaBaja = &ahora
		v.MotivoBaja = s.Motivo
		v.ObservacionesBaja = in.Observaciones
		v.UpdatedAt = ahora
		if err := uc.vehiculos.Update(ctx, v); err != nil {
			return nil, err
		}
		s.Estado = entity.SolicitudAprobada
	} else {
		if in.MotivoRechazo == "" {
			return nil, fmt.Errorf("motivo_rechazo requerido: %w", domain.ErrEntradaInvalida)
		}
		if !entity.PuedeTransicionarSolicitud(s.Estado, entity.SolicitudRechazada) {
			return nil, fmt.Errorf("%s -> %s: %w", s.Estado, entity.SolicitudRechazada, domain.ErrTransicionInvalida)
		}
		s.Estado = entity.SolicitudRechazada
		s.MotivoRechazo = in.MotivoRechazo
	}

	s.ResueltoPor = usuarioID
	s.FechaResolucion = &ahora
	s.UpdatedAt = ahora
	if err := uc.solicitudes.Update(ctx, s); err != nil {
		return nil, err
	}
	return bajaAResponse(s), nil
}

// Cancelar cancela una solicitud aún no resuelta.
func (uc *BajaUseCase) Cancelar(ctx context.Context, id string) (*dto.SolicitudBajaResponse, error) {
	s, err := uc.obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.PuedeTransicionarSolicitud(s.Estado, entity.SolicitudCancelada) {
		return nil, fmt.Errorf("%s -> %s: %w", s.Estado, entity.SolicitudCancelada, domain.ErrTransicionInvalida)
	}
	s.Estado = entity.SolicitudCancelada
	s.UpdatedAt = time.Now()
	if err := uc.solicitudes.Update(ctx, s); err != nil {
		return nil, err
	}
	return bajaAResponse(s), nil
}

// ListByEstado lista solicitudes por estado.
func (uc *BajaUseCase) ListByEstado(ctx context.Context, estado string, page dto.PageRequest) ([]dto.SolicitudBajaResponse, error) {
	page.DefaultPage()
	list, err := uc.solicitudes.ListByEstado(ctx, estado, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SolicitudBajaResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *bajaAResponse(s))
	}
	return out, nil
}

func (uc *BajaUseCase) obtener(ctx context.Context, id string) (*entity.SolicitudBaja, error) {
	s, err := uc.solicitudes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || !s.EstaActivo {
		return nil, fmt.Errorf("solicitud %s: %w", id, domain.ErrNoEncontrado)
	}
	return s, nil
}

func bajaAResponse(s *entity.SolicitudBaja) *dto.SolicitudBajaResponse {
	return &dto.SolicitudBajaResponse{
		ID:              s.ID,
		VehiculoID:      s.VehiculoID,
		EmpresaID:       s.EmpresaID,
		Motivo:          s.Motivo,
		Sustento:        s.Sustento,
		Estado:          s.Estado,
		MotivoRechazo:   s.MotivoRechazo,
		SolicitadoPor:   s.SolicitadoPor,
		ResueltoPor:     s.ResueltoPor,
		FechaSolicitud:  s.FechaSolicitud,
		FechaResolucion: s.FechaResolucion,
	}
}
