package resolucion

import (
	"context"
	"fmt"
	"time"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// AttachVehiculo habilita el vehículo en la resolución. Es idempotente:
// habilitar dos veces no duplica la membresía. Actualiza el espejo
// vehiculo.resolucionId y dispara el recálculo de linaje de la placa.
func (uc *UseCase) AttachVehiculo(ctx context.Context, resolucionID, vehiculoID string) error {
	r, err := uc.resoluciones.GetByID(ctx, resolucionID)
	if err != nil {
		return err
	}
	if r == nil || !r.EstaActivo {
		return fmt.Errorf("resolución %s: %w", resolucionID, domain.ErrNoEncontrado)
	}
	if entity.EstadoResolucionTerminal(r.Estado) {
		return fmt.Errorf("resolución %s está %s: %w", r.Numero, r.Estado, domain.ErrConflicto)
	}
	v, err := uc.vehiculos.GetByID(ctx, vehiculoID)
	if err != nil {
		return err
	}
	if v == nil || !v.EstaActivo {
		return fmt.Errorf("vehículo %s: %w", vehiculoID, domain.ErrDependenciaFaltante)
	}

	if !r.TieneVehiculo(vehiculoID) {
		r.VehiculosHabilitadosIds = appendUnico(r.VehiculosHabilitadosIds, vehiculoID)
		r.UpdatedAt = time.Now()
		if err := uc.resoluciones.Update(ctx, r); err != nil {
			return err
		}
	}

	if v.ResolucionID != resolucionID {
		v.ResolucionID = resolucionID
		v.EmpresaActualID = r.EmpresaID
		v.UpdatedAt = time.Now()
		if err := uc.vehiculos.Update(ctx, v); err != nil {
			return err
		}
	}

	// La habilitación es un evento de linaje: recalcular el historial de la placa.
	if err := uc.linaje.RecalcularPlaca(ctx, v.Placa); err != nil {
		return err
	}
	uc.invalidarListados(ctx, r.EmpresaID)
	return nil
}

// DetachVehiculo quita el vehículo de los habilitados. Idempotente. El espejo
// vehiculo.resolucionId se limpia solo si apuntaba a esta resolución.
func (uc *UseCase) DetachVehiculo(ctx context.Context, resolucionID, vehiculoID string) error {
	r, err := uc.resoluciones.GetByID(ctx, resolucionID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("resolución %s: %w", resolucionID, domain.ErrNoEncontrado)
	}
	if r.TieneVehiculo(vehiculoID) {
		r.VehiculosHabilitadosIds = quitar(r.VehiculosHabilitadosIds, vehiculoID)
		r.UpdatedAt = time.Now()
		if err := uc.resoluciones.Update(ctx, r); err != nil {
			return err
		}
	}
	v, err := uc.vehiculos.GetByID(ctx, vehiculoID)
	if err != nil {
		return err
	}
	if v != nil {
		if v.ResolucionID == resolucionID {
			v.ResolucionID = ""
			v.UpdatedAt = time.Now()
			if err := uc.vehiculos.Update(ctx, v); err != nil {
				return err
			}
		}
		if err := uc.linaje.RecalcularPlaca(ctx, v.Placa); err != nil {
			return err
		}
	}
	uc.invalidarListados(ctx, r.EmpresaID)
	return nil
}

// AttachRuta autoriza la ruta en la resolución (idempotente), con el mismo
// contrato que AttachVehiculo contra rutasAutorizadasIds.
func (uc *UseCase) AttachRuta(ctx context.Context, resolucionID, rutaID string) error {
	r, err := uc.resoluciones.GetByID(ctx, resolucionID)
	if err != nil {
		return err
	}
	if r == nil || !r.EstaActivo {
		return fmt.Errorf("resolución %s: %w", resolucionID, domain.ErrNoEncontrado)
	}
	if entity.EstadoResolucionTerminal(r.Estado) {
		return fmt.Errorf("resolución %s está %s: %w", r.Numero, r.Estado, domain.ErrConflicto)
	}
	if !r.TieneRuta(rutaID) {
		r.RutasAutorizadasIds = appendUnico(r.RutasAutorizadasIds, rutaID)
		r.UpdatedAt = time.Now()
		if err := uc.resoluciones.Update(ctx, r); err != nil {
			return err
		}
	}
	uc.invalidarListados(ctx, r.EmpresaID)
	return nil
}

// DetachRuta revoca la autorización de la ruta. Idempotente.
func (uc *UseCase) DetachRuta(ctx context.Context, resolucionID, rutaID string) error {
	r, err := uc.resoluciones.GetByID(ctx, resolucionID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("resolución %s: %w", resolucionID, domain.ErrNoEncontrado)
	}
	if r.TieneRuta(rutaID) {
		r.RutasAutorizadasIds = quitar(r.RutasAutorizadasIds, rutaID)
		r.UpdatedAt = time.Now()
		if err := uc.resoluciones.Update(ctx, r); err != nil {
			return err
		}
	}
	uc.invalidarListados(ctx, r.EmpresaID)
	return nil
}
