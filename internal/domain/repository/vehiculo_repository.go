package repository

import (
	"context"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// Visibilidad del listado de vehículos (filtro de UI).
const (
	VisibilidadActual    = "current"
	VisibilidadHistorica = "historical"
	VisibilidadTodos     = "all"
)

// FiltroVehiculos filtros del listado.
type FiltroVehiculos struct {
	Visibilidad string // current | historical | all
	Bloqueados  *bool  // nil = sin filtrar; ver entity.EstadoVehiculoBloqueado
	EmpresaID   string
	Estado      string
}

// VehiculoRepository puerto de persistencia para Vehiculo.
type VehiculoRepository interface {
	Create(ctx context.Context, v *entity.Vehiculo) error
	GetByID(ctx context.Context, id string) (*entity.Vehiculo, error)
	// GetActualByPlaca devuelve el registro con esRegistroActual=true de la placa.
	GetActualByPlaca(ctx context.Context, placa string) (*entity.Vehiculo, error)
	// ListByPlaca devuelve la familia completa de registros (históricos incluidos).
	ListByPlaca(ctx context.Context, placa string) ([]*entity.Vehiculo, error)
	Update(ctx context.Context, v *entity.Vehiculo) error
	List(ctx context.Context, f FiltroVehiculos, limit, offset int) ([]*entity.Vehiculo, error)
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Vehiculo, error)
	ListByResolucion(ctx context.Context, resolucionID string) ([]*entity.Vehiculo, error)
	// ListPlacas devuelve todas las placas distintas activas (para reconciliación).
	ListPlacas(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
	ContarPorEstado(ctx context.Context) (map[string]int, error)
}

// SolicitudBajaRepository puerto de persistencia para solicitudes de baja.
type SolicitudBajaRepository interface {
	Create(ctx context.Context, s *entity.SolicitudBaja) error
	GetByID(ctx context.Context, id string) (*entity.SolicitudBaja, error)
	Update(ctx context.Context, s *entity.SolicitudBaja) error
	ListByVehiculo(ctx context.Context, vehiculoID string) ([]*entity.SolicitudBaja, error)
	ListByEstado(ctx context.Context, estado string, limit, offset int) ([]*entity.SolicitudBaja, error)
}
