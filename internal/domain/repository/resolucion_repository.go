package repository

import (
	"context"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// FiltroResoluciones filtros del listado por empresa. Fingerprint() alimenta
// la clave de caché.
type FiltroResoluciones struct {
	Estado         string
	TipoResolucion string
	TipoTramite    string
	Anio           int
}

// ResolucionRepository puerto de persistencia para Resolucion.
type ResolucionRepository interface {
	Create(ctx context.Context, r *entity.Resolucion) error
	GetByID(ctx context.Context, id string) (*entity.Resolucion, error)
	GetByNumero(ctx context.Context, numero string) (*entity.Resolucion, error)
	Update(ctx context.Context, r *entity.Resolucion) error
	List(ctx context.Context, limit, offset int) ([]*entity.Resolucion, error)
	ListByEmpresa(ctx context.Context, empresaID string, f FiltroResoluciones, limit, offset int) ([]*entity.Resolucion, error)
	// ListByVehiculo devuelve las resoluciones activas que habilitan al vehículo.
	ListByVehiculo(ctx context.Context, vehiculoID string) ([]*entity.Resolucion, error)
	Delete(ctx context.Context, id string) error
	ContarPorEstado(ctx context.Context) (map[string]int, error)
}
