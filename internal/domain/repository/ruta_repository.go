package repository

import (
	"context"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// RutaRepository puerto de persistencia para Ruta (rutas generales).
type RutaRepository interface {
	Create(ctx context.Context, r *entity.Ruta) error
	GetByID(ctx context.Context, id string) (*entity.Ruta, error)
	Update(ctx context.Context, r *entity.Ruta) error
	List(ctx context.Context, limit, offset int) ([]*entity.Ruta, error)
	ListByResolucion(ctx context.Context, resolucionID string) ([]*entity.Ruta, error)
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Ruta, error)
	// ExisteCodigoEnResolucion verifica la unicidad (resolución, código
	// normalizado) excluyendo opcionalmente un ID (para updates).
	ExisteCodigoEnResolucion(ctx context.Context, resolucionID, codigo, excluirID string) (bool, error)
	// Buscar hace match de subcadena sobre nombre de origen o destino.
	Buscar(ctx context.Context, texto string, limit, offset int) ([]*entity.Ruta, error)
	Delete(ctx context.Context, id string) error
	ContarPorEstado(ctx context.Context) (map[string]int, error)
}

// RutaEspecificaRepository puerto de persistencia para las rutas específicas
// por vehículo.
type RutaEspecificaRepository interface {
	Create(ctx context.Context, r *entity.RutaEspecificaVehiculo) error
	GetByID(ctx context.Context, id string) (*entity.RutaEspecificaVehiculo, error)
	Update(ctx context.Context, r *entity.RutaEspecificaVehiculo) error
	ListByVehiculo(ctx context.Context, vehiculoID string) ([]*entity.RutaEspecificaVehiculo, error)
	ListByRutaGeneral(ctx context.Context, rutaGeneralID string) ([]*entity.RutaEspecificaVehiculo, error)
	Delete(ctx context.Context, id string) error
}
