package repository

import (
	"context"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// EmpresaRepository define el puerto de persistencia para Empresa (DIP).
// La implementación vive en infrastructure. Devuelve (nil, nil) cuando el
// registro no existe.
type EmpresaRepository interface {
	Create(ctx context.Context, e *entity.Empresa) error
	GetByID(ctx context.Context, id string) (*entity.Empresa, error)
	GetByRUC(ctx context.Context, ruc string) (*entity.Empresa, error)
	Update(ctx context.Context, e *entity.Empresa) error
	List(ctx context.Context, limit, offset int) ([]*entity.Empresa, error)
	Delete(ctx context.Context, id string) error // soft delete: estaActivo=false
	ContarPorEstado(ctx context.Context) (map[string]int, error)
}
