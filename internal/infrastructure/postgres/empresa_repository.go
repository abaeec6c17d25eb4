package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
)

// EmpresaRepo implementa repository.EmpresaRepository sobre PostgreSQL.
// El representante y el snapshot SUNAT se guardan como JSONB; las listas de
// ids desnormalizadas como text[].
type EmpresaRepo struct {
	pool *pgxpool.Pool
}

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// NewEmpresaRepo crea el repositorio de empresas.
func NewEmpresaRepo(pool *pgxpool.Pool) *EmpresaRepo {
	return &EmpresaRepo{pool: pool}
}

const empresaColumnas = `
	id, ruc, razon_social, razon_social_sunat, razon_social_minimo,
	direccion_fiscal, representante, telefono, email, estado, motivo_estado,
	datos_sunat, resoluciones_ids, vehiculos_ids, rutas_ids,
	esta_activo, created_at, updated_at`

func (r *EmpresaRepo) Create(ctx context.Context, e *entity.Empresa) error {
	query := `
		INSERT INTO empresas (` + empresaColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.RUC, e.RazonSocial.Principal, e.RazonSocial.SUNAT, e.RazonSocial.Minimo,
		e.DireccionFiscal, e.Representante, e.Telefono, e.Email, e.Estado, e.MotivoEstado,
		e.DatosSunat, e.ResolucionesIds, e.VehiculosIds, e.RutasIds,
		e.EstaActivo, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insertar empresa: %w", err)
	}
	return nil
}

func (r *EmpresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	query := `SELECT ` + empresaColumnas + ` FROM empresas WHERE id = $1`
	return r.una(ctx, query, id)
}

func (r *EmpresaRepo) GetByRUC(ctx context.Context, ruc string) (*entity.Empresa, error) {
	query := `SELECT ` + empresaColumnas + ` FROM empresas WHERE ruc = $1 AND esta_activo = true`
	return r.una(ctx, query, ruc)
}

func (r *EmpresaRepo) una(ctx context.Context, query string, args ...any) (*entity.Empresa, error) {
	var e entity.Empresa
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&e.ID, &e.RUC, &e.RazonSocial.Principal, &e.RazonSocial.SUNAT, &e.RazonSocial.Minimo,
		&e.DireccionFiscal, &e.Representante, &e.Telefono, &e.Email, &e.Estado, &e.MotivoEstado,
		&e.DatosSunat, &e.ResolucionesIds, &e.VehiculosIds, &e.RutasIds,
		&e.EstaActivo, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar empresa: %w", err)
	}
	return &e, nil
}

func (r *EmpresaRepo) Update(ctx context.Context, e *entity.Empresa) error {
	query := `
		UPDATE empresas SET
			ruc = $2, razon_social = $3, razon_social_sunat = $4, razon_social_minimo = $5,
			direccion_fiscal = $6, representante = $7, telefono = $8, email = $9,
			estado = $10, motivo_estado = $11, datos_sunat = $12,
			resoluciones_ids = $13, vehiculos_ids = $14, rutas_ids = $15,
			esta_activo = $16, updated_at = $17
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.RUC, e.RazonSocial.Principal, e.RazonSocial.SUNAT, e.RazonSocial.Minimo,
		e.DireccionFiscal, e.Representante, e.Telefono, e.Email,
		e.Estado, e.MotivoEstado, e.DatosSunat,
		e.ResolucionesIds, e.VehiculosIds, e.RutasIds,
		e.EstaActivo, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("actualizar empresa: %w", err)
	}
	return nil
}

func (r *EmpresaRepo) List(ctx context.Context, limit, offset int) ([]*entity.Empresa, error) {
	query := `
		SELECT ` + empresaColumnas + `
		FROM empresas
		WHERE esta_activo = true
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar empresas: %w", err)
	}
	defer rows.Close()

	var empresas []*entity.Empresa
	for rows.Next() {
		var e entity.Empresa
		if err := rows.Scan(
			&e.ID, &e.RUC, &e.RazonSocial.Principal, &e.RazonSocial.SUNAT, &e.RazonSocial.Minimo,
			&e.DireccionFiscal, &e.Representante, &e.Telefono, &e.Email, &e.Estado, &e.MotivoEstado,
			&e.DatosSunat, &e.ResolucionesIds, &e.VehiculosIds, &e.RutasIds,
			&e.EstaActivo, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("escanear empresa: %w", err)
		}
		empresas = append(empresas, &e)
	}
	return empresas, rows.Err()
}

func (r *EmpresaRepo) Delete(ctx context.Context, id string) error {
	query := `UPDATE empresas SET esta_activo = false, updated_at = now() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("eliminar empresa: %w", err)
	}
	return nil
}

func (r *EmpresaRepo) ContarPorEstado(ctx context.Context) (map[string]int, error) {
	query := `SELECT estado, count(*) FROM empresas WHERE esta_activo = true GROUP BY estado`
	return contarPorEstado(ctx, r.pool, query, "empresas")
}
