package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
)

// ResolucionRepo implementa repository.ResolucionRepository sobre PostgreSQL.
type ResolucionRepo struct {
	pool *pgxpool.Pool
}

var _ repository.ResolucionRepository = (*ResolucionRepo)(nil)

// NewResolucionRepo crea el repositorio de resoluciones.
func NewResolucionRepo(pool *pgxpool.Pool) *ResolucionRepo {
	return &ResolucionRepo{pool: pool}
}

const resolucionColumnas = `
	id, numero, tipo_resolucion, tipo_tramite, empresa_id, descripcion,
	estado, motivo_estado, fecha_emision, fecha_vigencia_inicio,
	fecha_vigencia_fin, anios_vigencia, padre_id, hijos_ids,
	vehiculos_habilitados_ids, rutas_autorizadas_ids,
	esta_activo, created_at, updated_at`

// ordenResoluciones define el orden de linaje: emisión y luego número como
// desempate.
const ordenResoluciones = `ORDER BY fecha_emision, numero`

func (r *ResolucionRepo) Create(ctx context.Context, res *entity.Resolucion) error {
	query := `
		INSERT INTO resoluciones (` + resolucionColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.pool.Exec(ctx, query,
		res.ID, res.Numero, res.TipoResolucion, res.TipoTramite, res.EmpresaID, res.Descripcion,
		res.Estado, res.MotivoEstado, res.FechaEmision, res.FechaVigenciaInicio,
		res.FechaVigenciaFin, res.AniosVigencia, nullSiVacio(res.PadreID), res.HijosIds,
		res.VehiculosHabilitadosIds, res.RutasAutorizadasIds,
		res.EstaActivo, res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insertar resolución: %w", err)
	}
	return nil
}

func (r *ResolucionRepo) GetByID(ctx context.Context, id string) (*entity.Resolucion, error) {
	query := `SELECT ` + resolucionColumnas + ` FROM resoluciones WHERE id = $1`
	return r.una(ctx, query, id)
}

func (r *ResolucionRepo) GetByNumero(ctx context.Context, numero string) (*entity.Resolucion, error) {
	query := `SELECT ` + resolucionColumnas + ` FROM resoluciones WHERE numero = $1 AND esta_activo = true`
	return r.una(ctx, query, numero)
}

func (r *ResolucionRepo) una(ctx context.Context, query string, args ...any) (*entity.Resolucion, error) {
	var res entity.Resolucion
	var padreID *string
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&res.ID, &res.Numero, &res.TipoResolucion, &res.TipoTramite, &res.EmpresaID, &res.Descripcion,
		&res.Estado, &res.MotivoEstado, &res.FechaEmision, &res.FechaVigenciaInicio,
		&res.FechaVigenciaFin, &res.AniosVigencia, &padreID, &res.HijosIds,
		&res.VehiculosHabilitadosIds, &res.RutasAutorizadasIds,
		&res.EstaActivo, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar resolución: %w", err)
	}
	if padreID != nil {
		res.PadreID = *padreID
	}
	return &res, nil
}

func (r *ResolucionRepo) Update(ctx context.Context, res *entity.Resolucion) error {
	query := `
		UPDATE resoluciones SET
			numero = $2, tipo_resolucion = $3, tipo_tramite = $4, empresa_id = $5,
			descripcion = $6, estado = $7, motivo_estado = $8, fecha_emision = $9,
			fecha_vigencia_inicio = $10, fecha_vigencia_fin = $11, anios_vigencia = $12,
			padre_id = $13, hijos_ids = $14, vehiculos_habilitados_ids = $15,
			rutas_autorizadas_ids = $16, esta_activo = $17, updated_at = $18
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		res.ID, res.Numero, res.TipoResolucion, res.TipoTramite, res.EmpresaID,
		res.Descripcion, res.Estado, res.MotivoEstado, res.FechaEmision,
		res.FechaVigenciaInicio, res.FechaVigenciaFin, res.AniosVigencia,
		nullSiVacio(res.PadreID), res.HijosIds, res.VehiculosHabilitadosIds,
		res.RutasAutorizadasIds, res.EstaActivo, res.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("actualizar resolución: %w", err)
	}
	return nil
}

func (r *ResolucionRepo) List(ctx context.Context, limit, offset int) ([]*entity.Resolucion, error) {
	query := `
		SELECT ` + resolucionColumnas + `
		FROM resoluciones
		WHERE esta_activo = true ` + ordenResoluciones + `
		LIMIT $1 OFFSET $2`
	return r.varias(ctx, query, limit, offset)
}

func (r *ResolucionRepo) ListByEmpresa(ctx context.Context, empresaID string, f repository.FiltroResoluciones, limit, offset int) ([]*entity.Resolucion, error) {
	query := `
		SELECT ` + resolucionColumnas + `
		FROM resoluciones
		WHERE esta_activo = true AND empresa_id = $1`
	args := []any{empresaID}

	if f.Estado != "" {
		args = append(args, f.Estado)
		query += ` AND estado = $` + strconv.Itoa(len(args))
	}
	if f.TipoResolucion != "" {
		args = append(args, f.TipoResolucion)
		query += ` AND tipo_resolucion = $` + strconv.Itoa(len(args))
	}
	if f.TipoTramite != "" {
		args = append(args, f.TipoTramite)
		query += ` AND tipo_tramite = $` + strconv.Itoa(len(args))
	}
	if f.Anio > 0 {
		args = append(args, f.Anio)
		query += ` AND extract(year FROM fecha_emision) = $` + strconv.Itoa(len(args))
	}

	args = append(args, limit, offset)
	query += ` ` + ordenResoluciones +
		` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	return r.varias(ctx, query, args...)
}

func (r *ResolucionRepo) ListByVehiculo(ctx context.Context, vehiculoID string) ([]*entity.Resolucion, error) {
	query := `
		SELECT ` + resolucionColumnas + `
		FROM resoluciones
		WHERE esta_activo = true AND $1 = ANY(vehiculos_habilitados_ids) ` + ordenResoluciones
	return r.varias(ctx, query, vehiculoID)
}

func (r *ResolucionRepo) varias(ctx context.Context, query string, args ...any) ([]*entity.Resolucion, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar resoluciones: %w", err)
	}
	defer rows.Close()

	var resoluciones []*entity.Resolucion
	for rows.Next() {
		var res entity.Resolucion
		var padreID *string
		if err := rows.Scan(
			&res.ID, &res.Numero, &res.TipoResolucion, &res.TipoTramite, &res.EmpresaID, &res.Descripcion,
			&res.Estado, &res.MotivoEstado, &res.FechaEmision, &res.FechaVigenciaInicio,
			&res.FechaVigenciaFin, &res.AniosVigencia, &padreID, &res.HijosIds,
			&res.VehiculosHabilitadosIds, &res.RutasAutorizadasIds,
			&res.EstaActivo, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("escanear resolución: %w", err)
		}
		if padreID != nil {
			res.PadreID = *padreID
		}
		resoluciones = append(resoluciones, &res)
	}
	return resoluciones, rows.Err()
}

func (r *ResolucionRepo) Delete(ctx context.Context, id string) error {
	query := `UPDATE resoluciones SET esta_activo = false, updated_at = now() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("eliminar resolución: %w", err)
	}
	return nil
}

func (r *ResolucionRepo) ContarPorEstado(ctx context.Context) (map[string]int, error) {
	query := `SELECT estado, count(*) FROM resoluciones WHERE esta_activo = true GROUP BY estado`
	return contarPorEstado(ctx, r.pool, query, "resoluciones")
}
