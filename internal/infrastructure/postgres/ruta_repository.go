package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

// RutaRepo implementa repository.RutaRepository sobre PostgreSQL. Origen,
// destino e itinerario se guardan como JSONB; las columnas *_busqueda llevan
// el nombre normalizado para el match de subcadena.
type RutaRepo struct {
	pool *pgxpool.Pool
}

var _ repository.RutaRepository = (*RutaRepo)(nil)

// NewRutaRepo crea el repositorio de rutas generales.
func NewRutaRepo(pool *pgxpool.Pool) *RutaRepo {
	return &RutaRepo{pool: pool}
}

const rutaColumnas = `
	id, codigo_ruta, empresa_id, resolucion_id, origen, destino, itinerario,
	frecuencias, tipo_ruta, tipo_servicio, estado, esta_activo, created_at, updated_at`

func (r *RutaRepo) Create(ctx context.Context, ruta *entity.Ruta) error {
	query := `
		INSERT INTO rutas (` + rutaColumnas + `, origen_busqueda, destino_busqueda)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.pool.Exec(ctx, query,
		ruta.ID, ruta.CodigoRuta, ruta.EmpresaID, ruta.ResolucionID,
		ruta.Origen, ruta.Destino, ruta.Itinerario,
		ruta.Frecuencias, ruta.TipoRuta, ruta.TipoServicio, ruta.Estado,
		ruta.EstaActivo, ruta.CreatedAt, ruta.UpdatedAt,
		validacion.NormalizarRazonSocial(ruta.Origen.Nombre),
		validacion.NormalizarRazonSocial(ruta.Destino.Nombre),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insertar ruta: %w", err)
	}
	return nil
}

func (r *RutaRepo) GetByID(ctx context.Context, id string) (*entity.Ruta, error) {
	query := `SELECT ` + rutaColumnas + ` FROM rutas WHERE id = $1`
	var ruta entity.Ruta
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ruta.ID, &ruta.CodigoRuta, &ruta.EmpresaID, &ruta.ResolucionID,
		&ruta.Origen, &ruta.Destino, &ruta.Itinerario,
		&ruta.Frecuencias, &ruta.TipoRuta, &ruta.TipoServicio, &ruta.Estado,
		&ruta.EstaActivo, &ruta.CreatedAt, &ruta.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar ruta: %w", err)
	}
	return &ruta, nil
}

func (r *RutaRepo) Update(ctx context.Context, ruta *entity.Ruta) error {
	query := `
		UPDATE rutas SET
			codigo_ruta = $2, empresa_id = $3, resolucion_id = $4,
			origen = $5, destino = $6, itinerario = $7, frecuencias = $8,
			tipo_ruta = $9, tipo_servicio = $10, estado = $11,
			esta_activo = $12, updated_at = $13,
			origen_busqueda = $14, destino_busqueda = $15
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		ruta.ID, ruta.CodigoRuta, ruta.EmpresaID, ruta.ResolucionID,
		ruta.Origen, ruta.Destino, ruta.Itinerario, ruta.Frecuencias,
		ruta.TipoRuta, ruta.TipoServicio, ruta.Estado,
		ruta.EstaActivo, ruta.UpdatedAt,
		validacion.NormalizarRazonSocial(ruta.Origen.Nombre),
		validacion.NormalizarRazonSocial(ruta.Destino.Nombre),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("actualizar ruta: %w", err)
	}
	return nil
}

func (r *RutaRepo) List(ctx context.Context, limit, offset int) ([]*entity.Ruta, error) {
	query := `
		SELECT ` + rutaColumnas + `
		FROM rutas
		WHERE esta_activo = true
		ORDER BY resolucion_id, codigo_ruta
		LIMIT $1 OFFSET $2`
	return r.varias(ctx, query, limit, offset)
}

func (r *RutaRepo) ListByResolucion(ctx context.Context, resolucionID string) ([]*entity.Ruta, error) {
	query := `
		SELECT ` + rutaColumnas + `
		FROM rutas
		WHERE esta_activo = true AND resolucion_id = $1
		ORDER BY codigo_ruta`
	return r.varias(ctx, query, resolucionID)
}

func (r *RutaRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Ruta, error) {
	query := `
		SELECT ` + rutaColumnas + `
		FROM rutas
		WHERE esta_activo = true AND empresa_id = $1
		ORDER BY resolucion_id, codigo_ruta`
	return r.varias(ctx, query, empresaID)
}

func (r *RutaRepo) ExisteCodigoEnResolucion(ctx context.Context, resolucionID, codigo, excluirID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM rutas
			WHERE esta_activo = true AND resolucion_id = $1 AND codigo_ruta = $2 AND id <> $3
		)`
	var existe bool
	if err := r.pool.QueryRow(ctx, query, resolucionID, codigo, excluirID).Scan(&existe); err != nil {
		return false, fmt.Errorf("verificar código de ruta: %w", err)
	}
	return existe, nil
}

func (r *RutaRepo) Buscar(ctx context.Context, texto string, limit, offset int) ([]*entity.Ruta, error) {
	patron := "%" + validacion.NormalizarRazonSocial(texto) + "%"
	query := `
		SELECT ` + rutaColumnas + `
		FROM rutas
		WHERE esta_activo = true
		  AND (origen_busqueda LIKE $1 OR destino_busqueda LIKE $1)
		ORDER BY resolucion_id, codigo_ruta
		LIMIT $2 OFFSET $3`
	return r.varias(ctx, query, patron, limit, offset)
}

func (r *RutaRepo) varias(ctx context.Context, query string, args ...any) ([]*entity.Ruta, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar rutas: %w", err)
	}
	defer rows.Close()

	var rutas []*entity.Ruta
	for rows.Next() {
		var ruta entity.Ruta
		if err := rows.Scan(
			&ruta.ID, &ruta.CodigoRuta, &ruta.EmpresaID, &ruta.ResolucionID,
			&ruta.Origen, &ruta.Destino, &ruta.Itinerario,
			&ruta.Frecuencias, &ruta.TipoRuta, &ruta.TipoServicio, &ruta.Estado,
			&ruta.EstaActivo, &ruta.CreatedAt, &ruta.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("escanear ruta: %w", err)
		}
		rutas = append(rutas, &ruta)
	}
	return rutas, rows.Err()
}

func (r *RutaRepo) Delete(ctx context.Context, id string) error {
	query := `UPDATE rutas SET esta_activo = false, updated_at = now() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("eliminar ruta: %w", err)
	}
	return nil
}

func (r *RutaRepo) ContarPorEstado(ctx context.Context) (map[string]int, error) {
	query := `SELECT estado, count(*) FROM rutas WHERE esta_activo = true GROUP BY estado`
	return contarPorEstado(ctx, r.pool, query, "rutas")
}

// ── Rutas específicas ─────────────────────────────────────────────────────────

// RutaEspecificaRepo implementa repository.RutaEspecificaRepository.
type RutaEspecificaRepo struct {
	pool *pgxpool.Pool
}

var _ repository.RutaEspecificaRepository = (*RutaEspecificaRepo)(nil)

// NewRutaEspecificaRepo crea el repositorio de rutas específicas por vehículo.
func NewRutaEspecificaRepo(pool *pgxpool.Pool) *RutaEspecificaRepo {
	return &RutaEspecificaRepo{pool: pool}
}

const especificaColumnas = `
	id, codigo, ruta_general_id, vehiculo_id, resolucion_id,
	horarios, paradas_adicionales, esta_activo, created_at, updated_at`

func (r *RutaEspecificaRepo) Create(ctx context.Context, e *entity.RutaEspecificaVehiculo) error {
	query := `
		INSERT INTO rutas_especificas (` + especificaColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.Codigo, e.RutaGeneralID, e.VehiculoID, e.ResolucionID,
		e.Horarios, e.ParadasAdicionales, e.EstaActivo, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insertar ruta específica: %w", err)
	}
	return nil
}

func (r *RutaEspecificaRepo) GetByID(ctx context.Context, id string) (*entity.RutaEspecificaVehiculo, error) {
	query := `SELECT ` + especificaColumnas + ` FROM rutas_especificas WHERE id = $1`
	var e entity.RutaEspecificaVehiculo
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Codigo, &e.RutaGeneralID, &e.VehiculoID, &e.ResolucionID,
		&e.Horarios, &e.ParadasAdicionales, &e.EstaActivo, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar ruta específica: %w", err)
	}
	return &e, nil
}

func (r *RutaEspecificaRepo) Update(ctx context.Context, e *entity.RutaEspecificaVehiculo) error {
	query := `
		UPDATE rutas_especificas SET
			codigo = $2, ruta_general_id = $3, vehiculo_id = $4, resolucion_id = $5,
			horarios = $6, paradas_adicionales = $7, esta_activo = $8, updated_at = $9
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.Codigo, e.RutaGeneralID, e.VehiculoID, e.ResolucionID,
		e.Horarios, e.ParadasAdicionales, e.EstaActivo, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("actualizar ruta específica: %w", err)
	}
	return nil
}

func (r *RutaEspecificaRepo) ListByVehiculo(ctx context.Context, vehiculoID string) ([]*entity.RutaEspecificaVehiculo, error) {
	query := `
		SELECT ` + especificaColumnas + `
		FROM rutas_especificas
		WHERE esta_activo = true AND vehiculo_id = $1
		ORDER BY codigo`
	return r.varias(ctx, query, vehiculoID)
}

func (r *RutaEspecificaRepo) ListByRutaGeneral(ctx context.Context, rutaGeneralID string) ([]*entity.RutaEspecificaVehiculo, error) {
	query := `
		SELECT ` + especificaColumnas + `
		FROM rutas_especificas
		WHERE esta_activo = true AND ruta_general_id = $1
		ORDER BY codigo`
	return r.varias(ctx, query, rutaGeneralID)
}

func (r *RutaEspecificaRepo) varias(ctx context.Context, query string, args ...any) ([]*entity.RutaEspecificaVehiculo, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar rutas específicas: %w", err)
	}
	defer rows.Close()

	var especificas []*entity.RutaEspecificaVehiculo
	for rows.Next() {
		var e entity.RutaEspecificaVehiculo
		if err := rows.Scan(
			&e.ID, &e.Codigo, &e.RutaGeneralID, &e.VehiculoID, &e.ResolucionID,
			&e.Horarios, &e.ParadasAdicionales, &e.EstaActivo, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("escanear ruta específica: %w", err)
		}
		especificas = append(especificas, &e)
	}
	return especificas, rows.Err()
}

func (r *RutaEspecificaRepo) Delete(ctx context.Context, id string) error {
	query := `UPDATE rutas_especificas SET esta_activo = false, updated_at = now() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("eliminar ruta específica: %w", err)
	}
	return nil
}
