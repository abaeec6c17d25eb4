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

// VehiculoRepo implementa repository.VehiculoRepository sobre PostgreSQL.
// La ficha técnica va en JSONB; el codec decimal registrado en el pool
// preserva los pesos.
type VehiculoRepo struct {
	pool *pgxpool.Pool
}

var _ repository.VehiculoRepository = (*VehiculoRepo)(nil)

// NewVehiculoRepo crea el repositorio de vehículos.
func NewVehiculoRepo(pool *pgxpool.Pool) *VehiculoRepo {
	return &VehiculoRepo{pool: pool}
}

const vehiculoColumnas = `
	id, placa, numero_serie, numero_motor, datos, empresa_actual_id,
	resolucion_id, estado, numero_historial, es_registro_actual,
	fecha_baja, motivo_baja, observaciones_baja,
	esta_activo, created_at, updated_at`

func (r *VehiculoRepo) Create(ctx context.Context, v *entity.Vehiculo) error {
	query := `
		INSERT INTO vehiculos (` + vehiculoColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.pool.Exec(ctx, query,
		v.ID, v.Placa, v.NumeroSerie, v.NumeroMotor, v.Datos, nullSiVacio(v.EmpresaActualID),
		nullSiVacio(v.ResolucionID), v.Estado, v.NumeroHistorial, v.EsRegistroActual,
		v.FechaBaja, v.MotivoBaja, v.ObservacionesBaja,
		v.EstaActivo, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insertar vehículo: %w", err)
	}
	return nil
}

func (r *VehiculoRepo) GetByID(ctx context.Context, id string) (*entity.Vehiculo, error) {
	query := `SELECT ` + vehiculoColumnas + ` FROM vehiculos WHERE id = $1`
	return r.uno(ctx, query, id)
}

func (r *VehiculoRepo) GetActualByPlaca(ctx context.Context, placa string) (*entity.Vehiculo, error) {
	query := `
		SELECT ` + vehiculoColumnas + `
		FROM vehiculos
		WHERE placa = $1 AND es_registro_actual = true AND esta_activo = true`
	return r.uno(ctx, query, placa)
}

func (r *VehiculoRepo) uno(ctx context.Context, query string, args ...any) (*entity.Vehiculo, error) {
	var v entity.Vehiculo
	var empresaID, resolucionID *string
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.Placa, &v.NumeroSerie, &v.NumeroMotor, &v.Datos, &empresaID,
		&resolucionID, &v.Estado, &v.NumeroHistorial, &v.EsRegistroActual,
		&v.FechaBaja, &v.MotivoBaja, &v.ObservacionesBaja,
		&v.EstaActivo, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar vehículo: %w", err)
	}
	if empresaID != nil {
		v.EmpresaActualID = *empresaID
	}
	if resolucionID != nil {
		v.ResolucionID = *resolucionID
	}
	return &v, nil
}

func (r *VehiculoRepo) ListByPlaca(ctx context.Context, placa string) ([]*entity.Vehiculo, error) {
	query := `
		SELECT ` + vehiculoColumnas + `
		FROM vehiculos
		WHERE placa = $1 AND esta_activo = true
		ORDER BY numero_historial, created_at`
	return r.varios(ctx, query, placa)
}

func (r *VehiculoRepo) Update(ctx context.Context, v *entity.Vehiculo) error {
	query := `
		UPDATE vehiculos SET
			placa = $2, numero_serie = $3, numero_motor = $4, datos = $5,
			empresa_actual_id = $6, resolucion_id = $7, estado = $8,
			numero_historial = $9, es_registro_actual = $10,
			fecha_baja = $11, motivo_baja = $12, observaciones_baja = $13,
			esta_activo = $14, updated_at = $15
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		v.ID, v.Placa, v.NumeroSerie, v.NumeroMotor, v.Datos,
		nullSiVacio(v.EmpresaActualID), nullSiVacio(v.ResolucionID), v.Estado,
		v.NumeroHistorial, v.EsRegistroActual,
		v.FechaBaja, v.MotivoBaja, v.ObservacionesBaja,
		v.EstaActivo, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("actualizar vehículo: %w", err)
	}
	return nil
}

func (r *VehiculoRepo) List(ctx context.Context, f repository.FiltroVehiculos, limit, offset int) ([]*entity.Vehiculo, error) {
	query := `
		SELECT ` + vehiculoColumnas + `
		FROM vehiculos
		WHERE esta_activo = true`
	var args []any

	switch f.Visibilidad {
	case repository.VisibilidadHistorica, repository.VisibilidadTodos:
		// linaje completo de la placa, incluye el registro vigente
	default:
		// Vigente excluye bloqueados: {actual} ∩ {bloqueado} = ∅.
		query += ` AND es_registro_actual = true
		AND estado NOT IN ('` + entity.VehiculoBajaDeOficio + `', '` + entity.VehiculoSuspendido + `')`
	}
	if f.Bloqueados != nil {
		if *f.Bloqueados {
			query += ` AND estado IN ('` + entity.VehiculoBajaDeOficio + `', '` + entity.VehiculoSuspendido + `')`
		} else {
			query += ` AND estado NOT IN ('` + entity.VehiculoBajaDeOficio + `', '` + entity.VehiculoSuspendido + `')`
		}
	}
	if f.EmpresaID != "" {
		args = append(args, f.EmpresaID)
		query += ` AND empresa_actual_id = $` + strconv.Itoa(len(args))
	}
	if f.Estado != "" {
		args = append(args, f.Estado)
		query += ` AND estado = $` + strconv.Itoa(len(args))
	}

	args = append(args, limit, offset)
	query += ` ORDER BY placa, numero_historial LIMIT $` + strconv.Itoa(len(args)-1) +
		` OFFSET $` + strconv.Itoa(len(args))

	return r.varios(ctx, query, args...)
}

func (r *VehiculoRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Vehiculo, error) {
	query := `
		SELECT ` + vehiculoColumnas + `
		FROM vehiculos
		WHERE esta_activo = true AND empresa_actual_id = $1
		ORDER BY placa, numero_historial`
	return r.varios(ctx, query, empresaID)
}

func (r *VehiculoRepo) ListByResolucion(ctx context.Context, resolucionID string) ([]*entity.Vehiculo, error) {
	query := `
		SELECT ` + vehiculoColumnas + `
		FROM vehiculos
		WHERE esta_activo = true AND resolucion_id = $1
		ORDER BY placa, numero_historial`
	return r.varios(ctx, query, resolucionID)
}

func (r *VehiculoRepo) ListPlacas(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT placa FROM vehiculos WHERE esta_activo = true ORDER BY placa`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar placas: %w", err)
	}
	defer rows.Close()

	var placas []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("escanear placa: %w", err)
		}
		placas = append(placas, p)
	}
	return placas, rows.Err()
}

func (r *VehiculoRepo) varios(ctx context.Context, query string, args ...any) ([]*entity.Vehiculo, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar vehículos: %w", err)
	}
	defer rows.Close()

	var vehiculos []*entity.Vehiculo
	for rows.Next() {
		var v entity.Vehiculo
		var empresaID, resolucionID *string
		if err := rows.Scan(
			&v.ID, &v.Placa, &v.NumeroSerie, &v.NumeroMotor, &v.Datos, &empresaID,
			&resolucionID, &v.Estado, &v.NumeroHistorial, &v.EsRegistroActual,
			&v.FechaBaja, &v.MotivoBaja, &v.ObservacionesBaja,
			&v.EstaActivo, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("escanear vehículo: %w", err)
		}
		if empresaID != nil {
			v.EmpresaActualID = *empresaID
		}
		if resolucionID != nil {
			v.ResolucionID = *resolucionID
		}
		vehiculos = append(vehiculos, &v)
	}
	return vehiculos, rows.Err()
}

func (r *VehiculoRepo) Delete(ctx context.Context, id string) error {
	query := `UPDATE vehiculos SET esta_activo = false, updated_at = now() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("eliminar vehículo: %w", err)
	}
	return nil
}

func (r *VehiculoRepo) ContarPorEstado(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT estado, count(*) FROM vehiculos
		WHERE esta_activo = true AND es_registro_actual = true
		GROUP BY estado`
	return contarPorEstado(ctx, r.pool, query, "vehículos")
}

// ── Solicitudes de baja ───────────────────────────────────────────────────────

// SolicitudBajaRepo implementa repository.SolicitudBajaRepository.
type SolicitudBajaRepo struct {
	pool *pgxpool.Pool
}

var _ repository.SolicitudBajaRepository = (*SolicitudBajaRepo)(nil)

// NewSolicitudBajaRepo crea el repositorio de solicitudes de baja.
func NewSolicitudBajaRepo(pool *pgxpool.Pool) *SolicitudBajaRepo {
	return &SolicitudBajaRepo{pool: pool}
}

const solicitudColumnas = `
	id, vehiculo_id, empresa_id, motivo, sustento, estado, motivo_rechazo,
	solicitado_por, resuelto_por, fecha_solicitud, fecha_resolucion,
	esta_activo, created_at, updated_at`

func (r *SolicitudBajaRepo) Create(ctx context.Context, s *entity.SolicitudBaja) error {
	query := `
		INSERT INTO solicitudes_baja (` + solicitudColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.VehiculoID, s.EmpresaID, s.Motivo, s.Sustento, s.Estado, s.MotivoRechazo,
		s.SolicitadoPor, s.ResueltoPor, s.FechaSolicitud, s.FechaResolucion,
		s.EstaActivo, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insertar solicitud de baja: %w", err)
	}
	return nil
}

func (r *SolicitudBajaRepo) GetByID(ctx context.Context, id string) (*entity.SolicitudBaja, error) {
	query := `SELECT ` + solicitudColumnas + ` FROM solicitudes_baja WHERE id = $1`
	var s entity.SolicitudBaja
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.VehiculoID, &s.EmpresaID, &s.Motivo, &s.Sustento, &s.Estado, &s.MotivoRechazo,
		&s.SolicitadoPor, &s.ResueltoPor, &s.FechaSolicitud, &s.FechaResolucion,
		&s.EstaActivo, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar solicitud de baja: %w", err)
	}
	return &s, nil
}

func (r *SolicitudBajaRepo) Update(ctx context.Context, s *entity.SolicitudBaja) error {
	query := `
		UPDATE solicitudes_baja SET
			vehiculo_id = $2, empresa_id = $3, motivo = $4, sustento = $5,
			estado = $6, motivo_rechazo = $7, solicitado_por = $8, resuelto_por = $9,
			fecha_solicitud = $10, fecha_resolucion = $11, esta_activo = $12, updated_at = $13
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.VehiculoID, s.EmpresaID, s.Motivo, s.Sustento,
		s.Estado, s.MotivoRechazo, s.SolicitadoPor, s.ResueltoPor,
		s.FechaSolicitud, s.FechaResolucion, s.EstaActivo, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("actualizar solicitud de baja: %w", err)
	}
	return nil
}

func (r *SolicitudBajaRepo) ListByVehiculo(ctx context.Context, vehiculoID string) ([]*entity.SolicitudBaja, error) {
	query := `
		SELECT ` + solicitudColumnas + `
		FROM solicitudes_baja
		WHERE esta_activo = true AND vehiculo_id = $1
		ORDER BY fecha_solicitud`
	return r.varias(ctx, query, vehiculoID)
}

func (r *SolicitudBajaRepo) ListByEstado(ctx context.Context, estado string, limit, offset int) ([]*entity.SolicitudBaja, error) {
	query := `
		SELECT ` + solicitudColumnas + `
		FROM solicitudes_baja
		WHERE esta_activo = true`
	var args []any
	if estado != "" {
		args = append(args, estado)
		query += ` AND estado = $1`
	}
	args = append(args, limit, offset)
	query += ` ORDER BY fecha_solicitud LIMIT $` + strconv.Itoa(len(args)-1) +
		` OFFSET $` + strconv.Itoa(len(args))
	return r.varias(ctx, query, args...)
}

func (r *SolicitudBajaRepo) varias(ctx context.Context, query string, args ...any) ([]*entity.SolicitudBaja, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar solicitudes de baja: %w", err)
	}
	defer rows.Close()

	var solicitudes []*entity.SolicitudBaja
	for rows.Next() {
		var s entity.SolicitudBaja
		if err := rows.Scan(
			&s.ID, &s.VehiculoID, &s.EmpresaID, &s.Motivo, &s.Sustento, &s.Estado, &s.MotivoRechazo,
			&s.SolicitadoPor, &s.ResueltoPor, &s.FechaSolicitud, &s.FechaResolucion,
			&s.EstaActivo, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("escanear solicitud de baja: %w", err)
		}
		solicitudes = append(solicitudes, &s)
	}
	return solicitudes, rows.Err()
}
