package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

// DocumentoRepo implementa repository.DocumentoRepository sobre PostgreSQL.
// El correlativo anual del expediente se reserva en la tabla
// secuencias_expediente con un upsert atómico.
type DocumentoRepo struct {
	pool *pgxpool.Pool
}

var _ repository.DocumentoRepository = (*DocumentoRepo)(nil)

// NewDocumentoRepo crea el repositorio de documentos de Mesa de Partes.
func NewDocumentoRepo(pool *pgxpool.Pool) *DocumentoRepo {
	return &DocumentoRepo{pool: pool}
}

const documentoColumnas = `
	id, numero_expediente, tipo_documento_id, remitente, asunto, folios,
	estado, prioridad, area_actual_id, fecha_limite, adjuntos, registrado_por,
	esta_activo, created_at, updated_at`

func (r *DocumentoRepo) Create(ctx context.Context, d *entity.Documento) error {
	query := `
		INSERT INTO documentos (` + documentoColumnas + `, busqueda)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.pool.Exec(ctx, query,
		d.ID, d.NumeroExpediente, d.TipoDocumentoID, d.Remitente, d.Asunto, d.Folios,
		d.Estado, d.Prioridad, d.AreaActualID, d.FechaLimite, d.Adjuntos, d.RegistradoPor,
		d.EstaActivo, d.CreatedAt, d.UpdatedAt,
		textoBusquedaDocumento(d),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insertar documento: %w", err)
	}
	return nil
}

// textoBusquedaDocumento materializa la columna de búsqueda por subcadena
// sobre asunto y nombre del remitente.
func textoBusquedaDocumento(d *entity.Documento) string {
	return validacion.NormalizarRazonSocial(d.Asunto) + " " +
		validacion.NormalizarRazonSocial(d.Remitente.Nombre)
}

func (r *DocumentoRepo) GetByID(ctx context.Context, id string) (*entity.Documento, error) {
	query := `SELECT ` + documentoColumnas + ` FROM documentos WHERE id = $1`
	return r.uno(ctx, query, id)
}

func (r *DocumentoRepo) GetByNumeroExpediente(ctx context.Context, numero string) (*entity.Documento, error) {
	query := `SELECT ` + documentoColumnas + ` FROM documentos WHERE numero_expediente = $1 AND esta_activo = true`
	return r.uno(ctx, query, numero)
}

func (r *DocumentoRepo) uno(ctx context.Context, query string, args ...any) (*entity.Documento, error) {
	var d entity.Documento
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&d.ID, &d.NumeroExpediente, &d.TipoDocumentoID, &d.Remitente, &d.Asunto, &d.Folios,
		&d.Estado, &d.Prioridad, &d.AreaActualID, &d.FechaLimite, &d.Adjuntos, &d.RegistradoPor,
		&d.EstaActivo, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar documento: %w", err)
	}
	return &d, nil
}

func (r *DocumentoRepo) Update(ctx context.Context, d *entity.Documento) error {
	query := `
		UPDATE documentos SET
			numero_expediente = $2, tipo_documento_id = $3, remitente = $4,
			asunto = $5, folios = $6, estado = $7, prioridad = $8,
			area_actual_id = $9, fecha_limite = $10, adjuntos = $11,
			registrado_por = $12, esta_activo = $13, updated_at = $14,
			busqueda = $15
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		d.ID, d.NumeroExpediente, d.TipoDocumentoID, d.Remitente,
		d.Asunto, d.Folios, d.Estado, d.Prioridad,
		d.AreaActualID, d.FechaLimite, d.Adjuntos,
		d.RegistradoPor, d.EstaActivo, d.UpdatedAt,
		textoBusquedaDocumento(d),
	)
	if err != nil {
		return fmt.Errorf("actualizar documento: %w", err)
	}
	return nil
}

func (r *DocumentoRepo) List(ctx context.Context, f repository.FiltroDocumentos, limit, offset int) ([]*entity.Documento, error) {
	query := `
		SELECT ` + documentoColumnas + `
		FROM documentos
		WHERE esta_activo = true`
	var args []any

	if f.Estado != "" {
		args = append(args, f.Estado)
		query += ` AND estado = $` + strconv.Itoa(len(args))
	}
	if f.Prioridad != "" {
		args = append(args, f.Prioridad)
		query += ` AND prioridad = $` + strconv.Itoa(len(args))
	}
	if f.AreaID != "" {
		args = append(args, f.AreaID)
		query += ` AND area_actual_id = $` + strconv.Itoa(len(args))
	}
	if f.Desde != nil {
		args = append(args, *f.Desde)
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if f.Hasta != nil {
		args = append(args, *f.Hasta)
		query += ` AND created_at <= $` + strconv.Itoa(len(args))
	}
	if f.Busqueda != "" {
		args = append(args, "%"+validacion.NormalizarRazonSocial(f.Busqueda)+"%")
		query += ` AND busqueda LIKE $` + strconv.Itoa(len(args))
	}

	args = append(args, limit, offset)
	query += ` ORDER BY numero_expediente LIMIT $` + strconv.Itoa(len(args)-1) +
		` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar documentos: %w", err)
	}
	defer rows.Close()

	var documentos []*entity.Documento
	for rows.Next() {
		var d entity.Documento
		if err := rows.Scan(
			&d.ID, &d.NumeroExpediente, &d.TipoDocumentoID, &d.Remitente, &d.Asunto, &d.Folios,
			&d.Estado, &d.Prioridad, &d.AreaActualID, &d.FechaLimite, &d.Adjuntos, &d.RegistradoPor,
			&d.EstaActivo, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("escanear documento: %w", err)
		}
		documentos = append(documentos, &d)
	}
	return documentos, rows.Err()
}

func (r *DocumentoRepo) SiguienteNumeroExpediente(ctx context.Context, anio int) (int, error) {
	query := `
		INSERT INTO secuencias_expediente (anio, valor)
		VALUES ($1, 1)
		ON CONFLICT (anio) DO UPDATE SET valor = secuencias_expediente.valor + 1
		RETURNING valor`
	var n int
	if err := r.pool.QueryRow(ctx, query, anio).Scan(&n); err != nil {
		return 0, fmt.Errorf("reservar correlativo de expediente: %w", err)
	}
	return n, nil
}

func (r *DocumentoRepo) ContarPorEstado(ctx context.Context) (map[string]int, error) {
	query := `SELECT estado, count(*) FROM documentos WHERE esta_activo = true GROUP BY estado`
	return contarPorEstado(ctx, r.pool, query, "documentos")
}

// ── Derivaciones ──────────────────────────────────────────────────────────────

// DerivacionRepo implementa repository.DerivacionRepository.
type DerivacionRepo struct {
	pool *pgxpool.Pool
}

var _ repository.DerivacionRepository = (*DerivacionRepo)(nil)

// NewDerivacionRepo crea el repositorio de derivaciones.
func NewDerivacionRepo(pool *pgxpool.Pool) *DerivacionRepo {
	return &DerivacionRepo{pool: pool}
}

const derivacionColumnas = `
	id, documento_id, area_origen_id, area_destino_id, estado, instrucciones,
	motivo_rechazo, usuario_deriva, usuario_recibe, usuario_atiende,
	fecha_derivacion, fecha_recepcion, fecha_atencion,
	esta_activo, created_at, updated_at`

func (r *DerivacionRepo) Create(ctx context.Context, d *entity.Derivacion) error {
	query := `
		INSERT INTO derivaciones (` + derivacionColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.pool.Exec(ctx, query,
		d.ID, d.DocumentoID, d.AreaOrigenID, d.AreaDestinoID, d.Estado, d.Instrucciones,
		d.MotivoRechazo, d.UsuarioDeriva, d.UsuarioRecibe, d.UsuarioAtiende,
		d.FechaDerivacion, d.FechaRecepcion, d.FechaAtencion,
		d.EstaActivo, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insertar derivación: %w", err)
	}
	return nil
}

func (r *DerivacionRepo) GetByID(ctx context.Context, id string) (*entity.Derivacion, error) {
	query := `SELECT ` + derivacionColumnas + ` FROM derivaciones WHERE id = $1`
	var d entity.Derivacion
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.DocumentoID, &d.AreaOrigenID, &d.AreaDestinoID, &d.Estado, &d.Instrucciones,
		&d.MotivoRechazo, &d.UsuarioDeriva, &d.UsuarioRecibe, &d.UsuarioAtiende,
		&d.FechaDerivacion, &d.FechaRecepcion, &d.FechaAtencion,
		&d.EstaActivo, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar derivación: %w", err)
	}
	return &d, nil
}

func (r *DerivacionRepo) Update(ctx context.Context, d *entity.Derivacion) error {
	query := `
		UPDATE derivaciones SET
			documento_id = $2, area_origen_id = $3, area_destino_id = $4,
			estado = $5, instrucciones = $6, motivo_rechazo = $7,
			usuario_deriva = $8, usuario_recibe = $9, usuario_atiende = $10,
			fecha_derivacion = $11, fecha_recepcion = $12, fecha_atencion = $13,
			esta_activo = $14, updated_at = $15
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		d.ID, d.DocumentoID, d.AreaOrigenID, d.AreaDestinoID,
		d.Estado, d.Instrucciones, d.MotivoRechazo,
		d.UsuarioDeriva, d.UsuarioRecibe, d.UsuarioAtiende,
		d.FechaDerivacion, d.FechaRecepcion, d.FechaAtencion,
		d.EstaActivo, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("actualizar derivación: %w", err)
	}
	return nil
}

func (r *DerivacionRepo) ListByDocumento(ctx context.Context, documentoID string) ([]*entity.Derivacion, error) {
	query := `
		SELECT ` + derivacionColumnas + `
		FROM derivaciones
		WHERE esta_activo = true AND documento_id = $1
		ORDER BY fecha_derivacion, created_at`

	rows, err := r.pool.Query(ctx, query, documentoID)
	if err != nil {
		return nil, fmt.Errorf("listar derivaciones: %w", err)
	}
	defer rows.Close()

	var derivaciones []*entity.Derivacion
	for rows.Next() {
		var d entity.Derivacion
		if err := rows.Scan(
			&d.ID, &d.DocumentoID, &d.AreaOrigenID, &d.AreaDestinoID, &d.Estado, &d.Instrucciones,
			&d.MotivoRechazo, &d.UsuarioDeriva, &d.UsuarioRecibe, &d.UsuarioAtiende,
			&d.FechaDerivacion, &d.FechaRecepcion, &d.FechaAtencion,
			&d.EstaActivo, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("escanear derivación: %w", err)
		}
		derivaciones = append(derivaciones, &d)
	}
	return derivaciones, rows.Err()
}

func (r *DerivacionRepo) ExisteAbiertaParaArea(ctx context.Context, documentoID, areaDestinoID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM derivaciones
			WHERE esta_activo = true AND documento_id = $1 AND area_destino_id = $2
			  AND estado IN ('` + entity.DerivacionPendiente + `', '` + entity.DerivacionRecibida + `')
		)`
	var existe bool
	if err := r.pool.QueryRow(ctx, query, documentoID, areaDestinoID).Scan(&existe); err != nil {
		return false, fmt.Errorf("verificar derivación abierta: %w", err)
	}
	return existe, nil
}

// ── Archivo central ───────────────────────────────────────────────────────────

// ArchivoRepo implementa repository.ArchivoRepository. El correlativo del
// código de ubicación se reserva por prefijo en secuencias_archivo.
type ArchivoRepo struct {
	pool *pgxpool.Pool
}

var _ repository.ArchivoRepository = (*ArchivoRepo)(nil)

// NewArchivoRepo crea el repositorio del archivo central.
func NewArchivoRepo(pool *pgxpool.Pool) *ArchivoRepo {
	return &ArchivoRepo{pool: pool}
}

const archivoColumnas = `
	id, documento_id, clasificacion, codigo_ubicacion, politica_retencion,
	fecha_archivo, fecha_expiracion, archivado_por, observaciones,
	esta_activo, created_at, updated_at`

func (r *ArchivoRepo) Create(ctx context.Context, a *entity.Archivo) error {
	query := `
		INSERT INTO archivos (` + archivoColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.DocumentoID, a.Clasificacion, a.CodigoUbicacion, a.PoliticaRetencion,
		a.FechaArchivo, a.FechaExpiracion, a.ArchivadoPor, a.Observaciones,
		a.EstaActivo, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insertar archivo: %w", err)
	}
	return nil
}

func (r *ArchivoRepo) GetByID(ctx context.Context, id string) (*entity.Archivo, error) {
	query := `SELECT ` + archivoColumnas + ` FROM archivos WHERE id = $1`
	return r.uno(ctx, query, id)
}

func (r *ArchivoRepo) GetByDocumento(ctx context.Context, documentoID string) (*entity.Archivo, error) {
	query := `SELECT ` + archivoColumnas + ` FROM archivos WHERE documento_id = $1 AND esta_activo = true`
	return r.uno(ctx, query, documentoID)
}

func (r *ArchivoRepo) uno(ctx context.Context, query string, args ...any) (*entity.Archivo, error) {
	var a entity.Archivo
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.DocumentoID, &a.Clasificacion, &a.CodigoUbicacion, &a.PoliticaRetencion,
		&a.FechaArchivo, &a.FechaExpiracion, &a.ArchivadoPor, &a.Observaciones,
		&a.EstaActivo, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar archivo: %w", err)
	}
	return &a, nil
}

func (r *ArchivoRepo) Update(ctx context.Context, a *entity.Archivo) error {
	query := `
		UPDATE archivos SET
			documento_id = $2, clasificacion = $3, codigo_ubicacion = $4,
			politica_retencion = $5, fecha_archivo = $6, fecha_expiracion = $7,
			archivado_por = $8, observaciones = $9, esta_activo = $10, updated_at = $11
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.DocumentoID, a.Clasificacion, a.CodigoUbicacion,
		a.PoliticaRetencion, a.FechaArchivo, a.FechaExpiracion,
		a.ArchivadoPor, a.Observaciones, a.EstaActivo, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("actualizar archivo: %w", err)
	}
	return nil
}

func (r *ArchivoRepo) SiguienteSecuencia(ctx context.Context, prefijo string) (int, error) {
	query := `
		INSERT INTO secuencias_archivo (prefijo, valor)
		VALUES ($1, 1)
		ON CONFLICT (prefijo) DO UPDATE SET valor = secuencias_archivo.valor + 1
		RETURNING valor`
	var n int
	if err := r.pool.QueryRow(ctx, query, prefijo).Scan(&n); err != nil {
		return 0, fmt.Errorf("reservar correlativo de ubicación: %w", err)
	}
	return n, nil
}

func (r *ArchivoRepo) ListPorExpirar(ctx context.Context, hasta time.Time) ([]*entity.Archivo, error) {
	query := `
		SELECT ` + archivoColumnas + `
		FROM archivos
		WHERE esta_activo = true AND fecha_expiracion IS NOT NULL AND fecha_expiracion <= $1
		ORDER BY fecha_expiracion`
	return r.varios(ctx, query, hasta)
}

func (r *ArchivoRepo) ListExpirados(ctx context.Context, hoy time.Time) ([]*entity.Archivo, error) {
	query := `
		SELECT ` + archivoColumnas + `
		FROM archivos
		WHERE esta_activo = true AND fecha_expiracion IS NOT NULL AND fecha_expiracion < $1
		ORDER BY fecha_expiracion`
	return r.varios(ctx, query, hoy)
}

func (r *ArchivoRepo) varios(ctx context.Context, query string, args ...any) ([]*entity.Archivo, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar archivos: %w", err)
	}
	defer rows.Close()

	var archivos []*entity.Archivo
	for rows.Next() {
		var a entity.Archivo
		if err := rows.Scan(
			&a.ID, &a.DocumentoID, &a.Clasificacion, &a.CodigoUbicacion, &a.PoliticaRetencion,
			&a.FechaArchivo, &a.FechaExpiracion, &a.ArchivadoPor, &a.Observaciones,
			&a.EstaActivo, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("escanear archivo: %w", err)
		}
		archivos = append(archivos, &a)
	}
	return archivos, rows.Err()
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

// UsuarioRepo implementa repository.UsuarioRepository.
type UsuarioRepo struct {
	pool *pgxpool.Pool
}

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// NewUsuarioRepo crea el repositorio de usuarios.
func NewUsuarioRepo(pool *pgxpool.Pool) *UsuarioRepo {
	return &UsuarioRepo{pool: pool}
}

const usuarioColumnas = `
	id, dni, nombres, apellidos, email, password_hash, rol, area_id,
	esta_activo, created_at, updated_at`

func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (` + usuarioColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.DNI, u.Nombres, u.Apellidos, u.Email, u.PasswordHash, u.Rol, u.AreaID,
		u.EstaActivo, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insertar usuario: %w", err)
	}
	return nil
}

func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumnas + ` FROM usuarios WHERE id = $1`
	return r.uno(ctx, query, id)
}

func (r *UsuarioRepo) GetByDNI(ctx context.Context, dni string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumnas + ` FROM usuarios WHERE dni = $1`
	return r.uno(ctx, query, dni)
}

func (r *UsuarioRepo) uno(ctx context.Context, query string, args ...any) (*entity.Usuario, error) {
	var u entity.Usuario
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.DNI, &u.Nombres, &u.Apellidos, &u.Email, &u.PasswordHash, &u.Rol, &u.AreaID,
		&u.EstaActivo, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar usuario: %w", err)
	}
	return &u, nil
}

func (r *UsuarioRepo) Update(ctx context.Context, u *entity.Usuario) error {
	query := `
		UPDATE usuarios SET
			dni = $2, nombres = $3, apellidos = $4, email = $5,
			password_hash = $6, rol = $7, area_id = $8,
			esta_activo = $9, updated_at = $10
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.DNI, u.Nombres, u.Apellidos, u.Email,
		u.PasswordHash, u.Rol, u.AreaID,
		u.EstaActivo, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("actualizar usuario: %w", err)
	}
	return nil
}
