package repository

import (
	"context"
	"time"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// FiltroDocumentos filtros del listado de Mesa de Partes.
type FiltroDocumentos struct {
	Estado    string
	Prioridad string
	AreaID    string
	Desde     *time.Time
	Hasta     *time.Time
	Busqueda  string // subcadena sobre asunto o remitente
}

// DocumentoRepository puerto de persistencia para documentos de Mesa de Partes.
type DocumentoRepository interface {
	Create(ctx context.Context, d *entity.Documento) error
	GetByID(ctx context.Context, id string) (*entity.Documento, error)
	GetByNumeroExpediente(ctx context.Context, numero string) (*entity.Documento, error)
	Update(ctx context.Context, d *entity.Documento) error
	List(ctx context.Context, f FiltroDocumentos, limit, offset int) ([]*entity.Documento, error)
	// SiguienteNumeroExpediente reserva atómicamente el siguiente correlativo
	// del año (secuencia EXP-YYYY-NNNN).
	SiguienteNumeroExpediente(ctx context.Context, anio int) (int, error)
	ContarPorEstado(ctx context.Context) (map[string]int, error)
}

// DerivacionRepository puerto de persistencia para derivaciones.
type DerivacionRepository interface {
	Create(ctx context.Context, d *entity.Derivacion) error
	GetByID(ctx context.Context, id string) (*entity.Derivacion, error)
	Update(ctx context.Context, d *entity.Derivacion) error
	ListByDocumento(ctx context.Context, documentoID string) ([]*entity.Derivacion, error)
	// ExisteAbiertaParaArea informa si el documento ya tiene una derivación
	// PENDIENTE o RECIBIDO hacia el área destino.
	ExisteAbiertaParaArea(ctx context.Context, documentoID, areaDestinoID string) (bool, error)
}

// ArchivoRepository puerto de persistencia para el archivo central.
type ArchivoRepository interface {
	Create(ctx context.Context, a *entity.Archivo) error
	GetByID(ctx context.Context, id string) (*entity.Archivo, error)
	GetByDocumento(ctx context.Context, documentoID string) (*entity.Archivo, error)
	Update(ctx context.Context, a *entity.Archivo) error
	// SiguienteSecuencia reserva el correlativo del código de ubicación por prefijo.
	SiguienteSecuencia(ctx context.Context, prefijo string) (int, error)
	// ListPorExpirar devuelve archivos cuya expiración cae dentro de la ventana.
	ListPorExpirar(ctx context.Context, hasta time.Time) ([]*entity.Archivo, error)
	ListExpirados(ctx context.Context, hoy time.Time) ([]*entity.Archivo, error)
}

// UsuarioRepository puerto de persistencia para usuarios.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	GetByDNI(ctx context.Context, dni string) (*entity.Usuario, error)
	Update(ctx context.Context, u *entity.Usuario) error
}
