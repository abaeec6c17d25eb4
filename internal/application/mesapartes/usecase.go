// Package mesapartes implementa el trámite documentario: registro con
// expediente anual, derivaciones entre áreas, archivamiento con política de
// retención y reportes generados en segundo plano.
package mesapartes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
	"github.com/drtc-puno/sirret-api/pkg/logger"
)

const claveEstadisticas = "documentos:estadisticas"

// UseCase casos de uso de Mesa de Partes.
type UseCase struct {
	documentos   repository.DocumentoRepository
	derivaciones repository.DerivacionRepository
	archivos     repository.ArchivoRepository

	cola        ports.Cola
	notificador ports.Notificador
	externo     ports.SincronizadorDocumentos
	excel       ports.GeneradorReporteExcel
	pdf         ports.GeneradorReportePDF
	cache       ports.Cache
	ttl         time.Duration
	log         *logger.Logger

	// Ahora permite fijar el reloj en tests.
	Ahora func() time.Time
}

// New construye el caso de uso. cola, notificador, externo y cache admiten nil.
func New(
	documentos repository.DocumentoRepository,
	derivaciones repository.DerivacionRepository,
	archivos repository.ArchivoRepository,
	cola ports.Cola,
	notificador ports.Notificador,
	externo ports.SincronizadorDocumentos,
	excel ports.GeneradorReporteExcel,
	pdf ports.GeneradorReportePDF,
	cache ports.Cache,
	ttl time.Duration,
	log *logger.Logger,
) *UseCase {
	if notificador == nil {
		notificador = ports.NotificadorNulo{}
	}
	if cache == nil {
		cache = ports.CacheNulo{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		documentos:   documentos,
		derivaciones: derivaciones,
		archivos:     archivos,
		cola:         cola,
		notificador:  notificador,
		externo:      externo,
		excel:        excel,
		pdf:          pdf,
		cache:        cache,
		ttl:          ttl,
		log:          log,
		Ahora:        validacion.HoyLima,
	}
}

// Create registra un documento. El número de expediente es el correlativo
// anual EXP-YYYY-NNNN, reservado atómicamente. Documentos URGENTE emiten una
// notificación al área destino.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateDocumentoRequest, registradoPor string) (*dto.DocumentoResponse, error) {
	if strings.TrimSpace(in.Asunto) == "" {
		return nil, fmt.Errorf("asunto requerido: %w", domain.ErrEntradaInvalida)
	}
	if in.Prioridad == "" {
		in.Prioridad = entity.PrioridadNormal
	}
	if !entity.PrioridadValida(in.Prioridad) {
		return nil, fmt.Errorf("prioridad %q: %w", in.Prioridad, domain.ErrEntradaInvalida)
	}
	if in.Remitente.Nombre == "" || in.Remitente.NumeroDocumento == "" {
		return nil, fmt.Errorf("remitente incompleto: %w", domain.ErrEntradaInvalida)
	}

	var fechaLimite *time.Time
	if in.FechaLimite != "" {
		f, err := validacion.ParseFecha(in.FechaLimite)
		if err != nil {
			return nil, fmt.Errorf("fecha_limite: %w", err)
		}
		fechaLimite = &f
	}

	hoy := uc.Ahora()
	seq, err := uc.documentos.SiguienteNumeroExpediente(ctx, hoy.Year())
	if err != nil {
		return nil, err
	}

	ahora := time.Now()
	d := &entity.Documento{
		ID:               uuid.New().String(),
		NumeroExpediente: fmt.Sprintf("EXP-%d-%04d", hoy.Year(), seq),
		TipoDocumentoID:  in.TipoDocumentoID,
		Remitente: entity.Remitente{
			TipoDocumento:   in.Remitente.TipoDocumento,
			NumeroDocumento: in.Remitente.NumeroDocumento,
			Nombre:          strings.TrimSpace(in.Remitente.Nombre),
			Email:           in.Remitente.Email,
			Telefono:        in.Remitente.Telefono,
		},
		Asunto:        strings.TrimSpace(in.Asunto),
		Folios:        in.Folios,
		Estado:        entity.DocumentoRegistrado,
		Prioridad:     in.Prioridad,
		AreaActualID:  in.AreaDestinoID,
		FechaLimite:   fechaLimite,
		RegistradoPor: registradoPor,
		EstaActivo:    true,
		CreatedAt:     ahora,
		UpdatedAt:     ahora,
	}
	if err := uc.documentos.Create(ctx, d); err != nil {
		return nil, err
	}
	uc.cache.Delete(ctx, claveEstadisticas)

	if d.Prioridad == entity.PrioridadUrgente && d.AreaActualID != "" {
		uc.notificador.Publicar(ports.Evento{
			Tipo:        ports.EventoDocumentoUrgente,
			DocumentoID: d.ID,
			Expediente:  d.NumeroExpediente,
			AreaID:      d.AreaActualID,
			Mensaje:     "documento urgente registrado: " + d.Asunto,
			Fecha:       ahora,
		})
	}
	return aResponse(d), nil
}

// GetByID obtiene un documento por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.DocumentoResponse, error) {
	d, err := uc.documentos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	return aResponse(d), nil
}

// GetByExpediente obtiene un documento por número de expediente.
func (uc *UseCase) GetByExpediente(ctx context.Context, numero string) (*dto.DocumentoResponse, error) {
	d, err := uc.documentos.GetByNumeroExpediente(ctx, strings.ToUpper(strings.TrimSpace(numero)))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	return aResponse(d), nil
}

// List listado con filtros y paginación.
func (uc *UseCase) List(ctx context.Context, f repository.FiltroDocumentos, page dto.PageRequest) (*dto.DocumentoListResponse, error) {
	page.DefaultPage()
	list, err := uc.documentos.List(ctx, f, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentoResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *aResponse(d))
	}
	return &dto.DocumentoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Estadisticas conteo por estado, cacheado.
func (uc *UseCase) Estadisticas(ctx context.Context) (*dto.EstadisticasResponse, error) {
	if b, ok := uc.cache.Get(ctx, claveEstadisticas); ok {
		var out dto.EstadisticasResponse
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
	}
	conteos, err := uc.documentos.ContarPorEstado(ctx)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range conteos {
		total += n
	}
	out := &dto.EstadisticasResponse{Total: total, PorEstado: conteos}
	if b, err := json.Marshal(out); err == nil {
		uc.cache.Set(ctx, claveEstadisticas, b, uc.ttl)
	}
	return out, nil
}

func aResponse(d *entity.Documento) *dto.DocumentoResponse {
	if d == nil {
		return nil
	}
	return &dto.DocumentoResponse{
		ID:               d.ID,
		NumeroExpediente: d.NumeroExpediente,
		TipoDocumentoID:  d.TipoDocumentoID,
		Remitente: dto.RemitenteDTO{
			TipoDocumento:   d.Remitente.TipoDocumento,
			NumeroDocumento: d.Remitente.NumeroDocumento,
			Nombre:          d.Remitente.Nombre,
			Email:           d.Remitente.Email,
			Telefono:        d.Remitente.Telefono,
		},
		Asunto:        d.Asunto,
		Folios:        d.Folios,
		Estado:        d.Estado,
		Prioridad:     d.Prioridad,
		AreaActualID:  d.AreaActualID,
		FechaLimite:   d.FechaLimite,
		Adjuntos:      aAdjuntosResponse(d.Adjuntos),
		RegistradoPor: d.RegistradoPor,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
