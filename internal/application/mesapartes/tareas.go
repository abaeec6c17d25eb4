package mesapartes

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// maxAdjuntoKB tope declarado por adjunto (25 MB).
const maxAdjuntoKB = 25 * 1024

// extensionesAdjunto extensiones aceptadas por Mesa de Partes.
var extensionesAdjunto = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".jpg": true, ".jpeg": true, ".png": true, ".zip": true,
}

// AgregarAdjunto anexa los metadatos del archivo al documento y programa su
// verificación. Con la cola disponible la verificación corre en segundo plano
// y se devuelve el task-id; sin cola se verifica en línea.
func (uc *UseCase) AgregarAdjunto(ctx context.Context, documentoID string, in dto.AdjuntoRequest) (*dto.TareaResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("nombre del adjunto requerido: %w", domain.ErrEntradaInvalida)
	}
	if in.TamanioKB <= 0 {
		return nil, fmt.Errorf("tamanio_kb debe ser positivo: %w", domain.ErrEntradaInvalida)
	}
	d, err := uc.documentos.GetByID(ctx, documentoID)
	if err != nil {
		return nil, err
	}
	if d == nil || !d.EstaActivo {
		return nil, fmt.Errorf("documento %s: %w", documentoID, domain.ErrNoEncontrado)
	}

	adj := entity.Adjunto{
		ID:        uuid.NewString(),
		Nombre:    nombre,
		Ruta:      strings.TrimSpace(in.Ruta),
		TamanioKB: in.TamanioKB,
		SubidoEn:  uc.Ahora(),
	}
	d.Adjuntos = append(d.Adjuntos, adj)
	d.UpdatedAt = time.Now()
	if err := uc.documentos.Update(ctx, d); err != nil {
		return nil, err
	}

	args := map[string]string{"documento_id": d.ID, "adjunto_id": adj.ID}
	if uc.cola != nil && uc.cola.Disponible() {
		id, err := uc.cola.Encolar(ctx, ports.TareaProcesarAdjunto, args)
		if err == nil {
			return &dto.TareaResponse{TaskID: id, Nombre: ports.TareaProcesarAdjunto, Estado: ports.TareaPendiente}, nil
		}
		uc.log.Warn().Err(err).Str("tarea", ports.TareaProcesarAdjunto).Msg("encolado falló; se ejecuta síncrono")
	}
	if err := uc.ProcesarAdjunto(ctx, d.ID, adj.ID); err != nil {
		return nil, err
	}
	return &dto.TareaResponse{Nombre: ports.TareaProcesarAdjunto, Estado: ports.TareaCompletada}, nil
}

// ProcesarAdjunto cuerpo compartido entre el worker de la cola y el camino
// síncrono: valida extensión y tamaño declarados y marca el adjunto
// verificado.
func (uc *UseCase) ProcesarAdjunto(ctx context.Context, documentoID, adjuntoID string) error {
	d, err := uc.documentos.GetByID(ctx, documentoID)
	if err != nil {
		return err
	}
	if d == nil || !d.EstaActivo {
		return fmt.Errorf("documento %s: %w", documentoID, domain.ErrNoEncontrado)
	}
	idx := -1
	for i := range d.Adjuntos {
		if d.Adjuntos[i].ID == adjuntoID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("adjunto %s: %w", adjuntoID, domain.ErrNoEncontrado)
	}
	adj := &d.Adjuntos[idx]

	ext := strings.ToLower(filepath.Ext(adj.Nombre))
	if !extensionesAdjunto[ext] {
		return fmt.Errorf("extensión %q no permitida: %w", ext, domain.ErrEntradaInvalida)
	}
	if adj.TamanioKB > maxAdjuntoKB {
		return fmt.Errorf("adjunto de %d KB supera el tope de %d KB: %w", adj.TamanioKB, maxAdjuntoKB, domain.ErrEntradaInvalida)
	}

	adj.Verificado = true
	d.UpdatedAt = time.Now()
	return uc.documentos.Update(ctx, d)
}

// SincronizarDocumento empuja el documento hacia la plataforma externa de
// interoperabilidad. Con la cola disponible el envío corre en segundo plano;
// sin cola se envía en línea.
func (uc *UseCase) SincronizarDocumento(ctx context.Context, documentoID string) (*dto.TareaResponse, error) {
	if uc.externo == nil {
		return nil, fmt.Errorf("sincronización externa no configurada: %w", domain.ErrServicioExterno)
	}
	d, err := uc.documentos.GetByID(ctx, documentoID)
	if err != nil {
		return nil, err
	}
	if d == nil || !d.EstaActivo {
		return nil, fmt.Errorf("documento %s: %w", documentoID, domain.ErrNoEncontrado)
	}

	if uc.cola != nil && uc.cola.Disponible() {
		id, err := uc.cola.Encolar(ctx, ports.TareaSincronizarDoc, map[string]string{"documento_id": d.ID})
		if err == nil {
			return &dto.TareaResponse{TaskID: id, Nombre: ports.TareaSincronizarDoc, Estado: ports.TareaPendiente}, nil
		}
		uc.log.Warn().Err(err).Str("tarea", ports.TareaSincronizarDoc).Msg("encolado falló; se ejecuta síncrono")
	}
	if err := uc.EnviarDocumentoExterno(ctx, d.ID); err != nil {
		return nil, err
	}
	return &dto.TareaResponse{Nombre: ports.TareaSincronizarDoc, Estado: ports.TareaCompletada}, nil
}

// EnviarDocumentoExterno cuerpo compartido entre el worker y el camino
// síncrono. El envío es best-effort: un fallo deja la tarea en ERROR para
// reintentarla, nunca altera el documento local.
func (uc *UseCase) EnviarDocumentoExterno(ctx context.Context, documentoID string) error {
	if uc.externo == nil {
		return fmt.Errorf("sincronización externa no configurada: %w", domain.ErrServicioExterno)
	}
	d, err := uc.documentos.GetByID(ctx, documentoID)
	if err != nil {
		return err
	}
	if d == nil || !d.EstaActivo {
		return fmt.Errorf("documento %s: %w", documentoID, domain.ErrNoEncontrado)
	}
	if err := uc.externo.EnviarDocumento(ctx, d); err != nil {
		uc.log.Warn().Err(err).Str("expediente", d.NumeroExpediente).Msg("envío externo falló")
		return err
	}
	return nil
}

// NotificarMasivo difunde un aviso a varias áreas. Con la cola disponible el
// fan-out corre en segundo plano; sin cola se publica en línea.
func (uc *UseCase) NotificarMasivo(ctx context.Context, in dto.NotificarMasivoRequest) (*dto.TareaResponse, error) {
	mensaje := strings.TrimSpace(in.Mensaje)
	if mensaje == "" {
		return nil, fmt.Errorf("mensaje requerido: %w", domain.ErrEntradaInvalida)
	}
	areas := make([]string, 0, len(in.Areas))
	for _, a := range in.Areas {
		if a = strings.TrimSpace(a); a != "" {
			areas = append(areas, a)
		}
	}
	if len(areas) == 0 {
		return nil, fmt.Errorf("al menos un área destino: %w", domain.ErrEntradaInvalida)
	}

	if uc.cola != nil && uc.cola.Disponible() {
		args := map[string]string{"mensaje": mensaje, "areas": strings.Join(areas, ",")}
		id, err := uc.cola.Encolar(ctx, ports.TareaNotificarMasivo, args)
		if err == nil {
			return &dto.TareaResponse{TaskID: id, Nombre: ports.TareaNotificarMasivo, Estado: ports.TareaPendiente}, nil
		}
		uc.log.Warn().Err(err).Str("tarea", ports.TareaNotificarMasivo).Msg("encolado falló; se ejecuta síncrono")
	}
	if err := uc.DifundirAviso(ctx, mensaje, areas); err != nil {
		return nil, err
	}
	return &dto.TareaResponse{Nombre: ports.TareaNotificarMasivo, Estado: ports.TareaCompletada}, nil
}

// DifundirAviso cuerpo compartido entre el worker y el camino síncrono:
// publica un evento por área destino.
func (uc *UseCase) DifundirAviso(_ context.Context, mensaje string, areas []string) error {
	for _, area := range areas {
		uc.notificador.Publicar(ports.Evento{
			Tipo:    ports.EventoAvisoGeneral,
			AreaID:  area,
			Mensaje: mensaje,
			Fecha:   time.Now(),
		})
	}
	return nil
}

func aAdjuntosResponse(adjuntos []entity.Adjunto) []dto.AdjuntoResponse {
	if len(adjuntos) == 0 {
		return nil
	}
	out := make([]dto.AdjuntoResponse, 0, len(adjuntos))
	for _, a := range adjuntos {
		out = append(out, dto.AdjuntoResponse{
			ID:         a.ID,
			Nombre:     a.Nombre,
			Ruta:       a.Ruta,
			TamanioKB:  a.TamanioKB,
			Verificado: a.Verificado,
			SubidoEn:   a.SubidoEn,
		})
	}
	return out
}
