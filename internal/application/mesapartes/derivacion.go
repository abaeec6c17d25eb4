package mesapartes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// Derivar pasa un documento hacia un área. Un documento mantiene a lo sumo
// una derivación PENDIENTE/RECIBIDO por área destino; el primer pase lleva el
// documento de REGISTRADO a EN_PROCESO.
func (uc *UseCase) Derivar(ctx context.Context, documentoID string, in dto.DerivarDocumentoRequest, usuarioID string) (*dto.DerivacionResponse, error) {
	if in.AreaDestinoID == "" {
		return nil, fmt.Errorf("area_destino_id requerido: %w", domain.ErrEntradaInvalida)
	}
	d, err := uc.documentos.GetByID(ctx, documentoID)
	if err != nil {
		return nil, err
	}
	if d == nil || !d.EstaActivo {
		return nil, fmt.Errorf("documento %s: %w", documentoID, domain.ErrNoEncontrado)
	}
	if d.Estado == entity.DocumentoArchivado {
		return nil, fmt.Errorf("documento archivado; restaurar antes de derivar: %w", domain.ErrTransicionInvalida)
	}

	abierta, err := uc.derivaciones.ExisteAbiertaParaArea(ctx, documentoID, in.AreaDestinoID)
	if err != nil {
		return nil, err
	}
	if abierta {
		return nil, fmt.Errorf("el documento ya tiene una derivación abierta hacia el área %s: %w",
			in.AreaDestinoID, domain.ErrConflicto)
	}

	ahora := time.Now()
	dv := &entity.Derivacion{
		ID:              uuid.New().String(),
		DocumentoID:     d.ID,
		AreaOrigenID:    d.AreaActualID,
		AreaDestinoID:   in.AreaDestinoID,
		Estado:          entity.DerivacionPendiente,
		Instrucciones:   strings.TrimSpace(in.Instrucciones),
		UsuarioDeriva:   usuarioID,
		FechaDerivacion: ahora,
		EstaActivo:      true,
		CreatedAt:       ahora,
		UpdatedAt:       ahora,
	}
	if err := uc.derivaciones.Create(ctx, dv); err != nil {
		return nil, err
	}

	d.AreaActualID = in.AreaDestinoID
	if d.Estado == entity.DocumentoRegistrado {
		d.Estado = entity.DocumentoEnProceso
	}
	d.UpdatedAt = ahora
	if err := uc.documentos.Update(ctx, d); err != nil {
		return nil, err
	}
	uc.cache.Delete(ctx, claveEstadisticas)

	uc.notificador.Publicar(ports.Evento{
		Tipo:        ports.EventoDocumentoDerivado,
		DocumentoID: d.ID,
		Expediente:  d.NumeroExpediente,
		AreaID:      in.AreaDestinoID,
		Mensaje:     "documento derivado: " + d.Asunto,
		Fecha:       ahora,
	})
	return aDerivacionResponse(dv), nil
}

// Recibir marca la derivación como recibida por el área destino.
func (uc *UseCase) Recibir(ctx context.Context, derivacionID, usuarioID string) (*dto.DerivacionResponse, error) {
	dv, err := uc.derivaciones.GetByID(ctx, derivacionID)
	if err != nil {
		return nil, err
	}
	if dv == nil || !dv.EstaActivo {
		return nil, fmt.Errorf("derivación %s: %w", derivacionID, domain.ErrNoEncontrado)
	}
	if !entity.PuedeTransicionarDerivacion(dv.Estado, entity.DerivacionRecibida) {
		return nil, fmt.Errorf("derivación en estado %s: %w", dv.Estado, domain.ErrTransicionInvalida)
	}

	ahora := time.Now()
	dv.Estado = entity.DerivacionRecibida
	dv.UsuarioRecibe = usuarioID
	dv.FechaRecepcion = &ahora
	dv.UpdatedAt = ahora
	if err := uc.derivaciones.Update(ctx, dv); err != nil {
		return nil, err
	}

	uc.notificador.Publicar(ports.Evento{
		Tipo:        ports.EventoDocumentoRecibido,
		DocumentoID: dv.DocumentoID,
		UsuarioID:   dv.UsuarioDeriva,
		Mensaje:     "derivación recibida por el área " + dv.AreaDestinoID,
		Fecha:       ahora,
	})
	return aDerivacionResponse(dv), nil
}

// Atender cierra la derivación. Sin encadenamiento el documento pasa a
// ATENDIDO; con requiere_derivacion_adicional se abre un nuevo pase hacia la
// siguiente área y el documento sigue EN_PROCESO.
func (uc *UseCase) Atender(ctx context.Context, derivacionID string, in dto.AtenderDerivacionRequest, usuarioID string) (*dto.DerivacionResponse, error) {
	dv, err := uc.derivaciones.GetByID(ctx, derivacionID)
	if err != nil {
		return nil, err
	}
	if dv == nil || !dv.EstaActivo {
		return nil, fmt.Errorf("derivación %s: %w", derivacionID, domain.ErrNoEncontrado)
	}
	if !entity.PuedeTransicionarDerivacion(dv.Estado, entity.DerivacionAtendida) {
		return nil, fmt.Errorf("derivación en estado %s: %w", dv.Estado, domain.ErrTransicionInvalida)
	}
	if in.RequiereDerivacionAdicional && in.SiguienteAreaID == "" {
		return nil, fmt.Errorf("siguiente_area_id requerido al encadenar: %w", domain.ErrEntradaInvalida)
	}

	d, err := uc.documentos.GetByID(ctx, dv.DocumentoID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("documento %s: %w", dv.DocumentoID, domain.ErrNoEncontrado)
	}

	ahora := time.Now()
	dv.Estado = entity.DerivacionAtendida
	dv.UsuarioAtiende = usuarioID
	dv.FechaAtencion = &ahora
	dv.UpdatedAt = ahora
	if err := uc.derivaciones.Update(ctx, dv); err != nil {
		return nil, err
	}

	if in.RequiereDerivacionAdicional {
		if _, err := uc.Derivar(ctx, d.ID, dto.DerivarDocumentoRequest{
			AreaDestinoID: in.SiguienteAreaID,
			Instrucciones: in.Instrucciones,
		}, usuarioID); err != nil {
			return nil, err
		}
	} else {
		if !entity.PuedeTransicionarDocumento(d.Estado, entity.DocumentoAtendido) {
			return nil, fmt.Errorf("documento en estado %s: %w", d.Estado, domain.ErrTransicionInvalida)
		}
		d.Estado = entity.DocumentoAtendido
		d.UpdatedAt = ahora
		if err := uc.documentos.Update(ctx, d); err != nil {
			return nil, err
		}
		uc.cache.Delete(ctx, claveEstadisticas)

		uc.notificador.Publicar(ports.Evento{
			Tipo:        ports.EventoDocumentoAtendido,
			DocumentoID: d.ID,
			Expediente:  d.NumeroExpediente,
			UsuarioID:   d.RegistradoPor,
			Mensaje:     "documento atendido: " + d.Asunto,
			Fecha:       ahora,
		})
	}
	return aDerivacionResponse(dv), nil
}

// Rechazar rechaza una derivación pendiente. El motivo es obligatorio.
func (uc *UseCase) Rechazar(ctx context.Context, derivacionID string, in dto.RechazarDerivacionRequest, usuarioID string) (*dto.DerivacionResponse, error) {
	if strings.TrimSpace(in.Motivo) == "" {
		return nil, fmt.Errorf("el rechazo requiere motivo: %w", domain.ErrEntradaInvalida)
	}
	dv, err := uc.derivaciones.GetByID(ctx, derivacionID)
	if err != nil {
		return nil, err
	}
	if dv == nil || !dv.EstaActivo {
		return nil, fmt.Errorf("derivación %s: %w", derivacionID, domain.ErrNoEncontrado)
	}
	if !entity.PuedeTransicionarDerivacion(dv.Estado, entity.DerivacionRechazada) {
		return nil, fmt.Errorf("derivación en estado %s: %w", dv.Estado, domain.ErrTransicionInvalida)
	}

	ahora := time.Now()
	dv.Estado = entity.DerivacionRechazada
	dv.MotivoRechazo = strings.TrimSpace(in.Motivo)
	dv.UsuarioAtiende = usuarioID
	dv.UpdatedAt = ahora
	return aDerivacionResponse(dv), uc.derivaciones.Update(ctx, dv)
}

// ListDerivaciones historial de pases de un documento.
func (uc *UseCase) ListDerivaciones(ctx context.Context, documentoID string) ([]dto.DerivacionResponse, error) {
	list, err := uc.derivaciones.ListByDocumento(ctx, documentoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DerivacionResponse, 0, len(list))
	for _, dv := range list {
		out = append(out, *aDerivacionResponse(dv))
	}
	return out, nil
}

func aDerivacionResponse(dv *entity.Derivacion) *dto.DerivacionResponse {
	if dv == nil {
		return nil
	}
	return &dto.DerivacionResponse{
		ID:              dv.ID,
		DocumentoID:     dv.DocumentoID,
		AreaOrigenID:    dv.AreaOrigenID,
		AreaDestinoID:   dv.AreaDestinoID,
		Estado:          dv.Estado,
		Instrucciones:   dv.Instrucciones,
		MotivoRechazo:   dv.MotivoRechazo,
		UsuarioDeriva:   dv.UsuarioDeriva,
		UsuarioRecibe:   dv.UsuarioRecibe,
		UsuarioAtiende:  dv.UsuarioAtiende,
		FechaDerivacion: dv.FechaDerivacion,
		FechaRecepcion:  dv.FechaRecepcion,
		FechaAtencion:   dv.FechaAtencion,
	}
}
