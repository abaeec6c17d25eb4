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
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

// ventanaPorVencer ventana de aviso antes de la expiración de retención.
const ventanaPorVencer = 30 * 24 * time.Hour

// Archivar archiva un documento atendido. Genera el código de ubicación
// {prefijo}-{seq} a partir de la clasificación y calcula la expiración según
// la política de retención (PERMANENTE no expira).
func (uc *UseCase) Archivar(ctx context.Context, documentoID string, in dto.ArchivarDocumentoRequest, usuarioID string) (*dto.ArchivoResponse, error) {
	if strings.TrimSpace(in.Clasificacion) == "" {
		return nil, fmt.Errorf("clasificación requerida: %w", domain.ErrEntradaInvalida)
	}
	if _, ok := entity.AniosRetencion(in.PoliticaRetencion); !ok {
		return nil, fmt.Errorf("política de retención %q: %w", in.PoliticaRetencion, domain.ErrEntradaInvalida)
	}

	d, err := uc.documentos.GetByID(ctx, documentoID)
	if err != nil {
		return nil, err
	}
	if d == nil || !d.EstaActivo {
		return nil, fmt.Errorf("documento %s: %w", documentoID, domain.ErrNoEncontrado)
	}
	if !entity.PuedeTransicionarDocumento(d.Estado, entity.DocumentoArchivado) {
		return nil, fmt.Errorf("solo un documento ATENDIDO puede archivarse (actual: %s): %w",
			d.Estado, domain.ErrTransicionInvalida)
	}

	prefijo := prefijoClasificacion(in.Clasificacion)
	seq, err := uc.archivos.SiguienteSecuencia(ctx, prefijo)
	if err != nil {
		return nil, err
	}

	hoy := uc.Ahora()
	ahora := time.Now()
	a := &entity.Archivo{
		ID:                uuid.New().String(),
		DocumentoID:       d.ID,
		Clasificacion:     strings.TrimSpace(in.Clasificacion),
		CodigoUbicacion:   fmt.Sprintf("%s-%04d", prefijo, seq),
		PoliticaRetencion: in.PoliticaRetencion,
		FechaArchivo:      hoy,
		FechaExpiracion:   entity.CalcularExpiracionRetencion(in.PoliticaRetencion, hoy),
		ArchivadoPor:      usuarioID,
		Observaciones:     strings.TrimSpace(in.Observaciones),
		EstaActivo:        true,
		CreatedAt:         ahora,
		UpdatedAt:         ahora,
	}
	if err := uc.archivos.Create(ctx, a); err != nil {
		return nil, err
	}

	d.Estado = entity.DocumentoArchivado
	d.UpdatedAt = ahora
	if err := uc.documentos.Update(ctx, d); err != nil {
		return nil, err
	}
	uc.cache.Delete(ctx, claveEstadisticas)
	return aArchivoResponse(a), nil
}

// Restaurar devuelve un documento archivado a EN_PROCESO y desactiva su
// registro de archivo.
func (uc *UseCase) Restaurar(ctx context.Context, documentoID string) (*dto.DocumentoResponse, error) {
	d, err := uc.documentos.GetByID(ctx, documentoID)
	if err != nil {
		return nil, err
	}
	if d == nil || !d.EstaActivo {
		return nil, fmt.Errorf("documento %s: %w", documentoID, domain.ErrNoEncontrado)
	}
	if !entity.PuedeTransicionarDocumento(d.Estado, entity.DocumentoEnProceso) {
		return nil, fmt.Errorf("documento en estado %s: %w", d.Estado, domain.ErrTransicionInvalida)
	}

	a, err := uc.archivos.GetByDocumento(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	if a != nil && a.EstaActivo {
		a.EstaActivo = false
		a.UpdatedAt = time.Now()
		if err := uc.archivos.Update(ctx, a); err != nil {
			return nil, err
		}
	}

	d.Estado = entity.DocumentoEnProceso
	d.UpdatedAt = time.Now()
	if err := uc.documentos.Update(ctx, d); err != nil {
		return nil, err
	}
	uc.cache.Delete(ctx, claveEstadisticas)
	return aResponse(d), nil
}

// ArchivosPorVencer archivos cuya expiración cae dentro de los próximos 30
// días. Cada hallazgo publica un aviso al área actual del documento.
func (uc *UseCase) ArchivosPorVencer(ctx context.Context) ([]dto.ArchivoResponse, error) {
	hoy := uc.Ahora()
	list, err := uc.archivos.ListPorExpirar(ctx, hoy.Add(ventanaPorVencer))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ArchivoResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *aArchivoResponse(a))
		if d, err := uc.documentos.GetByID(ctx, a.DocumentoID); err == nil && d != nil {
			uc.notificador.Publicar(ports.Evento{
				Tipo:        ports.EventoDocumentoProximoVencer,
				DocumentoID: d.ID,
				Expediente:  d.NumeroExpediente,
				AreaID:      d.AreaActualID,
				Mensaje:     "retención del archivo " + a.CodigoUbicacion + " próxima a vencer",
				Fecha:       time.Now(),
			})
		}
	}
	return out, nil
}

// ArchivosExpirados archivos cuya retención ya venció.
func (uc *UseCase) ArchivosExpirados(ctx context.Context) ([]dto.ArchivoResponse, error) {
	list, err := uc.archivos.ListExpirados(ctx, uc.Ahora())
	if err != nil {
		return nil, err
	}
	out := make([]dto.ArchivoResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *aArchivoResponse(a))
	}
	return out, nil
}

// prefijoClasificacion deriva el prefijo del código de ubicación: iniciales
// de las palabras de la clasificación, hasta tres letras. "Serie Documental
// Administrativa" -> "SDA".
func prefijoClasificacion(clasificacion string) string {
	normalizada := validacion.NormalizarRazonSocial(clasificacion)
	var b strings.Builder
	for _, palabra := range strings.Fields(normalizada) {
		b.WriteByte(palabra[0])
		if b.Len() == 3 {
			break
		}
	}
	if b.Len() == 0 {
		return "GEN"
	}
	return b.String()
}

func aArchivoResponse(a *entity.Archivo) *dto.ArchivoResponse {
	if a == nil {
		return nil
	}
	return &dto.ArchivoResponse{
		ID:                a.ID,
		DocumentoID:       a.DocumentoID,
		Clasificacion:     a.Clasificacion,
		CodigoUbicacion:   a.CodigoUbicacion,
		PoliticaRetencion: a.PoliticaRetencion,
		FechaArchivo:      a.FechaArchivo,
		FechaExpiracion:   a.FechaExpiracion,
		ArchivadoPor:      a.ArchivadoPor,
	}
}
