// Package resolucion implementa el motor de resoluciones: creación con linaje
// PADRE/HIJO, derivación de vigencia, máquina de estados, habilitación de
// vehículos y autorización de rutas con sincronización de las listas
// desnormalizadas en Empresa.
package resolucion

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

// Linaje puerto hacia el motor de historial de vehículos: tras habilitar o
// deshabilitar un vehículo se recalcula el linaje de su placa.
type Linaje interface {
	RecalcularPlaca(ctx context.Context, placa string) error
}

// UseCase casos de uso del agregado Resolucion.
type UseCase struct {
	resoluciones repository.ResolucionRepository
	empresas     repository.EmpresaRepository
	vehiculos    repository.VehiculoRepository
	cache        ports.Cache
	linaje       Linaje
	ttl          time.Duration

	// Ahora permite fijar el "hoy" civil en tests (default: hoy en Lima).
	Ahora func() time.Time
}

// New construye el caso de uso.
func New(
	resoluciones repository.ResolucionRepository,
	empresas repository.EmpresaRepository,
	vehiculos repository.VehiculoRepository,
	cache ports.Cache,
	linaje Linaje,
	ttl time.Duration,
) *UseCase {
	return &UseCase{
		resoluciones: resoluciones,
		empresas:     empresas,
		vehiculos:    vehiculos,
		cache:        cache,
		linaje:       linaje,
		ttl:          ttl,
		Ahora:        validacion.HoyLima,
	}
}

// Create crea una resolución. PADRE exige añosVigencia en {4,10} y calcula
// fin = inicio + años − 1 día. HIJO exige un PADRE de la misma empresa en
// estado VIGENTE o EMITIDA y hereda su vigencia; fijar vigencia propia es
// error. En éxito sincroniza empresa.resolucionesIds y padre.hijosIds.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateResolucionRequest) (*dto.ResolucionResponse, error) {
	if err := validacion.ValidarNumeroResolucion(in.Numero); err != nil {
		return nil, err
	}
	if in.TipoResolucion != entity.ResolucionPadre && in.TipoResolucion != entity.ResolucionHijo {
		return nil, fmt.Errorf("tipo_resolucion %q: %w", in.TipoResolucion, domain.ErrEntradaInvalida)
	}
	if !entity.TipoTramiteValido(in.TipoTramite) {
		return nil, fmt.Errorf("tipo_tramite %q: %w", in.TipoTramite, domain.ErrEntradaInvalida)
	}

	existente, err := uc.resoluciones.GetByNumero(ctx, in.Numero)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, fmt.Errorf("número %s: %w", in.Numero, domain.ErrDuplicado)
	}

	empresa, err := uc.empresas.GetByID(ctx, in.EmpresaID)
	if err != nil {
		return nil, err
	}
	if empresa == nil || !empresa.EstaActivo {
		return nil, fmt.Errorf("empresa %s: %w", in.EmpresaID, domain.ErrDependenciaFaltante)
	}

	fechaEmision, err := validacion.ParseFecha(in.FechaEmision)
	if err != nil {
		return nil, fmt.Errorf("fecha_emision: %w", err)
	}

	ahora := time.Now()
	r := &entity.Resolucion{
		ID:             uuid.New().String(),
		Numero:         in.Numero,
		TipoResolucion: in.TipoResolucion,
		TipoTramite:    in.TipoTramite,
		EmpresaID:      in.EmpresaID,
		Descripcion:    in.Descripcion,
		Estado:         entity.ResolucionEnProceso,
		FechaEmision:   fechaEmision,
		EstaActivo:     true,
		CreatedAt:      ahora,
		UpdatedAt:      ahora,
	}

	var padre *entity.Resolucion
	switch in.TipoResolucion {
	case entity.ResolucionPadre:
		if in.AniosVigencia != 4 && in.AniosVigencia != 10 {
			return nil, fmt.Errorf("anios_vigencia debe ser 4 o 10: %w", domain.ErrEntradaInvalida)
		}
		inicio, err := validacion.ParseFecha(in.FechaVigenciaInicio)
		if err != nil {
			return nil, fmt.Errorf("fecha_vigencia_inicio: %w", err)
		}
		r.AniosVigencia = in.AniosVigencia
		r.FechaVigenciaInicio = inicio
		r.FechaVigenciaFin = entity.CalcularVigenciaFin(inicio, in.AniosVigencia)

	case entity.ResolucionHijo:
		// La vigencia del HIJO se hereda; intentar fijarla es conflicto.
		if in.AniosVigencia != 0 || in.FechaVigenciaInicio != "" {
			return nil, fmt.Errorf("%w", domain.ErrVigenciaHeredada)
		}
		padre, err = uc.resolverPadre(ctx, in.PadreID, in.PadreNumero)
		if err != nil {
			return nil, err
		}
		if padre.EmpresaID != in.EmpresaID {
			return nil, fmt.Errorf("el PADRE %s pertenece a otra empresa: %w", padre.Numero, domain.ErrDependenciaFaltante)
		}
		if !padre.EsPadre() {
			return nil, fmt.Errorf("la resolución %s no es PADRE: %w", padre.Numero, domain.ErrDependenciaFaltante)
		}
		if padre.Estado != entity.ResolucionVigente && padre.Estado != entity.ResolucionEmitida {
			return nil, fmt.Errorf("el PADRE %s está %s: %w", padre.Numero, padre.Estado, domain.ErrDependenciaFaltante)
		}
		r.PadreID = padre.ID
		r.FechaVigenciaInicio = padre.FechaVigenciaInicio
		r.FechaVigenciaFin = padre.FechaVigenciaFin
	}

	if err := uc.resoluciones.Create(ctx, r); err != nil {
		return nil, err
	}

	// Back-references desnormalizadas: empresa y, para HIJO, el PADRE.
	empresa.ResolucionesIds = appendUnico(empresa.ResolucionesIds, r.ID)
	empresa.UpdatedAt = time.Now()
	if err := uc.empresas.Update(ctx, empresa); err != nil {
		return nil, err
	}
	if padre != nil {
		padre.HijosIds = appendUnico(padre.HijosIds, r.ID)
		padre.UpdatedAt = time.Now()
		if err := uc.resoluciones.Update(ctx, padre); err != nil {
			return nil, err
		}
	}

	uc.invalidarListados(ctx, r.EmpresaID)
	return aResponse(r), nil
}

// resolverPadre localiza el PADRE por ID o por número.
func (uc *UseCase) resolverPadre(ctx context.Context, padreID, padreNumero string) (*entity.Resolucion, error) {
	var padre *entity.Resolucion
	var err error
	switch {
	case padreID != "":
		padre, err = uc.resoluciones.GetByID(ctx, padreID)
	case padreNumero != "":
		padre, err = uc.resoluciones.GetByNumero(ctx, padreNumero)
	default:
		return nil, fmt.Errorf("HIJO requiere padre_id o padre_numero: %w", domain.ErrEntradaInvalida)
	}
	if err != nil {
		return nil, err
	}
	if padre == nil || !padre.EstaActivo {
		return nil, fmt.Errorf("resolución PADRE no encontrada: %w", domain.ErrDependenciaFaltante)
	}
	return padre, nil
}

// GetByID devuelve la resolución aplicando el refresco perezoso de estado:
// si está VIGENTE y su fin ya pasó, se reporta VENCIDA y se persiste detrás.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ResolucionResponse, error) {
	r, err := uc.resoluciones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	uc.refrescarVencida(ctx, r)
	return aResponse(r), nil
}

// refrescarVencida aplica la transición perezosa VIGENTE -> VENCIDA.
func (uc *UseCase) refrescarVencida(ctx context.Context, r *entity.Resolucion) {
	if r.Estado != entity.ResolucionVigente || !r.Vencida(uc.Ahora()) {
		return
	}
	r.Estado = entity.ResolucionVencida
	r.UpdatedAt = time.Now()
	// Write-behind: el lector ya ve VENCIDA aunque la escritura falle.
	_ = uc.resoluciones.Update(ctx, r)
	uc.invalidarListados(ctx, r.EmpresaID)
}

// Update modifica campos editables. Cambios de tipo o de empresa están
// prohibidos por contrato del DTO. Si cambia añosVigencia en un PADRE se
// recalcula el fin y se propaga a todos sus HIJOs.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateResolucionRequest) (*dto.ResolucionResponse, error) {
	r, err := uc.resoluciones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil || !r.EstaActivo {
		return nil, fmt.Errorf("resolución %s: %w", id, domain.ErrNoEncontrado)
	}

	if in.Descripcion != nil {
		r.Descripcion = *in.Descripcion
	}
	if in.TipoTramite != nil {
		if !entity.TipoTramiteValido(*in.TipoTramite) {
			return nil, fmt.Errorf("tipo_tramite %q: %w", *in.TipoTramite, domain.ErrEntradaInvalida)
		}
		r.TipoTramite = *in.TipoTramite
	}
	if in.AniosVigencia != nil {
		if r.EsHijo() {
			return nil, fmt.Errorf("%w", domain.ErrVigenciaHeredada)
		}
		if *in.AniosVigencia != 4 && *in.AniosVigencia != 10 {
			return nil, fmt.Errorf("anios_vigencia debe ser 4 o 10: %w", domain.ErrEntradaInvalida)
		}
		r.AniosVigencia = *in.AniosVigencia
		r.FechaVigenciaFin = entity.CalcularVigenciaFin(r.FechaVigenciaInicio, r.AniosVigencia)
	}
	r.UpdatedAt = time.Now()
	if err := uc.resoluciones.Update(ctx, r); err != nil {
		return nil, err
	}

	// Propagar la vigencia recalculada a los HIJOs.
	if in.AniosVigencia != nil {
		for _, hijoID := range r.HijosIds {
			hijo, err := uc.resoluciones.GetByID(ctx, hijoID)
			if err != nil || hijo == nil {
				continue
			}
			hijo.FechaVigenciaInicio = r.FechaVigenciaInicio
			hijo.FechaVigenciaFin = r.FechaVigenciaFin
			hijo.UpdatedAt = time.Now()
			if err := uc.resoluciones.Update(ctx, hijo); err != nil {
				return nil, err
			}
		}
	}

	uc.invalidarListados(ctx, r.EmpresaID)
	return aResponse(r), nil
}

// CambiarEstado aplica una transición de la tabla de estados. El motivo es
// obligatorio y queda registrado. Estados terminales rechazan todo cambio.
func (uc *UseCase) CambiarEstado(ctx context.Context, id string, in dto.CambiarEstadoResolucionRequest) (*dto.ResolucionResponse, error) {
	if !entity.EstadoResolucionValido(in.Estado) {
		return nil, fmt.Errorf("estado %q: %w", in.Estado, domain.ErrEntradaInvalida)
	}
	if in.Motivo == "" {
		return nil, fmt.Errorf("motivo requerido: %w", domain.ErrEntradaInvalida)
	}
	r, err := uc.resoluciones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil || !r.EstaActivo {
		return nil, fmt.Errorf("resolución %s: %w", id, domain.ErrNoEncontrado)
	}
	if !entity.PuedeTransicionarResolucion(r.Estado, in.Estado) {
		return nil, fmt.Errorf("%s -> %s: %w", r.Estado, in.Estado, domain.ErrTransicionInvalida)
	}
	r.Estado = in.Estado
	r.MotivoEstado = in.Motivo
	r.UpdatedAt = time.Now()
	if err := uc.resoluciones.Update(ctx, r); err != nil {
		return nil, err
	}
	uc.invalidarListados(ctx, r.EmpresaID)
	return aResponse(r), nil
}

// ListByEmpresa listado paginado con read-through de caché, clave por
// (empresa, huella del filtro, página).
func (uc *UseCase) ListByEmpresa(ctx context.Context, empresaID string, f repository.FiltroResoluciones, page dto.PageRequest) (*dto.ResolucionListResponse, error) {
	page.DefaultPage()
	clave := fmt.Sprintf("resoluciones:empresa:%s:%s|%s|%s|%d:%d:%d",
		empresaID, f.Estado, f.TipoResolucion, f.TipoTramite, f.Anio, page.Limit, page.Offset)

	if b, ok := uc.cache.Get(ctx, clave); ok {
		var out dto.ResolucionListResponse
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
	}

	list, err := uc.resoluciones.ListByEmpresa(ctx, empresaID, f, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ResolucionResponse, 0, len(list))
	for _, r := range list {
		uc.refrescarVencida(ctx, r)
		items = append(items, *aResponse(r))
	}
	out := &dto.ResolucionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	if b, err := json.Marshal(out); err == nil {
		uc.cache.Set(ctx, clave, b, uc.ttl)
	}
	return out, nil
}

// List listado global paginado (sin caché).
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ResolucionListResponse, error) {
	page.DefaultPage()
	list, err := uc.resoluciones.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ResolucionResponse, 0, len(list))
	for _, r := range list {
		uc.refrescarVencida(ctx, r)
		items = append(items, *aResponse(r))
	}
	return &dto.ResolucionListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Estadisticas conteo por estado, con read-through de caché.
func (uc *UseCase) Estadisticas(ctx context.Context) (*dto.EstadisticasResponse, error) {
	const clave = "resoluciones:estadisticas"
	if b, ok := uc.cache.Get(ctx, clave); ok {
		var out dto.EstadisticasResponse
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
	}
	conteos, err := uc.resoluciones.ContarPorEstado(ctx)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range conteos {
		total += n
	}
	out := &dto.EstadisticasResponse{Total: total, PorEstado: conteos}
	if b, err := json.Marshal(out); err == nil {
		uc.cache.Set(ctx, clave, b, uc.ttl)
	}
	return out, nil
}

// Delete baja lógica.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	r, err := uc.resoluciones.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("resolución %s: %w", id, domain.ErrNoEncontrado)
	}
	if err := uc.resoluciones.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidarListados(ctx, r.EmpresaID)
	return nil
}

func (uc *UseCase) invalidarListados(ctx context.Context, empresaID string) {
	uc.cache.DeletePattern(ctx, fmt.Sprintf("resoluciones:empresa:%s:*", empresaID))
	uc.cache.Delete(ctx, "resoluciones:estadisticas")
}

func appendUnico(ids []string, id string) []string {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}

func quitar(ids []string, id string) []string {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

func aResponse(r *entity.Resolucion) *dto.ResolucionResponse {
	if r == nil {
		return nil
	}
	return &dto.ResolucionResponse{
		ID:                      r.ID,
		Numero:                  r.Numero,
		TipoResolucion:          r.TipoResolucion,
		TipoTramite:             r.TipoTramite,
		EmpresaID:               r.EmpresaID,
		Descripcion:             r.Descripcion,
		Estado:                  r.Estado,
		MotivoEstado:            r.MotivoEstado,
		FechaEmision:            r.FechaEmision,
		FechaVigenciaInicio:     r.FechaVigenciaInicio,
		FechaVigenciaFin:        r.FechaVigenciaFin,
		AniosVigencia:           r.AniosVigencia,
		PadreID:                 r.PadreID,
		HijosIds:                r.HijosIds,
		VehiculosHabilitadosIds: r.VehiculosHabilitadosIds,
		RutasAutorizadasIds:     r.RutasAutorizadasIds,
		EstaActivo:              r.EstaActivo,
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
}
