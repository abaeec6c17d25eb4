// Package empresa casos de uso del registro de empresas de transporte:
// alta con validación de RUC, enriquecimiento opcional contra SUNAT,
// transiciones de estado con motivo y estadísticas.
package empresa

import (
	"context"
	"encoding/json"
	"errors"
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

const claveEstadisticas = "empresas:estadisticas"

// UseCase casos de uso de empresas.
type UseCase struct {
	empresas repository.EmpresaRepository
	sunat    ports.ConsultaRUC // nil si la integración está deshabilitada
	cache    ports.Cache
	ttl      time.Duration
	log      *logger.Logger
}

// New construye el caso de uso. sunat puede ser nil.
func New(empresas repository.EmpresaRepository, sunat ports.ConsultaRUC, cache ports.Cache, ttl time.Duration, log *logger.Logger) *UseCase {
	if cache == nil {
		cache = ports.CacheNulo{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{empresas: empresas, sunat: sunat, cache: cache, ttl: ttl, log: log}
}

// Create registra una empresa. El RUC debe tener 11 dígitos y ser único. Si
// la consulta SUNAT está disponible se adjunta el snapshot; un fallo del
// servicio externo no bloquea el alta.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateEmpresaRequest) (*dto.EmpresaResponse, error) {
	if err := validacion.ValidarRUC(in.RUC); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.RazonSocial) == "" {
		return nil, fmt.Errorf("razón social requerida: %w", domain.ErrEntradaInvalida)
	}
	if in.RepresentanteDNI != "" {
		if err := validacion.ValidarDNI(in.RepresentanteDNI); err != nil {
			return nil, err
		}
	}

	existente, err := uc.empresas.GetByRUC(ctx, in.RUC)
	if err != nil {
		return nil, err
	}
	if existente != nil && existente.EstaActivo {
		return nil, fmt.Errorf("RUC %s ya registrado: %w", in.RUC, domain.ErrDuplicado)
	}

	ahora := time.Now()
	e := &entity.Empresa{
		ID:  uuid.New().String(),
		RUC: in.RUC,
		RazonSocial: entity.RazonSocial{
			Principal: strings.TrimSpace(in.RazonSocial),
			Minimo:    validacion.NormalizarRazonSocial(in.RazonSocial),
		},
		DireccionFiscal: strings.TrimSpace(in.DireccionFiscal),
		Representante: entity.RepresentanteLegal{
			DNI:             in.RepresentanteDNI,
			Nombres:         strings.TrimSpace(in.RepresentanteNombres),
			ApellidoPaterno: strings.TrimSpace(in.RepresentanteApellidoPaterno),
			ApellidoMaterno: strings.TrimSpace(in.RepresentanteApellidoMaterno),
		},
		Telefono:   strings.TrimSpace(in.Telefono),
		Email:      strings.TrimSpace(in.Email),
		Estado:     entity.EmpresaEnTramite,
		EstaActivo: true,
		CreatedAt:  ahora,
		UpdatedAt:  ahora,
	}

	if uc.sunat != nil {
		res, err := uc.sunat.Consultar(ctx, in.RUC)
		switch {
		case err != nil:
			uc.log.Warn().Err(err).Str("ruc", in.RUC).Msg("consulta SUNAT falló, se registra sin snapshot")
		case res != nil:
			e.DatosSunat = &entity.DatosSunat{
				Valido:        res.Valido,
				RazonSocial:   res.RazonSocial,
				Estado:        res.Estado,
				Condicion:     res.Condicion,
				Direccion:     res.Direccion,
				FechaConsulta: ahora,
			}
			if res.RazonSocial != "" && validacion.NormalizarRazonSocial(res.RazonSocial) != e.RazonSocial.Minimo {
				e.RazonSocial.SUNAT = res.RazonSocial
			}
		}
	}

	if err := uc.empresas.Create(ctx, e); err != nil {
		return nil, err
	}
	uc.cache.Delete(ctx, claveEstadisticas)
	return aResponse(e), nil
}

// GetByID obtiene una empresa por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.EmpresaResponse, error) {
	e, err := uc.empresas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	return aResponse(e), nil
}

// GetByRUC obtiene una empresa por RUC.
func (uc *UseCase) GetByRUC(ctx context.Context, ruc string) (*dto.EmpresaResponse, error) {
	if err := validacion.ValidarRUC(ruc); err != nil {
		return nil, err
	}
	e, err := uc.empresas.GetByRUC(ctx, ruc)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	return aResponse(e), nil
}

// Update modificación parcial de los datos de contacto y razón social.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateEmpresaRequest) (*dto.EmpresaResponse, error) {
	e, err := uc.empresas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || !e.EstaActivo {
		return nil, fmt.Errorf("empresa %s: %w", id, domain.ErrNoEncontrado)
	}
	if in.RazonSocial != nil {
		if strings.TrimSpace(*in.RazonSocial) == "" {
			return nil, fmt.Errorf("razón social vacía: %w", domain.ErrEntradaInvalida)
		}
		e.RazonSocial.Principal = strings.TrimSpace(*in.RazonSocial)
		e.RazonSocial.Minimo = validacion.NormalizarRazonSocial(*in.RazonSocial)
	}
	if in.DireccionFiscal != nil {
		e.DireccionFiscal = strings.TrimSpace(*in.DireccionFiscal)
	}
	if in.Telefono != nil {
		e.Telefono = strings.TrimSpace(*in.Telefono)
	}
	if in.Email != nil {
		e.Email = strings.TrimSpace(*in.Email)
	}
	e.UpdatedAt = time.Now()
	if err := uc.empresas.Update(ctx, e); err != nil {
		return nil, err
	}
	return aResponse(e), nil
}

// CambiarEstado aplica una transición del ciclo de vida. Toda transición
// requiere motivo; las no contempladas en la tabla se rechazan.
func (uc *UseCase) CambiarEstado(ctx context.Context, id string, in dto.CambiarEstadoEmpresaRequest) (*dto.EmpresaResponse, error) {
	if !entity.EstadoEmpresaValido(in.Estado) {
		return nil, fmt.Errorf("estado %q: %w", in.Estado, domain.ErrEntradaInvalida)
	}
	if strings.TrimSpace(in.Motivo) == "" {
		return nil, fmt.Errorf("el cambio de estado requiere motivo: %w", domain.ErrEntradaInvalida)
	}
	e, err := uc.empresas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || !e.EstaActivo {
		return nil, fmt.Errorf("empresa %s: %w", id, domain.ErrNoEncontrado)
	}
	if !entity.PuedeTransicionarEmpresa(e.Estado, in.Estado) {
		return nil, fmt.Errorf("transición %s -> %s no permitida: %w", e.Estado, in.Estado, domain.ErrTransicionInvalida)
	}
	e.Estado = in.Estado
	e.MotivoEstado = strings.TrimSpace(in.Motivo)
	e.UpdatedAt = time.Now()
	if err := uc.empresas.Update(ctx, e); err != nil {
		return nil, err
	}
	uc.cache.Delete(ctx, claveEstadisticas)
	return aResponse(e), nil
}

// List listado paginado.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.EmpresaResponse, error) {
	page.DefaultPage()
	list, err := uc.empresas.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmpresaResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *aResponse(e))
	}
	return out, nil
}

// Delete baja lógica de la empresa.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	e, err := uc.empresas.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("empresa %s: %w", id, domain.ErrNoEncontrado)
	}
	if err := uc.empresas.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.Delete(ctx, claveEstadisticas)
	return nil
}

// RefrescarSunat reconsulta SUNAT y actualiza el snapshot.
func (uc *UseCase) RefrescarSunat(ctx context.Context, id string) (*dto.EmpresaResponse, error) {
	if uc.sunat == nil {
		return nil, fmt.Errorf("consulta SUNAT deshabilitada: %w", domain.ErrServicioExterno)
	}
	e, err := uc.empresas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || !e.EstaActivo {
		return nil, fmt.Errorf("empresa %s: %w", id, domain.ErrNoEncontrado)
	}
	res, err := uc.sunat.Consultar(ctx, e.RUC)
	if err != nil {
		if errors.Is(err, domain.ErrServicioExterno) {
			return nil, err
		}
		return nil, fmt.Errorf("consulta RUC %s: %w", e.RUC, domain.ErrServicioExterno)
	}
	e.DatosSunat = &entity.DatosSunat{
		Valido:        res.Valido,
		RazonSocial:   res.RazonSocial,
		Estado:        res.Estado,
		Condicion:     res.Condicion,
		Direccion:     res.Direccion,
		FechaConsulta: time.Now(),
	}
	e.UpdatedAt = time.Now()
	if err := uc.empresas.Update(ctx, e); err != nil {
		return nil, err
	}
	return aResponse(e), nil
}

// Estadisticas conteo por estado, cacheado.
func (uc *UseCase) Estadisticas(ctx context.Context) (*dto.EstadisticasResponse, error) {
	if b, ok := uc.cache.Get(ctx, claveEstadisticas); ok {
		var out dto.EstadisticasResponse
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
	}
	conteos, err := uc.empresas.ContarPorEstado(ctx)
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

func aResponse(e *entity.Empresa) *dto.EmpresaResponse {
	if e == nil {
		return nil
	}
	nombre := strings.TrimSpace(strings.Join([]string{
		e.Representante.Nombres,
		e.Representante.ApellidoPaterno,
		e.Representante.ApellidoMaterno,
	}, " "))
	out := &dto.EmpresaResponse{
		ID:                  e.ID,
		RUC:                 e.RUC,
		RazonSocial:         e.RazonSocial.Principal,
		RazonSocialMinimo:   e.RazonSocial.Minimo,
		DireccionFiscal:     e.DireccionFiscal,
		RepresentanteDNI:    e.Representante.DNI,
		RepresentanteNombre: strings.Join(strings.Fields(nombre), " "),
		Telefono:            e.Telefono,
		Email:               e.Email,
		Estado:              e.Estado,
		MotivoEstado:        e.MotivoEstado,
		ResolucionesIds:     e.ResolucionesIds,
		VehiculosIds:        e.VehiculosIds,
		RutasIds:            e.RutasIds,
		EstaActivo:          e.EstaActivo,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
	if e.DatosSunat != nil {
		out.DatosSunat = &dto.DatosSunatResponse{
			Valido:        e.DatosSunat.Valido,
			RazonSocial:   e.DatosSunat.RazonSocial,
			Estado:        e.DatosSunat.Estado,
			Condicion:     e.DatosSunat.Condicion,
			Direccion:     e.DatosSunat.Direccion,
			FechaConsulta: e.DatosSunat.FechaConsulta,
		}
	}
	return out
}
