// Package ruta implementa el motor de rutas: unicidad de código por
// resolución, normalización origen/destino, búsqueda y combinaciones, y la
// derivación de rutas específicas por vehículo.
package ruta

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

// Autorizador puerto hacia el motor de resoluciones para mantener la lista
// rutasAutorizadasIds sin duplicar la lógica de membresía.
type Autorizador interface {
	AttachRuta(ctx context.Context, resolucionID, rutaID string) error
	DetachRuta(ctx context.Context, resolucionID, rutaID string) error
}

// UseCase casos de uso de rutas generales y específicas.
type UseCase struct {
	rutas        repository.RutaRepository
	especificas  repository.RutaEspecificaRepository
	resoluciones repository.ResolucionRepository
	empresas     repository.EmpresaRepository
	vehiculos    repository.VehiculoRepository
	autorizador  Autorizador
}

// New construye el caso de uso.
func New(
	rutas repository.RutaRepository,
	especificas repository.RutaEspecificaRepository,
	resoluciones repository.ResolucionRepository,
	empresas repository.EmpresaRepository,
	vehiculos repository.VehiculoRepository,
	autorizador Autorizador,
) *UseCase {
	return &UseCase{
		rutas:        rutas,
		especificas:  especificas,
		resoluciones: resoluciones,
		empresas:     empresas,
		vehiculos:    vehiculos,
		autorizador:  autorizador,
	}
}

// Create crea una ruta general bajo una resolución. El código se normaliza a
// dos dígitos antes del chequeo de unicidad (resolución, código); el mismo
// código puede repetirse en resoluciones distintas. Origen y destino no
// pueden coincidir.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateRutaRequest) (*dto.RutaResponse, error) {
	codigo, err := validacion.NormalizarCodigoRuta(in.CodigoRuta)
	if err != nil {
		return nil, err
	}
	if igualLocalidad(in.Origen, in.Destino) {
		return nil, fmt.Errorf("origen y destino no pueden coincidir: %w", domain.ErrEntradaInvalida)
	}

	r, err := uc.resoluciones.GetByID(ctx, in.ResolucionID)
	if err != nil {
		return nil, err
	}
	if r == nil || !r.EstaActivo {
		return nil, fmt.Errorf("resolución %s: %w", in.ResolucionID, domain.ErrDependenciaFaltante)
	}
	if r.EmpresaID != in.EmpresaID {
		return nil, fmt.Errorf("la resolución %s pertenece a otra empresa: %w", r.Numero, domain.ErrDependenciaFaltante)
	}

	existe, err := uc.rutas.ExisteCodigoEnResolucion(ctx, in.ResolucionID, codigo, "")
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, fmt.Errorf("código %s ya usado en la resolución %s: %w", codigo, r.Numero, domain.ErrDuplicado)
	}

	ahora := time.Now()
	ruta := &entity.Ruta{
		ID:           uuid.New().String(),
		CodigoRuta:   codigo,
		EmpresaID:    in.EmpresaID,
		ResolucionID: in.ResolucionID,
		Origen:       aLocalidadEntity(in.Origen),
		Destino:      aLocalidadEntity(in.Destino),
		Itinerario:   aItinerarioEntity(in.Itinerario),
		Frecuencias:  in.Frecuencias,
		TipoRuta:     entity.RutaGeneral,
		TipoServicio: in.TipoServicio,
		Estado:       entity.RutaActiva,
		EstaActivo:   true,
		CreatedAt:    ahora,
		UpdatedAt:    ahora,
	}
	if err := uc.rutas.Create(ctx, ruta); err != nil {
		return nil, err
	}

	if err := uc.autorizador.AttachRuta(ctx, in.ResolucionID, ruta.ID); err != nil {
		return nil, err
	}

	// Back-list de la empresa.
	empresa, err := uc.empresas.GetByID(ctx, in.EmpresaID)
	if err == nil && empresa != nil {
		empresa.RutasIds = appendUnico(empresa.RutasIds, ruta.ID)
		empresa.UpdatedAt = time.Now()
		_ = uc.empresas.Update(ctx, empresa)
	}

	return aResponse(ruta), nil
}

// GetByID obtiene una ruta por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.RutaResponse, error) {
	r, err := uc.rutas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	return aResponse(r), nil
}

// Update modifica una ruta general. Un cambio de código se renormaliza y
// revalida contra la unicidad dentro de su resolución.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateRutaRequest) (*dto.RutaResponse, error) {
	r, err := uc.rutas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil || !r.EstaActivo {
		return nil, fmt.Errorf("ruta %s: %w", id, domain.ErrNoEncontrado)
	}

	if in.CodigoRuta != nil {
		codigo, err := validacion.NormalizarCodigoRuta(*in.CodigoRuta)
		if err != nil {
			return nil, err
		}
		if codigo != r.CodigoRuta {
			existe, err := uc.rutas.ExisteCodigoEnResolucion(ctx, r.ResolucionID, codigo, r.ID)
			if err != nil {
				return nil, err
			}
			if existe {
				return nil, fmt.Errorf("código %s ya usado en la resolución: %w", codigo, domain.ErrDuplicado)
			}
			r.CodigoRuta = codigo
		}
	}
	if in.Frecuencias != nil {
		r.Frecuencias = *in.Frecuencias
	}
	if in.TipoServicio != nil {
		r.TipoServicio = *in.TipoServicio
	}
	if in.Estado != nil {
		if !entity.EstadoRutaValido(*in.Estado) {
			return nil, fmt.Errorf("estado %q: %w", *in.Estado, domain.ErrEntradaInvalida)
		}
		r.Estado = *in.Estado
	}
	if in.Itinerario != nil {
		r.Itinerario = aItinerarioEntity(in.Itinerario)
	}
	r.UpdatedAt = time.Now()
	if err := uc.rutas.Update(ctx, r); err != nil {
		return nil, err
	}
	return aResponse(r), nil
}

// Delete baja lógica; revoca la autorización en la resolución.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	r, err := uc.rutas.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("ruta %s: %w", id, domain.ErrNoEncontrado)
	}
	if err := uc.rutas.Delete(ctx, id); err != nil {
		return err
	}
	return uc.autorizador.DetachRuta(ctx, r.ResolucionID, r.ID)
}

// ListByResolucion rutas de una resolución.
func (uc *UseCase) ListByResolucion(ctx context.Context, resolucionID string) ([]dto.RutaResponse, error) {
	list, err := uc.rutas.ListByResolucion(ctx, resolucionID)
	if err != nil {
		return nil, err
	}
	return aResponses(list), nil
}

// ListByEmpresa rutas de una empresa.
func (uc *UseCase) ListByEmpresa(ctx context.Context, empresaID string) ([]dto.RutaResponse, error) {
	list, err := uc.rutas.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	return aResponses(list), nil
}

// ListByEmpresaYResolucion rutas de una empresa bajo una resolución puntual.
func (uc *UseCase) ListByEmpresaYResolucion(ctx context.Context, empresaID, resolucionID string) ([]dto.RutaResponse, error) {
	list, err := uc.rutas.ListByResolucion(ctx, resolucionID)
	if err != nil {
		return nil, err
	}
	filtradas := make([]*entity.Ruta, 0, len(list))
	for _, r := range list {
		if r.EmpresaID == empresaID {
			filtradas = append(filtradas, r)
		}
	}
	return aResponses(filtradas), nil
}

// Buscar búsqueda de texto libre por subcadena sobre origen o destino.
func (uc *UseCase) Buscar(ctx context.Context, texto string, page dto.PageRequest) ([]dto.RutaResponse, error) {
	page.DefaultPage()
	list, err := uc.rutas.Buscar(ctx, strings.TrimSpace(texto), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return aResponses(list), nil
}

// Combinaciones pares únicos (origen, destino) con sus rutas, con filtro de
// texto opcional. El orden de los pares es determinista (alfabético).
func (uc *UseCase) Combinaciones(ctx context.Context, busqueda string) ([]dto.CombinacionRutasResponse, error) {
	list, err := uc.rutas.Buscar(ctx, strings.TrimSpace(busqueda), 1000, 0)
	if err != nil {
		return nil, err
	}
	porPar := map[string][]*entity.Ruta{}
	for _, r := range list {
		clave := r.Origen.Nombre + "→" + r.Destino.Nombre
		porPar[clave] = append(porPar[clave], r)
	}
	claves := make([]string, 0, len(porPar))
	for k := range porPar {
		claves = append(claves, k)
	}
	sort.Strings(claves)

	out := make([]dto.CombinacionRutasResponse, 0, len(claves))
	for _, k := range claves {
		rutas := porPar[k]
		out = append(out, dto.CombinacionRutasResponse{
			Origen:  rutas[0].Origen.Nombre,
			Destino: rutas[0].Destino.Nombre,
			Rutas:   aResponses(rutas),
		})
	}
	return out, nil
}

// Estadisticas conteo por estado.
func (uc *UseCase) Estadisticas(ctx context.Context) (*dto.EstadisticasResponse, error) {
	conteos, err := uc.rutas.ContarPorEstado(ctx)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range conteos {
		total += n
	}
	return &dto.EstadisticasResponse{Total: total, PorEstado: conteos}, nil
}

func igualLocalidad(a, b dto.LocalidadDTO) bool {
	if a.ID != "" && a.ID == b.ID {
		return true
	}
	return validacion.NormalizarRazonSocial(a.Nombre) == validacion.NormalizarRazonSocial(b.Nombre)
}

func appendUnico(ids []string, id string) []string {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}

func aLocalidadEntity(l dto.LocalidadDTO) entity.Localidad {
	return entity.Localidad{ID: l.ID, Nombre: strings.ToUpper(strings.TrimSpace(l.Nombre))}
}

func aItinerarioEntity(ls []dto.LocalidadDTO) []entity.Localidad {
	if len(ls) == 0 {
		return nil
	}
	out := make([]entity.Localidad, 0, len(ls))
	for _, l := range ls {
		out = append(out, aLocalidadEntity(l))
	}
	return out
}

func aLocalidadDTO(l entity.Localidad) dto.LocalidadDTO {
	return dto.LocalidadDTO{ID: l.ID, Nombre: l.Nombre}
}

func aItinerarioDTO(ls []entity.Localidad) []dto.LocalidadDTO {
	if len(ls) == 0 {
		return nil
	}
	out := make([]dto.LocalidadDTO, 0, len(ls))
	for _, l := range ls {
		out = append(out, aLocalidadDTO(l))
	}
	return out
}

func aResponse(r *entity.Ruta) *dto.RutaResponse {
	if r == nil {
		return nil
	}
	return &dto.RutaResponse{
		ID:           r.ID,
		CodigoRuta:   r.CodigoRuta,
		EmpresaID:    r.EmpresaID,
		ResolucionID: r.ResolucionID,
		Origen:       aLocalidadDTO(r.Origen),
		Destino:      aLocalidadDTO(r.Destino),
		Itinerario:   aItinerarioDTO(r.Itinerario),
		Frecuencias:  r.Frecuencias,
		TipoRuta:     r.TipoRuta,
		TipoServicio: r.TipoServicio,
		Estado:       r.Estado,
		EstaActivo:   r.EstaActivo,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func aResponses(list []*entity.Ruta) []dto.RutaResponse {
	out := make([]dto.RutaResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *aResponse(r))
	}
	return out
}
