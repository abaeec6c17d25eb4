// Package vehiculo implementa el motor de vehículos: altas, filtro de
// visibilidad, historial de validación por placa y el flujo de solicitudes
// de baja.
package vehiculo

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

// UseCase casos de uso del agregado Vehiculo.
type UseCase struct {
	vehiculos repository.VehiculoRepository
	empresas  repository.EmpresaRepository
	cache     ports.Cache
	historial *HistorialService
	ttl       time.Duration
}

// New construye el caso de uso.
func New(
	vehiculos repository.VehiculoRepository,
	empresas repository.EmpresaRepository,
	cache ports.Cache,
	historial *HistorialService,
	ttl time.Duration,
) *UseCase {
	return &UseCase{
		vehiculos: vehiculos,
		empresas:  empresas,
		cache:     cache,
		historial: historial,
		ttl:       ttl,
	}
}

// Create registra un vehículo. La placa debe ser única entre registros con
// esRegistroActual=true; los históricos de la misma placa se preservan.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateVehiculoRequest) (*dto.VehiculoResponse, error) {
	placa := validacion.NormalizarPlaca(in.Placa)
	if err := validacion.ValidarPlaca(placa); err != nil {
		return nil, err
	}
	actual, err := uc.vehiculos.GetActualByPlaca(ctx, placa)
	if err != nil {
		return nil, err
	}
	if actual != nil && actual.EstaActivo {
		return nil, fmt.Errorf("placa %s ya registrada: %w", placa, domain.ErrDuplicado)
	}
	empresa, err := uc.empresas.GetByID(ctx, in.EmpresaID)
	if err != nil {
		return nil, err
	}
	if empresa == nil || !empresa.EstaActivo {
		return nil, fmt.Errorf("empresa %s: %w", in.EmpresaID, domain.ErrDependenciaFaltante)
	}

	ahora := time.Now()
	v := &entity.Vehiculo{
		ID:               uuid.New().String(),
		Placa:            placa,
		NumeroSerie:      in.NumeroSerie,
		NumeroMotor:      in.NumeroMotor,
		Datos:            aDatosEntity(in.Datos),
		EmpresaActualID:  in.EmpresaID,
		Estado:           entity.VehiculoActivo,
		EsRegistroActual: true,
		EstaActivo:       true,
		CreatedAt:        ahora,
		UpdatedAt:        ahora,
	}
	if err := uc.vehiculos.Create(ctx, v); err != nil {
		return nil, err
	}

	empresa.VehiculosIds = appendUnico(empresa.VehiculosIds, v.ID)
	empresa.UpdatedAt = time.Now()
	if err := uc.empresas.Update(ctx, empresa); err != nil {
		return nil, err
	}
	uc.invalidar(ctx)
	return aResponse(v), nil
}

// GetByID obtiene un vehículo por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.VehiculoResponse, error) {
	v, err := uc.vehiculos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return aResponse(v), nil
}

// GetByPlaca obtiene el registro vigente de la placa.
func (uc *UseCase) GetByPlaca(ctx context.Context, placa string) (*dto.VehiculoResponse, error) {
	v, err := uc.vehiculos.GetActualByPlaca(ctx, validacion.NormalizarPlaca(placa))
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return aResponse(v), nil
}

// Historial devuelve la familia completa de registros de la placa en orden
// de linaje (históricos primero, el vigente al final).
func (uc *UseCase) Historial(ctx context.Context, placa string) ([]dto.VehiculoResponse, error) {
	familia, err := uc.vehiculos.ListByPlaca(ctx, validacion.NormalizarPlaca(placa))
	if err != nil {
		return nil, err
	}
	out := make([]dto.VehiculoResponse, 0, len(familia))
	for _, v := range familia {
		out = append(out, *aResponse(v))
	}
	return out, nil
}

// Update modifica campos editables del vehículo.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateVehiculoRequest) (*dto.VehiculoResponse, error) {
	v, err := uc.vehiculos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil || !v.EstaActivo {
		return nil, fmt.Errorf("vehículo %s: %w", id, domain.ErrNoEncontrado)
	}
	if in.NumeroMotor != nil {
		v.NumeroMotor = *in.NumeroMotor
	}
	if in.Estado != nil {
		if !entity.EstadoVehiculoValido(*in.Estado) {
			return nil, fmt.Errorf("estado %q: %w", *in.Estado, domain.ErrEntradaInvalida)
		}
		v.Estado = *in.Estado
	}
	if in.Datos != nil {
		v.Datos = aDatosEntity(*in.Datos)
	}
	v.UpdatedAt = time.Now()
	if err := uc.vehiculos.Update(ctx, v); err != nil {
		return nil, err
	}
	uc.invalidar(ctx)
	return aResponse(v), nil
}

// List aplica el filtro de visibilidad: "current" devuelve solo registros con
// esRegistroActual=true (nunca bloqueados), "historical" y "all" el conjunto
// completo. bloqueados filtra por estado ∈ {BAJA_DE_OFICIO, SUSPENDIDO}.
func (uc *UseCase) List(ctx context.Context, f repository.FiltroVehiculos, page dto.PageRequest) (*dto.VehiculoListResponse, error) {
	page.DefaultPage()
	if f.Visibilidad == "" {
		f.Visibilidad = repository.VisibilidadActual
	}
	list, err := uc.vehiculos.List(ctx, f, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VehiculoResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *aResponse(v))
	}
	return &dto.VehiculoListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Estadisticas conteo por estado, con read-through de caché.
func (uc *UseCase) Estadisticas(ctx context.Context) (*dto.EstadisticasResponse, error) {
	const clave = "vehiculos:estadisticas"
	if b, ok := uc.cache.Get(ctx, clave); ok {
		var out dto.EstadisticasResponse
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
	}
	conteos, err := uc.vehiculos.ContarPorEstado(ctx)
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

// Delete baja lógica del registro.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	v, err := uc.vehiculos.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("vehículo %s: %w", id, domain.ErrNoEncontrado)
	}
	if err := uc.vehiculos.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidar(ctx)
	return nil
}

func (uc *UseCase) invalidar(ctx context.Context) {
	uc.cache.Delete(ctx, "vehiculos:estadisticas")
	uc.cache.DeletePattern(ctx, "vehiculos:lista:*")
}

func appendUnico(ids []string, id string) []string {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}

func aDatosEntity(d dto.DatosTecnicosDTO) entity.DatosTecnicos {
	return entity.DatosTecnicos{
		Categoria:       d.Categoria,
		Marca:           d.Marca,
		Modelo:          d.Modelo,
		AnioFabricacion: d.AnioFabricacion,
		Asientos:        d.Asientos,
		Pasajeros:       d.Pasajeros,
		PesoNeto:        d.PesoNeto,
		PesoBruto:       d.PesoBruto,
		CargaUtil:       d.CargaUtil,
		Largo:           d.Largo,
		Ancho:           d.Ancho,
		Alto:            d.Alto,
		Ejes:            d.Ejes,
		Ruedas:          d.Ruedas,
		Combustible:     d.Combustible,
		Carroceria:      d.Carroceria,
		Color:           d.Color,
	}
}

func aDatosDTO(d entity.DatosTecnicos) dto.DatosTecnicosDTO {
	return dto.DatosTecnicosDTO{
		Categoria:       d.Categoria,
		Marca:           d.Marca,
		Modelo:          d.Modelo,
		AnioFabricacion: d.AnioFabricacion,
		Asientos:        d.Asientos,
		Pasajeros:       d.Pasajeros,
		PesoNeto:        d.PesoNeto,
		PesoBruto:       d.PesoBruto,
		CargaUtil:       d.CargaUtil,
		Largo:           d.Largo,
		Ancho:           d.Ancho,
		Alto:            d.Alto,
		Ejes:            d.Ejes,
		Ruedas:          d.Ruedas,
		Combustible:     d.Combustible,
		Carroceria:      d.Carroceria,
		Color:           d.Color,
	}
}

func aResponse(v *entity.Vehiculo) *dto.VehiculoResponse {
	if v == nil {
		return nil
	}
	return &dto.VehiculoResponse{
		ID:               v.ID,
		Placa:            v.Placa,
		NumeroSerie:      v.NumeroSerie,
		NumeroMotor:      v.NumeroMotor,
		Datos:            aDatosDTO(v.Datos),
		EmpresaActualID:  v.EmpresaActualID,
		ResolucionID:     v.ResolucionID,
		Estado:           v.Estado,
		NumeroHistorial:  v.NumeroHistorial,
		EsRegistroActual: v.EsRegistroActual,
		FechaBaja:        v.FechaBaja,
		MotivoBaja:       v.MotivoBaja,
		EstaActivo:       v.EstaActivo,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}
