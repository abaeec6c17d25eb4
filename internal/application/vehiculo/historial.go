package vehiculo

import (
	"context"
	"sort"
	"time"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
)

// HistorialService deriva el "historial de validación" de cada vehículo: su
// posición ordinal en la secuencia cronológica de resoluciones que han
// autorizado la placa, y la marca esRegistroActual del registro vigente.
//
// El cálculo es idempotente y tolera desvíos de las listas desnormalizadas:
// la fuente de verdad es la referencia en la resolución.
type HistorialService struct {
	vehiculos    repository.VehiculoRepository
	resoluciones repository.ResolucionRepository
}

// NewHistorialService construye el servicio.
func NewHistorialService(vehiculos repository.VehiculoRepository, resoluciones repository.ResolucionRepository) *HistorialService {
	return &HistorialService{vehiculos: vehiculos, resoluciones: resoluciones}
}

// eventoLinaje una habilitación (vehículo, resolución) de la familia de placa.
type eventoLinaje struct {
	vehiculo   *entity.Vehiculo
	resolucion *entity.Resolucion
}

// RecalcularPlaca recalcula historial y visibilidad de la familia completa de
// la placa:
//
//  1. reúne toda resolución activa que habilita a algún registro de la placa,
//  2. ordena ascendente por fechaEmision, desempate por número,
//  3. asigna ordinales 1..N; cada registro recibe el último ordinal que le toca,
//  4. marca esRegistroActual=true solo en el registro de la asignación más
//     reciente.
func (s *HistorialService) RecalcularPlaca(ctx context.Context, placa string) error {
	familia, err := s.vehiculos.ListByPlaca(ctx, placa)
	if err != nil {
		return err
	}
	if len(familia) == 0 {
		return nil
	}

	var eventos []eventoLinaje
	for _, v := range familia {
		resols, err := s.resoluciones.ListByVehiculo(ctx, v.ID)
		if err != nil {
			return err
		}
		for _, r := range resols {
			if r.EstaActivo {
				eventos = append(eventos, eventoLinaje{vehiculo: v, resolucion: r})
			}
		}
	}

	sort.SliceStable(eventos, func(i, j int) bool {
		a, b := eventos[i].resolucion, eventos[j].resolucion
		if !a.FechaEmision.Equal(b.FechaEmision) {
			return a.FechaEmision.Before(b.FechaEmision)
		}
		return a.Numero < b.Numero
	})

	ordinales := make(map[string]int, len(familia)) // vehiculoID -> último ordinal
	for i, ev := range eventos {
		ordinales[ev.vehiculo.ID] = i + 1
	}

	// El registro vigente es el de la asignación más reciente; sin eventos,
	// el registro creado más recientemente conserva la marca.
	actualID := ""
	if len(eventos) > 0 {
		actualID = eventos[len(eventos)-1].vehiculo.ID
	} else {
		masReciente := familia[0]
		for _, v := range familia[1:] {
			if v.CreatedAt.After(masReciente.CreatedAt) {
				masReciente = v
			}
		}
		actualID = masReciente.ID
	}

	for _, v := range familia {
		nuevoOrdinal := ordinales[v.ID]
		nuevoActual := v.ID == actualID
		if v.NumeroHistorial == nuevoOrdinal && v.EsRegistroActual == nuevoActual {
			continue
		}
		v.NumeroHistorial = nuevoOrdinal
		v.EsRegistroActual = nuevoActual
		v.UpdatedAt = time.Now()
		if err := s.vehiculos.Update(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// ReconciliarTodo recorre todas las placas y recalcula sus derivaciones. Es
// seguro reejecutarlo; cierra la ventana de inconsistencia eventual de las
// listas desnormalizadas.
func (s *HistorialService) ReconciliarTodo(ctx context.Context) (int, error) {
	placas, err := s.vehiculos.ListPlacas(ctx)
	if err != nil {
		return 0, err
	}
	for i, placa := range placas {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := s.RecalcularPlaca(ctx, placa); err != nil {
			return i, err
		}
	}
	return len(placas), nil
}
