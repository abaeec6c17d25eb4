package memoria

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
)

// ResolucionStore implementación en memoria de repository.ResolucionRepository.
type ResolucionStore struct {
	mu          sync.RWMutex
	porID       map[string]*entity.Resolucion
	idPorNumero map[string]string
}

var _ repository.ResolucionRepository = (*ResolucionStore)(nil)

// NewResolucionStore crea el store vacío.
func NewResolucionStore() *ResolucionStore {
	return &ResolucionStore{
		porID:       map[string]*entity.Resolucion{},
		idPorNumero: map[string]string{},
	}
}

func (s *ResolucionStore) Create(_ context.Context, r *entity.Resolucion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[r.ID]; ok {
		return fmt.Errorf("resolución %s: %w", r.ID, domain.ErrDuplicado)
	}
	if _, ok := s.idPorNumero[r.Numero]; ok {
		return fmt.Errorf("número %s: %w", r.Numero, domain.ErrDuplicado)
	}
	s.porID[r.ID] = clonarResolucion(r)
	s.idPorNumero[r.Numero] = r.ID
	return nil
}

func (s *ResolucionStore) GetByID(_ context.Context, id string) (*entity.Resolucion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.porID[id]
	if !ok {
		return nil, nil
	}
	return clonarResolucion(r), nil
}

func (s *ResolucionStore) GetByNumero(_ context.Context, numero string) (*entity.Resolucion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.idPorNumero[numero]
	if !ok {
		return nil, nil
	}
	return clonarResolucion(s.porID[id]), nil
}

func (s *ResolucionStore) Update(_ context.Context, r *entity.Resolucion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[r.ID]; !ok {
		return fmt.Errorf("resolución %s: %w", r.ID, domain.ErrNoEncontrado)
	}
	s.porID[r.ID] = clonarResolucion(r)
	return nil
}

func (s *ResolucionStore) List(_ context.Context, limit, offset int) ([]*entity.Resolucion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Resolucion
	for _, r := range s.porID {
		if r.EstaActivo {
			out = append(out, clonarResolucion(r))
		}
	}
	ordenarResoluciones(out)
	return paginar(out, limit, offset), nil
}

func (s *ResolucionStore) ListByEmpresa(_ context.Context, empresaID string, f repository.FiltroResoluciones, limit, offset int) ([]*entity.Resolucion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Resolucion
	for _, r := range s.porID {
		if !r.EstaActivo || r.EmpresaID != empresaID {
			continue
		}
		if f.Estado != "" && r.Estado != f.Estado {
			continue
		}
		if f.TipoResolucion != "" && r.TipoResolucion != f.TipoResolucion {
			continue
		}
		if f.TipoTramite != "" && r.TipoTramite != f.TipoTramite {
			continue
		}
		if f.Anio != 0 && r.FechaEmision.Year() != f.Anio {
			continue
		}
		out = append(out, clonarResolucion(r))
	}
	ordenarResoluciones(out)
	return paginar(out, limit, offset), nil
}

func (s *ResolucionStore) ListByVehiculo(_ context.Context, vehiculoID string) ([]*entity.Resolucion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Resolucion
	for _, r := range s.porID {
		if r.EstaActivo && r.TieneVehiculo(vehiculoID) {
			out = append(out, clonarResolucion(r))
		}
	}
	ordenarResoluciones(out)
	return out, nil
}

func (s *ResolucionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.porID[id]
	if !ok {
		return fmt.Errorf("resolución %s: %w", id, domain.ErrNoEncontrado)
	}
	r.EstaActivo = false
	return nil
}

func (s *ResolucionStore) ContarPorEstado(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[string]int{}
	for _, r := range s.porID {
		if r.EstaActivo {
			out[r.Estado]++
		}
	}
	return out, nil
}

func clonarResolucion(r *entity.Resolucion) *entity.Resolucion {
	c := *r
	c.HijosIds = append([]string(nil), r.HijosIds...)
	c.VehiculosHabilitadosIds = append([]string(nil), r.VehiculosHabilitadosIds...)
	c.RutasAutorizadasIds = append([]string(nil), r.RutasAutorizadasIds...)
	return &c
}

func ordenarResoluciones(list []*entity.Resolucion) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].FechaEmision.Equal(list[j].FechaEmision) {
			return list[i].Numero < list[j].Numero
		}
		return list[i].FechaEmision.Before(list[j].FechaEmision)
	})
}
