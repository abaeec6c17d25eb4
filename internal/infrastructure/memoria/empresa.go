// Package memoria implementa todos los puertos de persistencia sobre mapas en
// memoria protegidos por RWMutex. Respaldan los tests y la configuración sin
// base de datos; el contrato (nil, nil) ante ausencia es el mismo que el de
// las implementaciones Postgres.
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

// EmpresaStore implementación en memoria de repository.EmpresaRepository.
type EmpresaStore struct {
	mu       sync.RWMutex
	porID    map[string]*entity.Empresa
	idPorRUC map[string]string
}

var _ repository.EmpresaRepository = (*EmpresaStore)(nil)

// NewEmpresaStore crea el store vacío.
func NewEmpresaStore() *EmpresaStore {
	return &EmpresaStore{
		porID:    map[string]*entity.Empresa{},
		idPorRUC: map[string]string{},
	}
}

func (s *EmpresaStore) Create(_ context.Context, e *entity.Empresa) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[e.ID]; ok {
		return fmt.Errorf("empresa %s: %w", e.ID, domain.ErrDuplicado)
	}
	if id, ok := s.idPorRUC[e.RUC]; ok {
		if otra := s.porID[id]; otra != nil && otra.EstaActivo {
			return fmt.Errorf("RUC %s: %w", e.RUC, domain.ErrDuplicado)
		}
	}
	s.porID[e.ID] = clonarEmpresa(e)
	s.idPorRUC[e.RUC] = e.ID
	return nil
}

func (s *EmpresaStore) GetByID(_ context.Context, id string) (*entity.Empresa, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.porID[id]
	if !ok {
		return nil, nil
	}
	return clonarEmpresa(e), nil
}

func (s *EmpresaStore) GetByRUC(_ context.Context, ruc string) (*entity.Empresa, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.idPorRUC[ruc]
	if !ok {
		return nil, nil
	}
	return clonarEmpresa(s.porID[id]), nil
}

func (s *EmpresaStore) Update(_ context.Context, e *entity.Empresa) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[e.ID]; !ok {
		return fmt.Errorf("empresa %s: %w", e.ID, domain.ErrNoEncontrado)
	}
	s.porID[e.ID] = clonarEmpresa(e)
	return nil
}

func (s *EmpresaStore) List(_ context.Context, limit, offset int) ([]*entity.Empresa, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Empresa
	for _, e := range s.porID {
		if e.EstaActivo {
			out = append(out, clonarEmpresa(e))
		}
	}
	ordenarPorCreacionEmpresa(out)
	return paginarEmpresas(out, limit, offset), nil
}

func (s *EmpresaStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.porID[id]
	if !ok {
		return fmt.Errorf("empresa %s: %w", id, domain.ErrNoEncontrado)
	}
	e.EstaActivo = false
	return nil
}

func (s *EmpresaStore) ContarPorEstado(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[string]int{}
	for _, e := range s.porID {
		if e.EstaActivo {
			out[e.Estado]++
		}
	}
	return out, nil
}

func clonarEmpresa(e *entity.Empresa) *entity.Empresa {
	c := *e
	c.ResolucionesIds = append([]string(nil), e.ResolucionesIds...)
	c.VehiculosIds = append([]string(nil), e.VehiculosIds...)
	c.RutasIds = append([]string(nil), e.RutasIds...)
	if e.DatosSunat != nil {
		ds := *e.DatosSunat
		c.DatosSunat = &ds
	}
	return &c
}

func ordenarPorCreacionEmpresa(list []*entity.Empresa) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}

func paginarEmpresas(list []*entity.Empresa, limit, offset int) []*entity.Empresa {
	return paginar(list, limit, offset)
}

// paginar aplica limit/offset sobre una lista ya ordenada.
func paginar[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
