package memoria

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

// RutaStore implementación en memoria de repository.RutaRepository.
type RutaStore struct {
	mu    sync.RWMutex
	porID map[string]*entity.Ruta
}

var _ repository.RutaRepository = (*RutaStore)(nil)

// NewRutaStore crea el store vacío.
func NewRutaStore() *RutaStore {
	return &RutaStore{porID: map[string]*entity.Ruta{}}
}

func (s *RutaStore) Create(_ context.Context, r *entity.Ruta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[r.ID]; ok {
		return fmt.Errorf("ruta %s: %w", r.ID, domain.ErrDuplicado)
	}
	for _, otra := range s.porID {
		if otra.EstaActivo && otra.ResolucionID == r.ResolucionID && otra.CodigoRuta == r.CodigoRuta {
			return fmt.Errorf("código %s en resolución %s: %w", r.CodigoRuta, r.ResolucionID, domain.ErrDuplicado)
		}
	}
	s.porID[r.ID] = clonarRuta(r)
	return nil
}

func (s *RutaStore) GetByID(_ context.Context, id string) (*entity.Ruta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.porID[id]
	if !ok {
		return nil, nil
	}
	return clonarRuta(r), nil
}

func (s *RutaStore) Update(_ context.Context, r *entity.Ruta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[r.ID]; !ok {
		return fmt.Errorf("ruta %s: %w", r.ID, domain.ErrNoEncontrado)
	}
	s.porID[r.ID] = clonarRuta(r)
	return nil
}

func (s *RutaStore) List(_ context.Context, limit, offset int) ([]*entity.Ruta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.filtrar(func(*entity.Ruta) bool { return true })
	return paginar(out, limit, offset), nil
}

func (s *RutaStore) ListByResolucion(_ context.Context, resolucionID string) ([]*entity.Ruta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtrar(func(r *entity.Ruta) bool { return r.ResolucionID == resolucionID }), nil
}

func (s *RutaStore) ListByEmpresa(_ context.Context, empresaID string) ([]*entity.Ruta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtrar(func(r *entity.Ruta) bool { return r.EmpresaID == empresaID }), nil
}

func (s *RutaStore) ExisteCodigoEnResolucion(_ context.Context, resolucionID, codigo, excluirID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.porID {
		if r.EstaActivo && r.ResolucionID == resolucionID && r.CodigoRuta == codigo && r.ID != excluirID {
			return true, nil
		}
	}
	return false, nil
}

func (s *RutaStore) Buscar(_ context.Context, texto string, limit, offset int) ([]*entity.Ruta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	patron := validacion.NormalizarRazonSocial(texto)
	out := s.filtrar(func(r *entity.Ruta) bool {
		if patron == "" {
			return true
		}
		return strings.Contains(validacion.NormalizarRazonSocial(r.Origen.Nombre), patron) ||
			strings.Contains(validacion.NormalizarRazonSocial(r.Destino.Nombre), patron)
	})
	return paginar(out, limit, offset), nil
}

func (s *RutaStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.porID[id]
	if !ok {
		return fmt.Errorf("ruta %s: %w", id, domain.ErrNoEncontrado)
	}
	r.EstaActivo = false
	return nil
}

func (s *RutaStore) ContarPorEstado(_ context.Context) (map[string]int, error) {
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

// filtrar exige mutex tomado por el caller.
func (s *RutaStore) filtrar(keep func(*entity.Ruta) bool) []*entity.Ruta {
	var out []*entity.Ruta
	for _, r := range s.porID {
		if r.EstaActivo && keep(r) {
			out = append(out, clonarRuta(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ResolucionID == out[j].ResolucionID {
			return out[i].CodigoRuta < out[j].CodigoRuta
		}
		return out[i].ResolucionID < out[j].ResolucionID
	})
	return out
}

func clonarRuta(r *entity.Ruta) *entity.Ruta {
	c := *r
	c.Itinerario = append([]entity.Localidad(nil), r.Itinerario...)
	return &c
}

// RutaEspecificaStore implementación en memoria de
// repository.RutaEspecificaRepository.
type RutaEspecificaStore struct {
	mu    sync.RWMutex
	porID map[string]*entity.RutaEspecificaVehiculo
}

var _ repository.RutaEspecificaRepository = (*RutaEspecificaStore)(nil)

// NewRutaEspecificaStore crea el store vacío.
func NewRutaEspecificaStore() *RutaEspecificaStore {
	return &RutaEspecificaStore{porID: map[string]*entity.RutaEspecificaVehiculo{}}
}

func (s *RutaEspecificaStore) Create(_ context.Context, r *entity.RutaEspecificaVehiculo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[r.ID]; ok {
		return fmt.Errorf("ruta específica %s: %w", r.ID, domain.ErrDuplicado)
	}
	s.porID[r.ID] = clonarEspecifica(r)
	return nil
}

func (s *RutaEspecificaStore) GetByID(_ context.Context, id string) (*entity.RutaEspecificaVehiculo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.porID[id]
	if !ok {
		return nil, nil
	}
	return clonarEspecifica(r), nil
}

func (s *RutaEspecificaStore) Update(_ context.Context, r *entity.RutaEspecificaVehiculo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[r.ID]; !ok {
		return fmt.Errorf("ruta específica %s: %w", r.ID, domain.ErrNoEncontrado)
	}
	s.porID[r.ID] = clonarEspecifica(r)
	return nil
}

func (s *RutaEspecificaStore) ListByVehiculo(_ context.Context, vehiculoID string) ([]*entity.RutaEspecificaVehiculo, error) {
	return s.listar(func(r *entity.RutaEspecificaVehiculo) bool { return r.VehiculoID == vehiculoID })
}

func (s *RutaEspecificaStore) ListByRutaGeneral(_ context.Context, rutaGeneralID string) ([]*entity.RutaEspecificaVehiculo, error) {
	return s.listar(func(r *entity.RutaEspecificaVehiculo) bool { return r.RutaGeneralID == rutaGeneralID })
}

func (s *RutaEspecificaStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.porID[id]
	if !ok {
		return fmt.Errorf("ruta específica %s: %w", id, domain.ErrNoEncontrado)
	}
	r.EstaActivo = false
	return nil
}

func (s *RutaEspecificaStore) listar(keep func(*entity.RutaEspecificaVehiculo) bool) ([]*entity.RutaEspecificaVehiculo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.RutaEspecificaVehiculo
	for _, r := range s.porID {
		if r.EstaActivo && keep(r) {
			out = append(out, clonarEspecifica(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Codigo < out[j].Codigo })
	return out, nil
}

func clonarEspecifica(r *entity.RutaEspecificaVehiculo) *entity.RutaEspecificaVehiculo {
	c := *r
	c.Horarios = append([]entity.Horario(nil), r.Horarios...)
	c.ParadasAdicionales = append([]entity.Localidad(nil), r.ParadasAdicionales...)
	return &c
}
