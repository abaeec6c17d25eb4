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

// VehiculoStore implementación en memoria de repository.VehiculoRepository.
type VehiculoStore struct {
	mu    sync.RWMutex
	porID map[string]*entity.Vehiculo
}

var _ repository.VehiculoRepository = (*VehiculoStore)(nil)

// NewVehiculoStore crea el store vacío.
func NewVehiculoStore() *VehiculoStore {
	return &VehiculoStore{porID: map[string]*entity.Vehiculo{}}
}

func (s *VehiculoStore) Create(_ context.Context, v *entity.Vehiculo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[v.ID]; ok {
		return fmt.Errorf("vehículo %s: %w", v.ID, domain.ErrDuplicado)
	}
	s.porID[v.ID] = clonarVehiculo(v)
	return nil
}

func (s *VehiculoStore) GetByID(_ context.Context, id string) (*entity.Vehiculo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.porID[id]
	if !ok {
		return nil, nil
	}
	return clonarVehiculo(v), nil
}

func (s *VehiculoStore) GetActualByPlaca(_ context.Context, placa string) (*entity.Vehiculo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.porID {
		if v.Placa == placa && v.EsRegistroActual && v.EstaActivo {
			return clonarVehiculo(v), nil
		}
	}
	return nil, nil
}

func (s *VehiculoStore) ListByPlaca(_ context.Context, placa string) ([]*entity.Vehiculo, error) {
	return s.listar(func(v *entity.Vehiculo) bool { return v.Placa == placa })
}

func (s *VehiculoStore) Update(_ context.Context, v *entity.Vehiculo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[v.ID]; !ok {
		return fmt.Errorf("vehículo %s: %w", v.ID, domain.ErrNoEncontrado)
	}
	s.porID[v.ID] = clonarVehiculo(v)
	return nil
}

func (s *VehiculoStore) List(_ context.Context, f repository.FiltroVehiculos, limit, offset int) ([]*entity.Vehiculo, error) {
	out, err := s.listar(func(v *entity.Vehiculo) bool {
		// Vigente excluye bloqueados: {actual} ∩ {bloqueado} = ∅. Histórica
		// y todos devuelven el linaje completo de la placa.
		if f.Visibilidad == repository.VisibilidadActual &&
			(!v.EsRegistroActual || entity.EstadoVehiculoBloqueado(v.Estado)) {
			return false
		}
		if f.Bloqueados != nil && entity.EstadoVehiculoBloqueado(v.Estado) != *f.Bloqueados {
			return false
		}
		if f.EmpresaID != "" && v.EmpresaActualID != f.EmpresaID {
			return false
		}
		if f.Estado != "" && v.Estado != f.Estado {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return paginar(out, limit, offset), nil
}

func (s *VehiculoStore) ListByEmpresa(_ context.Context, empresaID string) ([]*entity.Vehiculo, error) {
	return s.listar(func(v *entity.Vehiculo) bool { return v.EmpresaActualID == empresaID })
}

func (s *VehiculoStore) ListByResolucion(_ context.Context, resolucionID string) ([]*entity.Vehiculo, error) {
	return s.listar(func(v *entity.Vehiculo) bool { return v.ResolucionID == resolucionID })
}

func (s *VehiculoStore) ListPlacas(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vistas := map[string]bool{}
	var out []string
	for _, v := range s.porID {
		if v.EstaActivo && !vistas[v.Placa] {
			vistas[v.Placa] = true
			out = append(out, v.Placa)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *VehiculoStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.porID[id]
	if !ok {
		return fmt.Errorf("vehículo %s: %w", id, domain.ErrNoEncontrado)
	}
	v.EstaActivo = false
	return nil
}

func (s *VehiculoStore) ContarPorEstado(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[string]int{}
	for _, v := range s.porID {
		if v.EstaActivo {
			out[v.Estado]++
		}
	}
	return out, nil
}

func (s *VehiculoStore) listar(keep func(*entity.Vehiculo) bool) ([]*entity.Vehiculo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Vehiculo
	for _, v := range s.porID {
		if v.EstaActivo && keep(v) {
			out = append(out, clonarVehiculo(v))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func clonarVehiculo(v *entity.Vehiculo) *entity.Vehiculo {
	c := *v
	if v.FechaBaja != nil {
		f := *v.FechaBaja
		c.FechaBaja = &f
	}
	return &c
}

// SolicitudBajaStore implementación en memoria de
// repository.SolicitudBajaRepository.
type SolicitudBajaStore struct {
	mu    sync.RWMutex
	porID map[string]*entity.SolicitudBaja
}

var _ repository.SolicitudBajaRepository = (*SolicitudBajaStore)(nil)

// NewSolicitudBajaStore crea el store vacío.
func NewSolicitudBajaStore() *SolicitudBajaStore {
	return &SolicitudBajaStore{porID: map[string]*entity.SolicitudBaja{}}
}

func (s *SolicitudBajaStore) Create(_ context.Context, sol *entity.SolicitudBaja) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[sol.ID]; ok {
		return fmt.Errorf("solicitud %s: %w", sol.ID, domain.ErrDuplicado)
	}
	s.porID[sol.ID] = clonarSolicitud(sol)
	return nil
}

func (s *SolicitudBajaStore) GetByID(_ context.Context, id string) (*entity.SolicitudBaja, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sol, ok := s.porID[id]
	if !ok {
		return nil, nil
	}
	return clonarSolicitud(sol), nil
}

func (s *SolicitudBajaStore) Update(_ context.Context, sol *entity.SolicitudBaja) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[sol.ID]; !ok {
		return fmt.Errorf("solicitud %s: %w", sol.ID, domain.ErrNoEncontrado)
	}
	s.porID[sol.ID] = clonarSolicitud(sol)
	return nil
}

func (s *SolicitudBajaStore) ListByVehiculo(_ context.Context, vehiculoID string) ([]*entity.SolicitudBaja, error) {
	return s.listarSolicitudes(func(sol *entity.SolicitudBaja) bool { return sol.VehiculoID == vehiculoID }, 0, 0)
}

func (s *SolicitudBajaStore) ListByEstado(_ context.Context, estado string, limit, offset int) ([]*entity.SolicitudBaja, error) {
	return s.listarSolicitudes(func(sol *entity.SolicitudBaja) bool {
		return estado == "" || sol.Estado == estado
	}, limit, offset)
}

func (s *SolicitudBajaStore) listarSolicitudes(keep func(*entity.SolicitudBaja) bool, limit, offset int) ([]*entity.SolicitudBaja, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.SolicitudBaja
	for _, sol := range s.porID {
		if sol.EstaActivo && keep(sol) {
			out = append(out, clonarSolicitud(sol))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FechaSolicitud.Equal(out[j].FechaSolicitud) {
			return out[i].ID < out[j].ID
		}
		return out[i].FechaSolicitud.Before(out[j].FechaSolicitud)
	})
	if limit > 0 || offset > 0 {
		out = paginar(out, limit, offset)
	}
	return out, nil
}

func clonarSolicitud(sol *entity.SolicitudBaja) *entity.SolicitudBaja {
	c := *sol
	if sol.FechaResolucion != nil {
		f := *sol.FechaResolucion
		c.FechaResolucion = &f
	}
	return &c
}
