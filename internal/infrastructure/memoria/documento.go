package memoria

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

// DocumentoStore implementación en memoria de repository.DocumentoRepository.
type DocumentoStore struct {
	mu              sync.Mutex
	porID           map[string]*entity.Documento
	idPorExpediente map[string]string
	secuenciaAnual  map[int]int
}

var _ repository.DocumentoRepository = (*DocumentoStore)(nil)

// NewDocumentoStore crea el store vacío.
func NewDocumentoStore() *DocumentoStore {
	return &DocumentoStore{
		porID:           map[string]*entity.Documento{},
		idPorExpediente: map[string]string{},
		secuenciaAnual:  map[int]int{},
	}
}

func (s *DocumentoStore) Create(_ context.Context, d *entity.Documento) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[d.ID]; ok {
		return fmt.Errorf("documento %s: %w", d.ID, domain.ErrDuplicado)
	}
	if _, ok := s.idPorExpediente[d.NumeroExpediente]; ok {
		return fmt.Errorf("expediente %s: %w", d.NumeroExpediente, domain.ErrDuplicado)
	}
	s.porID[d.ID] = clonarDocumento(d)
	s.idPorExpediente[d.NumeroExpediente] = d.ID
	return nil
}

func (s *DocumentoStore) GetByID(_ context.Context, id string) (*entity.Documento, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.porID[id]
	if !ok {
		return nil, nil
	}
	return clonarDocumento(d), nil
}

func (s *DocumentoStore) GetByNumeroExpediente(_ context.Context, numero string) (*entity.Documento, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.idPorExpediente[numero]
	if !ok {
		return nil, nil
	}
	return clonarDocumento(s.porID[id]), nil
}

func (s *DocumentoStore) Update(_ context.Context, d *entity.Documento) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[d.ID]; !ok {
		return fmt.Errorf("documento %s: %w", d.ID, domain.ErrNoEncontrado)
	}
	s.porID[d.ID] = clonarDocumento(d)
	return nil
}

func (s *DocumentoStore) List(_ context.Context, f repository.FiltroDocumentos, limit, offset int) ([]*entity.Documento, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	patron := validacion.NormalizarRazonSocial(f.Busqueda)
	var out []*entity.Documento
	for _, d := range s.porID {
		if !d.EstaActivo {
			continue
		}
		if f.Estado != "" && d.Estado != f.Estado {
			continue
		}
		if f.Prioridad != "" && d.Prioridad != f.Prioridad {
			continue
		}
		if f.AreaID != "" && d.AreaActualID != f.AreaID {
			continue
		}
		if f.Desde != nil && d.CreatedAt.Before(*f.Desde) {
			continue
		}
		if f.Hasta != nil && d.CreatedAt.After(*f.Hasta) {
			continue
		}
		if patron != "" &&
			!strings.Contains(validacion.NormalizarRazonSocial(d.Asunto), patron) &&
			!strings.Contains(validacion.NormalizarRazonSocial(d.Remitente.Nombre), patron) {
			continue
		}
		out = append(out, clonarDocumento(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NumeroExpediente < out[j].NumeroExpediente })
	return paginar(out, limit, offset), nil
}

func (s *DocumentoStore) SiguienteNumeroExpediente(_ context.Context, anio int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secuenciaAnual[anio]++
	return s.secuenciaAnual[anio], nil
}

func (s *DocumentoStore) ContarPorEstado(_ context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]int{}
	for _, d := range s.porID {
		if d.EstaActivo {
			out[d.Estado]++
		}
	}
	return out, nil
}

func clonarDocumento(d *entity.Documento) *entity.Documento {
	c := *d
	c.Adjuntos = append([]entity.Adjunto(nil), d.Adjuntos...)
	if d.FechaLimite != nil {
		f := *d.FechaLimite
		c.FechaLimite = &f
	}
	return &c
}

// DerivacionStore implementación en memoria de repository.DerivacionRepository.
type DerivacionStore struct {
	mu    sync.RWMutex
	porID map[string]*entity.Derivacion
}

var _ repository.DerivacionRepository = (*DerivacionStore)(nil)

// NewDerivacionStore crea el store vacío.
func NewDerivacionStore() *DerivacionStore {
	return &DerivacionStore{porID: map[string]*entity.Derivacion{}}
}

func (s *DerivacionStore) Create(_ context.Context, d *entity.Derivacion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[d.ID]; ok {
		return fmt.Errorf("derivación %s: %w", d.ID, domain.ErrDuplicado)
	}
	s.porID[d.ID] = clonarDerivacion(d)
	return nil
}

func (s *DerivacionStore) GetByID(_ context.Context, id string) (*entity.Derivacion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.porID[id]
	if !ok {
		return nil, nil
	}
	return clonarDerivacion(d), nil
}

func (s *DerivacionStore) Update(_ context.Context, d *entity.Derivacion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[d.ID]; !ok {
		return fmt.Errorf("derivación %s: %w", d.ID, domain.ErrNoEncontrado)
	}
	s.porID[d.ID] = clonarDerivacion(d)
	return nil
}

func (s *DerivacionStore) ListByDocumento(_ context.Context, documentoID string) ([]*entity.Derivacion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Derivacion
	for _, d := range s.porID {
		if d.EstaActivo && d.DocumentoID == documentoID {
			out = append(out, clonarDerivacion(d))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FechaDerivacion.Equal(out[j].FechaDerivacion) {
			return out[i].ID < out[j].ID
		}
		return out[i].FechaDerivacion.Before(out[j].FechaDerivacion)
	})
	return out, nil
}

func (s *DerivacionStore) ExisteAbiertaParaArea(_ context.Context, documentoID, areaDestinoID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.porID {
		if d.EstaActivo && d.DocumentoID == documentoID && d.AreaDestinoID == areaDestinoID &&
			entity.DerivacionAbierta(d.Estado) {
			return true, nil
		}
	}
	return false, nil
}

func clonarDerivacion(d *entity.Derivacion) *entity.Derivacion {
	c := *d
	if d.FechaRecepcion != nil {
		f := *d.FechaRecepcion
		c.FechaRecepcion = &f
	}
	if d.FechaAtencion != nil {
		f := *d.FechaAtencion
		c.FechaAtencion = &f
	}
	return &c
}

// ArchivoStore implementación en memoria de repository.ArchivoRepository.
type ArchivoStore struct {
	mu         sync.Mutex
	porID      map[string]*entity.Archivo
	secuencias map[string]int
}

var _ repository.ArchivoRepository = (*ArchivoStore)(nil)

// NewArchivoStore crea el store vacío.
func NewArchivoStore() *ArchivoStore {
	return &ArchivoStore{
		porID:      map[string]*entity.Archivo{},
		secuencias: map[string]int{},
	}
}

func (s *ArchivoStore) Create(_ context.Context, a *entity.Archivo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[a.ID]; ok {
		return fmt.Errorf("archivo %s: %w", a.ID, domain.ErrDuplicado)
	}
	s.porID[a.ID] = clonarArchivo(a)
	return nil
}

func (s *ArchivoStore) GetByID(_ context.Context, id string) (*entity.Archivo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.porID[id]
	if !ok {
		return nil, nil
	}
	return clonarArchivo(a), nil
}

func (s *ArchivoStore) GetByDocumento(_ context.Context, documentoID string) (*entity.Archivo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.porID {
		if a.EstaActivo && a.DocumentoID == documentoID {
			return clonarArchivo(a), nil
		}
	}
	return nil, nil
}

func (s *ArchivoStore) Update(_ context.Context, a *entity.Archivo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[a.ID]; !ok {
		return fmt.Errorf("archivo %s: %w", a.ID, domain.ErrNoEncontrado)
	}
	s.porID[a.ID] = clonarArchivo(a)
	return nil
}

func (s *ArchivoStore) SiguienteSecuencia(_ context.Context, prefijo string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secuencias[prefijo]++
	return s.secuencias[prefijo], nil
}

func (s *ArchivoStore) ListPorExpirar(_ context.Context, hasta time.Time) ([]*entity.Archivo, error) {
	return s.listar(func(a *entity.Archivo) bool {
		return a.FechaExpiracion != nil && !a.FechaExpiracion.After(hasta)
	})
}

func (s *ArchivoStore) ListExpirados(_ context.Context, hoy time.Time) ([]*entity.Archivo, error) {
	return s.listar(func(a *entity.Archivo) bool {
		return a.FechaExpiracion != nil && a.FechaExpiracion.Before(hoy)
	})
}

func (s *ArchivoStore) listar(keep func(*entity.Archivo) bool) ([]*entity.Archivo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Archivo
	for _, a := range s.porID {
		if a.EstaActivo && keep(a) {
			out = append(out, clonarArchivo(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CodigoUbicacion < out[j].CodigoUbicacion })
	return out, nil
}

func clonarArchivo(a *entity.Archivo) *entity.Archivo {
	c := *a
	if a.FechaExpiracion != nil {
		f := *a.FechaExpiracion
		c.FechaExpiracion = &f
	}
	return &c
}

// UsuarioStore implementación en memoria de repository.UsuarioRepository.
type UsuarioStore struct {
	mu       sync.RWMutex
	porID    map[string]*entity.Usuario
	idPorDNI map[string]string
}

var _ repository.UsuarioRepository = (*UsuarioStore)(nil)

// NewUsuarioStore crea el store vacío.
func NewUsuarioStore() *UsuarioStore {
	return &UsuarioStore{
		porID:    map[string]*entity.Usuario{},
		idPorDNI: map[string]string{},
	}
}

func (s *UsuarioStore) Create(_ context.Context, u *entity.Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[u.ID]; ok {
		return fmt.Errorf("usuario %s: %w", u.ID, domain.ErrDuplicado)
	}
	if _, ok := s.idPorDNI[u.DNI]; ok {
		return fmt.Errorf("DNI %s: %w", u.DNI, domain.ErrDuplicado)
	}
	c := *u
	s.porID[u.ID] = &c
	s.idPorDNI[u.DNI] = u.ID
	return nil
}

func (s *UsuarioStore) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.porID[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (s *UsuarioStore) GetByDNI(_ context.Context, dni string) (*entity.Usuario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.idPorDNI[dni]
	if !ok {
		return nil, nil
	}
	c := *s.porID[id]
	return &c, nil
}

func (s *UsuarioStore) Update(_ context.Context, u *entity.Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.porID[u.ID]; !ok {
		return fmt.Errorf("usuario %s: %w", u.ID, domain.ErrNoEncontrado)
	}
	c := *u
	s.porID[u.ID] = &c
	return nil
}
