// Package cola implementa el despachador de tareas en segundo plano con un
// pool de workers en proceso. Cada tarea corre bajo dos límites de tiempo:
// el suave marca la tarea como demorada en el log; el duro cancela su
// contexto y la termina con error.
package cola

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/pkg/config"
	"github.com/drtc-puno/sirret-api/pkg/logger"
)

// Handler ejecuta una tarea registrada. El resultado son los bytes del
// producto (reporte u otro), si aplica.
type Handler func(ctx context.Context, args map[string]string) ([]byte, error)

type trabajo struct {
	id     string
	nombre string
	args   map[string]string
	cancel context.CancelFunc // no-nil mientras la tarea ejecuta
}

// Dispatcher implementa ports.Cola. Con Workers = 0 la cola queda
// deshabilitada y Disponible() responde false.
type Dispatcher struct {
	workers     int
	limiteSuave time.Duration
	limiteDuro  time.Duration
	log         *logger.Logger

	mu        sync.Mutex
	handlers  map[string]Handler
	tareas    map[string]*ports.Tarea
	ejecucion map[string]*trabajo
	cerrada   bool

	trabajos chan *trabajo
	grupo    *errgroup.Group
	parar    context.CancelFunc
}

var _ ports.Cola = (*Dispatcher)(nil)

// New crea el despachador. Llamar a Iniciar antes de encolar.
func New(cfg config.ColaConfig, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		workers:     cfg.Workers,
		limiteSuave: time.Duration(cfg.LimiteSuaveMin) * time.Minute,
		limiteDuro:  time.Duration(cfg.LimiteDuroMin) * time.Minute,
		log:         log,
		handlers:    make(map[string]Handler),
		tareas:      make(map[string]*ports.Tarea),
		ejecucion:   make(map[string]*trabajo),
		trabajos:    make(chan *trabajo, 256),
	}
}

// Registrar asocia un nombre de tarea con su handler. Debe llamarse antes de
// Iniciar.
func (d *Dispatcher) Registrar(nombre string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[nombre] = h
}

// Iniciar levanta el pool de workers. No hace nada con Workers = 0.
func (d *Dispatcher) Iniciar(ctx context.Context) {
	if d.workers <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	d.parar = cancel
	d.grupo, ctx = errgroup.WithContext(ctx)
	for i := 0; i < d.workers; i++ {
		d.grupo.Go(func() error {
			d.worker(ctx)
			return nil
		})
	}
	d.log.Info().Int("workers", d.workers).Msg("cola de tareas iniciada")
}

// Detener deja de aceptar trabajos, cancela los que están en ejecución y
// espera a los workers.
func (d *Dispatcher) Detener() {
	d.mu.Lock()
	if d.cerrada {
		d.mu.Unlock()
		return
	}
	d.cerrada = true
	d.mu.Unlock()

	if d.parar != nil {
		d.parar()
	}
	if d.grupo != nil {
		_ = d.grupo.Wait()
	}
}

// Disponible informa si la cola acepta trabajos.
func (d *Dispatcher) Disponible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.workers > 0 && !d.cerrada && d.grupo != nil
}

func (d *Dispatcher) Encolar(ctx context.Context, nombre string, args map[string]string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.workers <= 0 || d.cerrada || d.grupo == nil {
		return "", fmt.Errorf("cola no disponible: %w", domain.ErrServicioExterno)
	}
	if _, ok := d.handlers[nombre]; !ok {
		return "", fmt.Errorf("tarea %q sin handler registrado: %w", nombre, domain.ErrEntradaInvalida)
	}

	t := &trabajo{id: uuid.NewString(), nombre: nombre, args: args}
	d.tareas[t.id] = &ports.Tarea{
		ID:         t.id,
		Nombre:     nombre,
		Estado:     ports.TareaPendiente,
		EncoladaEn: time.Now(),
	}

	select {
	case d.trabajos <- t:
	default:
		delete(d.tareas, t.id)
		return "", fmt.Errorf("cola llena: %w", domain.ErrServicioExterno)
	}
	return t.id, nil
}

func (d *Dispatcher) Estado(ctx context.Context, id string) (*ports.Tarea, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.tareas[id]
	if !ok {
		return nil, nil
	}
	copia := *t
	return &copia, nil
}

// Cancelar marca una tarea PENDIENTE como cancelada o corta el contexto de
// una en ejecución. Tareas terminadas no se pueden cancelar.
func (d *Dispatcher) Cancelar(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.tareas[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	switch t.Estado {
	case ports.TareaPendiente:
		t.Estado = ports.TareaCancelada
		ahora := time.Now()
		t.FinEn = &ahora
		return nil
	case ports.TareaEjecutando:
		if tr := d.ejecucion[id]; tr != nil && tr.cancel != nil {
			tr.cancel()
		}
		return nil
	default:
		return fmt.Errorf("la tarea ya terminó: %w", domain.ErrConflicto)
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-d.trabajos:
			d.ejecutar(ctx, t)
		}
	}
}

func (d *Dispatcher) ejecutar(ctx context.Context, t *trabajo) {
	d.mu.Lock()
	estado := d.tareas[t.id]
	if estado == nil || estado.Estado != ports.TareaPendiente {
		// cancelada mientras esperaba en el canal
		d.mu.Unlock()
		return
	}
	handler := d.handlers[t.nombre]
	ctxTarea, cancel := context.WithTimeout(ctx, d.limiteDuro)
	t.cancel = cancel
	d.ejecucion[t.id] = t

	inicio := time.Now()
	estado.Estado = ports.TareaEjecutando
	estado.InicioEn = &inicio
	d.mu.Unlock()

	defer cancel()

	// El límite suave solo avisa; la tarea sigue hasta el duro.
	temporizador := time.AfterFunc(d.limiteSuave, func() {
		d.log.Warn().Str("tarea_id", t.id).Str("tarea", t.nombre).
			Dur("limite_suave", d.limiteSuave).Msg("tarea excede el límite suave")
	})
	defer temporizador.Stop()

	resultado, err := handler(ctxTarea, t.args)

	fin := time.Now()
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.ejecucion, t.id)
	estado.FinEn = &fin

	switch {
	case err != nil && ctxTarea.Err() != nil:
		estado.Estado = ports.TareaCancelada
		estado.Error = ctxTarea.Err().Error()
		d.log.Warn().Str("tarea_id", t.id).Str("tarea", t.nombre).
			Err(err).Msg("tarea cancelada o fuera del límite duro")
	case err != nil:
		estado.Estado = ports.TareaError
		estado.Error = err.Error()
		d.log.Error().Str("tarea_id", t.id).Str("tarea", t.nombre).
			Err(err).Msg("tarea terminó con error")
	default:
		estado.Estado = ports.TareaCompletada
		estado.Resultado = resultado
		d.log.Info().Str("tarea_id", t.id).Str("tarea", t.nombre).
			Dur("duracion", fin.Sub(inicio)).Msg("tarea completada")
	}
}
