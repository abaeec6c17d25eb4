package cola_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/cola"
	"github.com/drtc-puno/sirret-api/pkg/config"
)

func nuevaCola(t *testing.T, workers int) *cola.Dispatcher {
	t.Helper()
	d := cola.New(config.ColaConfig{Workers: workers, LimiteSuaveMin: 1, LimiteDuroMin: 2}, nil)
	t.Cleanup(d.Detener)
	return d
}

// esperarEstado sondea hasta que la tarea alcanza el estado esperado.
func esperarEstado(t *testing.T, d *cola.Dispatcher, id, estado string) *ports.Tarea {
	t.Helper()
	plazo := time.After(5 * time.Second)
	for {
		tarea, err := d.Estado(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, tarea)
		if tarea.Estado == estado {
			return tarea
		}
		select {
		case <-plazo:
			t.Fatalf("la tarea %s quedó en %s; se esperaba %s", id, tarea.Estado, estado)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestColaDeshabilitadaSinWorkers(t *testing.T) {
	d := nuevaCola(t, 0)
	d.Iniciar(context.Background())

	assert.False(t, d.Disponible())
	_, err := d.Encolar(context.Background(), "cualquiera", nil)
	assert.ErrorIs(t, err, domain.ErrServicioExterno)
}

func TestEncolarSinHandler(t *testing.T) {
	d := nuevaCola(t, 1)
	d.Iniciar(context.Background())
	require.True(t, d.Disponible())

	_, err := d.Encolar(context.Background(), "tarea-desconocida", nil)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestCicloDeVidaCompletada(t *testing.T) {
	d := nuevaCola(t, 2)
	d.Registrar("eco", func(_ context.Context, args map[string]string) ([]byte, error) {
		return []byte(args["mensaje"]), nil
	})
	d.Iniciar(context.Background())

	id, err := d.Encolar(context.Background(), "eco", map[string]string{"mensaje": "hola"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	tarea := esperarEstado(t, d, id, ports.TareaCompletada)
	assert.Equal(t, []byte("hola"), tarea.Resultado)
	assert.NotNil(t, tarea.FinEn)
	assert.Empty(t, tarea.Error)
}

func TestTareaConError(t *testing.T) {
	d := nuevaCola(t, 1)
	d.Registrar("falla", func(context.Context, map[string]string) ([]byte, error) {
		return nil, errors.New("sin datos")
	})
	d.Iniciar(context.Background())

	id, err := d.Encolar(context.Background(), "falla", nil)
	require.NoError(t, err)

	tarea := esperarEstado(t, d, id, ports.TareaError)
	assert.Equal(t, "sin datos", tarea.Error)
}

func TestCancelarPendiente(t *testing.T) {
	d := nuevaCola(t, 1)
	bloqueo := make(chan struct{})
	d.Registrar("lenta", func(ctx context.Context, _ map[string]string) ([]byte, error) {
		select {
		case <-bloqueo:
		case <-ctx.Done():
		}
		return nil, ctx.Err()
	})
	d.Iniciar(context.Background())

	// La primera ocupa al único worker; la segunda espera en el canal.
	ocupada, err := d.Encolar(context.Background(), "lenta", nil)
	require.NoError(t, err)
	esperarEstado(t, d, ocupada, ports.TareaEjecutando)

	pendiente, err := d.Encolar(context.Background(), "lenta", nil)
	require.NoError(t, err)

	require.NoError(t, d.Cancelar(context.Background(), pendiente))
	tarea := esperarEstado(t, d, pendiente, ports.TareaCancelada)
	assert.NotNil(t, tarea.FinEn)

	// Una tarea cancelada en el canal no debe ejecutarse al liberarse el worker.
	close(bloqueo)
	esperarEstado(t, d, ocupada, ports.TareaCompletada)
	tarea, err = d.Estado(context.Background(), pendiente)
	require.NoError(t, err)
	assert.Equal(t, ports.TareaCancelada, tarea.Estado)
}

func TestCancelarEnEjecucion(t *testing.T) {
	d := nuevaCola(t, 1)
	d.Registrar("espera", func(ctx context.Context, _ map[string]string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	d.Iniciar(context.Background())

	id, err := d.Encolar(context.Background(), "espera", nil)
	require.NoError(t, err)
	esperarEstado(t, d, id, ports.TareaEjecutando)

	require.NoError(t, d.Cancelar(context.Background(), id))
	esperarEstado(t, d, id, ports.TareaCancelada)
}

func TestCancelarTerminada(t *testing.T) {
	d := nuevaCola(t, 1)
	d.Registrar("eco", func(context.Context, map[string]string) ([]byte, error) {
		return []byte("ok"), nil
	})
	d.Iniciar(context.Background())

	id, err := d.Encolar(context.Background(), "eco", nil)
	require.NoError(t, err)
	esperarEstado(t, d, id, ports.TareaCompletada)

	err = d.Cancelar(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrConflicto)
}

func TestCancelarInexistente(t *testing.T) {
	d := nuevaCola(t, 1)
	d.Iniciar(context.Background())

	err := d.Cancelar(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestEstadoInexistente(t *testing.T) {
	d := nuevaCola(t, 1)
	d.Iniciar(context.Background())

	tarea, err := d.Estado(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.Nil(t, tarea)
}

func TestDetenerRechazaNuevosTrabajos(t *testing.T) {
	d := cola.New(config.ColaConfig{Workers: 1, LimiteSuaveMin: 1, LimiteDuroMin: 2}, nil)
	d.Registrar("eco", func(context.Context, map[string]string) ([]byte, error) {
		return nil, nil
	})
	d.Iniciar(context.Background())
	d.Detener()

	assert.False(t, d.Disponible())
	_, err := d.Encolar(context.Background(), "eco", nil)
	assert.ErrorIs(t, err, domain.ErrServicioExterno)
}
