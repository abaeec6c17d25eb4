package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

func fecha(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// TestCalcularVigenciaFin cubre la aritmética inicio + años − 1 día, incluido
// el caso de años bisiestos.
func TestCalcularVigenciaFin(t *testing.T) {
	casos := []struct {
		inicio   time.Time
		anios    int
		esperado time.Time
	}{
		{fecha(2025, 1, 15), 4, fecha(2029, 1, 14)},
		{fecha(2025, 1, 15), 10, fecha(2035, 1, 14)},
		{fecha(2024, 2, 29), 4, fecha(2028, 2, 28)},
		{fecha(2020, 3, 1), 4, fecha(2024, 2, 29)},
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, entity.CalcularVigenciaFin(c.inicio, c.anios),
			"inicio=%s años=%d", c.inicio.Format("2006-01-02"), c.anios)
	}
}

func TestResolucionVencida(t *testing.T) {
	r := &entity.Resolucion{FechaVigenciaFin: fecha(2029, 1, 14)}
	assert.False(t, r.Vencida(fecha(2029, 1, 14)), "el último día de vigencia no está vencida")
	assert.True(t, r.Vencida(fecha(2029, 1, 15)))
	assert.False(t, r.Vencida(fecha(2025, 6, 1)))

	sinFin := &entity.Resolucion{}
	assert.False(t, sinFin.Vencida(fecha(2030, 1, 1)))
}

func TestTransicionesResolucion(t *testing.T) {
	casos := []struct {
		desde, hacia string
		permitido    bool
	}{
		{entity.ResolucionEnProceso, entity.ResolucionEmitida, true},
		{entity.ResolucionEmitida, entity.ResolucionVigente, true},
		{entity.ResolucionVigente, entity.ResolucionVencida, true},
		{entity.ResolucionVigente, entity.ResolucionSuspendida, true},
		{entity.ResolucionSuspendida, entity.ResolucionVigente, true},
		{entity.ResolucionVigente, entity.ResolucionDadaDeBaja, true},
		// saltos y estados terminales
		{entity.ResolucionEnProceso, entity.ResolucionVigente, false},
		{entity.ResolucionAnulada, entity.ResolucionVigente, false},
		{entity.ResolucionDadaDeBaja, entity.ResolucionVigente, false},
		{entity.ResolucionVencida, entity.ResolucionVigente, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.permitido, entity.PuedeTransicionarResolucion(c.desde, c.hacia),
			"%s -> %s", c.desde, c.hacia)
	}

	assert.True(t, entity.EstadoResolucionTerminal(entity.ResolucionAnulada))
	assert.True(t, entity.EstadoResolucionTerminal(entity.ResolucionDadaDeBaja))
	assert.False(t, entity.EstadoResolucionTerminal(entity.ResolucionVigente))
	assert.False(t, entity.EstadoResolucionTerminal("INVENTADO"))
}

func TestMembresiaResolucion(t *testing.T) {
	r := &entity.Resolucion{
		VehiculosHabilitadosIds: []string{"v1", "v2"},
		RutasAutorizadasIds:     []string{"r1"},
	}
	assert.True(t, r.TieneVehiculo("v1"))
	assert.False(t, r.TieneVehiculo("v9"))
	assert.True(t, r.TieneRuta("r1"))
	assert.False(t, r.TieneRuta("r2"))
}
