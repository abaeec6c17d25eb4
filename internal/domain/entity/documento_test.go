package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

func TestTransicionesDocumento(t *testing.T) {
	casos := []struct {
		desde, hacia string
		permitido    bool
	}{
		{entity.DocumentoRegistrado, entity.DocumentoEnProceso, true},
		{entity.DocumentoEnProceso, entity.DocumentoAtendido, true},
		{entity.DocumentoAtendido, entity.DocumentoArchivado, true},
		{entity.DocumentoArchivado, entity.DocumentoEnProceso, true}, // restauración
		{entity.DocumentoRegistrado, entity.DocumentoAtendido, false},
		{entity.DocumentoRegistrado, entity.DocumentoArchivado, false},
		{entity.DocumentoAtendido, entity.DocumentoRegistrado, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.permitido, entity.PuedeTransicionarDocumento(c.desde, c.hacia),
			"%s -> %s", c.desde, c.hacia)
	}
}

func TestTransicionesDerivacion(t *testing.T) {
	assert.True(t, entity.PuedeTransicionarDerivacion(entity.DerivacionPendiente, entity.DerivacionRecibida))
	assert.True(t, entity.PuedeTransicionarDerivacion(entity.DerivacionPendiente, entity.DerivacionRechazada))
	assert.True(t, entity.PuedeTransicionarDerivacion(entity.DerivacionRecibida, entity.DerivacionAtendida))
	assert.False(t, entity.PuedeTransicionarDerivacion(entity.DerivacionRecibida, entity.DerivacionRechazada))
	assert.False(t, entity.PuedeTransicionarDerivacion(entity.DerivacionAtendida, entity.DerivacionPendiente))

	assert.True(t, entity.DerivacionAbierta(entity.DerivacionPendiente))
	assert.True(t, entity.DerivacionAbierta(entity.DerivacionRecibida))
	assert.False(t, entity.DerivacionAbierta(entity.DerivacionAtendida))
	assert.False(t, entity.DerivacionAbierta(entity.DerivacionRechazada))
}

// TestCalcularExpiracionRetencion verifica la aritmética de retención:
// CINCO_ANOS archivado el 2025-06-01 expira el 2030-06-01; PERMANENTE no expira.
func TestCalcularExpiracionRetencion(t *testing.T) {
	archivo := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	exp := entity.CalcularExpiracionRetencion(entity.RetencionCincoAnios, archivo)
	require.NotNil(t, exp)
	assert.Equal(t, time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC), *exp)

	exp = entity.CalcularExpiracionRetencion(entity.RetencionUnAnio, archivo)
	require.NotNil(t, exp)
	assert.Equal(t, 2026, exp.Year())

	assert.Nil(t, entity.CalcularExpiracionRetencion(entity.RetencionPermanente, archivo))
	assert.Nil(t, entity.CalcularExpiracionRetencion("POLITICA_INEXISTENTE", archivo))

	anios, ok := entity.AniosRetencion(entity.RetencionDiezAnios)
	assert.True(t, ok)
	assert.Equal(t, 10, anios)
	_, ok = entity.AniosRetencion("OTRA")
	assert.False(t, ok)
}
