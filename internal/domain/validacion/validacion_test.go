package validacion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

func TestValidarRUC(t *testing.T) {
	casos := []struct {
		nombre string
		ruc    string
		valido bool
	}{
		{"once dígitos", "20123456789", true},
		{"persona natural", "10456789012", true},
		{"diez dígitos", "2012345678", false},
		{"doce dígitos", "201234567890", false},
		{"con letras", "2012345678X", false},
		{"vacío", "", false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			err := validacion.ValidarRUC(c.ruc)
			if c.valido {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidarDNI(t *testing.T) {
	assert.NoError(t, validacion.ValidarDNI("45678901"))
	assert.Error(t, validacion.ValidarDNI("4567890"))
	assert.Error(t, validacion.ValidarDNI("456789012"))
	assert.Error(t, validacion.ValidarDNI("4567890A"))
}

func TestValidarPlaca(t *testing.T) {
	assert.NoError(t, validacion.ValidarPlaca("ABC-123"))
	assert.NoError(t, validacion.ValidarPlaca("V2B-456"))
	assert.NoError(t, validacion.ValidarPlaca(" abc-123 ")) // se normaliza antes de validar
	assert.Error(t, validacion.ValidarPlaca("AB-123"))
	assert.Error(t, validacion.ValidarPlaca("ABC123"))
	assert.Error(t, validacion.ValidarPlaca("ABC-12X"))
}

func TestValidarNumeroResolucion(t *testing.T) {
	assert.NoError(t, validacion.ValidarNumeroResolucion("R-1001-2025"))
	assert.NoError(t, validacion.ValidarNumeroResolucion("R-45-2023"))
	assert.Error(t, validacion.ValidarNumeroResolucion("1001-2025"))
	assert.Error(t, validacion.ValidarNumeroResolucion("R-1001-25"))
	assert.Error(t, validacion.ValidarNumeroResolucion("R--2025"))
}

// TestNormalizarCodigoRuta verifica la regla central de unicidad: "1", "01" y
// "001" colapsan al mismo código de dos dígitos, y la operación es idempotente.
func TestNormalizarCodigoRuta(t *testing.T) {
	for _, entrada := range []string{"1", "01", "001", " 01 "} {
		c, err := validacion.NormalizarCodigoRuta(entrada)
		require.NoError(t, err, "entrada %q", entrada)
		assert.Equal(t, "01", c)
	}

	c, err := validacion.NormalizarCodigoRuta("27")
	require.NoError(t, err)
	assert.Equal(t, "27", c)

	// Idempotencia: normalizar lo ya normalizado no cambia nada.
	c2, err := validacion.NormalizarCodigoRuta(c)
	require.NoError(t, err)
	assert.Equal(t, c, c2)

	// Tres dígitos reales se conservan.
	c3, err := validacion.NormalizarCodigoRuta("100")
	require.NoError(t, err)
	assert.Equal(t, "100", c3)

	_, err = validacion.NormalizarCodigoRuta("")
	assert.Error(t, err)
	_, err = validacion.NormalizarCodigoRuta("0")
	assert.Error(t, err)
	_, err = validacion.NormalizarCodigoRuta("A1")
	assert.Error(t, err)
}

func TestValidarHora(t *testing.T) {
	assert.NoError(t, validacion.ValidarHora("06:30"))
	assert.NoError(t, validacion.ValidarHora("23:59"))
	assert.Error(t, validacion.ValidarHora("24:00"))
	assert.Error(t, validacion.ValidarHora("6:30"))
	assert.Error(t, validacion.ValidarHora("06:60"))

	assert.True(t, validacion.HoraPosterior("06:30", "09:00"))
	assert.False(t, validacion.HoraPosterior("09:00", "09:00"))
	assert.False(t, validacion.HoraPosterior("09:00", "06:30"))
}

func TestNormalizarRazonSocial(t *testing.T) {
	assert.Equal(t, "TRANSPORTES SENOR DE HUANCA S.A.C.",
		validacion.NormalizarRazonSocial("Transportes Señor de Huanca S.A.C."))
	assert.Equal(t, "EL RAPIDO EXPRESO",
		validacion.NormalizarRazonSocial("  el  rápido   expreso "))
}

func TestParseFecha(t *testing.T) {
	for _, entrada := range []string{"15/01/2025", "2025-01-15", "15-01-2025"} {
		f, err := validacion.ParseFecha(entrada)
		require.NoError(t, err, "entrada %q", entrada)
		assert.Equal(t, 2025, f.Year())
		assert.Equal(t, 1, int(f.Month()))
		assert.Equal(t, 15, f.Day())
	}
	_, err := validacion.ParseFecha("2025/01/15")
	assert.Error(t, err)
	_, err = validacion.ParseFecha("")
	assert.Error(t, err)
}
