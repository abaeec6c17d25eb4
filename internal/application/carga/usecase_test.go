package carga_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/carga"
	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/empresa"
	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/application/resolucion"
	"github.com/drtc-puno/sirret-api/internal/application/ruta"
	"github.com/drtc-puno/sirret-api/internal/application/vehiculo"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/memoria"
)

type entorno struct {
	uc           *carga.UseCase
	empresas     *memoria.EmpresaStore
	resoluciones *memoria.ResolucionStore
	rutas        *memoria.RutaStore
	vehiculos    *memoria.VehiculoStore
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	empresas := memoria.NewEmpresaStore()
	resoluciones := memoria.NewResolucionStore()
	rutas := memoria.NewRutaStore()
	especificas := memoria.NewRutaEspecificaStore()
	vehiculos := memoria.NewVehiculoStore()

	linaje := vehiculo.NewHistorialService(vehiculos, resoluciones)
	empresaUC := empresa.New(empresas, nil, ports.CacheNulo{}, 0, nil)
	resolucionUC := resolucion.New(resoluciones, empresas, vehiculos, ports.CacheNulo{}, linaje, 0)
	rutaUC := ruta.New(rutas, especificas, resoluciones, empresas, vehiculos, resolucionUC)
	vehiculoUC := vehiculo.New(vehiculos, empresas, ports.CacheNulo{}, linaje, 0)

	uc := carga.New(empresaUC, resolucionUC, rutaUC, vehiculoUC,
		empresas, resoluciones, rutas, vehiculos, nil)
	return &entorno{
		uc: uc, empresas: empresas, resoluciones: resoluciones,
		rutas: rutas, vehiculos: vehiculos,
	}
}

func (e *entorno) conEmpresa(t *testing.T, id, ruc string) {
	t.Helper()
	require.NoError(t, e.empresas.Create(context.Background(), &entity.Empresa{
		ID: id, RUC: ruc, Estado: entity.EmpresaHabilitada, EstaActivo: true,
	}))
}

func (e *entorno) conResolucionVigente(t *testing.T, id, numero, empresaID string) {
	t.Helper()
	require.NoError(t, e.resoluciones.Create(context.Background(), &entity.Resolucion{
		ID:             id,
		Numero:         numero,
		TipoResolucion: entity.ResolucionPadre,
		EmpresaID:      empresaID,
		Estado:         entity.ResolucionVigente,
		FechaEmision:   time.Now(),
		EstaActivo:     true,
	}))
}

func fila(indice int, celdas map[string]string) carga.Fila {
	return carga.Fila{Indice: indice, Celdas: celdas}
}

func TestNormalizarCabecera(t *testing.T) {
	casos := map[string]string{
		"Razón Social (*)":        "razon_social",
		"RUC":                     "ruc",
		"  Fecha   Emisión ":      "fecha_emision",
		"numero-resolucion-padre": "numero_resolucion_padre",
	}
	for entrada, esperado := range casos {
		assert.Equal(t, esperado, carga.NormalizarCabecera(entrada), "cabecera %q", entrada)
	}
}

func TestValidarEmpresasNoEscribe(t *testing.T) {
	e := nuevoEntorno(t)

	rep, err := e.uc.ValidarEmpresas(context.Background(), []carga.Fila{
		fila(1, map[string]string{"ruc": "20123456789", "razon_social": "TRANSPORTES TITICACA SAC"}),
	})
	require.NoError(t, err)
	assert.True(t, rep.Admisible)
	assert.False(t, rep.Aplicado)
	assert.Empty(t, rep.CreadosIds)

	emp, err := e.empresas.GetByRUC(context.Background(), "20123456789")
	require.NoError(t, err)
	assert.Nil(t, emp)
}

func TestCargarEmpresas(t *testing.T) {
	e := nuevoEntorno(t)

	rep, err := e.uc.CargarEmpresas(context.Background(), []carga.Fila{
		fila(1, map[string]string{"ruc": "20123456789", "razon_social": "TRANSPORTES TITICACA SAC"}),
		fila(2, map[string]string{"ruc": "20987654321", "razon_social": "EXPRESO ALTIPLANO EIRL", "direccion_fiscal": "JR. LIMA 123"}),
	})
	require.NoError(t, err)
	assert.True(t, rep.Admisible)
	assert.True(t, rep.Aplicado)
	assert.Len(t, rep.CreadosIds, 2)
	assert.Zero(t, rep.FilasOmitidas)

	emp, err := e.empresas.GetByRUC(context.Background(), "20123456789")
	require.NoError(t, err)
	require.NotNil(t, emp)

	// La fila 1 no trae dirección fiscal: WARNING, no bloquea.
	require.Len(t, rep.Diagnosticos, 1)
	assert.Equal(t, 1, rep.Diagnosticos[0].Fila)
	assert.Equal(t, dto.SeveridadWarning, rep.Diagnosticos[0].Severidad)
}

func TestCargarEmpresasFilaInvalidaNoBloqueaElLote(t *testing.T) {
	e := nuevoEntorno(t)

	// La fila 2 no trae razón social: se omite con su diagnóstico y la
	// fila 1 se aplica igual, sin rollback del lote.
	rep, err := e.uc.CargarEmpresas(context.Background(), []carga.Fila{
		fila(1, map[string]string{"ruc": "20123456789", "razon_social": "TRANSPORTES TITICACA SAC", "direccion_fiscal": "JR. LIMA 1"}),
		fila(2, map[string]string{"ruc": "20987654321"}),
	})
	require.NoError(t, err)
	assert.False(t, rep.Admisible)
	assert.True(t, rep.Aplicado)
	assert.Len(t, rep.CreadosIds, 1)
	assert.Equal(t, 1, rep.FilasOmitidas)

	emp, err := e.empresas.GetByRUC(context.Background(), "20123456789")
	require.NoError(t, err)
	require.NotNil(t, emp)

	omitida, err := e.empresas.GetByRUC(context.Background(), "20987654321")
	require.NoError(t, err)
	assert.Nil(t, omitida)
}

func TestCargarEmpresasRUCRepetidoEnLote(t *testing.T) {
	e := nuevoEntorno(t)

	rep, err := e.uc.ValidarEmpresas(context.Background(), []carga.Fila{
		fila(1, map[string]string{"ruc": "20123456789", "razon_social": "TRANSPORTES TITICACA SAC", "direccion_fiscal": "JR. LIMA 1"}),
		fila(2, map[string]string{"ruc": "20123456789", "razon_social": "OTRA RAZON SAC", "direccion_fiscal": "JR. PUNO 2"}),
	})
	require.NoError(t, err)
	assert.False(t, rep.Admisible)
	require.Len(t, rep.Diagnosticos, 1)
	assert.Equal(t, 2, rep.Diagnosticos[0].Fila)
	assert.Contains(t, rep.Diagnosticos[0].Mensajes[0], "repetido en el lote")
}

func TestCargarResolucionesPadreEHijoEnLote(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1", "20123456789")

	// El HIJO referencia un PADRE definido más arriba en la misma hoja.
	rep, err := e.uc.CargarResoluciones(context.Background(), []carga.Fila{
		fila(1, map[string]string{
			"ruc":                   "20123456789",
			"numero_resolucion":     "R-0100-2025",
			"tipo_resolucion":       "PADRE",
			"tipo_tramite":          "PRIMIGENIA",
			"fecha_emision":         "2025-01-15",
			"fecha_vigencia_inicio": "2025-01-15",
			"anios_vigencia":        "4",
		}),
		fila(2, map[string]string{
			"ruc":                     "20123456789",
			"numero_resolucion":       "R-0101-2025",
			"numero_resolucion_padre": "R-0100-2025",
			"tipo_resolucion":         "HIJO",
			"tipo_tramite":            "INCREMENTO",
			"fecha_emision":           "2025-02-01",
		}),
	})
	require.NoError(t, err)
	assert.True(t, rep.Admisible)
	assert.True(t, rep.Aplicado)
	require.Len(t, rep.CreadosIds, 2)

	padre, err := e.resoluciones.GetByNumero(context.Background(), "R-0100-2025")
	require.NoError(t, err)
	require.NotNil(t, padre)
	// Sin columna estado las filas quedan en VIGENTE.
	assert.Equal(t, entity.ResolucionVigente, padre.Estado)

	hijo, err := e.resoluciones.GetByNumero(context.Background(), "R-0101-2025")
	require.NoError(t, err)
	require.NotNil(t, hijo)
	assert.Equal(t, padre.ID, hijo.PadreID)
	assert.Equal(t, padre.FechaVigenciaFin, hijo.FechaVigenciaFin)
	assert.Equal(t, entity.ResolucionVigente, hijo.Estado)
}

func TestCargarResolucionesHijoConVigenciaPropia(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1", "20123456789")

	rep, err := e.uc.ValidarResoluciones(context.Background(), []carga.Fila{
		fila(1, map[string]string{
			"ruc":                     "20123456789",
			"numero_resolucion":       "R-0101-2025",
			"numero_resolucion_padre": "R-0100-2025",
			"tipo_resolucion":         "HIJO",
			"tipo_tramite":            "INCREMENTO",
			"fecha_emision":           "2025-02-01",
			"anios_vigencia":          "4",
		}),
	})
	require.NoError(t, err)
	assert.False(t, rep.Admisible)
	require.NotEmpty(t, rep.Diagnosticos)
	assert.Contains(t, rep.Diagnosticos[0].Mensajes[0], "hereda la vigencia")
}

func TestCargarResolucionesEstadoObjetivo(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1", "20123456789")

	rep, err := e.uc.CargarResoluciones(context.Background(), []carga.Fila{
		fila(1, map[string]string{
			"ruc":                   "20123456789",
			"numero_resolucion":     "R-0100-2025",
			"tipo_resolucion":       "PADRE",
			"tipo_tramite":          "PRIMIGENIA",
			"fecha_emision":         "2025-01-15",
			"fecha_vigencia_inicio": "2025-01-15",
			"anios_vigencia":        "10",
			"estado":                "SUSPENDIDA",
		}),
	})
	require.NoError(t, err)
	assert.True(t, rep.Aplicado)

	r, err := e.resoluciones.GetByNumero(context.Background(), "R-0100-2025")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, entity.ResolucionSuspendida, r.Estado)
}

func TestCargarVehiculos(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1", "20123456789")
	e.conResolucionVigente(t, "res-1", "R-0100-2025", "emp-1")

	rep, err := e.uc.CargarVehiculos(context.Background(), []carga.Fila{
		fila(1, map[string]string{
			"ruc":               "20123456789",
			"numero_resolucion": "R-0100-2025",
			"placa":             " abc-123 ",
			"marca":             "Volvo",
			"modelo":            "B11R",
			"asientos":          "50",
			"peso_bruto":        "18,5",
		}),
	})
	require.NoError(t, err)
	assert.True(t, rep.Admisible)
	assert.True(t, rep.Aplicado)
	require.Len(t, rep.CreadosIds, 1)

	v, err := e.vehiculos.GetActualByPlaca(context.Background(), "ABC-123")
	require.NoError(t, err)
	require.NotNil(t, v)
	// La fase 2 habilita el vehículo en su resolución y recalcula el linaje.
	assert.Equal(t, "res-1", v.ResolucionID)
	assert.Equal(t, 1, v.NumeroHistorial)
	assert.True(t, v.EsRegistroActual)
	assert.Equal(t, "VOLVO", v.Datos.Marca)
	assert.Equal(t, "18.5", v.Datos.PesoBruto.String())
}

func TestCargarVehiculosPlacaRepetidaEnLote(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1", "20123456789")
	e.conResolucionVigente(t, "res-1", "R-0100-2025", "emp-1")

	base := map[string]string{
		"ruc":               "20123456789",
		"numero_resolucion": "R-0100-2025",
		"marca":             "VOLVO",
		"modelo":            "B11R",
	}
	f1 := map[string]string{"placa": "ABC-123"}
	f2 := map[string]string{"placa": "abc-123"}
	for k, v := range base {
		f1[k] = v
		f2[k] = v
	}
	rep, err := e.uc.ValidarVehiculos(context.Background(), []carga.Fila{fila(1, f1), fila(2, f2)})
	require.NoError(t, err)
	assert.False(t, rep.Admisible)
	require.Len(t, rep.Diagnosticos, 1)
	assert.Equal(t, 2, rep.Diagnosticos[0].Fila)
}

func TestCargarRutas(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1", "20123456789")
	e.conResolucionVigente(t, "res-1", "R-0100-2025", "emp-1")

	rep, err := e.uc.CargarRutas(context.Background(), []carga.Fila{
		fila(1, map[string]string{
			"ruc":               "20123456789",
			"numero_resolucion": "R-0100-2025",
			"codigo_ruta":       "1",
			"origen":            "Puno",
			"destino":           "Juliaca",
			"itinerario":        "Paucarcolla; Caracoto",
		}),
	})
	require.NoError(t, err)
	assert.True(t, rep.Admisible)
	assert.True(t, rep.Aplicado)
	require.Len(t, rep.CreadosIds, 1)

	// Sin tipo_servicio la fila carga con WARNING y asume PERSONAS.
	require.Len(t, rep.Diagnosticos, 1)
	assert.Equal(t, dto.SeveridadWarning, rep.Diagnosticos[0].Severidad)

	rutas, err := e.rutas.ListByResolucion(context.Background(), "res-1")
	require.NoError(t, err)
	require.Len(t, rutas, 1)
	assert.Equal(t, "01", rutas[0].CodigoRuta)
	assert.Equal(t, entity.ServicioPersonas, rutas[0].TipoServicio)
	require.Len(t, rutas[0].Itinerario, 2)
	assert.Equal(t, "PAUCARCOLLA", rutas[0].Itinerario[0].Nombre)

	r, err := e.resoluciones.GetByID(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Contains(t, r.RutasAutorizadasIds, rutas[0].ID)
}

func TestCargarRutasCodigoRepetidoAplicaLasDemas(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1", "20123456789")
	e.conResolucionVigente(t, "res-1", "R-0100-2025", "emp-1")

	// "1" y "01" normalizan al mismo código: la fila 2 se omite con su
	// diagnóstico y la fila 1 se aplica de todos modos.
	rep, err := e.uc.CargarRutas(context.Background(), []carga.Fila{
		fila(1, map[string]string{
			"ruc":               "20123456789",
			"numero_resolucion": "R-0100-2025",
			"codigo_ruta":       "1",
			"origen":            "Puno",
			"destino":           "Juliaca",
			"tipo_servicio":     "PERSONAS",
		}),
		fila(2, map[string]string{
			"ruc":               "20123456789",
			"numero_resolucion": "R-0100-2025",
			"codigo_ruta":       "01",
			"origen":            "Puno",
			"destino":           "Ilave",
			"tipo_servicio":     "PERSONAS",
		}),
	})
	require.NoError(t, err)
	assert.False(t, rep.Admisible)
	assert.True(t, rep.Aplicado)
	require.Len(t, rep.CreadosIds, 1)
	assert.Equal(t, 1, rep.FilasOmitidas)

	require.Len(t, rep.Diagnosticos, 1)
	assert.Equal(t, 2, rep.Diagnosticos[0].Fila)
	assert.Equal(t, dto.SeveridadError, rep.Diagnosticos[0].Severidad)
	assert.Contains(t, rep.Diagnosticos[0].Mensajes[0], "repetido en el lote")

	rutas, err := e.rutas.ListByResolucion(context.Background(), "res-1")
	require.NoError(t, err)
	require.Len(t, rutas, 1)
	assert.Equal(t, "01", rutas[0].CodigoRuta)
}

func TestCargarRutasOrigenDestinoIguales(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1", "20123456789")
	e.conResolucionVigente(t, "res-1", "R-0100-2025", "emp-1")

	rep, err := e.uc.ValidarRutas(context.Background(), []carga.Fila{
		fila(1, map[string]string{
			"ruc":               "20123456789",
			"numero_resolucion": "R-0100-2025",
			"codigo_ruta":       "01",
			"origen":            "Juliaca",
			"destino":           "JULIACA",
			"tipo_servicio":     "PERSONAS",
		}),
	})
	require.NoError(t, err)
	assert.False(t, rep.Admisible)
}
