package resolucion_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/application/resolucion"
	"github.com/drtc-puno/sirret-api/internal/application/vehiculo"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/memoria"
)

type entorno struct {
	uc           *resolucion.UseCase
	empresas     *memoria.EmpresaStore
	resoluciones *memoria.ResolucionStore
	vehiculos    *memoria.VehiculoStore
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	empresas := memoria.NewEmpresaStore()
	resoluciones := memoria.NewResolucionStore()
	vehiculos := memoria.NewVehiculoStore()
	linaje := vehiculo.NewHistorialService(vehiculos, resoluciones)
	uc := resolucion.New(resoluciones, empresas, vehiculos, ports.CacheNulo{}, linaje, 0)
	return &entorno{uc: uc, empresas: empresas, resoluciones: resoluciones, vehiculos: vehiculos}
}

func (e *entorno) conEmpresa(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, e.empresas.Create(context.Background(), &entity.Empresa{
		ID:          id,
		RUC:         "20123456789",
		RazonSocial: entity.RazonSocial{Principal: "Transportes Titicaca S.A.C."},
		Estado:      entity.EmpresaHabilitada,
		EstaActivo:  true,
		CreatedAt:   time.Now(),
	}))
}

func (e *entorno) conVehiculo(t *testing.T, id, placa string) {
	t.Helper()
	require.NoError(t, e.vehiculos.Create(context.Background(), &entity.Vehiculo{
		ID:               id,
		Placa:            placa,
		Estado:           entity.VehiculoActivo,
		EsRegistroActual: true,
		EstaActivo:       true,
		CreatedAt:        time.Now(),
	}))
}

func padreRequest(numero, empresaID string) dto.CreateResolucionRequest {
	return dto.CreateResolucionRequest{
		Numero:              numero,
		TipoResolucion:      entity.ResolucionPadre,
		TipoTramite:         entity.TramitePrimigenia,
		EmpresaID:           empresaID,
		FechaEmision:        "2025-01-15",
		FechaVigenciaInicio: "2025-01-15",
		AniosVigencia:       4,
	}
}

// promover avanza la resolución por la cadena de estados hasta el destino.
func (e *entorno) promover(t *testing.T, id string, estados ...string) {
	t.Helper()
	for _, estado := range estados {
		_, err := e.uc.CambiarEstado(context.Background(), id, dto.CambiarEstadoResolucionRequest{
			Estado: estado,
			Motivo: "avance de trámite",
		})
		require.NoError(t, err)
	}
}

func TestCreatePadreCalculaVigencia(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	out, err := e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	require.NoError(t, err)

	assert.Equal(t, entity.ResolucionEnProceso, out.Estado)
	inicio, _ := validacion.ParseFecha("2025-01-15")
	assert.Equal(t, entity.CalcularVigenciaFin(inicio, 4), out.FechaVigenciaFin)

	emp, err := e.empresas.GetByID(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Contains(t, emp.ResolucionesIds, out.ID)
}

func TestCreatePadreAniosInvalidos(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	in := padreRequest("R-0001-2025", "emp-1")
	in.AniosVigencia = 5
	_, err := e.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestCreateNumeroDuplicado(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	_, err := e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	require.NoError(t, err)
	_, err = e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	assert.ErrorIs(t, err, domain.ErrDuplicado)
}

func TestCreateHijoHeredaVigencia(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	padre, err := e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	require.NoError(t, err)
	e.promover(t, padre.ID, entity.ResolucionEmitida, entity.ResolucionVigente)

	hijo, err := e.uc.Create(context.Background(), dto.CreateResolucionRequest{
		Numero:         "R-0002-2025",
		TipoResolucion: entity.ResolucionHijo,
		TipoTramite:    entity.TramiteIncremento,
		EmpresaID:      "emp-1",
		FechaEmision:   "2025-06-01",
		PadreNumero:    "R-0001-2025",
	})
	require.NoError(t, err)

	assert.Equal(t, padre.ID, hijo.PadreID)
	assert.Equal(t, padre.FechaVigenciaInicio, hijo.FechaVigenciaInicio)
	assert.Equal(t, padre.FechaVigenciaFin, hijo.FechaVigenciaFin)
	assert.Zero(t, hijo.AniosVigencia)

	recargado, err := e.resoluciones.GetByID(context.Background(), padre.ID)
	require.NoError(t, err)
	assert.Contains(t, recargado.HijosIds, hijo.ID)
}

func TestCreateHijoConVigenciaPropia(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	padre, err := e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	require.NoError(t, err)
	e.promover(t, padre.ID, entity.ResolucionEmitida)

	_, err = e.uc.Create(context.Background(), dto.CreateResolucionRequest{
		Numero:         "R-0002-2025",
		TipoResolucion: entity.ResolucionHijo,
		TipoTramite:    entity.TramiteIncremento,
		EmpresaID:      "emp-1",
		FechaEmision:   "2025-06-01",
		PadreID:        padre.ID,
		AniosVigencia:  4,
	})
	assert.ErrorIs(t, err, domain.ErrVigenciaHeredada)
}

func TestCreateHijoSinPadre(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	_, err := e.uc.Create(context.Background(), dto.CreateResolucionRequest{
		Numero:         "R-0002-2025",
		TipoResolucion: entity.ResolucionHijo,
		TipoTramite:    entity.TramiteIncremento,
		EmpresaID:      "emp-1",
		FechaEmision:   "2025-06-01",
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestCreateHijoPadreDeOtraEmpresa(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	require.NoError(t, e.empresas.Create(context.Background(), &entity.Empresa{
		ID: "emp-2", RUC: "20987654321", Estado: entity.EmpresaHabilitada, EstaActivo: true,
	}))

	padre, err := e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	require.NoError(t, err)
	e.promover(t, padre.ID, entity.ResolucionEmitida)

	_, err = e.uc.Create(context.Background(), dto.CreateResolucionRequest{
		Numero:         "R-0002-2025",
		TipoResolucion: entity.ResolucionHijo,
		TipoTramite:    entity.TramiteIncremento,
		EmpresaID:      "emp-2",
		FechaEmision:   "2025-06-01",
		PadreID:        padre.ID,
	})
	assert.ErrorIs(t, err, domain.ErrDependenciaFaltante)
}

func TestCreateHijoPadreEnProceso(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	padre, err := e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	require.NoError(t, err)

	// EN_PROCESO no habilita descendencia.
	_, err = e.uc.Create(context.Background(), dto.CreateResolucionRequest{
		Numero:         "R-0002-2025",
		TipoResolucion: entity.ResolucionHijo,
		TipoTramite:    entity.TramiteIncremento,
		EmpresaID:      "emp-1",
		FechaEmision:   "2025-06-01",
		PadreID:        padre.ID,
	})
	assert.ErrorIs(t, err, domain.ErrDependenciaFaltante)
}

func TestCambiarEstado(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	r, err := e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	require.NoError(t, err)

	// Salto EN_PROCESO -> VIGENTE prohibido.
	_, err = e.uc.CambiarEstado(context.Background(), r.ID, dto.CambiarEstadoResolucionRequest{
		Estado: entity.ResolucionVigente, Motivo: "x",
	})
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)

	// Motivo obligatorio.
	_, err = e.uc.CambiarEstado(context.Background(), r.ID, dto.CambiarEstadoResolucionRequest{
		Estado: entity.ResolucionEmitida,
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	out, err := e.uc.CambiarEstado(context.Background(), r.ID, dto.CambiarEstadoResolucionRequest{
		Estado: entity.ResolucionEmitida, Motivo: "resolución firmada",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ResolucionEmitida, out.Estado)
	assert.Equal(t, "resolución firmada", out.MotivoEstado)
}

func TestVencimientoPerezoso(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	r, err := e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	require.NoError(t, err)
	e.promover(t, r.ID, entity.ResolucionEmitida, entity.ResolucionVigente)

	// Un día después del fin de vigencia.
	e.uc.Ahora = func() time.Time { return r.FechaVigenciaFin.AddDate(0, 0, 1) }

	out, err := e.uc.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ResolucionVencida, out.Estado)

	// El refresco se persistió detrás de la lectura.
	persistida, err := e.resoluciones.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ResolucionVencida, persistida.Estado)
}

func TestUltimoDiaDeVigenciaNoVence(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	r, err := e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	require.NoError(t, err)
	e.promover(t, r.ID, entity.ResolucionEmitida, entity.ResolucionVigente)

	e.uc.Ahora = func() time.Time { return r.FechaVigenciaFin }

	out, err := e.uc.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ResolucionVigente, out.Estado)
}

func TestUpdatePropagaVigenciaAHijos(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	padre, err := e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	require.NoError(t, err)
	e.promover(t, padre.ID, entity.ResolucionEmitida)

	hijo, err := e.uc.Create(context.Background(), dto.CreateResolucionRequest{
		Numero:         "R-0002-2025",
		TipoResolucion: entity.ResolucionHijo,
		TipoTramite:    entity.TramiteIncremento,
		EmpresaID:      "emp-1",
		FechaEmision:   "2025-06-01",
		PadreID:        padre.ID,
	})
	require.NoError(t, err)

	anios := 10
	actualizado, err := e.uc.Update(context.Background(), padre.ID, dto.UpdateResolucionRequest{AniosVigencia: &anios})
	require.NoError(t, err)

	hijoRecargado, err := e.resoluciones.GetByID(context.Background(), hijo.ID)
	require.NoError(t, err)
	assert.Equal(t, actualizado.FechaVigenciaFin, hijoRecargado.FechaVigenciaFin)
}

func TestUpdateVigenciaEnHijo(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	padre, err := e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	require.NoError(t, err)
	e.promover(t, padre.ID, entity.ResolucionEmitida)

	hijo, err := e.uc.Create(context.Background(), dto.CreateResolucionRequest{
		Numero:         "R-0002-2025",
		TipoResolucion: entity.ResolucionHijo,
		TipoTramite:    entity.TramiteIncremento,
		EmpresaID:      "emp-1",
		FechaEmision:   "2025-06-01",
		PadreID:        padre.ID,
	})
	require.NoError(t, err)

	anios := 4
	_, err = e.uc.Update(context.Background(), hijo.ID, dto.UpdateResolucionRequest{AniosVigencia: &anios})
	assert.ErrorIs(t, err, domain.ErrVigenciaHeredada)
}

func TestAttachVehiculoIdempotente(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conVehiculo(t, "veh-1", "ABC-123")

	r, err := e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	require.NoError(t, err)

	require.NoError(t, e.uc.AttachVehiculo(context.Background(), r.ID, "veh-1"))
	require.NoError(t, e.uc.AttachVehiculo(context.Background(), r.ID, "veh-1"))

	recargada, err := e.resoluciones.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"veh-1"}, recargada.VehiculosHabilitadosIds)

	v, err := e.vehiculos.GetByID(context.Background(), "veh-1")
	require.NoError(t, err)
	assert.Equal(t, r.ID, v.ResolucionID)
	assert.Equal(t, "emp-1", v.EmpresaActualID)
	assert.Equal(t, 1, v.NumeroHistorial)
	assert.True(t, v.EsRegistroActual)
}

func TestDetachVehiculoLimpiaEspejo(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conVehiculo(t, "veh-1", "ABC-123")

	r, err := e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	require.NoError(t, err)
	require.NoError(t, e.uc.AttachVehiculo(context.Background(), r.ID, "veh-1"))

	require.NoError(t, e.uc.DetachVehiculo(context.Background(), r.ID, "veh-1"))
	// Repetir no falla.
	require.NoError(t, e.uc.DetachVehiculo(context.Background(), r.ID, "veh-1"))

	recargada, err := e.resoluciones.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Empty(t, recargada.VehiculosHabilitadosIds)

	v, err := e.vehiculos.GetByID(context.Background(), "veh-1")
	require.NoError(t, err)
	assert.Empty(t, v.ResolucionID)
}

func TestAttachEnResolucionTerminal(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conVehiculo(t, "veh-1", "ABC-123")

	r, err := e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	require.NoError(t, err)
	e.promover(t, r.ID, entity.ResolucionAnulada)

	err = e.uc.AttachVehiculo(context.Background(), r.ID, "veh-1")
	assert.ErrorIs(t, err, domain.ErrConflicto)
}

func TestListByEmpresaFiltros(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	r1, err := e.uc.Create(context.Background(), padreRequest("R-0001-2025", "emp-1"))
	require.NoError(t, err)
	in2 := padreRequest("R-0002-2025", "emp-1")
	in2.FechaEmision = "2024-03-10"
	in2.FechaVigenciaInicio = "2024-03-10"
	_, err = e.uc.Create(context.Background(), in2)
	require.NoError(t, err)

	out, err := e.uc.ListByEmpresa(context.Background(), "emp-1",
		repository.FiltroResoluciones{Anio: 2025}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, r1.ID, out.Items[0].ID)
}
