package vehiculo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/application/vehiculo"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/memoria"
)

func fecha(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

type entorno struct {
	uc           *vehiculo.UseCase
	historial    *vehiculo.HistorialService
	vehiculos    *memoria.VehiculoStore
	resoluciones *memoria.ResolucionStore
	empresas     *memoria.EmpresaStore
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	vehiculos := memoria.NewVehiculoStore()
	resoluciones := memoria.NewResolucionStore()
	empresas := memoria.NewEmpresaStore()
	historial := vehiculo.NewHistorialService(vehiculos, resoluciones)
	uc := vehiculo.New(vehiculos, empresas, ports.CacheNulo{}, historial, 0)
	return &entorno{uc: uc, historial: historial, vehiculos: vehiculos, resoluciones: resoluciones, empresas: empresas}
}

func (e *entorno) conEmpresa(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, e.empresas.Create(context.Background(), &entity.Empresa{
		ID: id, RUC: "20123456789", Estado: entity.EmpresaHabilitada, EstaActivo: true,
	}))
}

func (e *entorno) conRegistro(t *testing.T, v *entity.Vehiculo) {
	t.Helper()
	if v.Estado == "" {
		v.Estado = entity.VehiculoActivo
	}
	v.EstaActivo = true
	require.NoError(t, e.vehiculos.Create(context.Background(), v))
}

func TestCreateNormalizaPlaca(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	out, err := e.uc.Create(context.Background(), dto.CreateVehiculoRequest{
		Placa:     "  abc-123 ",
		EmpresaID: "emp-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ABC-123", out.Placa)
	assert.Equal(t, entity.VehiculoActivo, out.Estado)
	assert.True(t, out.EsRegistroActual)

	emp, err := e.empresas.GetByID(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Contains(t, emp.VehiculosIds, out.ID)
}

func TestCreatePlacaInvalida(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	for _, placa := range []string{"", "ABC123", "AB-1234", "ABCD-123"} {
		_, err := e.uc.Create(context.Background(), dto.CreateVehiculoRequest{Placa: placa, EmpresaID: "emp-1"})
		assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "placa %q", placa)
	}
}

func TestCreatePlacaDuplicada(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")

	_, err := e.uc.Create(context.Background(), dto.CreateVehiculoRequest{Placa: "ABC-123", EmpresaID: "emp-1"})
	require.NoError(t, err)
	_, err = e.uc.Create(context.Background(), dto.CreateVehiculoRequest{Placa: "ABC-123", EmpresaID: "emp-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicado)
}

func TestCreateEmpresaInexistente(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.uc.Create(context.Background(), dto.CreateVehiculoRequest{Placa: "ABC-123", EmpresaID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrDependenciaFaltante)
}

// La familia ABC-123 tiene dos registros habilitados por resoluciones de 2020
// y 2023: el recalculo debe asignar ordinales cronológicos y mover la marca
// de registro vigente al más reciente.
func TestRecalcularPlacaAsignaOrdinales(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	e.conRegistro(t, &entity.Vehiculo{ID: "veh-1", Placa: "ABC-123", EsRegistroActual: true, CreatedAt: fecha(2020, 1, 1)})
	e.conRegistro(t, &entity.Vehiculo{ID: "veh-2", Placa: "ABC-123", CreatedAt: fecha(2023, 1, 1)})

	require.NoError(t, e.resoluciones.Create(ctx, &entity.Resolucion{
		ID: "res-1", Numero: "R-0010-2020", EmpresaID: "emp-1",
		FechaEmision:            fecha(2020, 5, 1),
		VehiculosHabilitadosIds: []string{"veh-1"},
		EstaActivo:              true,
	}))
	require.NoError(t, e.resoluciones.Create(ctx, &entity.Resolucion{
		ID: "res-2", Numero: "R-0020-2023", EmpresaID: "emp-1",
		FechaEmision:            fecha(2023, 5, 1),
		VehiculosHabilitadosIds: []string{"veh-2"},
		EstaActivo:              true,
	}))

	require.NoError(t, e.historial.RecalcularPlaca(ctx, "ABC-123"))

	v1, _ := e.vehiculos.GetByID(ctx, "veh-1")
	v2, _ := e.vehiculos.GetByID(ctx, "veh-2")
	assert.Equal(t, 1, v1.NumeroHistorial)
	assert.False(t, v1.EsRegistroActual)
	assert.Equal(t, 2, v2.NumeroHistorial)
	assert.True(t, v2.EsRegistroActual)
}

// Misma fecha de emisión: desempata el número de resolución.
func TestRecalcularPlacaDesempatePorNumero(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	e.conRegistro(t, &entity.Vehiculo{ID: "veh-1", Placa: "ABC-123", CreatedAt: fecha(2022, 1, 1)})
	e.conRegistro(t, &entity.Vehiculo{ID: "veh-2", Placa: "ABC-123", CreatedAt: fecha(2022, 2, 1)})

	emision := fecha(2022, 5, 1)
	require.NoError(t, e.resoluciones.Create(ctx, &entity.Resolucion{
		ID: "res-b", Numero: "R-0002-2022", FechaEmision: emision,
		VehiculosHabilitadosIds: []string{"veh-2"}, EstaActivo: true,
	}))
	require.NoError(t, e.resoluciones.Create(ctx, &entity.Resolucion{
		ID: "res-a", Numero: "R-0001-2022", FechaEmision: emision,
		VehiculosHabilitadosIds: []string{"veh-1"}, EstaActivo: true,
	}))

	require.NoError(t, e.historial.RecalcularPlaca(ctx, "ABC-123"))

	v1, _ := e.vehiculos.GetByID(ctx, "veh-1")
	v2, _ := e.vehiculos.GetByID(ctx, "veh-2")
	assert.Equal(t, 1, v1.NumeroHistorial)
	assert.Equal(t, 2, v2.NumeroHistorial)
	assert.True(t, v2.EsRegistroActual)
}

// Un mismo registro habilitado por dos resoluciones conserva el último ordinal.
func TestRecalcularPlacaUltimoOrdinal(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	e.conRegistro(t, &entity.Vehiculo{ID: "veh-1", Placa: "ABC-123", CreatedAt: fecha(2020, 1, 1)})

	require.NoError(t, e.resoluciones.Create(ctx, &entity.Resolucion{
		ID: "res-1", Numero: "R-0010-2020", FechaEmision: fecha(2020, 5, 1),
		VehiculosHabilitadosIds: []string{"veh-1"}, EstaActivo: true,
	}))
	require.NoError(t, e.resoluciones.Create(ctx, &entity.Resolucion{
		ID: "res-2", Numero: "R-0020-2023", FechaEmision: fecha(2023, 5, 1),
		VehiculosHabilitadosIds: []string{"veh-1"}, EstaActivo: true,
	}))

	require.NoError(t, e.historial.RecalcularPlaca(ctx, "ABC-123"))

	v1, _ := e.vehiculos.GetByID(ctx, "veh-1")
	assert.Equal(t, 2, v1.NumeroHistorial)
	assert.True(t, v1.EsRegistroActual)
}

func TestReconciliarTodo(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	e.conRegistro(t, &entity.Vehiculo{ID: "veh-1", Placa: "ABC-123", CreatedAt: fecha(2020, 1, 1)})
	e.conRegistro(t, &entity.Vehiculo{ID: "veh-2", Placa: "XYZ-999", CreatedAt: fecha(2021, 1, 1)})

	n, err := e.historial.ReconciliarTodo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Sin eventos de resolución, cada placa conserva un único registro vigente.
	v1, _ := e.vehiculos.GetByID(ctx, "veh-1")
	v2, _ := e.vehiculos.GetByID(ctx, "veh-2")
	assert.True(t, v1.EsRegistroActual)
	assert.True(t, v2.EsRegistroActual)
}

func TestListVisibilidad(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	e.conRegistro(t, &entity.Vehiculo{ID: "actual", Placa: "ABC-123", EsRegistroActual: true, CreatedAt: fecha(2023, 1, 1)})
	e.conRegistro(t, &entity.Vehiculo{ID: "historico", Placa: "ABC-123", CreatedAt: fecha(2020, 1, 1)})
	e.conRegistro(t, &entity.Vehiculo{ID: "suspendido", Placa: "XYZ-999", EsRegistroActual: true, Estado: entity.VehiculoSuspendido, CreatedAt: fecha(2022, 1, 1)})

	// Por defecto solo registros vigentes, nunca bloqueados.
	out, err := e.uc.List(ctx, repository.FiltroVehiculos{}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "actual", out.Items[0].ID)

	// Vista completa.
	out, err = e.uc.List(ctx, repository.FiltroVehiculos{Visibilidad: repository.VisibilidadTodos}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)

	// La vista histórica devuelve el linaje completo.
	out, err = e.uc.List(ctx, repository.FiltroVehiculos{Visibilidad: repository.VisibilidadHistorica}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)

	// Bloqueados: SUSPENDIDO y BAJA_DE_OFICIO.
	bloqueados := true
	out, err = e.uc.List(ctx, repository.FiltroVehiculos{Visibilidad: repository.VisibilidadTodos, Bloqueados: &bloqueados}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "suspendido", out.Items[0].ID)
}

func TestHistorialPorPlaca(t *testing.T) {
	e := nuevoEntorno(t)

	e.conRegistro(t, &entity.Vehiculo{ID: "veh-1", Placa: "ABC-123", NumeroHistorial: 1, CreatedAt: fecha(2020, 1, 1)})
	e.conRegistro(t, &entity.Vehiculo{ID: "veh-2", Placa: "ABC-123", NumeroHistorial: 2, EsRegistroActual: true, CreatedAt: fecha(2023, 1, 1)})

	out, err := e.uc.Historial(context.Background(), "abc-123")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "veh-1", out[0].ID)
	assert.Equal(t, "veh-2", out[1].ID)
}
