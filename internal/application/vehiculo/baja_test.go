package vehiculo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/vehiculo"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/memoria"
)

type entornoBaja struct {
	uc        *vehiculo.BajaUseCase
	vehiculos *memoria.VehiculoStore
}

func nuevoEntornoBaja(t *testing.T) *entornoBaja {
	t.Helper()
	vehiculos := memoria.NewVehiculoStore()
	solicitudes := memoria.NewSolicitudBajaStore()
	require.NoError(t, vehiculos.Create(context.Background(), &entity.Vehiculo{
		ID:               "veh-1",
		Placa:            "ABC-123",
		EmpresaActualID:  "emp-1",
		Estado:           entity.VehiculoActivo,
		EsRegistroActual: true,
		EstaActivo:       true,
	}))
	return &entornoBaja{uc: vehiculo.NewBajaUseCase(solicitudes, vehiculos), vehiculos: vehiculos}
}

func (e *entornoBaja) solicitud(t *testing.T, motivo string) *dto.SolicitudBajaResponse {
	t.Helper()
	s, err := e.uc.Crear(context.Background(), dto.CreateSolicitudBajaRequest{
		VehiculoID: "veh-1",
		Motivo:     motivo,
		Sustento:   "acta de fiscalización",
	}, "user-1")
	require.NoError(t, err)
	return s
}

func TestCrearSolicitud(t *testing.T) {
	e := nuevoEntornoBaja(t)

	s := e.solicitud(t, entity.MotivoVenta)
	assert.Equal(t, entity.SolicitudPendiente, s.Estado)
	assert.Equal(t, "emp-1", s.EmpresaID)
	assert.Equal(t, "user-1", s.SolicitadoPor)
}

func TestCrearSolicitudMotivoInvalido(t *testing.T) {
	e := nuevoEntornoBaja(t)

	_, err := e.uc.Crear(context.Background(), dto.CreateSolicitudBajaRequest{
		VehiculoID: "veh-1",
		Motivo:     "PORQUE_SI",
	}, "user-1")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestAprobarDesdePendienteProhibido(t *testing.T) {
	e := nuevoEntornoBaja(t)
	s := e.solicitud(t, entity.MotivoVenta)

	_, err := e.uc.Resolver(context.Background(), s.ID, dto.ResolverSolicitudBajaRequest{Aprobar: true}, "rev-1")
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
}

// El motivo de la baja aprobada determina el estado final del vehículo.
func TestAprobarEstadoFinalPorMotivo(t *testing.T) {
	casos := []struct {
		motivo string
		estado string
	}{
		{entity.MotivoRoboHurto, entity.VehiculoBajaDeOficio},
		{entity.MotivoIncumplimiento, entity.VehiculoBajaDeOficio},
		{entity.MotivoAccidente, entity.VehiculoBajaDefinitiva},
		{entity.MotivoDeterioro, entity.VehiculoBajaDefinitiva},
		{entity.MotivoVenta, entity.VehiculoBaja},
		{entity.MotivoCambioFlota, entity.VehiculoBaja},
	}
	for _, c := range casos {
		t.Run(c.motivo, func(t *testing.T) {
			e := nuevoEntornoBaja(t)
			s := e.solicitud(t, c.motivo)

			_, err := e.uc.IniciarRevision(context.Background(), s.ID)
			require.NoError(t, err)
			out, err := e.uc.Resolver(context.Background(), s.ID, dto.ResolverSolicitudBajaRequest{
				Aprobar:       true,
				Observaciones: "verificado en campo",
			}, "rev-1")
			require.NoError(t, err)
			assert.Equal(t, entity.SolicitudAprobada, out.Estado)
			assert.NotNil(t, out.FechaResolucion)

			v, err := e.vehiculos.GetByID(context.Background(), "veh-1")
			require.NoError(t, err)
			assert.Equal(t, c.estado, v.Estado)
			assert.Equal(t, c.motivo, v.MotivoBaja)
			assert.NotNil(t, v.FechaBaja)
			assert.Equal(t, "verificado en campo", v.ObservacionesBaja)
		})
	}
}

// Un vehículo bloqueado por baja de oficio sale de la vista vigente aunque
// siga siendo el registro actual de su placa.
func TestAprobarBajaDeOficioSaleDeVistaVigente(t *testing.T) {
	e := nuevoEntornoBaja(t)
	s := e.solicitud(t, entity.MotivoIncumplimiento)

	_, err := e.uc.IniciarRevision(context.Background(), s.ID)
	require.NoError(t, err)
	_, err = e.uc.Resolver(context.Background(), s.ID, dto.ResolverSolicitudBajaRequest{Aprobar: true}, "rev-1")
	require.NoError(t, err)

	v, err := e.vehiculos.GetByID(context.Background(), "veh-1")
	require.NoError(t, err)
	assert.Equal(t, entity.VehiculoBajaDeOficio, v.Estado)
	assert.True(t, v.EsRegistroActual)

	vigentes, err := e.vehiculos.List(context.Background(), repository.FiltroVehiculos{Visibilidad: repository.VisibilidadActual}, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, vigentes)

	bloqueados := true
	todos, err := e.vehiculos.List(context.Background(), repository.FiltroVehiculos{Visibilidad: repository.VisibilidadTodos, Bloqueados: &bloqueados}, 100, 0)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "veh-1", todos[0].ID)
}

func TestRechazarRequiereMotivo(t *testing.T) {
	e := nuevoEntornoBaja(t)
	s := e.solicitud(t, entity.MotivoVenta)
	_, err := e.uc.IniciarRevision(context.Background(), s.ID)
	require.NoError(t, err)

	_, err = e.uc.Resolver(context.Background(), s.ID, dto.ResolverSolicitudBajaRequest{Aprobar: false}, "rev-1")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	out, err := e.uc.Resolver(context.Background(), s.ID, dto.ResolverSolicitudBajaRequest{
		Aprobar:       false,
		MotivoRechazo: "sustento insuficiente",
	}, "rev-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SolicitudRechazada, out.Estado)

	// El vehículo no cambia con un rechazo.
	v, err := e.vehiculos.GetByID(context.Background(), "veh-1")
	require.NoError(t, err)
	assert.Equal(t, entity.VehiculoActivo, v.Estado)
}

func TestCancelarSolicitudResuelta(t *testing.T) {
	e := nuevoEntornoBaja(t)
	s := e.solicitud(t, entity.MotivoVenta)
	_, err := e.uc.IniciarRevision(context.Background(), s.ID)
	require.NoError(t, err)
	_, err = e.uc.Resolver(context.Background(), s.ID, dto.ResolverSolicitudBajaRequest{Aprobar: true}, "rev-1")
	require.NoError(t, err)

	_, err = e.uc.Cancelar(context.Background(), s.ID)
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
}

func TestListBajasPorEstado(t *testing.T) {
	e := nuevoEntornoBaja(t)
	s1 := e.solicitud(t, entity.MotivoVenta)
	s2 := e.solicitud(t, entity.MotivoDeterioro)
	_, err := e.uc.IniciarRevision(context.Background(), s2.ID)
	require.NoError(t, err)

	pendientes, err := e.uc.ListByEstado(context.Background(), entity.SolicitudPendiente, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, pendientes, 1)
	assert.Equal(t, s1.ID, pendientes[0].ID)

	todas, err := e.uc.ListByEstado(context.Background(), "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, todas, 2)
}
