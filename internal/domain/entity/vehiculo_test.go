package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

func TestEstadoFinalPorMotivo(t *testing.T) {
	casos := []struct {
		motivo   string
		esperado string
	}{
		{entity.MotivoIncumplimiento, entity.VehiculoBajaDeOficio},
		{entity.MotivoRoboHurto, entity.VehiculoBajaDeOficio},
		{entity.MotivoAccidente, entity.VehiculoBajaDefinitiva},
		{entity.MotivoDeterioro, entity.VehiculoBajaDefinitiva},
		{entity.MotivoObsolescencia, entity.VehiculoBajaDefinitiva},
		{entity.MotivoVenta, entity.VehiculoBaja},
		{entity.MotivoCambioFlota, entity.VehiculoBaja},
		{entity.MotivoOtros, entity.VehiculoBaja},
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, entity.EstadoFinalPorMotivo(c.motivo), c.motivo)
	}
}

func TestEstadoVehiculoBloqueado(t *testing.T) {
	assert.True(t, entity.EstadoVehiculoBloqueado(entity.VehiculoBajaDeOficio))
	assert.True(t, entity.EstadoVehiculoBloqueado(entity.VehiculoSuspendido))
	assert.False(t, entity.EstadoVehiculoBloqueado(entity.VehiculoActivo))
	assert.False(t, entity.EstadoVehiculoBloqueado(entity.VehiculoBaja))
	assert.False(t, entity.EstadoVehiculoBloqueado(entity.VehiculoMantenimiento))
}

func TestTransicionesSolicitudBaja(t *testing.T) {
	assert.True(t, entity.PuedeTransicionarSolicitud(entity.SolicitudPendiente, entity.SolicitudEnRevision))
	assert.True(t, entity.PuedeTransicionarSolicitud(entity.SolicitudEnRevision, entity.SolicitudAprobada))
	assert.True(t, entity.PuedeTransicionarSolicitud(entity.SolicitudEnRevision, entity.SolicitudRechazada))
	assert.True(t, entity.PuedeTransicionarSolicitud(entity.SolicitudPendiente, entity.SolicitudCancelada))
	assert.False(t, entity.PuedeTransicionarSolicitud(entity.SolicitudPendiente, entity.SolicitudAprobada))
	assert.False(t, entity.PuedeTransicionarSolicitud(entity.SolicitudAprobada, entity.SolicitudRechazada))
}

func TestHorarioDiasSeleccionados(t *testing.T) {
	assert.Equal(t, 0, entity.Horario{DiasSemana: 0}.DiasSeleccionados())
	assert.Equal(t, 7, entity.Horario{DiasSemana: 0b1111111}.DiasSeleccionados())
	assert.Equal(t, 2, entity.Horario{DiasSemana: 0b0100001}.DiasSeleccionados()) // lunes y sábado
}
