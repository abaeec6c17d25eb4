package ruta_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/application/resolucion"
	"github.com/drtc-puno/sirret-api/internal/application/ruta"
	"github.com/drtc-puno/sirret-api/internal/application/vehiculo"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/memoria"
)

type entorno struct {
	uc           *ruta.UseCase
	resolucionUC *resolucion.UseCase
	rutas        *memoria.RutaStore
	resoluciones *memoria.ResolucionStore
	empresas     *memoria.EmpresaStore
	vehiculos    *memoria.VehiculoStore
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	rutas := memoria.NewRutaStore()
	especificas := memoria.NewRutaEspecificaStore()
	resoluciones := memoria.NewResolucionStore()
	empresas := memoria.NewEmpresaStore()
	vehiculos := memoria.NewVehiculoStore()
	linaje := vehiculo.NewHistorialService(vehiculos, resoluciones)
	resolucionUC := resolucion.New(resoluciones, empresas, vehiculos, ports.CacheNulo{}, linaje, 0)
	uc := ruta.New(rutas, especificas, resoluciones, empresas, vehiculos, resolucionUC)
	return &entorno{
		uc: uc, resolucionUC: resolucionUC,
		rutas: rutas, resoluciones: resoluciones, empresas: empresas, vehiculos: vehiculos,
	}
}

func (e *entorno) conEmpresa(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, e.empresas.Create(context.Background(), &entity.Empresa{
		ID: id, RUC: "20123456789", Estado: entity.EmpresaHabilitada, EstaActivo: true,
	}))
}

func (e *entorno) conResolucion(t *testing.T, id, numero, empresaID string) {
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

func rutaRequest(codigo, empresaID, resolucionID string) dto.CreateRutaRequest {
	return dto.CreateRutaRequest{
		CodigoRuta:   codigo,
		EmpresaID:    empresaID,
		ResolucionID: resolucionID,
		Origen:       dto.LocalidadDTO{Nombre: "Puno"},
		Destino:      dto.LocalidadDTO{Nombre: "Juliaca"},
		TipoServicio: entity.ServicioPersonas,
	}
}

func TestCreateNormalizaCodigo(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conResolucion(t, "res-1", "R-0001-2025", "emp-1")

	out, err := e.uc.Create(context.Background(), rutaRequest("1", "emp-1", "res-1"))
	require.NoError(t, err)
	assert.Equal(t, "01", out.CodigoRuta)
	assert.Equal(t, "PUNO", out.Origen.Nombre)
	assert.Equal(t, entity.RutaActiva, out.Estado)

	r, err := e.resoluciones.GetByID(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Contains(t, r.RutasAutorizadasIds, out.ID)

	emp, err := e.empresas.GetByID(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Contains(t, emp.RutasIds, out.ID)
}

func TestCreateCodigoUnicoPorResolucion(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conResolucion(t, "res-1", "R-0001-2025", "emp-1")
	e.conResolucion(t, "res-2", "R-0002-2025", "emp-1")

	_, err := e.uc.Create(context.Background(), rutaRequest("01", "emp-1", "res-1"))
	require.NoError(t, err)

	// "1" normaliza a "01": colisiona dentro de la misma resolución.
	_, err = e.uc.Create(context.Background(), rutaRequest("1", "emp-1", "res-1"))
	assert.ErrorIs(t, err, domain.ErrDuplicado)

	// El mismo código es válido bajo otra resolución.
	_, err = e.uc.Create(context.Background(), rutaRequest("01", "emp-1", "res-2"))
	assert.NoError(t, err)
}

func TestCreateCodigoInvalido(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conResolucion(t, "res-1", "R-0001-2025", "emp-1")

	for _, codigo := range []string{"", "0", "A1", "-1"} {
		_, err := e.uc.Create(context.Background(), rutaRequest(codigo, "emp-1", "res-1"))
		assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "código %q", codigo)
	}
}

func TestCreateOrigenDestinoIguales(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conResolucion(t, "res-1", "R-0001-2025", "emp-1")

	in := rutaRequest("01", "emp-1", "res-1")
	// La comparación normaliza mayúsculas y tildes.
	in.Origen = dto.LocalidadDTO{Nombre: "Juliaca"}
	in.Destino = dto.LocalidadDTO{Nombre: "  JULIACA "}
	_, err := e.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestCreateResolucionDeOtraEmpresa(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	require.NoError(t, e.empresas.Create(context.Background(), &entity.Empresa{
		ID: "emp-2", RUC: "20987654321", Estado: entity.EmpresaHabilitada, EstaActivo: true,
	}))
	e.conResolucion(t, "res-1", "R-0001-2025", "emp-1")

	_, err := e.uc.Create(context.Background(), rutaRequest("01", "emp-2", "res-1"))
	assert.ErrorIs(t, err, domain.ErrDependenciaFaltante)
}

func TestDeleteRevocaAutorizacion(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conResolucion(t, "res-1", "R-0001-2025", "emp-1")

	out, err := e.uc.Create(context.Background(), rutaRequest("01", "emp-1", "res-1"))
	require.NoError(t, err)

	require.NoError(t, e.uc.Delete(context.Background(), out.ID))

	r, err := e.resoluciones.GetByID(context.Background(), "res-1")
	require.NoError(t, err)
	assert.NotContains(t, r.RutasAutorizadasIds, out.ID)
}

func TestCombinaciones(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conResolucion(t, "res-1", "R-0001-2025", "emp-1")

	_, err := e.uc.Create(context.Background(), rutaRequest("01", "emp-1", "res-1"))
	require.NoError(t, err)
	_, err = e.uc.Create(context.Background(), rutaRequest("02", "emp-1", "res-1"))
	require.NoError(t, err)
	in := rutaRequest("03", "emp-1", "res-1")
	in.Destino = dto.LocalidadDTO{Nombre: "Ilave"}
	_, err = e.uc.Create(context.Background(), in)
	require.NoError(t, err)

	out, err := e.uc.Combinaciones(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, out, 2)
	// Orden alfabético de pares: PUNO→ILAVE antes que PUNO→JULIACA.
	assert.Equal(t, "ILAVE", out[0].Destino)
	assert.Len(t, out[0].Rutas, 1)
	assert.Equal(t, "JULIACA", out[1].Destino)
	assert.Len(t, out[1].Rutas, 2)
}

func TestBuscarNormalizaTexto(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conResolucion(t, "res-1", "R-0001-2025", "emp-1")

	_, err := e.uc.Create(context.Background(), rutaRequest("01", "emp-1", "res-1"))
	require.NoError(t, err)

	out, err := e.uc.Buscar(context.Background(), "juliaca", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out, 1)

	out, err = e.uc.Buscar(context.Background(), "cusco", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

// ── Rutas específicas ─────────────────────────────────────────────────────────

func (e *entorno) conVehiculoHabilitado(t *testing.T, id, placa, resolucionID string) {
	t.Helper()
	require.NoError(t, e.vehiculos.Create(context.Background(), &entity.Vehiculo{
		ID:               id,
		Placa:            placa,
		EmpresaActualID:  "emp-1",
		ResolucionID:     resolucionID,
		Estado:           entity.VehiculoActivo,
		EsRegistroActual: true,
		EstaActivo:       true,
	}))
}

func horarioValido() dto.HorarioDTO {
	return dto.HorarioDTO{
		HoraSalida:  "06:00",
		HoraLlegada: "09:30",
		DiasSemana:  0b0011111, // lunes a viernes
	}
}

func TestCreateEspecifica(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conResolucion(t, "res-1", "R-0001-2025", "emp-1")
	e.conVehiculoHabilitado(t, "veh-1", "ABC-123", "res-1")

	general, err := e.uc.Create(context.Background(), rutaRequest("01", "emp-1", "res-1"))
	require.NoError(t, err)

	esp, err := e.uc.CreateEspecifica(context.Background(), dto.CreateRutaEspecificaRequest{
		VehiculoID:    "veh-1",
		RutaGeneralID: general.ID,
		Horarios:      []dto.HorarioDTO{horarioValido()},
	})
	require.NoError(t, err)
	assert.Equal(t, "01-E01", esp.Codigo)
	assert.Equal(t, "res-1", esp.ResolucionID)
	// Origen y destino heredados de la general.
	assert.Equal(t, "PUNO", esp.Origen.Nombre)
	assert.Equal(t, "JULIACA", esp.Destino.Nombre)

	// La segunda específica de la misma general lleva el siguiente sufijo.
	esp2, err := e.uc.CreateEspecifica(context.Background(), dto.CreateRutaEspecificaRequest{
		VehiculoID:    "veh-1",
		RutaGeneralID: general.ID,
		Horarios:      []dto.HorarioDTO{horarioValido()},
	})
	require.NoError(t, err)
	assert.Equal(t, "01-E02", esp2.Codigo)
}

func TestCreateEspecificaHorariosInvalidos(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conResolucion(t, "res-1", "R-0001-2025", "emp-1")
	e.conVehiculoHabilitado(t, "veh-1", "ABC-123", "res-1")

	general, err := e.uc.Create(context.Background(), rutaRequest("01", "emp-1", "res-1"))
	require.NoError(t, err)

	casos := []struct {
		nombre   string
		horarios []dto.HorarioDTO
	}{
		{"sin horarios", nil},
		{"llegada antes de salida", []dto.HorarioDTO{{HoraSalida: "10:00", HoraLlegada: "08:00", DiasSemana: 1}}},
		{"llegada igual a salida", []dto.HorarioDTO{{HoraSalida: "10:00", HoraLlegada: "10:00", DiasSemana: 1}}},
		{"sin días", []dto.HorarioDTO{{HoraSalida: "06:00", HoraLlegada: "09:00"}}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := e.uc.CreateEspecifica(context.Background(), dto.CreateRutaEspecificaRequest{
				VehiculoID:    "veh-1",
				RutaGeneralID: general.ID,
				Horarios:      c.horarios,
			})
			assert.ErrorIs(t, err, domain.ErrHorarioInvalido)
		})
	}

	// Hora mal formada es entrada inválida.
	_, err = e.uc.CreateEspecifica(context.Background(), dto.CreateRutaEspecificaRequest{
		VehiculoID:    "veh-1",
		RutaGeneralID: general.ID,
		Horarios:      []dto.HorarioDTO{{HoraSalida: "6:00", HoraLlegada: "09:00", DiasSemana: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestCreateEspecificaRutaNoAutorizada(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conResolucion(t, "res-1", "R-0001-2025", "emp-1")
	e.conResolucion(t, "res-2", "R-0002-2025", "emp-1")
	// El vehículo está habilitado por res-2, pero la ruta cuelga de res-1.
	e.conVehiculoHabilitado(t, "veh-1", "ABC-123", "res-2")

	general, err := e.uc.Create(context.Background(), rutaRequest("01", "emp-1", "res-1"))
	require.NoError(t, err)

	_, err = e.uc.CreateEspecifica(context.Background(), dto.CreateRutaEspecificaRequest{
		VehiculoID:    "veh-1",
		RutaGeneralID: general.ID,
		Horarios:      []dto.HorarioDTO{horarioValido()},
	})
	assert.ErrorIs(t, err, domain.ErrRutaNoAutorizada)
}

func TestCreateEspecificaVehiculoSinResolucion(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conResolucion(t, "res-1", "R-0001-2025", "emp-1")
	e.conVehiculoHabilitado(t, "veh-1", "ABC-123", "")

	general, err := e.uc.Create(context.Background(), rutaRequest("01", "emp-1", "res-1"))
	require.NoError(t, err)

	_, err = e.uc.CreateEspecifica(context.Background(), dto.CreateRutaEspecificaRequest{
		VehiculoID:    "veh-1",
		RutaGeneralID: general.ID,
		Horarios:      []dto.HorarioDTO{horarioValido()},
	})
	assert.ErrorIs(t, err, domain.ErrRutaNoAutorizada)
}

func TestCreateEspecificaVehiculoBloqueado(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conResolucion(t, "res-1", "R-0001-2025", "emp-1")
	require.NoError(t, e.vehiculos.Create(context.Background(), &entity.Vehiculo{
		ID: "veh-1", Placa: "ABC-123", ResolucionID: "res-1",
		Estado: entity.VehiculoSuspendido, EsRegistroActual: true, EstaActivo: true,
	}))

	general, err := e.uc.Create(context.Background(), rutaRequest("01", "emp-1", "res-1"))
	require.NoError(t, err)

	_, err = e.uc.CreateEspecifica(context.Background(), dto.CreateRutaEspecificaRequest{
		VehiculoID:    "veh-1",
		RutaGeneralID: general.ID,
		Horarios:      []dto.HorarioDTO{horarioValido()},
	})
	assert.ErrorIs(t, err, domain.ErrConflicto)
}

func TestFiltroAvanzado(t *testing.T) {
	e := nuevoEntorno(t)
	e.conEmpresa(t, "emp-1")
	e.conResolucion(t, "res-1", "R-0001-2025", "emp-1")

	_, err := e.uc.Create(context.Background(), rutaRequest("01", "emp-1", "res-1"))
	require.NoError(t, err)
	in := rutaRequest("02", "emp-1", "res-1")
	in.Destino = dto.LocalidadDTO{Nombre: "Ilave"}
	_, err = e.uc.Create(context.Background(), in)
	require.NoError(t, err)

	out, err := e.uc.FiltroAvanzado(context.Background(), "puno", "juliaca", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "01", out[0].CodigoRuta)
}
