package carga

import (
	"github.com/drtc-puno/sirret-api/internal/application/empresa"
	"github.com/drtc-puno/sirret-api/internal/application/resolucion"
	"github.com/drtc-puno/sirret-api/internal/application/ruta"
	"github.com/drtc-puno/sirret-api/internal/application/vehiculo"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/pkg/logger"
)

// UseCase orquesta las cuatro cargas masivas. La fase 1 consulta los
// repositorios solo en lectura; la fase 2 delega en los motores de cada
// agregado.
type UseCase struct {
	empresasUC     *empresa.UseCase
	resolucionesUC *resolucion.UseCase
	rutasUC        *ruta.UseCase
	vehiculosUC    *vehiculo.UseCase

	empresas     repository.EmpresaRepository
	resoluciones repository.ResolucionRepository
	rutas        repository.RutaRepository
	vehiculos    repository.VehiculoRepository

	log *logger.Logger
}

// New construye el orquestador de cargas.
func New(
	empresasUC *empresa.UseCase,
	resolucionesUC *resolucion.UseCase,
	rutasUC *ruta.UseCase,
	vehiculosUC *vehiculo.UseCase,
	empresas repository.EmpresaRepository,
	resoluciones repository.ResolucionRepository,
	rutas repository.RutaRepository,
	vehiculos repository.VehiculoRepository,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		empresasUC:     empresasUC,
		resolucionesUC: resolucionesUC,
		rutasUC:        rutasUC,
		vehiculosUC:    vehiculosUC,
		empresas:       empresas,
		resoluciones:   resoluciones,
		rutas:          rutas,
		vehiculos:      vehiculos,
		log:            log,
	}
}
