// Comando reconciliar recalcula el linaje completo de vehículos: ordinales de
// historial y marca de registro vigente por placa. Pensado para correr después
// de cargas masivas o migraciones de datos.
package main

import (
	"context"

	"github.com/drtc-puno/sirret-api/internal/application/vehiculo"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/postgres"
	"github.com/drtc-puno/sirret-api/pkg/config"
	"github.com/drtc-puno/sirret-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	vehiculoRepo := postgres.NewVehiculoRepo(pool)
	resolucionRepo := postgres.NewResolucionRepo(pool)
	historial := vehiculo.NewHistorialService(vehiculoRepo, resolucionRepo)

	placas, err := historial.ReconciliarTodo(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("reconciliación de historial")
	}
	log.Info().Int("placas", placas).Msg("reconciliación completada")
}
