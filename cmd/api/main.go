package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/drtc-puno/sirret-api/internal/application/auth"
	"github.com/drtc-puno/sirret-api/internal/application/carga"
	"github.com/drtc-puno/sirret-api/internal/application/empresa"
	"github.com/drtc-puno/sirret-api/internal/application/mesapartes"
	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/application/resolucion"
	"github.com/drtc-puno/sirret-api/internal/application/ruta"
	"github.com/drtc-puno/sirret-api/internal/application/vehiculo"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/cache"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/cola"
	infraexcel "github.com/drtc-puno/sirret-api/internal/infrastructure/excel"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/externo"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/notificaciones"
	infrapdf "github.com/drtc-puno/sirret-api/internal/infrastructure/pdf"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/postgres"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/sunat"
	httpRouter "github.com/drtc-puno/sirret-api/internal/interfaces/http"
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
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	empresaRepo := postgres.NewEmpresaRepo(pool)
	resolucionRepo := postgres.NewResolucionRepo(pool)
	rutaRepo := postgres.NewRutaRepo(pool)
	especificaRepo := postgres.NewRutaEspecificaRepo(pool)
	vehiculoRepo := postgres.NewVehiculoRepo(pool)
	bajaRepo := postgres.NewSolicitudBajaRepo(pool)
	documentoRepo := postgres.NewDocumentoRepo(pool)
	derivacionRepo := postgres.NewDerivacionRepo(pool)
	archivoRepo := postgres.NewArchivoRepo(pool)
	usuarioRepo := postgres.NewUsuarioRepo(pool)

	// Caché: URL vacía degrada a no-op sin tocar la lógica de negocio.
	var cacheImpl ports.Cache = ports.CacheNulo{}
	redisCache, err := cache.New(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("redis no disponible, caché deshabilitado")
	} else if redisCache != nil {
		cacheImpl = redisCache
		defer redisCache.Close()
	}
	ttl := time.Duration(cfg.Redis.TTLSegundos) * time.Second

	// Consulta RUC: nil si no está configurada.
	var consultaRUC ports.ConsultaRUC
	if cli := sunat.New(cfg.SUNAT); cli != nil {
		consultaRUC = cli
	}

	// Push de documentos: nil si no está configurado.
	var sincronizador ports.SincronizadorDocumentos
	if cli := externo.New(cfg.Externo); cli != nil {
		sincronizador = cli
	}

	hub := notificaciones.NewHub(log)

	despachador := cola.New(cfg.Cola, log)

	historial := vehiculo.NewHistorialService(vehiculoRepo, resolucionRepo)
	empresaUC := empresa.New(empresaRepo, consultaRUC, cacheImpl, ttl, log)
	resolucionUC := resolucion.New(resolucionRepo, empresaRepo, vehiculoRepo, cacheImpl, historial, ttl)
	vehiculoUC := vehiculo.New(vehiculoRepo, empresaRepo, cacheImpl, historial, ttl)
	bajaUC := vehiculo.NewBajaUseCase(bajaRepo, vehiculoRepo)
	rutaUC := ruta.New(rutaRepo, especificaRepo, resolucionRepo, empresaRepo, vehiculoRepo, resolucionUC)
	cargaUC := carga.New(empresaUC, resolucionUC, rutaUC, vehiculoUC,
		empresaRepo, resolucionRepo, rutaRepo, vehiculoRepo, log)
	mesaUC := mesapartes.New(documentoRepo, derivacionRepo, archivoRepo,
		despachador, hub, sincronizador,
		infraexcel.NewGeneradorExcelize(), infrapdf.NewGeneradorMaroto(),
		cacheImpl, ttl, log)
	authUC := auth.New(usuarioRepo, cfg.JWT)

	// Los reportes pesados corren en la cola; el caso de uso cae al camino
	// síncrono cuando no hay workers.
	despachador.Registrar(ports.TareaReporteExcel, func(ctx context.Context, args map[string]string) ([]byte, error) {
		return mesaUC.GenerarReporte(ctx, ports.TareaReporteExcel, mesapartes.FiltroDesdeArgumentos(args))
	})
	despachador.Registrar(ports.TareaReportePDF, func(ctx context.Context, args map[string]string) ([]byte, error) {
		return mesaUC.GenerarReporte(ctx, ports.TareaReportePDF, mesapartes.FiltroDesdeArgumentos(args))
	})
	despachador.Registrar(ports.TareaProcesarAdjunto, func(ctx context.Context, args map[string]string) ([]byte, error) {
		return nil, mesaUC.ProcesarAdjunto(ctx, args["documento_id"], args["adjunto_id"])
	})
	despachador.Registrar(ports.TareaSincronizarDoc, func(ctx context.Context, args map[string]string) ([]byte, error) {
		return nil, mesaUC.EnviarDocumentoExterno(ctx, args["documento_id"])
	})
	despachador.Registrar(ports.TareaNotificarMasivo, func(ctx context.Context, args map[string]string) ([]byte, error) {
		return nil, mesaUC.DifundirAviso(ctx, args["mensaje"], strings.Split(args["areas"], ","))
	})
	despachador.Iniciar(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SIRRET API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).
				JSON(fiber.Map{"status": "degraded", "db": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EmpresaUC:    empresaUC,
		ResolucionUC: resolucionUC,
		RutaUC:       rutaUC,
		VehiculoUC:   vehiculoUC,
		BajaUC:       bajaUC,
		CargaUC:      cargaUC,
		MesaPartesUC: mesaUC,
		AuthUC:       authUC,
		Hub:          hub,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	despachador.Detener()

	log.Info().Msg("aplicación detenida")
}
