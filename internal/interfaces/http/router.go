package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/auth"
	"github.com/drtc-puno/sirret-api/internal/application/carga"
	"github.com/drtc-puno/sirret-api/internal/application/empresa"
	"github.com/drtc-puno/sirret-api/internal/application/mesapartes"
	"github.com/drtc-puno/sirret-api/internal/application/resolucion"
	"github.com/drtc-puno/sirret-api/internal/application/ruta"
	"github.com/drtc-puno/sirret-api/internal/application/vehiculo"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/notificaciones"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EmpresaUC    *empresa.UseCase
	ResolucionUC *resolucion.UseCase
	RutaUC       *ruta.UseCase
	VehiculoUC   *vehiculo.UseCase
	BajaUC       *vehiculo.BajaUseCase
	CargaUC      *carga.UseCase
	MesaPartesUC *mesapartes.UseCase
	AuthUC       *auth.UseCase
	Hub          *notificaciones.Hub
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth: login público, registro solo admin.
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	escritura := RequerirRol(entity.RolAdmin, entity.RolOperador)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/register", RequerirRol(entity.RolAdmin), authHandler.Register)

	// Empresas (protegido)
	empresas := protected.Group("/empresas")
	empresaHandler := NewEmpresaHandler(deps.EmpresaUC)
	empresas.Post("/", escritura, empresaHandler.Create)
	empresas.Get("/", empresaHandler.List)
	empresas.Get("/estadisticas", empresaHandler.Estadisticas)
	empresas.Get("/ruc/:ruc", empresaHandler.GetByRUC)
	empresas.Get("/:id", empresaHandler.GetByID)
	empresas.Put("/:id", escritura, empresaHandler.Update)
	empresas.Patch("/:id/estado", escritura, empresaHandler.CambiarEstado)
	empresas.Post("/:id/sunat", escritura, empresaHandler.RefrescarSunat)
	empresas.Delete("/:id", RequerirRol(entity.RolAdmin), empresaHandler.Delete)

	// Resoluciones (protegido)
	resoluciones := protected.Group("/resoluciones")
	resolucionHandler := NewResolucionHandler(deps.ResolucionUC)
	resoluciones.Post("/", escritura, resolucionHandler.Create)
	resoluciones.Get("/", resolucionHandler.List)
	resoluciones.Get("/estadisticas", resolucionHandler.Estadisticas)
	resoluciones.Get("/empresa/:empresaId", resolucionHandler.ListByEmpresa)
	resoluciones.Get("/:id", resolucionHandler.GetByID)
	resoluciones.Put("/:id", escritura, resolucionHandler.Update)
	resoluciones.Patch("/:id/estado", escritura, resolucionHandler.CambiarEstado)
	resoluciones.Post("/:id/vehiculos/:vehiculoId", escritura, resolucionHandler.AttachVehiculo)
	resoluciones.Delete("/:id/vehiculos/:vehiculoId", escritura, resolucionHandler.DetachVehiculo)
	resoluciones.Delete("/:id", RequerirRol(entity.RolAdmin), resolucionHandler.Delete)

	// Rutas generales y específicas (protegido)
	rutaHandler := NewRutaHandler(deps.RutaUC)
	rutas := protected.Group("/rutas")
	rutas.Post("/", escritura, rutaHandler.Create)
	rutas.Get("/buscar", rutaHandler.Buscar)
	rutas.Get("/filtro", rutaHandler.FiltroAvanzado)
	rutas.Get("/estadisticas", rutaHandler.Estadisticas)
	rutas.Get("/resolucion/:resolucionId", rutaHandler.ListByResolucion)
	rutas.Get("/empresa/:empresaId", rutaHandler.ListByEmpresa)
	rutas.Get("/:id", rutaHandler.GetByID)
	rutas.Put("/:id", escritura, rutaHandler.Update)
	rutas.Delete("/:id", escritura, rutaHandler.Delete)
	protected.Get("/combinaciones-rutas", rutaHandler.Combinaciones)

	especificas := protected.Group("/rutas-especificas")
	especificas.Post("/", escritura, rutaHandler.CreateEspecifica)
	especificas.Get("/vehiculo/:vehiculoId", rutaHandler.ListEspecificasByVehiculo)
	especificas.Get("/:id", rutaHandler.GetEspecifica)
	especificas.Delete("/:id", escritura, rutaHandler.DeleteEspecifica)

	// Vehículos y bajas (protegido)
	vehiculoHandler := NewVehiculoHandler(deps.VehiculoUC, deps.BajaUC)
	vehiculos := protected.Group("/vehiculos")
	vehiculos.Post("/", escritura, vehiculoHandler.Create)
	vehiculos.Get("/", vehiculoHandler.List)
	vehiculos.Get("/estadisticas", vehiculoHandler.Estadisticas)
	vehiculos.Get("/placa/:placa/historial", vehiculoHandler.Historial)
	vehiculos.Get("/placa/:placa", vehiculoHandler.GetByPlaca)
	vehiculos.Get("/:id", vehiculoHandler.GetByID)
	vehiculos.Put("/:id", escritura, vehiculoHandler.Update)
	vehiculos.Delete("/:id", escritura, vehiculoHandler.Delete)

	bajas := protected.Group("/bajas")
	bajas.Post("/", escritura, vehiculoHandler.CrearBaja)
	bajas.Get("/", vehiculoHandler.ListBajas)
	bajas.Post("/:id/revision", escritura, vehiculoHandler.IniciarRevisionBaja)
	bajas.Post("/:id/resolver", escritura, vehiculoHandler.ResolverBaja)
	bajas.Post("/:id/cancelar", escritura, vehiculoHandler.CancelarBaja)

	// Carga masiva (protegido, solo escritura)
	cargaHandler := NewCargaHandler(deps.CargaUC)
	cargaMasiva := protected.Group("/carga-masiva", escritura)
	cargaMasiva.Post("/:entidad/validar", cargaHandler.Validar)
	cargaMasiva.Post("/:entidad", cargaHandler.Cargar)

	// Mesa de Partes (protegido)
	mesaHandler := NewMesaPartesHandler(deps.MesaPartesUC)
	mesaEscritura := RequerirRol(entity.RolAdmin, entity.RolOperador, entity.RolMesaPartes)
	mesa := protected.Group("/mesa-partes")
	mesa.Post("/documentos", mesaEscritura, mesaHandler.Create)
	mesa.Get("/documentos", mesaHandler.List)
	mesa.Get("/estadisticas", mesaHandler.Estadisticas)
	mesa.Get("/documentos/expediente/:numero", mesaHandler.GetByExpediente)
	mesa.Get("/documentos/:id", mesaHandler.GetByID)
	mesa.Post("/documentos/:id/derivar", mesaEscritura, mesaHandler.Derivar)
	mesa.Get("/documentos/:id/derivaciones", mesaHandler.ListDerivaciones)
	mesa.Post("/documentos/:id/adjuntos", mesaEscritura, mesaHandler.AgregarAdjunto)
	mesa.Post("/documentos/:id/sincronizar", mesaEscritura, mesaHandler.SincronizarDocumento)
	mesa.Post("/notificaciones/masivas", mesaEscritura, mesaHandler.NotificarMasivo)
	mesa.Post("/documentos/:id/archivar", mesaEscritura, mesaHandler.Archivar)
	mesa.Post("/documentos/:id/restaurar", mesaEscritura, mesaHandler.Restaurar)
	mesa.Post("/derivaciones/:id/recibir", mesaEscritura, mesaHandler.Recibir)
	mesa.Post("/derivaciones/:id/atender", mesaEscritura, mesaHandler.Atender)
	mesa.Post("/derivaciones/:id/rechazar", mesaEscritura, mesaHandler.Rechazar)
	mesa.Get("/archivo/por-vencer", mesaHandler.ArchivosPorVencer)
	mesa.Get("/archivo/expirados", mesaHandler.ArchivosExpirados)
	mesa.Post("/exportar/excel", mesaHandler.ExportarExcel)
	mesa.Post("/exportar/pdf", mesaHandler.ExportarPDF)

	// Tareas en segundo plano (protegido)
	tareas := protected.Group("/tareas")
	tareas.Get("/:id/resultado", mesaHandler.ResultadoTarea)
	tareas.Get("/:id", mesaHandler.EstadoTarea)
	tareas.Delete("/:id", mesaHandler.CancelarTarea)

	// Notificaciones en tiempo real. La identidad del suscriptor viaja por
	// query string porque los clientes WebSocket no mandan cabecera
	// Authorization.
	if deps.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if !websocket.IsWebSocketUpgrade(c) {
				return fiber.ErrUpgradeRequired
			}
			return c.Next()
		})
		app.Get("/ws/notificaciones", websocket.New(func(conn *websocket.Conn) {
			deps.Hub.Suscribir(conn.Query("usuario_id"), conn.Query("area_id"), conn)
		}))
	}
}
