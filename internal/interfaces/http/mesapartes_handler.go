package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/mesapartes"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

// MesaPartesHandler maneja documentos, derivaciones, archivo central y
// exportaciones de Mesa de Partes.
type MesaPartesHandler struct {
	uc *mesapartes.UseCase
}

// NewMesaPartesHandler construye el handler.
func NewMesaPartesHandler(uc *mesapartes.UseCase) *MesaPartesHandler {
	return &MesaPartesHandler{uc: uc}
}

// filtroDocumentos arma el filtro del listado desde la query string.
func filtroDocumentos(c *fiber.Ctx) repository.FiltroDocumentos {
	f := repository.FiltroDocumentos{
		Estado:    c.Query("estado"),
		Prioridad: c.Query("prioridad"),
		AreaID:    c.Query("area_id"),
		Busqueda:  c.Query("busqueda"),
	}
	f.Desde = parseFechaQuery(c.Query("desde"))
	f.Hasta = parseFechaQuery(c.Query("hasta"))
	return f
}

func parseFechaQuery(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := validacion.ParseFecha(s)
	if err != nil {
		return nil
	}
	return &t
}

// Create godoc
// @Summary      Registrar documento en Mesa de Partes
// @Tags         mesa-partes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentoRequest  true  "Datos del documento"
// @Success      201   {object}  dto.DocumentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/mesa-partes/documentos [post]
func (h *MesaPartesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Create(c.Context(), in, GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento por ID
// @Tags         mesa-partes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/mesa-partes/documentos/{id} [get]
func (h *MesaPartesHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return noEncontrado(c, "documento")
	}
	return c.JSON(out)
}

// GetByExpediente godoc
// @Summary      Obtener documento por número de expediente
// @Tags         mesa-partes
// @Security     Bearer
// @Produce      json
// @Param        numero  path  string  true  "Número EXP-YYYY-NNNN"
// @Success      200  {object}  dto.DocumentoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/mesa-partes/documentos/expediente/{numero} [get]
func (h *MesaPartesHandler) GetByExpediente(c *fiber.Ctx) error {
	out, err := h.uc.GetByExpediente(c.Context(), c.Params("numero"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return noEncontrado(c, "documento")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar documentos con filtros
// @Tags         mesa-partes
// @Security     Bearer
// @Produce      json
// @Param        estado     query  string  false  "Estado"
// @Param        prioridad  query  string  false  "Prioridad"
// @Param        area_id    query  string  false  "Área actual"
// @Param        busqueda   query  string  false  "Subcadena en asunto o remitente"
// @Param        desde      query  string  false  "Fecha desde (YYYY-MM-DD)"
// @Param        hasta      query  string  false  "Fecha hasta (YYYY-MM-DD)"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.DocumentoListResponse
// @Router       /api/v1/mesa-partes/documentos [get]
func (h *MesaPartesHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.List(c.Context(), filtroDocumentos(c), page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Estadisticas godoc
// @Summary      Conteo de documentos por estado
// @Tags         mesa-partes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EstadisticasResponse
// @Router       /api/v1/mesa-partes/estadisticas [get]
func (h *MesaPartesHandler) Estadisticas(c *fiber.Ctx) error {
	out, err := h.uc.Estadisticas(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ── Derivaciones ──────────────────────────────────────────────────────────────

// Derivar godoc
// @Summary      Derivar documento a un área
// @Tags         mesa-partes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del documento"
// @Param        body  body  dto.DerivarDocumentoRequest  true  "Área destino e instrucciones"
// @Success      201   {object}  dto.DerivacionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/mesa-partes/documentos/{id}/derivar [post]
func (h *MesaPartesHandler) Derivar(c *fiber.Ctx) error {
	var in dto.DerivarDocumentoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Derivar(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Recibir godoc
// @Summary      Recibir una derivación pendiente
// @Tags         mesa-partes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la derivación"
// @Success      200  {object}  dto.DerivacionResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/v1/mesa-partes/derivaciones/{id}/recibir [post]
func (h *MesaPartesHandler) Recibir(c *fiber.Ctx) error {
	out, err := h.uc.Recibir(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Atender godoc
// @Summary      Atender una derivación recibida
// @Tags         mesa-partes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la derivación"
// @Param        body  body  dto.AtenderDerivacionRequest  true  "Resultado de la atención"
// @Success      200   {object}  dto.DerivacionResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/mesa-partes/derivaciones/{id}/atender [post]
func (h *MesaPartesHandler) Atender(c *fiber.Ctx) error {
	var in dto.AtenderDerivacionRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Atender(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Rechazar godoc
// @Summary      Rechazar una derivación pendiente
// @Tags         mesa-partes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la derivación"
// @Param        body  body  dto.RechazarDerivacionRequest  true  "Motivo del rechazo"
// @Success      200   {object}  dto.DerivacionResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/mesa-partes/derivaciones/{id}/rechazar [post]
func (h *MesaPartesHandler) Rechazar(c *fiber.Ctx) error {
	var in dto.RechazarDerivacionRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Rechazar(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListDerivaciones godoc
// @Summary      Historial de derivaciones de un documento
// @Tags         mesa-partes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {array}  dto.DerivacionResponse
// @Router       /api/v1/mesa-partes/documentos/{id}/derivaciones [get]
func (h *MesaPartesHandler) ListDerivaciones(c *fiber.Ctx) error {
	out, err := h.uc.ListDerivaciones(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ── Archivo central ───────────────────────────────────────────────────────────

// Archivar godoc
// @Summary      Archivar documento atendido
// @Tags         mesa-partes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del documento"
// @Param        body  body  dto.ArchivarDocumentoRequest  true  "Clasificación y política de retención"
// @Success      201   {object}  dto.ArchivoResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/mesa-partes/documentos/{id}/archivar [post]
func (h *MesaPartesHandler) Archivar(c *fiber.Ctx) error {
	var in dto.ArchivarDocumentoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Archivar(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Restaurar godoc
// @Summary      Restaurar documento archivado a trámite
// @Tags         mesa-partes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentoResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/v1/mesa-partes/documentos/{id}/restaurar [post]
func (h *MesaPartesHandler) Restaurar(c *fiber.Ctx) error {
	out, err := h.uc.Restaurar(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ArchivosPorVencer godoc
// @Summary      Archivos cuya retención vence dentro de la ventana de aviso
// @Tags         mesa-partes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ArchivoResponse
// @Router       /api/v1/mesa-partes/archivo/por-vencer [get]
func (h *MesaPartesHandler) ArchivosPorVencer(c *fiber.Ctx) error {
	out, err := h.uc.ArchivosPorVencer(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ArchivosExpirados godoc
// @Summary      Archivos con retención ya vencida
// @Tags         mesa-partes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ArchivoResponse
// @Router       /api/v1/mesa-partes/archivo/expirados [get]
func (h *MesaPartesHandler) ArchivosExpirados(c *fiber.Ctx) error {
	out, err := h.uc.ArchivosExpirados(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ── Adjuntos y sincronización ─────────────────────────────────────────────────

// AgregarAdjunto godoc
// @Summary      Anexar un archivo al documento (verificación asíncrona si la cola está disponible)
// @Tags         mesa-partes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del documento"
// @Param        body  body  dto.AdjuntoRequest true  "Metadatos del adjunto"
// @Success      202   {object}  dto.TareaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/mesa-partes/documentos/{id}/adjuntos [post]
func (h *MesaPartesHandler) AgregarAdjunto(c *fiber.Ctx) error {
	var in dto.AdjuntoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.AgregarAdjunto(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// SincronizarDocumento godoc
// @Summary      Empujar el documento a la plataforma externa (asíncrono si la cola está disponible)
// @Tags         mesa-partes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del documento"
// @Success      202  {object}  dto.TareaResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/v1/mesa-partes/documentos/{id}/sincronizar [post]
func (h *MesaPartesHandler) SincronizarDocumento(c *fiber.Ctx) error {
	out, err := h.uc.SincronizarDocumento(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// NotificarMasivo godoc
// @Summary      Difundir un aviso a varias áreas (asíncrono si la cola está disponible)
// @Tags         mesa-partes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NotificarMasivoRequest  true  "Mensaje y áreas destino"
// @Success      202   {object}  dto.TareaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/mesa-partes/notificaciones/masivas [post]
func (h *MesaPartesHandler) NotificarMasivo(c *fiber.Ctx) error {
	var in dto.NotificarMasivoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.NotificarMasivo(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// ── Exportaciones ─────────────────────────────────────────────────────────────

// ExportarExcel godoc
// @Summary      Exportar documentos a Excel (asíncrono si la cola está disponible)
// @Tags         mesa-partes
// @Security     Bearer
// @Produce      json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {object}  dto.TareaResponse
// @Router       /api/v1/mesa-partes/exportar/excel [post]
func (h *MesaPartesHandler) ExportarExcel(c *fiber.Ctx) error {
	tarea, datos, err := h.uc.ExportarExcel(c.Context(), filtroDocumentos(c))
	if err != nil {
		return responderError(c, err)
	}
	if datos != nil {
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="documentos.xlsx"`)
		return c.Send(datos)
	}
	return c.Status(fiber.StatusAccepted).JSON(tarea)
}

// ExportarPDF godoc
// @Summary      Exportar documentos a PDF (asíncrono si la cola está disponible)
// @Tags         mesa-partes
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Success      200  {object}  dto.TareaResponse
// @Router       /api/v1/mesa-partes/exportar/pdf [post]
func (h *MesaPartesHandler) ExportarPDF(c *fiber.Ctx) error {
	tarea, datos, err := h.uc.ExportarPDF(c.Context(), filtroDocumentos(c))
	if err != nil {
		return responderError(c, err)
	}
	if datos != nil {
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="documentos.pdf"`)
		return c.Send(datos)
	}
	return c.Status(fiber.StatusAccepted).JSON(tarea)
}

// ── Tareas ────────────────────────────────────────────────────────────────────

// EstadoTarea godoc
// @Summary      Consultar estado de una tarea en segundo plano
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Task ID"
// @Success      200  {object}  dto.TareaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/tareas/{id} [get]
func (h *MesaPartesHandler) EstadoTarea(c *fiber.Ctx) error {
	out, err := h.uc.EstadoTarea(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ResultadoTarea godoc
// @Summary      Descargar el producto de una tarea completada
// @Tags         tareas
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        id  path  string  true  "Task ID"
// @Success      200  {file}  binary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/tareas/{id}/resultado [get]
func (h *MesaPartesHandler) ResultadoTarea(c *fiber.Ctx) error {
	datos, nombre, err := h.uc.ResultadoTarea(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(datos)
}

// CancelarTarea godoc
// @Summary      Cancelar una tarea pendiente o en ejecución
// @Tags         tareas
// @Security     Bearer
// @Param        id  path  string  true  "Task ID"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/tareas/{id} [delete]
func (h *MesaPartesHandler) CancelarTarea(c *fiber.Ctx) error {
	if err := h.uc.CancelarTarea(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
