package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/resolucion"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
)

// ResolucionHandler maneja las peticiones HTTP para resoluciones.
type ResolucionHandler struct {
	uc *resolucion.UseCase
}

// NewResolucionHandler construye el handler.
func NewResolucionHandler(uc *resolucion.UseCase) *ResolucionHandler {
	return &ResolucionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar resolución (PADRE o HIJO)
// @Tags         resoluciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateResolucionRequest  true  "Datos de la resolución"
// @Success      201   {object}  dto.ResolucionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/resoluciones [post]
func (h *ResolucionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateResolucionRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener resolución por ID
// @Tags         resoluciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la resolución"
// @Success      200  {object}  dto.ResolucionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/resoluciones/{id} [get]
func (h *ResolucionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return noEncontrado(c, "resolución")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar resoluciones
// @Tags         resoluciones
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ResolucionListResponse
// @Router       /api/v1/resoluciones [get]
func (h *ResolucionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.List(c.Context(), page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListByEmpresa godoc
// @Summary      Listar resoluciones de una empresa con filtros
// @Tags         resoluciones
// @Security     Bearer
// @Produce      json
// @Param        empresaId        path   string  true   "ID de la empresa"
// @Param        estado           query  string  false  "Estado"
// @Param        tipo_resolucion  query  string  false  "PADRE | HIJO"
// @Param        tipo_tramite     query  string  false  "Tipo de trámite"
// @Param        anio             query  int     false  "Año de emisión"
// @Success      200  {object}  dto.ResolucionListResponse
// @Router       /api/v1/resoluciones/empresa/{empresaId} [get]
func (h *ResolucionHandler) ListByEmpresa(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	f := repository.FiltroResoluciones{
		Estado:         c.Query("estado"),
		TipoResolucion: c.Query("tipo_resolucion"),
		TipoTramite:    c.Query("tipo_tramite"),
		Anio:           c.QueryInt("anio", 0),
	}
	out, err := h.uc.ListByEmpresa(c.Context(), c.Params("empresaId"), f, page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar resolución
// @Tags         resoluciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la resolución"
// @Param        body  body  dto.UpdateResolucionRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ResolucionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/resoluciones/{id} [put]
func (h *ResolucionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateResolucionRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// CambiarEstado godoc
// @Summary      Transicionar estado de la resolución
// @Tags         resoluciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la resolución"
// @Param        body  body  dto.CambiarEstadoResolucionRequest  true  "Nuevo estado y motivo"
// @Success      200   {object}  dto.ResolucionResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/resoluciones/{id}/estado [patch]
func (h *ResolucionHandler) CambiarEstado(c *fiber.Ctx) error {
	var in dto.CambiarEstadoResolucionRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.CambiarEstado(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// AttachVehiculo godoc
// @Summary      Habilitar vehículo en la resolución
// @Tags         resoluciones
// @Security     Bearer
// @Param        id          path  string  true  "ID de la resolución"
// @Param        vehiculoId  path  string  true  "ID del vehículo"
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/v1/resoluciones/{id}/vehiculos/{vehiculoId} [post]
func (h *ResolucionHandler) AttachVehiculo(c *fiber.Ctx) error {
	if err := h.uc.AttachVehiculo(c.Context(), c.Params("id"), c.Params("vehiculoId")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DetachVehiculo godoc
// @Summary      Deshabilitar vehículo de la resolución
// @Tags         resoluciones
// @Security     Bearer
// @Param        id          path  string  true  "ID de la resolución"
// @Param        vehiculoId  path  string  true  "ID del vehículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/resoluciones/{id}/vehiculos/{vehiculoId} [delete]
func (h *ResolucionHandler) DetachVehiculo(c *fiber.Ctx) error {
	if err := h.uc.DetachVehiculo(c.Context(), c.Params("id"), c.Params("vehiculoId")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar resolución (borrado lógico)
// @Tags         resoluciones
// @Security     Bearer
// @Param        id  path  string  true  "ID de la resolución"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/resoluciones/{id} [delete]
func (h *ResolucionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Estadisticas godoc
// @Summary      Conteo de resoluciones por estado
// @Tags         resoluciones
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EstadisticasResponse
// @Router       /api/v1/resoluciones/estadisticas [get]
func (h *ResolucionHandler) Estadisticas(c *fiber.Ctx) error {
	out, err := h.uc.Estadisticas(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
