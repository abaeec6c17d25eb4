package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/ruta"
)

// RutaHandler maneja las peticiones HTTP para rutas generales y específicas.
type RutaHandler struct {
	uc *ruta.UseCase
}

// NewRutaHandler construye el handler.
func NewRutaHandler(uc *ruta.UseCase) *RutaHandler {
	return &RutaHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar ruta general en una resolución
// @Tags         rutas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRutaRequest  true  "Datos de la ruta"
// @Success      201   {object}  dto.RutaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/rutas [post]
func (h *RutaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRutaRequest
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
// @Summary      Obtener ruta por ID
// @Tags         rutas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la ruta"
// @Success      200  {object}  dto.RutaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/rutas/{id} [get]
func (h *RutaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return noEncontrado(c, "ruta")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ruta general
// @Tags         rutas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la ruta"
// @Param        body  body  dto.UpdateRutaRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.RutaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/rutas/{id} [put]
func (h *RutaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRutaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ruta (borrado lógico, desvincula de la resolución)
// @Tags         rutas
// @Security     Bearer
// @Param        id  path  string  true  "ID de la ruta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/rutas/{id} [delete]
func (h *RutaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByResolucion godoc
// @Summary      Listar rutas de una resolución
// @Tags         rutas
// @Security     Bearer
// @Produce      json
// @Param        resolucionId  path  string  true  "ID de la resolución"
// @Success      200  {array}  dto.RutaResponse
// @Router       /api/v1/rutas/resolucion/{resolucionId} [get]
func (h *RutaHandler) ListByResolucion(c *fiber.Ctx) error {
	out, err := h.uc.ListByResolucion(c.Context(), c.Params("resolucionId"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListByEmpresa godoc
// @Summary      Listar rutas de una empresa, opcionalmente por resolución
// @Tags         rutas
// @Security     Bearer
// @Produce      json
// @Param        empresaId     path   string  true   "ID de la empresa"
// @Param        resolucion_id query  string  false  "Acotar a una resolución"
// @Success      200  {array}  dto.RutaResponse
// @Router       /api/v1/rutas/empresa/{empresaId} [get]
func (h *RutaHandler) ListByEmpresa(c *fiber.Ctx) error {
	empresaID := c.Params("empresaId")
	if resolucionID := c.Query("resolucion_id"); resolucionID != "" {
		out, err := h.uc.ListByEmpresaYResolucion(c.Context(), empresaID, resolucionID)
		if err != nil {
			return responderError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.ListByEmpresa(c.Context(), empresaID)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Buscar godoc
// @Summary      Buscar rutas por origen o destino (subcadena)
// @Tags         rutas
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  true   "Texto a buscar"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.RutaResponse
// @Router       /api/v1/rutas/buscar [get]
func (h *RutaHandler) Buscar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Buscar(c.Context(), c.Query("q"), page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Combinaciones godoc
// @Summary      Combinaciones origen-destino agregadas
// @Tags         rutas
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Filtro de subcadena"
// @Success      200  {array}  dto.CombinacionRutasResponse
// @Router       /api/v1/combinaciones-rutas [get]
func (h *RutaHandler) Combinaciones(c *fiber.Ctx) error {
	out, err := h.uc.Combinaciones(c.Context(), c.Query("q"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// FiltroAvanzado godoc
// @Summary      Filtrar rutas por origen y destino exactos
// @Tags         rutas
// @Security     Bearer
// @Produce      json
// @Param        origen   query  string  false  "Nombre de origen"
// @Param        destino  query  string  false  "Nombre de destino"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.RutaResponse
// @Router       /api/v1/rutas/filtro-avanzado [get]
func (h *RutaHandler) FiltroAvanzado(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.FiltroAvanzado(c.Context(), c.Query("origen"), c.Query("destino"), page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Estadisticas godoc
// @Summary      Conteo de rutas por estado
// @Tags         rutas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EstadisticasResponse
// @Router       /api/v1/rutas/estadisticas [get]
func (h *RutaHandler) Estadisticas(c *fiber.Ctx) error {
	out, err := h.uc.Estadisticas(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ── Rutas específicas ─────────────────────────────────────────────────────────

// CreateEspecifica godoc
// @Summary      Derivar ruta específica por vehículo
// @Tags         rutas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRutaEspecificaRequest  true  "Datos de la ruta específica"
// @Success      201   {object}  dto.RutaEspecificaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/rutas-especificas [post]
func (h *RutaHandler) CreateEspecifica(c *fiber.Ctx) error {
	var in dto.CreateRutaEspecificaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.CreateEspecifica(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetEspecifica godoc
// @Summary      Obtener ruta específica por ID
// @Tags         rutas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la ruta específica"
// @Success      200  {object}  dto.RutaEspecificaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/rutas-especificas/{id} [get]
func (h *RutaHandler) GetEspecifica(c *fiber.Ctx) error {
	out, err := h.uc.GetEspecificaByID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return noEncontrado(c, "ruta específica")
	}
	return c.JSON(out)
}

// ListEspecificasByVehiculo godoc
// @Summary      Listar rutas específicas de un vehículo
// @Tags         rutas
// @Security     Bearer
// @Produce      json
// @Param        vehiculoId  path  string  true  "ID del vehículo"
// @Success      200  {array}  dto.RutaEspecificaResponse
// @Router       /api/v1/rutas-especificas/vehiculo/{vehiculoId} [get]
func (h *RutaHandler) ListEspecificasByVehiculo(c *fiber.Ctx) error {
	out, err := h.uc.ListEspecificasByVehiculo(c.Context(), c.Params("vehiculoId"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// DeleteEspecifica godoc
// @Summary      Eliminar ruta específica (borrado lógico)
// @Tags         rutas
// @Security     Bearer
// @Param        id  path  string  true  "ID de la ruta específica"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/rutas-especificas/{id} [delete]
func (h *RutaHandler) DeleteEspecifica(c *fiber.Ctx) error {
	if err := h.uc.DeleteEspecifica(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
