package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/vehiculo"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
)

// VehiculoHandler maneja las peticiones HTTP para vehículos y solicitudes
// de baja.
type VehiculoHandler struct {
	uc   *vehiculo.UseCase
	baja *vehiculo.BajaUseCase
}

// NewVehiculoHandler construye el handler.
func NewVehiculoHandler(uc *vehiculo.UseCase, baja *vehiculo.BajaUseCase) *VehiculoHandler {
	return &VehiculoHandler{uc: uc, baja: baja}
}

// Create godoc
// @Summary      Registrar vehículo
// @Tags         vehiculos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVehiculoRequest  true  "Datos del vehículo"
// @Success      201   {object}  dto.VehiculoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/vehiculos [post]
func (h *VehiculoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVehiculoRequest
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
// @Summary      Obtener vehículo por ID
// @Tags         vehiculos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del vehículo"
// @Success      200  {object}  dto.VehiculoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/vehiculos/{id} [get]
func (h *VehiculoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return noEncontrado(c, "vehículo")
	}
	return c.JSON(out)
}

// GetByPlaca godoc
// @Summary      Obtener el registro vigente de una placa
// @Tags         vehiculos
// @Security     Bearer
// @Produce      json
// @Param        placa  path  string  true  "Placa"
// @Success      200  {object}  dto.VehiculoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/vehiculos/placa/{placa} [get]
func (h *VehiculoHandler) GetByPlaca(c *fiber.Ctx) error {
	out, err := h.uc.GetByPlaca(c.Context(), c.Params("placa"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return noEncontrado(c, "vehículo")
	}
	return c.JSON(out)
}

// Historial godoc
// @Summary      Historial de validación de la placa (registros históricos y vigente)
// @Tags         vehiculos
// @Security     Bearer
// @Produce      json
// @Param        placa  path  string  true  "Placa"
// @Success      200  {array}  dto.VehiculoResponse
// @Router       /api/v1/vehiculos/placa/{placa}/historial [get]
func (h *VehiculoHandler) Historial(c *fiber.Ctx) error {
	out, err := h.uc.Historial(c.Context(), c.Params("placa"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar vehículos con filtro de visibilidad
// @Tags         vehiculos
// @Security     Bearer
// @Produce      json
// @Param        visibilidad  query  string  false  "current | historical | all"  default(current)
// @Param        bloqueados   query  bool    false  "Solo bloqueados / solo no bloqueados"
// @Param        empresa_id   query  string  false  "Acotar a una empresa"
// @Param        estado       query  string  false  "Estado del vehículo"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.VehiculoListResponse
// @Router       /api/v1/vehiculos [get]
func (h *VehiculoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	f := repository.FiltroVehiculos{
		Visibilidad: c.Query("visibilidad", repository.VisibilidadActual),
		EmpresaID:   c.Query("empresa_id"),
		Estado:      c.Query("estado"),
	}
	if c.Query("bloqueados") != "" {
		b := c.QueryBool("bloqueados")
		f.Bloqueados = &b
	}
	out, err := h.uc.List(c.Context(), f, page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos del vehículo
// @Tags         vehiculos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del vehículo"
// @Param        body  body  dto.UpdateVehiculoRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.VehiculoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/vehiculos/{id} [put]
func (h *VehiculoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateVehiculoRequest
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
// @Summary      Eliminar vehículo (borrado lógico)
// @Tags         vehiculos
// @Security     Bearer
// @Param        id  path  string  true  "ID del vehículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/vehiculos/{id} [delete]
func (h *VehiculoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Estadisticas godoc
// @Summary      Conteo de vehículos vigentes por estado
// @Tags         vehiculos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EstadisticasResponse
// @Router       /api/v1/vehiculos/estadisticas [get]
func (h *VehiculoHandler) Estadisticas(c *fiber.Ctx) error {
	out, err := h.uc.Estadisticas(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ── Solicitudes de baja ───────────────────────────────────────────────────────

// CrearBaja godoc
// @Summary      Solicitar baja de un vehículo
// @Tags         bajas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSolicitudBajaRequest  true  "Motivo y sustento"
// @Success      201   {object}  dto.SolicitudBajaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/bajas [post]
func (h *VehiculoHandler) CrearBaja(c *fiber.Ctx) error {
	var in dto.CreateSolicitudBajaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.baja.Crear(c.Context(), in, GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// IniciarRevisionBaja godoc
// @Summary      Pasar la solicitud de baja a revisión
// @Tags         bajas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.SolicitudBajaResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/v1/bajas/{id}/revision [post]
func (h *VehiculoHandler) IniciarRevisionBaja(c *fiber.Ctx) error {
	out, err := h.baja.IniciarRevision(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ResolverBaja godoc
// @Summary      Aprobar o rechazar la solicitud de baja
// @Tags         bajas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.ResolverSolicitudBajaRequest  true  "Decisión"
// @Success      200   {object}  dto.SolicitudBajaResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/bajas/{id}/resolver [post]
func (h *VehiculoHandler) ResolverBaja(c *fiber.Ctx) error {
	var in dto.ResolverSolicitudBajaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.baja.Resolver(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// CancelarBaja godoc
// @Summary      Cancelar la solicitud de baja
// @Tags         bajas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.SolicitudBajaResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/v1/bajas/{id}/cancelar [post]
func (h *VehiculoHandler) CancelarBaja(c *fiber.Ctx) error {
	out, err := h.baja.Cancelar(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListBajas godoc
// @Summary      Listar solicitudes de baja
// @Tags         bajas
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  false  "Filtrar por estado"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.SolicitudBajaResponse
// @Router       /api/v1/bajas [get]
func (h *VehiculoHandler) ListBajas(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.baja.ListByEstado(c.Context(), c.Query("estado"), page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
