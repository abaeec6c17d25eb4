package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/empresa"
)

// EmpresaHandler maneja las peticiones HTTP para empresas de transporte.
type EmpresaHandler struct {
	uc *empresa.UseCase
}

// NewEmpresaHandler construye el handler.
func NewEmpresaHandler(uc *empresa.UseCase) *EmpresaHandler {
	return &EmpresaHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar empresa de transporte
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmpresaRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.EmpresaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/empresas [post]
func (h *EmpresaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmpresaRequest
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
// @Summary      Obtener empresa por ID
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.EmpresaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/empresas/{id} [get]
func (h *EmpresaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return noEncontrado(c, "empresa")
	}
	return c.JSON(out)
}

// GetByRUC godoc
// @Summary      Obtener empresa por RUC
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        ruc  path  string  true  "RUC (11 dígitos)"
// @Success      200  {object}  dto.EmpresaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/empresas/ruc/{ruc} [get]
func (h *EmpresaHandler) GetByRUC(c *fiber.Ctx) error {
	out, err := h.uc.GetByRUC(c.Context(), c.Params("ruc"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return noEncontrado(c, "empresa")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empresas
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.EmpresaResponse
// @Router       /api/v1/empresas [get]
func (h *EmpresaHandler) List(c *fiber.Ctx) error {
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

// Update godoc
// @Summary      Actualizar datos de la empresa
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.UpdateEmpresaRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.EmpresaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/empresas/{id} [put]
func (h *EmpresaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmpresaRequest
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
// @Summary      Cambiar estado de la empresa (requiere motivo)
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.CambiarEstadoEmpresaRequest  true  "Nuevo estado y motivo"
// @Success      200   {object}  dto.EmpresaResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/empresas/{id}/estado [patch]
func (h *EmpresaHandler) CambiarEstado(c *fiber.Ctx) error {
	var in dto.CambiarEstadoEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.CambiarEstado(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// RefrescarSunat godoc
// @Summary      Refrescar snapshot SUNAT de la empresa
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.EmpresaResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/v1/empresas/{id}/sunat [post]
func (h *EmpresaHandler) RefrescarSunat(c *fiber.Ctx) error {
	out, err := h.uc.RefrescarSunat(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar empresa (borrado lógico)
// @Tags         empresas
// @Security     Bearer
// @Param        id  path  string  true  "ID de la empresa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/empresas/{id} [delete]
func (h *EmpresaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Estadisticas godoc
// @Summary      Conteo de empresas por estado
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EstadisticasResponse
// @Router       /api/v1/empresas/estadisticas [get]
func (h *EmpresaHandler) Estadisticas(c *fiber.Ctx) error {
	out, err := h.uc.Estadisticas(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
