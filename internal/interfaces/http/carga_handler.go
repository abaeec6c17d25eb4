package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/drtc-puno/sirret-api/internal/application/carga"
	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/excel"
)

// CargaHandler maneja la carga masiva desde planillas Excel. El archivo va
// en el campo multipart "archivo"; la entidad en el path.
type CargaHandler struct {
	uc *carga.UseCase
}

// NewCargaHandler construye el handler.
func NewCargaHandler(uc *carga.UseCase) *CargaHandler {
	return &CargaHandler{uc: uc}
}

type pipelineCarga struct {
	validar func(context.Context, []carga.Fila) (*dto.ReporteCarga, error)
	cargar  func(context.Context, []carga.Fila) (*dto.ReporteCarga, error)
}

func (h *CargaHandler) pipeline(entidad string) (pipelineCarga, bool) {
	switch entidad {
	case "empresas":
		return pipelineCarga{h.uc.ValidarEmpresas, h.uc.CargarEmpresas}, true
	case "resoluciones":
		return pipelineCarga{h.uc.ValidarResoluciones, h.uc.CargarResoluciones}, true
	case "rutas":
		return pipelineCarga{h.uc.ValidarRutas, h.uc.CargarRutas}, true
	case "vehiculos":
		return pipelineCarga{h.uc.ValidarVehiculos, h.uc.CargarVehiculos}, true
	}
	return pipelineCarga{}, false
}

// leerPlanilla extrae y parsea el .xlsx del multipart.
func (h *CargaHandler) leerPlanilla(c *fiber.Ctx) ([]carga.Fila, error) {
	fh, err := c.FormFile("archivo")
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return excel.LeerFilas(f)
}

// Validar godoc
// @Summary      Validar planilla sin aplicar cambios (fase 1)
// @Tags         carga-masiva
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        entidad  path      string  true  "empresas | resoluciones | rutas | vehiculos"
// @Param        archivo  formData  file    true  "Planilla .xlsx"
// @Success      200      {object}  dto.ReporteCarga
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/carga-masiva/{entidad}/validar [post]
func (h *CargaHandler) Validar(c *fiber.Ctx) error {
	p, ok := h.pipeline(c.Params("entidad"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entidad de carga desconocida"})
	}
	filas, err := h.leerPlanilla(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "planilla inválida o ausente (campo 'archivo')"})
	}
	reporte, err := p.validar(c.Context(), filas)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(reporte)
}

// Cargar godoc
// @Summary      Validar y aplicar planilla (fase 1 + fase 2)
// @Tags         carga-masiva
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        entidad  path      string  true  "empresas | resoluciones | rutas | vehiculos"
// @Param        archivo  formData  file    true  "Planilla .xlsx"
// @Success      200      {object}  dto.ReporteCarga
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/carga-masiva/{entidad} [post]
func (h *CargaHandler) Cargar(c *fiber.Ctx) error {
	p, ok := h.pipeline(c.Params("entidad"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entidad de carga desconocida"})
	}
	filas, err := h.leerPlanilla(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "planilla inválida o ausente (campo 'archivo')"})
	}
	reporte, err := p.cargar(c.Context(), filas)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(reporte)
}
