package carga

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
)

// Columnas de la hoja de vehículos.
const (
	colPlaca           = "placa"
	colNumeroSerie     = "numero_serie"
	colNumeroMotor     = "numero_motor"
	colMarca           = "marca"
	colModelo          = "modelo"
	colAnioFabricacion = "anio_fabricacion"
	colCategoria       = "categoria"
	colAsientos        = "asientos"
	colPasajeros       = "pasajeros"
	colPesoNeto        = "peso_neto"
	colPesoBruto       = "peso_bruto"
	colCargaUtil       = "carga_util"
	colCombustible     = "combustible"
	colCarroceria      = "carroceria"
	colColor           = "color"
	colEjes            = "ejes"
	colRuedas          = "ruedas"
)

// ValidarVehiculos fase 1 de la carga de vehículos.
func (uc *UseCase) ValidarVehiculos(ctx context.Context, filas []Fila) (*dto.ReporteCarga, error) {
	d, _, err := uc.validarVehiculos(ctx, filas)
	if err != nil {
		return nil, err
	}
	return reporte("vehiculos", len(filas), d, false, nil), nil
}

// CargarVehiculos fase 1 + fase 2. Al aplicar, cada vehículo se habilita en
// su resolución, lo que emite el evento de linaje y recalcula el historial de
// la placa.
func (uc *UseCase) CargarVehiculos(ctx context.Context, filas []Fila) (*dto.ReporteCarga, error) {
	d, requests, err := uc.validarVehiculos(ctx, filas)
	if err != nil {
		return nil, err
	}
	var creados []string
	for _, fr := range requests {
		resp, err := uc.vehiculosUC.Create(ctx, fr.req)
		if err != nil {
			d.errorEn(fr.fila, fr.req.Placa, err.Error())
			continue
		}
		if err := uc.resolucionesUC.AttachVehiculo(ctx, fr.resolucionID, resp.ID); err != nil {
			d.errorEn(fr.fila, fr.req.Placa, "habilitación en resolución: "+err.Error())
			continue
		}
		creados = append(creados, resp.ID)
	}
	return reporte("vehiculos", len(filas), d, true, creados), nil
}

type filaVehiculo struct {
	fila         int
	resolucionID string
	req          dto.CreateVehiculoRequest
}

func (uc *UseCase) validarVehiculos(ctx context.Context, filas []Fila) (*diagnosticos, []filaVehiculo, error) {
	d := nuevosDiagnosticos()
	vistos := map[string]int{} // placa -> fila del lote

	var out []filaVehiculo
	for _, f := range filas {
		placa := validacion.NormalizarPlaca(f.Campo(colPlaca))
		if !requerir(d, f, placa, colPlaca, colRUC, colNumeroResolucion) {
			continue
		}
		if err := validacion.ValidarPlaca(placa); err != nil {
			d.errorEn(f.Indice, placa, err.Error())
			continue
		}
		if primera, ok := vistos[placa]; ok {
			d.errorEn(f.Indice, placa, "placa repetida en el lote (ver fila "+itoa(primera)+")")
			continue
		}
		vistos[placa] = f.Indice

		actual, err := uc.vehiculos.GetActualByPlaca(ctx, placa)
		if err != nil {
			return nil, nil, err
		}
		if actual != nil && actual.EstaActivo {
			d.errorEn(f.Indice, placa, "placa ya registrada")
			continue
		}

		ruc := f.Campo(colRUC)
		numero := strings.ToUpper(f.Campo(colNumeroResolucion))
		empresa, err := uc.empresas.GetByRUC(ctx, ruc)
		if err != nil {
			return nil, nil, err
		}
		if empresa == nil || !empresa.EstaActivo {
			d.errorEn(f.Indice, placa, "RUC "+ruc+" no registrado")
			continue
		}
		resolucion, err := uc.resoluciones.GetByNumero(ctx, numero)
		if err != nil {
			return nil, nil, err
		}
		if resolucion == nil || !resolucion.EstaActivo {
			d.errorEn(f.Indice, placa, "resolución "+numero+" no encontrada")
			continue
		}
		if resolucion.EmpresaID != empresa.ID {
			d.errorEn(f.Indice, placa, "la resolución "+numero+" pertenece a otro RUC")
			continue
		}

		if f.Campo(colMarca) == "" || f.Campo(colModelo) == "" {
			d.warningEn(f.Indice, placa, "sin marca o modelo")
		}

		out = append(out, filaVehiculo{
			fila:         f.Indice,
			resolucionID: resolucion.ID,
			req: dto.CreateVehiculoRequest{
				Placa:       placa,
				NumeroSerie: f.Campo(colNumeroSerie),
				NumeroMotor: f.Campo(colNumeroMotor),
				EmpresaID:   empresa.ID,
				Datos: dto.DatosTecnicosDTO{
					Categoria:       strings.ToUpper(f.Campo(colCategoria)),
					Marca:           strings.ToUpper(f.Campo(colMarca)),
					Modelo:          strings.ToUpper(f.Campo(colModelo)),
					AnioFabricacion: atoi(f.Campo(colAnioFabricacion)),
					Asientos:        atoi(f.Campo(colAsientos)),
					Pasajeros:       atoi(f.Campo(colPasajeros)),
					PesoNeto:        parsearDecimal(d, f.Indice, placa, colPesoNeto, f.Campo(colPesoNeto)),
					PesoBruto:       parsearDecimal(d, f.Indice, placa, colPesoBruto, f.Campo(colPesoBruto)),
					CargaUtil:       parsearDecimal(d, f.Indice, placa, colCargaUtil, f.Campo(colCargaUtil)),
					Ejes:            atoi(f.Campo(colEjes)),
					Ruedas:          atoi(f.Campo(colRuedas)),
					Combustible:     strings.ToUpper(f.Campo(colCombustible)),
					Carroceria:      strings.ToUpper(f.Campo(colCarroceria)),
					Color:           strings.ToUpper(f.Campo(colColor)),
				},
			},
		})
	}
	return d, out, nil
}

// parsearDecimal acepta coma o punto decimal; un valor ilegible queda en cero
// con WARNING.
func parsearDecimal(d *diagnosticos, fila int, clave, col, s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := decimal.NewFromString(s)
	if err != nil {
		d.warningEn(fila, clave, col+" ilegible: "+s)
		return decimal.Zero
	}
	return v
}
