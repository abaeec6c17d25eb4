package ports

import "context"

// ResultadoRUC respuesta de la consulta RUC.
type ResultadoRUC struct {
	Valido      bool
	RazonSocial string
	Estado      string // ACTIVO, BAJA PROVISIONAL, ...
	Condicion   string // HABIDO, NO HABIDO
	Direccion   string
}

// ConsultaRUC puerto de la validación RUC contra SUNAT. Errores de
// red/timeout se devuelven envueltos en domain.ErrServicioExterno; el caller
// decide si el enriquecimiento es obligatorio u opcional.
type ConsultaRUC interface {
	Consultar(ctx context.Context, ruc string) (*ResultadoRUC, error)
}
