package dto

import "time"

// CreateEmpresaRequest alta de empresa de transporte.
type CreateEmpresaRequest struct {
	RUC                          string `json:"ruc"`
	RazonSocial                  string `json:"razon_social"`
	DireccionFiscal              string `json:"direccion_fiscal"`
	RepresentanteDNI             string `json:"representante_dni"`
	RepresentanteNombres         string `json:"representante_nombres"`
	RepresentanteApellidoPaterno string `json:"representante_apellido_paterno"`
	RepresentanteApellidoMaterno string `json:"representante_apellido_materno"`
	Telefono                     string `json:"telefono"`
	Email                        string `json:"email"`
}

// UpdateEmpresaRequest modificación parcial de una empresa.
type UpdateEmpresaRequest struct {
	RazonSocial     *string `json:"razon_social"`
	DireccionFiscal *string `json:"direccion_fiscal"`
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email"`
}

// CambiarEstadoEmpresaRequest cambio de estado con motivo documentado.
type CambiarEstadoEmpresaRequest struct {
	Estado string `json:"estado"`
	Motivo string `json:"motivo"`
}

// DatosSunatResponse snapshot SUNAT en respuestas.
type DatosSunatResponse struct {
	Valido        bool      `json:"valido"`
	RazonSocial   string    `json:"razon_social"`
	Estado        string    `json:"estado"`
	Condicion     string    `json:"condicion"`
	Direccion     string    `json:"direccion"`
	FechaConsulta time.Time `json:"fecha_consulta"`
}

// EmpresaResponse representación HTTP de una empresa.
type EmpresaResponse struct {
	ID                  string              `json:"id"`
	RUC                 string              `json:"ruc"`
	RazonSocial         string              `json:"razon_social"`
	RazonSocialMinimo   string              `json:"razon_social_minimo,omitempty"`
	DireccionFiscal     string              `json:"direccion_fiscal"`
	RepresentanteDNI    string              `json:"representante_dni"`
	RepresentanteNombre string              `json:"representante_nombre"`
	Telefono            string              `json:"telefono"`
	Email               string              `json:"email"`
	Estado              string              `json:"estado"`
	MotivoEstado        string              `json:"motivo_estado,omitempty"`
	DatosSunat          *DatosSunatResponse `json:"datos_sunat,omitempty"`
	ResolucionesIds     []string            `json:"resoluciones_ids"`
	VehiculosIds        []string            `json:"vehiculos_ids"`
	RutasIds            []string            `json:"rutas_ids"`
	EstaActivo          bool                `json:"esta_activo"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// EmpresaListResponse listado paginado.
type EmpresaListResponse struct {
	Items []EmpresaResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
