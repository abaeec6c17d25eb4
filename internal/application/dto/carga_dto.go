package dto

// Severidades de diagnóstico de carga masiva.
const (
	SeveridadError   = "ERROR"
	SeveridadWarning = "WARNING"
)

// DiagnosticoFila resultado de validar o aplicar una fila de la carga.
type DiagnosticoFila struct {
	Fila      int      `json:"row_index"`  // índice de la fila en la hoja (1-based, sin cabecera)
	Clave     string   `json:"entity_key"` // RUC, número de resolución, placa o código según la entidad
	Severidad string   `json:"severity"`   // ERROR | WARNING
	Mensajes  []string `json:"messages"`
}

// ReporteCarga reporte completo de una carga masiva.
type ReporteCarga struct {
	Entidad       string            `json:"entidad"`
	TotalFilas    int               `json:"total_filas"`
	Admisible     bool              `json:"admisible"` // sin filas con severidad ERROR en fase 1
	Aplicado      bool              `json:"aplicado"`  // false cuando solo se validó
	CreadosIds    []string          `json:"creados_ids,omitempty"`
	FilasOmitidas int               `json:"filas_omitidas"`
	Diagnosticos  []DiagnosticoFila `json:"diagnosticos"`
}
