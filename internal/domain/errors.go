package domain

import "errors"

// Errores de dominio (sin dependencias externas). La capa HTTP los mapea a
// códigos de estado; las cargas masivas los convierten en diagnósticos por fila.
var (
	ErrNoEncontrado          = errors.New("recurso no encontrado")
	ErrEntradaInvalida       = errors.New("entrada inválida")
	ErrDuplicado             = errors.New("recurso duplicado")
	ErrConflicto             = errors.New("conflicto con el estado actual")
	ErrTransicionInvalida    = errors.New("transición de estado no permitida")
	ErrDependenciaFaltante   = errors.New("entidad referenciada inexistente o inactiva")
	ErrVigenciaHeredada      = errors.New("la vigencia de una resolución HIJO se hereda del PADRE")
	ErrRutaNoAutorizada      = errors.New("la resolución del vehículo no autoriza la ruta general")
	ErrHorarioInvalido       = errors.New("horario inválido")
	ErrNoAutorizado          = errors.New("no autorizado")
	ErrAccesoDenegado        = errors.New("acceso denegado")
	ErrServicioExterno       = errors.New("servicio externo no disponible")
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
)
