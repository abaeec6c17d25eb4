package ports

import (
	"context"
	"time"
)

// Cache puerto de caché clave-valor con TTL y borrado por patrón, usado como
// read-through para agregados costosos (estadísticas, listados largos).
//
// Contrato de degradación: las operaciones nunca devuelven error. Si el
// backend no está disponible, Get responde miss y las escrituras son no-op;
// el caller siempre puede continuar contra la persistencia.
type Cache interface {
	Get(ctx context.Context, clave string) ([]byte, bool)
	Set(ctx context.Context, clave string, valor []byte, ttl time.Duration)
	Delete(ctx context.Context, claves ...string)
	// DeletePattern invalida por patrón glob (ej. "resoluciones:empresa:123:*").
	// Best-effort tras escrituras.
	DeletePattern(ctx context.Context, patron string)
}

// CacheNulo implementación no-op (caché deshabilitado y tests).
type CacheNulo struct{}

func (CacheNulo) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (CacheNulo) Set(context.Context, string, []byte, time.Duration) {}
func (CacheNulo) Delete(context.Context, ...string)                  {}
func (CacheNulo) DeletePattern(context.Context, string)              {}
