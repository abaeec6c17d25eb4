// Package cache implementa el puerto de caché sobre Redis. Cumple el
// contrato de degradación: ningún fallo del backend llega al caller; un
// Redis caído equivale a un caché siempre frío.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/pkg/config"
	"github.com/drtc-puno/sirret-api/pkg/logger"
)

// RedisCache implementa ports.Cache sobre go-redis.
type RedisCache struct {
	client *redis.Client
	log    *logger.Logger
}

var _ ports.Cache = (*RedisCache)(nil)

// New crea el caché desde la configuración y verifica conectividad con un
// ping. URL vacía devuelve (nil, nil): el caller debe usar ports.CacheNulo.
func New(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*RedisCache, error) {
	if !cfg.Habilitado() {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsear URL de redis: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("verificar conexión a redis: %w", err)
	}

	if log == nil {
		log = logger.Nop()
	}
	return &RedisCache{client: client, log: log}, nil
}

func (c *RedisCache) Get(ctx context.Context, clave string) ([]byte, bool) {
	valor, err := c.client.Get(ctx, clave).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("clave", clave).Msg("caché: fallo en lectura, se responde miss")
		}
		return nil, false
	}
	return valor, true
}

func (c *RedisCache) Set(ctx context.Context, clave string, valor []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, clave, valor, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("clave", clave).Msg("caché: fallo en escritura, se omite")
	}
}

func (c *RedisCache) Delete(ctx context.Context, claves ...string) {
	if len(claves) == 0 {
		return
	}
	if err := c.client.Del(ctx, claves...).Err(); err != nil {
		c.log.Warn().Err(err).Msg("caché: fallo en invalidación, se omite")
	}
}

// DeletePattern invalida por patrón glob usando SCAN para no bloquear el
// servidor con KEYS.
func (c *RedisCache) DeletePattern(ctx context.Context, patron string) {
	iter := c.client.Scan(ctx, 0, patron, 100).Iterator()
	var claves []string
	for iter.Next(ctx) {
		claves = append(claves, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Str("patron", patron).Msg("caché: fallo en scan, invalidación parcial")
	}
	c.Delete(ctx, claves...)
}

// Close cierra la conexión al backend.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
