package rediscache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	appjob "github.com/tu-usuario/taller-api/internal/application/job"
	"github.com/tu-usuario/taller-api/pkg/config"
)

var _ appjob.StatusCache = (*StatusCache)(nil)
var _ appjob.StatusCache = (*Noop)(nil)

const keyPrefix = "receipt:"

// StatusCache cache Redis de la consulta pública de estado por recibo.
// Todos los fallos de Redis degradan a cache-miss: la consulta sigue a la DB.
type StatusCache struct {
	client *redis.Client
}

// New conecta con Redis y devuelve la cache. Falla solo si el ping inicial falla.
func New(ctx context.Context, cfg config.RedisConfig) (*StatusCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &StatusCache{client: client}, nil
}

// Get devuelve el payload cacheado y si hubo hit.
func (c *StatusCache) Get(ctx context.Context, receiptNumber string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, keyPrefix+receiptNumber).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// Set guarda el payload con TTL.
func (c *StatusCache) Set(ctx context.Context, receiptNumber string, payload []byte, ttl time.Duration) {
	_ = c.client.Set(ctx, keyPrefix+receiptNumber, payload, ttl).Err()
}

// Invalidate borra la entrada tras una mutación del trabajo.
func (c *StatusCache) Invalidate(ctx context.Context, receiptNumber string) {
	_ = c.client.Del(ctx, keyPrefix+receiptNumber).Err()
}

// Noop implementación nula: sin Redis configurado, siempre miss.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (Noop) Set(context.Context, string, []byte, time.Duration) {}
func (Noop) Invalidate(context.Context, string)                 {}
