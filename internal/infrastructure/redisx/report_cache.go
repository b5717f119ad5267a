package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache cachea respuestas de reportes en Redis con TTL corto.
// Un cliente nil deshabilita el cache (todas las operaciones son no-op).
type ReportCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New crea el cliente Redis para la dirección dada.
func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// NewReportCache construye el cache de reportes. rdb nil = deshabilitado.
func NewReportCache(rdb *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{rdb: rdb, ttl: ttl}
}

// GetJSON intenta leer la clave y decodificarla en out. Devuelve false en miss
// (o con el cache deshabilitado); los errores de decodificación cuentan como miss.
func (c *ReportCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON serializa v y lo guarda con el TTL del cache (best effort).
func (c *ReportCache) SetJSON(ctx context.Context, key string, v any) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

// InvalidateReports borra todas las claves de reportes. Se invoca tras cada
// venta o gasto para que el siguiente reporte se recalcule.
func (c *ReportCache) InvalidateReports(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, "reports:*", 100).Iterator()
	for iter.Next(ctx) {
		_ = c.rdb.Del(ctx, iter.Val()).Err()
	}
}
