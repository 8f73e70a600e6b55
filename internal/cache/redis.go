package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"optic-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Dashboard cache keys
const (
	DashboardMetricsKey = "dashboard:metrics"
	PopularProductsKey  = "dashboard:popular"
)

var client *redis.Client

// Init initializes the Redis connection. A failed init leaves the package in
// degraded mode: every helper becomes a no-op and callers fall through to
// the database.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	key := hashCredentials(email, password)
	employeeID, err := client.Get(ctx, key).Int64()
	if err != nil {
		return 0, false
	}
	return employeeID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, employeeID int64) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Set(ctx, key, employeeID, 15*time.Minute)
}

// InvalidateAuth removes cached auth for an employee (on password change)
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Del(ctx, key)
}

// GetCachedJSON returns a cached JSON payload if available
func GetCachedJSON(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheJSON caches a JSON payload for ttl. Dashboard metrics use 5 minutes.
func CacheJSON(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateDashboard drops the dashboard rollups after a sale or expense
// mutation so the next fetch recomputes them.
func InvalidateDashboard(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, DashboardMetricsKey, PopularProductsKey)
}
