package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/config"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/logger"
	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// ConnectRedis initialise le client Redis si REDIS_URL est configuré.
// Le cache est facultatif: sans Redis, les classements sont recalculés à chaque requête.
func ConnectRedis(cfg *config.Config) error {
	if cfg.RedisURL == "" {
		logger.Warning("REDIS_URL not set, leaderboard cache disabled")
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	RDB = client
	logger.Success("Connected to Redis")
	return nil
}

// Enabled indique si le cache est disponible
func Enabled() bool {
	return RDB != nil
}

// GetJSON récupère une valeur JSON du cache. Retourne false si absente ou cache désactivé.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	raw, err := RDB.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	return true
}

// SetJSON stocke une valeur JSON avec un TTL. Les erreurs sont loggées mais jamais bloquantes:
// les lecteurs tolèrent des agrégats légèrement obsolètes.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if RDB == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warning("cache marshal failed for %s: %v", key, err)
		return
	}

	if err := RDB.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.Warning("cache set failed for %s: %v", key, err)
	}
}
