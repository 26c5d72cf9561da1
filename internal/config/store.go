package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"opor-loyalty/internal/adapters/persistence/kv"
	"opor-loyalty/internal/adapters/persistence/models"

	"github.com/redis/go-redis/v9"
)

// OpenStore connects the configured key-value backend.
// The returned close function releases the backend connection.
func OpenStore(cfg *Config) (kv.Store, func() error, error) {
	switch cfg.Store.Backend {
	case BackendMySQL:
		db, err := ConnectDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		// Auto migrate (creates kv_records if not exist)
		if err := models.AutoMigrate(db); err != nil {
			return nil, nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
		log.Println("✅ Database migration completed")
		return kv.NewGormStore(db), CloseDatabase, nil

	case BackendRedis:
		client, err := ConnectRedis(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewRedisStore(client), client.Close, nil

	default:
		log.Println("⚠️ Using in-memory store, data is lost on restart")
		return kv.NewMemoryStore(), func() error { return nil }, nil
	}
}

// ConnectRedis opens a single-node or cluster client and pings it
func ConnectRedis(rc RedisConfig) (redis.UniversalClient, error) {
	if len(rc.Addrs) == 0 {
		return nil, fmt.Errorf("no redis address configured")
	}

	var client redis.UniversalClient
	if rc.UseCluster && len(rc.Addrs) > 1 {
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    rc.Addrs,
			Password: rc.Password,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     rc.Addrs[0],
			Password: rc.Password,
			DB:       0,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Printf("✅ Redis store connected %v", rc.Addrs)
	return client, nil
}
