package database

import (
	"context"
	"log"

	"github.com/MrFrederic/opensky/config"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis opens the client backing the refresh-token allowlist.
// The API keeps working without redis; sessions then fall back to the
// refresh_tokens table alone.
func ConnectRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.ConfigDefault("REDIS_ADDR", "localhost:6379"),
		Password: config.Config("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, token allowlist falls back to database: %v", err)
		Redis = nil
		return
	}
	log.Println("Connection Opened to Redis")
}
