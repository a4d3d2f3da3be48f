// config/redis.go
package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisClient backs the session token blacklist. It stays nil when Redis is
// unreachable; the blacklist middleware treats a nil client as "nothing
// blacklisted", so the app runs without Redis at the cost of logout not
// invalidating tokens.
var RedisClient *redis.Client

// ConnectRedis dials the blacklist store. The only load here is one
// EXISTS per authenticated request and one SET per logout, so the client
// keeps the driver defaults apart from timeouts.
func ConnectRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DialTimeout: 5 * time.Second,
		ReadTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis connection failed: %v", err)
		log.Println("Logout will not invalidate session tokens")
		return nil
	}

	log.Println("Connected to Redis")
	RedisClient = client
	return client
}

// GetRedisClient returns the blacklist client, nil when Redis is down
func GetRedisClient() *redis.Client {
	return RedisClient
}

// CloseRedis closes the Redis connection
func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
	}
}
