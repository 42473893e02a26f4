package lib

import (
	"log"

	"travelapi/src/config"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := config.Get().RedisHost
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}
