package cache

import (
	"errors"
	"sync"

	"github.com/go-redis/redis"
)

var (
	redisClient *redis.Client
	redisMutex  sync.RWMutex
)

func SetRedisClient(s *redis.Client) {
	redisMutex.Lock()
	redisClient = s
	redisMutex.Unlock()
}

func HasRedisClient() bool {
	redisMutex.RLock()
	defer redisMutex.RUnlock()

	return redisClient != nil
}

func GetRedisClient() *redis.Client {
	redisMutex.RLock()
	defer redisMutex.RUnlock()

	if redisClient == nil {
		panic(errors.New("Tried to get redis client before cache#SetRedisClient() was called"))
	}

	return redisClient
}
