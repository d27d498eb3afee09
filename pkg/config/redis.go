package config

import "time"

// RedisConfig configures the redis page-text cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PageTTL  time.Duration
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
		PageTTL:  getEnvDuration("REDIS_PAGE_TTL", 30*time.Minute),
	}
}
