package config

import "time"

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            string
	CORSOrigins     string
	BodyLimit       int
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            getEnv("PORT", "8080"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		BodyLimit:       getEnvInt("BODY_LIMIT_BYTES", 4*1024*1024),
		IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}
