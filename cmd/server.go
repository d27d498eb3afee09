package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/wesleysanjose/ocr/pkg/config"
	"github.com/wesleysanjose/ocr/pkg/errx"
	"github.com/wesleysanjose/ocr/pkg/logx"
)

func main() {
	logx.SetDefaultLogger(logx.NewLogger(logx.LoadFromEnv()))

	logx.Info("🚀 Starting OCR Review API Server...")

	cfg := config.Load()

	container := NewContainer(cfg)
	defer container.Cleanup()

	app := fiber.New(fiber.Config{
		AppName:               "OCR Review API",
		DisableStartupMessage: true,
		ErrorHandler:          errx.FiberErrorHandler,
		BodyLimit:             cfg.Server.BodyLimit,
		IdleTimeout:           cfg.Server.IdleTimeout,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.NewString()
		},
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:  "GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS",
		ExposeHeaders: "X-Request-ID",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${ip} | ${reqHeader:X-Request-ID}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))

	app.Get("/health", healthCheckHandler(container))
	app.Get("/", infoHandler)

	// Routes: /auth/login, /auth/me
	container.AuthHandlers.RegisterRoutes(app, container.AuthMiddleware.Authenticate())
	logx.Info("✓ Auth routes registered")

	// Routes: /api/v1/sessions/*, /api/v1/cases/:caseId/snapshots
	container.ReviewHandlers.RegisterRoutes(app, container.AuthMiddleware.Authenticate())
	logx.Info("✓ Review routes registered")

	app.Use(notFoundHandler)

	startServer(app, cfg.Server)
}

// healthCheckHandler reports dependency health.
func healthCheckHandler(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := fiber.Map{
			"status":  "healthy",
			"service": "ocr-review-api",
		}

		if err := container.DB.Ping(); err != nil {
			health["db"] = "unhealthy"
			health["db_error"] = err.Error()
			health["status"] = "degraded"
		} else {
			health["db"] = "healthy"
		}

		if err := container.Redis.Ping(c.Context()).Err(); err != nil {
			health["redis"] = "unhealthy"
			health["redis_error"] = err.Error()
			health["status"] = "degraded"
		} else {
			health["redis"] = "healthy"
		}

		status := fiber.StatusOK
		if health["status"] == "degraded" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(health)
	}
}

// infoHandler returns basic API information.
func infoHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service":     "OCR Review API",
		"description": "OCR field extraction and review for forensic case documents",
		"endpoints": fiber.Map{
			"health":   "/health",
			"auth":     "/auth/login",
			"sessions": "/api/v1/sessions",
		},
	})
}

// notFoundHandler handles unmatched routes.
func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":      "Route not found",
		"code":       "NOT_FOUND",
		"path":       c.Path(),
		"method":     c.Method(),
		"request_id": c.Get("X-Request-ID"),
	})
}

// startServer starts the server and blocks until shutdown.
func startServer(app *fiber.App, cfg config.ServerConfig) {
	go func() {
		logx.Infof("🚀 Server listening on port %s", cfg.Port)
		logx.Infof("💚 Health Check: http://localhost:%s/health", cfg.Port)

		if err := app.Listen(":" + cfg.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	gracefulShutdown(app, cfg)
}

// gracefulShutdown waits for a termination signal and drains the server.
func gracefulShutdown(app *fiber.App, cfg config.ServerConfig) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logx.Infof("🛑 Received signal: %v", sig)
	logx.Info("Shutting down gracefully...")

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("✅ Server exited successfully")
}
