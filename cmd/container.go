// cmd/container.go
//
// Root composition root. Owns infrastructure (DB, Redis, storage) and
// composes the modules. This is the only place that knows about ALL of them.
package main

import (
	"context"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/wesleysanjose/ocr/pkg/analyze"
	"github.com/wesleysanjose/ocr/pkg/analyze/analyzeopenai"
	"github.com/wesleysanjose/ocr/pkg/analyze/analyzesse"
	"github.com/wesleysanjose/ocr/pkg/auth"
	"github.com/wesleysanjose/ocr/pkg/auth/authinfra"
	"github.com/wesleysanjose/ocr/pkg/config"
	"github.com/wesleysanjose/ocr/pkg/docstore"
	"github.com/wesleysanjose/ocr/pkg/docstore/docstorelocal"
	"github.com/wesleysanjose/ocr/pkg/docstore/docstores3"
	"github.com/wesleysanjose/ocr/pkg/logx"
	"github.com/wesleysanjose/ocr/pkg/report"
	"github.com/wesleysanjose/ocr/pkg/review/reviewapi"
	"github.com/wesleysanjose/ocr/pkg/review/reviewinfra"
	"github.com/wesleysanjose/ocr/pkg/review/reviewsrv"
)

// Container holds shared infrastructure and composed module services.
type Container struct {
	Config config.Config

	// Infrastructure (shared across all modules)
	DB       *sqlx.DB
	Redis    *redis.Client
	S3Client *s3.Client

	// Modules
	AuthService    *auth.AuthService
	AuthHandlers   *auth.AuthHandlers
	AuthMiddleware *auth.TokenMiddleware
	ReviewService  *reviewsrv.ReviewService
	ReviewHandlers *reviewapi.ReviewHandlers
}

func NewContainer(cfg config.Config) *Container {
	logx.Info("🔧 Initializing application container...")

	c := &Container{Config: cfg}

	c.initInfrastructure()
	c.initModules()

	logx.Info("✅ Application container initialized")
	return c
}

// ---------------------------------------------------------------------------
// Infrastructure — DB, Redis, page storage
// ---------------------------------------------------------------------------

func (c *Container) initInfrastructure() {
	logx.Info("🏗️ Initializing infrastructure...")

	db, err := sqlx.Connect("postgres", c.Config.Database.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxConns)
	c.DB = db
	logx.Info("  ✅ Database connected")

	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Fatalf("Failed to connect to Redis: %v (Redis is required)", err)
	}
	logx.Info("  ✅ Redis connected")

	logx.Info("✅ Infrastructure initialized")
}

func (c *Container) pageStorage() docstore.Storage {
	switch c.Config.Storage.Provider {
	case "s3":
		awsCfg, err := awsConfig.LoadDefaultConfig(context.TODO(),
			awsConfig.WithRegion(c.Config.Storage.AWSRegion))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}
		c.S3Client = s3.NewFromConfig(awsCfg)
		logx.Infof("  ✅ S3 page storage configured (bucket: %s)", c.Config.Storage.S3Bucket)
		return docstores3.NewS3Storage(c.S3Client, c.Config.Storage.S3Bucket, c.Config.Storage.S3Prefix)

	case "local":
		local, err := docstorelocal.NewLocalStorage(c.Config.Storage.LocalPath)
		if err != nil {
			logx.Fatalf("Failed to initialize local page storage: %v", err)
		}
		logx.Infof("  ✅ Local page storage configured (path: %s)", local.BasePath())
		return local

	default:
		logx.Fatalf("Unknown STORAGE_PROVIDER: %s (use 'local' or 's3')", c.Config.Storage.Provider)
		return nil
	}
}

func (c *Container) analyzer() analyze.Analyzer {
	switch c.Config.Analyze.Provider {
	case "sse":
		logx.Infof("  ✅ SSE analysis provider configured (%s)", c.Config.Analyze.BaseURL)
		return analyzesse.NewProvider(c.Config.Analyze.BaseURL, c.Config.Analyze.APIKey)
	default:
		logx.Info("  ✅ OpenAI analysis provider configured")
		return analyzeopenai.NewProvider(c.Config.Analyze.APIKey)
	}
}

func (c *Container) placeholderSpecs() []report.PlaceholderSpec {
	if c.Config.Report.SpecPath == "" {
		return report.DefaultSpecs()
	}
	specs, err := report.LoadSpecs(c.Config.Report.SpecPath)
	if err != nil {
		logx.Fatalf("Failed to load placeholder specs: %v", err)
	}
	logx.Infof("  ✅ Placeholder specs loaded from %s", c.Config.Report.SpecPath)
	return specs
}

// ---------------------------------------------------------------------------
// Module composition
// ---------------------------------------------------------------------------

func (c *Container) initModules() {
	logx.Info("📦 Initializing modules...")

	tokenService := auth.NewJWTService(
		c.Config.Auth.JWTSecret,
		c.Config.Auth.TokenTTL,
		c.Config.Auth.Issuer,
	)
	c.AuthService = auth.NewAuthService(authinfra.NewPostgresUserRepository(c.DB), tokenService)
	c.AuthHandlers = auth.NewAuthHandlers(c.AuthService)
	c.AuthMiddleware = auth.NewTokenMiddleware(tokenService)

	pages := docstore.NewPageTexts(c.pageStorage())
	cachedPages := reviewinfra.NewCachedPageReader(pages, c.Redis, c.Config.Redis.PageTTL)
	snapshots := reviewinfra.NewPostgresSnapshotRepository(c.DB)
	binder := report.NewBinder(c.placeholderSpecs())

	c.ReviewService = reviewsrv.NewReviewService(
		cachedPages,
		snapshots,
		c.analyzer(),
		binder,
		analyze.WithModel(c.Config.Analyze.Model),
		analyze.WithTemperature(c.Config.Analyze.Temperature),
	)
	c.ReviewHandlers = reviewapi.NewReviewHandlers(c.ReviewService)
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("  ✅ Database connection closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("  ✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup complete")
}
