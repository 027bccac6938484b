package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/profilehub/profilehub/handlers"
	"github.com/profilehub/profilehub/internal/config"
	"github.com/profilehub/profilehub/internal/database"
	profilehandler "github.com/profilehub/profilehub/internal/profile/handler"
	profilerepo "github.com/profilehub/profilehub/internal/profile/repository"
	profileservice "github.com/profilehub/profilehub/internal/profile/service"
	"github.com/profilehub/profilehub/internal/status"
	"github.com/profilehub/profilehub/internal/storage"
	"github.com/profilehub/profilehub/pkg/logger"
	"github.com/profilehub/profilehub/pkg/metrics"
	"github.com/profilehub/profilehub/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: all origins, methods and
	// headers are permitted. Production deployments need a stricter policy.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.CORS.AllowedOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery + request metrics
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestMetrics())

	// Connect to Redis early so the rate-limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Connect to MongoDB with retry/backoff to tolerate startup races; fall
	// back to in-memory repositories when no MONGO_URL is configured.
	ctx := context.Background()
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		}
		defer func() { _ = mongoClient.Disconnect(ctx) }()
	}

	var (
		profileRepo profilerepo.Repository
		statusRepo  status.Repository
	)
	if mongoClient != nil {
		db := mongoClient.Database(cfg.MongoDB.Database)
		profileRepo = profilerepo.NewMongoRepo(db.Collection("user_profiles"))
		statusRepo = status.NewMongoRepo(db.Collection("status_checks"))
	} else {
		logger.Warnf("MONGO_URL not set; using in-memory repositories (data is not persisted)")
		profileRepo = profilerepo.NewMemoryRepo()
		statusRepo = status.NewMemoryRepo()
	}

	// Optional object-storage archival of uploaded files
	var archiver profilehandler.Archiver
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		a, err := storage.NewMinIOArchiver(mcfg)
		if err != nil {
			logger.Warnf("minio archiver disabled: %v", err)
		} else {
			archiver = a
			logger.Infof("archiving uploads to MinIO bucket %q", mcfg.Bucket)
		}
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint: 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		if mongoClient != nil {
			pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			deps["mongo"] = mongoClient.Ping(pingCtx, nil) == nil
			if !deps["mongo"] {
				ready = false
			}
		} else {
			// memory mode has no external storage dependency
			deps["mongo"] = true
		}

		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		code := http.StatusOK
		state := "ready"
		if !ready {
			code = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(code, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// API routes under /api
	api := r.Group("/api")
	svc := profileservice.NewService(profileRepo)
	profilehandler.NewHandler(svc, archiver).Register(api)
	status.NewHandler(statusRepo).Register(api)

	// Swagger UI + JSON for API documentation
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("Starting profile service on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	// block until SIGINT/SIGTERM, then drain in-flight requests before the
	// deferred Mongo disconnect runs
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
