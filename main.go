package main

import (
	"context"
	"errors"
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

	"github.com/hutchinsdata/site/handlers"
	"github.com/hutchinsdata/site/internal/cache"
	"github.com/hutchinsdata/site/internal/config"
	"github.com/hutchinsdata/site/internal/contact/repository"
	"github.com/hutchinsdata/site/internal/contact/service"
	"github.com/hutchinsdata/site/internal/database"
	"github.com/hutchinsdata/site/internal/events"
	"github.com/hutchinsdata/site/internal/gateway"
	"github.com/hutchinsdata/site/internal/mediaurl"
	"github.com/hutchinsdata/site/internal/render"
	"github.com/hutchinsdata/site/internal/sanity"
	"github.com/hutchinsdata/site/internal/schema"
	"github.com/hutchinsdata/site/internal/storage"
	"github.com/hutchinsdata/site/internal/tokens"
	"github.com/hutchinsdata/site/pkg/logger"
	"github.com/hutchinsdata/site/pkg/metrics"
	"github.com/hutchinsdata/site/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: content=%v mode=%s mongo=%v redis=%v nats=%v minio=%v",
		cfg.Content.Configured(), cfg.Content.Mode, cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.NATS.URL != "", cfg.MinIO.Endpoint != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Environment == config.ModeProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS for the contact form and the JSON endpoints.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, "+handlers.WebhookSecretHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})

	// Redis backs the shared content cache and the fixed-window limiter.
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s), falling back to in-process cache: %v", cfg.Redis.Host, cfg.Redis.Port, err)
			_ = client.Close()
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
			rdb = client
			defer func() { _ = rdb.Close() }()
		}
	}

	var store cache.Store = cache.NewMemoryStore()
	if rdb != nil {
		store = cache.NewRedisStore(rdb, "content:")
	}

	// content store client; nil Querier keeps the site up on fallbacks
	var q gateway.Querier
	client, err := sanity.New(sanity.Config{
		ProjectID:  cfg.Content.ProjectID,
		Dataset:    cfg.Content.Dataset,
		APIVersion: cfg.Content.APIVersion,
		Token:      cfg.Content.Token,
		UseCDN:     cfg.Content.UseCDN,
		Timeout:    cfg.Content.Timeout,
	})
	if err != nil {
		logger.Warnf("content store disabled: %v", err)
	} else {
		q = client
	}
	gw := gateway.New(q, store, gateway.OptionsFromConfig(cfg.Content))

	// Media: hosted CDN by default, or the MinIO mirror when asked to serve from it.
	images := mediaurl.NewSanity(cfg.Content.ProjectID, cfg.Content.Dataset)
	var media *storage.MediaStore
	if cfg.MinIO.Endpoint != "" {
		media, err = storage.NewMediaStore(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("media mirror unavailable: %v", err)
		} else if cfg.MinIO.ServeMedia {
			images = mediaurl.New(media)
			logger.Infof("serving images from mirror bucket %s", cfg.MinIO.Bucket)
		}
	}

	// Contact submissions: MongoDB when reachable, otherwise process memory.
	var repo service.Repository = repository.NewMemoryRepo()
	var mongoUp bool
	if cfg.MongoDB.URI != "" {
		mc, db, err := database.Connect(ctx, cfg.MongoDB, database.StartupPolicy)
		if err != nil {
			logger.Warnf("could not connect to MongoDB, contact submissions kept in memory: %v", err)
		} else {
			defer func() { _ = mc.Disconnect(context.Background()) }()
			repo, mongoUp = repository.NewMongoRepo(ctx, db.Collection(repository.Collection)), true
			logger.Infof("contact submissions stored in MongoDB database %s", cfg.MongoDB.Database)
		}
	}
	notifiers := []service.Notifier{service.LogNotifier{}}

	// NATS fans revalidations out to peer replicas and publishes submissions.
	var bus *events.Bus
	if cfg.NATS.URL != "" {
		bus, err = events.Connect(cfg.NATS)
		if err != nil {
			logger.Warnf("event bus disabled: %v", err)
		} else {
			defer func() { _ = bus.Close() }()
			gw.OnRevalidate = bus.Broadcast
			if _, err := bus.SubscribeRevalidations(gw.Invalidate); err != nil {
				logger.Warnf("revalidation subscription failed: %v", err)
			}
			notifiers = append(notifiers, bus)
		}
	}
	contactSvc := service.New(repo, notifiers...)

	var verifier middleware.Verifier
	if cfg.Preview.Secret != "" {
		verifier = tokens.NewVerifier(cfg.Preview.Secret)
	} else {
		logger.Info("PREVIEW_SECRET not set; draft preview disabled")
	}

	renderer, err := render.New(images, render.Options{SiteURL: cfg.Site.URL, GoogleVerification: cfg.Site.GoogleVerification})
	if err != nil {
		logger.Fatalf("renderer: %v", err)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// The site renders on fallbacks, so only a configured-but-unreachable
	// shared cache marks the instance not ready.
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"content": gw.Configured(),
			"redis":   cfg.Redis.Host == "" || rdb != nil,
			"mongodb": cfg.MongoDB.URI == "" || mongoUp,
			"nats":    cfg.NATS.URL == "" || bus != nil,
			"media":   cfg.MinIO.Endpoint == "" || media != nil,
		}
		uptime := time.Since(startTime).String()
		if rdb != nil {
			if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
				deps["redis"] = false
			}
		}
		if !deps["redis"] {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})

	root := r.Group("")
	handlers.NewPageHandler(gw, renderer).Register(r.Group("", middleware.PreviewMiddleware(verifier)))
	handlers.NewRevalidateHandler(cfg.Webhook.Secret, gw).Register(root)
	handlers.NewSchemaHandler(schema.Default()).Register(root)
	handlers.NewSitemapHandler(cfg.Site.URL).Register(root)

	var limit []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			limit = append(limit, middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			limit = append(limit, middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}
	handlers.NewContactHandler(contactSvc).Register(root, limit...)
	handlers.RegisterSwagger(r)

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
		logger.Infof("Starting site service on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown: %v", err)
	}
}
