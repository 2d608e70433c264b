package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jackdzi/informs/api/swagger"
	"github.com/jackdzi/informs/internal/board"
	"github.com/jackdzi/informs/internal/handler"
	"github.com/jackdzi/informs/internal/metrics"
	internalmiddleware "github.com/jackdzi/informs/internal/middleware"
	"github.com/jackdzi/informs/internal/remote"
	"github.com/jackdzi/informs/pkg/cache"
	"github.com/jackdzi/informs/pkg/config"
	"github.com/jackdzi/informs/pkg/logger"
	corsmiddleware "github.com/jackdzi/informs/pkg/middleware/cors"
	reqidmiddleware "github.com/jackdzi/informs/pkg/middleware/requestid"
)

// @title InForms Board Gateway
// @version 0.1.0
// @description Interactive exam scheduling board over the scheduling API
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, reference-data caching disabled", "error", err)
		redisClient = nil
	}

	client := remote.NewClient(cfg.Upstream, logr, m)

	var kv remote.KV
	if redisClient != nil {
		kv = remote.NewRedisKV(redisClient)
	}
	refdata := remote.NewRefCache(client, kv, cfg.Redis.RefTTL, logr, m)

	bus := board.NewBus()
	engine := board.New(client, refdata, bus, cfg.Board, logr, m)
	defer engine.Close()

	// The upstream may still be starting; keep trying in the background
	// and serve 503 snapshots until the first load lands.
	go func() {
		for {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err := engine.Load(ctx)
			cancel()
			if err == nil {
				logr.Sugar().Infow("board loaded")
				return
			}
			logr.Sugar().Warnw("initial board load failed, retrying", "error", err)
			time.Sleep(5 * time.Second)
		}
	}()

	validate := validator.New()
	boardHandler := handler.NewBoardHandler(engine, validate)
	versionHandler := handler.NewVersionHandler(engine, validate)
	studentHandler := handler.NewStudentHandler(engine)
	exportHandler := handler.NewExportHandler(engine, cfg.Export.Title)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(m))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if !engine.Snapshot().Loaded {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(m.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/board", boardHandler.Snapshot)
		api.POST("/board/drag", boardHandler.BeginDrag)
		api.POST("/board/drag/end", boardHandler.EndDrag)
		api.POST("/board/drop", boardHandler.Drop)
		api.PUT("/board/save", boardHandler.BulkSave)
		api.POST("/board/refresh", boardHandler.Refresh)

		api.GET("/versions", versionHandler.List)
		api.POST("/versions", versionHandler.Create)
		api.POST("/versions/:id/duplicate", versionHandler.Duplicate)
		api.POST("/versions/:id/activate", versionHandler.Activate)
		api.DELETE("/versions/:id", versionHandler.Delete)

		api.GET("/students", studentHandler.List)
		api.GET("/students/:id/schedule", studentHandler.Schedule)

		api.GET("/export/schedule.csv", exportHandler.CSV)
		api.GET("/export/schedule.pdf", exportHandler.PDF)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
