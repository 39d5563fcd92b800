package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitdesk/scheduling-api/internal/cache"
	"github.com/fitdesk/scheduling-api/internal/config"
	dbpkg "github.com/fitdesk/scheduling-api/internal/db"
	"github.com/fitdesk/scheduling-api/internal/middleware"
	"github.com/fitdesk/scheduling-api/internal/routes"
)

func main() {

	cfg := config.Load()

	log := newLogger(cfg.Environment)
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	permCache, err := cache.NewRedis(cfg.RedisURL, "fitdesk")
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, permCache, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	if env == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		return logger
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}
